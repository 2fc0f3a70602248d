package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/isabella232/infrastructure-boxer/pkg/cli/config"
	"github.com/isabella232/infrastructure-boxer/pkg/usecase"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/safe"
)

// syncCommand runs exactly one reconciliation cycle and exits. Combined
// with --dry-run it answers "what would change" without touching GitHub.
func syncCommand() *cli.Command {
	var (
		github   config.GitHub
		ldap     config.LDAP
		repos    config.Repos
		database config.Database
		sentry   config.Sentry
	)

	return &cli.Command{
		Name:  "sync",
		Usage: "Run a single reconciliation cycle and exit",
		Flags: slice.Flatten(
			github.Flags(),
			ldap.Flags(),
			repos.Flags(),
			database.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting sync",
				slog.Any("GitHub", github),
				slog.Any("LDAP", ldap),
				slog.Any("Repos", repos),
				slog.Any("Database", database),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}
			if err := github.Validate(); err != nil {
				return err
			}

			clients, err := buildClients(ctx, &github, &ldap, &repos, &database)
			if err != nil {
				return err
			}
			defer safe.Close(clients.LinkStore())

			uc := usecase.New(clients)
			return uc.RunOnce(logging.With(ctx, logging.Default()))
		},
	}
}
