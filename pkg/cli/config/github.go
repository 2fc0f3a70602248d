package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/infra/githuborg"
)

type GitHub struct {
	org        string
	token      string
	appID      int64
	privateKey string
	botPrefix  string
	dryRun     bool
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-org",
			Usage:       "GitHub organization to reconcile",
			Category:    "GitHub",
			Sources:     cli.EnvVars("BOXER_GITHUB_ORG"),
			Value:       "apache",
			Destination: &x.org,
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "Personal access token (alternative to App credentials)",
			Category:    "GitHub",
			Sources:     cli.EnvVars("BOXER_GITHUB_TOKEN"),
			Destination: &x.token,
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID (alternative to a token)",
			Category:    "GitHub",
			Sources:     cli.EnvVars("BOXER_GITHUB_APP_ID"),
			Destination: &x.appID,
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM)",
			Category:    "GitHub",
			Sources:     cli.EnvVars("BOXER_GITHUB_APP_PRIVATE_KEY"),
			Destination: &x.privateKey,
		},
		&cli.StringFlag{
			Name:        "github-bot-prefix",
			Usage:       "Login prefix of service accounts excluded from membership diffs",
			Category:    "GitHub",
			Sources:     cli.EnvVars("BOXER_GITHUB_BOT_PREFIX"),
			Value:       "asf-ci",
			Destination: &x.botPrefix,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Log mutating GitHub calls instead of issuing them",
			Category:    "GitHub",
			Sources:     cli.EnvVars("BOXER_DRY_RUN"),
			Destination: &x.dryRun,
		},
	}
}

func (x *GitHub) Validate() error {
	if x.token == "" && x.appID == 0 {
		return goerr.Wrap(types.ErrInvalidOption, "either github-token or github-app-id is required")
	}
	return nil
}

func (x *GitHub) NewClient(ctx context.Context) (*githuborg.Client, error) {
	options := []githuborg.Option{
		githuborg.WithBotPrefix(x.botPrefix),
		githuborg.WithDryRun(x.dryRun),
	}
	if x.token != "" {
		options = append(options, githuborg.WithToken(types.GitHubToken(x.token)))
	} else {
		options = append(options, githuborg.WithAppAuth(x.appID, types.GitHubAppPrivateKey(x.privateKey)))
	}

	return githuborg.New(ctx, x.org, options...)
}

func (x *GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("org", x.org),
		slog.Any("token", types.GitHubToken(x.token)),
		slog.Any("appID", x.appID),
		slog.Any("privateKey", types.GitHubAppPrivateKey(x.privateKey)),
		slog.Any("botPrefix", x.botPrefix),
		slog.Any("dryRun", x.dryRun),
	)
}
