package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/isabella232/infrastructure-boxer/pkg/cli/config"
	"github.com/isabella232/infrastructure-boxer/pkg/controller/server"
	"github.com/isabella232/infrastructure-boxer/pkg/infra"
	"github.com/isabella232/infrastructure-boxer/pkg/usecase"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/safe"
)

func serveCommand() *cli.Command {
	var (
		addr string

		github   config.GitHub
		ldap     config.LDAP
		repos    config.Repos
		database config.Database
		syncCfg  config.Sync
		sentry   config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("BOXER_ADDR"),
			Destination: &addr,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the reconciliation loop and the read-only API",
		Flags: slice.Flatten(
			serveFlags,
			github.Flags(),
			ldap.Flags(),
			repos.Flags(),
			database.Flags(),
			syncCfg.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("GitHub", github),
				slog.Any("LDAP", ldap),
				slog.Any("Repos", repos),
				slog.Any("Database", database),
				slog.Any("Sync", syncCfg),
				slog.Any("Sentry", sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}
			if err := github.Validate(); err != nil {
				return err
			}
			if err := syncCfg.Validate(); err != nil {
				return err
			}

			clients, err := buildClients(ctx, &github, &ldap, &repos, &database)
			if err != nil {
				return err
			}
			defer safe.Close(clients.LinkStore())

			uc := usecase.New(clients, usecase.WithInterval(syncCfg.RefreshRate()))
			s := server.New(uc)

			loopCtx, cancelLoop := context.WithCancel(ctx)
			defer cancelLoop()
			go func() {
				if err := uc.RunSyncLoop(logging.With(loopCtx, logging.Default())); err != nil {
					logging.Default().Error("sync loop stopped", slog.Any("error", err))
				}
			}()

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)
				cancelLoop()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}

func buildClients(ctx context.Context, github *config.GitHub, ldap *config.LDAP, repos *config.Repos, database *config.Database) (*infra.Clients, error) {
	githubOrg, err := github.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	directory, err := ldap.NewClient()
	if err != nil {
		return nil, err
	}

	inventory, err := repos.NewInventory()
	if err != nil {
		return nil, err
	}

	linkStore, err := database.NewLinkStore(ctx)
	if err != nil {
		return nil, err
	}

	return infra.New(
		infra.WithGitHubOrg(githubOrg),
		infra.WithDirectory(directory),
		infra.WithInventory(inventory),
		infra.WithLinkStore(linkStore),
	), nil
}
