package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/isabella232/infrastructure-boxer/pkg/cli/config"
)

func TestSentryFlags(t *testing.T) {
	sentryConfig := &config.Sentry{}
	flags := sentryConfig.Flags()

	gt.V(t, len(flags)).Equal(2)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		flagNames[flag.Names()[0]] = true
	}

	gt.True(t, flagNames["sentry-dsn"])
	gt.True(t, flagNames["sentry-env"])
}

func syncWithRate(t *testing.T, rate string) *config.Sync {
	t.Helper()
	cfg := &config.Sync{}
	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), []string{"test", "--refresh-rate", rate}))
	return cfg
}

func TestSyncValidate(t *testing.T) {
	t.Run("rejects sub-minute refresh rate", func(t *testing.T) {
		cfg := syncWithRate(t, "30s")
		gt.Error(t, cfg.Validate())
	})

	t.Run("accepts the default", func(t *testing.T) {
		cfg := syncWithRate(t, "150s")
		gt.NoError(t, cfg.Validate())
		gt.V(t, cfg.RefreshRate()).Equal(150 * time.Second)
	})
}

func TestGitHubValidate(t *testing.T) {
	cfg := &config.GitHub{}
	gt.Error(t, cfg.Validate())
}
