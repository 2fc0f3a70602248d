package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

const minRefreshRate = time.Minute

type Sync struct {
	refreshRate time.Duration
}

func (x *Sync) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "refresh-rate",
			Usage:       "Sleep between reconciliation cycles (minimum 1m)",
			Category:    "Sync",
			Sources:     cli.EnvVars("BOXER_REFRESH_RATE"),
			Value:       150 * time.Second,
			Destination: &x.refreshRate,
		},
	}
}

// Validate enforces the interval floor once at startup.
func (x *Sync) Validate() error {
	if x.refreshRate < minRefreshRate {
		return goerr.Wrap(types.ErrInvalidOption, "refresh-rate must be at least one minute",
			goerr.V("refreshRate", x.refreshRate))
	}
	return nil
}

func (x *Sync) RefreshRate() time.Duration {
	return x.refreshRate
}

func (x *Sync) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("refreshRate", x.refreshRate),
	)
}
