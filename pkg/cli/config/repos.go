package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/isabella232/infrastructure-boxer/pkg/infra/gitdir"
)

type Repos struct {
	publicRoot  string
	privateRoot string
	fallbackURL string
}

func (x *Repos) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repos-public",
			Usage:       "Directory holding public bare repositories",
			Category:    "Repositories",
			Sources:     cli.EnvVars("BOXER_REPOS_PUBLIC"),
			Value:       "/x1/repos/asf/",
			Destination: &x.publicRoot,
		},
		&cli.StringFlag{
			Name:        "repos-private",
			Usage:       "Directory holding private repositories, one subdirectory per project",
			Category:    "Repositories",
			Sources:     cli.EnvVars("BOXER_REPOS_PRIVATE"),
			Value:       "/x1/repos/private/",
			Destination: &x.privateRoot,
		},
		&cli.StringFlag{
			Name:        "repos-fallback-url",
			Usage:       "Remote plaintext repository listing from the legacy host (optional)",
			Category:    "Repositories",
			Sources:     cli.EnvVars("BOXER_REPOS_FALLBACK_URL"),
			Destination: &x.fallbackURL,
		},
	}
}

func (x *Repos) NewInventory() (*gitdir.Inventory, error) {
	var options []gitdir.Option
	if x.fallbackURL != "" {
		options = append(options, gitdir.WithFallbackURL(x.fallbackURL))
	}
	return gitdir.New(x.publicRoot, x.privateRoot, options...)
}

func (x *Repos) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("publicRoot", x.publicRoot),
		slog.Any("privateRoot", x.privateRoot),
		slog.Any("fallbackURL", x.fallbackURL),
	)
}
