package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/infra/ldapdir"
)

type LDAP struct {
	uri          string
	bindDN       string
	bindPassword string
	groupBase    string
	overrideFile string
}

func (x *LDAP) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "ldap-uri",
			Usage:       "LDAP server URI (ldaps://...)",
			Category:    "LDAP",
			Sources:     cli.EnvVars("BOXER_LDAP_URI"),
			Destination: &x.uri,
		},
		&cli.StringFlag{
			Name:        "ldap-bind-dn",
			Usage:       "Bind DN",
			Category:    "LDAP",
			Sources:     cli.EnvVars("BOXER_LDAP_BIND_DN"),
			Destination: &x.bindDN,
		},
		&cli.StringFlag{
			Name:        "ldap-bind-password",
			Usage:       "Bind password",
			Category:    "LDAP",
			Sources:     cli.EnvVars("BOXER_LDAP_BIND_PASSWORD"),
			Destination: &x.bindPassword,
		},
		&cli.StringFlag{
			Name:        "ldap-group-base",
			Usage:       "Project group DN template with a %s placeholder",
			Category:    "LDAP",
			Sources:     cli.EnvVars("BOXER_LDAP_GROUP_BASE"),
			Value:       "cn=%s,ou=project,ou=groups,dc=apache,dc=org",
			Destination: &x.groupBase,
		},
		&cli.StringFlag{
			Name:        "ldap-override-file",
			Usage:       "Per-project override YAML (projects.yaml)",
			Category:    "LDAP",
			Sources:     cli.EnvVars("BOXER_LDAP_OVERRIDE_FILE"),
			Value:       "projects.yaml",
			Destination: &x.overrideFile,
		},
	}
}

func (x *LDAP) NewClient() (*ldapdir.Client, error) {
	overrides, err := ldapdir.LoadOverrides(x.overrideFile)
	if err != nil {
		return nil, err
	}

	return ldapdir.New(x.uri, x.bindDN, types.LDAPPassword(x.bindPassword), x.groupBase,
		ldapdir.WithOverrides(overrides))
}

func (x *LDAP) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("uri", x.uri),
		slog.Any("bindDN", x.bindDN),
		slog.Any("bindPassword", types.LDAPPassword(x.bindPassword)),
		slog.Any("groupBase", x.groupBase),
		slog.Any("overrideFile", x.overrideFile),
	)
}
