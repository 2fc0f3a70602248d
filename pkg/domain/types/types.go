package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	// ASFID is the primary identity in the LDAP directory (the uid attribute).
	ASFID string

	// GitHubLogin is the account name on GitHub linked to an ASF identity.
	GitHubLogin string

	// ProjectKey identifies a project, derived from repository names and
	// interpolated into LDAP group paths.
	ProjectKey string

	// TeamKind is the membership tier a GitHub team represents.
	TeamKind string

	// RateLimitKind selects which hourly API counter to report.
	RateLimitKind string

	GitHubToken         string
	GitHubAppPrivateKey string
	LDAPPassword        string

	RequestID string
)

const (
	// TeamCommitters maps to public repository access.
	TeamCommitters TeamKind = "committers"
	// TeamPMC maps to private repository access.
	TeamPMC TeamKind = "pmc"
	// TeamAdmin is the root team, never reconciled.
	TeamAdmin TeamKind = "admin"
)

const (
	RateLimitREST    RateLimitKind = "rest"
	RateLimitGraphQL RateLimitKind = "graphql"
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}

func (x LDAPPassword) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x LDAPPassword) String() string {
	return "***********"
}
