package interfaces

import (
	"context"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

// GitHubOrg is the remote access-system client for one GitHub organization.
// All listings paginate sequentially; all mutations require ResolveOrgID to
// have succeeded first.
type GitHubOrg interface {
	// ResolveOrgID fetches and memoizes the organization's numeric ID. It
	// must be called before any mutating operation.
	ResolveOrgID(ctx context.Context) (int64, error)

	RateLimitUsage(ctx context.Context, kind types.RateLimitKind) (*model.RateLimitUsage, error)

	ListRepositories(ctx context.Context) ([]string, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)
	TwoFactorStatus(ctx context.Context) (map[types.GitHubLogin]bool, error)

	// EnsureTeams creates any missing committers/pmc team for projects with
	// public repositories and returns the team list extended with locally
	// synthesized records for the new teams.
	EnsureTeams(ctx context.Context, teams []*model.Team, projects map[types.ProjectKey]*model.Project) ([]*model.Team, error)

	ConvergeMembers(ctx context.Context, team *model.Team, desired []types.GitHubLogin) (added, removed []types.GitHubLogin, err error)
	ConvergeRepos(ctx context.Context, team *model.Team, desired []string) (added, removed []string, err error)
}

// Directory resolves a project's committer and owner identities. Directory
// failures for a single project are soft: logged and reported as empty
// lists, not as an error.
type Directory interface {
	GetMembers(ctx context.Context, project types.ProjectKey) (committers, owners []types.ASFID, err error)
}

// Inventory lists every repository the organization hosts locally (plus an
// optional remote fallback listing).
type Inventory interface {
	ListAll(ctx context.Context) ([]*model.ManagedRepository, error)
}
