package model

import (
	"sort"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

// Project groups the repositories and people of one project. Committers map
// to public repositories, owners (the PMC) to private ones.
type Project struct {
	Key        types.ProjectKey
	Committers []*Person
	Owners     []*Person

	PublicRepos  []*ManagedRepository
	PrivateRepos []*ManagedRepository
}

// AddRepository attaches a repository to the project and fans it out into
// the repository set of every committer (public) or owner (private).
func (x *Project) AddRepository(repo *ManagedRepository) {
	if repo.Private {
		x.PrivateRepos = append(x.PrivateRepos, repo)
		for _, p := range x.Owners {
			p.Repositories[repo.Name] = struct{}{}
		}
		return
	}

	x.PublicRepos = append(x.PublicRepos, repo)
	for _, p := range x.Committers {
		p.Repositories[repo.Name] = struct{}{}
	}
}

// DesiredCommitterLogins returns the GitHub logins that should be on the
// project's committers team: linked accounts with two-factor auth enabled.
func (x *Project) DesiredCommitterLogins() []types.GitHubLogin {
	return desiredLogins(x.Committers)
}

// DesiredOwnerLogins returns the GitHub logins that should be on the
// project's pmc team.
func (x *Project) DesiredOwnerLogins() []types.GitHubLogin {
	return desiredLogins(x.Owners)
}

func desiredLogins(people []*Person) []types.GitHubLogin {
	seen := make(map[types.GitHubLogin]struct{}, len(people))
	var logins []types.GitHubLogin
	for _, p := range people {
		if p.GitHubLogin == "" || !p.MFA {
			continue
		}
		if _, ok := seen[p.GitHubLogin]; ok {
			continue
		}
		seen[p.GitHubLogin] = struct{}{}
		logins = append(logins, p.GitHubLogin)
	}
	sort.Slice(logins, func(i, j int) bool { return logins[i] < logins[j] })
	return logins
}
