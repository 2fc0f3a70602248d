package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

// Team is the local cache of one GitHub team: its identity plus the member
// and repository sets as last loaded from (or synthesized for) GitHub.
type Team struct {
	ID      int64
	Slug    string
	Name    string
	Project types.ProjectKey
	Kind    types.TeamKind

	Members map[types.GitHubLogin]struct{}
	Repos   map[string]struct{}
}

// NewTeam parses project and kind from the display name by splitting on the
// first space ("empire-db committers" -> "empire-db" + "committers"). A name
// without a space is the root/admin team.
func NewTeam(id int64, slug, name string) *Team {
	team := &Team{
		ID:      id,
		Slug:    slug,
		Name:    name,
		Project: "root",
		Kind:    types.TeamAdmin,
		Members: make(map[types.GitHubLogin]struct{}),
		Repos:   make(map[string]struct{}),
	}

	if project, kind, ok := strings.Cut(strings.ToLower(name), " "); ok {
		team.Project = types.ProjectKey(project)
		team.Kind = types.TeamKind(kind)
	}

	return team
}

// TeamName is the GitHub display name for a project team of the given kind.
func TeamName(project types.ProjectKey, kind types.TeamKind) string {
	return fmt.Sprintf("%s %s", project, kind)
}

// DiffLogins computes the minimal membership changes to make current match
// desired. Logins carrying the service-account prefix are excluded from
// both sides and are never added or removed. Results are sorted for
// deterministic application and logging.
func DiffLogins(current map[types.GitHubLogin]struct{}, desired []types.GitHubLogin, ignorePrefix string) (toAdd, toRemove []types.GitHubLogin) {
	isBot := func(login types.GitHubLogin) bool {
		return ignorePrefix != "" && strings.HasPrefix(string(login), ignorePrefix)
	}

	want := make(map[types.GitHubLogin]struct{}, len(desired))
	for _, login := range desired {
		if isBot(login) {
			continue
		}
		want[login] = struct{}{}
		if _, ok := current[login]; !ok {
			toAdd = append(toAdd, login)
		}
	}
	for login := range current {
		if isBot(login) {
			continue
		}
		if _, ok := want[login]; !ok {
			toRemove = append(toRemove, login)
		}
	}

	sort.Slice(toAdd, func(i, j int) bool { return toAdd[i] < toAdd[j] })
	sort.Slice(toRemove, func(i, j int) bool { return toRemove[i] < toRemove[j] })
	return toAdd, toRemove
}

// DiffRepos computes the minimal repository assignment changes to make
// current match desired.
func DiffRepos(current map[string]struct{}, desired []string) (toAdd, toRemove []string) {
	want := make(map[string]struct{}, len(desired))
	for _, repo := range desired {
		want[repo] = struct{}{}
		if _, ok := current[repo]; !ok {
			toAdd = append(toAdd, repo)
		}
	}
	for repo := range current {
		if _, ok := want[repo]; !ok {
			toRemove = append(toRemove, repo)
		}
	}

	sort.Strings(toAdd)
	sort.Strings(toRemove)
	return toAdd, toRemove
}
