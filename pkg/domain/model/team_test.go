package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

func TestNewTeamParsesName(t *testing.T) {
	t.Run("committers team", func(t *testing.T) {
		team := model.NewTeam(1, "foo-committers", "foo committers")
		gt.V(t, team.Project).Equal(types.ProjectKey("foo"))
		gt.V(t, team.Kind).Equal(types.TeamCommitters)
	})

	t.Run("pmc team", func(t *testing.T) {
		team := model.NewTeam(2, "foo-pmc", "foo pmc")
		gt.V(t, team.Project).Equal(types.ProjectKey("foo"))
		gt.V(t, team.Kind).Equal(types.TeamPMC)
	})

	t.Run("multi-hyphen project", func(t *testing.T) {
		team := model.NewTeam(3, "empire-db-committers", "empire-db committers")
		gt.V(t, team.Project).Equal(types.ProjectKey("empire-db"))
		gt.V(t, team.Kind).Equal(types.TeamCommitters)
	})

	t.Run("spaceless name is the admin team", func(t *testing.T) {
		team := model.NewTeam(4, "justroot", "justroot")
		gt.V(t, team.Project).Equal(types.ProjectKey("root"))
		gt.V(t, team.Kind).Equal(types.TeamAdmin)
	})
}

func logins(ids ...string) map[types.GitHubLogin]struct{} {
	m := make(map[types.GitHubLogin]struct{}, len(ids))
	for _, id := range ids {
		m[types.GitHubLogin(id)] = struct{}{}
	}
	return m
}

func TestDiffLogins(t *testing.T) {
	t.Run("set difference both ways", func(t *testing.T) {
		add, remove := model.DiffLogins(logins("a", "c"), []types.GitHubLogin{"a", "b"}, "asf-ci")
		gt.A(t, add).Equal([]types.GitHubLogin{"b"})
		gt.A(t, remove).Equal([]types.GitHubLogin{"c"})
	})

	t.Run("mfa filtered scenario: desired {a}, current {a,c}", func(t *testing.T) {
		add, remove := model.DiffLogins(logins("a", "c"), []types.GitHubLogin{"a"}, "asf-ci")
		gt.A(t, add).Length(0)
		gt.A(t, remove).Equal([]types.GitHubLogin{"c"})
	})

	t.Run("bot accounts survive on both sides", func(t *testing.T) {
		add, remove := model.DiffLogins(logins("a", "asf-ci-bot"), []types.GitHubLogin{"a", "asf-ci-deploy"}, "asf-ci")
		gt.A(t, add).Length(0)
		gt.A(t, remove).Length(0)
	})

	t.Run("idempotence after applying changes", func(t *testing.T) {
		current := logins("a", "c", "d")
		desired := []types.GitHubLogin{"a", "b"}
		add, remove := model.DiffLogins(current, desired, "asf-ci")

		for _, login := range add {
			current[login] = struct{}{}
		}
		for _, login := range remove {
			delete(current, login)
		}

		add, remove = model.DiffLogins(current, desired, "asf-ci")
		gt.A(t, add).Length(0)
		gt.A(t, remove).Length(0)
	})

	t.Run("deterministic order", func(t *testing.T) {
		add, _ := model.DiffLogins(logins(), []types.GitHubLogin{"z", "a", "m"}, "")
		gt.A(t, add).Equal([]types.GitHubLogin{"a", "m", "z"})
	})
}

func TestDiffRepos(t *testing.T) {
	current := map[string]struct{}{"foo": {}, "foo-site": {}, "foo-old": {}}

	add, remove := model.DiffRepos(current, []string{"foo", "foo-site", "foo-new"})
	gt.A(t, add).Equal([]string{"foo-new"})
	gt.A(t, remove).Equal([]string{"foo-old"})

	t.Run("removal is not a no-op", func(t *testing.T) {
		_, remove := model.DiffRepos(map[string]struct{}{"stale": {}}, nil)
		gt.A(t, remove).Equal([]string{"stale"})
	})
}
