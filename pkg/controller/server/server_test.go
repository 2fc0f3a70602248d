package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/controller/server"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

type staticSource struct {
	snapshot *model.Snapshot
}

func (x *staticSource) Snapshot() *model.Snapshot {
	return x.snapshot
}

func testSnapshot() *model.Snapshot {
	org := model.NewOrganization()
	project := org.AddProject("foo")

	alice, _ := org.EnsurePerson("alice")
	alice.GitHubLogin = "alice-gh"
	alice.MFA = true
	alice.Projects["foo"] = struct{}{}
	project.Committers = []*model.Person{alice}

	project.AddRepository(model.NewManagedRepository("/repos/foo.git", false))

	team := model.NewTeam(42, "foo-committers", "foo committers")
	team.Members["alice-gh"] = struct{}{}
	team.Repos["foo"] = struct{}{}

	return &model.Snapshot{
		GeneratedAt:  time.Now(),
		Organization: org,
		Teams:        []*model.Team{team},
		GitHubRepos:  []string{"foo"},
		MFA:          map[types.GitHubLogin]bool{"alice-gh": true},
		Stats: model.CycleStats{
			Cycle:       3,
			Duration:    12 * time.Second,
			GraphQLUsed: 7,
		},
	}
}

func get(t *testing.T, srv *server.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Mux().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := server.New(&staticSource{})
	rec := get(t, srv, "/health")
	gt.V(t, rec.Code).Equal(http.StatusOK)
}

func TestAPIBeforeFirstCycle(t *testing.T) {
	srv := server.New(&staticSource{})

	for _, path := range []string{"/api/status", "/api/people", "/api/projects", "/api/teams"} {
		rec := get(t, srv, path)
		gt.V(t, rec.Code).Equal(http.StatusServiceUnavailable)
	}
}

func TestStatus(t *testing.T) {
	srv := server.New(&staticSource{snapshot: testSnapshot()})

	rec := get(t, srv, "/api/status")
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var body struct {
		Cycle       uint64 `json:"cycle"`
		GraphQLUsed int    `json:"graphql_used"`
		Projects    int    `json:"projects"`
		Teams       int    `json:"teams"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	gt.V(t, body.Cycle).Equal(uint64(3))
	gt.V(t, body.GraphQLUsed).Equal(7)
	gt.V(t, body.Projects).Equal(1)
	gt.V(t, body.Teams).Equal(1)
}

func TestPeople(t *testing.T) {
	srv := server.New(&staticSource{snapshot: testSnapshot()})

	rec := get(t, srv, "/api/people")
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var body []struct {
		ASFID        string   `json:"asfid"`
		GitHubLogin  string   `json:"github_login"`
		MFA          bool     `json:"mfa"`
		Repositories []string `json:"repositories"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	gt.A(t, body).Length(1)
	gt.V(t, body[0].ASFID).Equal("alice")
	gt.V(t, body[0].GitHubLogin).Equal("alice-gh")
	gt.V(t, body[0].MFA).Equal(true)
	gt.A(t, body[0].Repositories).Equal([]string{"foo"})
}

func TestProjects(t *testing.T) {
	srv := server.New(&staticSource{snapshot: testSnapshot()})

	rec := get(t, srv, "/api/projects")
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var body []struct {
		Key         string   `json:"key"`
		Committers  []string `json:"committers"`
		PublicRepos []string `json:"public_repos"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	gt.A(t, body).Length(1)
	gt.V(t, body[0].Key).Equal("foo")
	gt.A(t, body[0].Committers).Equal([]string{"alice"})
	gt.A(t, body[0].PublicRepos).Equal([]string{"foo"})
}

func TestTeams(t *testing.T) {
	srv := server.New(&staticSource{snapshot: testSnapshot()})

	rec := get(t, srv, "/api/teams")
	gt.V(t, rec.Code).Equal(http.StatusOK)

	var body []struct {
		Slug    string   `json:"slug"`
		Project string   `json:"project"`
		Kind    string   `json:"kind"`
		Members []string `json:"members"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	gt.A(t, body).Length(1)
	gt.V(t, body[0].Slug).Equal("foo-committers")
	gt.V(t, body[0].Project).Equal("foo")
	gt.V(t, body[0].Kind).Equal("committers")
	gt.A(t, body[0].Members).Equal([]string{"alice-gh"})
}
