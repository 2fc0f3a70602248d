package githuborg_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/infra/githuborg"
)

type fakeHTTP struct {
	handler func(req *http.Request) (*http.Response, error)
	calls   int
}

func (x *fakeHTTP) Do(req *http.Request) (*http.Response, error) {
	x.calls++
	return x.handler(req)
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newGraphQLClient(t *testing.T, mockHTTP *fakeHTTP) *githuborg.Client {
	t.Helper()
	return gt.R1(githuborg.New(context.Background(), "apache",
		githuborg.WithHTTPClient(mockHTTP),
	)).NoError(t)
}

func TestListRepositoriesPagination(t *testing.T) {
	pages := []string{
		`{"data":{"organization":{"repositories":{
			"pageInfo":{"hasNextPage":true,"endCursor":"c1"},
			"edges":[{"node":{"name":"foo"}},{"node":{"name":"foo-site"}}]}}}}`,
		`{"data":{"organization":{"repositories":{
			"pageInfo":{"hasNextPage":true,"endCursor":"c2"},
			"edges":[{"node":{"name":"bar"}}]}}}}`,
		`{"data":{"organization":{"repositories":{
			"pageInfo":{"hasNextPage":false,"endCursor":"c3"},
			"edges":[{"node":{"name":"baz"}}]}}}}`,
	}

	mockHTTP := &fakeHTTP{}
	mockHTTP.handler = func(req *http.Request) (*http.Response, error) {
		body := string(gt.R1(io.ReadAll(req.Body)).NoError(t))

		// page 1 starts from a null cursor, later pages carry the
		// previous page's end cursor
		switch mockHTTP.calls {
		case 1:
			gt.V(t, strings.Contains(body, "after: null")).Equal(true)
		case 2:
			gt.V(t, strings.Contains(body, `after: \"c1\"`)).Equal(true)
		case 3:
			gt.V(t, strings.Contains(body, `after: \"c2\"`)).Equal(true)
		}
		return jsonResponse(pages[mockHTTP.calls-1]), nil
	}

	client := newGraphQLClient(t, mockHTTP)
	repos := gt.R1(client.ListRepositories(context.Background())).NoError(t)

	gt.V(t, mockHTTP.calls).Equal(3)
	gt.A(t, repos).Equal([]string{"foo", "foo-site", "bar", "baz"})
}

func TestTwoFactorStatus(t *testing.T) {
	mockHTTP := &fakeHTTP{}
	mockHTTP.handler = func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"data":{"organization":{"membersWithRole":{
			"pageInfo":{"hasNextPage":false,"endCursor":""},
			"edges":[
				{"hasTwoFactorEnabled":true,"node":{"login":"alice"}},
				{"hasTwoFactorEnabled":false,"node":{"login":"bob"}}
			]}}}}`), nil
	}

	client := newGraphQLClient(t, mockHTTP)
	mfa := gt.R1(client.TwoFactorStatus(context.Background())).NoError(t)

	gt.V(t, mfa[types.GitHubLogin("alice")]).Equal(true)
	gt.V(t, mfa[types.GitHubLogin("bob")]).Equal(false)

	// absent logins are simply not in the map; callers treat that as disabled
	_, ok := mfa[types.GitHubLogin("carol")]
	gt.V(t, ok).Equal(false)
}

func TestListTeams(t *testing.T) {
	mockHTTP := &fakeHTTP{}
	mockHTTP.handler = func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"data":{"organization":{"teams":{
			"pageInfo":{"hasNextPage":false,"endCursor":""},
			"edges":[{"node":{
				"name":"foo committers","slug":"foo-committers","databaseId":42,
				"members":{"totalCount":2,"edges":[{"node":{"login":"alice"}},{"node":{"login":"bob"}}]},
				"repositories":{"totalCount":1,"edges":[{"node":{"name":"foo"}}]}
			}}]}}}}`), nil
	}

	client := newGraphQLClient(t, mockHTTP)
	teams := gt.R1(client.ListTeams(context.Background())).NoError(t)

	gt.A(t, teams).Length(1)
	team := teams[0]
	gt.V(t, team.ID).Equal(42)
	gt.V(t, team.Project).Equal(types.ProjectKey("foo"))
	gt.V(t, team.Kind).Equal(types.TeamCommitters)
	gt.V(t, len(team.Members)).Equal(2)
	gt.V(t, len(team.Repos)).Equal(1)
}

func TestListTeamsRefillsLargeTeam(t *testing.T) {
	memberEdges := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		memberEdges = append(memberEdges, fmt.Sprintf(`{"node":{"login":"user%03d"}}`, i))
	}

	teamsPage := fmt.Sprintf(`{"data":{"organization":{"teams":{
		"pageInfo":{"hasNextPage":false,"endCursor":""},
		"edges":[{"node":{
			"name":"big committers","slug":"big-committers","databaseId":7,
			"members":{"totalCount":150,"edges":[%s]},
			"repositories":{"totalCount":0,"edges":[]}
		}}]}}}}`, strings.Join(memberEdges, ","))

	refillEdges := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		refillEdges = append(refillEdges, fmt.Sprintf(`{"node":{"login":"user%03d"}}`, i))
	}
	refillPage := fmt.Sprintf(`{"data":{"organization":{"team":{"members":{
		"pageInfo":{"hasNextPage":false,"endCursor":""},
		"edges":[%s]}}}}}`, strings.Join(refillEdges, ","))

	mockHTTP := &fakeHTTP{}
	mockHTTP.handler = func(req *http.Request) (*http.Response, error) {
		if mockHTTP.calls == 1 {
			return jsonResponse(teamsPage), nil
		}
		return jsonResponse(refillPage), nil
	}

	client := newGraphQLClient(t, mockHTTP)
	teams := gt.R1(client.ListTeams(context.Background())).NoError(t)

	gt.V(t, mockHTTP.calls).Equal(2)
	gt.A(t, teams).Length(1)
	gt.V(t, len(teams[0].Members)).Equal(150)
}

func TestGraphQLErrorPropagates(t *testing.T) {
	mockHTTP := &fakeHTTP{}
	mockHTTP.handler = func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"data":null,"errors":[{"message":"rate limited"}]}`), nil
	}

	client := newGraphQLClient(t, mockHTTP)
	_, err := client.ListRepositories(context.Background())
	gt.Error(t, err)
}
