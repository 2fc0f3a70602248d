package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/errutil"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
)

// Server exposes the result of the last reconciliation cycle as a read-only
// JSON API. It never calls a mutating GitHub operation; only the sync loop
// does.
type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		errutil.HandleError(r.Context(), "fail to encode response", err)
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"encoding failure"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, raw)
}

func New(source interfaces.SnapshotSource) *Server {
	r := chi.NewRouter()
	r.Use(preProcess)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})

	// Every /api route reads the latest snapshot; 503 until the first cycle
	// completes.
	withSnapshot := func(fn func(w http.ResponseWriter, r *http.Request, s *model.Snapshot)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			snapshot := source.Snapshot()
			if snapshot == nil {
				writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{
					"error": "no reconciliation cycle has completed yet",
				})
				return
			}
			fn(w, r, snapshot)
		}
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", withSnapshot(func(w http.ResponseWriter, r *http.Request, s *model.Snapshot) {
			writeJSON(w, r, http.StatusOK, newStatusView(s))
		}))
		r.Get("/people", withSnapshot(func(w http.ResponseWriter, r *http.Request, s *model.Snapshot) {
			writeJSON(w, r, http.StatusOK, newPeopleView(s))
		}))
		r.Get("/projects", withSnapshot(func(w http.ResponseWriter, r *http.Request, s *model.Snapshot) {
			writeJSON(w, r, http.StatusOK, newProjectsView(s))
		}))
		r.Get("/teams", withSnapshot(func(w http.ResponseWriter, r *http.Request, s *model.Snapshot) {
			writeJSON(w, r, http.StatusOK, newTeamsView(s))
		}))
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}

type statusView struct {
	GeneratedAt time.Time `json:"generated_at"`
	Cycle       uint64    `json:"cycle"`
	Duration    string    `json:"duration"`
	GraphQLUsed int       `json:"graphql_used"`
	Projects    int       `json:"projects"`
	People      int       `json:"people"`
	Teams       int       `json:"teams"`
}

func newStatusView(s *model.Snapshot) statusView {
	return statusView{
		GeneratedAt: s.GeneratedAt,
		Cycle:       s.Stats.Cycle,
		Duration:    s.Stats.Duration.String(),
		GraphQLUsed: s.Stats.GraphQLUsed,
		Projects:    len(s.Organization.Projects),
		People:      len(s.Organization.People),
		Teams:       len(s.Teams),
	}
}

type personView struct {
	ASFID        types.ASFID       `json:"asfid"`
	GitHubLogin  types.GitHubLogin `json:"github_login,omitempty"`
	MFA          bool              `json:"mfa"`
	DisplayName  string            `json:"display_name"`
	Projects     []string          `json:"projects"`
	Repositories []string          `json:"repositories"`
}

func newPeopleView(s *model.Snapshot) []personView {
	people := s.Organization.SortedPeople()
	views := make([]personView, 0, len(people))
	for _, p := range people {
		views = append(views, personView{
			ASFID:        p.ASFID,
			GitHubLogin:  p.GitHubLogin,
			MFA:          p.MFA,
			DisplayName:  p.DisplayName,
			Projects:     sortedProjectKeys(p.Projects),
			Repositories: sortedKeys(p.Repositories),
		})
	}
	return views
}

type projectView struct {
	Key          types.ProjectKey `json:"key"`
	Committers   []types.ASFID    `json:"committers"`
	Owners       []types.ASFID    `json:"owners"`
	PublicRepos  []string         `json:"public_repos"`
	PrivateRepos []string         `json:"private_repos"`
}

func newProjectsView(s *model.Snapshot) []projectView {
	projects := s.Organization.SortedProjects()
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView{
			Key:          p.Key,
			Committers:   personIDs(p.Committers),
			Owners:       personIDs(p.Owners),
			PublicRepos:  repoNames(p.PublicRepos),
			PrivateRepos: repoNames(p.PrivateRepos),
		})
	}
	return views
}

type teamView struct {
	ID      int64            `json:"id"`
	Slug    string           `json:"slug"`
	Name    string           `json:"name"`
	Project types.ProjectKey `json:"project"`
	Kind    types.TeamKind   `json:"kind"`
	Members []string         `json:"members"`
	Repos   []string         `json:"repos"`
}

func newTeamsView(s *model.Snapshot) []teamView {
	views := make([]teamView, 0, len(s.Teams))
	for _, team := range s.Teams {
		members := make([]string, 0, len(team.Members))
		for login := range team.Members {
			members = append(members, string(login))
		}
		sort.Strings(members)

		views = append(views, teamView{
			ID:      team.ID,
			Slug:    team.Slug,
			Name:    team.Name,
			Project: team.Project,
			Kind:    team.Kind,
			Members: members,
			Repos:   sortedKeys(team.Repos),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views
}

func personIDs(people []*model.Person) []types.ASFID {
	ids := make([]types.ASFID, 0, len(people))
	for _, p := range people {
		ids = append(ids, p.ASFID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func repoNames(repos []*model.ManagedRepository) []string {
	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.Name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedProjectKeys(set map[types.ProjectKey]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, string(key))
	}
	sort.Strings(keys)
	return keys
}
