package githuborg

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/infra"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
)

const defaultBotPrefix = "asf-ci"

// Client talks to one GitHub organization: cursor-paginated GraphQL for
// listings, REST (go-github) for mutations. All calls are sequential; one
// request is in flight at a time.
type Client struct {
	login      string
	gh         *github.Client
	httpClient infra.HTTPClient
	graphqlURL string
	botPrefix  string
	dryRun     bool

	// orgID is resolved lazily by ResolveOrgID and required before any
	// mutating call.
	orgID int64
}

var _ interfaces.GitHubOrg = (*Client)(nil)

type config struct {
	token      types.GitHubToken
	appID      int64
	privateKey types.GitHubAppPrivateKey
	httpClient infra.HTTPClient
	baseURL    string
	graphqlURL string
	botPrefix  string
	dryRun     bool
}

type Option func(*config)

// WithToken authenticates with a personal access token.
func WithToken(token types.GitHubToken) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithAppAuth authenticates as a GitHub App installed on the organization.
func WithAppAuth(appID int64, privateKey types.GitHubAppPrivateKey) Option {
	return func(c *config) {
		c.appID = appID
		c.privateKey = privateKey
	}
}

// WithHTTPClient overrides the transport used for GraphQL queries. Intended
// for tests.
func WithHTTPClient(client infra.HTTPClient) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// WithBaseURL points the REST client at a different API root. Intended for
// tests.
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

func WithGraphQLURL(graphqlURL string) Option {
	return func(c *config) {
		c.graphqlURL = graphqlURL
	}
}

// WithBotPrefix sets the login prefix identifying service accounts, which
// are excluded from every membership diff.
func WithBotPrefix(prefix string) Option {
	return func(c *config) {
		c.botPrefix = prefix
	}
}

// WithDryRun makes every mutating call a logged no-op.
func WithDryRun(dryRun bool) Option {
	return func(c *config) {
		c.dryRun = dryRun
	}
}

func New(ctx context.Context, login string, options ...Option) (*Client, error) {
	if login == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "organization login is empty")
	}

	cfg := &config{
		graphqlURL: "https://api.github.com/graphql",
		botPrefix:  defaultBotPrefix,
	}
	for _, opt := range options {
		opt(cfg)
	}

	authClient, err := cfg.buildAuthClient(ctx, login)
	if err != nil {
		return nil, err
	}

	gh := github.NewClient(authClient)
	if cfg.baseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid API base URL", goerr.V("baseURL", cfg.baseURL))
		}
		gh.BaseURL = base
	}

	client := &Client{
		login:      login,
		gh:         gh,
		httpClient: authClient,
		graphqlURL: cfg.graphqlURL,
		botPrefix:  cfg.botPrefix,
		dryRun:     cfg.dryRun,
	}
	if cfg.httpClient != nil {
		client.httpClient = cfg.httpClient
	}

	return client, nil
}

func (x *config) buildAuthClient(ctx context.Context, login string) (*http.Client, error) {
	switch {
	case x.token != "":
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(x.token)})
		return oauth2.NewClient(ctx, src), nil

	case x.appID != 0:
		atr, err := ghinstallation.NewAppsTransport(http.DefaultTransport, x.appID, []byte(x.privateKey))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create app transport")
		}

		appClient := github.NewClient(&http.Client{Transport: atr})
		installation, _, err := appClient.Apps.FindOrganizationInstallation(ctx, login)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to find organization installation", goerr.V("login", login))
		}

		itr, err := ghinstallation.New(http.DefaultTransport, x.appID, installation.GetID(), []byte(x.privateKey))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create installation transport")
		}
		return &http.Client{Transport: itr}, nil

	case x.httpClient != nil:
		// test transports carry their own auth
		return http.DefaultClient, nil

	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "either a personal access token or GitHub App credentials are required")
	}
}

// ResolveOrgID fetches the organization's numeric ID once and memoizes it.
// Membership and repository mutations refuse to run before this succeeds.
func (x *Client) ResolveOrgID(ctx context.Context) (int64, error) {
	if x.orgID != 0 {
		return x.orgID, nil
	}

	org, _, err := x.gh.Organizations.Get(ctx, x.login)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to look up organization", goerr.V("login", x.login))
	}
	if org.GetID() == 0 {
		return 0, goerr.Wrap(types.ErrInvalidGitHubData, "organization lookup returned no ID", goerr.V("login", x.login))
	}

	x.orgID = org.GetID()
	return x.orgID, nil
}

func (x *Client) mustOrgID() (int64, error) {
	if x.orgID == 0 {
		return 0, goerr.Wrap(types.ErrPrecondition, "ResolveOrgID must be called before mutations", goerr.V("login", x.login))
	}
	return x.orgID, nil
}

func (x *Client) RateLimitUsage(ctx context.Context, kind types.RateLimitKind) (*model.RateLimitUsage, error) {
	switch kind {
	case types.RateLimitREST:
		limits, _, err := x.gh.RateLimits(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch REST rate limit")
		}
		core := limits.GetCore()
		if core == nil {
			return nil, goerr.Wrap(types.ErrInvalidGitHubData, "rate limit response has no core counter")
		}
		return &model.RateLimitUsage{
			Limit: core.Limit,
			Used:  core.Limit - core.Remaining,
		}, nil

	case types.RateLimitGraphQL:
		return x.graphqlRateLimit(ctx)

	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "unknown rate limit kind", goerr.V("kind", kind))
	}
}

// CreateTeam adds a team named "<project> <kind>" to the organization and
// returns its numeric ID. GitHub accepting the call but omitting the ID is
// a hard failure.
func (x *Client) CreateTeam(ctx context.Context, project types.ProjectKey, kind types.TeamKind) (int64, error) {
	if _, err := x.mustOrgID(); err != nil {
		return 0, err
	}
	if project == "" {
		return 0, goerr.Wrap(types.ErrInvalidOption, "team needs a project name")
	}

	name := model.TeamName(project, kind)

	if x.dryRun {
		logging.From(ctx).Info("[dry-run] POST create team", slog.String("name", name))
		return 0, nil
	}

	team, resp, err := x.gh.Teams.CreateTeam(ctx, x.login, github.NewTeam{Name: name})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create team", goerr.V("name", name))
	}
	if resp.StatusCode != http.StatusCreated {
		return 0, goerr.Wrap(types.ErrInvalidGitHubData, "unexpected status for team creation",
			goerr.V("name", name), goerr.V("status", resp.StatusCode))
	}
	if team.GetID() == 0 {
		return 0, goerr.Wrap(types.ErrInvalidGitHubData, "GitHub did not respond with a team ID", goerr.V("name", name))
	}

	logging.From(ctx).Info("created team", slog.String("name", name), slog.Int64("id", team.GetID()))
	return team.GetID(), nil
}

// EnsureTeams checks every project with at least one public repository for
// a committers and a pmc team, creates the missing ones, and returns the
// team list extended with synthesized records so the current cycle can
// converge them immediately.
func (x *Client) EnsureTeams(ctx context.Context, teams []*model.Team, projects map[types.ProjectKey]*model.Project) ([]*model.Team, error) {
	existing := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		existing[strings.ToLower(team.Name)] = struct{}{}
	}

	keys := make([]types.ProjectKey, 0, len(projects))
	for key := range projects {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, key := range keys {
		project := projects[key]
		if len(project.PublicRepos) == 0 {
			continue
		}

		for _, kind := range []types.TeamKind{types.TeamCommitters, types.TeamPMC} {
			name := model.TeamName(key, kind)
			if _, ok := existing[strings.ToLower(name)]; ok {
				continue
			}

			logging.From(ctx).Info("team not found on GitHub, setting it up for the first time",
				slog.String("name", name))

			id, err := x.CreateTeam(ctx, key, kind)
			if err != nil {
				return teams, err
			}

			team := model.NewTeam(id, strings.ReplaceAll(name, " ", "-"), name)
			teams = append(teams, team)
			existing[strings.ToLower(name)] = struct{}{}
		}
	}

	return teams, nil
}

// ConvergeMembers computes the minimal membership changes against the
// team's cached member set and applies them one call at a time. Service
// accounts (bot prefix) never appear on either side.
func (x *Client) ConvergeMembers(ctx context.Context, team *model.Team, desired []types.GitHubLogin) ([]types.GitHubLogin, []types.GitHubLogin, error) {
	toAdd, toRemove := model.DiffLogins(team.Members, desired, x.botPrefix)

	for _, login := range toAdd {
		if err := x.addTeamMember(ctx, team, login); err != nil {
			return nil, nil, err
		}
		team.Members[login] = struct{}{}
	}
	for _, login := range toRemove {
		if err := x.removeTeamMember(ctx, team, login); err != nil {
			return nil, nil, err
		}
		delete(team.Members, login)
	}

	return toAdd, toRemove, nil
}

// ConvergeRepos does the same for the team's repository assignments.
func (x *Client) ConvergeRepos(ctx context.Context, team *model.Team, desired []string) ([]string, []string, error) {
	toAdd, toRemove := model.DiffRepos(team.Repos, desired)

	for _, repo := range toAdd {
		if err := x.addTeamRepo(ctx, team, repo); err != nil {
			return nil, nil, err
		}
		team.Repos[repo] = struct{}{}
	}
	for _, repo := range toRemove {
		if err := x.removeTeamRepo(ctx, team, repo); err != nil {
			return nil, nil, err
		}
		delete(team.Repos, repo)
	}

	return toAdd, toRemove, nil
}

var putPostStatus = map[int]struct{}{
	http.StatusOK:        {},
	http.StatusCreated:   {},
	http.StatusNoContent: {},
}

func (x *Client) addTeamMember(ctx context.Context, team *model.Team, login types.GitHubLogin) error {
	orgID, err := x.mustOrgID()
	if err != nil {
		return err
	}

	if x.dryRun {
		logging.From(ctx).Info("[dry-run] PUT team membership",
			slog.String("team", team.Slug), slog.Any("login", login))
		return nil
	}

	_, resp, err := x.gh.Teams.AddTeamMembershipByID(ctx, orgID, team.ID, string(login), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to add team member",
			goerr.V("team", team.Slug), goerr.V("login", login))
	}
	if _, ok := putPostStatus[resp.StatusCode]; !ok {
		return goerr.Wrap(types.ErrInvalidGitHubData, "unexpected status for membership PUT",
			goerr.V("team", team.Slug), goerr.V("login", login), goerr.V("status", resp.StatusCode))
	}
	return nil
}

func (x *Client) removeTeamMember(ctx context.Context, team *model.Team, login types.GitHubLogin) error {
	orgID, err := x.mustOrgID()
	if err != nil {
		return err
	}

	if x.dryRun {
		logging.From(ctx).Info("[dry-run] DELETE team membership",
			slog.String("team", team.Slug), slog.Any("login", login))
		return nil
	}

	resp, err := x.gh.Teams.RemoveTeamMembershipByID(ctx, orgID, team.ID, string(login))
	if err != nil {
		return goerr.Wrap(err, "failed to remove team member",
			goerr.V("team", team.Slug), goerr.V("login", login))
	}
	if resp.StatusCode != http.StatusNoContent {
		return goerr.Wrap(types.ErrInvalidGitHubData, "unexpected status for membership DELETE",
			goerr.V("team", team.Slug), goerr.V("login", login), goerr.V("status", resp.StatusCode))
	}
	return nil
}

func (x *Client) addTeamRepo(ctx context.Context, team *model.Team, repo string) error {
	orgID, err := x.mustOrgID()
	if err != nil {
		return err
	}

	if x.dryRun {
		logging.From(ctx).Info("[dry-run] PUT team repository",
			slog.String("team", team.Slug), slog.String("repo", repo))
		return nil
	}

	opts := &github.TeamAddTeamRepoOptions{Permission: "push"}
	resp, err := x.gh.Teams.AddTeamRepoByID(ctx, orgID, team.ID, x.login, repo, opts)
	if err != nil {
		return goerr.Wrap(err, "failed to add team repository",
			goerr.V("team", team.Slug), goerr.V("repo", repo))
	}
	if _, ok := putPostStatus[resp.StatusCode]; !ok {
		return goerr.Wrap(types.ErrInvalidGitHubData, "unexpected status for repository PUT",
			goerr.V("team", team.Slug), goerr.V("repo", repo), goerr.V("status", resp.StatusCode))
	}
	return nil
}

func (x *Client) removeTeamRepo(ctx context.Context, team *model.Team, repo string) error {
	orgID, err := x.mustOrgID()
	if err != nil {
		return err
	}

	if x.dryRun {
		logging.From(ctx).Info("[dry-run] DELETE team repository",
			slog.String("team", team.Slug), slog.String("repo", repo))
		return nil
	}

	resp, err := x.gh.Teams.RemoveTeamRepoByID(ctx, orgID, team.ID, x.login, repo)
	if err != nil {
		return goerr.Wrap(err, "failed to remove team repository",
			goerr.V("team", team.Slug), goerr.V("repo", repo))
	}
	if resp.StatusCode != http.StatusNoContent {
		return goerr.Wrap(types.ErrInvalidGitHubData, "unexpected status for repository DELETE",
			goerr.V("team", team.Slug), goerr.V("repo", repo), goerr.V("status", resp.StatusCode))
	}
	return nil
}
