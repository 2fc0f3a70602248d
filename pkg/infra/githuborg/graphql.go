package githuborg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/safe"
)

// pageSize is the maximum edge count GitHub serves per GraphQL page. Teams
// reporting more members or repositories than one page require a dedicated
// follow-up listing.
const pageSize = 100

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// cursorArg renders the "after:" argument: null on the first page, the
// quoted opaque cursor afterwards.
func cursorArg(after string) string {
	if after == "" {
		return "null"
	}
	return fmt.Sprintf("%q", after)
}

func (x *Client) postGraphQL(ctx context.Context, query string, out any) error {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return goerr.Wrap(err, "failed to marshal GraphQL query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to build GraphQL request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "GraphQL request failed")
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return goerr.Wrap(types.ErrInvalidGitHubData, "unexpected status for GraphQL query",
			goerr.V("status", resp.StatusCode))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return goerr.Wrap(err, "failed to decode GraphQL response")
	}
	if len(envelope.Errors) > 0 {
		return goerr.Wrap(types.ErrInvalidGitHubData, "GraphQL query returned errors",
			goerr.V("message", envelope.Errors[0].Message))
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return goerr.Wrap(err, "failed to decode GraphQL data")
	}
	return nil
}

func (x *Client) graphqlRateLimit(ctx context.Context) (*model.RateLimitUsage, error) {
	query := `{ rateLimit { limit cost used resetAt } }`

	var data struct {
		RateLimit struct {
			Limit int `json:"limit"`
			Used  int `json:"used"`
		} `json:"rateLimit"`
	}
	if err := x.postGraphQL(ctx, query, &data); err != nil {
		return nil, err
	}

	return &model.RateLimitUsage{Limit: data.RateLimit.Limit, Used: data.RateLimit.Used}, nil
}

const queryRepositories = `{
  organization(login: %q) {
    repositories(first: %d, after: %s) {
      pageInfo { hasNextPage endCursor }
      edges { node { name databaseId } }
    }
  }
}`

// ListRepositories loads every repository name in the organization,
// following the cursor until the last page.
func (x *Client) ListRepositories(ctx context.Context) ([]string, error) {
	var repos []string
	var after string

	for {
		var data struct {
			Organization struct {
				Repositories struct {
					PageInfo pageInfo `json:"pageInfo"`
					Edges    []struct {
						Node struct {
							Name string `json:"name"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"repositories"`
			} `json:"organization"`
		}

		query := fmt.Sprintf(queryRepositories, x.login, pageSize, cursorArg(after))
		if err := x.postGraphQL(ctx, query, &data); err != nil {
			return nil, err
		}

		for _, edge := range data.Organization.Repositories.Edges {
			repos = append(repos, edge.Node.Name)
		}

		page := data.Organization.Repositories.PageInfo
		if !page.HasNextPage {
			break
		}
		after = page.EndCursor
	}

	return repos, nil
}

const queryTeams = `{
  organization(login: %q) {
    teams(first: %d, after: %s) {
      pageInfo { hasNextPage endCursor }
      edges {
        node {
          name
          slug
          databaseId
          members(first: %d) {
            totalCount
            edges { node { login } }
          }
          repositories(first: %d) {
            totalCount
            edges { node { name } }
          }
        }
      }
    }
  }
}`

// ListTeams loads all teams with their member and repository sets. Teams
// whose member or repository count exceeds one page are refilled through a
// dedicated per-team listing.
func (x *Client) ListTeams(ctx context.Context) ([]*model.Team, error) {
	var teams []*model.Team
	var after string

	for {
		var data struct {
			Organization struct {
				Teams struct {
					PageInfo pageInfo `json:"pageInfo"`
					Edges    []struct {
						Node struct {
							Name       string `json:"name"`
							Slug       string `json:"slug"`
							DatabaseID int64  `json:"databaseId"`
							Members    struct {
								TotalCount int `json:"totalCount"`
								Edges      []struct {
									Node struct {
										Login string `json:"login"`
									} `json:"node"`
								} `json:"edges"`
							} `json:"members"`
							Repositories struct {
								TotalCount int `json:"totalCount"`
								Edges      []struct {
									Node struct {
										Name string `json:"name"`
									} `json:"node"`
								} `json:"edges"`
							} `json:"repositories"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"teams"`
			} `json:"organization"`
		}

		query := fmt.Sprintf(queryTeams, x.login, pageSize, cursorArg(after), pageSize, pageSize)
		if err := x.postGraphQL(ctx, query, &data); err != nil {
			return nil, err
		}

		for _, edge := range data.Organization.Teams.Edges {
			node := edge.Node
			team := model.NewTeam(node.DatabaseID, node.Slug, node.Name)
			for _, member := range node.Members.Edges {
				team.Members[types.GitHubLogin(member.Node.Login)] = struct{}{}
			}
			for _, repo := range node.Repositories.Edges {
				if repo.Node.Name != "" {
					team.Repos[repo.Node.Name] = struct{}{}
				}
			}

			if node.Members.TotalCount > pageSize {
				logging.From(ctx).Info("team exceeds one page of members, filling specifically",
					slog.String("team", team.Slug), slog.Int("totalCount", node.Members.TotalCount))
				if err := x.fillTeamMembers(ctx, team); err != nil {
					return nil, err
				}
				logging.From(ctx).Info("filled team members",
					slog.String("team", team.Slug), slog.Int("members", len(team.Members)))
			}
			if node.Repositories.TotalCount > pageSize {
				logging.From(ctx).Info("team exceeds one page of repositories, filling specifically",
					slog.String("team", team.Slug), slog.Int("totalCount", node.Repositories.TotalCount))
				if err := x.fillTeamRepos(ctx, team); err != nil {
					return nil, err
				}
				logging.From(ctx).Info("filled team repositories",
					slog.String("team", team.Slug), slog.Int("repos", len(team.Repos)))
			}

			teams = append(teams, team)
		}

		page := data.Organization.Teams.PageInfo
		if !page.HasNextPage {
			break
		}
		after = page.EndCursor
	}

	return teams, nil
}

const queryTeamMembers = `{
  organization(login: %q) {
    team(slug: %q) {
      members(first: %d, after: %s) {
        totalCount
        pageInfo { hasNextPage endCursor }
        edges { node { login } }
      }
    }
  }
}`

func (x *Client) fillTeamMembers(ctx context.Context, team *model.Team) error {
	var after string

	for {
		var data struct {
			Organization struct {
				Team struct {
					Members struct {
						PageInfo pageInfo `json:"pageInfo"`
						Edges    []struct {
							Node struct {
								Login string `json:"login"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"members"`
				} `json:"team"`
			} `json:"organization"`
		}

		query := fmt.Sprintf(queryTeamMembers, x.login, team.Slug, pageSize, cursorArg(after))
		if err := x.postGraphQL(ctx, query, &data); err != nil {
			return err
		}

		for _, edge := range data.Organization.Team.Members.Edges {
			team.Members[types.GitHubLogin(edge.Node.Login)] = struct{}{}
		}

		page := data.Organization.Team.Members.PageInfo
		if !page.HasNextPage {
			return nil
		}
		after = page.EndCursor
	}
}

const queryTeamRepos = `{
  organization(login: %q) {
    team(slug: %q) {
      repositories(first: %d, after: %s) {
        totalCount
        pageInfo { hasNextPage endCursor }
        edges { node { name } }
      }
    }
  }
}`

func (x *Client) fillTeamRepos(ctx context.Context, team *model.Team) error {
	var after string

	for {
		var data struct {
			Organization struct {
				Team struct {
					Repositories struct {
						PageInfo pageInfo `json:"pageInfo"`
						Edges    []struct {
							Node struct {
								Name string `json:"name"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"repositories"`
				} `json:"team"`
			} `json:"organization"`
		}

		query := fmt.Sprintf(queryTeamRepos, x.login, team.Slug, pageSize, cursorArg(after))
		if err := x.postGraphQL(ctx, query, &data); err != nil {
			return err
		}

		for _, edge := range data.Organization.Team.Repositories.Edges {
			if edge.Node.Name != "" {
				team.Repos[edge.Node.Name] = struct{}{}
			}
		}

		page := data.Organization.Team.Repositories.PageInfo
		if !page.HasNextPage {
			return nil
		}
		after = page.EndCursor
	}
}

const queryTwoFactor = `{
  organization(login: %q) {
    membersWithRole(first: %d, after: %s) {
      pageInfo { hasNextPage endCursor }
      edges {
        hasTwoFactorEnabled
        node { login }
      }
    }
  }
}`

// TwoFactorStatus reports, for every organization member, whether
// two-factor authentication is enabled. Logins absent from the result are
// treated as disabled by callers.
func (x *Client) TwoFactorStatus(ctx context.Context) (map[types.GitHubLogin]bool, error) {
	mfa := make(map[types.GitHubLogin]bool)
	var after string

	for {
		var data struct {
			Organization struct {
				MembersWithRole struct {
					PageInfo pageInfo `json:"pageInfo"`
					Edges    []struct {
						HasTwoFactorEnabled bool `json:"hasTwoFactorEnabled"`
						Node                struct {
							Login string `json:"login"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"membersWithRole"`
			} `json:"organization"`
		}

		query := fmt.Sprintf(queryTwoFactor, x.login, pageSize, cursorArg(after))
		if err := x.postGraphQL(ctx, query, &data); err != nil {
			return nil, err
		}

		for _, edge := range data.Organization.MembersWithRole.Edges {
			mfa[types.GitHubLogin(edge.Node.Login)] = edge.HasTwoFactorEnabled
		}

		page := data.Organization.MembersWithRole.PageInfo
		if !page.HasNextPage {
			break
		}
		after = page.EndCursor
	}

	enabled := 0
	for _, ok := range mfa {
		if ok {
			enabled++
		}
	}
	logging.From(ctx).Info("gathered two-factor status",
		slog.Int("enabled", enabled), slog.Int("disabled", len(mfa)-enabled))

	return mfa, nil
}
