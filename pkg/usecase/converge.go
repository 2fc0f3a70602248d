package usecase

import (
	"context"
	"log/slog"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
)

// convergeTeamMembers walks every project team and converges its membership
// against the two-factor-filtered roster from the directory. A team whose
// project returned no directory data this cycle is left untouched; an empty
// roster caused by an outage must not strip a whole team.
func (x *UseCase) convergeTeamMembers(ctx context.Context, teams []*model.Team, org *model.Organization) error {
	logger := logging.From(ctx)

	for _, team := range teams {
		var desired []types.GitHubLogin

		project := org.Projects[team.Project]

		switch team.Kind {
		case types.TeamCommitters:
			if project == nil {
				logger.Warn("no known project for team", slog.String("team", team.Slug))
				continue
			}
			if len(project.PublicRepos) == 0 || len(project.Committers) == 0 {
				continue
			}
			desired = project.DesiredCommitterLogins()

		case types.TeamPMC:
			if project == nil {
				logger.Warn("no known project for team", slog.String("team", team.Slug))
				continue
			}
			if len(project.PrivateRepos) == 0 || len(project.Owners) == 0 {
				continue
			}
			desired = project.DesiredOwnerLogins()

		default:
			continue
		}

		added, removed, err := x.clients.GitHubOrg().ConvergeMembers(ctx, team, desired)
		if err != nil {
			return err
		}
		if len(added) > 0 || len(removed) > 0 {
			logger.Info("adjusted team membership",
				slog.String("team", team.Slug),
				slog.Any("added", added),
				slog.Any("removed", removed),
			)
		}
	}

	return nil
}

// convergeTeamRepos converges each team's repository grants. The desired set
// is the project's public (or private) repositories intersected with what
// the GitHub organization actually hosts, so repositories still pending
// mirror setup are never granted.
func (x *UseCase) convergeTeamRepos(ctx context.Context, teams []*model.Team, org *model.Organization, hosted map[string]struct{}) error {
	logger := logging.From(ctx)

	for _, team := range teams {
		project := org.Projects[team.Project]
		if project == nil {
			continue
		}

		var repos []*model.ManagedRepository
		switch team.Kind {
		case types.TeamCommitters:
			repos = project.PublicRepos
		case types.TeamPMC:
			repos = project.PrivateRepos
		default:
			continue
		}

		desired := make([]string, 0, len(repos))
		for _, repo := range repos {
			if _, ok := hosted[repo.Name]; ok {
				desired = append(desired, repo.Name)
			}
		}

		added, removed, err := x.clients.GitHubOrg().ConvergeRepos(ctx, team, desired)
		if err != nil {
			return err
		}
		if len(added) > 0 || len(removed) > 0 {
			logger.Info("adjusted team repositories",
				slog.String("team", team.Slug),
				slog.Any("added", added),
				slog.Any("removed", removed),
			)
		}
	}

	return nil
}
