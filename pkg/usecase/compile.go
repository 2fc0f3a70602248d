package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/repository"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
)

// compileOrganization folds the repository inventory and the directory into
// a fresh Organization graph. The directory is consulted once per project
// (first repository encountered wins); a failed lookup leaves that project
// with empty rosters but never aborts compilation of the others.
func (x *UseCase) compileOrganization(ctx context.Context, repos []*model.ManagedRepository) *model.Organization {
	logger := logging.From(ctx)
	org := model.NewOrganization()
	discovered := 0

	for _, repo := range repos {
		key := repo.Project
		if key == "" {
			continue
		}

		project, ok := org.Projects[key]
		if !ok {
			committers, owners, err := x.clients.Directory().GetMembers(ctx, key)
			if err != nil {
				logger.Warn("directory lookup failed, compiling project with empty rosters",
					slog.Any("project", key), slog.Any("error", err))
				committers, owners = nil, nil
			}

			project = org.AddProject(key)
			project.Committers = x.ensurePeople(ctx, org, key, committers)
			project.Owners = x.ensurePeople(ctx, org, key, owners)

			if len(committers) > 0 && len(owners) > 0 {
				discovered++
				if discovered%50 == 0 {
					logger.Info("still compiling projects", slog.Int("discovered", discovered))
				}
			}
		}

		project.AddRepository(repo)
	}

	logger.Info("compiled organization",
		slog.Int("projects", len(org.Projects)),
		slog.Int("people", len(org.People)),
	)
	return org
}

// ensurePeople resolves each directory identity to its Person, enriching a
// newly created person from the identity-link store exactly once.
func (x *UseCase) ensurePeople(ctx context.Context, org *model.Organization, key types.ProjectKey, ids []types.ASFID) []*model.Person {
	people := make([]*model.Person, 0, len(ids))
	for _, id := range ids {
		person, created := org.EnsurePerson(id)
		if created {
			link, err := x.clients.LinkStore().Get(ctx, id)
			switch {
			case err == nil:
				person.Link(link)
			case errors.Is(err, repository.ErrNotFound):
				// unlinked committer, stays without a GitHub account
			default:
				logging.From(ctx).Warn("failed to read identity link",
					slog.Any("asfid", id), slog.Any("error", err))
			}
		}
		person.Projects[key] = struct{}{}
		people = append(people, person)
	}
	return people
}
