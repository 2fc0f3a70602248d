package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/errutil"
	"github.com/isabella232/infrastructure-boxer/pkg/utils/logging"
)

// RunSyncLoop reconciles forever, one cycle per interval, until the context
// is canceled. Failure containment is uniform: an unavailable repository
// inventory retries the whole cycle after a short delay, any other failure
// is reported and the loop moves on to the next interval. A partially
// applied convergence is never rolled back; the next cycle recomputes the
// diff from fresh state.
func (x *UseCase) RunSyncLoop(ctx context.Context) error {
	for cycle := uint64(1); ; cycle++ {
		wait := x.interval

		if err := x.runCycle(ctx, cycle); err != nil {
			switch {
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return nil

			case errors.Is(err, types.ErrInventoryUnavailable):
				logging.From(ctx).Warn("repository inventory unavailable, retrying shortly",
					slog.Any("error", err), slog.Duration("retry", x.shortRetry))
				wait = x.shortRetry

			default:
				errutil.HandleError(ctx, "reconciliation cycle failed", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

// RunOnce performs a single reconciliation cycle. Used by the sync command.
func (x *UseCase) RunOnce(ctx context.Context) error {
	return x.runCycle(ctx, 1)
}

func (x *UseCase) runCycle(ctx context.Context, cycle uint64) error {
	logger := logging.From(ctx)
	started := time.Now()
	gh := x.clients.GitHubOrg()

	logger.Info("processing GitHub organization", slog.Uint64("cycle", cycle))

	if _, err := gh.ResolveOrgID(ctx); err != nil {
		return err
	}

	baseline := x.reportRateLimits(ctx)

	var repos []*model.ManagedRepository
	if err := x.phase(ctx, "gathering list of hosted repositories", func() error {
		var err error
		repos, err = x.clients.Inventory().ListAll(ctx)
		return err
	}); err != nil {
		return err
	}

	var githubRepos []string
	if err := x.phase(ctx, "gathering list of repositories on GitHub", func() error {
		var err error
		githubRepos, err = gh.ListRepositories(ctx)
		return err
	}); err != nil {
		return err
	}
	hosted := make(map[string]struct{}, len(githubRepos))
	for _, name := range githubRepos {
		hosted[name] = struct{}{}
	}

	var org *model.Organization
	_ = x.phase(ctx, "compiling projects, repositories and memberships", func() error {
		org = x.compileOrganization(ctx, repos)
		return nil
	})

	var mfa map[types.GitHubLogin]bool
	if err := x.phase(ctx, "gathering two-factor status of GitHub members", func() error {
		var err error
		mfa, err = gh.TwoFactorStatus(ctx)
		return err
	}); err != nil {
		return err
	}
	x.refreshTwoFactor(ctx, org, mfa)

	var teams []*model.Team
	if err := x.phase(ctx, "loading GitHub teams", func() error {
		var err error
		teams, err = gh.ListTeams(ctx)
		return err
	}); err != nil {
		return err
	}

	if err := x.phase(ctx, "checking for missing GitHub teams", func() error {
		var err error
		teams, err = gh.EnsureTeams(ctx, teams, org.Projects)
		return err
	}); err != nil {
		return err
	}

	if err := x.phase(ctx, "adjusting team memberships", func() error {
		return x.convergeTeamMembers(ctx, teams, org)
	}); err != nil {
		return err
	}

	if err := x.phase(ctx, "adjusting team repositories", func() error {
		return x.convergeTeamRepos(ctx, teams, org, hosted)
	}); err != nil {
		return err
	}

	graphqlUsed := x.graphqlDelta(ctx, baseline)
	duration := time.Since(started)
	logger.Info("reconciliation cycle finished",
		slog.Uint64("cycle", cycle),
		slog.Duration("duration", duration),
		slog.Int("graphql_used", graphqlUsed),
	)

	x.snapshot.Store(&model.Snapshot{
		GeneratedAt:  time.Now(),
		Organization: org,
		Teams:        teams,
		GitHubRepos:  githubRepos,
		MFA:          mfa,
		Stats: model.CycleStats{
			Cycle:       cycle,
			Duration:    duration,
			GraphQLUsed: graphqlUsed,
		},
	})
	return nil
}

// phase runs one step of the cycle with begin/end logging.
func (x *UseCase) phase(ctx context.Context, title string, fn func() error) error {
	logger := logging.From(ctx)
	logger.Info(title)
	started := time.Now()

	if err := fn(); err != nil {
		return err
	}

	logger.Info("done", slog.String("phase", title), slog.Duration("elapsed", time.Since(started)))
	return nil
}

// refreshTwoFactor applies the organization-wide two-factor listing to every
// compiled person and persists each change to the identity-link store. A
// login missing from the listing counts as disabled, not unknown.
func (x *UseCase) refreshTwoFactor(ctx context.Context, org *model.Organization, mfa map[types.GitHubLogin]bool) {
	logger := logging.From(ctx)

	for _, person := range org.People {
		if person.GitHubLogin == "" {
			continue
		}

		enabled := mfa[person.GitHubLogin]
		if person.MFA == enabled {
			continue
		}
		person.MFA = enabled

		err := x.clients.LinkStore().Put(ctx, &model.IdentityLink{
			ASFID:       person.ASFID,
			GitHubLogin: person.GitHubLogin,
			GitHubID:    person.GitHubID,
			MFA:         person.MFA,
			DisplayName: person.DisplayName,
		})
		if err != nil {
			logger.Warn("failed to persist two-factor change",
				slog.Any("asfid", person.ASFID), slog.Any("error", err))
		}
	}
}

func (x *UseCase) reportRateLimits(ctx context.Context) int {
	logger := logging.From(ctx)

	if usage, err := x.clients.GitHubOrg().RateLimitUsage(ctx, types.RateLimitREST); err != nil {
		logger.Warn("failed to fetch REST rate limit", slog.Any("error", err))
	} else {
		logger.Info("REST token usage this hour",
			slog.Int("used", usage.Used), slog.Int("limit", usage.Limit))
	}

	usage, err := x.clients.GitHubOrg().RateLimitUsage(ctx, types.RateLimitGraphQL)
	if err != nil {
		logger.Warn("failed to fetch GraphQL rate limit", slog.Any("error", err))
		return 0
	}
	logger.Info("GraphQL token usage this hour",
		slog.Int("used", usage.Used), slog.Int("limit", usage.Limit))
	return usage.Used
}

// graphqlDelta reports how many GraphQL tokens this cycle consumed. The
// hourly counter can reset mid-cycle, in which case the raw reading is the
// best available answer.
func (x *UseCase) graphqlDelta(ctx context.Context, baseline int) int {
	usage, err := x.clients.GitHubOrg().RateLimitUsage(ctx, types.RateLimitGraphQL)
	if err != nil {
		logging.From(ctx).Warn("failed to fetch GraphQL rate limit", slog.Any("error", err))
		return 0
	}

	if usage.Used >= baseline {
		return usage.Used - baseline
	}
	return usage.Used
}
