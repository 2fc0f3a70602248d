package testhelper

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/repository"
)

// LinkStoreTest runs the conformance suite shared by every LinkStore
// backend.
func LinkStoreTest(t *testing.T, store interfaces.LinkStore) {
	ctx := context.Background()

	t.Run("get unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "no-such-id")
		gt.Error(t, err)
		gt.V(t, errors.Is(err, repository.ErrNotFound)).Equal(true)
	})

	t.Run("put then get", func(t *testing.T) {
		gt.NoError(t, store.Put(ctx, &model.IdentityLink{
			ASFID:       "humbedooh",
			GitHubLogin: "Humbedooh",
			GitHubID:    12345,
			MFA:         true,
		}))

		link := gt.R1(store.Get(ctx, "humbedooh")).NoError(t)
		gt.V(t, link.GitHubLogin).Equal("Humbedooh")
		gt.V(t, link.GitHubID).Equal(12345)
		gt.V(t, link.MFA).Equal(true)
		gt.V(t, link.UpdatedAt.IsZero()).Equal(false)
	})

	t.Run("put is an upsert", func(t *testing.T) {
		gt.NoError(t, store.Put(ctx, &model.IdentityLink{
			ASFID:       "humbedooh",
			GitHubLogin: "Humbedooh",
			GitHubID:    12345,
			MFA:         false,
		}))

		link := gt.R1(store.Get(ctx, "humbedooh")).NoError(t)
		gt.V(t, link.MFA).Equal(false)
	})

	t.Run("put without id is rejected", func(t *testing.T) {
		gt.Error(t, store.Put(ctx, &model.IdentityLink{GitHubLogin: "nobody"}))
	})
}
