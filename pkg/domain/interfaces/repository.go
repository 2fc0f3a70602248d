package interfaces

import (
	"context"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

// LinkStore persists the association between directory identities and
// GitHub accounts. Get returns repository.ErrNotFound for unknown IDs.
type LinkStore interface {
	Get(ctx context.Context, id types.ASFID) (*model.IdentityLink, error)
	Put(ctx context.Context, link *model.IdentityLink) error
	Close() error
}
