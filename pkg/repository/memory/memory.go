package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
	"github.com/isabella232/infrastructure-boxer/pkg/repository"
)

// New creates a new in-memory identity-link store
func New() interfaces.LinkStore {
	return &linkStore{
		links: make(map[types.ASFID]model.IdentityLink),
	}
}

type linkStore struct {
	mu    sync.RWMutex
	links map[types.ASFID]model.IdentityLink
}

func (x *linkStore) Get(ctx context.Context, id types.ASFID) (*model.IdentityLink, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	link, ok := x.links[id]
	if !ok {
		return nil, goerr.Wrap(repository.ErrNotFound, "no identity link", goerr.V("asfID", id))
	}
	return &link, nil
}

func (x *linkStore) Put(ctx context.Context, link *model.IdentityLink) error {
	if link == nil || link.ASFID == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "identity link needs an ASF ID")
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	stored := *link
	stored.UpdatedAt = time.Now()
	x.links[link.ASFID] = stored
	return nil
}

func (x *linkStore) Close() error {
	return nil
}
