package usecase

import (
	"sync/atomic"
	"time"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/interfaces"
	"github.com/isabella232/infrastructure-boxer/pkg/domain/model"
	"github.com/isabella232/infrastructure-boxer/pkg/infra"
)

const (
	defaultInterval   = 150 * time.Second
	defaultShortRetry = 10 * time.Second
)

// UseCase owns the reconciliation loop and the snapshot of its last
// completed cycle. There is exactly one cycle in flight at any time; the
// snapshot pointer is the only state shared with readers.
type UseCase struct {
	clients *infra.Clients

	interval   time.Duration
	shortRetry time.Duration

	snapshot atomic.Pointer[model.Snapshot]
}

var _ interfaces.SnapshotSource = (*UseCase)(nil)

type Option func(*UseCase)

// WithInterval sets the sleep between reconciliation cycles. The floor is
// enforced by the configuration layer at startup, not here.
func WithInterval(interval time.Duration) Option {
	return func(x *UseCase) {
		x.interval = interval
	}
}

func WithShortRetry(retry time.Duration) Option {
	return func(x *UseCase) {
		x.shortRetry = retry
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:    clients,
		interval:   defaultInterval,
		shortRetry: defaultShortRetry,
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc
}

// Snapshot returns the result of the last completed cycle, or nil before
// the first cycle finishes.
func (x *UseCase) Snapshot() *model.Snapshot {
	return x.snapshot.Load()
}
