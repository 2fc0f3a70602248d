package model

import (
	"time"

	"github.com/isabella232/infrastructure-boxer/pkg/domain/types"
)

// Snapshot is the read-only result of one completed reconciliation cycle.
// The sync loop builds a fresh snapshot per cycle and swaps it in atomically;
// readers always observe a fully consistent cycle, never in-progress state.
type Snapshot struct {
	GeneratedAt  time.Time
	Organization *Organization
	Teams        []*Team
	GitHubRepos  []string
	MFA          map[types.GitHubLogin]bool
	Stats        CycleStats
}

type CycleStats struct {
	Cycle       uint64
	Duration    time.Duration
	GraphQLUsed int
}
