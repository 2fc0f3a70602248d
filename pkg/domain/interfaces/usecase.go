package interfaces

import "github.com/isabella232/infrastructure-boxer/pkg/domain/model"

// SnapshotSource hands out the result of the last completed cycle. Returns
// nil before the first cycle finishes.
type SnapshotSource interface {
	Snapshot() *model.Snapshot
}
