package job

import (
	"context"

	"github.com/honeycarbs/jobhub/internal/domain"
)

// SnapshotStats counts the nodes written by a snapshot.
type SnapshotStats struct {
	Providers int `json:"providers"`
	Posters   int `json:"posters"`
	Jobs      int `json:"jobs"`
}

// SnapshotWriter exports a point in time copy of collected jobs. Snapshots are
// never read back into the aggregator.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, jobs []domain.Job) (SnapshotStats, error)
}
