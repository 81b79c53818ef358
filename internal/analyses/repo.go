package analyses

import "context"

// Repo stores completed runs for later retrieval. Runs live in memory only;
// nothing is persisted to a datastore.
type Repo interface {
	Create(ctx context.Context, run Run) error
	GetByID(ctx context.Context, runID string) (Run, error)
}
