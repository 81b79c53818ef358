package analyses

import (
	"context"

	"analyzer-backend/internal/dataset"
)

// Strategy is one interchangeable analysis implementation. The router picks
// one per run; both produce a variant-tagged Summary.
type Strategy interface {
	Route() Route
	Analyze(ctx context.Context, ds *dataset.Dataset, profile dataset.Profile) (Summary, error)
}
