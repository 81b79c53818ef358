package analyses

import "errors"

var (
	// ErrNotFound is returned for unknown run IDs.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientData signals that too few numeric rows survived
	// filtering for the ML strategy. The pipeline recovers by running the
	// EDA strategy instead; callers never see this error.
	ErrInsufficientData = errors.New("not enough numeric rows for ml analysis")
)
