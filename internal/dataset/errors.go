package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDataset rejects datasets with no rows or no columns.
var ErrEmptyDataset = errors.New("dataset has no rows or no columns")

// MalformedRowError reports a row whose column set disagrees with the schema
// fixed by the first row. The whole run is rejected rather than dropping the
// row, so every downstream count stays defined against the full dataset.
type MalformedRowError struct {
	Index   int
	Missing []string
	Extra   []string
}

func (e *MalformedRowError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(e.Extra, ", "))
	}
	return fmt.Sprintf("row %d does not match dataset schema: %s", e.Index, strings.Join(parts, "; "))
}
