package dataset

// Profile is the lightweight structural summary consumed by the router.
// Computed once per run and read-only afterwards.
type Profile struct {
	RowCount           int      `json:"row_count"`
	ColumnCount        int      `json:"column_count"`
	NumericColumnRatio float64  `json:"numeric_column_ratio"`
	NumericColumns     []string `json:"numeric_columns"`
}

// Profile computes the structural profile of the dataset. A column is
// numeric only if every non-missing value in it parses as a number; a single
// non-numeric value anywhere disqualifies the column. Columns with no
// non-missing values carry no evidence either way and are not counted as
// numeric. O(rows x columns), no side effects.
func (d *Dataset) Profile() (Profile, error) {
	if d.RowCount() == 0 || d.ColumnCount() == 0 {
		return Profile{}, ErrEmptyDataset
	}

	var numeric []string
	for _, col := range d.columns {
		if d.columnIsNumeric(col) {
			numeric = append(numeric, col)
		}
	}

	return Profile{
		RowCount:           d.RowCount(),
		ColumnCount:        d.ColumnCount(),
		NumericColumnRatio: float64(len(numeric)) / float64(d.ColumnCount()),
		NumericColumns:     numeric,
	}, nil
}

func (d *Dataset) columnIsNumeric(column string) bool {
	seen := false
	for _, row := range d.rows {
		val := row[column]
		if val.IsMissing() {
			continue
		}
		if _, ok := val.AsNumber(); !ok {
			return false
		}
		seen = true
	}
	return seen
}
