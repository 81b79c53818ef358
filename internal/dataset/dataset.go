package dataset

import (
	"fmt"
	"sort"
)

// Row maps column names to tagged cell values.
type Row map[string]Value

// Dataset is an immutable table of rows sharing one column set. It is built
// once from the inbound payload and never mutated within a run.
type Dataset struct {
	columns []string
	rows    []Row
}

// FromRecords builds a Dataset from decoded JSON rows. The first record
// fixes the column set; records with missing or extra columns fail with
// MalformedRowError. Column order is alphabetical so identical payloads
// always produce identical datasets regardless of map iteration order.
func FromRecords(records []map[string]any) (*Dataset, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmptyDataset
	}

	columns := make([]string, 0, len(records[0]))
	for col := range records[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	rows := make([]Row, 0, len(records))
	for i, record := range records {
		if err := checkSchema(i, record, columns); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for col, raw := range record {
			val, err := FromAny(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", i, col, err)
			}
			row[col] = val
		}
		rows = append(rows, row)
	}

	return &Dataset{columns: columns, rows: rows}, nil
}

func checkSchema(index int, record map[string]any, columns []string) error {
	var missing []string
	for _, col := range columns {
		if _, ok := record[col]; !ok {
			missing = append(missing, col)
		}
	}
	var extra []string
	if len(record) != len(columns)-len(missing) {
		known := make(map[string]struct{}, len(columns))
		for _, col := range columns {
			known[col] = struct{}{}
		}
		for col := range record {
			if _, ok := known[col]; !ok {
				extra = append(extra, col)
			}
		}
		sort.Strings(extra)
	}
	if len(missing) > 0 || len(extra) > 0 {
		return &MalformedRowError{Index: index, Missing: missing, Extra: extra}
	}
	return nil
}

// Columns returns the ordered column names.
func (d *Dataset) Columns() []string { return d.columns }

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int { return len(d.rows) }

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.columns) }

// Value returns the cell at the given row index and column.
func (d *Dataset) Value(row int, column string) Value {
	return d.rows[row][column]
}

// Rows returns the underlying rows. Callers must not mutate them.
func (d *Dataset) Rows() []Row { return d.rows }
