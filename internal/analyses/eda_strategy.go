package analyses

import (
	"context"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"analyzer-backend/internal/dataset"
)

// EDAStrategy audits the dataset: missing values, duplicate rows, inferred
// column types, and descriptive statistics for numeric columns. It always
// succeeds on any profiled dataset.
type EDAStrategy struct{}

// NewEDAStrategy builds the strategy.
func NewEDAStrategy() *EDAStrategy { return &EDAStrategy{} }

// Route identifies the strategy.
func (s *EDAStrategy) Route() Route { return RouteEDA }

// Analyze produces the EDA summary.
func (s *EDAStrategy) Analyze(ctx context.Context, ds *dataset.Dataset, profile dataset.Profile) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	numericSet := make(map[string]struct{}, len(profile.NumericColumns))
	for _, col := range profile.NumericColumns {
		numericSet[col] = struct{}{}
	}

	missing := make(map[string]int, ds.ColumnCount())
	types := make(map[string]string, ds.ColumnCount())
	numericStats := make(map[string]NumericStats, len(profile.NumericColumns))

	for _, col := range ds.Columns() {
		missing[col] = missingCount(ds, col)
		if _, ok := numericSet[col]; ok {
			types[col] = dataset.KindNumber.String()
			numericStats[col] = describeColumn(ds, col)
			continue
		}
		types[col] = inferNonNumericType(ds, col)
	}

	summary := &EDASummary{
		MissingValueCounts:  missing,
		DuplicateRowCount:   duplicateRowCount(ds),
		ColumnTypeBreakdown: types,
		NumericStats:        numericStats,
	}
	return Summary{Route: RouteEDA, EDA: summary}, nil
}

func missingCount(ds *dataset.Dataset, column string) int {
	count := 0
	for i := 0; i < ds.RowCount(); i++ {
		if ds.Value(i, column).IsMissing() {
			count++
		}
	}
	return count
}

// inferNonNumericType reports boolean when every non-missing value is a
// boolean, text otherwise. Columns with no data at all report null.
func inferNonNumericType(ds *dataset.Dataset, column string) string {
	seen := false
	allBool := true
	for i := 0; i < ds.RowCount(); i++ {
		val := ds.Value(i, column)
		if val.IsMissing() {
			continue
		}
		seen = true
		if val.Kind() != dataset.KindBool {
			allBool = false
		}
	}
	if !seen {
		return dataset.KindNull.String()
	}
	if allBool {
		return dataset.KindBool.String()
	}
	return dataset.KindText.String()
}

func describeColumn(ds *dataset.Dataset, column string) NumericStats {
	var values []float64
	for i := 0; i < ds.RowCount(); i++ {
		val := ds.Value(i, column)
		if val.IsMissing() {
			continue
		}
		if num, ok := val.AsNumber(); ok {
			values = append(values, num)
		}
	}
	if len(values) == 0 {
		return NumericStats{}
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return NumericStats{
		Mean: mean,
		Std:  std,
		Min:  floats.Min(values),
		Max:  floats.Max(values),
	}
}

// duplicateRowCount counts rows identical to an earlier row across all
// columns; column order does not matter because rows serialize in the
// dataset's fixed column order.
func duplicateRowCount(ds *dataset.Dataset) int {
	seen := make(map[string]struct{}, ds.RowCount())
	duplicates := 0
	var key strings.Builder
	for i := 0; i < ds.RowCount(); i++ {
		key.Reset()
		for _, col := range ds.Columns() {
			key.WriteString(ds.Value(i, col).Canonical())
			key.WriteByte('\x1f')
		}
		k := key.String()
		if _, ok := seen[k]; ok {
			duplicates++
			continue
		}
		seen[k] = struct{}{}
	}
	return duplicates
}
