package analyses

import (
	"context"
	"math"
	"testing"
)

func TestEDAStrategySummary(t *testing.T) {
	records := []map[string]any{
		{"age": 30.0, "city": "porto", "active": true, "score": 1.0},
		{"age": 40.0, "city": "", "active": false, "score": 2.0},
		{"age": nil, "city": "lisboa", "active": true, "score": 3.0},
		{"age": 50.0, "city": "braga", "active": nil, "score": 4.0},
	}
	ds, profile := buildDataset(t, records)

	summary, err := NewEDAStrategy().Analyze(context.Background(), ds, profile)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	eda := summary.EDA
	if eda == nil || summary.Route != RouteEDA {
		t.Fatalf("expected eda variant, got %+v", summary)
	}

	if len(eda.MissingValueCounts) != 4 {
		t.Fatalf("expected counts for all 4 columns, got %v", eda.MissingValueCounts)
	}
	wantMissing := map[string]int{"age": 1, "city": 1, "active": 1, "score": 0}
	for col, want := range wantMissing {
		if eda.MissingValueCounts[col] != want {
			t.Fatalf("missing[%s] = %d, want %d", col, eda.MissingValueCounts[col], want)
		}
	}

	wantTypes := map[string]string{"age": "numeric", "city": "text", "active": "boolean", "score": "numeric"}
	for col, want := range wantTypes {
		if eda.ColumnTypeBreakdown[col] != want {
			t.Fatalf("type[%s] = %s, want %s", col, eda.ColumnTypeBreakdown[col], want)
		}
	}

	stats, ok := eda.NumericStats["age"]
	if !ok {
		t.Fatalf("expected stats for age")
	}
	if stats.Mean != 40 || stats.Min != 30 || stats.Max != 50 {
		t.Fatalf("age stats wrong: %+v", stats)
	}
	if math.Abs(stats.Std-10) > 1e-9 {
		t.Fatalf("age std = %v, want 10", stats.Std)
	}
}

func TestEDAStrategyDuplicates(t *testing.T) {
	unique := []map[string]any{
		{"a": 1.0, "b": "x"},
		{"a": 2.0, "b": "y"},
		{"a": 3.0, "b": "z"},
	}
	ds, profile := buildDataset(t, unique)
	summary, err := NewEDAStrategy().Analyze(context.Background(), ds, profile)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if summary.EDA.DuplicateRowCount != 0 {
		t.Fatalf("unique rows reported %d duplicates", summary.EDA.DuplicateRowCount)
	}

	// Duplicating every row counts all but one copy of each group.
	doubled := append(append([]map[string]any{}, unique...), unique...)
	ds, profile = buildDataset(t, doubled)
	summary, err = NewEDAStrategy().Analyze(context.Background(), ds, profile)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if summary.EDA.DuplicateRowCount != 3 {
		t.Fatalf("expected 3 duplicates after doubling, got %d", summary.EDA.DuplicateRowCount)
	}
}

func TestEDAStrategyAllMissingColumn(t *testing.T) {
	records := []map[string]any{
		{"v": nil, "w": 1.0},
		{"v": nil, "w": 2.0},
	}
	ds, profile := buildDataset(t, records)
	summary, err := NewEDAStrategy().Analyze(context.Background(), ds, profile)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if summary.EDA.ColumnTypeBreakdown["v"] != "null" {
		t.Fatalf("all-missing column typed %q, want null", summary.EDA.ColumnTypeBreakdown["v"])
	}
	if summary.EDA.MissingValueCounts["v"] != 2 {
		t.Fatalf("expected 2 missing in v, got %d", summary.EDA.MissingValueCounts["v"])
	}
}
