package analyses

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestMLStrategyOutlierProportion(t *testing.T) {
	ds, profile := buildDataset(t, numericRecords(600, 3, 0, 17))
	strategy := NewMLStrategy(DefaultConfig())

	summary, err := strategy.Analyze(context.Background(), ds, profile)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	ml := summary.ML
	if ml == nil || summary.Route != RouteML {
		t.Fatalf("expected ml variant, got %+v", summary)
	}

	if ml.OutlierCount != 60 {
		t.Fatalf("expected round(0.1*600)=60 outliers, got %d", ml.OutlierCount)
	}
	wantPercent := float64(ml.OutlierCount) / 600 * 100
	if math.Abs(ml.OutlierPercent-wantPercent) > 0.01 {
		t.Fatalf("outlier percent %v inconsistent with count %d", ml.OutlierPercent, ml.OutlierCount)
	}
	if ml.OutlierCount > profile.RowCount {
		t.Fatalf("outlier count exceeds row count")
	}

	if ml.ClusterCount < 2 || ml.ClusterCount > 4 {
		t.Fatalf("cluster count %d outside [2,4]", ml.ClusterCount)
	}
	total := 0
	for _, count := range ml.ClusterDistribution {
		total += count
	}
	if total != 600-ml.ExcludedRowCount {
		t.Fatalf("distribution sums to %d, want %d", total, 600-ml.ExcludedRowCount)
	}
}

func TestMLStrategyExcludesRowsWithMissingNumerics(t *testing.T) {
	records := numericRecords(100, 2, 0, 3)
	records[4]["num_0"] = nil
	records[17]["num_1"] = ""
	ds, profile := buildDataset(t, records)

	summary, err := NewMLStrategy(DefaultConfig()).Analyze(context.Background(), ds, profile)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	ml := summary.ML
	if ml.ExcludedRowCount != 2 {
		t.Fatalf("expected 2 excluded rows, got %d", ml.ExcludedRowCount)
	}
	// Percent is relative to the original 100 rows, not the surviving 98.
	wantCount := int(math.Round(0.1 * 98))
	if ml.OutlierCount != wantCount {
		t.Fatalf("expected %d outliers over 98 surviving rows, got %d", wantCount, ml.OutlierCount)
	}
	wantPercent := math.Round(float64(wantCount)/100*100*100) / 100
	if ml.OutlierPercent != wantPercent {
		t.Fatalf("outlier percent %v, want %v against original rows", ml.OutlierPercent, wantPercent)
	}
	total := 0
	for _, count := range ml.ClusterDistribution {
		total += count
	}
	if total != 98 {
		t.Fatalf("distribution sums to %d, want 98", total)
	}
}

func TestMLStrategyInsufficientData(t *testing.T) {
	records := numericRecords(10, 1, 0, 5)
	for i := 1; i < len(records); i++ {
		records[i]["num_0"] = nil
	}
	ds, profile := buildDataset(t, records)

	_, err := NewMLStrategy(DefaultConfig()).Analyze(context.Background(), ds, profile)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestMLStrategyDeterministicForFixedSeed(t *testing.T) {
	ds, profile := buildDataset(t, numericRecords(300, 4, 0, 23))
	strategy := NewMLStrategy(DefaultConfig())

	first, err := strategy.Analyze(context.Background(), ds, profile)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	second, err := strategy.Analyze(context.Background(), ds, profile)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input and seed produced different summaries:\n%+v\n%+v", first.ML, second.ML)
	}
}

func TestMLStrategyCancelledContext(t *testing.T) {
	ds, profile := buildDataset(t, numericRecords(50, 2, 0, 2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMLStrategy(DefaultConfig()).Analyze(ctx, ds, profile); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
