package analyses

import (
	"context"
	"fmt"
	"math"

	"analyzer-backend/internal/dataset"
	"analyzer-backend/internal/ml"
)

// MLStrategy runs seeded outlier detection and clustering over the numeric
// columns. Rows with any missing numeric cell are excluded before modeling
// and the excluded count is reported, so the consumer can see how much data
// the stage dropped.
type MLStrategy struct {
	Contamination float64
	ClusterMin    int
	ClusterMax    int
	Seed          int64
}

// NewMLStrategy builds the strategy from config.
func NewMLStrategy(cfg Config) *MLStrategy {
	return &MLStrategy{
		Contamination: cfg.Contamination,
		ClusterMin:    cfg.ClusterMin,
		ClusterMax:    cfg.ClusterMax,
		Seed:          cfg.Seed,
	}
}

// Route identifies the strategy.
func (s *MLStrategy) Route() Route { return RouteML }

// Analyze produces the ML summary. Fails with ErrInsufficientData when
// fewer than ClusterMin rows survive numeric filtering; the caller falls
// back to EDA in that case.
func (s *MLStrategy) Analyze(ctx context.Context, ds *dataset.Dataset, profile dataset.Profile) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	if len(profile.NumericColumns) == 0 {
		return Summary{}, fmt.Errorf("%w: no numeric columns", ErrInsufficientData)
	}

	matrix, excluded := numericMatrix(ds, profile.NumericColumns)
	if len(matrix) < s.ClusterMin {
		return Summary{}, fmt.Errorf("%w: %d usable rows", ErrInsufficientData, len(matrix))
	}

	scaled := ml.Standardize(matrix)

	forest := ml.NewIsolationForest(0, 0, s.Seed)
	if err := forest.Fit(scaled); err != nil {
		return Summary{}, err
	}
	scores, err := forest.Scores(scaled)
	if err != nil {
		return Summary{}, err
	}
	flagCount := int(math.Round(s.Contamination * float64(len(scaled))))
	flags := ml.TopAnomalies(scores, flagCount)
	outliers := 0
	for _, flagged := range flags {
		if flagged {
			outliers++
		}
	}

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	clustering, err := ml.SelectClusters(scaled, s.ClusterMin, s.ClusterMax, s.Seed)
	if err != nil {
		return Summary{}, err
	}

	summary := &MLSummary{
		OutlierCount:        outliers,
		OutlierPercent:      round2(float64(outliers) / float64(profile.RowCount) * 100),
		ExcludedRowCount:    excluded,
		ClusterCount:        clustering.K,
		ClusterDistribution: clustering.Distribution(),
	}
	return Summary{Route: RouteML, ML: summary}, nil
}

// numericMatrix extracts the numeric sub-table, skipping rows with any
// missing or unparsable numeric cell.
func numericMatrix(ds *dataset.Dataset, columns []string) ([][]float64, int) {
	var matrix [][]float64
	excluded := 0
	for i := 0; i < ds.RowCount(); i++ {
		row := make([]float64, 0, len(columns))
		usable := true
		for _, col := range columns {
			val := ds.Value(i, col)
			if val.IsMissing() {
				usable = false
				break
			}
			num, ok := val.AsNumber()
			if !ok {
				usable = false
				break
			}
			row = append(row, num)
		}
		if !usable {
			excluded++
			continue
		}
		matrix = append(matrix, row)
	}
	return matrix, excluded
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
