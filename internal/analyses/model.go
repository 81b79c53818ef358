package analyses

import (
	"encoding/json"
	"time"

	"analyzer-backend/internal/dataset"
)

// Route is the analysis strategy chosen for a run.
type Route string

const (
	RouteML  Route = "ml"
	RouteEDA Route = "eda"
)

// Decision is the router's output: the chosen route plus the profile that
// produced it, kept for traceability.
type Decision struct {
	Route   Route           `json:"route"`
	Profile dataset.Profile `json:"profile"`
}

// MLSummary holds the outlier and clustering results of the ML strategy.
// OutlierPercent is relative to the original row count, not the filtered
// one, so percentages stay comparable across runs with different
// missing-data loss.
type MLSummary struct {
	OutlierCount        int            `json:"outlier_count"`
	OutlierPercent      float64        `json:"outlier_percent"`
	ExcludedRowCount    int            `json:"excluded_row_count"`
	ClusterCount        int            `json:"cluster_count"`
	ClusterDistribution map[string]int `json:"cluster_distribution"`
}

// NumericStats are the descriptive statistics for one numeric column.
type NumericStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// EDASummary holds the exploratory audit of the dataset.
type EDASummary struct {
	MissingValueCounts  map[string]int          `json:"missing_value_counts"`
	DuplicateRowCount   int                     `json:"duplicate_row_count"`
	ColumnTypeBreakdown map[string]string       `json:"column_type_breakdown"`
	NumericStats        map[string]NumericStats `json:"numeric_stats"`
}

// Summary is the variant-tagged result of whichever strategy ran. Exactly
// one of ML or EDA is set, matching Route.
type Summary struct {
	Route Route
	ML    *MLSummary
	EDA   *EDASummary
}

// MarshalJSON flattens the active variant's fields next to a "variant" tag.
func (s Summary) MarshalJSON() ([]byte, error) {
	switch s.Route {
	case RouteML:
		return json.Marshal(struct {
			Variant Route `json:"variant"`
			*MLSummary
		}{Variant: s.Route, MLSummary: s.ML})
	default:
		return json.Marshal(struct {
			Variant Route `json:"variant"`
			*EDASummary
		}{Variant: s.Route, EDASummary: s.EDA})
	}
}

// Report is the insight agent's output. Generated is false when the
// template fallback produced it.
type Report struct {
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation"`
	Generated      bool     `json:"generated"`
}

// Run binds everything produced for one request. Runs never share mutable
// state; each owns its dataset, profile, summary, and report.
type Run struct {
	ID                string          `json:"run_id"`
	DatasetName       string          `json:"dataset_name"`
	RequesterIdentity string          `json:"requester_identity,omitempty"`
	Profile           dataset.Profile `json:"profile"`
	Route             Route           `json:"route"`
	Summary           Summary         `json:"summary"`
	Report            Report          `json:"report"`
	CreatedAt         time.Time       `json:"created_at"`
}
