package analyses

import "analyzer-backend/internal/dataset"

// Router selects the analysis strategy from the dataset profile. The rule
// is total over valid profiles and has no failure modes.
type Router struct {
	RowThreshold int
	NumericRatio float64
}

// Decide applies the routing rule: ML only when the dataset is both large
// (strictly more rows than the threshold) and mostly numeric (ratio
// strictly above the cutoff). Everything else goes to EDA, including the
// exact boundary values.
func (r Router) Decide(profile dataset.Profile) Decision {
	route := RouteEDA
	if profile.RowCount > r.RowThreshold && profile.NumericColumnRatio > r.NumericRatio {
		route = RouteML
	}
	return Decision{Route: route, Profile: profile}
}
