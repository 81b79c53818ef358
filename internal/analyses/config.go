package analyses

import "time"

// Config carries every analysis tunable. It is threaded explicitly through
// the pipeline instead of read from ambient state, so runs stay
// independently reproducible and testable in parallel.
type Config struct {
	// RoutingRowThreshold and RoutingNumericRatio drive the route rule:
	// ML iff rows > threshold AND numeric ratio > ratio (strict on both).
	RoutingRowThreshold int
	RoutingNumericRatio float64

	// Contamination is the fraction of rows the outlier detector flags.
	Contamination float64

	// ClusterMin and ClusterMax bound the adaptive cluster count.
	ClusterMin int
	ClusterMax int

	// Seed feeds every random generator in the ML strategy.
	Seed int64

	// GenerateTimeout bounds the insight generation call.
	GenerateTimeout time.Duration

	// MaxInsights caps how many insight lines are kept from generated text.
	MaxInsights int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		RoutingRowThreshold: 500,
		RoutingNumericRatio: 0.5,
		Contamination:       0.1,
		ClusterMin:          2,
		ClusterMax:          4,
		Seed:                42,
		GenerateTimeout:     30 * time.Second,
		MaxInsights:         5,
	}
}
