package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"analyzer-backend/internal/analyses"
)

// tunablesFile is the YAML shape of the optional analysis config file.
// Zero fields leave the default untouched, so a partial file is fine.
type tunablesFile struct {
	Routing struct {
		RowThreshold int     `yaml:"row_threshold"`
		NumericRatio float64 `yaml:"numeric_ratio"`
	} `yaml:"routing"`
	ML struct {
		Contamination float64 `yaml:"contamination"`
		ClusterMin    int     `yaml:"cluster_min"`
		ClusterMax    int     `yaml:"cluster_max"`
		Seed          int64   `yaml:"seed"`
	} `yaml:"ml"`
	Insights struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
		MaxInsights    int `yaml:"max_insights"`
	} `yaml:"insights"`
}

func applyTunables(path string, cfg *analyses.Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var parsed tunablesFile
	if err := yaml.NewDecoder(file).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	// Apply to a copy so a file that fails validation leaves the defaults
	// untouched.
	out := *cfg

	if parsed.Routing.RowThreshold > 0 {
		out.RoutingRowThreshold = parsed.Routing.RowThreshold
	}
	if parsed.Routing.NumericRatio > 0 {
		out.RoutingNumericRatio = parsed.Routing.NumericRatio
	}
	if parsed.ML.Contamination > 0 {
		out.Contamination = parsed.ML.Contamination
	}
	if parsed.ML.ClusterMin > 0 {
		out.ClusterMin = parsed.ML.ClusterMin
	}
	if parsed.ML.ClusterMax > 0 {
		out.ClusterMax = parsed.ML.ClusterMax
	}
	if parsed.ML.Seed != 0 {
		out.Seed = parsed.ML.Seed
	}
	if parsed.Insights.TimeoutSeconds > 0 {
		out.GenerateTimeout = time.Duration(parsed.Insights.TimeoutSeconds) * time.Second
	}
	if parsed.Insights.MaxInsights > 0 {
		out.MaxInsights = parsed.Insights.MaxInsights
	}
	if out.ClusterMax < out.ClusterMin {
		return fmt.Errorf("cluster_max %d below cluster_min %d", out.ClusterMax, out.ClusterMin)
	}

	*cfg = out
	return nil
}
