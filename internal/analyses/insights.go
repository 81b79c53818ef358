package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"analyzer-backend/internal/dataset"
	"analyzer-backend/internal/llm"
	"analyzer-backend/internal/shared/telemetry"
)

// InsightAgent turns a structured summary into natural-language insights
// plus one recommendation. Generation runs under an explicit timeout and
// degrades to a deterministic template report whenever the provider is
// missing, fails, times out, or returns text that parses to nothing. A run
// is never failed because of the generation dependency.
type InsightAgent struct {
	LLM         llm.Client
	Timeout     time.Duration
	MaxInsights int
}

// NewInsightAgent builds the agent. A nil client forces the template path.
func NewInsightAgent(client llm.Client, cfg Config) *InsightAgent {
	return &InsightAgent{
		LLM:         client,
		Timeout:     cfg.GenerateTimeout,
		MaxInsights: cfg.MaxInsights,
	}
}

// Report produces the insight report for the given summary and profile.
func (a *InsightAgent) Report(ctx context.Context, summary Summary, profile dataset.Profile) Report {
	if a.LLM == nil {
		return a.fallback(summary, profile)
	}

	genCtx := ctx
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	text, err := a.LLM.Generate(genCtx, a.buildPrompt(summary, profile))
	if err != nil {
		telemetry.Error("insights.generate_failed", map[string]any{
			"route": summary.Route,
			"error": err.Error(),
		})
		return a.fallback(summary, profile)
	}

	insights, recommendation := parseInsightText(text, a.maxInsights())
	if len(insights) == 0 {
		telemetry.Info("insights.parse_empty", map[string]any{"route": summary.Route})
		return a.fallback(summary, profile)
	}
	if recommendation == "" {
		recommendation = a.fallback(summary, profile).Recommendation
	}
	return Report{Insights: insights, Recommendation: recommendation, Generated: true}
}

func (a *InsightAgent) maxInsights() int {
	if a.MaxInsights > 0 {
		return a.MaxInsights
	}
	return DefaultConfig().MaxInsights
}

func (a *InsightAgent) buildPrompt(summary Summary, profile dataset.Profile) string {
	encoded, err := json.Marshal(summary)
	if err != nil {
		encoded = []byte("{}")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis type: %s\n", strings.ToUpper(string(summary.Route)))
	fmt.Fprintf(&b, "Dataset: %d rows, %d columns, %.0f%% numeric\n",
		profile.RowCount, profile.ColumnCount, profile.NumericColumnRatio*100)
	fmt.Fprintf(&b, "Results: %s\n\n", encoded)
	fmt.Fprintf(&b, "Write up to %d short observations about this dataset and one recommendation.\n", a.maxInsights())
	b.WriteString("Answer in exactly this format:\n")
	b.WriteString("INSIGHTS:\n- first observation\n- second observation\n\nRECOMMENDATION:\none sentence\n")
	return b.String()
}

// parseInsightText applies the documented parsing rule: the text splits on
// the first RECOMMENDATION: marker (case-insensitive); bullet lines above it
// become insights, capped at max; everything below collapses into one
// recommendation paragraph.
func parseInsightText(text string, max int) ([]string, string) {
	body, recommendation := text, ""
	if idx := strings.Index(strings.ToUpper(text), "RECOMMENDATION:"); idx >= 0 {
		body = text[:idx]
		recommendation = strings.Join(strings.Fields(text[idx+len("RECOMMENDATION:"):]), " ")
	}

	var insights []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "-* "))
		if line == "" {
			continue
		}
		insights = append(insights, line)
		if len(insights) == max {
			break
		}
	}
	return insights, recommendation
}

// fallback builds the deterministic template report from the summary's
// numeric fields alone.
func (a *InsightAgent) fallback(summary Summary, profile dataset.Profile) Report {
	var insights []string
	var recommendation string

	switch {
	case summary.Route == RouteML && summary.ML != nil:
		s := summary.ML
		insights = append(insights,
			fmt.Sprintf("Dataset has %.2f%% outliers (%d of %d rows).", s.OutlierPercent, s.OutlierCount, profile.RowCount),
			fmt.Sprintf("Identified %d groups; the largest holds %d rows.", s.ClusterCount, largestCluster(s.ClusterDistribution)))
		if s.ExcludedRowCount > 0 {
			insights = append(insights,
				fmt.Sprintf("%d rows were excluded from modeling due to missing numeric values.", s.ExcludedRowCount))
		}
		recommendation = "Review the flagged outliers before using this dataset for modeling."

	case summary.EDA != nil:
		s := summary.EDA
		insights = append(insights,
			fmt.Sprintf("Dataset has %d rows and %d columns.", profile.RowCount, profile.ColumnCount),
			fmt.Sprintf("Found %d missing values across %d columns.", totalMissing(s.MissingValueCounts), columnsWithMissing(s.MissingValueCounts)),
			fmt.Sprintf("Found %d duplicate rows.", s.DuplicateRowCount))
		if s.DuplicateRowCount > 0 || totalMissing(s.MissingValueCounts) > 0 {
			recommendation = "Address missing values and duplicate rows before deeper analysis."
		} else {
			recommendation = "The dataset looks clean; proceed with deeper analysis."
		}

	default:
		insights = append(insights, "Dataset processed.")
		recommendation = "Analysis complete."
	}

	return Report{Insights: insights, Recommendation: recommendation, Generated: false}
}

func largestCluster(distribution map[string]int) int {
	labels := make([]string, 0, len(distribution))
	for label := range distribution {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	largest := 0
	for _, label := range labels {
		if distribution[label] > largest {
			largest = distribution[label]
		}
	}
	return largest
}

func totalMissing(counts map[string]int) int {
	total := 0
	for _, count := range counts {
		total += count
	}
	return total
}

func columnsWithMissing(counts map[string]int) int {
	cols := 0
	for _, count := range counts {
		if count > 0 {
			cols++
		}
	}
	return cols
}
