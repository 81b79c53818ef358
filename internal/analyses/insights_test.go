package analyses

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"analyzer-backend/internal/dataset"
)

type staticGenerator struct {
	text string
	err  error
}

func (s staticGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(5 * time.Second):
		return "too late", nil
	}
}

func mlSummaryFixture() (Summary, dataset.Profile) {
	return Summary{Route: RouteML, ML: &MLSummary{
		OutlierCount:        100,
		OutlierPercent:      10,
		ClusterCount:        3,
		ClusterDistribution: map[string]int{"C0": 400, "C1": 350, "C2": 250},
	}}, dataset.Profile{RowCount: 1000, ColumnCount: 9, NumericColumnRatio: 0.89}
}

func TestInsightAgentParsesGeneratedText(t *testing.T) {
	text := "INSIGHTS:\n- outliers concentrate in one group\n- cluster C0 dominates\n\nRECOMMENDATION:\nInvestigate cluster C0\nbefore modeling."
	agent := NewInsightAgent(staticGenerator{text: text}, DefaultConfig())

	summary, profile := mlSummaryFixture()
	report := agent.Report(context.Background(), summary, profile)

	if !report.Generated {
		t.Fatalf("expected generated report")
	}
	if len(report.Insights) != 2 || report.Insights[0] != "outliers concentrate in one group" {
		t.Fatalf("unexpected insights: %v", report.Insights)
	}
	if report.Recommendation != "Investigate cluster C0 before modeling." {
		t.Fatalf("recommendation not collapsed to one paragraph: %q", report.Recommendation)
	}
}

func TestInsightAgentCapsInsights(t *testing.T) {
	var b strings.Builder
	b.WriteString("INSIGHTS:\n")
	for i := 0; i < 10; i++ {
		b.WriteString("- insight\n")
	}
	b.WriteString("RECOMMENDATION:\nok")
	agent := NewInsightAgent(staticGenerator{text: b.String()}, DefaultConfig())

	summary, profile := mlSummaryFixture()
	report := agent.Report(context.Background(), summary, profile)
	if len(report.Insights) != DefaultConfig().MaxInsights {
		t.Fatalf("expected cap of %d insights, got %d", DefaultConfig().MaxInsights, len(report.Insights))
	}
}

func TestInsightAgentFallbackOnGenerationFailure(t *testing.T) {
	agent := NewInsightAgent(staticGenerator{err: errors.New("provider down")}, DefaultConfig())

	summary, profile := mlSummaryFixture()
	report := agent.Report(context.Background(), summary, profile)

	if report.Generated {
		t.Fatalf("fallback report must not claim generation")
	}
	if len(report.Insights) == 0 || report.Recommendation == "" {
		t.Fatalf("fallback must produce non-empty insights and recommendation, got %+v", report)
	}
	if !strings.Contains(report.Insights[0], "10.00%") {
		t.Fatalf("fallback should derive from summary numerics, got %q", report.Insights[0])
	}
}

func TestInsightAgentFallbackOnUnparseableText(t *testing.T) {
	agent := NewInsightAgent(staticGenerator{text: "no bullets here at all"}, DefaultConfig())
	summary, profile := mlSummaryFixture()
	report := agent.Report(context.Background(), summary, profile)
	if report.Generated {
		t.Fatalf("expected fallback for unparseable text")
	}
	if len(report.Insights) == 0 {
		t.Fatalf("fallback insights empty")
	}
}

func TestInsightAgentTimesOut(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GenerateTimeout = 10 * time.Millisecond
	agent := NewInsightAgent(slowGenerator{}, cfg)

	summary, profile := mlSummaryFixture()
	start := time.Now()
	report := agent.Report(context.Background(), summary, profile)
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not enforced")
	}
	if report.Generated || len(report.Insights) == 0 {
		t.Fatalf("expected template report after timeout, got %+v", report)
	}
}

func TestInsightAgentNilClientUsesTemplates(t *testing.T) {
	agent := NewInsightAgent(nil, DefaultConfig())
	summary, profile := mlSummaryFixture()

	first := agent.Report(context.Background(), summary, profile)
	second := agent.Report(context.Background(), summary, profile)
	if first.Generated {
		t.Fatalf("nil client must use templates")
	}
	if len(first.Insights) != len(second.Insights) || first.Recommendation != second.Recommendation {
		t.Fatalf("template reports must be deterministic")
	}
	for i := range first.Insights {
		if first.Insights[i] != second.Insights[i] {
			t.Fatalf("insight %d differs between identical calls", i)
		}
	}
}

func TestInsightAgentEDAFallbackMentionsAudit(t *testing.T) {
	summary := Summary{Route: RouteEDA, EDA: &EDASummary{
		MissingValueCounts: map[string]int{"a": 2, "b": 0},
		DuplicateRowCount:  1,
	}}
	profile := dataset.Profile{RowCount: 10, ColumnCount: 2, NumericColumnRatio: 0.5}
	report := NewInsightAgent(nil, DefaultConfig()).Report(context.Background(), summary, profile)

	joined := strings.Join(report.Insights, " ")
	if !strings.Contains(joined, "2 missing values") || !strings.Contains(joined, "1 duplicate") {
		t.Fatalf("eda fallback missing audit numbers: %v", report.Insights)
	}
}
