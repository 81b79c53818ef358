package analyses

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"analyzer-backend/internal/dataset"
	"analyzer-backend/internal/llm"
	"analyzer-backend/internal/shared/telemetry"
)

// AnalyzeRequest is the structured input consumed from the transport layer.
// RequesterIdentity is opaque and passed through unused.
type AnalyzeRequest struct {
	DatasetName       string
	RowCountHint      int
	Records           []map[string]any
	RequesterIdentity string
}

// Service orchestrates the pipeline: profile, route, strategy, insights.
// Each call is a self-contained sequential run; concurrent runs share
// nothing mutable, so the service needs no locking of its own.
type Service struct {
	Repo     Repo
	Router   Router
	ML       *MLStrategy
	EDA      *EDAStrategy
	Insights *InsightAgent
}

// NewService wires the pipeline from config. A nil llm client is valid and
// keeps every report on the template fallback.
func NewService(repo Repo, client llm.Client, cfg Config) *Service {
	return &Service{
		Repo:     repo,
		Router:   Router{RowThreshold: cfg.RoutingRowThreshold, NumericRatio: cfg.RoutingNumericRatio},
		ML:       NewMLStrategy(cfg),
		EDA:      NewEDAStrategy(),
		Insights: NewInsightAgent(client, cfg),
	}
}

// Analyze runs the full pipeline and returns the completed run. The
// contract is all-or-nothing: no partial results are ever returned, with
// the single exception that generation failure degrades to the template
// report inside the insight agent. Context is checked between stages, so a
// cancelled request abandons the pipeline at the next stage boundary.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (Run, error) {
	ds, err := dataset.FromRecords(req.Records)
	if err != nil {
		return Run{}, err
	}

	profile, err := ds.Profile()
	if err != nil {
		return Run{}, err
	}
	if req.RowCountHint > 0 && req.RowCountHint != profile.RowCount {
		telemetry.Info("analysis.row_hint_mismatch", map[string]any{
			"dataset": req.DatasetName,
			"hint":    req.RowCountHint,
			"actual":  profile.RowCount,
		})
	}
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}

	decision := s.Router.Decide(profile)
	summary, err := s.runStrategy(ctx, decision, ds, profile)
	if err != nil {
		return Run{}, err
	}
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}

	report := s.Insights.Report(ctx, summary, profile)

	run := Run{
		ID:                uuid.NewString(),
		DatasetName:       req.DatasetName,
		RequesterIdentity: req.RequesterIdentity,
		Profile:           profile,
		Route:             summary.Route,
		Summary:           summary,
		Report:            report,
		CreatedAt:         time.Now().UTC(),
	}

	if s.Repo != nil {
		if err := s.Repo.Create(ctx, run); err != nil {
			return Run{}, err
		}
	}

	telemetry.Info("analysis.complete", map[string]any{
		"run_id":    run.ID,
		"dataset":   run.DatasetName,
		"route":     run.Route,
		"rows":      profile.RowCount,
		"columns":   profile.ColumnCount,
		"generated": report.Generated,
	})
	return run, nil
}

// runStrategy executes the routed strategy. An ML run that fails with
// ErrInsufficientData falls back to EDA; the returned summary always states
// the route that actually produced it.
func (s *Service) runStrategy(ctx context.Context, decision Decision, ds *dataset.Dataset, profile dataset.Profile) (Summary, error) {
	var strategy Strategy = s.EDA
	if decision.Route == RouteML {
		strategy = s.ML
	}

	summary, err := strategy.Analyze(ctx, ds, profile)
	if err == nil {
		return summary, nil
	}
	if decision.Route == RouteML && errors.Is(err, ErrInsufficientData) {
		telemetry.Info("analysis.ml_fallback", map[string]any{
			"reason": err.Error(),
			"rows":   profile.RowCount,
		})
		return s.EDA.Analyze(ctx, ds, profile)
	}
	return Summary{}, err
}

// Get returns a stored run by ID.
func (s *Service) Get(ctx context.Context, runID string) (Run, error) {
	if runID == "" {
		return Run{}, errors.New("runID is required")
	}
	if s.Repo == nil {
		return Run{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, runID)
}
