package analyses

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"analyzer-backend/internal/dataset"
	"analyzer-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/datasets/analyze", h.analyzeDataset)
	rg.GET("/runs/:id", h.getRun)
}

type analyzeRequest struct {
	DatasetName       string           `json:"dataset_name"`
	RowCountHint      int              `json:"row_count_hint"`
	Rows              []map[string]any `json:"rows" binding:"required,min=1"`
	RequesterIdentity string           `json:"requester_identity"`
}

type analyzeResponse struct {
	RunID          string   `json:"run_id"`
	Route          Route    `json:"route"`
	Summary        Summary  `json:"summary"`
	Insights       []string `json:"insights"`
	Recommendation string   `json:"recommendation"`
}

func (h *Handler) analyzeDataset(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "rows are required", nil)
		return
	}

	run, err := h.Svc.Analyze(c.Request.Context(), AnalyzeRequest{
		DatasetName:       req.DatasetName,
		RowCountHint:      req.RowCountHint,
		Records:           req.Rows,
		RequesterIdentity: req.RequesterIdentity,
	})
	if err != nil {
		var malformed *dataset.MalformedRowError
		switch {
		case errors.Is(err, dataset.ErrEmptyDataset):
			respond.Error(c, http.StatusBadRequest, "empty_dataset", "dataset must have at least one row and one column", nil)
		case errors.As(err, &malformed):
			respond.Error(c, http.StatusBadRequest, "malformed_row", malformed.Error(), []map[string]any{
				{"row": malformed.Index},
			})
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			// Client went away; nothing useful to send.
			c.AbortWithStatus(http.StatusRequestTimeout)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
		}
		return
	}

	c.Set("runId", run.ID)
	c.Set("route", string(run.Route))
	respond.JSON(c, http.StatusOK, analyzeResponse{
		RunID:          run.ID,
		Route:          run.Route,
		Summary:        run.Summary,
		Insights:       run.Report.Insights,
		Recommendation: run.Report.Recommendation,
	})
}

func (h *Handler) getRun(c *gin.Context) {
	runID := c.Param("id")
	if runID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "run id is required", nil)
		return
	}

	run, err := h.Svc.Get(c.Request.Context(), runID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "run not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch run", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, run)
}
