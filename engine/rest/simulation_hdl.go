package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/errs"
)

// ParametersRequest updates the load sliders. Omitted fields keep their current value.
type ParametersRequest struct {
	CPUPercent    *int    `json:"cpu_percent,omitempty"`
	MemoryPercent *int    `json:"memory_percent,omitempty"`
	IOPercent     *int    `json:"io_percent,omitempty"`
	ProcessCount  *int    `json:"process_count,omitempty"`
	WorkloadType  *string `json:"workload_type,omitempty"`
}

func (req ParametersRequest) patch() (domain.ParametersPatch, error) {
	patch := domain.ParametersPatch{
		CPUPercent:    req.CPUPercent,
		MemoryPercent: req.MemoryPercent,
		IOPercent:     req.IOPercent,
		ProcessCount:  req.ProcessCount,
	}
	if req.WorkloadType != nil {
		wt, err := domain.ParseWorkloadType(*req.WorkloadType)
		if err != nil {
			return patch, errs.NewHTTPStatusError(http.StatusBadRequest, "Invalid workload_type", err)
		}
		patch.WorkloadType = &wt
	}
	return patch, nil
}

type ParametersResponse struct {
	Parameters domain.LoadParameters `json:"parameters"`
}

// GetParameters godoc
// @Summary Get load parameters
// @Tags Simulation
// @Produce json
// @Success 200 {object} SuccessResponse[ParametersResponse]
// @Router /api/v1/parameters [get]
func (h *Handler) GetParameters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := ParametersResponse{Parameters: h.Svc.Parameters(ctx)}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

// UpdateParameters godoc
// @Summary Update load parameters
// @Description Stores the clamped parameters and schedules a debounced classification cycle.
// @Tags Simulation
// @Accept json
// @Produce json
// @Param request body ParametersRequest true "Slider values"
// @Success 202 {object} SuccessResponse[ParametersResponse]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/parameters [put]
func (h *Handler) UpdateParameters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ParametersRequest
	err := h.JSONBind(r, &req)
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := ParametersResponse{Parameters: h.Svc.PatchParameters(ctx, patch)}
	h.JSONResponse(ctx, w, http.StatusAccepted, NewSuccessResponse(&resp))
}

type SnapshotResponse struct {
	ID             string                      `json:"id"`
	Generation     uint64                      `json:"generation"`
	Parameters     domain.LoadParameters       `json:"parameters"`
	Processes      []domain.SimulatedProcess   `json:"processes,omitempty"`
	Classification domain.ClassificationResult `json:"classification"`
	Verdict        domain.DisplayVerdict       `json:"verdict"`
	CreatedAt      time.Time                   `json:"created_at"`
}

func newSnapshotResponse(s *domain.Snapshot, withProcesses bool) *SnapshotResponse {
	resp := &SnapshotResponse{
		ID:             s.ID,
		Generation:     s.Generation,
		Parameters:     s.Parameters,
		Classification: s.Classification,
		Verdict:        s.Verdict,
		CreatedAt:      s.CreatedAt,
	}
	if withProcesses {
		resp.Processes = s.Processes
	}
	return resp
}

// Classify godoc
// @Summary Run a classification cycle now
// @Description Runs one cycle synchronously with the posted parameters, or the current ones when the body is empty.
// @Tags Simulation
// @Accept json
// @Produce json
// @Param request body ParametersRequest false "Slider values"
// @Success 200 {object} SuccessResponse[SnapshotResponse]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/classify [post]
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ParametersRequest
	err := h.JSONBind(r, &req)
	if err != nil && !errors.Is(err, io.EOF) {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	snapshot, err := h.Svc.RunCycle(ctx, patch.Apply(h.Svc.Parameters(ctx)))
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(newSnapshotResponse(snapshot, true)))
}

// GetVerdict godoc
// @Summary Latest verdict
// @Tags Simulation
// @Produce json
// @Success 200 {object} SuccessResponse[SnapshotResponse]
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/verdict [get]
func (h *Handler) GetVerdict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snapshot, ok := h.Svc.Latest(ctx)
	if !ok {
		h.HandleError(ctx, w, errs.NewHTTPStatusError(http.StatusNotFound, domain.ErrNoSnapshot.Error(), nil))
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(newSnapshotResponse(snapshot, r.URL.Query().Get("processes") == "true")))
}

type TimelineResponse struct {
	Generation uint64          `json:"generation"`
	Timeline   domain.Timeline `json:"timeline"`
}

// GetTimeline godoc
// @Summary Latest timeline
// @Tags Simulation
// @Produce json
// @Success 200 {object} SuccessResponse[TimelineResponse]
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/timeline [get]
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snapshot, ok := h.Svc.Latest(ctx)
	if !ok {
		h.HandleError(ctx, w, errs.NewHTTPStatusError(http.StatusNotFound, domain.ErrNoSnapshot.Error(), nil))
		return
	}
	resp := TimelineResponse{Generation: snapshot.Generation, Timeline: snapshot.Timeline}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

type HistoryResponse struct {
	Snapshots []*domain.SnapshotSummary `json:"snapshots"`
}

// ListHistory godoc
// @Summary Recent classification cycles
// @Tags Simulation
// @Produce json
// @Param limit query int false "Number of cycles, newest first"
// @Param source query string false "remote or fallback"
// @Success 200 {object} SuccessResponse[HistoryResponse]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/history [get]
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opt := &domain.QuerySnapshotOptions{}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		opt.Limit = n
	}
	switch source := domain.ResultSource(r.URL.Query().Get("source")); source {
	case "", domain.SourceRemote, domain.SourceFallback:
		opt.Source = source
	default:
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid source", nil)
		return
	}
	if err := h.Svc.ListSnapshots(ctx, opt); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := HistoryResponse{Snapshots: opt.Result}
	if resp.Snapshots == nil {
		resp.Snapshots = []*domain.SnapshotSummary{}
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}
