package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/service"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/errs"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/middleware"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const serviceName = "Deadlock Risk Classifier"

// ErrorResponse is the body of every non-200 reply. The engine reads only Error.
type ErrorResponse struct {
	Error string `json:"error"`
}

type VersionResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Endpoints string `json:"endpoints"`
}

// HealthResponse reports whether a model is ready to answer predictions.
type HealthResponse struct {
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
	Timestamp    string `json:"timestamp"`
	Service      string `json:"service"`
}

// Predictor scores one workload snapshot.
type Predictor interface {
	Predict(ctx context.Context, input *domain.PredictionInput) (*domain.Prediction, error)
}

type Params struct {
	fx.In
	Service service.Service
}

func NewHandler(params Params) (*Handler, error) {
	return &Handler{predictor: params.Service}, nil
}

type Handler struct {
	predictor Predictor
}

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))

	api := engine.Group("/api", echo.WrapMiddleware(middleware.LoggerMiddleware))
	{
		api.GET("/health", h.echoHandler(h.HealthCheck))
		api.POST("/predict-realtime", h.echoHandler(h.PredictRealtime))
	}
}

// PredictRealtime godoc
// @Summary Classify a simulated workload
// @Description Scores aggregate load and process count into SAFE, UNSAFE or DEADLOCK_PRONE.
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body PredictRealtimeRequest true "Simulated load"
// @Success 200 {object} PredictRealtimeResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/predict-realtime [post]
func (h *Handler) PredictRealtime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	input, err := decodeInput(r)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}

	prediction, err := h.predictor.Predict(ctx, input)
	if err != nil {
		h.writeError(ctx, w, err)
		return
	}
	confidence := prediction.Confidence
	h.writeJSON(ctx, w, http.StatusOK, PredictRealtimeResponse{
		Prediction:    Prediction(prediction.Label),
		Probabilities: prediction.Probabilities.Map(),
		Confidence:    &confidence,
	})
}

// decodeInput turns the request body into a prediction input, reporting the first
// absent aggregate the same way the trained-model server does.
func decodeInput(r *http.Request) (*domain.PredictionInput, error) {
	var req PredictRealtimeRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		return nil, errs.NewHTTPStatusError(http.StatusBadRequest, "No data provided", err)
	}
	if err != nil {
		return nil, errs.NewHTTPStatusError(http.StatusBadRequest, "Invalid request payload", err)
	}
	if field := req.missingField(); field != "" {
		return nil, errs.NewHTTPStatusError(http.StatusBadRequest, "Missing required field: "+field, nil)
	}
	return req.toInput(), nil
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports readiness and whether the scoring model is loaded.
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(r.Context(), w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		ModelsLoaded: h.predictor != nil,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Service:      serviceName,
	})
}

// Version godoc
// @Summary Get service version
// @Tags System
// @Produce json
// @Success 200 {object} VersionResponse
// @Router /version [get]
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(r.Context(), w, http.StatusOK, VersionResponse{
		Message:   serviceName,
		Version:   "1.0.0",
		Endpoints: "/api/predict-realtime (POST), /api/health (GET), /health (GET)",
	})
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("failed to encode prediction reply")
	}
}

// writeError maps client mistakes to their status and anything else to a 500 "Prediction failed".
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, msg := http.StatusInternalServerError, "Prediction failed"
	if httpErr, ok := errs.IsHTTPStatusError(err); ok {
		status, msg = httpErr.StatusCode, httpErr.Message
		if httpErr.OriginalErr != nil {
			err = httpErr.OriginalErr
		}
	}
	if status >= http.StatusInternalServerError {
		logger.Logger(ctx).Error().Err(err).Msg(msg)
	} else {
		logger.Logger(ctx).Warn().Err(err).Msg(msg)
	}
	h.writeJSON(ctx, w, status, ErrorResponse{Error: msg})
}

func (h *Handler) echoHandler(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(handlerFunc))
}
