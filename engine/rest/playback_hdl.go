package rest

import (
	"errors"
	"net/http"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/errs"
)

type PlaybackResponse struct {
	Playback domain.PlaybackState `json:"playback"`
}

type SpeedRequest struct {
	Speed int `json:"speed"`
}

type SeekRequest struct {
	Position *float64 `json:"position"`
}

func (h *Handler) playbackResponse(w http.ResponseWriter, r *http.Request, state domain.PlaybackState) {
	resp := PlaybackResponse{Playback: state}
	h.JSONResponse(r.Context(), w, http.StatusOK, NewSuccessResponse(&resp))
}

// GetPlayback godoc
// @Summary Playback indicator state
// @Tags Playback
// @Produce json
// @Success 200 {object} SuccessResponse[PlaybackResponse]
// @Router /api/v1/playback [get]
func (h *Handler) GetPlayback(w http.ResponseWriter, r *http.Request) {
	h.playbackResponse(w, r, h.Svc.Playback(r.Context()))
}

// Play godoc
// @Summary Start or resume the playback sweep
// @Tags Playback
// @Produce json
// @Success 200 {object} SuccessResponse[PlaybackResponse]
// @Router /api/v1/playback/play [post]
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	h.playbackResponse(w, r, h.Svc.Play(r.Context()))
}

// Pause godoc
// @Summary Freeze the playback indicator
// @Tags Playback
// @Produce json
// @Success 200 {object} SuccessResponse[PlaybackResponse]
// @Router /api/v1/playback/pause [post]
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.playbackResponse(w, r, h.Svc.Pause(r.Context()))
}

// ResetPlayback godoc
// @Summary Stop playback and rewind to zero
// @Tags Playback
// @Produce json
// @Success 200 {object} SuccessResponse[PlaybackResponse]
// @Router /api/v1/playback/reset [post]
func (h *Handler) ResetPlayback(w http.ResponseWriter, r *http.Request) {
	h.playbackResponse(w, r, h.Svc.ResetPlayback(r.Context()))
}

// SetPlaybackSpeed godoc
// @Summary Change the playback multiplier
// @Tags Playback
// @Accept json
// @Produce json
// @Param request body SpeedRequest true "Speed multiplier"
// @Success 200 {object} SuccessResponse[PlaybackResponse]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/playback/speed [put]
func (h *Handler) SetPlaybackSpeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SpeedRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	state, err := h.Svc.SetPlaybackSpeed(ctx, req.Speed)
	if errors.Is(err, domain.ErrInvalidSpeed) {
		h.HandleError(ctx, w, errs.NewHTTPStatusError(http.StatusBadRequest, "Invalid playback speed", err))
		return
	}
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.playbackResponse(w, r, state)
}

// SeekPlayback godoc
// @Summary Move the playback indicator
// @Description Position is a fraction of the horizon and is clamped to [0,1].
// @Tags Playback
// @Accept json
// @Produce json
// @Param request body SeekRequest true "Position"
// @Success 200 {object} SuccessResponse[PlaybackResponse]
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/playback/seek [put]
func (h *Handler) SeekPlayback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SeekRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Position == nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Missing required field: position", nil)
		return
	}
	h.playbackResponse(w, r, h.Svc.SeekPlayback(ctx, *req.Position))
}
