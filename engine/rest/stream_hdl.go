package rest

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
)

const (
	streamWriteWait = 5 * time.Second
	streamPongWait  = 60 * time.Second
)

// StreamMessage is the envelope of every websocket frame.
type StreamMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

const (
	MessageConnected = "connected"
	MessageFrame     = "frame"
	MessagePong      = "pong"
)

// Stream godoc
// @Summary Live render stream
// @Description Upgrades to a websocket that pushes verdict, probabilities, timeline and playback events,
// @Description plus playback frames while the sweep is running. Sending {"type":"ping"} answers with a pong.
// @Tags Stream
// @Router /api/v1/stream [get]
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Logger(ctx).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, unsubscribe := h.Svc.Subscribe(ctx)
	defer unsubscribe()

	incoming := make(chan StreamMessage)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		defer close(done)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		for {
			var msg StreamMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Logger(ctx).Debug().Err(err).Msg("stream reader stopped")
				}
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
			select {
			case incoming <- msg:
			case <-quit:
				return
			}
		}
	}()

	send := func(msg StreamMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			logger.Logger(ctx).Debug().Err(err).Msgf("stream write of %s failed", msg.Type)
			return false
		}
		return true
	}

	if !send(StreamMessage{Type: MessageConnected, Data: map[string]any{"frame_ms": h.frame.Milliseconds()}}) {
		return
	}
	for _, ev := range h.initialEvents(r) {
		if !send(StreamMessage{Type: string(ev.Kind), Data: ev}) {
			return
		}
	}

	ticker := time.NewTicker(h.frame)
	defer ticker.Stop()
	wasPlaying := h.Svc.Playback(ctx).Playing
	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !send(StreamMessage{Type: string(ev.Kind), Data: ev}) {
				return
			}
		case msg := <-incoming:
			if msg.Type == "ping" && !send(StreamMessage{Type: MessagePong, Data: msg.Data}) {
				return
			}
		case <-ticker.C:
			state := h.Svc.Playback(ctx)
			// one last frame when the sweep ends so the indicator lands on the edge
			if state.Playing || wasPlaying {
				if !send(StreamMessage{Type: MessageFrame, Data: state}) {
					return
				}
			}
			wasPlaying = state.Playing
		}
	}
}

// initialEvents replays the latest cycle so a new subscriber can draw immediately.
func (h *Handler) initialEvents(r *http.Request) []domain.RenderEvent {
	ctx := r.Context()
	playback := h.Svc.Playback(ctx)
	snapshot, ok := h.Svc.Latest(ctx)
	if !ok {
		return []domain.RenderEvent{{Kind: domain.EventPlayback, Playback: &playback}}
	}
	return []domain.RenderEvent{
		{Kind: domain.EventVerdict, Generation: snapshot.Generation, Verdict: &snapshot.Verdict},
		{Kind: domain.EventProbabilities, Generation: snapshot.Generation, Probabilities: &snapshot.Classification.Probabilities},
		{Kind: domain.EventTimeline, Generation: snapshot.Generation, Timeline: &snapshot.Timeline},
		{Kind: domain.EventPlayback, Generation: snapshot.Generation, Playback: &playback},
	}
}
