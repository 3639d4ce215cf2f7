package rest

import (
	"net/http"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/middleware"
	"github.com/labstack/echo/v4"
)

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))

	api := engine.Group("/api", echo.WrapMiddleware(middleware.LoggerMiddleware))
	// v1 routes
	{
		apiV1 := api.Group("/v1")
		// simulation routes
		apiV1.GET("/parameters", h.echoHandler(h.GetParameters))
		apiV1.PUT("/parameters", h.echoHandler(h.UpdateParameters))
		apiV1.POST("/classify", h.echoHandler(h.Classify))
		apiV1.GET("/verdict", h.echoHandler(h.GetVerdict))
		apiV1.GET("/timeline", h.echoHandler(h.GetTimeline))
		apiV1.GET("/history", h.echoHandler(h.ListHistory))

		// playback routes
		apiV1.GET("/playback", h.echoHandler(h.GetPlayback))
		apiV1.POST("/playback/play", h.echoHandler(h.Play))
		apiV1.POST("/playback/pause", h.echoHandler(h.Pause))
		apiV1.POST("/playback/reset", h.echoHandler(h.ResetPlayback))
		apiV1.PUT("/playback/speed", h.echoHandler(h.SetPlaybackSpeed))
		apiV1.PUT("/playback/seek", h.echoHandler(h.SeekPlayback))

		apiV1.GET("/stream", h.echoHandler(h.Stream))
	}
}

func (h *Handler) echoHandler(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(handlerFunc))
}
