package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/rest"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

func NewRestApp(configName string, configDirPath string) (*fx.App, error) {
	cfg, err := config.InitClassifierConfig(configName, configDirPath)
	if err != nil {
		return nil, err
	}
	err = logger.Configure(logger.Options{Level: cfg.Logging.Level, Console: cfg.Logging.Console, FilePath: cfg.Logging.FilePath})
	if err != nil {
		return nil, err
	}
	cfgModule, err := ConfigModule(cfg)
	if err != nil {
		return nil, err
	}
	serviceModule, err := ServiceModule(cfgModule)
	if err != nil {
		return nil, err
	}
	handlerModule, err := HandlerModule(serviceModule)
	if err != nil {
		return nil, err
	}

	app := fx.New(
		handlerModule,
		fx.Invoke(StartRestApp),
	)
	return app, nil
}

func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.Host
			if serverHost == "" {
				serverHost = ":5000"
			}
			go func() {
				logger.Logger(ctx).Info().Msgf("starting classifier server on port %s", serverHost)
				if err := engine.Start(serverHost); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on port %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down classifier server")
			return engine.Shutdown(ctx)
		},
	})

	return nil
}
