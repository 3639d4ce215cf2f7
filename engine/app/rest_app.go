package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/rest"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/tracing"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	serviceName    = "risk-engine"
	serviceVersion = "1.0.0"
)

func NewRestApp(configName string, configDirPath string) (*fx.App, error) {
	cfg, err := config.InitEngineConfig(configName, configDirPath)
	if err != nil {
		return nil, err
	}
	err = logger.Configure(logger.Options{Level: cfg.Logging.Level, Console: cfg.Logging.Console, FilePath: cfg.Logging.FilePath})
	if err != nil {
		return nil, err
	}
	if cfg.Tracing.Enabled {
		if err := tracing.Init(serviceName, serviceVersion, cfg.Tracing.OutputFile); err != nil {
			return nil, err
		}
	}

	adapterModule, err := AdapterModule(cfg.Classifier)
	if err != nil {
		return nil, err
	}
	repoModule, err := RepoModule(cfg)
	if err != nil {
		return nil, err
	}
	serviceModule, err := ServiceModule(adapterModule, repoModule)
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

func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler, svc domain.Service) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.Host
			if serverHost == "" {
				serverHost = ":8080"
			}
			go func() {
				logger.Logger(ctx).Info().Msgf("starting engine server on port %s", serverHost)
				if err := engine.Start(serverHost); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on port %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down engine server")
			svc.Stop(ctx)
			if err := tracing.Shutdown(ctx); err != nil {
				logger.Logger(ctx).Warn().Err(err).Msg("failed to flush traces")
			}
			return engine.Shutdown(ctx)
		},
	})

	return nil
}
