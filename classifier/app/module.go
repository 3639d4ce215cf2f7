package app

import (
	"github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/rest"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/service"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	engineservice "github.com/incognnitamood/DeadlockPredictionAnalysis/engine/service"
	"go.uber.org/fx"
)

// ConfigModule creates an Fx module that provides configuration structs
func ConfigModule(cfg config.ClassifierConfig) (fx.Option, error) {
	return fx.Options(
		fx.Provide(func() config.ClassifierConfig {
			return cfg
		}),
		fx.Provide(func(classifierCfg config.ClassifierConfig) config.ServerConfig {
			return classifierCfg.Server
		}),
		fx.Provide(func(classifierCfg config.ClassifierConfig) config.LoggingConfig {
			return classifierCfg.Logging
		}),
		fx.Provide(func(classifierCfg config.ClassifierConfig) config.SimulationConfig {
			return classifierCfg.Simulation
		}),
	), nil
}

// ServiceModule provides the heuristic prediction service.
func ServiceModule(opt fx.Option) (fx.Option, error) {
	return fx.Options(
		opt,
		fx.Provide(func(sim config.SimulationConfig) service.Service {
			return service.NewService(engineservice.NewRandomSource(sim.Seed))
		}),
	), nil
}

// HandlerModule creates an Fx module that provides the REST handler, return *rest.Handler
func HandlerModule(opt fx.Option) (fx.Option, error) {
	return fx.Options(
		opt,
		fx.Provide(rest.NewHandler),
	), nil
}
