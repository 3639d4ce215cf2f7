package app

import (
	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/client"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	k8sadapter "github.com/incognnitamood/DeadlockPredictionAnalysis/engine/k8s_adapter"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/migration"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/repository"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/rest"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/service"
	"go.uber.org/fx"
)

// ConfigModule creates an Fx module that provides configuration structs
func ConfigModule(cfg config.EngineConfig) (fx.Option, error) {
	return fx.Options(
		fx.Provide(func() config.EngineConfig {
			return cfg
		}),
		fx.Provide(func(engineCfg config.EngineConfig) config.MongoDBConfig {
			return engineCfg.MongoDB
		}),
		fx.Provide(func(engineCfg config.EngineConfig) config.ServerConfig {
			return engineCfg.Server
		}),
		fx.Provide(func(engineCfg config.EngineConfig) config.ClassifierClient {
			return engineCfg.Classifier
		}),
		fx.Provide(func(engineCfg config.EngineConfig) config.SimulationConfig {
			return engineCfg.Simulation
		}),
		fx.Provide(func(engineCfg config.EngineConfig) config.HistoryConfig {
			return engineCfg.History
		}),
		fx.Provide(func(engineCfg config.EngineConfig) config.TracingConfig {
			return engineCfg.Tracing
		}),
	), nil
}

// AdapterModule creates an Fx module that provides the remote classifier client.
// Without a base url and with discovery enabled the classifier is located through the K8S adapter.
func AdapterModule(cfg config.ClassifierClient) (fx.Option, error) {
	if cfg.BaseURL != "" || !cfg.Discovery.Enabled {
		return fx.Options(
			fx.Provide(client.NewClassifierClient),
		), nil
	}
	return fx.Options(
		fx.Provide(func(lc fx.Lifecycle, clfCfg config.ClassifierClient) (domain.ClassifierLocator, error) {
			adapter, err := k8sadapter.NewAdapter(clfCfg.Discovery)
			if err != nil {
				return nil, err
			}
			lc.Append(fx.StopHook(adapter.StopPodWatcher))
			return adapter, nil
		}),
		fx.Provide(client.NewDiscoveredClassifierClient),
	), nil
}

// RepoModule creates an Fx module that provides the snapshot history, return domain.Repository.
// Mongo is used when a host is configured, otherwise history stays in memory.
func RepoModule(cfg config.EngineConfig) (fx.Option, error) {
	configModule, err := ConfigModule(cfg)
	if err != nil {
		return nil, err
	}
	if !cfg.MongoDB.Enabled() {
		return fx.Options(
			configModule,
			fx.Provide(repository.NewMemoryRepository),
		), nil
	}

	return fx.Options(
		configModule,
		fx.Invoke(migration.RunMongoMigration),
		fx.Provide(repository.NewRepository),
	), nil
}

// ServiceModule creates an Fx module that provides the service layer, return domain.Service
func ServiceModule(adapterModule, repoModule fx.Option) (fx.Option, error) {
	return fx.Options(
		adapterModule,
		repoModule,
		fx.Provide(
			fx.Annotate(service.NewLogHooks, fx.ResultTags(`group:"render_hooks"`)),
		),
		fx.Provide(func(sim config.SimulationConfig) domain.RandomSource {
			return service.NewRandomSource(sim.Seed)
		}),
		fx.Provide(service.NewService),
	), nil
}

// HandlerModule creates an Fx module that provides the REST handler, return *rest.Handler
func HandlerModule(serviceModule fx.Option) (fx.Option, error) {
	return fx.Options(
		serviceModule,
		fx.Provide(rest.NewHandler),
	), nil
}

// TestRepoModule creates an Fx module that provides the in-memory repository for testing
func TestRepoModule(cfg config.EngineConfig) (fx.Option, error) {
	configModule, err := ConfigModule(cfg)
	if err != nil {
		return nil, err
	}
	return fx.Options(
		configModule,
		fx.Provide(repository.NewMemoryRepository),
	), nil
}
