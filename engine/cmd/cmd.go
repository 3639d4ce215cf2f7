package cmd

import (
	"context"
	"os"

	engineapp "github.com/incognnitamood/DeadlockPredictionAnalysis/engine/app"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/spf13/cobra"
)

func init() {
	EngineCmd.Flags().StringP("config-name", "c", "", "Configuration file name without extension")
	EngineCmd.Flags().StringP("config-dir", "d", "", "Configuration file directory path")
}

// @title           risk engine
// @version         1.0
// @description     Workload simulation and deadlock risk classification API

// @host      localhost:8080
// @BasePath  /

// @Accept json
// @Produce json

// @schemes http
func RunEngineApp(cmd *cobra.Command, args []string) {
	configName, configDirPath := getConfigInfo(cmd)
	logger.InitLogger()
	app, err := engineapp.NewRestApp(configName, configDirPath)
	if err != nil {
		logger.Logger(context.Background()).Fatal().Err(err).Msg("failed to create rest app")
	}
	app.Run()
}

func getConfigInfo(cmd *cobra.Command) (string, string) {
	configName := "engine_config"
	configDirPath := ""
	if cmd != nil {
		configNameFlag, err := cmd.Flags().GetString("config-name")
		if err == nil && configNameFlag != "" {
			configName = configNameFlag
		}
		configPathFlag, err := cmd.Flags().GetString("config-dir")
		if err == nil && configPathFlag != "" {
			configDirPath = configPathFlag
		}
	}
	if envConfigName := os.Getenv("ENGINE_CONFIG_NAME"); envConfigName != "" {
		configName = envConfigName
	}
	if envConfigPath := os.Getenv("ENGINE_CONFIG_DIR_PATH"); envConfigPath != "" {
		configDirPath = envConfigPath
	}
	return configName, configDirPath
}

var EngineCmd = &cobra.Command{
	Run:   RunEngineApp,
	Use:   "engine",
	Short: "Serve the simulation and risk classification API",
}
