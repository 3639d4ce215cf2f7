package cmd

import (
	"context"
	"os"

	classifierapp "github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/app"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/spf13/cobra"
)

func init() {
	ClassifierCmd.Flags().StringP("config-name", "c", "", "Configuration file name without extension")
	ClassifierCmd.Flags().StringP("config-dir", "d", "", "Configuration file directory path")
}

func RunClassifierApp(cmd *cobra.Command, args []string) {
	configName, configDirPath := getConfigInfo(cmd)
	logger.InitLogger()
	app, err := classifierapp.NewRestApp(configName, configDirPath)
	if err != nil {
		logger.Logger(context.Background()).Fatal().Err(err).Msg("failed to create rest app")
	}
	app.Run()
}

func getConfigInfo(cmd *cobra.Command) (string, string) {
	configName := "classifier_config"
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
	if envConfigName := os.Getenv("CLASSIFIER_CONFIG_NAME"); envConfigName != "" {
		configName = envConfigName
	}
	if envConfigPath := os.Getenv("CLASSIFIER_CONFIG_DIR_PATH"); envConfigPath != "" {
		configDirPath = envConfigPath
	}
	return configName, configDirPath
}

var ClassifierCmd = &cobra.Command{
	Run:   RunClassifierApp,
	Use:   "classifier",
	Short: "Serve the local heuristic risk classifier",
}
