package main

import (
	"log"
	"os"

	classifiercmd "github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/cmd"
	enginecmd "github.com/incognnitamood/DeadlockPredictionAnalysis/engine/cmd"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "riskboard",
		Short: "Workload simulation and deadlock risk classification",
	}
)

func main() {
	envFile := os.Getenv("RISKBOARD_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load env file %s: %v", envFile, err)
	}

	rootCmd.AddCommand(enginecmd.EngineCmd, classifiercmd.ClassifierCmd, enginecmd.SimulateCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
