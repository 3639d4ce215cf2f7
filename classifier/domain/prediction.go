package domain

import (
	enginedomain "github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
)

// ProcessSample is one simulated process as sent by the engine.
type ProcessSample struct {
	PID          int     `json:"pid"`
	CPUUsage     float64 `json:"cpu_usage"`
	MemoryUsage  float64 `json:"memory_usage"`
	IOUsage      float64 `json:"io_usage"`
	WorkloadType string  `json:"workload_type"`
}

// PredictionInput is the aggregate load the heuristic scores.
type PredictionInput struct {
	CPUPercent    float64
	MemoryPercent float64
	IOPercent     float64
	NumProcesses  int
	Processes     []ProcessSample
}

type Prediction struct {
	Label         enginedomain.Label
	Probabilities enginedomain.Probabilities
	Confidence    float64
}
