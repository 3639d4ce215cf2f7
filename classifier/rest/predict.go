package rest

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/classifier/domain"
)

// PredictRealtimeRequest is the wire body of POST /api/predict-realtime.
// Aggregates are pointers so a missing field can be told apart from zero.
type PredictRealtimeRequest struct {
	CPUPercent    *float64         `json:"cpu_percent"`
	MemoryPercent *float64         `json:"memory_percent"`
	IOPercent     *float64         `json:"io_percent"`
	NumProcesses  *int             `json:"num_processes"`
	Processes     []ProcessPayload `json:"processes"`
}

type ProcessPayload struct {
	PID          int     `json:"pid"`
	CPUUsage     float64 `json:"cpu_usage"`
	MemoryUsage  float64 `json:"memory_usage"`
	IOUsage      float64 `json:"io_usage"`
	WorkloadType string  `json:"workload_type"`
}

// PredictRealtimeResponse is the reply; Error is set instead of a prediction on failure.
type PredictRealtimeResponse struct {
	Prediction    Prediction         `json:"prediction,omitempty"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Confidence    *float64           `json:"confidence,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// Prediction is a class label. Older model builds answer with the numeric class id,
// so both JSON strings and numbers decode into it.
type Prediction string

func (p *Prediction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Prediction(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("prediction is neither a string nor a number: %s", data)
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("prediction %s is not a class id: %w", n, err)
	}
	*p = Prediction(strconv.FormatInt(i, 10))
	return nil
}

// missingField names the first required aggregate absent from the body, or "".
func (r PredictRealtimeRequest) missingField() string {
	switch {
	case r.CPUPercent == nil:
		return "cpu_percent"
	case r.MemoryPercent == nil:
		return "memory_percent"
	case r.IOPercent == nil:
		return "io_percent"
	case r.NumProcesses == nil:
		return "num_processes"
	}
	return ""
}

func (r PredictRealtimeRequest) toInput() *domain.PredictionInput {
	input := &domain.PredictionInput{
		CPUPercent:    *r.CPUPercent,
		MemoryPercent: *r.MemoryPercent,
		IOPercent:     *r.IOPercent,
		NumProcesses:  *r.NumProcesses,
		Processes:     make([]domain.ProcessSample, 0, len(r.Processes)),
	}
	for _, p := range r.Processes {
		input.Processes = append(input.Processes, domain.ProcessSample{
			PID:          p.PID,
			CPUUsage:     p.CPUUsage,
			MemoryUsage:  p.MemoryUsage,
			IOUsage:      p.IOUsage,
			WorkloadType: p.WorkloadType,
		})
	}
	return input
}
