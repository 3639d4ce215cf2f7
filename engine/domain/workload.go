package domain

import (
	"fmt"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/util"
)

type WorkloadType string

const (
	WorkloadCPUBound    WorkloadType = "cpu-bound"
	WorkloadIOBound     WorkloadType = "io-bound"
	WorkloadMemoryHeavy WorkloadType = "memory-heavy"
	WorkloadMixed       WorkloadType = "mixed"
)

func (w WorkloadType) Valid() bool {
	switch w {
	case WorkloadCPUBound, WorkloadIOBound, WorkloadMemoryHeavy, WorkloadMixed:
		return true
	}
	return false
}

func ParseWorkloadType(s string) (WorkloadType, error) {
	w := WorkloadType(s)
	if !w.Valid() {
		return "", fmt.Errorf("unknown workload type %q", s)
	}
	return w, nil
}

// LoadParameters are the four load sliders plus the archetype selector.
type LoadParameters struct {
	CPUPercent    int          `json:"cpu_percent"`
	MemoryPercent int          `json:"memory_percent"`
	IOPercent     int          `json:"io_percent"`
	ProcessCount  int          `json:"process_count"`
	WorkloadType  WorkloadType `json:"workload_type"`
}

// MaxProcessCount bounds the process slider.
const MaxProcessCount = 500

// Clamped returns p with every field pulled into its slider range.
// An unknown workload type becomes mixed.
func (p LoadParameters) Clamped() LoadParameters {
	p.CPUPercent = util.ClampInt(p.CPUPercent, 0, 100)
	p.MemoryPercent = util.ClampInt(p.MemoryPercent, 0, 100)
	p.IOPercent = util.ClampInt(p.IOPercent, 0, 100)
	p.ProcessCount = util.ClampInt(p.ProcessCount, 0, MaxProcessCount)
	if !p.WorkloadType.Valid() {
		p.WorkloadType = WorkloadMixed
	}
	return p
}

// ParametersPatch changes the fields that are set and keeps the rest.
type ParametersPatch struct {
	CPUPercent    *int
	MemoryPercent *int
	IOPercent     *int
	ProcessCount  *int
	WorkloadType  *WorkloadType
}

func (p ParametersPatch) Apply(params LoadParameters) LoadParameters {
	if p.CPUPercent != nil {
		params.CPUPercent = *p.CPUPercent
	}
	if p.MemoryPercent != nil {
		params.MemoryPercent = *p.MemoryPercent
	}
	if p.IOPercent != nil {
		params.IOPercent = *p.IOPercent
	}
	if p.ProcessCount != nil {
		params.ProcessCount = *p.ProcessCount
	}
	if p.WorkloadType != nil {
		params.WorkloadType = *p.WorkloadType
	}
	return params
}

// DefaultLoadParameters match the dashboard's initial slider positions.
func DefaultLoadParameters() LoadParameters {
	return LoadParameters{
		CPUPercent:    50,
		MemoryPercent: 50,
		IOPercent:     50,
		ProcessCount:  10,
		WorkloadType:  WorkloadMixed,
	}
}

type SimulatedProcess struct {
	PID          int          `json:"pid"`
	CPUUsage     float64      `json:"cpu_usage"`
	MemoryUsage  float64      `json:"memory_usage"`
	IOUsage      float64      `json:"io_usage"`
	WorkloadType WorkloadType `json:"workload_type"`
}

// ProcessProfile is the generator's clamped intermediate for one process.
type ProcessProfile struct {
	CPU    float64
	Memory float64
	IO     float64
	Type   WorkloadType
}

// RandomSource is the injectable generator behind every random draw.
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}
