package service

import (
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/util"
)

// multiplier scales the (cpu, memory, io) sliders for one archetype.
type multiplier struct {
	cpu, memory, io float64
}

var fixedMultipliers = map[domain.WorkloadType]multiplier{
	domain.WorkloadCPUBound:    {cpu: 1.5, memory: 0.6, io: 0.3},
	domain.WorkloadIOBound:     {cpu: 0.3, memory: 0.6, io: 1.5},
	domain.WorkloadMemoryHeavy: {cpu: 0.3, memory: 1.5, io: 0.3},
}

// span is a [lo, hi) range a mixed-workload multiplier is drawn from.
type span struct {
	lo, hi float64
}

func (s span) draw(rng domain.RandomSource) float64 {
	return s.lo + rng.Float64()*(s.hi-s.lo)
}

type mixedPattern struct {
	// reported is the type the generated process carries.
	reported        domain.WorkloadType
	cpu, memory, io span
}

var mixedPatterns = []mixedPattern{
	{reported: domain.WorkloadCPUBound, cpu: span{1.2, 1.6}, memory: span{0.4, 0.8}, io: span{0.2, 0.5}},
	{reported: domain.WorkloadIOBound, cpu: span{0.2, 0.5}, memory: span{0.4, 0.8}, io: span{1.2, 1.6}},
	{reported: domain.WorkloadMemoryHeavy, cpu: span{0.2, 0.5}, memory: span{1.2, 1.6}, io: span{0.2, 0.5}},
	{reported: domain.WorkloadMixed, cpu: span{0.8, 1.2}, memory: span{0.8, 1.2}, io: span{0.8, 1.2}},
}

// variance is a uniform perturbation in [-10, 10).
func variance(rng domain.RandomSource) float64 {
	return (rng.Float64() - 0.5) * 20
}

// GenerateProfiles samples params.ProcessCount processes with pids starting at basePID.
// Output is not reproducible unless rng is seeded.
func GenerateProfiles(params domain.LoadParameters, basePID int, rng domain.RandomSource) []domain.SimulatedProcess {
	if params.ProcessCount <= 0 {
		return []domain.SimulatedProcess{}
	}
	processes := make([]domain.SimulatedProcess, 0, params.ProcessCount)
	for i := 0; i < params.ProcessCount; i++ {
		profile := generateProfile(params, rng)
		processes = append(processes, domain.SimulatedProcess{
			PID:          basePID + i,
			CPUUsage:     profile.CPU,
			MemoryUsage:  profile.Memory,
			IOUsage:      profile.IO,
			WorkloadType: profile.Type,
		})
	}
	return processes
}

func generateProfile(params domain.LoadParameters, rng domain.RandomSource) domain.ProcessProfile {
	cpu := float64(params.CPUPercent)
	memory := float64(params.MemoryPercent)
	io := float64(params.IOPercent)

	if m, ok := fixedMultipliers[params.WorkloadType]; ok {
		return clampProfile(domain.ProcessProfile{
			CPU:    cpu*m.cpu + variance(rng),
			Memory: memory*m.memory + variance(rng),
			IO:     io*m.io + variance(rng),
			Type:   params.WorkloadType,
		})
	}

	pattern := mixedPatterns[rng.IntN(len(mixedPatterns))]
	return clampProfile(domain.ProcessProfile{
		CPU:    cpu*pattern.cpu.draw(rng) + variance(rng),
		Memory: memory*pattern.memory.draw(rng) + variance(rng),
		IO:     io*pattern.io.draw(rng) + variance(rng),
		Type:   pattern.reported,
	})
}

func clampProfile(p domain.ProcessProfile) domain.ProcessProfile {
	p.CPU = util.Clamp(p.CPU, 0, 100)
	p.Memory = util.Clamp(p.Memory, 0, 100)
	p.IO = util.Clamp(p.IO, 0, 100)
	return p
}
