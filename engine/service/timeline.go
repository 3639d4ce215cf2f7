package service

import (
	"math"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
)

type phaseTemplate struct {
	phase    domain.Phase
	duration float64
}

var (
	safeTemplate = []phaseTemplate{
		{domain.PhaseInit, 2},
		{domain.PhaseRunning, 12},
		{domain.PhaseCleanup, 3},
	}
	unsafeTemplate = []phaseTemplate{
		{domain.PhaseRunning, 6},
		{domain.PhaseUnsafe, 4},
		{domain.PhaseWaiting, 3},
		{domain.PhaseRunning, 4},
	}
)

var systemEvents = map[domain.SystemState][]domain.TimelineEvent{
	domain.StateDeadlock: {
		{TimeSeconds: 8, Description: "Resource contention begins"},
		{TimeSeconds: 12, Description: "Deadlock detected"},
		{TimeSeconds: 15, Description: "System recovery initiated"},
	},
	domain.StateUnsafe: {
		{TimeSeconds: 5, Description: "High resource utilization"},
		{TimeSeconds: 10, Description: "Unsafe state detected"},
		{TimeSeconds: 18, Description: "Preventive measures applied"},
	},
	domain.StateSafe: {
		{TimeSeconds: 3, Description: "System operating normally"},
		{TimeSeconds: 12, Description: "Optimal resource allocation"},
		{TimeSeconds: 18, Description: "Graceful process completion"},
	},
}

// deadlockTemplate staggers the lockup: later processes run longer before it.
func deadlockTemplate(index int) []phaseTemplate {
	return []phaseTemplate{
		{domain.PhaseRunning, 8 + 2*float64(index)},
		{domain.PhaseDeadlock, 0},
	}
}

// BuildTimeline lays out one fixed-shape timeline per process for state.
// An unknown state is drawn as SAFE.
func BuildTimeline(processes []domain.ProcessRef, state domain.SystemState) domain.Timeline {
	if _, ok := systemEvents[state]; !ok {
		state = domain.StateSafe
	}
	tl := domain.Timeline{
		State:          state,
		HorizonSeconds: domain.TimelineHorizonSeconds,
		Order:          make([]int, 0, len(processes)),
		Segments:       make(map[int][]domain.TimelineSegment, len(processes)),
		Events:         append([]domain.TimelineEvent(nil), systemEvents[state]...),
	}
	for i, p := range processes {
		var template []phaseTemplate
		switch state {
		case domain.StateDeadlock:
			template = deadlockTemplate(i)
		case domain.StateUnsafe:
			template = unsafeTemplate
		default:
			template = safeTemplate
		}
		tl.Order = append(tl.Order, p.PID)
		tl.Segments[p.PID] = layout(p.PID, template, domain.TimelineHorizonSeconds)
	}
	return tl
}

// layout appends template phases back to back. Phases starting at or after the
// horizon are dropped and a phase crossing it is cut at the horizon.
func layout(pid int, template []phaseTemplate, horizon float64) []domain.TimelineSegment {
	segments := make([]domain.TimelineSegment, 0, len(template))
	offset := 0.0
	for _, t := range template {
		if offset >= horizon {
			break
		}
		segments = append(segments, domain.TimelineSegment{
			ProcessID:          pid,
			Phase:              t.phase,
			StartOffsetSeconds: offset,
			DurationSeconds:    math.Min(t.duration, horizon-offset),
		})
		offset += t.duration
	}
	return segments
}

// ProcessRefs projects simulated processes onto timeline rows.
func ProcessRefs(processes []domain.SimulatedProcess) []domain.ProcessRef {
	refs := make([]domain.ProcessRef, len(processes))
	for i, p := range processes {
		refs[i] = domain.ProcessRef{PID: p.PID}
	}
	return refs
}
