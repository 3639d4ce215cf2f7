package domain

import (
	"context"
)

// ClassifyRequest is what the engine sends to the remote classifier.
type ClassifyRequest struct {
	Parameters LoadParameters
	Processes  []SimulatedProcess
}

type ClassifierAdapter interface {
	// Classify calls the remote classifier. Any error sends the cycle to the fallback heuristic.
	Classify(ctx context.Context, req *ClassifyRequest) (*ClassificationResult, error)
}

type Repository interface {
	InsertSnapshot(ctx context.Context, snapshot *SnapshotSummary) error
	QuerySnapshots(ctx context.Context, opt *QuerySnapshotOptions) error
}

// RenderHooks receive every applied cycle. Implementations must not block.
type RenderHooks interface {
	OnVerdict(ctx context.Context, generation uint64, verdict DisplayVerdict)
	OnProbabilities(ctx context.Context, generation uint64, probabilities Probabilities)
	OnTimeline(ctx context.Context, generation uint64, timeline Timeline)
}

type Service interface {
	// UpdateParameters stores params and schedules a debounced cycle.
	UpdateParameters(ctx context.Context, params LoadParameters) LoadParameters
	// PatchParameters merges patch into the current parameters atomically and schedules a debounced cycle.
	PatchParameters(ctx context.Context, patch ParametersPatch) LoadParameters
	Parameters(ctx context.Context) LoadParameters
	// RunCycle runs one cycle immediately and returns its snapshot.
	RunCycle(ctx context.Context, params LoadParameters) (*Snapshot, error)
	Latest(ctx context.Context) (*Snapshot, bool)
	ListSnapshots(ctx context.Context, opt *QuerySnapshotOptions) error

	Play(ctx context.Context) PlaybackState
	Pause(ctx context.Context) PlaybackState
	ResetPlayback(ctx context.Context) PlaybackState
	SetPlaybackSpeed(ctx context.Context, speed int) (PlaybackState, error)
	SeekPlayback(ctx context.Context, position float64) PlaybackState
	Playback(ctx context.Context) PlaybackState

	Subscribe(ctx context.Context) (<-chan RenderEvent, func())
	Stop(ctx context.Context)
}
