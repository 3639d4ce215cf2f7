package domain

import "time"

// Snapshot is the outcome of one regenerate-and-classify cycle.
type Snapshot struct {
	ID             string               `json:"id"`
	Generation     uint64               `json:"generation"`
	Parameters     LoadParameters       `json:"parameters"`
	Processes      []SimulatedProcess   `json:"processes"`
	Classification ClassificationResult `json:"classification"`
	Verdict        DisplayVerdict       `json:"verdict"`
	Timeline       Timeline             `json:"timeline"`
	CreatedAt      time.Time            `json:"created_at"`
}

// SnapshotSummary is the persisted view of a snapshot; processes and segments are regenerated, never stored.
type SnapshotSummary struct {
	ID             string               `json:"id"`
	Generation     uint64               `json:"generation"`
	Parameters     LoadParameters       `json:"parameters"`
	Classification ClassificationResult `json:"classification"`
	Verdict        DisplayVerdict       `json:"verdict"`
	CreatedAt      time.Time            `json:"created_at"`
}

func (s *Snapshot) Summary() SnapshotSummary {
	return SnapshotSummary{
		ID:             s.ID,
		Generation:     s.Generation,
		Parameters:     s.Parameters,
		Classification: s.Classification,
		Verdict:        s.Verdict,
		CreatedAt:      s.CreatedAt,
	}
}

type QuerySnapshotOptions struct {
	Limit  int
	Source ResultSource
	Result []*SnapshotSummary
}

// RenderEventKind names the render hook an event came from.
type RenderEventKind string

const (
	EventVerdict       RenderEventKind = "verdict"
	EventProbabilities RenderEventKind = "probabilities"
	EventTimeline      RenderEventKind = "timeline"
	EventPlayback      RenderEventKind = "playback"
)

type RenderEvent struct {
	Kind          RenderEventKind `json:"kind"`
	Generation    uint64          `json:"generation"`
	Verdict       *DisplayVerdict `json:"verdict,omitempty"`
	Probabilities *Probabilities  `json:"probabilities,omitempty"`
	Timeline      *Timeline       `json:"timeline,omitempty"`
	Playback      *PlaybackState  `json:"playback,omitempty"`
}
