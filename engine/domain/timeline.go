package domain

type SystemState string

const (
	StateSafe     SystemState = "SAFE"
	StateUnsafe   SystemState = "UNSAFE"
	StateDeadlock SystemState = "DEADLOCK"
)

type Phase string

const (
	PhaseInit     Phase = "init"
	PhaseRunning  Phase = "running"
	PhaseWaiting  Phase = "waiting"
	PhaseUnsafe   Phase = "unsafe"
	PhaseDeadlock Phase = "deadlock"
	PhaseCleanup  Phase = "cleanup"
)

// TimelineHorizonSeconds is the simulated span covered by every timeline.
const TimelineHorizonSeconds = 20.0

// ProcessRef is the part of a process the timeline needs.
type ProcessRef struct {
	PID int `json:"pid"`
}

type TimelineSegment struct {
	ProcessID          int     `json:"process_id"`
	Phase              Phase   `json:"phase"`
	StartOffsetSeconds float64 `json:"start_offset_seconds"`
	DurationSeconds    float64 `json:"duration_seconds"`
}

func (s TimelineSegment) EndOffsetSeconds() float64 {
	return s.StartOffsetSeconds + s.DurationSeconds
}

// TimelineEvent is a system-level marker drawn above the process rows.
type TimelineEvent struct {
	TimeSeconds float64 `json:"time_seconds"`
	Description string  `json:"description"`
}

type Timeline struct {
	State          SystemState               `json:"state"`
	HorizonSeconds float64                   `json:"horizon_seconds"`
	Order          []int                     `json:"order"`
	Segments       map[int][]TimelineSegment `json:"segments"`
	Events         []TimelineEvent           `json:"events"`
}

// PlaybackState describes the sweep indicator.
type PlaybackState struct {
	Playing  bool    `json:"playing"`
	Speed    int     `json:"speed"`
	Position float64 `json:"position"`
	// OffsetSeconds is Position projected onto the timeline horizon.
	OffsetSeconds float64 `json:"offset_seconds"`
}
