package service

import (
	"sync"
	"time"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/util"
)

const defaultPlaybackSpeed = 5

// Player sweeps an indicator across the timeline horizon. At 1x the sweep
// takes as long in wall time as the horizon it covers.
type Player struct {
	mu       sync.Mutex
	now      func() time.Time
	sweep    time.Duration
	maxSpeed int

	speed     int
	playing   bool
	startedAt time.Time
	startPos  float64
	pos       float64
}

func NewPlayer(maxSpeed int, now func() time.Time) *Player {
	if maxSpeed < 1 {
		maxSpeed = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Player{
		now:      now,
		sweep:    time.Duration(domain.TimelineHorizonSeconds * float64(time.Second)),
		maxSpeed: maxSpeed,
		speed:    util.ClampInt(defaultPlaybackSpeed, 1, maxSpeed),
	}
}

// position advances the sweep; callers hold mu.
func (p *Player) position() float64 {
	if !p.playing {
		return p.pos
	}
	elapsed := p.now().Sub(p.startedAt)
	pos := p.startPos + float64(elapsed)*float64(p.speed)/float64(p.sweep)
	if pos >= 1 {
		p.playing = false
		p.pos = 1
		return 1
	}
	p.pos = pos
	return pos
}

func (p *Player) state() domain.PlaybackState {
	pos := p.position()
	return domain.PlaybackState{
		Playing:       p.playing,
		Speed:         p.speed,
		Position:      pos,
		OffsetSeconds: pos * domain.TimelineHorizonSeconds,
	}
}

// Play starts or resumes the sweep. A finished sweep starts over.
func (p *Player) Play() domain.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position()
	if p.playing {
		return p.state()
	}
	if p.pos >= 1 {
		p.pos = 0
	}
	p.startPos = p.pos
	p.startedAt = p.now()
	p.playing = true
	return p.state()
}

// Pause freezes the indicator where it is.
func (p *Player) Pause() domain.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = p.position()
	p.playing = false
	return p.state()
}

// Reset stops the sweep and clears the indicator.
func (p *Player) Reset() domain.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	p.pos = 0
	return p.state()
}

// SetSpeed changes the multiplier. While playing the sweep restarts at 0.
func (p *Player) SetSpeed(speed int) (domain.PlaybackState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position()
	if speed < 1 || speed > p.maxSpeed {
		return p.state(), domain.ErrInvalidSpeed
	}
	p.speed = speed
	if p.playing {
		p.pos = 0
		p.startPos = 0
		p.startedAt = p.now()
	}
	return p.state(), nil
}

// Seek moves the indicator to position in [0,1] without changing play state.
func (p *Player) Seek(position float64) domain.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position()
	p.pos = util.Clamp(position, 0, 1)
	if p.playing {
		p.startPos = p.pos
		p.startedAt = p.now()
	}
	return p.state()
}

func (p *Player) State() domain.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state()
}
