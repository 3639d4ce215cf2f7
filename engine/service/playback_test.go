package service

import (
	"testing"
	"time"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPlayer() (*Player, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewPlayer(10, clock.Now), clock
}

func TestPlayerSweep(t *testing.T) {
	p, clock := newTestPlayer()
	_, err := p.SetSpeed(2)
	require.NoError(t, err)

	st := p.Play()
	assert.True(t, st.Playing)
	assert.Equal(t, 0.0, st.Position)

	// at 2x the 20s horizon takes 10s
	clock.Advance(5 * time.Second)
	st = p.State()
	assert.InDelta(t, 0.5, st.Position, 1e-9)
	assert.InDelta(t, 10.0, st.OffsetSeconds, 1e-9)

	clock.Advance(6 * time.Second)
	st = p.State()
	assert.False(t, st.Playing)
	assert.Equal(t, 1.0, st.Position)
}

func TestPlayerPauseFreezes(t *testing.T) {
	p, clock := newTestPlayer()
	_, _ = p.SetSpeed(1)
	p.Play()
	clock.Advance(4 * time.Second)
	st := p.Pause()
	assert.False(t, st.Playing)
	assert.InDelta(t, 0.2, st.Position, 1e-9)

	clock.Advance(10 * time.Second)
	assert.InDelta(t, 0.2, p.State().Position, 1e-9)

	p.Play()
	clock.Advance(2 * time.Second)
	assert.InDelta(t, 0.3, p.State().Position, 1e-9)
}

func TestPlayerSpeedChangeRestartsSweep(t *testing.T) {
	p, clock := newTestPlayer()
	_, _ = p.SetSpeed(1)
	p.Play()
	clock.Advance(10 * time.Second)
	assert.InDelta(t, 0.5, p.State().Position, 1e-9)

	st, err := p.SetSpeed(4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, st.Position)
	assert.True(t, st.Playing)

	clock.Advance(time.Second)
	assert.InDelta(t, 0.2, p.State().Position, 1e-9)
}

func TestPlayerSpeedChangeWhilePausedKeepsPosition(t *testing.T) {
	p, clock := newTestPlayer()
	_, _ = p.SetSpeed(1)
	p.Play()
	clock.Advance(10 * time.Second)
	p.Pause()
	st, err := p.SetSpeed(3)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, st.Position, 1e-9)
}

func TestPlayerRejectsBadSpeed(t *testing.T) {
	p, _ := newTestPlayer()
	_, err := p.SetSpeed(0)
	assert.ErrorIs(t, err, domain.ErrInvalidSpeed)
	_, err = p.SetSpeed(11)
	assert.ErrorIs(t, err, domain.ErrInvalidSpeed)
	assert.Equal(t, defaultPlaybackSpeed, p.State().Speed)
}

func TestPlayerResetAndSeek(t *testing.T) {
	p, clock := newTestPlayer()
	p.Play()
	clock.Advance(time.Second)
	st := p.Reset()
	assert.False(t, st.Playing)
	assert.Equal(t, 0.0, st.Position)

	st = p.Seek(0.75)
	assert.Equal(t, 0.75, st.Position)
	assert.Equal(t, 1.0, p.Seek(3).Position)
	assert.Equal(t, 0.0, p.Seek(-1).Position)
}

func TestPlayerReplayAfterFinish(t *testing.T) {
	p, clock := newTestPlayer()
	_, _ = p.SetSpeed(10)
	p.Play()
	clock.Advance(3 * time.Second)
	require.Equal(t, 1.0, p.State().Position)

	st := p.Play()
	assert.True(t, st.Playing)
	assert.Equal(t, 0.0, st.Position)
}

func TestPlayerSpeedChangeAfterUnobservedFinish(t *testing.T) {
	p, clock := newTestPlayer()
	p.Play()
	// at the default 5x the sweep ends after 4s; nothing reads the state meanwhile
	clock.Advance(30 * time.Second)

	st, err := p.SetSpeed(2)
	require.NoError(t, err)
	assert.False(t, st.Playing)
	assert.Equal(t, 1.0, st.Position)
	assert.Equal(t, 2, st.Speed)
}

func TestPlayerSeekAfterUnobservedFinish(t *testing.T) {
	p, clock := newTestPlayer()
	p.Play()
	clock.Advance(30 * time.Second)

	st := p.Seek(0.25)
	assert.False(t, st.Playing)
	assert.Equal(t, 0.25, st.Position)

	clock.Advance(time.Second)
	st = p.State()
	assert.False(t, st.Playing)
	assert.Equal(t, 0.25, st.Position)
}
