package service

import (
	"sync"
	"sync/atomic"
	"time"
)

// Debouncer runs the last scheduled func once no new call arrived for delay.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule replaces any pending func with fn. A func that already started keeps running.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending func and ignores later Schedule calls.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// generations hands out cycle tokens; only the newest token may publish.
type generations struct {
	n atomic.Uint64
}

func (g *generations) Issue() uint64 {
	return g.n.Add(1)
}

func (g *generations) IsLatest(token uint64) bool {
	return g.n.Load() == token
}
