package service

import (
	"context"
	"sync"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
)

var _ domain.RenderHooks = (*Broadcaster)(nil)

const subscriberBuffer = 32

// Broadcaster fans render hook calls out to subscribers as RenderEvents.
// A subscriber that falls behind loses events rather than stalling the cycle.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan domain.RenderEvent
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan domain.RenderEvent)}
}

// Subscribe registers a listener. The returned func unsubscribes and closes the channel.
func (b *Broadcaster) Subscribe() (<-chan domain.RenderEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan domain.RenderEvent, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *Broadcaster) Publish(ctx context.Context, ev domain.RenderEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			logger.Logger(ctx).Debug().Msgf("subscriber %d is behind, dropped %s event", id, ev.Kind)
		}
	}
}

func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broadcaster) OnVerdict(ctx context.Context, generation uint64, verdict domain.DisplayVerdict) {
	b.Publish(ctx, domain.RenderEvent{Kind: domain.EventVerdict, Generation: generation, Verdict: &verdict})
}

func (b *Broadcaster) OnProbabilities(ctx context.Context, generation uint64, probabilities domain.Probabilities) {
	b.Publish(ctx, domain.RenderEvent{Kind: domain.EventProbabilities, Generation: generation, Probabilities: &probabilities})
}

func (b *Broadcaster) OnTimeline(ctx context.Context, generation uint64, timeline domain.Timeline) {
	b.Publish(ctx, domain.RenderEvent{Kind: domain.EventTimeline, Generation: generation, Timeline: &timeline})
}

// LogHooks writes every applied cycle to the context logger.
type LogHooks struct{}

func NewLogHooks() domain.RenderHooks {
	return LogHooks{}
}

func (LogHooks) OnVerdict(ctx context.Context, generation uint64, verdict domain.DisplayVerdict) {
	logger.Logger(ctx).Debug().Uint64("generation", generation).Str("badge", verdict.Badge).Msgf("verdict: %s", verdict.DisplayLabel)
}

func (LogHooks) OnProbabilities(ctx context.Context, generation uint64, probabilities domain.Probabilities) {
	logger.Logger(ctx).Debug().Uint64("generation", generation).Msgf("probabilities: safe %.1f unsafe %.1f deadlock %.1f", probabilities.Safe, probabilities.Unsafe, probabilities.Deadlock)
}

func (LogHooks) OnTimeline(ctx context.Context, generation uint64, timeline domain.Timeline) {
	logger.Logger(ctx).Debug().Uint64("generation", generation).Msgf("timeline: %s with %d processes", timeline.State, len(timeline.Order))
}
