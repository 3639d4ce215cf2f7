package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/idgen"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/tracing"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

var _ domain.Service = (*Service)(nil)

const defaultHistoryLimit = 10

type Params struct {
	fx.In
	Classifier       domain.ClassifierAdapter
	Repo             domain.Repository
	SimulationConfig config.SimulationConfig
	HistoryConfig    config.HistoryConfig
	Hooks            []domain.RenderHooks `group:"render_hooks"`
	Rand             domain.RandomSource  `optional:"true"`
}

// appState is everything the engine shows; it replaces page-level globals.
type appState struct {
	params domain.LoadParameters
	latest *domain.Snapshot
}

type Service struct {
	Classifier domain.ClassifierAdapter
	Repo       domain.Repository

	sim          config.SimulationConfig
	historyLimit int
	rng          domain.RandomSource
	now          func() time.Time

	debouncer   *Debouncer
	gens        generations
	player      *Player
	broadcaster *Broadcaster
	hooks       []domain.RenderHooks

	mu    sync.RWMutex
	state appState
	// pubMu keeps hook calls of consecutive cycles from interleaving.
	pubMu sync.Mutex
}

func NewService(params Params) (domain.Service, error) {
	return newService(params), nil
}

func newService(params Params) *Service {
	sim := params.SimulationConfig.WithDefaults()
	rng := params.Rand
	if rng == nil {
		rng = NewRandomSource(sim.Seed)
	}
	historyLimit := params.HistoryConfig.Limit
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	broadcaster := NewBroadcaster()
	hooks := append([]domain.RenderHooks{broadcaster}, params.Hooks...)

	return &Service{
		Classifier:   params.Classifier,
		Repo:         params.Repo,
		sim:          sim,
		historyLimit: historyLimit,
		rng:          rng,
		now:          time.Now,
		debouncer:    NewDebouncer(sim.Debounce()),
		player:       NewPlayer(sim.MaxSpeed, time.Now),
		broadcaster:  broadcaster,
		hooks:        hooks,
		state: appState{
			params: domain.DefaultLoadParameters(),
		},
	}
}

func (svc *Service) UpdateParameters(ctx context.Context, params domain.LoadParameters) domain.LoadParameters {
	params = params.Clamped()
	svc.mu.Lock()
	svc.state.params = params
	svc.mu.Unlock()

	svc.scheduleCycle(ctx, params)
	return params
}

// PatchParameters merges under the state lock so concurrent partial updates keep each other's fields.
func (svc *Service) PatchParameters(ctx context.Context, patch domain.ParametersPatch) domain.LoadParameters {
	svc.mu.Lock()
	params := patch.Apply(svc.state.params).Clamped()
	svc.state.params = params
	svc.mu.Unlock()

	svc.scheduleCycle(ctx, params)
	return params
}

func (svc *Service) scheduleCycle(ctx context.Context, params domain.LoadParameters) {
	cycleCtx := context.WithoutCancel(ctx)
	svc.debouncer.Schedule(func() {
		current := svc.Parameters(cycleCtx)
		if _, err := svc.RunCycle(cycleCtx, current); err != nil {
			logger.Logger(cycleCtx).Error().Err(err).Msg("debounced cycle failed")
		}
	})
	logger.Logger(ctx).Debug().Msgf("parameters updated %+v, cycle scheduled in %s", params, svc.sim.Debounce())
}

func (svc *Service) Parameters(ctx context.Context) domain.LoadParameters {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.state.params
}

// RunCycle regenerates processes, classifies them and publishes the result.
// The snapshot is returned even when a newer cycle has superseded it; it is then not published.
func (svc *Service) RunCycle(ctx context.Context, params domain.LoadParameters) (*domain.Snapshot, error) {
	params = params.Clamped()
	token := svc.gens.Issue()

	ctx, span := tracing.StartSpan(ctx, "engine.cycle", trace.SpanKindInternal)
	span.SetInt("generation", int(token)).SetInt("process_count", params.ProcessCount).SetString("workload_type", string(params.WorkloadType))

	processes := GenerateProfiles(params, svc.sim.BasePID, svc.rng)
	result := svc.classify(ctx, params, processes)
	verdict := ApplyLabelPolicy(result.Label, result.Confidence, result.Probabilities)
	timeline := BuildTimeline(ProcessRefs(processes), verdict.State)

	snapshot := &domain.Snapshot{
		ID:             idgen.New(),
		Generation:     token,
		Parameters:     params,
		Processes:      processes,
		Classification: result,
		Verdict:        verdict,
		Timeline:       timeline,
		CreatedAt:      svc.now().UTC(),
	}
	span.SetString("label", string(result.Label)).SetString("source", string(result.Source)).SetString("verdict", verdict.DisplayLabel)

	if !svc.publish(ctx, snapshot) {
		logger.Logger(ctx).Info().Msgf("dropping stale cycle %d, a newer cycle was issued", token)
		span.SetString("outcome", "stale").End(nil)
		return snapshot, nil
	}
	span.SetString("outcome", "published").End(nil)
	return snapshot, nil
}

// classify asks the remote classifier and degrades to the heuristic on any failure.
func (svc *Service) classify(ctx context.Context, params domain.LoadParameters, processes []domain.SimulatedProcess) domain.ClassificationResult {
	result, err := svc.Classifier.Classify(ctx, &domain.ClassifyRequest{
		Parameters: params,
		Processes:  processes,
	})
	if err == nil && result != nil {
		result.Source = domain.SourceRemote
		return *result
	}
	logger.Logger(ctx).Warn().Err(err).Msg("remote classifier unavailable, using fallback heuristic")
	return ClassifyFallback(
		float64(params.CPUPercent),
		float64(params.MemoryPercent),
		float64(params.IOPercent),
		params.ProcessCount,
		svc.rng,
	)
}

// publish applies snapshot if its generation is still the latest one issued.
func (svc *Service) publish(ctx context.Context, snapshot *domain.Snapshot) bool {
	svc.pubMu.Lock()
	defer svc.pubMu.Unlock()

	svc.mu.Lock()
	if !svc.gens.IsLatest(snapshot.Generation) {
		svc.mu.Unlock()
		return false
	}
	svc.state.latest = snapshot
	svc.mu.Unlock()

	svc.player.Reset()
	for _, h := range svc.hooks {
		h.OnVerdict(ctx, snapshot.Generation, snapshot.Verdict)
		h.OnProbabilities(ctx, snapshot.Generation, snapshot.Classification.Probabilities)
		h.OnTimeline(ctx, snapshot.Generation, snapshot.Timeline)
	}
	svc.broadcaster.Publish(ctx, svc.playbackEvent(svc.player.State()))

	summary := snapshot.Summary()
	if err := svc.Repo.InsertSnapshot(ctx, &summary); err != nil {
		logger.Logger(ctx).Warn().Err(err).Msgf("failed to store snapshot %s", snapshot.ID)
	}
	logger.Logger(ctx).Info().Msgf("cycle %d published: %s (%s, confidence %.1f)", snapshot.Generation, snapshot.Verdict.DisplayLabel, snapshot.Classification.Source, snapshot.Classification.Confidence)
	return true
}

func (svc *Service) Latest(ctx context.Context) (*domain.Snapshot, bool) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.state.latest, svc.state.latest != nil
}

func (svc *Service) ListSnapshots(ctx context.Context, opt *domain.QuerySnapshotOptions) error {
	if opt.Limit <= 0 {
		opt.Limit = defaultHistoryLimit
	}
	if opt.Limit > svc.historyLimit {
		opt.Limit = svc.historyLimit
	}
	return svc.Repo.QuerySnapshots(ctx, opt)
}

func (svc *Service) playbackEvent(state domain.PlaybackState) domain.RenderEvent {
	svc.mu.RLock()
	var generation uint64
	if svc.state.latest != nil {
		generation = svc.state.latest.Generation
	}
	svc.mu.RUnlock()
	return domain.RenderEvent{Kind: domain.EventPlayback, Generation: generation, Playback: &state}
}

func (svc *Service) announce(ctx context.Context, state domain.PlaybackState) domain.PlaybackState {
	svc.broadcaster.Publish(ctx, svc.playbackEvent(state))
	return state
}

func (svc *Service) Play(ctx context.Context) domain.PlaybackState {
	return svc.announce(ctx, svc.player.Play())
}

func (svc *Service) Pause(ctx context.Context) domain.PlaybackState {
	return svc.announce(ctx, svc.player.Pause())
}

func (svc *Service) ResetPlayback(ctx context.Context) domain.PlaybackState {
	return svc.announce(ctx, svc.player.Reset())
}

func (svc *Service) SetPlaybackSpeed(ctx context.Context, speed int) (domain.PlaybackState, error) {
	state, err := svc.player.SetSpeed(speed)
	if err != nil {
		return state, err
	}
	return svc.announce(ctx, state), nil
}

func (svc *Service) SeekPlayback(ctx context.Context, position float64) domain.PlaybackState {
	return svc.announce(ctx, svc.player.Seek(position))
}

func (svc *Service) Playback(ctx context.Context) domain.PlaybackState {
	return svc.player.State()
}

func (svc *Service) Subscribe(ctx context.Context) (<-chan domain.RenderEvent, func()) {
	return svc.broadcaster.Subscribe()
}

func (svc *Service) Stop(ctx context.Context) {
	svc.debouncer.Stop()
	logger.Logger(ctx).Info().Msg("orchestrator stopped")
}

// lockedRand makes a *rand.Rand safe for the timer goroutine and request handlers.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a goroutine-safe PCG source. A zero seed seeds from the clock.
func NewRandomSource(seed uint64) domain.RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
