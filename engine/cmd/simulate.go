package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/config"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/client"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/repository"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/service"
	"github.com/incognnitamood/DeadlockPredictionAnalysis/pkg/logger"
	"github.com/spf13/cobra"
)

func init() {
	f := SimulateCmd.Flags()
	f.Int("cpu", 50, "CPU load percent")
	f.Int("memory", 50, "Memory load percent")
	f.Int("io", 50, "I/O load percent")
	f.Int("processes", 10, "Number of simulated processes")
	f.String("workload", string(domain.WorkloadMixed), "Workload type: cpu-bound, io-bound, memory-heavy or mixed")
	f.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	f.String("classifier-url", "", "Base url of the remote classifier, empty classifies offline")
	f.Int("timeout-ms", 2000, "Remote classifier timeout")
	f.Bool("processes-table", false, "Print every simulated process")
}

var SimulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one classification cycle and print the verdict",
	RunE:  RunSimulate,
}

func RunSimulate(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	cpu, _ := f.GetInt("cpu")
	memory, _ := f.GetInt("memory")
	ioLoad, _ := f.GetInt("io")
	processes, _ := f.GetInt("processes")
	workload, _ := f.GetString("workload")
	seed, _ := f.GetUint64("seed")
	baseURL, _ := f.GetString("classifier-url")
	timeoutMS, _ := f.GetInt("timeout-ms")
	showProcesses, _ := f.GetBool("processes-table")

	wt, err := domain.ParseWorkloadType(workload)
	if err != nil {
		return err
	}
	logger.InitLogger()
	if err := logger.Configure(logger.Options{Level: "warn", Console: true}); err != nil {
		return err
	}

	svc, err := service.NewService(service.Params{
		Classifier:       client.NewClassifierClient(config.ClassifierClient{BaseURL: baseURL, TimeoutMS: timeoutMS}),
		Repo:             repository.NewMemoryRepository(config.HistoryConfig{}),
		SimulationConfig: config.SimulationConfig{Seed: seed}.WithDefaults(),
		Rand:             service.NewRandomSource(seed),
	})
	if err != nil {
		return err
	}
	ctx := context.Background()
	defer svc.Stop(ctx)

	snapshot, err := svc.RunCycle(ctx, domain.LoadParameters{
		CPUPercent:    cpu,
		MemoryPercent: memory,
		IOPercent:     ioLoad,
		ProcessCount:  processes,
		WorkloadType:  wt,
	})
	if err != nil {
		return err
	}
	RenderSnapshot(os.Stdout, snapshot, showProcesses)
	return nil
}

var (
	headerColor = color.New(color.Bold, color.FgCyan)
	mutedColor  = color.New(color.FgHiBlack)
	tierColors  = map[domain.RiskTier]*color.Color{
		domain.RiskLow:    color.New(color.Bold, color.FgGreen),
		domain.RiskMedium: color.New(color.Bold, color.FgYellow),
		domain.RiskHigh:   color.New(color.Bold, color.FgRed),
	}
	phaseGlyphs = map[domain.Phase]string{
		domain.PhaseInit:     "i",
		domain.PhaseRunning:  "=",
		domain.PhaseWaiting:  "~",
		domain.PhaseUnsafe:   "!",
		domain.PhaseDeadlock: "X",
		domain.PhaseCleanup:  "c",
	}
)

const barWidth = 40

// RenderSnapshot prints the verdict, the probability bars and a one character per second timeline.
func RenderSnapshot(w io.Writer, s *domain.Snapshot, showProcesses bool) {
	tc, ok := tierColors[s.Verdict.RiskTier]
	if !ok {
		tc = tierColors[domain.RiskLow]
	}
	p := s.Parameters
	headerColor.Fprintf(w, "Cycle %d\n", s.Generation)
	mutedColor.Fprintf(w, "cpu %d%%  memory %d%%  io %d%%  processes %d  workload %s\n\n",
		p.CPUPercent, p.MemoryPercent, p.IOPercent, p.ProcessCount, p.WorkloadType)

	tc.Fprintf(w, "[%s] %s\n", s.Verdict.Badge, s.Verdict.DisplayLabel)
	fmt.Fprintf(w, "confidence %.1f%% from %s classifier\n\n", s.Classification.Confidence, s.Classification.Source)

	probs := s.Classification.Probabilities
	renderBar(w, "SAFE", probs.Safe, tierColors[domain.RiskLow])
	renderBar(w, "UNSAFE", probs.Unsafe, tierColors[domain.RiskMedium])
	renderBar(w, "DEADLOCK", probs.Deadlock, tierColors[domain.RiskHigh])
	fmt.Fprintln(w)

	if showProcesses {
		headerColor.Fprintln(w, "Processes")
		for _, proc := range s.Processes {
			fmt.Fprintf(w, "  %6d  cpu %5.1f  mem %5.1f  io %5.1f  %s\n", proc.PID, proc.CPUUsage, proc.MemoryUsage, proc.IOUsage, proc.WorkloadType)
		}
		fmt.Fprintln(w)
	}

	renderTimeline(w, s.Timeline)
}

func renderBar(w io.Writer, name string, value float64, c *color.Color) {
	filled := int(value / 100 * barWidth)
	filled = max(0, min(barWidth, filled))
	fmt.Fprintf(w, "%-9s ", name)
	c.Fprint(w, strings.Repeat("#", filled))
	fmt.Fprintf(w, "%s %5.1f%%\n", strings.Repeat(".", barWidth-filled), value)
}

func renderTimeline(w io.Writer, tl domain.Timeline) {
	headerColor.Fprintf(w, "Timeline (%s, %.0fs)\n", tl.State, tl.HorizonSeconds)
	width := int(tl.HorizonSeconds)
	for _, pid := range tl.Order {
		row := []byte(strings.Repeat(" ", width))
		for _, seg := range tl.Segments[pid] {
			glyph := phaseGlyphs[seg.Phase]
			start := int(seg.StartOffsetSeconds)
			end := int(seg.EndOffsetSeconds())
			if seg.DurationSeconds == 0 && start < width {
				row[start] = glyph[0]
				continue
			}
			for i := start; i < end && i < width; i++ {
				row[i] = glyph[0]
			}
		}
		fmt.Fprintf(w, "  %6d |%s|\n", pid, string(row))
	}
	events := append([]domain.TimelineEvent(nil), tl.Events...)
	sort.Slice(events, func(i, j int) bool { return events[i].TimeSeconds < events[j].TimeSeconds })
	for _, ev := range events {
		mutedColor.Fprintf(w, "  %4.0fs  %s\n", ev.TimeSeconds, ev.Description)
	}
}
