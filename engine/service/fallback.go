package service

import (
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
)

const (
	safeThreshold     = 40.0
	deadlockThreshold = 70.0
)

// weightRange is base + U*spread for each outcome.
type weightRange struct {
	safe, unsafe, deadlock span
}

func spread(base, width float64) span {
	return span{lo: base, hi: base + width}
}

var fallbackWeights = map[domain.Label]weightRange{
	domain.LabelSafe:          {safe: spread(70, 20), unsafe: spread(10, 15), deadlock: spread(2, 8)},
	domain.LabelUnsafe:        {safe: spread(20, 20), unsafe: spread(45, 25), deadlock: spread(10, 15)},
	domain.LabelDeadlockProne: {safe: spread(3, 7), unsafe: spread(15, 15), deadlock: spread(60, 25)},
}

// RiskScore is the heuristic load score the fallback tiers are cut from.
func RiskScore(cpu, memory, io float64, processCount int) float64 {
	totalLoad := (cpu + memory + io) / 3
	processRisk := float64(processCount) / 50
	return totalLoad*0.7 + processRisk*30
}

func riskLabel(score float64) domain.Label {
	switch {
	case score < safeThreshold:
		return domain.LabelSafe
	case score < deadlockThreshold:
		return domain.LabelUnsafe
	default:
		return domain.LabelDeadlockProne
	}
}

// ClassifyFallback is the degraded-mode classifier used when the remote call fails.
// The tier is deterministic in the score; the probabilities are drawn within the tier.
// Confidence is the largest probability.
func ClassifyFallback(cpu, memory, io float64, processCount int, rng domain.RandomSource) domain.ClassificationResult {
	label := riskLabel(RiskScore(cpu, memory, io, processCount))
	w := fallbackWeights[label]
	probs := domain.Probabilities{
		Safe:     w.safe.draw(rng),
		Unsafe:   w.unsafe.draw(rng),
		Deadlock: w.deadlock.draw(rng),
	}.Normalized()

	return domain.ClassificationResult{
		Label:         label,
		Probabilities: probs,
		Confidence:    probs.Max(),
		Source:        domain.SourceFallback,
	}
}
