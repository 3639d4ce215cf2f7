package service

import (
	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
)

const (
	safeConfidenceBar     = 85.0
	unsafeConfidenceBar   = 75.0
	deadlockConfidenceBar = 90.0
)

const (
	LabelSafeHigh          = "SAFE – High Confidence"
	LabelUnsafeHigh        = "UNSAFE – High Confidence"
	LabelDeadlockVeryHigh  = "DEADLOCK-PRONE – Very High Confidence"
	LabelUnsafeMonitoring  = "UNSAFE – Needs Monitoring"
	LabelSafeLowConfidence = "SAFE – Low Confidence"
)

// ApplyLabelPolicy turns a raw classification into what the operator sees.
// A deadlock label below its bar is shown as an unsafe monitoring warning.
// probabilities do not influence the verdict; they are accepted so callers pass the whole triple.
func ApplyLabelPolicy(label domain.Label, confidence float64, _ domain.Probabilities) domain.DisplayVerdict {
	switch {
	case confidence >= safeConfidenceBar && label == domain.LabelSafe:
		return verdict(LabelSafeHigh, domain.RiskLow, domain.StateSafe)
	case confidence >= unsafeConfidenceBar && label == domain.LabelUnsafe:
		return verdict(LabelUnsafeHigh, domain.RiskHigh, domain.StateUnsafe)
	case confidence >= deadlockConfidenceBar && label == domain.LabelDeadlockProne:
		return verdict(LabelDeadlockVeryHigh, domain.RiskHigh, domain.StateDeadlock)
	case label == domain.LabelDeadlockProne || label == domain.LabelUnsafe:
		return verdict(LabelUnsafeMonitoring, domain.RiskHigh, domain.StateUnsafe)
	default:
		return verdict(LabelSafeLowConfidence, domain.RiskLow, domain.StateSafe)
	}
}

func verdict(text string, tier domain.RiskTier, state domain.SystemState) domain.DisplayVerdict {
	style := domain.StyleLow
	if tier == domain.RiskHigh {
		style = domain.StyleHigh
	}
	return domain.DisplayVerdict{
		DisplayLabel: text,
		RiskTier:     tier,
		StyleClass:   style,
		Badge:        tier.Badge(),
		State:        state,
	}
}
