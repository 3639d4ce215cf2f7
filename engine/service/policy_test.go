package service

import (
	"testing"

	"github.com/incognnitamood/DeadlockPredictionAnalysis/engine/domain"
	"github.com/stretchr/testify/assert"
)

func TestApplyLabelPolicy(t *testing.T) {
	probs := domain.Probabilities{Safe: 30, Unsafe: 30, Deadlock: 40}
	cases := []struct {
		name       string
		label      domain.Label
		confidence float64
		text       string
		tier       domain.RiskTier
		style      domain.StyleClass
		state      domain.SystemState
	}{
		{"safe high", domain.LabelSafe, 95, LabelSafeHigh, domain.RiskLow, domain.StyleLow, domain.StateSafe},
		{"safe at bar", domain.LabelSafe, 85, LabelSafeHigh, domain.RiskLow, domain.StyleLow, domain.StateSafe},
		{"safe below bar", domain.LabelSafe, 84.9, LabelSafeLowConfidence, domain.RiskLow, domain.StyleLow, domain.StateSafe},
		{"unsafe at bar", domain.LabelUnsafe, 75, LabelUnsafeHigh, domain.RiskHigh, domain.StyleHigh, domain.StateUnsafe},
		{"unsafe below bar", domain.LabelUnsafe, 60, LabelUnsafeMonitoring, domain.RiskHigh, domain.StyleHigh, domain.StateUnsafe},
		{"deadlock at bar", domain.LabelDeadlockProne, 90, LabelDeadlockVeryHigh, domain.RiskHigh, domain.StyleHigh, domain.StateDeadlock},
		{"deadlock muted", domain.LabelDeadlockProne, 89.99, LabelUnsafeMonitoring, domain.RiskHigh, domain.StyleHigh, domain.StateUnsafe},
		{"deadlock low", domain.LabelDeadlockProne, 50, LabelUnsafeMonitoring, domain.RiskHigh, domain.StyleHigh, domain.StateUnsafe},
		{"unknown label", domain.Label("???"), 99, LabelSafeLowConfidence, domain.RiskLow, domain.StyleLow, domain.StateSafe},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := ApplyLabelPolicy(tc.label, tc.confidence, probs)
			assert.Equal(t, tc.text, v.DisplayLabel)
			assert.Equal(t, tc.tier, v.RiskTier)
			assert.Equal(t, tc.style, v.StyleClass)
			assert.Equal(t, tc.state, v.State)
			assert.Equal(t, tc.tier.Badge(), v.Badge)
		})
	}
}

func TestApplyLabelPolicyNeverShowsLowConfidenceDeadlock(t *testing.T) {
	for conf := 0.0; conf < 90; conf += 0.5 {
		v := ApplyLabelPolicy(domain.LabelDeadlockProne, conf, domain.Probabilities{})
		assert.Equal(t, "UNSAFE – Needs Monitoring", v.DisplayLabel)
		assert.NotContains(t, v.DisplayLabel, "DEADLOCK")
	}
}

func TestApplyLabelPolicyIsPure(t *testing.T) {
	probs := domain.Probabilities{Safe: 10, Unsafe: 20, Deadlock: 70}
	first := ApplyLabelPolicy(domain.LabelUnsafe, 80, probs)
	second := ApplyLabelPolicy(domain.LabelUnsafe, 80, probs)
	assert.Equal(t, first, second)
}
