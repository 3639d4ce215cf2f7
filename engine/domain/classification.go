package domain

import (
	"fmt"
	"math"
	"strings"
)

type Label string

const (
	LabelSafe          Label = "SAFE"
	LabelUnsafe        Label = "UNSAFE"
	LabelDeadlockProne Label = "DEADLOCK_PRONE"
)

// ParseLabel accepts the spellings the classifier backend has used over time,
// including the numeric class ids of the trained model (0 deadlock, 1 safe, 2 unsafe).
func ParseLabel(s string) (Label, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SAFE", "1":
		return LabelSafe, nil
	case "UNSAFE", "2":
		return LabelUnsafe, nil
	case "DEADLOCK_PRONE", "DEADLOCK-PRONE", "DEADLOCK", "HIGH-RISK(DEADLOCK-PRONE)", "0":
		return LabelDeadlockProne, nil
	}
	return "", fmt.Errorf("unknown classification label %q", s)
}

// Probability keys as reported by the classifier.
const (
	ProbSafe     = "SAFE"
	ProbUnsafe   = "UNSAFE"
	ProbDeadlock = "DEADLOCK"
)

// Probabilities are percentages over the three outcomes.
type Probabilities struct {
	Safe     float64 `json:"SAFE"`
	Unsafe   float64 `json:"UNSAFE"`
	Deadlock float64 `json:"DEADLOCK"`
}

// ProbabilitiesFromMap reads the three known keys; missing keys count as zero.
func ProbabilitiesFromMap(m map[string]float64) Probabilities {
	return Probabilities{
		Safe:     nonNegative(m[ProbSafe]),
		Unsafe:   nonNegative(m[ProbUnsafe]),
		Deadlock: nonNegative(m[ProbDeadlock]),
	}
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func (p Probabilities) Sum() float64 {
	return p.Safe + p.Unsafe + p.Deadlock
}

func (p Probabilities) Max() float64 {
	return math.Max(p.Safe, math.Max(p.Unsafe, p.Deadlock))
}

// Normalized scales p to sum to 100. An all-zero distribution is returned unchanged.
func (p Probabilities) Normalized() Probabilities {
	sum := p.Sum()
	if sum <= 0 {
		return p
	}
	return Probabilities{
		Safe:     p.Safe / sum * 100,
		Unsafe:   p.Unsafe / sum * 100,
		Deadlock: p.Deadlock / sum * 100,
	}
}

func (p Probabilities) Map() map[string]float64 {
	return map[string]float64{
		ProbSafe:     p.Safe,
		ProbUnsafe:   p.Unsafe,
		ProbDeadlock: p.Deadlock,
	}
}

type ResultSource string

const (
	SourceRemote   ResultSource = "remote"
	SourceFallback ResultSource = "fallback"
)

type ClassificationResult struct {
	Label         Label         `json:"label"`
	Probabilities Probabilities `json:"probabilities"`
	Confidence    float64       `json:"confidence"`
	Source        ResultSource  `json:"source"`
}

type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

// Badge is the short text shown next to the verdict.
func (t RiskTier) Badge() string {
	switch t {
	case RiskLow:
		return "LOW RISK"
	case RiskMedium:
		return "MONITOR"
	case RiskHigh:
		return "HIGH RISK"
	}
	return ""
}

type StyleClass string

const (
	StyleLow  StyleClass = "low"
	StyleHigh StyleClass = "high"
)

type DisplayVerdict struct {
	DisplayLabel string      `json:"display_label"`
	RiskTier     RiskTier    `json:"risk_tier"`
	StyleClass   StyleClass  `json:"style_class"`
	Badge        string      `json:"badge"`
	State        SystemState `json:"state"`
}
