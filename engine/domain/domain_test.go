package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel(t *testing.T) {
	cases := map[string]Label{
		"SAFE":                      LabelSafe,
		"unsafe":                    LabelUnsafe,
		"DEADLOCK_PRONE":            LabelDeadlockProne,
		"DEADLOCK-PRONE":            LabelDeadlockProne,
		"HIGH-RISK(DEADLOCK-PRONE)": LabelDeadlockProne,
		"DEADLOCK":                  LabelDeadlockProne,
		"0":                         LabelDeadlockProne,
		"1":                         LabelSafe,
		"2":                         LabelUnsafe,
	}
	for in, want := range cases {
		got, err := ParseLabel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLabel("MAYBE")
	assert.Error(t, err)
}

func TestProbabilitiesFromMapMissingKeys(t *testing.T) {
	p := ProbabilitiesFromMap(map[string]float64{"SAFE": 60, "UNSAFE": -3})
	assert.Equal(t, 60.0, p.Safe)
	assert.Equal(t, 0.0, p.Unsafe)
	assert.Equal(t, 0.0, p.Deadlock)
}

func TestProbabilitiesNormalized(t *testing.T) {
	p := Probabilities{Safe: 0.2, Unsafe: 0.3, Deadlock: 0.5}.Normalized()
	assert.InDelta(t, 100.0, p.Sum(), 0.01)
	assert.InDelta(t, 50.0, p.Deadlock, 0.01)
	assert.Equal(t, p.Deadlock, p.Max())

	zero := Probabilities{}.Normalized()
	assert.Equal(t, 0.0, zero.Sum())
}

func TestLoadParametersClamped(t *testing.T) {
	p := LoadParameters{CPUPercent: 140, MemoryPercent: -5, IOPercent: 30, ProcessCount: -1, WorkloadType: "weird"}.Clamped()
	assert.Equal(t, 100, p.CPUPercent)
	assert.Equal(t, 0, p.MemoryPercent)
	assert.Equal(t, 30, p.IOPercent)
	assert.Equal(t, 0, p.ProcessCount)
	assert.Equal(t, WorkloadMixed, p.WorkloadType)
}

func TestParametersPatchApply(t *testing.T) {
	base := DefaultLoadParameters()
	wt := WorkloadIOBound
	cpu := 90
	got := ParametersPatch{CPUPercent: &cpu, WorkloadType: &wt}.Apply(base)
	assert.Equal(t, 90, got.CPUPercent)
	assert.Equal(t, WorkloadIOBound, got.WorkloadType)
	assert.Equal(t, base.MemoryPercent, got.MemoryPercent)
	assert.Equal(t, base.ProcessCount, got.ProcessCount)

	assert.Equal(t, base, ParametersPatch{}.Apply(base))
}

func TestRiskTierBadge(t *testing.T) {
	assert.Equal(t, "LOW RISK", RiskLow.Badge())
	assert.Equal(t, "MONITOR", RiskMedium.Badge())
	assert.Equal(t, "HIGH RISK", RiskHigh.Badge())
}

func TestParseWorkloadType(t *testing.T) {
	w, err := ParseWorkloadType("io-bound")
	require.NoError(t, err)
	assert.Equal(t, WorkloadIOBound, w)
	_, err = ParseWorkloadType("gpu-bound")
	assert.Error(t, err)
}
