package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3, 0, 100))
	assert.Equal(t, 100.0, Clamp(140.5, 0, 100))
	assert.Equal(t, 42.5, Clamp(42.5, 0, 100))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, ClampInt(0, 1, 10))
	assert.Equal(t, 10, ClampInt(11, 1, 10))
	assert.Equal(t, 5, ClampInt(5, 1, 10))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 33.33, Round(33.3333, 2))
	assert.Equal(t, 1.5, Round(1.4999, 1))
}

func TestPtr(t *testing.T) {
	p := Ptr(3)
	assert.Equal(t, 3, *p)
}
