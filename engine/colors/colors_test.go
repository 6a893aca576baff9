package colors

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
)

func TestGPURoundTrip(t *testing.T) {
	c := Color{0.25, 0.5, 0.75, 1}
	assert.Equal(t, gputypes.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}, c.GPU())
	assert.Equal(t, c, FromGPU(c.GPU()))
}

func TestScaleClampsAndKeepsAlpha(t *testing.T) {
	c := Color{0.5, 0.8, 0.1, 0.4}.Scale(1.5)
	assert.InDelta(t, 0.75, c[0], 1e-6)
	assert.Equal(t, float32(1), c[1])
	assert.InDelta(t, 0.15, c[2], 1e-6)
	assert.Equal(t, float32(0.4), c[3])
}
