package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sdf-engine/internal/vmath"
)

func TestOrbitKeepsDistance(t *testing.T) {
	c := Default()
	before := c.Distance()
	c.Orbit(0.7, -0.3)
	assert.InDelta(t, before, c.Distance(), 1e-4)
}

func TestOrbitPitchClampsShortOfPole(t *testing.T) {
	c := Default()
	for i := 0; i < 100; i++ {
		c.Orbit(0, 0.5)
	}
	// The up vector never flips: the offset keeps a horizontal component.
	offset := c.Position.Sub(c.Target)
	horizontal := vmath.V2(offset.X, offset.Z)
	assert.Greater(t, horizontal.X*horizontal.X+horizontal.Y*horizontal.Y, float32(0.01))
}

func TestDollyMovesAlongView(t *testing.T) {
	c := Default()
	before := c.Distance()
	c.Dolly(2)
	assert.InDelta(t, before-2, c.Distance(), 1e-4)
}

func TestDollyStopsShortOfTarget(t *testing.T) {
	c := Default()
	c.Dolly(1000)
	assert.InDelta(t, minDistance, c.Distance(), 1e-4)
}

func TestSetTargetKeepsPosition(t *testing.T) {
	c := Default()
	pos := c.Position
	c.SetTarget(vmath.V3(1, 2, 3))
	assert.Equal(t, pos, c.Position)
	assert.Equal(t, vmath.V3(1, 2, 3), c.Target)
}

func TestForwardIsUnit(t *testing.T) {
	c := Default()
	assert.InDelta(t, 1, c.Forward().Length(), 1e-5)
}
