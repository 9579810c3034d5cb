package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdf-engine/internal/vmath"
)

func TestAABBFromMinMax(t *testing.T) {
	box := AABBFromMinMax(vmath.V3(-1, 0, 2), vmath.V3(3, 4, 6))
	assert.Equal(t, vmath.V3(1, 2, 4), box.Center)
	assert.Equal(t, vmath.V3(2, 2, 2), box.HalfExtent)
}

func TestUnionContainsBoth(t *testing.T) {
	a := AABB{Center: vmath.V3(-2, 0, 0), HalfExtent: vmath.V3(1, 1, 1)}
	b := AABB{Center: vmath.V3(3, 0, 0), HalfExtent: vmath.V3(1, 2, 1)}
	u := a.Union(b)
	assert.Equal(t, vmath.V3(-3, -2, -1), u.Min())
	assert.Equal(t, vmath.V3(4, 2, 1), u.Max())
}

func TestRayHitHeadOn(t *testing.T) {
	box := AABB{HalfExtent: vmath.V3(1, 1, 1)}
	tHit, hit := box.RayHit(vmath.V3(-10, 0, 0), vmath.V3(1, 0, 0))
	require.True(t, hit)
	assert.InDelta(t, 9, tHit, 1e-5)
}

func TestRayInsideHitsAtZero(t *testing.T) {
	box := AABB{HalfExtent: vmath.V3(1, 1, 1)}
	tHit, hit := box.RayHit(vmath.Vec3{}, vmath.V3(0, 1, 0))
	require.True(t, hit)
	assert.Equal(t, float32(0), tHit)
}

func TestRayMissesToTheSide(t *testing.T) {
	box := AABB{HalfExtent: vmath.V3(1, 1, 1)}
	_, hit := box.RayHit(vmath.V3(-10, 5, 0), vmath.V3(1, 0, 0))
	assert.False(t, hit)
}

func TestRayBehindOriginMisses(t *testing.T) {
	box := AABB{Center: vmath.V3(-5, 0, 0), HalfExtent: vmath.V3(1, 1, 1)}
	_, hit := box.RayHit(vmath.Vec3{}, vmath.V3(1, 0, 0))
	assert.False(t, hit)
}

func TestRayParallelZeroComponent(t *testing.T) {
	box := AABB{HalfExtent: vmath.V3(1, 1, 1)}
	// Parallel to the Y slabs but inside them: still a hit.
	_, hit := box.RayHit(vmath.V3(-10, 0.5, 0), vmath.V3(1, 0, 0))
	assert.True(t, hit)
	// Parallel and outside: never a hit.
	_, hit = box.RayHit(vmath.V3(-10, 1.5, 0), vmath.V3(1, 0, 0))
	assert.False(t, hit)
}
