package scene

import (
	"github.com/chewxy/math32"

	"sdf-engine/internal/vmath"
)

// AABB is an axis-aligned bounding box stored as center and half-extent.
// Derived data: recomputed whenever a primitive or transform changes rather
// than maintained incrementally.
type AABB struct {
	Center     vmath.Vec3
	HalfExtent vmath.Vec3
}

// AABBFromMinMax returns the box spanning the two corner points.
func AABBFromMinMax(min, max vmath.Vec3) AABB {
	return AABB{
		Center:     min.Add(max).Scale(0.5),
		HalfExtent: max.Sub(min).Scale(0.5),
	}
}

// Min returns the smallest corner.
func (a AABB) Min() vmath.Vec3 {
	return a.Center.Sub(a.HalfExtent)
}

// Max returns the largest corner.
func (a AABB) Max() vmath.Vec3 {
	return a.Center.Add(a.HalfExtent)
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABBFromMinMax(a.Min().Min(b.Min()), a.Max().Max(b.Max()))
}

// Offset returns the box translated by v.
func (a AABB) Offset(v vmath.Vec3) AABB {
	return AABB{Center: a.Center.Add(v), HalfExtent: a.HalfExtent}
}

// RayHit intersects the ray origin+t*dir with the box using the slab method.
// Returns the nearest non-negative hit distance. dir components may be zero.
func (a AABB) RayHit(origin, dir vmath.Vec3) (t float32, hit bool) {
	tMin := float32(0)
	tMax := float32(math32.MaxFloat32)
	min, max := a.Min(), a.Max()
	for _, axis := range [3][3]float32{
		{origin.X, dir.X, 0},
		{origin.Y, dir.Y, 1},
		{origin.Z, dir.Z, 2},
	} {
		o, d := axis[0], axis[1]
		lo, hi := pick(min, int(axis[2])), pick(max, int(axis[2]))
		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math32.Max(tMin, t1)
		tMax = math32.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

func pick(v vmath.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
