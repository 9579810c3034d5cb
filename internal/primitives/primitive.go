// Package primitives defines the primitive shapes that objects combine into
// CSG geometry, the per-primitive transform, and a registry for primitives
// shared between objects.
package primitives

import (
	"github.com/chewxy/math32"

	"sdf-engine/internal/vmath"
)

// Primitive is the closed set of encodable primitive shapes. Implementations
// are plain value types with no shared ownership; see Registry for the
// handle-managed variant. The set is sealed so encoding and bounds logic can
// switch over it exhaustively.
type Primitive interface {
	// TypeName returns the primitive type as displayed in editor UIs.
	TypeName() string

	sealed()
}

// Type names returned by TypeName. Persistence round-trips through these.
const (
	SphereTypeName        = "Sphere"
	CubeTypeName          = "Cube"
	UberPrimitiveTypeName = "Uber Primitive"
)

// Sphere is a ball defined by a center (relative to the op transform) and a
// radius.
type Sphere struct {
	Center vmath.Vec3
	Radius float32
}

// NewSphere returns a sphere with the given center and radius.
func NewSphere(center vmath.Vec3, radius float32) Sphere {
	return Sphere{Center: center, Radius: radius}
}

func (Sphere) TypeName() string { return SphereTypeName }
func (Sphere) sealed()          {}

// Cube is an axis-aligned box (before the op transform's rotation) defined by
// a center and full edge lengths.
type Cube struct {
	Center     vmath.Vec3
	Dimensions vmath.Vec3
}

// NewCube returns a cube with the given center and full dimensions.
func NewCube(center vmath.Vec3, dimensions vmath.Vec3) Cube {
	return Cube{Center: center, Dimensions: dimensions}
}

func (Cube) TypeName() string { return CubeTypeName }
func (Cube) sealed()          {}

// UberPrimitive is the generalized primitive every shape lowers to on the
// GPU: a box with dimensions (width, depth, height, thickness) rounded by
// the corner radii. A zero-size box rounded by r is a sphere of radius r; a
// box with zero corner radius is a cube.
type UberPrimitive struct {
	// Dimensions is width, depth, height, thickness.
	Dimensions vmath.Vec4
	// CornerRadius rounds edges; the second component selects torus-like
	// hollowing in the shader's distance field.
	CornerRadius vmath.Vec2
}

// NewUberPrimitive returns an uber primitive with the given dimensions and
// corner radii.
func NewUberPrimitive(dimensions vmath.Vec4, cornerRadius vmath.Vec2) UberPrimitive {
	return UberPrimitive{Dimensions: dimensions, CornerRadius: cornerRadius}
}

func (UberPrimitive) TypeName() string { return UberPrimitiveTypeName }
func (UberPrimitive) sealed()          {}

// LocalCenter returns the primitive's own center offset, applied on top of
// the op transform center when positioning. UberPrimitive positions through
// the transform alone.
func LocalCenter(p Primitive) vmath.Vec3 {
	switch pr := p.(type) {
	case Sphere:
		return pr.Center
	case Cube:
		return pr.Center
	case UberPrimitive:
		return vmath.Vec3{}
	default:
		// The interface is sealed; a new variant must be added to every
		// switch in this package and in the gpu encoder.
		panic("primitives: unknown primitive variant " + p.TypeName())
	}
}

// UberProps lowers any primitive to the shared uber-primitive property set
// consumed by the GPU decoder.
func UberProps(p Primitive) (dimensions vmath.Vec4, cornerRadius vmath.Vec2) {
	switch pr := p.(type) {
	case Sphere:
		return vmath.Vec4{}, vmath.V2(pr.Radius, 0)
	case Cube:
		d := pr.Dimensions
		return vmath.V4(d.X, d.Y, d.Z, 0), vmath.Vec2{}
	case UberPrimitive:
		return pr.Dimensions, pr.CornerRadius
	default:
		panic("primitives: unknown primitive variant " + p.TypeName())
	}
}

// HalfExtent returns conservative unrotated half-extents enclosing the
// primitive around its local center.
func HalfExtent(p Primitive) vmath.Vec3 {
	dims, corner := UberProps(p)
	round := math32.Max(corner.X, corner.Y) + dims.W
	return dims.XYZ().Scale(0.5).Add(vmath.V3Scalar(round))
}
