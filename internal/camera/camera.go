// Package camera holds the camera pose that crosses the engine/render
// bridge, plus the orbit controls the engine applies to it. Projection math
// beyond this data contract belongs to the renderer.
package camera

import (
	"github.com/chewxy/math32"

	"sdf-engine/internal/vmath"
)

const (
	defaultFovY = 45 // degrees

	// minPitch/maxPitch keep the orbit away from the poles so the up vector
	// never flips.
	minPitch = -1.45
	maxPitch = 1.45

	// minDistance stops a dolly-in from passing through the target.
	minDistance = 0.5
)

// Camera is a perspective camera pose. Plain data; snapshots of it travel
// through a latest-value cell, so stale poses are dropped, never queued.
type Camera struct {
	Position vmath.Vec3
	Target   vmath.Vec3
	Up       vmath.Vec3
	// FovY is the vertical field of view in degrees.
	FovY float32
}

// Default returns a camera at (10,10,10) looking at the origin, Y up.
func Default() Camera {
	return Camera{
		Position: vmath.V3(10, 10, 10),
		Target:   vmath.Vec3{},
		Up:       vmath.V3(0, 1, 0),
		FovY:     defaultFovY,
	}
}

// Forward returns the unit view direction.
func (c Camera) Forward() vmath.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Distance returns how far the camera sits from its target.
func (c Camera) Distance() float32 {
	return c.Position.Sub(c.Target).Length()
}

// Orbit rotates the camera around its target by dYaw around the up axis and
// dPitch toward/away from it, in radians. Pitch is clamped short of the
// poles.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	offset := c.Position.Sub(c.Target)
	radius := offset.Length()
	if radius == 0 {
		return
	}

	yaw := math32.Atan2(offset.X, offset.Z)
	pitch := math32.Asin(offset.Y / radius)

	yaw += dYaw
	pitch = clamp(pitch+dPitch, minPitch, maxPitch)

	cp := math32.Cos(pitch)
	c.Position = c.Target.Add(vmath.V3(
		radius*cp*math32.Sin(yaw),
		radius*math32.Sin(pitch),
		radius*cp*math32.Cos(yaw),
	))
}

// Dolly moves the camera along its view direction by amount, stopping short
// of the target.
func (c *Camera) Dolly(amount float32) {
	distance := c.Distance()
	if distance-amount < minDistance {
		amount = distance - minDistance
	}
	c.Position = c.Position.Add(c.Forward().Scale(amount))
}

// SetTarget retargets the camera without moving it, e.g. onto a picked
// object.
func (c *Camera) SetTarget(target vmath.Vec3) {
	c.Target = target
}

func clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}
