package main

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	// gridHalfSpan is how far the ground grid extends from the origin along
	// X and Z, in world units.
	gridHalfSpan = 50

	// Minor lines fade with camera distance and vanish past gridFadeFar, so
	// a zoomed-out view is not a solid sheet of lines.
	gridFadeNear = 10
	gridFadeFar  = 80

	// gridCoarsenAt is the camera distance beyond which only every fifth
	// minor line is drawn.
	gridCoarsenAt = 40
)

// gridFade returns the minor-line intensity in [0,1] for a camera distance.
func gridFade(dist float32) float32 {
	f := 1 - (dist-gridFadeNear)/(gridFadeFar-gridFadeNear)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// gridStep returns the minor-line spacing for a camera distance.
func gridStep(dist float32) int {
	if dist > gridCoarsenAt {
		return 5
	}
	return 1
}

// drawGrid draws the XZ ground grid under the ray-marched scene. Line
// density and opacity follow the camera distance; the world axes stay fully
// opaque so orientation survives the fade.
func (r *renderer) drawGrid() {
	dist := r.cam.Distance()
	fade := gridFade(dist)
	step := gridStep(dist)

	minor := rl.NewColor(128, 128, 128, uint8(20+60*fade))
	major := rl.NewColor(168, 168, 168, uint8(70+80*fade))

	for i := -gridHalfSpan; i <= gridHalfSpan; i += step {
		c := minor
		if i%10 == 0 {
			c = major
		}
		f := float32(i)
		rl.DrawLine3D(rl.NewVector3(f, 0, -gridHalfSpan), rl.NewVector3(f, 0, gridHalfSpan), c)
		rl.DrawLine3D(rl.NewVector3(-gridHalfSpan, 0, f), rl.NewVector3(gridHalfSpan, 0, f), c)
	}

	rl.DrawLine3D(rl.NewVector3(-gridHalfSpan, 0, 0), rl.NewVector3(gridHalfSpan, 0, 0),
		rl.NewColor(214, 84, 84, 255))
	rl.DrawLine3D(rl.NewVector3(0, -gridHalfSpan, 0), rl.NewVector3(0, gridHalfSpan, 0),
		rl.NewColor(84, 214, 84, 255))
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridHalfSpan), rl.NewVector3(0, 0, gridHalfSpan),
		rl.NewColor(84, 84, 214, 255))
}
