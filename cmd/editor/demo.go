package main

import (
	"github.com/chewxy/math32"

	"sdf-engine/internal/engine"
	"sdf-engine/internal/primitives"
	"sdf-engine/internal/scene"
	"sdf-engine/internal/vmath"
)

// buildDemoScene seeds the collection before the engine starts ticking, so
// the first shipped delta carries the whole scene in one change set.
func buildDemoScene(eng *engine.Engine) error {
	col := eng.Collection()
	reg := eng.Registry()

	// A plinth: a slab with a rounded cap blended on and a shared bolt-hole
	// sphere subtracted at each corner.
	plinthId, err := col.NewObject("plinth", vmath.V3(0, 0.5, 0), scene.PrimitiveOp{
		Op:        scene.OpUnion,
		Primitive: primitives.NewCube(vmath.Vec3{}, vmath.V3(5, 1, 5)),
		Transform: primitives.DefaultTransform(),
	})
	if err != nil {
		return err
	}
	plinth, err := col.Get(plinthId)
	if err != nil {
		return err
	}

	top := primitives.NewUberPrimitive(vmath.V4(3.4, 0.6, 3.4, 0), vmath.V2(0.25, 0))
	if _, err := plinth.AppendOp(scene.OpUnion, top,
		primitives.NewTransform(vmath.V3(0, 0.7, 0), vmath.QuatIdentity()), 0.35); err != nil {
		return err
	}

	// One registry sphere stamped into all four corner ops; released after
	// setup, so the sweep reclaims it once nothing else resolves it.
	bolt, err := reg.NewSphere(vmath.Vec3{}, 0.45)
	if err != nil {
		return err
	}
	corners := []vmath.Vec3{
		vmath.V3(2, 0.5, 2),
		vmath.V3(-2, 0.5, 2),
		vmath.V3(2, 0.5, -2),
		vmath.V3(-2, 0.5, -2),
	}
	for _, corner := range corners {
		if _, err := plinth.AppendOp(scene.OpSubtraction, *bolt.Get(),
			primitives.NewTransform(corner, vmath.QuatIdentity()), 0); err != nil {
			return err
		}
	}
	bolt.Release()
	reg.CleanUnusedReferences()
	if err := col.MarkUpdated(plinthId); err != nil {
		return err
	}

	// A gem: a tilted cube shaved down by an intersecting sphere.
	gemId, err := col.NewObject("gem", vmath.V3(4.5, 1.6, 0), scene.PrimitiveOp{
		Op:        scene.OpUnion,
		Primitive: primitives.NewCube(vmath.Vec3{}, vmath.V3(1.4, 1.4, 1.4)),
		Transform: primitives.NewTransform(vmath.Vec3{},
			vmath.MustAxisAngle(vmath.V3(1, 0, 1), math32.Pi/5)),
	})
	if err != nil {
		return err
	}
	gem, err := col.Get(gemId)
	if err != nil {
		return err
	}
	if _, err := gem.AppendOp(scene.OpIntersection, primitives.NewSphere(vmath.Vec3{}, 0.95),
		primitives.DefaultTransform(), 0); err != nil {
		return err
	}
	if err := col.MarkUpdated(gemId); err != nil {
		return err
	}

	// A dumbbell: two blended spheres, a no-op boundary, then a disjoint
	// handle accumulated separately.
	dumbbellId, err := col.NewObject("dumbbell", vmath.V3(-4.5, 1.2, 0), scene.PrimitiveOp{
		Op:        scene.OpUnion,
		Primitive: primitives.NewSphere(vmath.V3(0, 0, -1.2), 0.7),
		Transform: primitives.DefaultTransform(),
	})
	if err != nil {
		return err
	}
	dumbbell, err := col.Get(dumbbellId)
	if err != nil {
		return err
	}
	if _, err := dumbbell.AppendOp(scene.OpUnion, primitives.NewSphere(vmath.V3(0, 0, 1.2), 0.7),
		primitives.DefaultTransform(), 0.6); err != nil {
		return err
	}
	if _, err := dumbbell.AppendOp(scene.OpNop, primitives.NewUberPrimitive(vmath.Vec4{}, vmath.Vec2{}),
		primitives.DefaultTransform(), 0); err != nil {
		return err
	}
	bar := primitives.NewUberPrimitive(vmath.V4(0.3, 0.3, 2.4, 0), vmath.V2(0.12, 0))
	if _, err := dumbbell.AppendOp(scene.OpUnion, bar,
		primitives.DefaultTransform(), 0); err != nil {
		return err
	}
	if err := col.MarkUpdated(dumbbellId); err != nil {
		return err
	}

	return nil
}
