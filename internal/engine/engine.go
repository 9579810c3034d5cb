// Package engine runs the simulation side: it exclusively owns the object
// collection, the shared-primitive registry, the camera and input state, and
// ships change sets to the render side over the bridge.
package engine

import (
	"time"

	"go.uber.org/zap"

	"sdf-engine/internal/bridge"
	"sdf-engine/internal/camera"
	"sdf-engine/internal/debug"
	"sdf-engine/internal/engineconfig"
	"sdf-engine/internal/primitives"
	"sdf-engine/internal/scene"
)

// commandQueueSize bounds how many submitted edits can wait for the next
// tick.
const commandQueueSize = 256

// Engine owns all scene state and mutates it only on its own goroutine.
// Other goroutines interact through Submit and the bridge.
type Engine struct {
	collection *scene.ObjectCollection
	registry   *primitives.Registry
	camera     camera.Camera
	channels   *bridge.Channels
	commands   *bridge.Queue[EditCommand]
	prefs      engineconfig.Prefs
	stats      debug.FrameStats
	log        *zap.Logger

	// pending holds deltas the render side had no room for; folded and
	// retried next tick instead of dropped.
	pending *scene.ObjectsDelta

	selected scene.ObjectId
	quitting bool
}

// New returns an engine wired to channels. Call Run on a dedicated
// goroutine.
func New(prefs engineconfig.Prefs, channels *bridge.Channels, log *zap.Logger) *Engine {
	return &Engine{
		collection: scene.NewObjectCollection(log.Named("scene")),
		registry:   primitives.NewRegistry(log.Named("registry")),
		camera:     camera.Default(),
		channels:   channels,
		commands:   bridge.NewQueue[EditCommand](commandQueueSize),
		prefs:      prefs,
		log:        log,
	}
}

// Collection exposes the object collection for setup before Run and for
// tests. Engine-goroutine only once Run has started.
func (e *Engine) Collection() *scene.ObjectCollection {
	return e.collection
}

// Registry exposes the shared-primitive registry under the same ownership
// rule as Collection.
func (e *Engine) Registry() *primitives.Registry {
	return e.registry
}

// Stats returns the latest frame-pacing statistics.
func (e *Engine) Stats() *debug.FrameStats {
	return &e.stats
}

// Submit queues an edit for the next tick. Safe from any goroutine. Reports
// false when the engine is too far behind to accept more edits.
func (e *Engine) Submit(cmd EditCommand) bool {
	return e.commands.TrySend(cmd)
}

// Run ticks the engine until the render side disconnects or sends quit,
// then closes the engine's sending side of the bridge and returns.
func (e *Engine) Run() {
	defer e.channels.ObjectsDelta.Close()

	ticker := time.NewTicker(e.prefs.TickRate)
	defer ticker.Stop()

	e.channels.ScaleFactor.Put(e.prefs.UIScale)

	e.log.Info("engine thread running", zap.Duration("tick", e.prefs.TickRate))
	for range ticker.C {
		if !e.tick() {
			e.log.Info("engine thread shutting down")
			return
		}
	}
}

// tick runs one simulation step. Returns false when the engine should wind
// down.
func (e *Engine) tick() bool {
	if !e.drainInput() {
		return false
	}
	e.drainCommands()

	if result, ok := e.channels.PickResult.Take(); ok {
		e.handlePick(result)
	}
	if ts, ok := e.channels.FrameTimestamp.Take(); ok {
		e.stats.Record(ts)
	}

	e.shipDelta()
	e.channels.Camera.Put(e.camera)

	return !e.quitting
}

// drainInput applies all input events sampled by the render side since the
// last tick. Returns false if the render side disconnected.
func (e *Engine) drainInput() bool {
	for {
		event, status := e.channels.Input.TryRecv()
		switch status {
		case bridge.RecvOk:
			e.handleInput(event)
		case bridge.RecvEmpty:
			return true
		case bridge.RecvDisconnected:
			e.log.Info("input sender disconnected, winding down")
			return false
		}
	}
}

func (e *Engine) handleInput(event bridge.InputEvent) {
	if event.Quit {
		e.quitting = true
	}
	if event.Orbiting {
		e.camera.Orbit(
			-event.MouseDelta.X*e.prefs.OrbitSensitivity,
			-event.MouseDelta.Y*e.prefs.OrbitSensitivity,
		)
	}
	if event.Wheel != 0 {
		e.camera.Dolly(event.Wheel * e.prefs.DollySensitivity)
	}
	if event.Pick {
		e.channels.PickRequest.Put(event.PickAt)
	}
	if event.Resized {
		e.channels.WindowResized.Put(true)
	}
}

func (e *Engine) handlePick(result bridge.PickResult) {
	if !result.Hit {
		e.selected = scene.ObjectId(0)
		return
	}
	object, err := e.collection.Get(result.ObjectId)
	if err != nil {
		// Picked an object that was removed while the answer was in
		// flight.
		e.log.Debug("pick answer for missing object",
			zap.Uint32("id", uint32(result.ObjectId)))
		return
	}
	e.selected = result.ObjectId
	e.camera.SetTarget(object.AABB().Center)
	e.log.Info("object selected",
		zap.Uint32("id", uint32(result.ObjectId)), zap.String("name", object.Name()))
}

// Selected returns the currently selected object, or 0 for none.
func (e *Engine) Selected() scene.ObjectId {
	return e.selected
}

// drainCommands applies all submitted edits in arrival order.
func (e *Engine) drainCommands() {
	for {
		cmd, status := e.commands.TryRecv()
		if status != bridge.RecvOk {
			return
		}
		e.apply(cmd)
	}
}

// apply executes one edit. Stale-id errors are logged and dropped; every
// other error is a bug surfaced loudly in the log.
func (e *Engine) apply(cmd EditCommand) {
	var err error
	switch c := cmd.(type) {
	case CreateObject:
		_, err = e.collection.NewObject(c.Name, c.Origin, scene.PrimitiveOp{
			Op:        c.Base.Op,
			Primitive: c.Base.Primitive,
			Transform: c.Base.Transform,
			Blend:     c.Base.Blend,
		})
	case RemoveObject:
		err = e.collection.RemoveObject(c.Id)
		if err == nil {
			if e.selected == c.Id {
				e.selected = scene.ObjectId(0)
			}
			e.registry.CleanUnusedReferences()
		}
	case SetOrigin:
		err = e.withObject(c.Id, func(o *scene.Object) error {
			o.SetOrigin(c.Origin)
			return nil
		})
	case SetName:
		err = e.withObject(c.Id, func(o *scene.Object) error {
			o.SetName(c.Name)
			return nil
		})
	case PushOp:
		err = e.withObject(c.ObjectId, func(o *scene.Object) error {
			_, appendErr := o.AppendOp(c.Spec.Op, c.Spec.Primitive, c.Spec.Transform, c.Spec.Blend)
			return appendErr
		})
	case UpdateOp:
		err = e.withObject(c.ObjectId, func(o *scene.Object) error {
			return o.UpdateOp(c.OpId, c.Spec.Op, c.Spec.Primitive, c.Spec.Transform, c.Spec.Blend)
		})
	case RemoveOp:
		err = e.withObject(c.ObjectId, func(o *scene.Object) error {
			return o.RemoveOp(c.OpId)
		})
		if err == nil {
			e.registry.CleanUnusedReferences()
		}
	case ShiftOp:
		err = e.withObject(c.ObjectId, func(o *scene.Object) error {
			return o.ShiftOp(c.OpId, c.NewIndex)
		})
	case SetTentativeRotation:
		err = e.withOp(c.ObjectId, c.OpId, func(op *scene.PrimitiveOp) {
			op.Transform.SetTentativeRotation(c.Delta)
		})
	case CommitRotation:
		err = e.withOp(c.ObjectId, c.OpId, func(op *scene.PrimitiveOp) {
			op.Transform.CommitRotation()
		})
	case CancelRotation:
		err = e.withOp(c.ObjectId, c.OpId, func(op *scene.PrimitiveOp) {
			op.Transform.CancelRotation()
		})
	}
	if err != nil {
		e.log.Warn("edit command dropped", zap.Error(err))
	}
}

// withObject runs fn against a live object and records the update on
// success.
func (e *Engine) withObject(objectId scene.ObjectId, fn func(*scene.Object) error) error {
	object, err := e.collection.Get(objectId)
	if err != nil {
		return err
	}
	if err := fn(object); err != nil {
		return err
	}
	return e.collection.MarkUpdated(objectId)
}

func (e *Engine) withOp(objectId scene.ObjectId, opId scene.PrimitiveOpId, fn func(*scene.PrimitiveOp)) error {
	return e.withObject(objectId, func(o *scene.Object) error {
		op, err := o.Op(opId)
		if err != nil {
			return err
		}
		fn(op)
		return nil
	})
}

// shipDelta sends this tick's net change set. When the render side has no
// queue room the delta folds into a pending one and is retried, so changes
// are delayed, never lost.
func (e *Engine) shipDelta() {
	delta := e.collection.DrainDelta()
	if delta != nil {
		if e.pending == nil {
			e.pending = delta
		} else {
			e.pending.Merge(delta)
		}
	}
	if e.pending == nil {
		return
	}
	if e.channels.ObjectsDelta.TrySend(e.pending) {
		e.pending = nil
	} else if !e.quitting {
		e.log.Warn("render side not draining deltas, retrying next tick",
			zap.Int("entries", e.pending.Len()))
	}
}
