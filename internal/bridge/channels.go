package bridge

import (
	"time"

	"sdf-engine/internal/camera"
	"sdf-engine/internal/scene"
	"sdf-engine/internal/vmath"
)

// FrameTimestamp is broadcast by the render loop after each submitted frame
// so the engine can pace itself against real presentation times.
type FrameTimestamp struct {
	FrameNum  uint64
	Timestamp time.Time
}

// Next returns the timestamp for the frame after t, stamped now.
func (t FrameTimestamp) Next() FrameTimestamp {
	return FrameTimestamp{FrameNum: t.FrameNum + 1, Timestamp: time.Now()}
}

// PickResult answers a pick request: the element under the requested screen
// coordinate, or Hit false for empty space.
type PickResult struct {
	ObjectId scene.ObjectId
	Hit      bool
}

// InputEvent is a frame's worth of raw input sampled by the render side
// (which owns the OS window) and forwarded to the engine, which owns all
// input interpretation.
type InputEvent struct {
	// MouseDelta is cursor movement in pixels since the last event.
	MouseDelta vmath.Vec2
	// Wheel is scroll movement, positive away from the user.
	Wheel float32
	// Orbiting is true while the camera-drag button is held.
	Orbiting bool
	// Pick requests a pick at PickAt (window coordinates).
	Pick   bool
	PickAt vmath.Vec2
	// Resized is true when the window surface size changed.
	Resized bool
	// Quit is sent once when the user asks to close the window.
	Quit bool
}

// Channels bundles every payload crossing between the engine and render
// sides. Each field has exactly one writing side, noted below; the transport
// is one-directional per payload.
//
// Shutdown: each side closes the queues it sends on when winding down; the
// other side treats RecvDisconnected as a clean shutdown signal. Cells carry
// no disconnection state, so loops must key their lifetime off a queue.
type Channels struct {
	// ObjectsDelta carries scene change sets, engine to render. FIFO; a
	// delta is applied exactly once.
	ObjectsDelta *Queue[*scene.ObjectsDelta]
	// Input carries sampled OS input, render to engine. FIFO.
	Input *Queue[InputEvent]

	// Camera is the latest camera pose, engine to render.
	Camera Cell[camera.Camera]
	// WindowResized flags that the surface size changed, engine to render.
	WindowResized Cell[bool]
	// ScaleFactor overrides the render scale, engine to render.
	ScaleFactor Cell[float32]
	// PickRequest is the latest pick coordinate, engine to render.
	PickRequest Cell[vmath.Vec2]
	// PickResult answers the latest pick, render to engine.
	PickResult Cell[PickResult]
	// FrameTimestamp is the latest presented frame, render to engine.
	FrameTimestamp Cell[FrameTimestamp]
}

// NewChannels returns a channel bundle whose queues buffer up to queueSize
// events.
func NewChannels(queueSize int) *Channels {
	return &Channels{
		ObjectsDelta: NewQueue[*scene.ObjectsDelta](queueSize),
		Input:        NewQueue[InputEvent](queueSize),
	}
}
