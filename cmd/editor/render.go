package main

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sdf-engine/internal/bridge"
	"sdf-engine/internal/camera"
	"sdf-engine/internal/engineconfig"
	"sdf-engine/internal/gpu"
	"sdf-engine/internal/vmath"
)

// shaderLocs caches the raymarch shader's uniform locations.
type shaderLocs struct {
	camPos     int32
	camRight   int32
	camUp      int32
	camForward int32
	tanHalfFov int32
	aspect     int32
	opCount    int32
	ops        int32
}

// renderer owns everything on the window side of the bridge: the encoded
// scene mirror, the raymarch shader and the latest camera pose.
type renderer struct {
	channels *bridge.Channels
	prefs    engineconfig.Prefs
	log      *zap.Logger

	mirror *gpu.ObjectBuffers
	shader rl.Shader
	locs   shaderLocs

	// words is the flattened uniform stream, re-uploaded only when a delta
	// changed the mirror. streamOps is the op count of that stream; it must
	// move in lockstep with words, never with the live mirror, or a failed
	// reflatten would let the shader read past the last good stream.
	words     []float32
	streamOps int
	dirty     bool

	cam     camera.Camera
	uiScale float32
	frame   bridge.FrameTimestamp
}

// newRenderer loads the raymarch shader; must run after the window (and its
// GL context) exists.
func newRenderer(channels *bridge.Channels, prefs engineconfig.Prefs, log *zap.Logger) (*renderer, error) {
	shader := rl.LoadShaderFromMemory(raymarchVS, raymarchFS)
	if !rl.IsShaderValid(shader) {
		return nil, fmt.Errorf("raymarch shader failed to compile")
	}
	r := &renderer{
		channels: channels,
		prefs:    prefs,
		log:      log,
		mirror:   gpu.NewObjectBuffers(log.Named("mirror")),
		shader:   shader,
		locs: shaderLocs{
			camPos:     rl.GetShaderLocation(shader, "camPos"),
			camRight:   rl.GetShaderLocation(shader, "camRight"),
			camUp:      rl.GetShaderLocation(shader, "camUp"),
			camForward: rl.GetShaderLocation(shader, "camForward"),
			tanHalfFov: rl.GetShaderLocation(shader, "tanHalfFov"),
			aspect:     rl.GetShaderLocation(shader, "aspect"),
			opCount:    rl.GetShaderLocation(shader, "opCount"),
			ops:        rl.GetShaderLocation(shader, "ops"),
		},
		cam:     camera.Default(),
		uiScale: 1,
	}
	r.rebuildStream()
	return r, nil
}

func (r *renderer) close() {
	rl.UnloadShader(r.shader)
}

// update runs the per-frame bridge traffic: sampled input out, deltas and
// camera in, pick requests answered. Returns false once the engine has
// disconnected.
func (r *renderer) update() bool {
	if event, ok := sampleInput(); ok {
		if !r.channels.Input.TrySend(event) {
			// Engine stalled; dropping raw input is harmless.
			r.log.Debug("input queue full, dropping event")
		}
	}

	if !r.drainDeltas() {
		return false
	}

	if cam, ok := r.channels.Camera.Take(); ok {
		r.cam = cam
	}
	if scale, ok := r.channels.ScaleFactor.Take(); ok && scale > 0 {
		r.uiScale = scale
	}
	// Resize needs no bookkeeping here; the aspect is recomputed every frame.
	r.channels.WindowResized.Take()

	if at, ok := r.channels.PickRequest.Take(); ok {
		origin, dir := r.pickRay(at)
		objectId, hit := r.mirror.PickAABB(origin, dir)
		r.channels.PickResult.Put(bridge.PickResult{ObjectId: objectId, Hit: hit})
	}
	return true
}

// drainDeltas applies every shipped change set. Reports false on a clean
// engine disconnect.
func (r *renderer) drainDeltas() bool {
	for {
		delta, status := r.channels.ObjectsDelta.TryRecv()
		switch status {
		case bridge.RecvOk:
			if err := r.mirror.ApplyDelta(delta); err != nil {
				r.log.Error("applying scene delta", zap.Error(err))
				continue
			}
			r.rebuildStream()
		case bridge.RecvEmpty:
			return true
		case bridge.RecvDisconnected:
			return false
		}
	}
}

// rebuildStream reflattens the mirror into the uniform float stream. On
// overflow the previous stream is kept on screen and the error is logged
// every rebuild until ops are removed.
func (r *renderer) rebuildStream() {
	words, err := r.mirror.Flatten(maxOps)
	if err != nil {
		r.log.Error("scene exceeds op capacity", zap.Error(err))
		return
	}
	r.words = packetFloats(words)
	r.streamOps = r.mirror.OpCount()
	r.dirty = true
}

// packetFloats reinterprets packet words as the float stream the shader
// reads. The op-code word is converted by value, not by bit pattern: codes
// 1..3 are denormal float bit patterns that drivers may flush to zero in
// uniforms, so they travel as whole floats and the invalid code maps to -1.
func packetFloats(words []uint32) []float32 {
	floats := make([]float32, len(words))
	for i, w := range words {
		if i%gpu.PacketWords == 18 {
			if w == gpu.OpCodeInvalid {
				floats[i] = -1
			} else {
				floats[i] = float32(w)
			}
			continue
		}
		floats[i] = math.Float32frombits(w)
	}
	return floats
}

func (r *renderer) draw() {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if h == 0 {
		return
	}

	forward, right, up := r.camBasis()
	tanHalfFov := math32.Tan(r.cam.FovY * math32.Pi / 360)

	rl.SetShaderValueV(r.shader, r.locs.camPos, vec3Floats(r.cam.Position), rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(r.shader, r.locs.camRight, vec3Floats(right), rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(r.shader, r.locs.camUp, vec3Floats(up), rl.ShaderUniformVec3, 1)
	rl.SetShaderValueV(r.shader, r.locs.camForward, vec3Floats(forward), rl.ShaderUniformVec3, 1)
	rl.SetShaderValue(r.shader, r.locs.tanHalfFov, []float32{tanHalfFov}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.locs.aspect, []float32{w / h}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.shader, r.locs.opCount, []float32{float32(r.streamOps)}, rl.ShaderUniformFloat)
	if r.dirty && len(r.words) > 0 {
		rl.SetShaderValueV(r.shader, r.locs.ops, r.words, rl.ShaderUniformFloat, int32(len(r.words)))
		r.dirty = false
	}

	rl.BeginShaderMode(r.shader)
	rl.DrawRectangle(0, 0, int32(w), int32(h), rl.White)
	rl.EndShaderMode()

	if r.prefs.GridVisible {
		rl.BeginMode3D(r.cam3d())
		r.drawGrid()
		rl.EndMode3D()
	}

	r.drawOverlay()
}

func (r *renderer) drawOverlay() {
	if r.prefs.ShowFPS {
		rl.DrawFPS(10, 10)
	}
	if r.prefs.ShowFrameStats {
		text := fmt.Sprintf("objects %d  ops %d/%d", r.mirror.ObjectCount(), r.mirror.OpCount(), maxOps)
		rl.DrawText(text, 10, 34, int32(20*r.uiScale), rl.RayWhite)
	}
}

// publishFrame stamps the presented frame for the engine's pacing stats.
func (r *renderer) publishFrame() {
	r.frame = r.frame.Next()
	r.channels.FrameTimestamp.Put(r.frame)
}

// camBasis returns the camera's orthonormal view basis.
func (r *renderer) camBasis() (forward, right, up vmath.Vec3) {
	forward = r.cam.Forward()
	right = forward.Cross(r.cam.Up).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// pickRay turns a window coordinate into a world-space ray through the
// camera, matching the shader's ray construction.
func (r *renderer) pickRay(at vmath.Vec2) (origin, dir vmath.Vec3) {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	ndcX := at.X/w*2 - 1
	ndcY := 1 - at.Y/h*2

	forward, right, up := r.camBasis()
	tanHalfFov := math32.Tan(r.cam.FovY * math32.Pi / 360)
	dir = forward.
		Add(right.Scale(ndcX * (w / h) * tanHalfFov)).
		Add(up.Scale(ndcY * tanHalfFov)).
		Normalize()
	return r.cam.Position, dir
}

// cam3d adapts the bridge camera pose for raylib's 3D mode, used only for
// the grid and axis overlay.
func (r *renderer) cam3d() rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(r.cam.Position.X, r.cam.Position.Y, r.cam.Position.Z),
		Target:     rl.NewVector3(r.cam.Target.X, r.cam.Target.Y, r.cam.Target.Z),
		Up:         rl.NewVector3(r.cam.Up.X, r.cam.Up.Y, r.cam.Up.Z),
		Fovy:       r.cam.FovY,
		Projection: rl.CameraPerspective,
	}
}

func vec3Floats(v vmath.Vec3) []float32 {
	return []float32{v.X, v.Y, v.Z}
}

// sampleInput gathers this frame's raw input. Reports false when nothing
// happened, so idle frames send no event.
func sampleInput() (bridge.InputEvent, bool) {
	var event bridge.InputEvent
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		event.Orbiting = true
		event.MouseDelta = vmath.V2(delta.X, delta.Y)
	}
	event.Wheel = rl.GetMouseWheelMove()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		at := rl.GetMousePosition()
		event.Pick = true
		event.PickAt = vmath.V2(at.X, at.Y)
	}
	event.Resized = rl.IsWindowResized()

	happened := event.Orbiting || event.Wheel != 0 || event.Pick || event.Resized
	return event, happened
}
