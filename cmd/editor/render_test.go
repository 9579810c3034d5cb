package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sdf-engine/internal/gpu"
	"sdf-engine/internal/primitives"
	"sdf-engine/internal/scene"
	"sdf-engine/internal/vmath"
)

func mirrorDelta(objectId scene.ObjectId, opCount int) *scene.ObjectsDelta {
	snap := scene.ObjectSnapshot{Id: objectId, Name: "obj"}
	for i := 0; i < opCount; i++ {
		snap.Ops = append(snap.Ops, scene.PrimitiveOp{
			Id:        scene.PrimitiveOpId(i + 1),
			Op:        scene.OpUnion,
			Primitive: primitives.NewSphere(vmath.Vec3{}, 1),
			Transform: primitives.DefaultTransform(),
		})
	}
	d := scene.NewObjectsDelta()
	d.RecordAdd(snap)
	return d
}

func TestRebuildStreamTracksMirror(t *testing.T) {
	r := &renderer{mirror: gpu.NewObjectBuffers(zap.NewNop()), log: zap.NewNop()}
	require.NoError(t, r.mirror.ApplyDelta(mirrorDelta(1, 2)))
	r.rebuildStream()

	assert.Len(t, r.words, maxOps*gpu.PacketWords)
	assert.Equal(t, 2, r.streamOps)
	assert.True(t, r.dirty)
}

func TestFailedFlattenKeepsLastGoodStreamAndCount(t *testing.T) {
	r := &renderer{mirror: gpu.NewObjectBuffers(zap.NewNop()), log: zap.NewNop()}
	require.NoError(t, r.mirror.ApplyDelta(mirrorDelta(1, 2)))
	r.rebuildStream()
	r.dirty = false

	// Grow the mirror past the uniform capacity: the reflatten fails and
	// both the stream and its op count must stay at the last good state, or
	// the shader would read stale packets with a larger count.
	require.NoError(t, r.mirror.ApplyDelta(mirrorDelta(2, maxOps)))
	r.rebuildStream()

	assert.Equal(t, 2, r.streamOps)
	assert.Len(t, r.words, maxOps*gpu.PacketWords)
	assert.False(t, r.dirty)
}

func TestPacketFloatsConvertsOpCodesByValue(t *testing.T) {
	op := scene.PrimitiveOp{
		Op:        scene.OpSubtraction,
		Primitive: primitives.NewSphere(vmath.Vec3{}, 1),
		Transform: primitives.DefaultTransform(),
	}
	packet := gpu.CreatePrimitiveOpPacket(op, vmath.Vec3{})
	floats := packetFloats(packet[:])

	// Codes 1..3 are denormal bit patterns; they travel as whole floats.
	assert.Equal(t, float32(3), floats[18])
	assert.Equal(t, float32(1), floats[0]) // identity rotation row 0

	var invalid gpu.Packet
	invalid[18] = gpu.OpCodeInvalid
	assert.Equal(t, float32(-1), packetFloats(invalid[:])[18])
}

func TestGridFadesAndCoarsensWithDistance(t *testing.T) {
	assert.Equal(t, float32(1), gridFade(gridFadeNear))
	assert.Equal(t, float32(0), gridFade(gridFadeFar+10))
	assert.Greater(t, gridFade(20), gridFade(60))

	assert.Equal(t, 1, gridStep(15))
	assert.Equal(t, 5, gridStep(gridCoarsenAt+1))
}
