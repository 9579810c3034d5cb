package gpu

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"sdf-engine/internal/primitives"
	"sdf-engine/internal/scene"
	"sdf-engine/internal/vmath"
)

func TestSpherePacketBitExact(t *testing.T) {
	op := scene.PrimitiveOp{
		Op:        scene.OpUnion,
		Primitive: primitives.NewSphere(vmath.V3(1, 2, 3), 0.5),
		Transform: primitives.DefaultTransform(),
	}
	p := CreatePrimitiveOpPacket(op, vmath.Vec3{})

	one := math.Float32bits(1)
	// Identity rotation, row-major.
	assert.Equal(t, one, p[0])
	assert.Equal(t, one, p[4])
	assert.Equal(t, one, p[8])
	for _, i := range []int{1, 2, 3, 5, 6, 7} {
		assert.Zero(t, p[i], "rotation word %d", i)
	}

	assert.Equal(t, math.Float32bits(1), p[9])
	assert.Equal(t, math.Float32bits(2), p[10])
	assert.Equal(t, math.Float32bits(3), p[11])

	// A sphere is a zero-size box rounded by its radius.
	for i := 12; i <= 15; i++ {
		assert.Zero(t, p[i], "dimension word %d", i)
	}
	assert.Equal(t, math.Float32bits(0.5), p[16])
	assert.Zero(t, p[17])

	assert.Equal(t, OpCodeUnion, p[18])
	assert.Zero(t, p[19])
}

func TestPacketCenterComposesOriginTransformAndLocal(t *testing.T) {
	op := scene.PrimitiveOp{
		Op:        scene.OpUnion,
		Primitive: primitives.NewSphere(vmath.V3(1, 2, 3), 1),
		Transform: primitives.NewTransform(vmath.V3(0, 5, 0), vmath.QuatIdentity()),
	}
	p := CreatePrimitiveOpPacket(op, vmath.V3(10, 0, 0))

	assert.Equal(t, math.Float32bits(11), p[9])
	assert.Equal(t, math.Float32bits(7), p[10])
	assert.Equal(t, math.Float32bits(3), p[11])
}

func TestPacketRotationIsInverse(t *testing.T) {
	rot := vmath.MustAxisAngle(vmath.V3(0, 1, 0), math32.Pi/3)
	op := scene.PrimitiveOp{
		Op:        scene.OpUnion,
		Primitive: primitives.NewSphere(vmath.Vec3{}, 1),
		Transform: primitives.NewTransform(vmath.Vec3{}, rot),
	}
	p := CreatePrimitiveOpPacket(op, vmath.Vec3{})

	want := rot.Mat3().Transpose()
	for i, e := range want {
		assert.Equal(t, math.Float32bits(e), p[i], "rotation word %d", i)
	}
}

func TestPacketIncludesTentativeRotation(t *testing.T) {
	half := vmath.MustAxisAngle(vmath.V3(0, 1, 0), math32.Pi/4)
	tr := primitives.NewTransform(vmath.Vec3{}, half)
	tr.SetTentativeRotation(half)
	op := scene.PrimitiveOp{
		Op:        scene.OpUnion,
		Primitive: primitives.NewSphere(vmath.Vec3{}, 1),
		Transform: tr,
	}
	p := CreatePrimitiveOpPacket(op, vmath.Vec3{})

	total := half.Mul(half).Normalize().Mat3().Transpose()
	for i, e := range total {
		assert.InDelta(t, e, math.Float32frombits(p[i]), 1e-6, "rotation word %d", i)
	}
}

func TestCubePacketProps(t *testing.T) {
	op := scene.PrimitiveOp{
		Op:        scene.OpIntersection,
		Primitive: primitives.NewCube(vmath.Vec3{}, vmath.V3(2, 4, 6)),
		Transform: primitives.DefaultTransform(),
		Blend:     0.25,
	}
	p := CreatePrimitiveOpPacket(op, vmath.Vec3{})

	assert.Equal(t, math.Float32bits(2), p[12])
	assert.Equal(t, math.Float32bits(4), p[13])
	assert.Equal(t, math.Float32bits(6), p[14])
	assert.Zero(t, p[15])
	assert.Zero(t, p[16])
	assert.Zero(t, p[17])
	assert.Equal(t, OpCodeIntersection, p[18])
	assert.Equal(t, math.Float32bits(0.25), p[19])
}

func TestOpCodes(t *testing.T) {
	assert.Equal(t, OpCodeNop, OpCode(scene.OpNop))
	assert.Equal(t, OpCodeUnion, OpCode(scene.OpUnion))
	assert.Equal(t, OpCodeIntersection, OpCode(scene.OpIntersection))
	assert.Equal(t, OpCodeSubtraction, OpCode(scene.OpSubtraction))
	assert.Equal(t, OpCodeInvalid, OpCode(scene.Operation(99)))
}

func TestNopPacketIsAllZero(t *testing.T) {
	p := NopPrimitiveOpPacket()
	for i, w := range p {
		assert.Zero(t, w, "word %d", i)
	}
	assert.Equal(t, OpCodeNop, p[18])
}

func TestBytesLittleEndian(t *testing.T) {
	var p Packet
	p[0] = math.Float32bits(1) // 0x3F800000
	raw := p.Bytes(nil)
	assert.Len(t, raw, PacketWords*4)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, raw[:4])
}
