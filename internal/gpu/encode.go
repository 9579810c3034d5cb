// Package gpu turns scene data into the fixed-width packet stream consumed
// by the ray-marching shader. Every encoding here is bit-exact against the
// shader-side decoder; change them together or not at all.
package gpu

import (
	"encoding/binary"
	"math"

	"sdf-engine/internal/primitives"
	"sdf-engine/internal/scene"
	"sdf-engine/internal/vmath"
)

// PacketWords is the number of 32-bit words in one primitive op packet:
// words 0-8   row-major inverse rotation matrix
// words 9-11  center translated into world space
// words 12-17 uber-primitive property words (dimensions vec4, corner vec2)
// word  18    operation code
// word  19    blend factor
const PacketWords = 20

// Packet is one encoded primitive op. Floats are stored as their raw
// IEEE-754 bit patterns, never rounded or truncated.
type Packet [PacketWords]uint32

// Operation codes understood by the shader decoder. OpCodeInvalid is a
// sentinel the shader must fail loudly on instead of silently skipping.
const (
	OpCodeNop          uint32 = 0x00000000
	OpCodeUnion        uint32 = 0x00000001 // logical OR
	OpCodeIntersection uint32 = 0x00000002 // logical AND
	OpCodeSubtraction  uint32 = 0x00000003
	OpCodeInvalid      uint32 = 0xFFFFFFFF
)

// OpCode maps an operation to its wire code. Unknown values map to
// OpCodeInvalid so a corrupted operation shows up as a shader-side failure
// rather than silently wrong geometry.
func OpCode(op scene.Operation) uint32 {
	switch op {
	case scene.OpNop:
		return OpCodeNop
	case scene.OpUnion:
		return OpCodeUnion
	case scene.OpIntersection:
		return OpCodeIntersection
	case scene.OpSubtraction:
		return OpCodeSubtraction
	default:
		return OpCodeInvalid
	}
}

// CreatePrimitiveOpPacket encodes one primitive op of an object whose origin
// is objectOrigin. Pure function of its inputs.
func CreatePrimitiveOpPacket(op scene.PrimitiveOp, objectOrigin vmath.Vec3) Packet {
	var p Packet

	// The shader rotates march points into primitive space, so it wants the
	// inverse of the op rotation. Rotations are orthonormal: transpose.
	rot := op.Transform.TotalRotation().Mat3().Transpose()
	for i, e := range rot {
		p[i] = math.Float32bits(e)
	}

	center := objectOrigin.
		Add(op.Transform.Center).
		Add(primitives.LocalCenter(op.Primitive))
	p[9] = math.Float32bits(center.X)
	p[10] = math.Float32bits(center.Y)
	p[11] = math.Float32bits(center.Z)

	dims, corner := primitives.UberProps(op.Primitive)
	p[12] = math.Float32bits(dims.X)
	p[13] = math.Float32bits(dims.Y)
	p[14] = math.Float32bits(dims.Z)
	p[15] = math.Float32bits(dims.W)
	p[16] = math.Float32bits(corner.X)
	p[17] = math.Float32bits(corner.Y)

	p[18] = OpCode(op.Op)
	p[19] = math.Float32bits(op.Blend)
	return p
}

// NopPrimitiveOpPacket returns the reserved all-zero packet that pads unused
// buffer slots. Decodes to operation NOP and contributes no geometry.
func NopPrimitiveOpPacket() Packet {
	return Packet{}
}

// Bytes appends the packet's little-endian byte representation, the layout
// the GPU buffer holds.
func (p Packet) Bytes(dst []byte) []byte {
	for _, w := range p {
		dst = binary.LittleEndian.AppendUint32(dst, w)
	}
	return dst
}
