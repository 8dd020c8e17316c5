package movement

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Hash returns a fingerprint of the simulated state of the body. Two bodies with the same hash are in
// the same state, bit for bit. GroundDistance is diagnostic and not part of the hash.
func (b *Body) Hash() uint64 {
	var buf [9*8 + 4]byte
	for i, f := range [...]float64{
		b.Position[0], b.Position[1], b.Position[2],
		b.VerticalVelocity,
		b.Inertia[0], b.Inertia[1],
		b.TimeInAir,
		b.JumpCooldown,
		b.JetpackTimer,
	} {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	buf[72] = byte(b.Phase)
	buf[73] = boolByte(b.Grounded)
	buf[74] = boolByte(b.HasInertia)
	buf[75] = boolByte(b.JumpHeldLast)
	return xxh3.Hash(buf[:])
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
