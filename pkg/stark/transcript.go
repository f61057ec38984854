package stark

import (
	"encoding/binary"
	"math/big"

	"lukechampine.com/blake3"
)

// transcript is a Blake3-based Fiat-Shamir transcript, following the
// state-chaining pattern of the sha256 Transcript this package's
// reference precompile code uses, substituted to Blake3 per spec §4.6.
type transcript struct {
	state [32]byte
}

func newTranscript(label string) *transcript {
	return &transcript{state: blake3.Sum256([]byte("libzkp_stark_" + label))}
}

func (t *transcript) append(data []byte) {
	buf := make([]byte, 0, 32+len(data))
	buf = append(buf, t.state[:]...)
	buf = append(buf, data...)
	t.state = blake3.Sum256(buf)
}

func (t *transcript) appendUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	t.append(b[:])
}

func (t *transcript) appendElement(v *big.Int) {
	e := Encode(v)
	t.append(e[:])
}

// challengeElement draws a nonzero field element from the transcript.
func (t *transcript) challengeElement() *big.Int {
	for {
		t.state = blake3.Sum256(append([]byte{0x02}, t.state[:]...))
		v := new(big.Int).SetBytes(t.state[:])
		v.Mod(v, Modulus)
		if v.Sign() != 0 {
			return v
		}
	}
}

// challengeIndex draws a pseudorandom index in [0, n).
func (t *transcript) challengeIndex(n int) int {
	t.state = blake3.Sum256(append([]byte{0x03}, t.state[:]...))
	v := binary.BigEndian.Uint64(t.state[:8])
	return int(v % uint64(n))
}
