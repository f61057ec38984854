// Package commitment implements the deterministic, hash-based commitment
// helpers (C2) used to bind an envelope to the public predicate inputs.
// These commitments are binding but not hiding beyond what the
// cryptographic payload itself provides; zero-knowledge comes from the
// engine, not from this package.
package commitment

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

// Value returns SHA256(LE_8(v)), the standard single-integer commitment
// used by the equality and membership predicates. Range and threshold
// envelopes carry the Bulletproofs engine's Pedersen point instead.
func Value(v uint64) [32]byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return sha256.Sum256(buf[:])
}

// Values returns SHA-256 over the concatenation of the little-endian
// encodings of vs, used where a commitment binds an ordered sequence.
func Values(vs []uint64) [32]byte {
	buf := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(buf[i*8:(i+1)*8], v)
	}
	return sha256.Sum256(buf)
}

// Improvement returns LE(new-old) ‖ LE(new), the 16-byte improvement
// commitment of §4.2. Only new is strictly necessary to recover diff at
// verification time, but both are carried to keep the wire format stable
// under the "persist only new" implementation freedom note in §3.
func Improvement(old, new uint64) []byte {
	diff := new - old // precondition: new > old, enforced by validate.Improvement
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[0:8], diff)
	binary.LittleEndian.PutUint64(buf[8:16], new)
	return buf
}

// ValidateImprovement is the inverse of Improvement: given the 16-byte
// commitment and the verifier-known old value, it recomputes new and
// rejects if the embedded diff is inconsistent or zero. Overflow in
// old+diff fails the check rather than wrapping.
func ValidateImprovement(commitment []byte, old uint64) (uint64, error) {
	if len(commitment) != 16 {
		return 0, zkperr.New(zkperr.InvalidProofFormat, "improvement commitment must be 16 bytes, got %d", len(commitment))
	}
	diff := binary.LittleEndian.Uint64(commitment[0:8])
	newVal := binary.LittleEndian.Uint64(commitment[8:16])
	if diff == 0 {
		return 0, zkperr.New(zkperr.ValidationError, "improvement diff must be nonzero")
	}
	sum := old + diff
	if sum < old { // overflow
		return 0, zkperr.New(zkperr.IntegerOverflow, "old+diff overflows u64")
	}
	if sum != newVal {
		return 0, zkperr.New(zkperr.ValidationError, "new (%d) does not equal old+diff (%d)", newVal, sum)
	}
	return newVal, nil
}
