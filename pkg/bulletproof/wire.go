package bulletproof

import (
	"bytes"
	"encoding/binary"

	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

// commitMarker is the literal ASCII separator between the scheme-specific
// region of a Bulletproofs payload and its trailing commitment bytes (§3).
const commitMarker = "COMMIT:"

// joinWithMarker appends the "COMMIT:" marker and commitment bytes to a
// scheme-specific region, producing the full engine-output blob.
func joinWithMarker(region, commitBytes []byte) []byte {
	out := make([]byte, 0, len(region)+len(commitMarker)+len(commitBytes))
	out = append(out, region...)
	out = append(out, []byte(commitMarker)...)
	out = append(out, commitBytes...)
	return out
}

// SplitCommitMarker locates the LAST occurrence of the "COMMIT:" marker
// (scheme regions never themselves contain the marker string) and splits
// a raw Bulletproofs engine blob into its scheme-specific region and
// trailing commitment bytes, as used by the predicate façade (§4.7).
func SplitCommitMarker(blob []byte) (region, commitBytes []byte, err error) {
	idx := bytes.LastIndex(blob, []byte(commitMarker))
	if idx < 0 {
		return nil, nil, zkperr.New(zkperr.InvalidProofFormat, "bulletproof payload missing COMMIT: marker")
	}
	region = blob[:idx]
	commitBytes = blob[idx+len(commitMarker):]
	return region, commitBytes, nil
}

// SplitForEnvelope splits a raw engine blob into the two byte slices the
// predicate façade frames into an envelope (§4.7 step 3): proof carries
// everything up to and including the "COMMIT:" marker, commitment
// carries the trailing compressed point (or, for consistency, the
// trailing checksum). RecombineEnvelope is its exact inverse.
func SplitForEnvelope(blob []byte) (proof, commitment []byte, err error) {
	idx := bytes.LastIndex(blob, []byte(commitMarker))
	if idx < 0 {
		return nil, nil, zkperr.New(zkperr.InvalidProofFormat, "bulletproof payload missing COMMIT: marker")
	}
	split := idx + len(commitMarker)
	return blob[:split], blob[split:], nil
}

// RecombineEnvelope reverses SplitForEnvelope: concatenating the
// envelope's proof and commitment fields reproduces the exact blob the
// engine verifiers expect.
func RecombineEnvelope(proof, commitment []byte) []byte {
	out := make([]byte, 0, len(proof)+len(commitment))
	out = append(out, proof...)
	out = append(out, commitment...)
	return out
}

func putU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func getU32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
