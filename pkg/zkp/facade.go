// Package zkp implements the predicate façade (C7): six Prove*/Verify*
// pairs that validate inputs (C3), invoke the right cryptographic engine
// (C4/C5/C6), and frame the result in the shared envelope (C1), binding
// it to a commitment: a deterministic C2 commitment for equality,
// membership and improvement, the Bulletproofs engine's trailing
// commitment bytes for range, threshold and consistency, per spec §4.7.
//
// Verify* functions never return an error: malformed envelopes, scheme
// mismatches, or engine rejection all collapse to false, per §7.
package zkp

import (
	"bytes"
	"encoding/binary"

	"github.com/Lumina-Group/libzkp/pkg/bulletproof"
	"github.com/Lumina-Group/libzkp/pkg/commitment"
	"github.com/Lumina-Group/libzkp/pkg/envelope"
	"github.com/Lumina-Group/libzkp/pkg/snark"
	"github.com/Lumina-Group/libzkp/pkg/srs"
	"github.com/Lumina-Group/libzkp/pkg/stark"
	"github.com/Lumina-Group/libzkp/pkg/validate"
	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

// ProveRange proves min <= value <= max without revealing value,
// backed by the Bulletproofs engine (C4).
func ProveRange(value, min, max uint64) ([]byte, error) {
	if err := validate.Range(value, min, max); err != nil {
		return nil, err
	}
	blob, err := bulletproof.ProveRange(value, min, max)
	if err != nil {
		return nil, err
	}
	proof, commit, err := bulletproof.SplitForEnvelope(blob)
	if err != nil {
		return nil, zkperr.New(zkperr.SerializationError, "frame range proof: %v", err)
	}
	return envelope.Encode(envelope.SchemeRange, proof, commit)
}

// VerifyRange checks a range envelope against the public [min, max].
func VerifyRange(data []byte, min, max uint64) bool {
	env, err := envelope.Decode(data)
	if err != nil || !env.Matches(envelope.SchemeRange) {
		return false
	}
	blob := bulletproof.RecombineEnvelope(env.Proof, env.Commitment)
	return bulletproof.VerifyRange(blob, min, max)
}

// ProveThreshold proves that the sum of values meets threshold without
// revealing the individual values or the sum, backed by Bulletproofs (C4).
func ProveThreshold(values []uint64, threshold uint64) ([]byte, error) {
	sum, err := validate.Threshold(values, threshold)
	if err != nil {
		return nil, err
	}
	blob, err := bulletproof.ProveThreshold(sum, threshold)
	if err != nil {
		return nil, err
	}
	proof, commit, err := bulletproof.SplitForEnvelope(blob)
	if err != nil {
		return nil, zkperr.New(zkperr.SerializationError, "frame threshold proof: %v", err)
	}
	return envelope.Encode(envelope.SchemeThreshold, proof, commit)
}

// VerifyThreshold checks a threshold envelope against the public t.
func VerifyThreshold(data []byte, threshold uint64) bool {
	env, err := envelope.Decode(data)
	if err != nil || !env.Matches(envelope.SchemeThreshold) {
		return false
	}
	blob := bulletproof.RecombineEnvelope(env.Proof, env.Commitment)
	return bulletproof.VerifyThreshold(blob, threshold)
}

// ProveConsistency proves a sequence is monotone nondecreasing without
// revealing the individual values, backed by Bulletproofs (C4). Sequence
// length is capped at bulletproof.MaxConsistencyLen.
func ProveConsistency(data []uint64) ([]byte, error) {
	if err := validate.Consistency(data); err != nil {
		return nil, err
	}
	blob, err := bulletproof.ProveConsistency(data)
	if err != nil {
		return nil, err
	}
	proof, commit, err := bulletproof.SplitForEnvelope(blob)
	if err != nil {
		return nil, zkperr.New(zkperr.SerializationError, "frame consistency proof: %v", err)
	}
	return envelope.Encode(envelope.SchemeConsistency, proof, commit)
}

// VerifyConsistency checks a consistency envelope.
func VerifyConsistency(data []byte) bool {
	env, err := envelope.Decode(data)
	if err != nil || !env.Matches(envelope.SchemeConsistency) {
		return false
	}
	blob := bulletproof.RecombineEnvelope(env.Proof, env.Commitment)
	return bulletproof.VerifyConsistency(blob)
}

// ProveEquality proves a == b without revealing either value, backed by
// the Groth16 engine (C5). The SRS is taken from srs.Default, generated
// or loaded on first use.
func ProveEquality(a, b uint64) ([]byte, error) {
	if err := validate.Equality(a, b); err != nil {
		return nil, err
	}
	pk, _, cs, err := srs.Default.Equality()
	if err != nil {
		return nil, err
	}
	commit := commitment.Value(a)
	proof, err := snark.ProveEquality(pk, cs, a, b, commit)
	if err != nil {
		return nil, err
	}
	return envelope.Encode(envelope.SchemeEquality, proof, commit[:])
}

// VerifyEquality recomputes the expected commitment from (a, b) and
// checks it against the envelope before handing the proof to Groth16.
func VerifyEquality(data []byte, a, b uint64) bool {
	if a != b {
		return false
	}
	env, err := envelope.Decode(data)
	if err != nil || !env.Matches(envelope.SchemeEquality) {
		return false
	}
	expected := commitment.Value(a)
	if !bytes.Equal(env.Commitment, expected[:]) {
		return false
	}
	_, vk, _, err := srs.Default.Equality()
	if err != nil {
		return false
	}
	return snark.VerifyEquality(vk, env.Proof, expected)
}

// membership payload framing: a length-prefixed set of u64 values
// precedes the raw Groth16 proof bytes (§3's Groth16 payload format),
// mirroring the original proof/set_membership backend so the envelope
// carries everything a verifier needs to reconstruct the padded public
// inputs without an out-of-band set.
func encodeMembershipPayload(set []uint64, snarkProof []byte) []byte {
	buf := make([]byte, 0, 4+8*len(set)+len(snarkProof))
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(set)))
	buf = append(buf, n[:]...)
	for _, s := range set {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], s)
		buf = append(buf, b[:]...)
	}
	buf = append(buf, snarkProof...)
	return buf
}

func decodeMembershipPayload(payload []byte) (set []uint64, snarkProof []byte, err error) {
	if len(payload) < 4 {
		return nil, nil, zkperr.New(zkperr.InvalidProofFormat, "membership payload too short")
	}
	n := int(binary.LittleEndian.Uint32(payload[0:4]))
	if n <= 0 || n > snark.MaxSetSize {
		return nil, nil, zkperr.New(zkperr.InvalidProofFormat, "membership payload set size %d out of range", n)
	}
	off := 4
	if off+8*n > len(payload) {
		return nil, nil, zkperr.New(zkperr.InvalidProofFormat, "membership payload truncated set")
	}
	set = make([]uint64, n)
	for i := 0; i < n; i++ {
		set[i] = binary.LittleEndian.Uint64(payload[off : off+8])
		off += 8
	}
	return set, payload[off:], nil
}

func sameSet(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[uint64]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// ProveMembership proves that value is a member of set without revealing
// which element it matches, backed by the Groth16 engine (C5): this
// mirrors the authoritative backend wiring of the system this library
// was distilled from, which routes set-membership through its SNARK
// engine rather than its Sigma-protocol engine. The Bulletproofs
// Sigma-protocol membership engine (pkg/bulletproof) implements the
// same predicate and is fully usable directly, but is not the façade's
// default wiring for scheme 4.
func ProveMembership(value uint64, set []uint64) ([]byte, error) {
	if err := validate.Membership(set); err != nil {
		return nil, err
	}
	pk, _, cs, err := srs.Default.Membership()
	if err != nil {
		return nil, err
	}
	commit := commitment.Value(value)
	snarkProof, err := snark.ProveMembership(pk, cs, value, set, commit)
	if err != nil {
		return nil, err
	}
	payload := encodeMembershipPayload(set, snarkProof)
	return envelope.Encode(envelope.SchemeMembership, payload, commit[:])
}

// VerifyMembership checks a membership envelope against the public set
// (order-insensitive, per §8 S4): the caller-supplied set must match the
// set embedded in the proof payload, and that embedded set is what is
// fed to Groth16 verification.
func VerifyMembership(data []byte, set []uint64) bool {
	if len(set) == 0 {
		return false
	}
	env, err := envelope.Decode(data)
	if err != nil || !env.Matches(envelope.SchemeMembership) {
		return false
	}
	embeddedSet, snarkProof, err := decodeMembershipPayload(env.Proof)
	if err != nil {
		return false
	}
	if !sameSet(set, embeddedSet) {
		return false
	}
	var commit [32]byte
	if len(env.Commitment) != 32 {
		return false
	}
	copy(commit[:], env.Commitment)
	_, vk, _, err := srs.Default.Membership()
	if err != nil {
		return false
	}
	return snark.VerifyMembership(vk, snarkProof, commit, embeddedSet)
}

// ProveImprovement proves new > old and that new is reachable from old
// by the committed improvement trace, backed by the STARK engine (C6).
func ProveImprovement(old, new uint64) ([]byte, error) {
	if err := validate.Improvement(old, new); err != nil {
		return nil, err
	}
	proof, err := stark.ProveImprovement(old, new)
	if err != nil {
		return nil, err
	}
	commit := commitment.Improvement(old, new)
	return envelope.Encode(envelope.SchemeImprovement, proof, commit)
}

// VerifyImprovement recovers new from the envelope's commitment given
// the verifier-known old, then checks the STARK trace.
func VerifyImprovement(data []byte, old uint64) bool {
	env, err := envelope.Decode(data)
	if err != nil || !env.Matches(envelope.SchemeImprovement) {
		return false
	}
	newVal, err := commitment.ValidateImprovement(env.Commitment, old)
	if err != nil {
		return false
	}
	return stark.VerifyImprovement(env.Proof, old, newVal)
}
