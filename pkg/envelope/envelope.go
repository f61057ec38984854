// Package envelope implements the uniform on-wire proof envelope (C1):
// a tagged, length-prefixed frame carrying a proof payload and a
// commitment, shared by every predicate backend.
package envelope

import (
	"encoding/binary"

	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

// Scheme tags the predicate a proof belongs to.
type Scheme uint8

const (
	SchemeRange       Scheme = 1
	SchemeEquality    Scheme = 2
	SchemeThreshold   Scheme = 3
	SchemeMembership  Scheme = 4
	SchemeImprovement Scheme = 5
	SchemeConsistency Scheme = 6
	SchemeTemporal    Scheme = 7
)

const (
	// Version is the only envelope wire version this library produces
	// or accepts.
	Version uint8 = 1

	headerLen = 10 // version(1) + scheme(1) + proof_len(4) + commitment_len(4)

	// MaxProofBytes bounds the proof payload (§3).
	MaxProofBytes = 900 * 1024
	// MaxCommitmentBytes bounds the commitment payload (§3).
	MaxCommitmentBytes = 256
	// MaxEnvelopeBytes bounds the whole encoded envelope (§3).
	MaxEnvelopeBytes = 1024 * 1024
)

// Envelope is the decoded form of an on-wire proof frame.
type Envelope struct {
	Version    uint8
	Scheme     Scheme
	Proof      []byte
	Commitment []byte
}

// Encode frames a proof and commitment per the §3/§4.1 wire format.
// Oversize payloads are refused with a typed error rather than silently
// truncated.
func Encode(scheme Scheme, proof, commitment []byte) ([]byte, error) {
	if len(proof) > MaxProofBytes {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "proof payload %d bytes exceeds %d", len(proof), MaxProofBytes)
	}
	if len(commitment) > MaxCommitmentBytes {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "commitment %d bytes exceeds %d", len(commitment), MaxCommitmentBytes)
	}
	total := headerLen + len(proof) + len(commitment)
	if total > MaxEnvelopeBytes {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "envelope %d bytes exceeds %d", total, MaxEnvelopeBytes)
	}

	out := make([]byte, headerLen, total)
	out[0] = Version
	out[1] = uint8(scheme)
	binary.LittleEndian.PutUint32(out[2:6], uint32(len(proof)))
	binary.LittleEndian.PutUint32(out[6:10], uint32(len(commitment)))
	out = append(out, proof...)
	out = append(out, commitment...)
	return out, nil
}

// Decode parses and validates an on-wire envelope. It rejects truncated,
// overlong or internally inconsistent inputs without panicking, since a
// verifier must never raise on malformed input (§7).
func Decode(data []byte) (*Envelope, error) {
	if len(data) < headerLen {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "envelope shorter than header (%d bytes)", len(data))
	}
	if len(data) > MaxEnvelopeBytes {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "envelope %d bytes exceeds %d", len(data), MaxEnvelopeBytes)
	}

	proofLen := binary.LittleEndian.Uint32(data[2:6])
	commitLen := binary.LittleEndian.Uint32(data[6:10])

	if proofLen > MaxProofBytes {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "declared proof_len %d exceeds %d", proofLen, MaxProofBytes)
	}
	if commitLen > MaxCommitmentBytes {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "declared commitment_len %d exceeds %d", commitLen, MaxCommitmentBytes)
	}

	expected := headerLen + uint64(proofLen) + uint64(commitLen)
	if uint64(len(data)) != expected {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "envelope length %d does not match declared lengths (want %d)", len(data), expected)
	}

	env := &Envelope{
		Version: data[0],
		Scheme:  Scheme(data[1]),
	}
	env.Proof = append([]byte(nil), data[headerLen:headerLen+proofLen]...)
	env.Commitment = append([]byte(nil), data[headerLen+proofLen:]...)
	return env, nil
}

// Matches reports whether the envelope declares exactly the expected
// version and scheme, the check the façade runs before trusting payload
// bytes to an engine (§4.7).
func (e *Envelope) Matches(scheme Scheme) bool {
	return e != nil && e.Version == Version && e.Scheme == scheme
}
