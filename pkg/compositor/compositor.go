// Package compositor implements the compositor (C8): bundling many proof
// envelopes and key/value metadata into one composite envelope carrying an
// integrity digest over the inner envelopes alone, per spec §4.8 and §3.
package compositor

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

// Wire limits from §3.
const (
	MaxProofs      = 1000
	MaxMetadata    = 1000
	MaxKeyBytes    = 1024
	MaxValueBytes  = 64 * 1024
	digestLen      = 32
	magicLen       = 4
	headerCountLen = 4
)

var magic = []byte("COMP")

// Composite is the decoded form of a composed bundle.
type Composite struct {
	Envelopes [][]byte
	Metadata  map[string][]byte
}

// digest computes SHA-256 over "COMPOSITE_PROOF:" || n_proofs(u32 LE) ||
// each envelope's raw bytes, in order. Metadata is deliberately excluded
// so it can be edited without invalidating integrity (§3).
func digest(envelopes [][]byte) [digestLen]byte {
	h := sha256.New()
	h.Write([]byte("COMPOSITE_PROOF:"))
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(envelopes)))
	h.Write(n[:])
	for _, e := range envelopes {
		h.Write(e)
	}
	var out [digestLen]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Compose bundles envelopes (and optional metadata) into one composite
// envelope. An empty envelope list is refused at construction (§4.8).
func Compose(envelopes [][]byte, metadata map[string][]byte) ([]byte, error) {
	if len(envelopes) == 0 {
		return nil, zkperr.New(zkperr.InvalidInput, "composite proof requires at least one envelope")
	}
	if len(envelopes) > MaxProofs {
		return nil, zkperr.New(zkperr.InvalidInput, "composite proof has %d envelopes, exceeds %d", len(envelopes), MaxProofs)
	}
	if len(metadata) > MaxMetadata {
		return nil, zkperr.New(zkperr.InvalidInput, "composite proof has %d metadata entries, exceeds %d", len(metadata), MaxMetadata)
	}
	for k, v := range metadata {
		if len(k) > MaxKeyBytes {
			return nil, zkperr.New(zkperr.InvalidInput, "metadata key %q exceeds %d bytes", k, MaxKeyBytes)
		}
		if len(v) > MaxValueBytes {
			return nil, zkperr.New(zkperr.InvalidInput, "metadata value for key %q exceeds %d bytes", k, MaxValueBytes)
		}
	}

	var buf bytes.Buffer
	buf.Write(magic)
	writeU32(&buf, uint32(len(envelopes)))
	writeU32(&buf, uint32(len(metadata)))
	for _, e := range envelopes {
		writeU32(&buf, uint32(len(e)))
		buf.Write(e)
	}
	for k, v := range metadata {
		writeU32(&buf, uint32(len(k)))
		writeU32(&buf, uint32(len(v)))
		buf.WriteString(k)
		buf.Write(v)
	}
	d := digest(envelopes)
	buf.Write(d[:])
	return buf.Bytes(), nil
}

// ComposeWithMetadata is a convenience wrapper mirroring the original
// single-proof "create_proof_with_metadata" entry point: it composes one
// envelope together with its metadata in a single call.
func ComposeWithMetadata(envelope []byte, metadata map[string][]byte) ([]byte, error) {
	return Compose([][]byte{envelope}, metadata)
}

// Decompose parses a composite envelope back into its inner envelopes and
// metadata, checking the integrity digest along the way.
func Decompose(data []byte) (*Composite, error) {
	if len(data) < magicLen+2*headerCountLen {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "composite proof too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[0:magicLen], magic) {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "invalid composite proof header: %q", data[0:magicLen])
	}
	nProofs := int(binary.LittleEndian.Uint32(data[4:8]))
	nMeta := int(binary.LittleEndian.Uint32(data[8:12]))
	if nProofs > MaxProofs || nMeta > MaxMetadata {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "composite proof too large: proofs=%d meta=%d", nProofs, nMeta)
	}

	off := 12
	envelopes := make([][]byte, 0, nProofs)
	for i := 0; i < nProofs; i++ {
		if off+4 > len(data) {
			return nil, zkperr.New(zkperr.InvalidProofFormat, "truncated envelope length at index %d", i)
		}
		l := int(binary.LittleEndian.Uint32(data[off : off+4]))
		off += 4
		if off+l > len(data) {
			return nil, zkperr.New(zkperr.InvalidProofFormat, "truncated envelope data at index %d", i)
		}
		envelopes = append(envelopes, append([]byte(nil), data[off:off+l]...))
		off += l
	}

	metadata := make(map[string][]byte, nMeta)
	for i := 0; i < nMeta; i++ {
		if off+8 > len(data) {
			return nil, zkperr.New(zkperr.InvalidProofFormat, "truncated metadata header at index %d", i)
		}
		keyLen := int(binary.LittleEndian.Uint32(data[off : off+4]))
		valLen := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		off += 8
		if keyLen > MaxKeyBytes || valLen > MaxValueBytes {
			return nil, zkperr.New(zkperr.InvalidProofFormat, "metadata entry %d too large", i)
		}
		if off+keyLen+valLen > len(data) {
			return nil, zkperr.New(zkperr.InvalidProofFormat, "truncated metadata content at index %d", i)
		}
		key := string(data[off : off+keyLen])
		off += keyLen
		val := append([]byte(nil), data[off:off+valLen]...)
		off += valLen
		metadata[key] = val
	}

	if off+digestLen > len(data) {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "missing composition digest")
	}
	gotDigest := data[off : off+digestLen]
	off += digestLen
	if off != len(data) {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "trailing bytes after composition digest")
	}

	want := digest(envelopes)
	if !bytes.Equal(gotDigest, want[:]) {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "composition digest mismatch")
	}

	return &Composite{Envelopes: envelopes, Metadata: metadata}, nil
}

// VerifyIntegrity reports whether a composite envelope's digest matches
// its inner envelopes. It never panics: malformed input simply yields
// false, matching the verifier discipline of §7.
func VerifyIntegrity(data []byte) bool {
	_, err := Decompose(data)
	return err == nil
}

// AddMetadata returns a new composite envelope with key/value merged into
// the existing metadata. Because the digest only covers the inner
// envelopes, integrity is preserved across this edit (§4.8 determinism).
func AddMetadata(data []byte, key string, value []byte) ([]byte, error) {
	c, err := Decompose(data)
	if err != nil {
		return nil, err
	}
	merged := make(map[string][]byte, len(c.Metadata)+1)
	for k, v := range c.Metadata {
		merged[k] = v
	}
	merged[key] = value
	return Compose(c.Envelopes, merged)
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
