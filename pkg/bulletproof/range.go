package bulletproof

import (
	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

const (
	labelRangeMin = "libzkp_range_min"
	labelRangeMax = "libzkp_range_max"
)

// ProveRange builds the Bulletproofs range engine output for a secret
// value v in [min, max], per §4.4's linked-blinding construction: the
// commitment to v-min reuses v's own blinding r, and the commitment to
// max-v uses -r, so a verifier who recomputes both diff commitments from
// the public C_v can trust the two inner range proofs without ever
// learning r.
func ProveRange(v, min, max uint64) ([]byte, error) {
	if min > max || v < min || v > max {
		return nil, zkperr.New(zkperr.InvalidInput, "value %d not in [%d,%d]", v, min, max)
	}
	diffMin := v - min
	diffMax := max - v

	r := RandomScalar()
	negR := G.NewScalar().Neg(r)
	Cv := Commit(ScalarFromUint64(v), r)

	diffMinCommit := G.NewElement().Add(Cv, G.NewElement().Neg(G.NewElement().MulGen(ScalarFromUint64(min))))
	diffMaxCommit := G.NewElement().Add(G.NewElement().MulGen(ScalarFromUint64(max)), G.NewElement().Neg(Cv))

	bpMin := ProveBits64(labelRangeMin, diffMin, r)
	bpMax := ProveBits64(labelRangeMax, diffMax, negR)

	region := make([]byte, 0, 16+8+len(bpMin)+8+len(bpMax)+64)
	region = append(region, le8(min)...)
	region = append(region, le8(max)...)
	region = append(region, putU32(uint32(len(bpMin)))...)
	region = append(region, bpMin...)
	region = append(region, putU32(uint32(len(bpMax)))...)
	region = append(region, bpMax...)
	region = append(region, MarshalPoint(diffMinCommit)...)
	region = append(region, MarshalPoint(diffMaxCommit)...)

	return joinWithMarker(region, MarshalPoint(Cv)), nil
}

// VerifyRange checks a range engine blob against the public [min, max].
func VerifyRange(blob []byte, min, max uint64) bool {
	region, commitBytes, err := SplitCommitMarker(blob)
	if err != nil || len(commitBytes) != 32 {
		return false
	}
	Cv, err := UnmarshalPoint(commitBytes)
	if err != nil {
		return false
	}

	if len(region) < 24 {
		return false
	}
	wMin := leToU64(region[0:8])
	wMax := leToU64(region[8:16])
	if wMin != min || wMax != max {
		return false
	}
	off := 16
	lenMin := int(getU32(region[off : off+4]))
	off += 4
	if off+lenMin > len(region) {
		return false
	}
	bpMin := region[off : off+lenMin]
	off += lenMin

	if off+4 > len(region) {
		return false
	}
	lenMax := int(getU32(region[off : off+4]))
	off += 4
	if off+lenMax > len(region) {
		return false
	}
	bpMax := region[off : off+lenMax]
	off += lenMax

	if off+64 > len(region) {
		return false
	}
	diffMinCommitBytes := region[off : off+32]
	diffMaxCommitBytes := region[off+32 : off+64]

	diffMinCommit, err := UnmarshalPoint(diffMinCommitBytes)
	if err != nil {
		return false
	}
	diffMaxCommit, err := UnmarshalPoint(diffMaxCommitBytes)
	if err != nil {
		return false
	}

	expectedMin := G.NewElement().Add(Cv, G.NewElement().Neg(G.NewElement().MulGen(ScalarFromUint64(min))))
	expectedMax := G.NewElement().Add(G.NewElement().MulGen(ScalarFromUint64(max)), G.NewElement().Neg(Cv))
	if !expectedMin.IsEqual(diffMinCommit) || !expectedMax.IsEqual(diffMaxCommit) {
		return false
	}

	if !VerifyBits64(labelRangeMin, diffMinCommit, bpMin) {
		return false
	}
	return VerifyBits64(labelRangeMax, diffMaxCommit, bpMax)
}

// CommitmentOf extracts the 32-byte Pedersen commitment trailing a
// Bulletproofs blob, for use as the envelope's outer commitment field.
func CommitmentOf(blob []byte) ([]byte, error) {
	_, commitBytes, err := SplitCommitMarker(blob)
	return commitBytes, err
}

func leToU64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
