package bulletproof

import "github.com/Lumina-Group/libzkp/pkg/zkperr"

const labelThreshold = "libzkp_threshold"

// ProveThreshold proves that the secret sum S of values meets threshold t,
// per §4.4: commit to S with blinding r, prove S-t >= 0 with the same
// blinding, recomputable by the verifier as C_diff* = C_S - t*B.
func ProveThreshold(sum, threshold uint64) ([]byte, error) {
	if sum < threshold {
		return nil, zkperr.New(zkperr.InvalidInput, "sum %d below threshold %d", sum, threshold)
	}
	diff := sum - threshold
	r := RandomScalar()
	Cs := Commit(ScalarFromUint64(sum), r)
	diffCommit := G.NewElement().Add(Cs, G.NewElement().Neg(G.NewElement().MulGen(ScalarFromUint64(threshold))))

	bp := ProveBits64(labelThreshold, diff, r)

	region := make([]byte, 0, 8+4+len(bp)+32)
	region = append(region, le8(threshold)...)
	region = append(region, putU32(uint32(len(bp)))...)
	region = append(region, bp...)
	region = append(region, MarshalPoint(diffCommit)...)

	return joinWithMarker(region, MarshalPoint(Cs)), nil
}

// VerifyThreshold checks a threshold engine blob against the public t.
func VerifyThreshold(blob []byte, threshold uint64) bool {
	region, commitBytes, err := SplitCommitMarker(blob)
	if err != nil || len(commitBytes) != 32 {
		return false
	}
	Cs, err := UnmarshalPoint(commitBytes)
	if err != nil {
		return false
	}
	if len(region) < 12 {
		return false
	}
	wThreshold := leToU64(region[0:8])
	if wThreshold != threshold {
		return false
	}
	off := 8
	bpLen := int(getU32(region[off : off+4]))
	off += 4
	if off+bpLen+32 != len(region) {
		return false
	}
	bp := region[off : off+bpLen]
	diffCommitBytes := region[off+bpLen : off+bpLen+32]

	diffCommit, err := UnmarshalPoint(diffCommitBytes)
	if err != nil {
		return false
	}
	expected := G.NewElement().Add(Cs, G.NewElement().Neg(G.NewElement().MulGen(ScalarFromUint64(threshold))))
	if !expected.IsEqual(diffCommit) {
		return false
	}
	return VerifyBits64(labelThreshold, diffCommit, bp)
}
