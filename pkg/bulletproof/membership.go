package bulletproof

import (
	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

const labelMembership = "libzkp_membership"

// ProveMembership proves, via a Fiat-Shamir Sigma protocol, that the
// secret value v equals set[idx] for some hidden idx, without revealing
// idx, per §4.4.
func ProveMembership(v uint64, set []uint64) ([]byte, error) {
	if len(set) == 0 {
		return nil, zkperr.New(zkperr.InvalidInput, "membership set must be nonempty")
	}
	idx := -1
	for i, s := range set {
		if s == v {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, zkperr.New(zkperr.InvalidInput, "value %d is not a member of the given set", v)
	}

	rv := RandomScalar()
	ri := RandomScalar()
	Cv := Commit(ScalarFromUint64(v), rv)
	I := Commit(ScalarFromUint64(uint64(idx)), ri)

	tr := NewTranscript(labelMembership)
	tr.AppendPoint("Cv", Cv)
	tr.AppendPoint("I", I)
	for _, s := range set {
		tr.AppendUint64("set_element", s)
	}
	c := tr.ChallengeScalar("challenge")

	// z = r_i + c*r_v
	z := G.NewScalar().Add(ri, G.NewScalar().Mul(c, rv))

	region := make([]byte, 0, 4+8*len(set))
	region = append(region, putU32(uint32(len(set)))...)
	for _, s := range set {
		region = append(region, le8(s)...)
	}
	region = append(region, MarshalPoint(I)...)
	region = append(region, MarshalScalar(c)...)
	region = append(region, MarshalScalar(z)...)

	return joinWithMarker(region, MarshalPoint(Cv)), nil
}

// VerifyMembership checks a membership engine blob against the public
// set (order-insensitive, per §8 S4).
func VerifyMembership(blob []byte, set []uint64) bool {
	region, commitBytes, err := SplitCommitMarker(blob)
	if err != nil || len(commitBytes) != 32 {
		return false
	}
	Cv, err := UnmarshalPoint(commitBytes)
	if err != nil {
		return false
	}
	if len(region) < 4 {
		return false
	}
	n := int(getU32(region[0:4]))
	if n != len(set) {
		return false
	}
	off := 4
	wSet := make([]uint64, n)
	for i := 0; i < n; i++ {
		if off+8 > len(region) {
			return false
		}
		wSet[i] = leToU64(region[off : off+8])
		off += 8
	}
	if off+96 != len(region) {
		return false
	}
	I, err := UnmarshalPoint(region[off : off+32])
	if err != nil {
		return false
	}
	c, err := UnmarshalScalar(region[off+32 : off+64])
	if err != nil {
		return false
	}
	z, err := UnmarshalScalar(region[off+64 : off+96])
	if err != nil {
		return false
	}

	tr := NewTranscript(labelMembership)
	tr.AppendPoint("Cv", Cv)
	tr.AppendPoint("I", I)
	for _, s := range wSet {
		tr.AppendUint64("set_element", s)
	}
	expectedC := tr.ChallengeScalar("challenge")
	if !expectedC.IsEqual(c) {
		return false
	}

	// The caller's set may list its elements in any order, but it must be
	// the same multiset as the embedded one the index was committed against.
	counts := make(map[uint64]int, n)
	for _, s := range wSet {
		counts[s]++
	}
	for _, s := range set {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}

	lhs := G.NewElement().Add(I, G.NewElement().Mul(Cv, c))
	for j, sj := range wSet {
		jScalar := ScalarFromUint64(uint64(j))
		term := G.NewScalar().Mul(c, ScalarFromUint64(sj))
		sum := G.NewScalar().Add(jScalar, term)
		rhs := Commit(sum, z)
		if lhs.IsEqual(rhs) {
			return true
		}
	}
	return false
}
