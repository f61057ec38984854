package stark

import (
	"encoding/binary"
	"math/big"

	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

// TraceLength is L in spec §4.6: the number of AIR trace steps.
const TraceLength = 8

// NumQueries is the number of FRI/boundary query pairs drawn from the
// transcript, matching the "32 queries" proof option; capped in
// practice at HalfDomain since that's the full pair count.
const NumQueries = 32

const version = 1
const merkleDepth = 6 // log2(DomainSize)

var two = big.NewInt(2)

func stepSize(old, new uint64) (*big.Int, error) {
	invLm1, err := Inv(FromUint64(TraceLength - 1))
	if err != nil {
		return nil, err
	}
	diff := Sub(FromUint64(new), FromUint64(old))
	return Mul(diff, invLm1), nil
}

func expectedAt(old uint64, s, x *big.Int) *big.Int {
	return Add(FromUint64(old), Mul(s, x))
}

// ProveImprovement builds a STARK proof that a length-8 affine trace
// runs from old to new, per spec §4.6. Both values are public inputs;
// new must be strictly greater than old.
func ProveImprovement(old, new uint64) ([]byte, error) {
	if new <= old {
		return nil, zkperr.New(zkperr.InvalidInput, "stark: new value must be greater than old value")
	}
	s, err := stepSize(old, new)
	if err != nil {
		return nil, err
	}

	leaves := make([][]byte, DomainSize)
	for i := 0; i < DomainSize; i++ {
		v := expectedAt(old, s, domainPoint(i))
		enc := Encode(v)
		leaves[i] = enc[:]
	}
	tree := buildMerkleTree(leaves)
	traceRoot := tree.Root()

	tr := newTranscript("improvement")
	tr.appendUint64(old)
	tr.appendUint64(new)
	tr.append(traceRoot[:])
	beta := tr.challengeElement()

	finalConstant := Add(FromUint64(old), Mul(beta, s))

	numQueries := NumQueries
	if numQueries > HalfDomain {
		numQueries = HalfDomain
	}
	queryPairs := make([]int, numQueries)
	for i := range queryPairs {
		queryPairs[i] = tr.challengeIndex(HalfDomain)
	}

	buf := make([]byte, 0, 1+32+ElemLen+2+numQueries*(2+2*(ElemLen+merkleDepth*32)))
	buf = append(buf, version)
	buf = append(buf, traceRoot[:]...)
	fc := Encode(finalConstant)
	buf = append(buf, fc[:]...)
	buf = append(buf, u16(uint16(numQueries))...)

	for _, p := range queryPairs {
		posIdx, negIdx := pairIndices(p)
		buf = append(buf, u16(uint16(p))...)
		posLeaf := leaves[posIdx]
		negLeaf := leaves[negIdx]
		buf = append(buf, posLeaf...)
		buf = append(buf, encodeMerklePath(tree.Prove(posIdx))...)
		buf = append(buf, negLeaf...)
		buf = append(buf, encodeMerklePath(tree.Prove(negIdx))...)
	}
	return buf, nil
}

// VerifyImprovement recomputes the Fiat-Shamir transcript from the
// caller-supplied (old, new) and checks every query's Merkle openings
// and fold consistency; it never panics on malformed input.
func VerifyImprovement(proof []byte, old, new uint64) bool {
	if new <= old {
		return false
	}
	s, err := stepSize(old, new)
	if err != nil {
		return false
	}
	if len(proof) < 1+32+ElemLen+2 {
		return false
	}
	if proof[0] != version {
		return false
	}
	off := 1
	var traceRoot [32]byte
	copy(traceRoot[:], proof[off:off+32])
	off += 32
	finalConstant, err := Decode(proof[off : off+ElemLen])
	if err != nil {
		return false
	}
	off += ElemLen
	numQueries := int(binary.BigEndian.Uint16(proof[off : off+2]))
	off += 2
	if numQueries <= 0 || numQueries > HalfDomain {
		return false
	}

	tr := newTranscript("improvement")
	tr.appendUint64(old)
	tr.appendUint64(new)
	tr.append(traceRoot[:])
	beta := tr.challengeElement()

	inv2, err := Inv(two)
	if err != nil {
		return false
	}

	queryLen := 2 + 2*(ElemLen+merkleDepth*32)
	for q := 0; q < numQueries; q++ {
		expectedPair := tr.challengeIndex(HalfDomain)
		if off+queryLen > len(proof) {
			return false
		}
		pairIdx := int(binary.BigEndian.Uint16(proof[off : off+2]))
		if pairIdx != expectedPair {
			return false
		}
		off += 2
		posLeaf := proof[off : off+ElemLen]
		off += ElemLen
		posPath, err := decodeMerklePath(proof[off:off+merkleDepth*32], merkleDepth)
		if err != nil {
			return false
		}
		off += merkleDepth * 32
		negLeaf := proof[off : off+ElemLen]
		off += ElemLen
		negPath, err := decodeMerklePath(proof[off:off+merkleDepth*32], merkleDepth)
		if err != nil {
			return false
		}
		off += merkleDepth * 32

		posIdx, negIdx := pairIndices(pairIdx)
		if !verifyMerklePath(traceRoot, posLeaf, posIdx, posPath) {
			return false
		}
		if !verifyMerklePath(traceRoot, negLeaf, negIdx, negPath) {
			return false
		}

		vPos, err := Decode(posLeaf)
		if err != nil {
			return false
		}
		vNeg, err := Decode(negLeaf)
		if err != nil {
			return false
		}
		d := big.NewInt(int64(pairIdx + 1))
		if vPos.Cmp(expectedAt(old, s, d)) != 0 {
			return false
		}
		if vNeg.Cmp(expectedAt(old, s, Neg(d))) != 0 {
			return false
		}

		invTwoD, err := Inv(Mul(two, d))
		if err != nil {
			return false
		}
		gEven := Mul(Add(vPos, vNeg), inv2)
		gOdd := Mul(Sub(vPos, vNeg), invTwoD)
		fold := Add(gEven, Mul(beta, gOdd))
		if fold.Cmp(finalConstant) != 0 {
			return false
		}
	}
	if off != len(proof) {
		return false
	}
	return true
}

func u16(v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return b[:]
}
