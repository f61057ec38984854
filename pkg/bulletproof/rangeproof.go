package bulletproof

import (
	"encoding/binary"

	"github.com/cloudflare/circl/group"

	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

const bitWidth = 64

// bitProof is a Chaum-Pedersen OR proof that a Pedersen commitment C opens
// to 0 or to 1: it proves knowledge of r such that either C = r*H or
// C - B = r*H, without revealing which.
type bitProof struct {
	C          group.Element
	A0, A1     group.Element
	c0, c1     group.Scalar
	z0, z1     group.Scalar
}

const bitProofLen = 32 * 7 // C, A0, A1, c0, c1, z0, z1

func (p *bitProof) marshal() []byte {
	out := make([]byte, 0, bitProofLen)
	out = append(out, MarshalPoint(p.C)...)
	out = append(out, MarshalPoint(p.A0)...)
	out = append(out, MarshalPoint(p.A1)...)
	out = append(out, MarshalScalar(p.c0)...)
	out = append(out, MarshalScalar(p.c1)...)
	out = append(out, MarshalScalar(p.z0)...)
	out = append(out, MarshalScalar(p.z1)...)
	return out
}

func unmarshalBitProof(b []byte) (*bitProof, error) {
	if len(b) != bitProofLen {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "bit proof must be %d bytes, got %d", bitProofLen, len(b))
	}
	p := &bitProof{}
	var err error
	off := 0
	next := func(n int) []byte { s := b[off : off+n]; off += n; return s }
	if p.C, err = UnmarshalPoint(next(32)); err != nil {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "bad bit commitment: %v", err)
	}
	if p.A0, err = UnmarshalPoint(next(32)); err != nil {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "bad A0: %v", err)
	}
	if p.A1, err = UnmarshalPoint(next(32)); err != nil {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "bad A1: %v", err)
	}
	if p.c0, err = UnmarshalScalar(next(32)); err != nil {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "bad c0: %v", err)
	}
	if p.c1, err = UnmarshalScalar(next(32)); err != nil {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "bad c1: %v", err)
	}
	if p.z0, err = UnmarshalScalar(next(32)); err != nil {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "bad z0: %v", err)
	}
	if p.z1, err = UnmarshalScalar(next(32)); err != nil {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "bad z1: %v", err)
	}
	return p, nil
}

func proveBit(tr *Transcript, label string, bit uint64, r group.Scalar) *bitProof {
	C := Commit(ScalarFromUint64(bit), r)
	p := &bitProof{C: C}

	if bit == 0 {
		k0 := RandomScalar()
		p.A0 = G.NewElement().Mul(basepointH, k0)
		p.c1 = RandomScalar()
		p.z1 = RandomScalar()
		// A1 = z1*H - c1*(C - B)
		cMinusB := G.NewElement().Add(C, G.NewElement().Neg(G.NewElement().MulGen(ScalarFromUint64(1))))
		rhs := G.NewElement().Mul(cMinusB, p.c1)
		p.A1 = G.NewElement().Add(G.NewElement().Mul(basepointH, p.z1), G.NewElement().Neg(rhs))

		tr.AppendPoint(label+":C", p.C)
		tr.AppendPoint(label+":A0", p.A0)
		tr.AppendPoint(label+":A1", p.A1)
		c := tr.ChallengeScalar(label + ":c")
		p.c0 = G.NewScalar().Sub(c, p.c1)
		p.z0 = G.NewScalar().Mul(p.c0, r)
		p.z0 = G.NewScalar().Add(k0, p.z0)
		return p
	}

	// bit == 1: C - B = r*H is the real branch.
	k1 := RandomScalar()
	cMinusB := G.NewElement().Add(C, G.NewElement().Neg(G.NewElement().MulGen(ScalarFromUint64(1))))
	p.A1 = G.NewElement().Mul(basepointH, k1)
	p.c0 = RandomScalar()
	p.z0 = RandomScalar()
	rhs := G.NewElement().Mul(C, p.c0)
	p.A0 = G.NewElement().Add(G.NewElement().Mul(basepointH, p.z0), G.NewElement().Neg(rhs))

	tr.AppendPoint(label+":C", p.C)
	tr.AppendPoint(label+":A0", p.A0)
	tr.AppendPoint(label+":A1", p.A1)
	c := tr.ChallengeScalar(label + ":c")
	p.c1 = G.NewScalar().Sub(c, p.c0)
	p.z1 = G.NewScalar().Mul(p.c1, r)
	p.z1 = G.NewScalar().Add(k1, p.z1)
	_ = cMinusB
	return p
}

func verifyBit(tr *Transcript, label string, p *bitProof) bool {
	tr.AppendPoint(label+":C", p.C)
	tr.AppendPoint(label+":A0", p.A0)
	tr.AppendPoint(label+":A1", p.A1)
	c := tr.ChallengeScalar(label + ":c")

	sumC := G.NewScalar().Add(p.c0, p.c1)
	if !sumC.IsEqual(c) {
		return false
	}

	// Check z0*H == A0 + c0*C
	lhs0 := G.NewElement().Mul(basepointH, p.z0)
	rhs0 := G.NewElement().Add(p.A0, G.NewElement().Mul(p.C, p.c0))
	if !lhs0.IsEqual(rhs0) {
		return false
	}

	// Check z1*H == A1 + c1*(C - B)
	cMinusB := G.NewElement().Add(p.C, G.NewElement().Neg(G.NewElement().MulGen(ScalarFromUint64(1))))
	lhs1 := G.NewElement().Mul(basepointH, p.z1)
	rhs1 := G.NewElement().Add(p.A1, G.NewElement().Mul(cMinusB, p.c1))
	return lhs1.IsEqual(rhs1)
}

// ProveBits64 proves that commitment C = v*B + r*H opens to a value that
// fits in 64 bits, by decomposing v into 64 bit commitments linked back to
// C. label domain-separates the transcript per predicate (§4.4).
func ProveBits64(label string, v uint64, r group.Scalar) []byte {
	tr := NewTranscript(label)

	// Blindings for bits 0..62 are random; bit 63's blinding is solved so
	// that sum(2^i * r_i) == r, linking the bit commitments back to C
	// without revealing any individual bit's opening.
	rBits := make([]group.Scalar, bitWidth)
	acc := G.NewScalar() // sum_{i<63} 2^i * r_i
	pow := G.NewScalar()
	pow.SetUint64(1)
	for i := 0; i < bitWidth-1; i++ {
		rBits[i] = RandomScalar()
		term := G.NewScalar().Mul(pow, rBits[i])
		acc = G.NewScalar().Add(acc, term)
		pow = G.NewScalar().Add(pow, pow) // *2
	}
	// r_63 = (r - acc) * inv(2^63)
	diff := G.NewScalar().Sub(r, acc)
	invPow := G.NewScalar().Inv(pow)
	rBits[bitWidth-1] = G.NewScalar().Mul(diff, invPow)

	out := make([]byte, 0, bitWidth*bitProofLen)
	for i := 0; i < bitWidth; i++ {
		bit := (v >> uint(i)) & 1
		bp := proveBit(tr, label, bit, rBits[i])
		out = append(out, bp.marshal()...)
	}
	return out
}

// VerifyBits64 checks a ProveBits64 output against commitment C.
func VerifyBits64(label string, C group.Element, proof []byte) bool {
	if len(proof) != bitWidth*bitProofLen {
		return false
	}
	tr := NewTranscript(label)

	sum := G.NewElement() // identity
	pow := G.NewScalar()
	pow.SetUint64(1)
	for i := 0; i < bitWidth; i++ {
		chunk := proof[i*bitProofLen : (i+1)*bitProofLen]
		bp, err := unmarshalBitProof(chunk)
		if err != nil {
			return false
		}
		if !verifyBit(tr, label, bp) {
			return false
		}
		sum = G.NewElement().Add(sum, G.NewElement().Mul(bp.C, pow))
		pow = G.NewScalar().Add(pow, pow)
	}
	return sum.IsEqual(C)
}

func le8(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
