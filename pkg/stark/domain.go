package stark

import "math/big"

// HalfDomain is half the evaluation domain size: the domain is the 2*N
// symmetric points {d, -d mod p : d = 1..HalfDomain}, giving the +/-d
// pairing FRI folding needs without requiring a root-of-unity subgroup
// of this field (Modulus has 2-adicity 1, so no such subgroup of
// useful size exists). Domain size 64 matches the blowup=8 over the
// trace length L=8 named in spec §4.6.
const HalfDomain = 32

// DomainSize is the full evaluation domain size.
const DomainSize = 2 * HalfDomain

// domainPoint returns the i-th domain point: positive branch for even
// i, its negation for odd i, both drawn from the same pair index i/2.
func domainPoint(i int) *big.Int {
	d := big.NewInt(int64(i/2 + 1))
	if i%2 == 1 {
		return Neg(d)
	}
	return d
}

// pairIndices returns the (positive, negative) leaf indices for pair p
// (0-indexed, 0 <= p < HalfDomain).
func pairIndices(p int) (int, int) { return 2 * p, 2*p + 1 }
