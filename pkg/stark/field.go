// Package stark implements the STARK engine (C6): a linear-interpolation
// AIR over a 128-bit prime field, committed with Blake3 Merkle trees and
// proved low-degree with a FRI folding argument, per spec §4.6.
//
// Both AIR public inputs (old, new) are public to prover and verifier
// alike, so this engine's witness (the interpolation trace) carries no
// secret: its job is to bind the envelope to a concretely reproducible
// computation trace, not to hide anything, mirroring the Winterfell
// backend this package is ported from. Folding is implemented radix-2
// (rather than the documented FRI folding factor of 8) because the
// trace here is always affine (degree <= 1): one fold round collapses
// it to a constant, and a higher-arity fold buys nothing at that size.
package stark

import (
	"crypto/rand"
	"math/big"

	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

// Modulus is 2^127-1, the Mersenne prime discovered by Lucas (1876).
// It is the field this engine's arithmetic runs over.
var Modulus = mustMersenne127()

func mustMersenne127() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), 127)
	m.Sub(m, big.NewInt(1))
	return m
}

// ElemLen is the fixed-width encoding length of a field element.
const ElemLen = 16

func reduce(v *big.Int) *big.Int {
	v = new(big.Int).Mod(v, Modulus)
	if v.Sign() < 0 {
		v.Add(v, Modulus)
	}
	return v
}

// FromUint64 lifts a uint64 into the field.
func FromUint64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// Add returns a+b mod p.
func Add(a, b *big.Int) *big.Int { return reduce(new(big.Int).Add(a, b)) }

// Sub returns a-b mod p.
func Sub(a, b *big.Int) *big.Int { return reduce(new(big.Int).Sub(a, b)) }

// Neg returns -a mod p.
func Neg(a *big.Int) *big.Int { return reduce(new(big.Int).Neg(a)) }

// Mul returns a*b mod p.
func Mul(a, b *big.Int) *big.Int { return reduce(new(big.Int).Mul(a, b)) }

// Inv returns the multiplicative inverse of a, or an error if a is 0.
func Inv(a *big.Int) (*big.Int, error) {
	if a.Sign() == 0 {
		return nil, zkperr.New(zkperr.CryptoError, "stark: inverse of zero")
	}
	return new(big.Int).ModInverse(a, Modulus), nil
}

// RandomElement draws a uniform nonzero field element.
func RandomElement() (*big.Int, error) {
	for {
		v, err := rand.Int(rand.Reader, Modulus)
		if err != nil {
			return nil, zkperr.New(zkperr.CryptoError, "stark: random element: %v", err)
		}
		if v.Sign() != 0 {
			return v, nil
		}
	}
}

// Encode serialises a field element as a fixed-width 16-byte big-endian
// integer.
func Encode(a *big.Int) [ElemLen]byte {
	var out [ElemLen]byte
	b := a.Bytes()
	copy(out[ElemLen-len(b):], b)
	return out
}

// Decode parses a fixed-width field element, rejecting values at or
// above the modulus.
func Decode(b []byte) (*big.Int, error) {
	if len(b) != ElemLen {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "stark: element must be %d bytes, got %d", ElemLen, len(b))
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(Modulus) >= 0 {
		return nil, zkperr.New(zkperr.InvalidProofFormat, "stark: element not reduced mod p")
	}
	return v, nil
}
