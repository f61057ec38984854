// Package snark implements the Groth16 engine (C5): equality and
// set-membership circuits over BN254 binding a SHA-256 commitment to a
// private witness, per spec §4.5.
package snark

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/sha2"
	"github.com/consensys/gnark/std/math/uints"
)

// MaxSetSize is the fixed maximum set size the membership circuit
// supports (§4.5); larger sets must be rejected before proving.
const MaxSetSize = 64

// packBits64ToBytes groups 64 little-endian bits (LSB first, as returned
// by api.ToBinary) into 8 bytes in LE_8 order, the packing this engine
// commits to.
func packBits64ToBytes(api frontend.API, bits []frontend.Variable) []uints.U8 {
	out := make([]uints.U8, 8)
	for i := 0; i < 8; i++ {
		var byteVal frontend.Variable = 0
		for j := 0; j < 8; j++ {
			byteVal = api.Add(byteVal, api.Mul(bits[i*8+j], 1<<uint(j)))
		}
		out[i] = uints.U8{Val: byteVal}
	}
	return out
}

func assertDigestEquals(api frontend.API, digest []uints.U8, commitment [32]frontend.Variable) {
	for i := 0; i < 32; i++ {
		api.AssertIsEqual(digest[i].Val, commitment[i])
	}
}

// EqualityCircuit proves a == b for private a, b and binds the pair to a
// public 32-byte commitment C = SHA256(LE_8(a)), per §4.5.
type EqualityCircuit struct {
	A, B       frontend.Variable
	Commitment [32]frontend.Variable `gnark:",public"`
}

func (c *EqualityCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.A, c.B)

	bits := api.ToBinary(c.A, 64) // also forces A to fit in 64 bits
	bytesA := packBits64ToBytes(api, bits)

	hasher, err := sha2.New(api)
	if err != nil {
		return err
	}
	hasher.Write(bytesA)
	assertDigestEquals(api, hasher.Sum(), c.Commitment)
	return nil
}

// MembershipCircuit proves that a private value v with a one-hot
// selector sel equals one of the (padded) public set_values at the
// position sel marks, and binds v to a public commitment, per §4.5.
type MembershipCircuit struct {
	V   frontend.Variable
	Sel [MaxSetSize]frontend.Variable

	Commitment [32]frontend.Variable     `gnark:",public"`
	SetValues  [MaxSetSize]frontend.Variable `gnark:",public"`
	IsReal     [MaxSetSize]frontend.Variable `gnark:",public"`
}

func (c *MembershipCircuit) Define(api frontend.API) error {
	bits := api.ToBinary(c.V, 64)
	bytesV := packBits64ToBytes(api, bits)

	hasher, err := sha2.New(api)
	if err != nil {
		return err
	}
	hasher.Write(bytesV)
	assertDigestEquals(api, hasher.Sum(), c.Commitment)

	selSum := frontend.Variable(0)
	matchSum := frontend.Variable(0)
	for i := 0; i < MaxSetSize; i++ {
		api.AssertIsBoolean(c.Sel[i])
		// sel[i] * (1 - is_real[i]) == 0
		api.AssertIsEqual(api.Mul(c.Sel[i], api.Sub(1, c.IsReal[i])), 0)

		selSum = api.Add(selSum, c.Sel[i])
		diff := api.Sub(c.V, c.SetValues[i])
		matchSum = api.Add(matchSum, api.Mul(c.Sel[i], diff))
	}
	api.AssertIsEqual(selSum, 1)
	api.AssertIsEqual(matchSum, 0)
	return nil
}
