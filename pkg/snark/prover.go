package snark

import (
	"bytes"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

// Curve is the curve every circuit in this package is compiled over.
const Curve = ecc.BN254

// DummyEquality returns a zero-valued EqualityCircuit suitable for
// frontend.Compile / circuit-specific setup.
func DummyEquality() frontend.Circuit { return &EqualityCircuit{} }

// DummyMembership returns a zero-valued MembershipCircuit suitable for
// frontend.Compile / circuit-specific setup.
func DummyMembership() frontend.Circuit { return &MembershipCircuit{} }

func commitmentVars(commitment [32]byte) [32]frontend.Variable {
	var out [32]frontend.Variable
	for i, b := range commitment {
		out[i] = b
	}
	return out
}

// ProveEquality produces a Groth16 proof that a == b, bound to
// commitment = SHA256(LE_8(a)).
func ProveEquality(pk groth16.ProvingKey, cs constraint.ConstraintSystem, a, b uint64, commitment [32]byte) ([]byte, error) {
	assignment := &EqualityCircuit{
		A:          a,
		B:          b,
		Commitment: commitmentVars(commitment),
	}
	witness, err := frontend.NewWitness(assignment, Curve.ScalarField())
	if err != nil {
		return nil, zkperr.New(zkperr.ProofGenerationFailed, "build witness: %v", err)
	}
	proof, err := groth16.Prove(cs, pk, witness)
	if err != nil {
		return nil, zkperr.New(zkperr.ProofGenerationFailed, "groth16 prove: %v", err)
	}
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, zkperr.New(zkperr.SerializationError, "serialize proof: %v", err)
	}
	return buf.Bytes(), nil
}

// VerifyEquality never returns an error: a malformed or invalid proof
// simply yields false, per §7's verifier-never-panics requirement.
func VerifyEquality(vk groth16.VerifyingKey, proofBytes []byte, commitment [32]byte) bool {
	proof := groth16.NewProof(Curve)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return false
	}
	assignment := &EqualityCircuit{Commitment: commitmentVars(commitment)}
	witness, err := frontend.NewWitness(assignment, Curve.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false
	}
	return groth16.Verify(proof, vk, witness) == nil
}

// ProveMembership produces a Groth16 proof that v is in set (padded to
// MaxSetSize per §4.5), bound to commitment = SHA256(LE_8(v)).
func ProveMembership(pk groth16.ProvingKey, cs constraint.ConstraintSystem, v uint64, set []uint64, commitment [32]byte) ([]byte, error) {
	if len(set) == 0 || len(set) > MaxSetSize {
		return nil, zkperr.New(zkperr.InvalidInput, "set size %d outside (0, %d]", len(set), MaxSetSize)
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

	assignment := &MembershipCircuit{V: v, Commitment: commitmentVars(commitment)}
	for i := 0; i < MaxSetSize; i++ {
		if i < len(set) {
			assignment.SetValues[i] = set[i]
			assignment.IsReal[i] = 1
		} else {
			assignment.SetValues[i] = 0
			assignment.IsReal[i] = 0
		}
		if i == idx {
			assignment.Sel[i] = 1
		} else {
			assignment.Sel[i] = 0
		}
	}

	witness, err := frontend.NewWitness(assignment, Curve.ScalarField())
	if err != nil {
		return nil, zkperr.New(zkperr.ProofGenerationFailed, "build witness: %v", err)
	}
	proof, err := groth16.Prove(cs, pk, witness)
	if err != nil {
		return nil, zkperr.New(zkperr.ProofGenerationFailed, "groth16 prove: %v", err)
	}
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, zkperr.New(zkperr.SerializationError, "serialize proof: %v", err)
	}
	return buf.Bytes(), nil
}

// VerifyMembership reconstructs the padded public inputs from the
// verifier-known set and checks the proof; never returns an error.
func VerifyMembership(vk groth16.VerifyingKey, proofBytes []byte, commitment [32]byte, set []uint64) bool {
	if len(set) == 0 || len(set) > MaxSetSize {
		return false
	}
	proof := groth16.NewProof(Curve)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return false
	}

	assignment := &MembershipCircuit{Commitment: commitmentVars(commitment)}
	for i := 0; i < MaxSetSize; i++ {
		if i < len(set) {
			assignment.SetValues[i] = set[i]
			assignment.IsReal[i] = 1
		} else {
			assignment.SetValues[i] = 0
			assignment.IsReal[i] = 0
		}
	}

	witness, err := frontend.NewWitness(assignment, Curve.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false
	}
	return groth16.Verify(proof, vk, witness) == nil
}
