package snark

import (
	"testing"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumina-Group/libzkp/pkg/commitment"
)

func TestEqualityProveVerify(t *testing.T) {
	cs, err := frontend.Compile(Curve.ScalarField(), r1cs.NewBuilder, DummyEquality())
	require.NoError(t, err)
	pk, vk, err := groth16.Setup(cs)
	require.NoError(t, err)

	commit := commitment.Value(7)
	proof, err := ProveEquality(pk, cs, 7, 7, commit)
	require.NoError(t, err)
	assert.True(t, VerifyEquality(vk, proof, commit))
}

func TestEqualityVerifyRejectsWrongCommitment(t *testing.T) {
	cs, err := frontend.Compile(Curve.ScalarField(), r1cs.NewBuilder, DummyEquality())
	require.NoError(t, err)
	pk, vk, err := groth16.Setup(cs)
	require.NoError(t, err)

	commit := commitment.Value(7)
	proof, err := ProveEquality(pk, cs, 7, 7, commit)
	require.NoError(t, err)

	wrongCommit := commitment.Value(8)
	assert.False(t, VerifyEquality(vk, proof, wrongCommit))
}

func TestMembershipProveVerify(t *testing.T) {
	cs, err := frontend.Compile(Curve.ScalarField(), r1cs.NewBuilder, DummyMembership())
	require.NoError(t, err)
	pk, vk, err := groth16.Setup(cs)
	require.NoError(t, err)

	set := []uint64{1, 2, 3, 4}
	commit := commitment.Value(3)
	proof, err := ProveMembership(pk, cs, 3, set, commit)
	require.NoError(t, err)
	assert.True(t, VerifyMembership(vk, proof, commit, set))
}

func TestMembershipProveRejectsNonMember(t *testing.T) {
	cs, err := frontend.Compile(Curve.ScalarField(), r1cs.NewBuilder, DummyMembership())
	require.NoError(t, err)
	pk, _, err := groth16.Setup(cs)
	require.NoError(t, err)

	commit := commitment.Value(99)
	_, err = ProveMembership(pk, cs, 99, []uint64{1, 2, 3}, commit)
	assert.Error(t, err)
}

func TestMembershipProveRejectsOversizeSet(t *testing.T) {
	cs, err := frontend.Compile(Curve.ScalarField(), r1cs.NewBuilder, DummyMembership())
	require.NoError(t, err)
	pk, _, err := groth16.Setup(cs)
	require.NoError(t, err)

	set := make([]uint64, MaxSetSize+1)
	for i := range set {
		set[i] = uint64(i)
	}
	commit := commitment.Value(0)
	_, err = ProveMembership(pk, cs, 0, set, commit)
	assert.Error(t, err)
}
