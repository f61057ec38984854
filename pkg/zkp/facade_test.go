package zkp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeProveVerify(t *testing.T) {
	data, err := ProveRange(42, 0, 100)
	require.NoError(t, err)
	assert.True(t, VerifyRange(data, 0, 100))
	assert.False(t, VerifyRange(data, 0, 10))
}

func TestRangeRejectsOutOfBounds(t *testing.T) {
	_, err := ProveRange(200, 0, 100)
	assert.Error(t, err)
}

func TestThresholdProveVerify(t *testing.T) {
	data, err := ProveThreshold([]uint64{10, 20, 30}, 50)
	require.NoError(t, err)
	assert.True(t, VerifyThreshold(data, 50))
	assert.False(t, VerifyThreshold(data, 100))
}

func TestConsistencyProveVerify(t *testing.T) {
	data, err := ProveConsistency([]uint64{1, 3, 3, 7})
	require.NoError(t, err)
	assert.True(t, VerifyConsistency(data))
}

func TestEqualityProveVerify(t *testing.T) {
	data, err := ProveEquality(5, 5)
	require.NoError(t, err)
	assert.True(t, VerifyEquality(data, 5, 5))
	assert.False(t, VerifyEquality(data, 5, 6))
}

func TestEqualityVerifyRejectsWrongCommitment(t *testing.T) {
	data, err := ProveEquality(5, 5)
	require.NoError(t, err)
	assert.False(t, VerifyEquality(data, 6, 6))
}

func TestEqualityProveRejectsUnequalValues(t *testing.T) {
	_, err := ProveEquality(5, 6)
	assert.Error(t, err)
}

func TestMembershipProveVerify(t *testing.T) {
	set := []uint64{11, 22, 33, 44}
	data, err := ProveMembership(33, set)
	require.NoError(t, err)
	assert.True(t, VerifyMembership(data, set))

	reordered := []uint64{44, 33, 22, 11}
	assert.True(t, VerifyMembership(data, reordered))

	assert.False(t, VerifyMembership(data, []uint64{1, 2, 3}))
}

func TestMembershipProveRejectsNonMember(t *testing.T) {
	_, err := ProveMembership(5, []uint64{1, 2, 3})
	assert.Error(t, err)
}

func TestImprovementProveVerify(t *testing.T) {
	data, err := ProveImprovement(1, 8)
	require.NoError(t, err)
	assert.True(t, VerifyImprovement(data, 1))
	assert.False(t, VerifyImprovement(data, 2))
}

func TestImprovementProveRejectsNonImprovement(t *testing.T) {
	_, err := ProveImprovement(8, 8)
	assert.Error(t, err)
}

func TestCrossSchemeEnvelopeRejected(t *testing.T) {
	rangeData, err := ProveRange(1, 0, 10)
	require.NoError(t, err)
	// A range envelope must never pass as an equality proof.
	assert.False(t, VerifyEquality(rangeData, 1, 1))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	assert.False(t, VerifyRange([]byte("not an envelope"), 0, 10))
	assert.False(t, VerifyEquality([]byte("not an envelope"), 1, 1))
	assert.False(t, VerifyMembership([]byte("not an envelope"), []uint64{1}))
	assert.False(t, VerifyImprovement([]byte("not an envelope"), 1))
	assert.False(t, VerifyThreshold([]byte("not an envelope"), 1))
	assert.False(t, VerifyConsistency([]byte("not an envelope")))
}
