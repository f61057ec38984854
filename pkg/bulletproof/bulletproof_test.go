package bulletproof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeProveVerify(t *testing.T) {
	blob, err := ProveRange(42, 0, 100)
	require.NoError(t, err)
	assert.True(t, VerifyRange(blob, 0, 100))
	assert.False(t, VerifyRange(blob, 0, 10), "verifying with a different max must fail")
	assert.False(t, VerifyRange(blob, 50, 100), "verifying with a different min must fail")
}

func TestRangeRejectsOutOfBoundsValue(t *testing.T) {
	_, err := ProveRange(200, 0, 100)
	assert.Error(t, err)
}

func TestRangeEnvelopeSplitRoundTrip(t *testing.T) {
	blob, err := ProveRange(10, 0, 20)
	require.NoError(t, err)
	proof, commit, err := SplitForEnvelope(blob)
	require.NoError(t, err)
	recombined := RecombineEnvelope(proof, commit)
	assert.Equal(t, blob, recombined)
	assert.True(t, VerifyRange(recombined, 0, 20))
}

func TestThresholdProveVerify(t *testing.T) {
	blob, err := ProveThreshold(100, 60)
	require.NoError(t, err)
	assert.True(t, VerifyThreshold(blob, 60))
	assert.False(t, VerifyThreshold(blob, 90))
}

func TestThresholdRejectsBelowThreshold(t *testing.T) {
	_, err := ProveThreshold(10, 60)
	assert.Error(t, err)
}

func TestConsistencyProveVerify(t *testing.T) {
	blob, err := ProveConsistency([]uint64{1, 2, 2, 9})
	require.NoError(t, err)
	assert.True(t, VerifyConsistency(blob))
}

func TestConsistencyRejectsDecreasing(t *testing.T) {
	_, err := ProveConsistency([]uint64{5, 1})
	assert.Error(t, err)
}

func TestConsistencyRejectsTooLong(t *testing.T) {
	data := make([]uint64, MaxConsistencyLen+1)
	for i := range data {
		data[i] = uint64(i)
	}
	_, err := ProveConsistency(data)
	assert.Error(t, err)
}

func TestConsistencyTamperedProofFails(t *testing.T) {
	blob, err := ProveConsistency([]uint64{1, 2, 3})
	require.NoError(t, err)
	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0xFF
	assert.False(t, VerifyConsistency(tampered))
}

func TestMembershipProveVerify(t *testing.T) {
	set := []uint64{5, 10, 15, 20}
	blob, err := ProveMembership(15, set)
	require.NoError(t, err)
	assert.True(t, VerifyMembership(blob, set))

	// Order-insensitive.
	reordered := []uint64{20, 15, 10, 5}
	assert.True(t, VerifyMembership(blob, reordered))

	assert.False(t, VerifyMembership(blob, []uint64{1, 2, 3}))
}

func TestMembershipRejectsNonMember(t *testing.T) {
	_, err := ProveMembership(99, []uint64{1, 2, 3})
	assert.Error(t, err)
}

func TestMembershipRejectsEmptySet(t *testing.T) {
	_, err := ProveMembership(1, nil)
	assert.Error(t, err)
}
