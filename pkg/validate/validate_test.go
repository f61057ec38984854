package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	assert.NoError(t, Range(5, 1, 10))
	assert.Error(t, Range(0, 1, 10))
	assert.Error(t, Range(5, 10, 1))
}

func TestThreshold(t *testing.T) {
	sum, err := Threshold([]uint64{3, 4, 5}, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), sum)

	_, err = Threshold(nil, 1)
	assert.Error(t, err)

	_, err = Threshold([]uint64{1, 2}, 10)
	assert.Error(t, err)
}

func TestThresholdOverflow(t *testing.T) {
	maxU64 := ^uint64(0)
	_, err := Threshold([]uint64{maxU64, 1}, 0)
	assert.Error(t, err)
}

func TestMembership(t *testing.T) {
	assert.NoError(t, Membership([]uint64{1, 2, 3}))
	assert.Error(t, Membership(nil))
}

func TestImprovement(t *testing.T) {
	assert.NoError(t, Improvement(1, 2))
	assert.Error(t, Improvement(2, 2))
	assert.Error(t, Improvement(3, 2))
}

func TestConsistency(t *testing.T) {
	assert.NoError(t, Consistency([]uint64{1, 2, 2, 5}))
	assert.Error(t, Consistency(nil))
	assert.Error(t, Consistency([]uint64{5, 1}))
}

func TestEquality(t *testing.T) {
	assert.NoError(t, Equality(7, 7))
	assert.Error(t, Equality(7, 8))
}
