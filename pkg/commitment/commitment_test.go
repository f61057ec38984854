package commitment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueDeterministic(t *testing.T) {
	a := Value(42)
	b := Value(42)
	c := Value(43)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestValuesOverSequence(t *testing.T) {
	a := Values([]uint64{1, 2, 3})
	b := Values([]uint64{1, 2, 3})
	c := Values([]uint64{3, 2, 1})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "order must matter for the sequence commitment")
}

func TestImprovementRoundTrip(t *testing.T) {
	commit := Improvement(5, 8)
	newVal, err := ValidateImprovement(commit, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), newVal)
}

func TestImprovementRejectsWrongOld(t *testing.T) {
	commit := Improvement(5, 8)
	_, err := ValidateImprovement(commit, 2)
	assert.Error(t, err)
}

func TestImprovementRejectsShortCommitment(t *testing.T) {
	_, err := ValidateImprovement([]byte{1, 2, 3}, 5)
	assert.Error(t, err)
}

func TestImprovementRejectsOverflow(t *testing.T) {
	commit := Improvement(0, 1)
	// Hand-craft a commitment whose diff would overflow old+diff.
	corrupt := make([]byte, 16)
	copy(corrupt, commit)
	for i := range corrupt[0:8] {
		corrupt[i] = 0xFF
	}
	_, err := ValidateImprovement(corrupt, 1)
	assert.Error(t, err)
}
