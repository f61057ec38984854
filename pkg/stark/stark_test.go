package stark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProveVerifyImprovement(t *testing.T) {
	proof, err := ProveImprovement(1, 8)
	require.NoError(t, err)
	assert.True(t, VerifyImprovement(proof, 1, 8))
}

func TestVerifyRejectsWrongOld(t *testing.T) {
	proof, err := ProveImprovement(1, 8)
	require.NoError(t, err)
	assert.False(t, VerifyImprovement(proof, 2, 8))
}

func TestVerifyRejectsWrongNew(t *testing.T) {
	proof, err := ProveImprovement(1, 8)
	require.NoError(t, err)
	assert.False(t, VerifyImprovement(proof, 1, 9))
}

func TestProveRejectsNonImprovement(t *testing.T) {
	_, err := ProveImprovement(8, 8)
	assert.Error(t, err)
	_, err = ProveImprovement(9, 8)
	assert.Error(t, err)
}

func TestVerifyTamperedProofFails(t *testing.T) {
	proof, err := ProveImprovement(3, 11)
	require.NoError(t, err)
	tampered := append([]byte(nil), proof...)
	tampered[1] ^= 0xFF // corrupt the trace root
	assert.False(t, VerifyImprovement(tampered, 3, 11))
}

func TestVerifyRejectsTruncatedProof(t *testing.T) {
	proof, err := ProveImprovement(3, 11)
	require.NoError(t, err)
	assert.False(t, VerifyImprovement(proof[:5], 3, 11))
}

func TestFieldArithmetic(t *testing.T) {
	a := FromUint64(5)
	b := FromUint64(3)
	sum := Add(a, b)
	assert.Equal(t, FromUint64(8), sum)

	diff := Sub(sum, b)
	assert.Equal(t, a, diff)

	inv, err := Inv(b)
	require.NoError(t, err)
	one := Mul(b, inv)
	assert.Equal(t, FromUint64(1), one)
}
