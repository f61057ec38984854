package envelope

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	proof := bytes.Repeat([]byte{0xAB}, 128)
	commit := bytes.Repeat([]byte{0xCD}, 32)

	data, err := Encode(SchemeRange, proof, commit)
	require.NoError(t, err)

	env, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Version, env.Version)
	assert.Equal(t, SchemeRange, env.Scheme)
	assert.Equal(t, proof, env.Proof)
	assert.Equal(t, commit, env.Commitment)
	assert.True(t, env.Matches(SchemeRange))
	assert.False(t, env.Matches(SchemeEquality))
}

func TestEncodeRejectsOversizeProof(t *testing.T) {
	proof := make([]byte, MaxProofBytes+1)
	_, err := Encode(SchemeRange, proof, nil)
	assert.Error(t, err)
}

func TestEncodeRejectsOversizeCommitment(t *testing.T) {
	commit := make([]byte, MaxCommitmentBytes+1)
	_, err := Encode(SchemeRange, []byte("x"), commit)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedHeader(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestDecodeRejectsInconsistentLengths(t *testing.T) {
	data, err := Encode(SchemeEquality, []byte("abc"), []byte("xy"))
	require.NoError(t, err)
	// Truncate the trailing commitment byte without updating the header.
	corrupt := data[:len(data)-1]
	_, err = Decode(corrupt)
	assert.Error(t, err)
}

func TestDecodeRejectsDeclaredLengthOverflow(t *testing.T) {
	data, err := Encode(SchemeEquality, []byte("abc"), []byte("xy"))
	require.NoError(t, err)
	// Corrupt the proof_len field to claim more than MaxProofBytes.
	data[2] = 0xFF
	data[3] = 0xFF
	data[4] = 0xFF
	data[5] = 0xFF
	_, err = Decode(data)
	assert.Error(t, err)
}
