package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDecomposeRoundTrip(t *testing.T) {
	envelopes := [][]byte{[]byte("envelope-one"), []byte("envelope-two")}
	metadata := map[string][]byte{"purpose": []byte("test")}

	data, err := Compose(envelopes, metadata)
	require.NoError(t, err)

	c, err := Decompose(data)
	require.NoError(t, err)
	assert.Equal(t, envelopes, c.Envelopes)
	assert.Equal(t, metadata, c.Metadata)
	assert.True(t, VerifyIntegrity(data))
}

func TestComposeRejectsEmpty(t *testing.T) {
	_, err := Compose(nil, nil)
	assert.Error(t, err)
}

func TestComposeWithMetadataSingleProof(t *testing.T) {
	data, err := ComposeWithMetadata([]byte("envelope"), map[string][]byte{"k": []byte("v")})
	require.NoError(t, err)
	c, err := Decompose(data)
	require.NoError(t, err)
	assert.Len(t, c.Envelopes, 1)
	assert.Equal(t, []byte("v"), c.Metadata["k"])
}

func TestAddMetadataPreservesIntegrity(t *testing.T) {
	data, err := Compose([][]byte{[]byte("a")}, nil)
	require.NoError(t, err)

	updated, err := AddMetadata(data, "added", []byte("later"))
	require.NoError(t, err)
	assert.True(t, VerifyIntegrity(updated))

	c, err := Decompose(updated)
	require.NoError(t, err)
	assert.Equal(t, []byte("later"), c.Metadata["added"])
}

func TestVerifyIntegrityDetectsTamperedDigest(t *testing.T) {
	data, err := Compose([][]byte{[]byte("a")}, nil)
	require.NoError(t, err)
	tampered := append([]byte(nil), data...)
	tampered[len(tampered)-1] ^= 0xFF
	assert.False(t, VerifyIntegrity(tampered))
}

func TestDecomposeRejectsBadMagic(t *testing.T) {
	_, err := Decompose([]byte("NOTCOMPOSITEDATA12345678"))
	assert.Error(t, err)
}
