package srs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualityCachedAcrossCalls(t *testing.T) {
	m := &Manager{}
	pk1, vk1, cs1, err := m.Equality()
	require.NoError(t, err)
	pk2, vk2, cs2, err := m.Equality()
	require.NoError(t, err)
	assert.Same(t, pk1, pk2)
	assert.Same(t, vk1, vk2)
	assert.Same(t, cs1, cs2)
}

func TestSetKeyDirRejectsAfterInitialised(t *testing.T) {
	m := &Manager{}
	_, _, _, err := m.Equality()
	require.NoError(t, err)
	err = m.SetKeyDir(t.TempDir())
	assert.Error(t, err)
}

func TestSetKeyDirPersistsAndReloads(t *testing.T) {
	dir := t.TempDir()

	m1 := &Manager{}
	require.NoError(t, m1.SetKeyDir(dir))
	pk1, vk1, _, err := m1.Equality()
	require.NoError(t, err)
	assert.NotNil(t, pk1)
	assert.NotNil(t, vk1)

	_, err = os.Stat(filepath.Join(dir, "equality_pk.bin"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "equality_vk.bin"))
	assert.NoError(t, err)

	m2 := &Manager{}
	require.NoError(t, m2.SetKeyDir(dir))
	pk2, vk2, _, err := m2.Equality()
	require.NoError(t, err)
	assert.NotNil(t, pk2)
	assert.NotNil(t, vk2)
}

func TestSeedFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvKeyDir, dir)

	m := &Manager{}
	_, _, _, err := m.Equality()
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "equality_pk.bin"))
	assert.NoError(t, err)
}

func TestIsInitialized(t *testing.T) {
	m := &Manager{}
	assert.False(t, m.IsInitialized())
	_, _, _, err := m.Equality()
	require.NoError(t, err)
	assert.False(t, m.IsInitialized(), "membership circuit not yet resolved")
	_, _, _, err = m.Membership()
	require.NoError(t, err)
	assert.True(t, m.IsInitialized())
}
