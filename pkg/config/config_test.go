package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lumina-Group/libzkp/pkg/srs"
)

func TestLoadDefaultsToEmpty(t *testing.T) {
	t.Setenv(srs.EnvKeyDir, "")
	cfg := Load()
	assert.Equal(t, "", cfg.SNARKKeyDir)
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv(srs.EnvKeyDir, "/tmp/whatever")
	cfg := Load()
	assert.Equal(t, "/tmp/whatever", cfg.SNARKKeyDir)
}
