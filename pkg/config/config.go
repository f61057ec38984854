// Package config owns the library's single piece of environment-driven
// configuration: the directory the SRS manager (C10) persists Groth16
// proving/verifying keys under, per §6. There is no reflection-based
// binding here; it is a plain struct populated from os.Getenv, matching
// the teacher's style for small, explicit configuration surfaces.
package config

import (
	"os"

	"github.com/Lumina-Group/libzkp/pkg/srs"
)

// Config is the library's full set of environment-derived settings.
type Config struct {
	// SNARKKeyDir is the directory pkg/srs loads cached proving/verifying
	// keys from and persists freshly generated ones to. Empty means
	// "generate in memory every process, never persist" (§4.10).
	SNARKKeyDir string
}

// Load reads configuration from the environment, applying the documented
// defaults. pkg/srs reads the same variable (srs.EnvKeyDir) directly, so
// a caller never has to route key-dir configuration through this
// package; Load exists for callers that want the whole library's
// configuration surface in one place (e.g. a CLI flag default).
func Load() Config {
	return Config{
		SNARKKeyDir: os.Getenv(srs.EnvKeyDir),
	}
}
