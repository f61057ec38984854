// Package srs implements the SRS directory manager (C10): one-time
// Groth16 setup, load-or-generate, atomic on-disk caching of proving and
// verifying keys per circuit, per spec §4.10.
package srs

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/Lumina-Group/libzkp/pkg/snark"
	"github.com/Lumina-Group/libzkp/pkg/zkperr"
)

// EnvKeyDir is the environment variable that seeds the key directory at
// first use, per §6.
const EnvKeyDir = "LIBZKP_SNARK_KEY_DIR"

// circuitName identifies one of the two Groth16 circuits this manager
// caches an SRS for.
type circuitName string

const (
	circuitEquality   circuitName = "equality"
	circuitMembership circuitName = "membership"
)

type cell struct {
	once sync.Once
	pk   groth16.ProvingKey
	vk   groth16.VerifyingKey
	cs   constraint.ConstraintSystem
	err  error
}

// Manager holds the optional key directory and the two per-circuit
// cells. The zero value is ready to use.
type Manager struct {
	mu      sync.Mutex
	dir     string
	dirSet  bool
	equality   cell
	membership cell
}

// Default is the process-wide manager instance predicate operations use,
// mirroring the "process-wide registry" language of §5.
var Default = &Manager{}

// SetKeyDir configures the SRS directory. It is accepted only before
// either circuit has been initialised, and only if the directory is
// currently unset or already equal to path; conflicting resets are a
// ConfigError, per §4.10.
func (m *Manager) SetKeyDir(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	equalityStarted := isStarted(&m.equality)
	membershipStarted := isStarted(&m.membership)
	if equalityStarted || membershipStarted {
		return zkperr.New(zkperr.ConfigError, "cannot set key dir after a circuit has been initialised")
	}
	if m.dirSet && m.dir != path {
		return zkperr.New(zkperr.ConfigError, "key dir already set to %q, cannot reset to %q", m.dir, path)
	}
	m.dir = path
	m.dirSet = true
	return nil
}

func isStarted(c *cell) bool {
	// sync.Once has no public "done" query; track via whether pk/vk/err
	// were ever populated. Cells are only mutated inside Once.Do, so a
	// data race here would require calling isStarted concurrently with
	// the very Do that mutates it, which the mutex around SetKeyDir
	// prevents for the setter's own check; readers of pk/vk/err after
	// Once.Do has completed always observe a consistent snapshot.
	return c.pk != nil || c.vk != nil || c.err != nil
}

// IsInitialized reports whether both circuits' cells have been resolved
// (successfully or with a cached error).
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return isStarted(&m.equality) && isStarted(&m.membership)
}

func (m *Manager) seedFromEnv() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirSet {
		if v := os.Getenv(EnvKeyDir); v != "" {
			m.dir = v
			m.dirSet = true
		}
	}
}

// Equality returns the cached (or freshly generated) SRS for the
// equality circuit.
func (m *Manager) Equality() (groth16.ProvingKey, groth16.VerifyingKey, constraint.ConstraintSystem, error) {
	m.seedFromEnv()
	return m.resolve(&m.equality, circuitEquality, snark.DummyEquality())
}

// Membership returns the cached (or freshly generated) SRS for the
// membership circuit.
func (m *Manager) Membership() (groth16.ProvingKey, groth16.VerifyingKey, constraint.ConstraintSystem, error) {
	m.seedFromEnv()
	return m.resolve(&m.membership, circuitMembership, snark.DummyMembership())
}

func (m *Manager) resolve(c *cell, name circuitName, dummy frontend.Circuit) (groth16.ProvingKey, groth16.VerifyingKey, constraint.ConstraintSystem, error) {
	c.once.Do(func() {
		cs, err := frontend.Compile(snark.Curve.ScalarField(), r1cs.NewBuilder, dummy)
		if err != nil {
			c.err = zkperr.New(zkperr.BackendError, "compile %s circuit: %v", name, err)
			return
		}
		c.cs = cs

		m.mu.Lock()
		dir, dirSet := m.dir, m.dirSet
		m.mu.Unlock()

		if dirSet {
			pk, vk, loadErr := loadKeys(dir, name)
			if loadErr == nil {
				c.pk, c.vk = pk, vk
				return
			}
		}

		pk, vk, err := groth16.Setup(cs)
		if err != nil {
			c.err = zkperr.New(zkperr.BackendError, "groth16 setup for %s: %v", name, err)
			return
		}
		c.pk, c.vk = pk, vk

		if dirSet {
			_ = saveKeys(dir, name, pk, vk) // persistence failures are swallowed; keys stay cached in memory
		}
	})
	if c.err != nil {
		return nil, nil, nil, c.err
	}
	return c.pk, c.vk, c.cs, nil
}

func pkPath(dir string, name circuitName) string { return filepath.Join(dir, string(name)+"_pk.bin") }
func vkPath(dir string, name circuitName) string { return filepath.Join(dir, string(name)+"_vk.bin") }

func loadKeys(dir string, name circuitName) (groth16.ProvingKey, groth16.VerifyingKey, error) {
	pkFile, err := os.Open(pkPath(dir, name))
	if err != nil {
		return nil, nil, err
	}
	defer pkFile.Close()
	vkFile, err := os.Open(vkPath(dir, name))
	if err != nil {
		return nil, nil, err
	}
	defer vkFile.Close()

	pk := groth16.NewProvingKey(snark.Curve)
	if _, err := pk.ReadFrom(pkFile); err != nil {
		return nil, nil, err
	}
	vk := groth16.NewVerifyingKey(snark.Curve)
	if _, err := vk.ReadFrom(vkFile); err != nil {
		return nil, nil, err
	}
	return pk, vk, nil
}

func saveKeys(dir string, name circuitName, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	pkFile, err := os.Create(pkPath(dir, name))
	if err != nil {
		return err
	}
	defer pkFile.Close()
	if _, err := pk.WriteTo(pkFile); err != nil {
		return err
	}
	vkFile, err := os.Create(vkPath(dir, name))
	if err != nil {
		return err
	}
	defer vkFile.Close()
	_, err = vk.WriteTo(vkFile)
	return err
}
