// Package batch implements the batch registry and parallel dispatcher
// (C9): a process-wide map from external handle to a growing list of
// typed predicate operations, consumed exactly once by Process, plus a
// standalone VerifyParallel that needs no registry at all, per spec
// §4.9 and §5.
package batch

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lumina-Group/libzkp/pkg/envelope"
	"github.com/Lumina-Group/libzkp/pkg/zkp"
)

// maxBatchWorkers bounds the goroutine pool Process drains operations
// through; it never spawns more workers than there are operations.
const maxBatchWorkers = 8

type opKind uint8

const (
	kindRange opKind = iota + 1
	kindEquality
	kindThreshold
	kindMembership
	kindImprovement
	kindConsistency
)

type operation struct {
	kind opKind

	value, min, max uint64 // range
	a, b            uint64 // equality
	values          []uint64
	threshold       uint64 // threshold: values, threshold
	membershipValue uint64
	set             []uint64 // membership: membershipValue, set
	old, new        uint64   // improvement
	data            []uint64 // consistency
}

type pendingBatch struct {
	ops       []operation
	createdAt time.Time
	seq       uint64
}

// Registry is a process-wide collection of in-flight batches, keyed by
// an opaque external handle. The zero value is not usable; use NewRegistry
// or the package-level Default.
type Registry struct {
	mu      sync.Mutex
	batches map[string]*pendingBatch
	nextSeq uint64
}

// NewRegistry constructs an empty batch registry.
func NewRegistry() *Registry {
	return &Registry{batches: make(map[string]*pendingBatch)}
}

// Default is the process-wide registry predicate batch operations use.
var Default = NewRegistry()

// Create allocates a fresh, empty batch and returns its external handle.
// The batch's internal sequence number is drawn from a monotonic counter
// incremented under the same lock that guards the batch map, so
// concurrent Create calls never observe or assign duplicate sequence
// numbers (§5: "batch ids are monotonically allocated under the same
// lock"). The external handle itself is a UUID, chosen so callers cannot
// infer the sequence number or total batch count from it; the sequence
// number is reported by Status.
func (r *Registry) Create() string {
	id := uuid.NewString()
	r.mu.Lock()
	seq := r.nextSeq
	r.nextSeq++
	r.batches[id] = &pendingBatch{createdAt: time.Now(), seq: seq}
	r.mu.Unlock()
	return id
}

func (r *Registry) add(id string, op operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBatch, id)
	}
	b.ops = append(b.ops, op)
	return nil
}

// AddRange appends a range-proof operation to batch id.
func (r *Registry) AddRange(id string, value, min, max uint64) error {
	return r.add(id, operation{kind: kindRange, value: value, min: min, max: max})
}

// AddEquality appends an equality-proof operation to batch id.
func (r *Registry) AddEquality(id string, a, b uint64) error {
	return r.add(id, operation{kind: kindEquality, a: a, b: b})
}

// AddThreshold appends a threshold-proof operation to batch id.
func (r *Registry) AddThreshold(id string, values []uint64, threshold uint64) error {
	return r.add(id, operation{kind: kindThreshold, values: append([]uint64(nil), values...), threshold: threshold})
}

// AddMembership appends a membership-proof operation to batch id.
func (r *Registry) AddMembership(id string, value uint64, set []uint64) error {
	return r.add(id, operation{kind: kindMembership, membershipValue: value, set: append([]uint64(nil), set...)})
}

// AddImprovement appends an improvement-proof operation to batch id.
func (r *Registry) AddImprovement(id string, old, new uint64) error {
	return r.add(id, operation{kind: kindImprovement, old: old, new: new})
}

// AddConsistency appends a consistency-proof operation to batch id.
func (r *Registry) AddConsistency(id string, data []uint64) error {
	return r.add(id, operation{kind: kindConsistency, data: append([]uint64(nil), data...)})
}

// Status reports the total operation count and per-kind breakdown for
// batch id, without consuming it.
func (r *Registry) Status(id string) (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return Stats{}, fmt.Errorf("%w: %q", ErrUnknownBatch, id)
	}
	return statsFor(b), nil
}

// IsStale reports whether batch id was created more than after ago.
func (r *Registry) IsStale(id string, after time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownBatch, id)
	}
	return time.Since(b.createdAt) > after, nil
}

// Clear removes batch id from the registry without processing it.
// Clearing an already-removed or unknown id errors.
func (r *Registry) Clear(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBatch, id)
	}
	delete(r.batches, id)
	return nil
}

// Process atomically removes batch id from the registry, then proves
// every operation across a bounded pool of worker goroutines draining a
// shared job channel, preserving input order in the returned envelopes.
// The lock is never held across cryptographic work (§5). Any single
// operation's failure aborts the whole batch; partial results are never
// returned.
func (r *Registry) Process(id string) ([][]byte, error) {
	r.mu.Lock()
	b, ok := r.batches[id]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrUnknownBatch, id)
	}
	delete(r.batches, id)
	r.mu.Unlock()

	if len(b.ops) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyBatch, id)
	}

	results := make([][]byte, len(b.ops))
	errs := make([]error, len(b.ops))

	workers := maxBatchWorkers
	if n := runtime.GOMAXPROCS(0); n < workers {
		workers = n
	}
	if len(b.ops) < workers {
		workers = len(b.ops)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = proveOne(b.ops[i])
			}
		}()
	}
	for i := range b.ops {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func proveOne(op operation) ([]byte, error) {
	switch op.kind {
	case kindRange:
		return zkp.ProveRange(op.value, op.min, op.max)
	case kindEquality:
		return zkp.ProveEquality(op.a, op.b)
	case kindThreshold:
		return zkp.ProveThreshold(op.values, op.threshold)
	case kindMembership:
		return zkp.ProveMembership(op.membershipValue, op.set)
	case kindImprovement:
		return zkp.ProveImprovement(op.old, op.new)
	case kindConsistency:
		return zkp.ProveConsistency(op.data)
	default:
		return nil, fmt.Errorf("%w: kind=%d", ErrUnknownOpKind, op.kind)
	}
}

// VerifyRequest is the self-contained "type_tag" of §4.9's parallel
// verifier: each request carries both the envelope and every
// verifier-known public input its predicate needs, since the registry
// is never consulted during verification.
type VerifyRequest struct {
	Envelope []byte
	Scheme   envelope.Scheme

	Min, Max  uint64   // range
	A, B      uint64   // equality
	Threshold uint64   // threshold
	Set       []uint64 // membership
	Old       uint64   // improvement
}

// VerifyParallel verifies independent envelopes concurrently, preserving
// the input order of the returned booleans. It consults no registry.
func VerifyParallel(reqs []VerifyRequest) []bool {
	out := make([]bool, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req VerifyRequest) {
			defer wg.Done()
			out[i] = verifyOne(req)
		}(i, req)
	}
	wg.Wait()
	return out
}

func verifyOne(req VerifyRequest) bool {
	switch req.Scheme {
	case envelope.SchemeRange:
		return zkp.VerifyRange(req.Envelope, req.Min, req.Max)
	case envelope.SchemeEquality:
		return zkp.VerifyEquality(req.Envelope, req.A, req.B)
	case envelope.SchemeThreshold:
		return zkp.VerifyThreshold(req.Envelope, req.Threshold)
	case envelope.SchemeMembership:
		return zkp.VerifyMembership(req.Envelope, req.Set)
	case envelope.SchemeImprovement:
		return zkp.VerifyImprovement(req.Envelope, req.Old)
	case envelope.SchemeConsistency:
		return zkp.VerifyConsistency(req.Envelope)
	default:
		return false
	}
}
