// Package validate implements the input predicates of C3: the checks
// every prove-path runs before invoking a cryptographic engine. A
// failure here is always fatal to a prove call and is reported through
// pkg/zkperr; verify-paths never call into this package directly for
// on-wire payloads (only to recompute expected values), so a predicate
// violation at verify time collapses to false at the façade, not here.
package validate

import "github.com/Lumina-Group/libzkp/pkg/zkperr"

// Range checks min <= value <= max and min <= max.
func Range(value, min, max uint64) error {
	if min > max {
		return zkperr.New(zkperr.InvalidInput, "min (%d) greater than max (%d)", min, max)
	}
	if value < min || value > max {
		return zkperr.New(zkperr.InvalidInput, "value %d not in range [%d, %d]", value, min, max)
	}
	return nil
}

// Threshold checks that values is nonempty, that its sum does not
// overflow u64 (IntegerOverflow), and that the sum meets threshold
// (InvalidInput otherwise, per §8 S3). It returns the sum; when only the
// threshold check fails, the sum is returned alongside the error.
func Threshold(values []uint64, threshold uint64) (sum uint64, err error) {
	if len(values) == 0 {
		return 0, zkperr.New(zkperr.InvalidInput, "threshold values must be nonempty")
	}
	for _, v := range values {
		next := sum + v
		if next < sum {
			return 0, zkperr.New(zkperr.IntegerOverflow, "sum of threshold values overflows u64")
		}
		sum = next
	}
	if sum < threshold {
		return sum, zkperr.New(zkperr.InvalidInput, "sum %d below threshold %d", sum, threshold)
	}
	return sum, nil
}

// Membership checks that set is nonempty; it does not check that value
// is a member (prove_membership fails on its own if the witness does not
// satisfy the circuit/proof).
func Membership(set []uint64) error {
	if len(set) == 0 {
		return zkperr.New(zkperr.InvalidInput, "membership set must be nonempty")
	}
	return nil
}

// Improvement checks new > old.
func Improvement(old, new uint64) error {
	if new <= old {
		return zkperr.New(zkperr.InvalidInput, "new value (%d) must be greater than old value (%d)", new, old)
	}
	return nil
}

// Consistency checks data is nonempty and monotone nondecreasing.
func Consistency(data []uint64) error {
	if len(data) == 0 {
		return zkperr.New(zkperr.InvalidInput, "consistency data must be nonempty")
	}
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return zkperr.New(zkperr.InvalidInput, "data[%d]=%d is less than data[%d]=%d: sequence not monotone nondecreasing", i, data[i], i-1, data[i-1])
		}
	}
	return nil
}

// Equality checks a == b.
func Equality(a, b uint64) error {
	if a != b {
		return zkperr.New(zkperr.InvalidInput, "values %d and %d are not equal", a, b)
	}
	return nil
}
