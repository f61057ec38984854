package batch

import "errors"

// Sentinel errors for the batch registry (C9), matched via errors.Is.
var (
	ErrUnknownBatch  = errors.New("batch not found")
	ErrEmptyBatch    = errors.New("batch has no operations")
	ErrUnknownOpKind = errors.New("unknown batch operation kind")
)
