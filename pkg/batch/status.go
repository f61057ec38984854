package batch

import "time"

// Stats summarises a batch's pending operations by predicate kind, per
// §4.9's status(id) -> {total, per-kind counts}.
type Stats struct {
	Total       int
	Range       int
	Equality    int
	Threshold   int
	Membership  int
	Improvement int
	Consistency int
	CreatedAt   time.Time

	// SequenceID is the monotonic allocation order of the batch (§5),
	// not an index into its operations.
	SequenceID uint64
}

// Age reports how long ago the batch was created.
func (s Stats) Age() time.Duration {
	return time.Since(s.CreatedAt)
}

func statsFor(b *pendingBatch) Stats {
	s := Stats{CreatedAt: b.createdAt, SequenceID: b.seq}
	for _, op := range b.ops {
		switch op.kind {
		case kindRange:
			s.Range++
		case kindEquality:
			s.Equality++
		case kindThreshold:
			s.Threshold++
		case kindMembership:
			s.Membership++
		case kindImprovement:
			s.Improvement++
		case kindConsistency:
			s.Consistency++
		}
	}
	s.Total = len(b.ops)
	return s
}
