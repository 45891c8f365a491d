package adapt

import "errors"

// Sentinel kinds for adaptation errors.
//
// ErrOutOfRangeParameter is never returned from the evaluation path; it is
// surfaced only by Validate, which tests run against snapshots. Observing
// it indicates a coefficient-table bug, not a runtime condition.
var (
	ErrOutOfRangeParameter = errors.New("adaptation parameter out of range")
)
