package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Run guards return these
// (optionally wrapped) so callers can classify them:
// - ErrAlreadyHeld: an exclusive lease (sync run lock) is owned by someone else
// - ErrUnavailable: backing service or upstream temporarily unavailable
//
// For validation errors (bad input, broken invariants), use pkg/domain-errors directly.
var (
	ErrAlreadyHeld = errors.New("already held")
	ErrUnavailable = errors.New("unavailable")
)
