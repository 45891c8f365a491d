package profile

import "errors"

// Sentinel kinds for profile errors.
var (
	ErrDuplicateProfile = errors.New("duplicate breed profile")
	ErrInvalidProfile   = errors.New("invalid breed profile")
)
