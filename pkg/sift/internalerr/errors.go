package internalerr

import "errors"

// Sentinel errors for configuration failures. Token streams never return errors;
// everything that can go wrong does so while building tokenizers and filters.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate entry")
)
