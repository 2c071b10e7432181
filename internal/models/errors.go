package models

import "errors"

// ErrValidation is wrapped by every Validate method so callers can tell a rejected
// input apart from a storage or I/O failure.
var ErrValidation = errors.New("validation failed")
