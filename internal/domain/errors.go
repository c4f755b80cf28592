package domain

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// ErrOrderNotPayable is returned when payment confirmation arrives for an
	// order that already left the pending state.
	ErrOrderNotPayable = errors.New("order already processed")
)
