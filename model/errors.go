package model

import "github.com/pkg/errors"

// Error kinds reported by Grid operations. Operations wrap them with context,
// so callers should match with errors.Is.
var (
	// ErrOutOfRange is returned for a row, column or cell number outside the grid
	ErrOutOfRange = errors.New("out of range")
	// ErrMalformedInput is returned when loaded dimensions and cell data disagree
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidArgument is returned for non-positive sizes and negative generation counts
	ErrInvalidArgument = errors.New("invalid argument")
)
