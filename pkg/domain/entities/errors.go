package entities

import "errors"

// Sentinel errors shared by the resolver, the stock checker and their callers.
// Wrap them with context and match with errors.Is.
var (
	// ErrInvalidInput reports a non-positive production quantity or yield,
	// or a required mass that is not a finite non-negative number.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedRecipe reports a percentage recipe that cannot be resolved:
	// no base percentage, or no usable base mass.
	ErrMalformedRecipe = errors.New("malformed recipe")
	// ErrNotFound is returned by repositories for unknown IDs.
	ErrNotFound = errors.New("not found")
)
