package shape

import "errors"

var (
	// ErrEmptyChain is returned when a segment chain has no segments.
	ErrEmptyChain = errors.New("shape: segment chain is empty")

	// ErrBadDimension is returned when a shape dimension is zero or negative.
	ErrBadDimension = errors.New("shape: dimension must be positive")

	// ErrBadAngle is returned when an angular span is outside its valid range.
	ErrBadAngle = errors.New("shape: invalid angular span")
)
