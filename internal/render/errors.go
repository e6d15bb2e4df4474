package render

import "errors"

var (
	// ErrEmptySeries indicates a renderer was given no steps or no points.
	ErrEmptySeries = errors.New("render: nothing to draw")

	// ErrLengthMismatch indicates series whose lengths disagree.
	ErrLengthMismatch = errors.New("render: series length mismatch")

	// ErrInvalidSize indicates a non-positive image size or stride.
	ErrInvalidSize = errors.New("render: invalid image size")
)
