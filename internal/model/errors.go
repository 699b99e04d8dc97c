package model

import "errors"

// Input validation failures. They are detected before any series generation
// and never come with partial output.
var (
	ErrInvalidRange   = errors.New("invalid date range")
	ErrInvalidNode    = errors.New("invalid node")
	ErrEmptySelection = errors.New("no market selected")
)
