package model

import "errors"

var (
	ErrInvalidInterval  = errors.New("invalid time interval")
	ErrInvalidRating    = errors.New("rating must be between 0 and 10")
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidWeekday   = errors.New("invalid weekday code")
	ErrInvalidRecord    = errors.New("invalid catalog record")
	ErrDuplicateSection = errors.New("duplicate section")
)
