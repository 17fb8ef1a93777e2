package core

import "errors"

var (
	ErrLengthMismatch = errors.New("dates and values length mismatch")
	ErrUnsortedDates  = errors.New("dates must be strictly ascending and unique")
	ErrBadDate        = errors.New("malformed date")
	ErrInvalidWindow  = errors.New("window must be >= 1")
	ErrInvalidPeriod  = errors.New("period must be >= 1")
)
