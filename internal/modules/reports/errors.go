package reports

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid report period")
	ErrInvalidMonth  = errors.New("invalid report month")
)
