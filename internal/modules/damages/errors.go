package damages

import "errors"

var (
	ErrNotFound        = errors.New("damage not found")
	ErrInvalidSeverity = errors.New("invalid damage severity")
	ErrInvalidStatus   = errors.New("invalid damage status")
)
