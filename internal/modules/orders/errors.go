package orders

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrDuplicateNumber   = errors.New("order number already exists")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidCompletion = errors.New("completion cannot precede opening")
	ErrAlreadyCompleted  = errors.New("order already completed")
)
