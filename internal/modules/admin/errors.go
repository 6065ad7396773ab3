package admin

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrCannotDeleteSelf   = errors.New("cannot delete own account")
)
