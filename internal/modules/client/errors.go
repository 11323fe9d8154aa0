package client

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("client not found")
)
