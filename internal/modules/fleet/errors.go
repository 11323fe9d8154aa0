package fleet

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("vehicle not found")
	ErrInUse      = errors.New("vehicle is currently rented")
)
