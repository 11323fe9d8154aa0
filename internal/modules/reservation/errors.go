package reservation

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("reservation not found")
	ErrVehicleNotFound         = errors.New("vehicle not found")
	ErrNotAvailable            = errors.New("vehicle not available")
	ErrOverbooking             = errors.New("overbooking constraint violation")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
