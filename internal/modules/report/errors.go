package report

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrReservationNotFound = errors.New("reservation not found")
)
