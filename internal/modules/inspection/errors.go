package inspection

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotFound            = errors.New("inspection not found")
	ErrAlreadyCheckedIn    = errors.New("reservation already checked in")
	ErrNotCheckedIn        = errors.New("reservation not checked in")
	ErrInvalidStatus       = errors.New("reservation status does not allow this operation")
	ErrLocked              = errors.New("settlement is locked")
	ErrChargeNotFound      = errors.New("fixed charge not found")
)
