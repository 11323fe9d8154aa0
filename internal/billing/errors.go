package billing

import "errors"

var ErrInvalidPeriod = errors.New("invalid rental period")
