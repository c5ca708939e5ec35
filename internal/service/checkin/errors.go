package checkin

import (
	"errors"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrUserNotFound   = errors.New("ticket user not found")
	ErrInvalidCode    = errors.New("malformed ticket code")

	// ErrTicketNotCheckedIn is returned when reverting a check-in that never
	// happened.
	ErrTicketNotCheckedIn = errors.New("ticket user is not checked in")
)
