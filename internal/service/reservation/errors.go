package reservation

import (
	"errors"
)

var (
	ErrPartyNotFound         = errors.New("party not found")
	ErrPreconditionNotFound  = errors.New("seat reservation precondition not found")
	ErrPreconditionExists    = errors.New("seat reservation precondition already exists")
	ErrInvalidTicketQuantity = errors.New("minimum ticket quantity must be positive")
)
