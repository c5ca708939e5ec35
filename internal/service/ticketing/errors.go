package ticketing

import (
	"errors"
)

var (
	ErrPartyNotFound    = errors.New("party not found")
	ErrCategoryNotFound = errors.New("ticket category not found")
	ErrCategoryExists   = errors.New("ticket category already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrBundleNotFound   = errors.New("ticket bundle not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidCode      = errors.New("malformed ticket code")

	// ErrTicketCreationFailed means no set of fresh codes could be persisted
	// within the retry budget.
	ErrTicketCreationFailed = errors.New("ticket creation failed")
)
