package seating

import (
	"errors"

	"github.com/kirinyoku/seatkeeper/internal/repository"
)

var (
	ErrPartyNotFound    = errors.New("party not found")
	ErrAreaNotFound     = errors.New("seating area not found")
	ErrSeatNotFound     = errors.New("seat not found")
	ErrCategoryNotFound = errors.New("ticket category not found")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrBundleNotFound   = errors.New("ticket bundle not found")
	ErrGroupNotFound    = errors.New("seat group not found")
	ErrAreaExists       = errors.New("seating area already exists")
	ErrGroupExists      = errors.New("seat group already exists")

	// ErrTicketOccupiesNoSeat is returned when releasing the seat of a ticket
	// that has none. It is a caller error, not a business-rule violation.
	ErrTicketOccupiesNoSeat = errors.New("ticket occupies no seat")

	ErrSeatInUse     = errors.New("seat is occupied or belongs to a seat group")
	ErrGroupOccupied = errors.New("seat group is occupied")
)

// mapNotFound replaces a repository miss with the service's own sentinel.
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}
