package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Business-rule violations. They are returned as values and matched with
// errors.As; callers translate them into user-facing messages.

type TicketIsRevokedError struct {
	TicketID uuid.UUID
}

func (e TicketIsRevokedError) Error() string {
	return fmt.Sprintf("ticket %s has been revoked", e.TicketID)
}

type TicketBelongsToDifferentPartyError struct {
	TicketID uuid.UUID
	PartyID  string
}

func (e TicketBelongsToDifferentPartyError) Error() string {
	return fmt.Sprintf("ticket %s does not belong to party %q", e.TicketID, e.PartyID)
}

type TicketLacksUserError struct {
	TicketID uuid.UUID
}

func (e TicketLacksUserError) Error() string {
	return fmt.Sprintf("ticket %s has no user assigned", e.TicketID)
}

type UserAlreadyCheckedInError struct {
	TicketID uuid.UUID
}

func (e UserAlreadyCheckedInError) Error() string {
	return fmt.Sprintf("user of ticket %s has already been checked in", e.TicketID)
}

type UserAccountDeletedError struct {
	UserID uuid.UUID
}

func (e UserAccountDeletedError) Error() string {
	return fmt.Sprintf("user account %s has been deleted", e.UserID)
}

type UserAccountSuspendedError struct {
	UserID uuid.UUID
}

func (e UserAccountSuspendedError) Error() string {
	return fmt.Sprintf("user account %s is suspended", e.UserID)
}

type SeatChangeDeniedForBundledTicketError struct {
	TicketID uuid.UUID
}

func (e SeatChangeDeniedForBundledTicketError) Error() string {
	return fmt.Sprintf("ticket %s belongs to a bundle; its seat is managed through the bundle's seat group", e.TicketID)
}

type SeatChangeDeniedForGroupSeatError struct {
	SeatID uuid.UUID
}

func (e SeatChangeDeniedForGroupSeatError) Error() string {
	return fmt.Sprintf("seat %s belongs to a seat group", e.SeatID)
}

type TicketCategoryMismatchError struct {
	TicketCategoryID uuid.UUID
	SeatCategoryID   uuid.UUID
}

func (e TicketCategoryMismatchError) Error() string {
	return fmt.Sprintf("ticket category %s does not match seat category %s", e.TicketCategoryID, e.SeatCategoryID)
}

type SeatAlreadyOccupiedError struct {
	SeatID uuid.UUID
}

func (e SeatAlreadyOccupiedError) Error() string {
	return fmt.Sprintf("seat %s is occupied by another ticket", e.SeatID)
}

// SeatReservationClosedError reports that the user may not reserve seats
// for the party yet.
type SeatReservationClosedError struct {
	PartyID string
}

func (e SeatReservationClosedError) Error() string {
	return fmt.Sprintf("seat reservation for party %q is not open", e.PartyID)
}

// SeatingError reports a seat group rule violation.
type SeatingError struct {
	Message string
}

func (e *SeatingError) Error() string {
	return e.Message
}

func seatingError(msg string) *SeatingError {
	return &SeatingError{Message: msg}
}
