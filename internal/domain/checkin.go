package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckInResult holds everything a successful check-in produces. All three
// share one timestamp.
type CheckInResult struct {
	CheckIn  TicketCheckIn
	Event    TicketCheckedInEvent
	LogEntry TicketLogEntry
}

// CheckInUser validates that the user assigned to ticket may be admitted to
// the party and builds the resulting records. user is the ticket's assigned
// user, nil if none is assigned. Checks run in a fixed order and the first
// violation is returned.
func CheckInUser(
	partyID string,
	ticket Ticket,
	user *User,
	initiatorID uuid.UUID,
	now time.Time,
) (CheckInResult, error) {
	if ticket.PartyID != partyID {
		return CheckInResult{}, TicketBelongsToDifferentPartyError{TicketID: ticket.ID, PartyID: partyID}
	}

	if ticket.Revoked {
		return CheckInResult{}, TicketIsRevokedError{TicketID: ticket.ID}
	}

	if ticket.UsedByID == nil || user == nil {
		return CheckInResult{}, TicketLacksUserError{TicketID: ticket.ID}
	}

	if ticket.UserCheckedIn {
		return CheckInResult{}, UserAlreadyCheckedInError{TicketID: ticket.ID}
	}

	if user.Deleted {
		return CheckInResult{}, UserAccountDeletedError{UserID: user.ID}
	}

	if user.Suspended {
		return CheckInResult{}, UserAccountSuspendedError{UserID: user.ID}
	}

	checkIn := TicketCheckIn{
		ID:          uuid.New(),
		OccurredAt:  now,
		TicketID:    ticket.ID,
		InitiatorID: initiatorID,
	}

	event := TicketCheckedInEvent{
		OccurredAt:     now,
		InitiatorID:    initiatorID,
		PartyID:        ticket.PartyID,
		TicketID:       ticket.ID,
		TicketCode:     ticket.Code,
		OccupiedSeatID: ticket.OccupiedSeatID,
		UserID:         user.ID,
		UserScreenName: user.ScreenName,
	}

	entry := UserCheckedInEntry(ticket.ID, user.ID, initiatorID, now)

	return CheckInResult{CheckIn: checkIn, Event: event, LogEntry: entry}, nil
}
