package domain

import (
	"time"

	"github.com/google/uuid"
)

type TicketLogEventType string

const (
	LogTicketRevoked        TicketLogEventType = "ticket-revoked"
	LogSeatOccupied         TicketLogEventType = "seat-occupied"
	LogSeatReleased         TicketLogEventType = "seat-released"
	LogSeatManagerAppointed TicketLogEventType = "seat-manager-appointed"
	LogSeatManagerWithdrawn TicketLogEventType = "seat-manager-withdrawn"
	LogUserManagerAppointed TicketLogEventType = "user-manager-appointed"
	LogUserManagerWithdrawn TicketLogEventType = "user-manager-withdrawn"
	LogUserAppointed        TicketLogEventType = "user-appointed"
	LogUserWithdrawn        TicketLogEventType = "user-withdrawn"
	LogUserCheckedIn        TicketLogEventType = "user-checked-in"
	LogUserCheckInReverted  TicketLogEventType = "user-check-in-reverted"
)

// TicketLogEntry is an append-only audit record. Entries are never updated.
type TicketLogEntry struct {
	ID         uuid.UUID
	OccurredAt time.Time
	EventType  TicketLogEventType
	TicketID   uuid.UUID
	Data       map[string]string
}

func NewTicketLogEntry(
	eventType TicketLogEventType,
	ticketID uuid.UUID,
	occurredAt time.Time,
	data map[string]string,
) TicketLogEntry {
	if data == nil {
		data = map[string]string{}
	}

	return TicketLogEntry{
		ID:         uuid.New(),
		OccurredAt: occurredAt,
		EventType:  eventType,
		TicketID:   ticketID,
		Data:       data,
	}
}

func SeatOccupiedEntry(
	ticketID, seatID uuid.UUID,
	previousSeatID *uuid.UUID,
	initiatorID uuid.UUID,
	now time.Time,
) TicketLogEntry {
	data := map[string]string{
		"seat_id":      seatID.String(),
		"initiator_id": initiatorID.String(),
	}
	if previousSeatID != nil {
		data["previous_seat_id"] = previousSeatID.String()
	}

	return NewTicketLogEntry(LogSeatOccupied, ticketID, now, data)
}

func SeatReleasedEntry(ticketID, seatID, initiatorID uuid.UUID, now time.Time) TicketLogEntry {
	return NewTicketLogEntry(LogSeatReleased, ticketID, now, map[string]string{
		"seat_id":      seatID.String(),
		"initiator_id": initiatorID.String(),
	})
}

func TicketRevokedEntry(ticketID, initiatorID uuid.UUID, reason string, now time.Time) TicketLogEntry {
	data := map[string]string{
		"initiator_id": initiatorID.String(),
	}
	if reason != "" {
		data["reason"] = reason
	}

	return NewTicketLogEntry(LogTicketRevoked, ticketID, now, data)
}

// DelegateChangedEntry records an appointment or withdrawal of a seat
// manager, user manager or user. subject is one of "seat_manager",
// "user_manager" or "user".
func DelegateChangedEntry(
	eventType TicketLogEventType,
	ticketID uuid.UUID,
	subject string,
	previous, appointed *uuid.UUID,
	initiatorID uuid.UUID,
	now time.Time,
) TicketLogEntry {
	data := map[string]string{
		"initiator_id": initiatorID.String(),
	}
	if appointed != nil {
		data["appointed_"+subject+"_id"] = appointed.String()
	}
	if previous != nil {
		data["previous_"+subject+"_id"] = previous.String()
	}

	return NewTicketLogEntry(eventType, ticketID, now, data)
}

func UserCheckedInEntry(ticketID, userID, initiatorID uuid.UUID, now time.Time) TicketLogEntry {
	return NewTicketLogEntry(LogUserCheckedIn, ticketID, now, map[string]string{
		"checked_in_user_id": userID.String(),
		"initiator_id":       initiatorID.String(),
	})
}

func UserCheckInRevertedEntry(ticketID, initiatorID uuid.UUID, now time.Time) TicketLogEntry {
	return NewTicketLogEntry(LogUserCheckInReverted, ticketID, now, map[string]string{
		"initiator_id": initiatorID.String(),
	})
}
