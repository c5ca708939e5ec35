package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

func checkInFixture() (domain.Ticket, domain.User) {
	user := domain.User{ID: uuid.New(), ScreenName: "Frag0r"}
	seatID := uuid.New()
	ticket := domain.Ticket{
		ID:             uuid.New(),
		Code:           "BCD23",
		PartyID:        "lanparty-2025",
		CategoryID:     uuid.New(),
		OwnedByID:      uuid.New(),
		UsedByID:       &user.ID,
		OccupiedSeatID: &seatID,
	}
	return ticket, user
}

func TestCheckInUser_Success(t *testing.T) {
	ticket, user := checkInFixture()
	initiator := uuid.New()
	now := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)

	res, err := domain.CheckInUser("lanparty-2025", ticket, &user, initiator, now)
	require.NoError(t, err)

	assert.Equal(t, ticket.ID, res.CheckIn.TicketID)
	assert.Equal(t, initiator, res.CheckIn.InitiatorID)

	assert.Equal(t, ticket.Code, res.Event.TicketCode)
	assert.Equal(t, ticket.OccupiedSeatID, res.Event.OccupiedSeatID)
	assert.Equal(t, user.ID, res.Event.UserID)

	assert.Equal(t, domain.LogUserCheckedIn, res.LogEntry.EventType)
	assert.Equal(t, map[string]string{
		"checked_in_user_id": user.ID.String(),
		"initiator_id":       initiator.String(),
	}, res.LogEntry.Data)

	assert.Equal(t, now, res.CheckIn.OccurredAt)
	assert.Equal(t, now, res.Event.OccurredAt)
	assert.Equal(t, now, res.LogEntry.OccurredAt)
}

func TestCheckInUser_ValidationOrder(t *testing.T) {
	now := time.Now()
	initiator := uuid.New()

	t.Run("different party wins over revocation", func(t *testing.T) {
		ticket, user := checkInFixture()
		ticket.Revoked = true
		_, err := domain.CheckInUser("other-party", ticket, &user, initiator, now)
		assert.ErrorAs(t, err, &domain.TicketBelongsToDifferentPartyError{})
	})

	t.Run("revoked", func(t *testing.T) {
		ticket, user := checkInFixture()
		ticket.Revoked = true
		ticket.UsedByID = nil
		_, err := domain.CheckInUser(ticket.PartyID, ticket, &user, initiator, now)
		assert.ErrorAs(t, err, &domain.TicketIsRevokedError{})
	})

	t.Run("lacks user", func(t *testing.T) {
		ticket, _ := checkInFixture()
		ticket.UsedByID = nil
		ticket.UserCheckedIn = true
		_, err := domain.CheckInUser(ticket.PartyID, ticket, nil, initiator, now)
		assert.ErrorAs(t, err, &domain.TicketLacksUserError{})
	})

	t.Run("already checked in", func(t *testing.T) {
		ticket, user := checkInFixture()
		ticket.UserCheckedIn = true
		user.Deleted = true
		_, err := domain.CheckInUser(ticket.PartyID, ticket, &user, initiator, now)
		assert.ErrorAs(t, err, &domain.UserAlreadyCheckedInError{})
	})

	t.Run("deleted before suspended", func(t *testing.T) {
		ticket, user := checkInFixture()
		user.Deleted = true
		user.Suspended = true
		_, err := domain.CheckInUser(ticket.PartyID, ticket, &user, initiator, now)
		assert.ErrorAs(t, err, &domain.UserAccountDeletedError{})
	})

	t.Run("suspended", func(t *testing.T) {
		ticket, user := checkInFixture()
		user.Suspended = true
		_, err := domain.CheckInUser(ticket.PartyID, ticket, &user, initiator, now)
		assert.ErrorAs(t, err, &domain.UserAccountSuspendedError{})
	})
}

func TestTicket_ManagerResolution(t *testing.T) {
	owner := uuid.New()
	delegate := uuid.New()
	ticket := domain.Ticket{OwnedByID: owner}

	assert.True(t, ticket.IsSeatManagedBy(owner))
	assert.True(t, ticket.IsUserManagedBy(owner))

	ticket.SeatManagedByID = &delegate
	assert.True(t, ticket.IsSeatManagedBy(delegate))
	assert.False(t, ticket.IsSeatManagedBy(owner))
	assert.True(t, ticket.IsUserManagedBy(owner))
}
