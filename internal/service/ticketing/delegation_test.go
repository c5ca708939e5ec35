package ticketing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/service/checkin"
	"github.com/kirinyoku/seatkeeper/internal/service/servicetest"
)

func TestSeatManagerDelegation(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()
	ticket := f.Ticket(t)
	manager := f.User(t, "manager")

	assert.True(t, ticket.IsSeatManagedBy(f.Owner.ID))

	require.NoError(t, f.Ticketing.AppointSeatManager(ctx, ticket.ID, manager.ID, f.Initiator.ID))
	got := f.GetTicket(t, ticket.ID)
	assert.True(t, got.IsSeatManagedBy(manager.ID))
	assert.False(t, got.IsSeatManagedBy(f.Owner.ID))
	assert.True(t, got.IsUserManagedBy(f.Owner.ID), "user management stays with the owner")

	require.NoError(t, f.Ticketing.WithdrawSeatManager(ctx, ticket.ID, f.Initiator.ID))
	assert.True(t, f.GetTicket(t, ticket.ID).IsSeatManagedBy(f.Owner.ID))

	entries, err := f.Ticketing.TicketLog(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.LogSeatManagerAppointed, entries[0].EventType)
	assert.Equal(t, map[string]string{
		"appointed_seat_manager_id": manager.ID.String(),
		"initiator_id":              f.Initiator.ID.String(),
	}, entries[0].Data)
	assert.Equal(t, domain.LogSeatManagerWithdrawn, entries[1].EventType)
	assert.Equal(t, manager.ID.String(), entries[1].Data["previous_seat_manager_id"])
}

func TestUserManagerDelegation(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()
	ticket := f.Ticket(t)
	manager := f.User(t, "manager")

	require.NoError(t, f.Ticketing.AppointUserManager(ctx, ticket.ID, manager.ID, f.Initiator.ID))
	assert.True(t, f.GetTicket(t, ticket.ID).IsUserManagedBy(manager.ID))

	require.NoError(t, f.Ticketing.WithdrawUserManager(ctx, ticket.ID, f.Initiator.ID))
	assert.True(t, f.GetTicket(t, ticket.ID).IsUserManagedBy(f.Owner.ID))

	assert.Equal(t,
		[]domain.TicketLogEventType{domain.LogUserManagerAppointed, domain.LogUserManagerWithdrawn},
		f.LogTypes(t, ticket.ID))
}

func TestDelegation_RevokedTicket(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()
	ticket := f.Ticket(t)
	other := f.User(t, "other")
	require.NoError(t, f.Ticketing.RevokeTicket(ctx, ticket.ID, f.Initiator.ID, ""))

	ops := map[string]func() error{
		"appoint seat manager":  func() error { return f.Ticketing.AppointSeatManager(ctx, ticket.ID, other.ID, f.Initiator.ID) },
		"withdraw seat manager": func() error { return f.Ticketing.WithdrawSeatManager(ctx, ticket.ID, f.Initiator.ID) },
		"appoint user manager":  func() error { return f.Ticketing.AppointUserManager(ctx, ticket.ID, other.ID, f.Initiator.ID) },
		"withdraw user manager": func() error { return f.Ticketing.WithdrawUserManager(ctx, ticket.ID, f.Initiator.ID) },
		"appoint user":          func() error { return f.Ticketing.AppointUser(ctx, ticket.ID, other.ID, f.Initiator.ID) },
		"withdraw user":         func() error { return f.Ticketing.WithdrawUser(ctx, ticket.ID, f.Initiator.ID) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			var target domain.TicketIsRevokedError
			assert.ErrorAs(t, op(), &target)
		})
	}
}

func TestAppointUser(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()
	ticket := f.Ticket(t)
	user := f.User(t, "player")

	require.NoError(t, f.Ticketing.AppointUser(ctx, ticket.ID, user.ID, f.Initiator.ID))
	assert.Equal(t, user.ID, *f.GetTicket(t, ticket.ID).UsedByID)

	require.NoError(t, f.Ticketing.WithdrawUser(ctx, ticket.ID, f.Initiator.ID))
	assert.Nil(t, f.GetTicket(t, ticket.ID).UsedByID)
}

func TestAppointUser_SuspendedCandidate(t *testing.T) {
	f := servicetest.New(t)
	ticket := f.Ticket(t)

	suspended := domain.User{ID: f.User(t, "troll").ID, ScreenName: "troll", Suspended: true}
	f.Store.PutUser(suspended)

	err := f.Ticketing.AppointUser(context.Background(), ticket.ID, suspended.ID, f.Initiator.ID)
	var target domain.UserAccountSuspendedError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, suspended.ID, target.UserID)
	assert.Nil(t, f.GetTicket(t, ticket.ID).UsedByID)
}

func TestAppointUser_AfterCheckIn(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()
	ticket := f.Ticket(t)
	user := f.User(t, "player")

	require.NoError(t, f.Ticketing.AppointUser(ctx, ticket.ID, user.ID, f.Initiator.ID))
	_, err := checkin.New(f.Store).CheckInUser(ctx, servicetest.PartyID, ticket.ID, f.Initiator.ID)
	require.NoError(t, err)

	var target domain.UserAlreadyCheckedInError
	assert.ErrorAs(t, f.Ticketing.AppointUser(ctx, ticket.ID, f.User(t, "other").ID, f.Initiator.ID), &target)
	assert.ErrorAs(t, f.Ticketing.WithdrawUser(ctx, ticket.ID, f.Initiator.ID), &target)
}
