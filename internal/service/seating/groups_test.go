package seating_test

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/service/seating"
	"github.com/kirinyoku/seatkeeper/internal/service/servicetest"
	"github.com/kirinyoku/seatkeeper/internal/service/ticketing"
)

func requireSeatingError(t *testing.T, err error, message string) {
	t.Helper()

	var se *domain.SeatingError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, message, se.Message)
}

func TestOccupyGroup_PairsSeatsWithTicketsDeterministically(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	s10 := f.Seat(t, 1, 0)
	s01 := f.Seat(t, 0, 1)
	s00 := f.Seat(t, 0, 0)
	group := f.Group(t, "Table 1", s10, s01, s00)
	bundle := f.Bundle(t, 3)

	event, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, event.SeatGroupID)
	assert.Equal(t, bundle.ID, event.TicketBundleID)
	assert.Equal(t, "Table 1", event.SeatGroupTitle)
	assert.Equal(t, "seat-group-occupied", event.EventName())

	// Bundle tickets share one creation time, so their IDs decide the order.
	ticketIDs := append([]uuid.UUID(nil), bundle.TicketIDs...)
	sort.Slice(ticketIDs, func(i, j int) bool { return ticketIDs[i].String() < ticketIDs[j].String() })

	for i, seat := range []domain.Seat{s00, s01, s10} {
		tk := f.GetTicket(t, ticketIDs[i])
		require.NotNil(t, tk.OccupiedSeatID)
		assert.Equal(t, seat.ID, *tk.OccupiedSeatID, "seat (%d,%d)", seat.CoordX, seat.CoordY)
		assert.Equal(t, []domain.TicketLogEventType{domain.LogSeatOccupied}, f.LogTypes(t, tk.ID))
	}

	got, err := f.Seating.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	for _, s := range got.Seats {
		assert.True(t, s.IsOccupied())
	}
}

func TestOccupyGroup_QuantityMismatchLeavesNoOccupancy(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	group := f.Group(t, "Table 1", f.Seat(t, 0, 0), f.Seat(t, 0, 1))
	bundle := f.Bundle(t, 3)

	_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
	requireSeatingError(t, err, "Seat and ticket quantities do not match.")

	_, err = f.Store.SeatGroups().OccupancyByGroup(ctx, group.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	for _, id := range bundle.TicketIDs {
		assert.Nil(t, f.GetTicket(t, id).OccupiedSeatID)
	}
}

func TestOccupyGroup_Rules(t *testing.T) {
	ctx := context.Background()

	t.Run("archived party", func(t *testing.T) {
		f := servicetest.New(t)
		group := f.Group(t, "Table 1", f.Seat(t, 0, 0))
		bundle := f.Bundle(t, 1)
		f.Store.PutParty(domain.Party{ID: servicetest.PartyID, Archived: true})

		_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
		requireSeatingError(t, err, "Party is archived.")
	})

	t.Run("bundle already occupies a group", func(t *testing.T) {
		f := servicetest.New(t)
		g1 := f.Group(t, "Table 1", f.Seat(t, 0, 0))
		g2 := f.Group(t, "Table 2", f.Seat(t, 1, 0))
		bundle := f.Bundle(t, 1)

		_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, g1.ID, bundle.ID, f.Initiator.ID)
		require.NoError(t, err)

		_, err = f.Seating.OccupyGroup(ctx, servicetest.PartyID, g2.ID, bundle.ID, f.Initiator.ID)
		requireSeatingError(t, err, "Ticket bundle already occupies a seat group.")
	})

	t.Run("group already occupied", func(t *testing.T) {
		f := servicetest.New(t)
		group := f.Group(t, "Table 1", f.Seat(t, 0, 0))
		b1 := f.Bundle(t, 1)
		b2 := f.Bundle(t, 1)

		_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, b1.ID, f.Initiator.ID)
		require.NoError(t, err)

		_, err = f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, b2.ID, f.Initiator.ID)
		requireSeatingError(t, err, "Seat group is already occupied.")
	})

	t.Run("category mismatch", func(t *testing.T) {
		f := servicetest.New(t)
		group := f.Group(t, "Table 1", f.Seat(t, 0, 0))

		vip, err := f.Ticketing.CreateCategory(ctx, servicetest.PartyID, "VIP")
		require.NoError(t, err)
		bundle, err := f.Ticketing.CreateBundle(ctx, vip.ID, 1, f.Owner.ID, ticketing.CreateOptions{})
		require.NoError(t, err)

		_, err = f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
		requireSeatingError(t, err, "Seat and ticket categories do not match.")
	})

	t.Run("seat occupied before grouping", func(t *testing.T) {
		f := servicetest.New(t)
		seat := f.Seat(t, 0, 0)
		single := f.Ticket(t)
		require.NoError(t, f.Seating.OccupySeat(ctx, single.ID, seat.ID, f.Initiator.ID))

		group := f.Group(t, "Table 1", seat, f.Seat(t, 0, 1))
		bundle := f.Bundle(t, 2)

		_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
		requireSeatingError(t, err, "At least one of the seats in the group is already occupied.")
	})

	t.Run("revoked bundle", func(t *testing.T) {
		f := servicetest.New(t)
		group := f.Group(t, "Table 1", f.Seat(t, 0, 0))
		bundle := f.Bundle(t, 1)
		_, err := f.Ticketing.RevokeBundle(ctx, bundle.ID, f.Initiator.ID, "refund")
		require.NoError(t, err)

		_, err = f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
		requireSeatingError(t, err, "Ticket bundle has been revoked.")
	})

	t.Run("bundle with a revoked ticket", func(t *testing.T) {
		f := servicetest.New(t)
		group := f.Group(t, "Table 1", f.Seat(t, 0, 0), f.Seat(t, 1, 0))
		bundle := f.Bundle(t, 2)
		require.NoError(t, f.Ticketing.RevokeTicket(ctx, bundle.TicketIDs[0], f.Initiator.ID, "refund"))

		_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
		requireSeatingError(t, err, "At least one ticket of the bundle has been revoked.")

		_, err = f.Store.SeatGroups().OccupancyByGroup(ctx, group.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		for _, id := range bundle.TicketIDs {
			assert.Nil(t, f.GetTicket(t, id).OccupiedSeatID)
		}
	})

	t.Run("unknown bundle", func(t *testing.T) {
		f := servicetest.New(t)
		group := f.Group(t, "Table 1", f.Seat(t, 0, 0))

		_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, uuid.New(), f.Initiator.ID)
		assert.ErrorIs(t, err, seating.ErrBundleNotFound)
	})
}

func TestReleaseGroup(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	group := f.Group(t, "Table 1", f.Seat(t, 0, 0), f.Seat(t, 1, 0))
	bundle := f.Bundle(t, 2)

	_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
	require.NoError(t, err)

	event, err := f.Seating.ReleaseGroup(ctx, servicetest.PartyID, group.ID, f.Initiator.ID)
	require.NoError(t, err)
	assert.Equal(t, "seat-group-released", event.EventName())
	assert.Equal(t, bundle.ID, event.TicketBundleID)

	for _, id := range bundle.TicketIDs {
		assert.Nil(t, f.GetTicket(t, id).OccupiedSeatID)
		assert.Equal(t,
			[]domain.TicketLogEventType{domain.LogSeatOccupied, domain.LogSeatReleased},
			f.LogTypes(t, id))
	}

	_, err = f.Seating.ReleaseGroup(ctx, servicetest.PartyID, group.ID, f.Initiator.ID)
	requireSeatingError(t, err, "Seat group is not occupied.")

	// The group can be occupied again once released.
	_, err = f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
	assert.NoError(t, err)
}

func TestSwitchGroup(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	oldGroup := f.Group(t, "Table 1", f.Seat(t, 0, 0), f.Seat(t, 1, 0))
	n0, n1 := f.Seat(t, 5, 0), f.Seat(t, 5, 1)
	newGroup := f.Group(t, "Table 2", n1, n0)
	bundle := f.Bundle(t, 2)

	_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, oldGroup.ID, bundle.ID, f.Initiator.ID)
	require.NoError(t, err)

	released, occupied, err := f.Seating.SwitchGroup(ctx, servicetest.PartyID, oldGroup.ID, newGroup.ID, bundle.ID, f.Initiator.ID)
	require.NoError(t, err)
	assert.Equal(t, oldGroup.ID, released.SeatGroupID)
	assert.Equal(t, newGroup.ID, occupied.SeatGroupID)

	occ, err := f.Store.SeatGroups().OccupancyByBundle(ctx, bundle.ID)
	require.NoError(t, err)
	assert.Equal(t, newGroup.ID, occ.SeatGroupID)

	got, err := f.Seating.GetGroup(ctx, oldGroup.ID)
	require.NoError(t, err)
	for _, s := range got.Seats {
		assert.False(t, s.IsOccupied())
	}

	ticketIDs := append([]uuid.UUID(nil), bundle.TicketIDs...)
	sort.Slice(ticketIDs, func(i, j int) bool { return ticketIDs[i].String() < ticketIDs[j].String() })
	assert.Equal(t, n0.ID, *f.GetTicket(t, ticketIDs[0]).OccupiedSeatID)
	assert.Equal(t, n1.ID, *f.GetTicket(t, ticketIDs[1]).OccupiedSeatID)

	entries, err := f.Ticketing.TicketLog(ctx, ticketIDs[0])
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[1].Data, "previous_seat_id")
}

func TestSwitchGroup_RevalidatesNewGroup(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	oldGroup := f.Group(t, "Table 1", f.Seat(t, 0, 0), f.Seat(t, 1, 0))
	smaller := f.Group(t, "Table 2", f.Seat(t, 5, 0))
	bundle := f.Bundle(t, 2)

	_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, oldGroup.ID, bundle.ID, f.Initiator.ID)
	require.NoError(t, err)

	_, _, err = f.Seating.SwitchGroup(ctx, servicetest.PartyID, oldGroup.ID, smaller.ID, bundle.ID, f.Initiator.ID)
	requireSeatingError(t, err, "Seat and ticket quantities do not match.")

	occ, err := f.Store.SeatGroups().OccupancyByBundle(ctx, bundle.ID)
	require.NoError(t, err)
	assert.Equal(t, oldGroup.ID, occ.SeatGroupID, "failed switch keeps the old occupancy")

	for _, id := range bundle.TicketIDs {
		assert.NotNil(t, f.GetTicket(t, id).OccupiedSeatID)
	}
}

func TestSwitchGroup_RejectsBundleWithRevokedTicket(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	oldGroup := f.Group(t, "Table 1", f.Seat(t, 0, 0), f.Seat(t, 1, 0))
	newGroup := f.Group(t, "Table 2", f.Seat(t, 5, 0), f.Seat(t, 5, 1))
	bundle := f.Bundle(t, 2)

	_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, oldGroup.ID, bundle.ID, f.Initiator.ID)
	require.NoError(t, err)

	revoked := bundle.TicketIDs[0]
	require.NoError(t, f.Ticketing.RevokeTicket(ctx, revoked, f.Initiator.ID, "refund"))
	require.Nil(t, f.GetTicket(t, revoked).OccupiedSeatID)

	_, _, err = f.Seating.SwitchGroup(ctx, servicetest.PartyID, oldGroup.ID, newGroup.ID, bundle.ID, f.Initiator.ID)
	requireSeatingError(t, err, "At least one ticket of the bundle has been revoked.")

	assert.Nil(t, f.GetTicket(t, revoked).OccupiedSeatID)
	occ, err := f.Store.SeatGroups().OccupancyByBundle(ctx, bundle.ID)
	require.NoError(t, err)
	assert.Equal(t, oldGroup.ID, occ.SeatGroupID)
}

func TestCreateGroup_Rules(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	seat := f.Seat(t, 0, 0)
	f.Group(t, "Table 1", seat)

	_, err := f.Seating.CreateGroup(ctx, servicetest.PartyID, f.Category.ID, "Table 2", []uuid.UUID{seat.ID})
	requireSeatingError(t, err, "At least one of the seats already belongs to a seat group.")

	_, err = f.Seating.CreateGroup(ctx, servicetest.PartyID, f.Category.ID, "Empty", nil)
	requireSeatingError(t, err, "A seat group must contain at least one seat.")

	_, err = f.Seating.CreateGroup(ctx, servicetest.PartyID, f.Category.ID, "Table 1", []uuid.UUID{f.Seat(t, 9, 9).ID})
	assert.ErrorIs(t, err, seating.ErrGroupExists)

	_, err = f.Seating.CreateGroup(ctx, servicetest.PartyID, f.Category.ID, "Ghost", []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, seating.ErrSeatNotFound)
}

func TestDeleteGroup(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	group := f.Group(t, "Table 1", f.Seat(t, 0, 0))
	bundle := f.Bundle(t, 1)

	_, err := f.Seating.OccupyGroup(ctx, servicetest.PartyID, group.ID, bundle.ID, f.Initiator.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Seating.DeleteGroup(ctx, group.ID), seating.ErrGroupOccupied)

	_, err = f.Seating.ReleaseGroup(ctx, servicetest.PartyID, group.ID, f.Initiator.ID)
	require.NoError(t, err)
	require.NoError(t, f.Seating.DeleteGroup(ctx, group.ID))

	groups, err := f.Seating.PartyGroups(ctx, servicetest.PartyID)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
