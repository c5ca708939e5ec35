package seating_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/service/seating"
	"github.com/kirinyoku/seatkeeper/internal/service/servicetest"
)

func TestOccupyAndReleaseSeat(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	seat := f.Seat(t, 3, 4)
	ticket := f.Ticket(t)

	require.NoError(t, f.Seating.OccupySeat(ctx, ticket.ID, seat.ID, f.Initiator.ID))

	got, err := f.Seating.GetSeat(ctx, seat.ID)
	require.NoError(t, err)
	require.True(t, got.IsOccupied())
	assert.Equal(t, ticket.ID, *got.OccupiedByTicketID)
	assert.Equal(t, seat.ID, *f.GetTicket(t, ticket.ID).OccupiedSeatID)

	require.NoError(t, f.Seating.ReleaseSeat(ctx, ticket.ID, f.Initiator.ID))

	got, err = f.Seating.GetSeat(ctx, seat.ID)
	require.NoError(t, err)
	assert.False(t, got.IsOccupied())
	assert.Nil(t, f.GetTicket(t, ticket.ID).OccupiedSeatID)

	assert.Equal(t,
		[]domain.TicketLogEventType{domain.LogSeatOccupied, domain.LogSeatReleased},
		f.LogTypes(t, ticket.ID))
}

func TestOccupySeat_ReplacesPreviousSeat(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	first := f.Seat(t, 0, 0)
	second := f.Seat(t, 0, 1)
	ticket := f.Ticket(t)

	require.NoError(t, f.Seating.OccupySeat(ctx, ticket.ID, first.ID, f.Initiator.ID))
	require.NoError(t, f.Seating.OccupySeat(ctx, ticket.ID, second.ID, f.Initiator.ID))

	seats, err := f.Seating.AreaSeats(ctx, f.Area.ID)
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.False(t, seats[0].IsOccupied())
	assert.True(t, seats[1].IsOccupied())

	entries, err := f.Ticketing.TicketLog(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]string{
		"seat_id":          second.ID.String(),
		"previous_seat_id": first.ID.String(),
		"initiator_id":     f.Initiator.ID.String(),
	}, entries[1].Data)
}

func TestOccupySeat_Rules(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked ticket", func(t *testing.T) {
		f := servicetest.New(t)
		seat := f.Seat(t, 0, 0)
		ticket := f.Ticket(t)
		require.NoError(t, f.Ticketing.RevokeTicket(ctx, ticket.ID, f.Initiator.ID, ""))

		err := f.Seating.OccupySeat(ctx, ticket.ID, seat.ID, f.Initiator.ID)
		var target domain.TicketIsRevokedError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, ticket.ID, target.TicketID)
	})

	t.Run("bundled ticket leaves seat unchanged", func(t *testing.T) {
		f := servicetest.New(t)
		seat := f.Seat(t, 0, 0)
		bundle := f.Bundle(t, 2)

		err := f.Seating.OccupySeat(ctx, bundle.TicketIDs[0], seat.ID, f.Initiator.ID)
		var target domain.SeatChangeDeniedForBundledTicketError
		require.ErrorAs(t, err, &target)

		got, err := f.Seating.GetSeat(ctx, seat.ID)
		require.NoError(t, err)
		assert.False(t, got.IsOccupied())
		assert.Empty(t, f.LogTypes(t, bundle.TicketIDs[0]))
	})

	t.Run("category mismatch", func(t *testing.T) {
		f := servicetest.New(t)
		vip, err := f.Ticketing.CreateCategory(ctx, servicetest.PartyID, "VIP")
		require.NoError(t, err)

		seat, err := f.Seating.CreateSeat(ctx, f.Area.ID, 0, 0, vip.ID, nil)
		require.NoError(t, err)
		ticket := f.Ticket(t)

		err = f.Seating.OccupySeat(ctx, ticket.ID, seat.ID, f.Initiator.ID)
		var target domain.TicketCategoryMismatchError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, vip.ID, target.SeatCategoryID)
	})

	t.Run("group seat", func(t *testing.T) {
		f := servicetest.New(t)
		seat := f.Seat(t, 0, 0)
		f.Group(t, "Table 1", seat)
		ticket := f.Ticket(t)

		err := f.Seating.OccupySeat(ctx, ticket.ID, seat.ID, f.Initiator.ID)
		var target domain.SeatChangeDeniedForGroupSeatError
		require.ErrorAs(t, err, &target)
	})

	t.Run("seat taken", func(t *testing.T) {
		f := servicetest.New(t)
		seat := f.Seat(t, 0, 0)
		holder := f.Ticket(t)
		other := f.Ticket(t)
		require.NoError(t, f.Seating.OccupySeat(ctx, holder.ID, seat.ID, f.Initiator.ID))

		err := f.Seating.OccupySeat(ctx, other.ID, seat.ID, f.Initiator.ID)
		var target domain.SeatAlreadyOccupiedError
		require.ErrorAs(t, err, &target)
		assert.Nil(t, f.GetTicket(t, other.ID).OccupiedSeatID)
	})

	t.Run("unknown seat", func(t *testing.T) {
		f := servicetest.New(t)
		ticket := f.Ticket(t)

		err := f.Seating.OccupySeat(ctx, ticket.ID, uuid.New(), f.Initiator.ID)
		assert.ErrorIs(t, err, seating.ErrSeatNotFound)
	})
}

func TestReleaseSeat_TicketWithoutSeat(t *testing.T) {
	f := servicetest.New(t)
	ticket := f.Ticket(t)

	err := f.Seating.ReleaseSeat(context.Background(), ticket.ID, f.Initiator.ID)
	assert.ErrorIs(t, err, seating.ErrTicketOccupiesNoSeat)
}

func TestDeleteSeat(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()

	free := f.Seat(t, 0, 0)
	taken := f.Seat(t, 0, 1)
	grouped := f.Seat(t, 0, 2)
	f.Group(t, "Table 1", grouped)

	ticket := f.Ticket(t)
	require.NoError(t, f.Seating.OccupySeat(ctx, ticket.ID, taken.ID, f.Initiator.ID))

	assert.ErrorIs(t, f.Seating.DeleteSeat(ctx, taken.ID), seating.ErrSeatInUse)
	assert.ErrorIs(t, f.Seating.DeleteSeat(ctx, grouped.ID), seating.ErrSeatInUse)
	require.NoError(t, f.Seating.DeleteSeat(ctx, free.ID))

	_, err := f.Seating.GetSeat(ctx, free.ID)
	assert.ErrorIs(t, err, seating.ErrSeatNotFound)
}

func TestCreateSeat_UnknownArea(t *testing.T) {
	f := servicetest.New(t)

	_, err := f.Seating.CreateSeat(context.Background(), uuid.New(), 0, 0, f.Category.ID, nil)
	assert.ErrorIs(t, err, seating.ErrAreaNotFound)
}

func TestOccupySeat_LogsFailedCacheInvalidation(t *testing.T) {
	f := servicetest.New(t)
	ctx := context.Background()
	logger, logs := servicetest.BufferLogger()
	svc := seating.New(f.Store, servicetest.UnreachableCache(t), seating.Config{Logger: logger})

	seat := f.Seat(t, 0, 0)
	ticket := f.Ticket(t)

	require.NoError(t, svc.OccupySeat(ctx, ticket.ID, seat.ID, f.Initiator.ID))
	assert.Equal(t, seat.ID, *f.GetTicket(t, ticket.ID).OccupiedSeatID, "the commit stands")
	assert.Contains(t, logs.String(), "seat map cache invalidation failed")
	assert.Contains(t, logs.String(), seat.AreaID.String())
}
