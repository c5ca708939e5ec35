package reservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/service/reservation"
	"github.com/kirinyoku/seatkeeper/internal/service/servicetest"
)

func TestIsReservationOpen_NoPreconditions(t *testing.T) {
	f := servicetest.New(t)
	svc := reservation.New(f.Store, nil, reservation.Config{})

	open, err := svc.IsReservationOpen(context.Background(), servicetest.PartyID, 0)
	require.NoError(t, err)
	assert.True(t, open, "a party without preconditions is open")
}

func TestIsReservationOpen_Tiers(t *testing.T) {
	f := servicetest.New(t)
	svc := reservation.New(f.Store, nil, reservation.Config{})
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	_, err := svc.CreatePrecondition(ctx, servicetest.PartyID, past, 4)
	require.NoError(t, err)
	_, err = svc.CreatePrecondition(ctx, servicetest.PartyID, future, 1)
	require.NoError(t, err)

	tests := []struct {
		qty  int
		want bool
	}{
		{qty: 1, want: false},
		{qty: 3, want: false},
		{qty: 4, want: true},
		{qty: 10, want: true},
	}

	for _, tt := range tests {
		open, err := svc.IsReservationOpen(ctx, servicetest.PartyID, tt.qty)
		require.NoError(t, err)
		assert.Equal(t, tt.want, open, "quantity %d", tt.qty)
	}

	pcs, err := svc.Preconditions(ctx, servicetest.PartyID)
	require.NoError(t, err)
	require.Len(t, pcs, 2)
	assert.Equal(t, 4, pcs[0].MinimumTicketQuantity, "ordered by date")
}

func TestMayUserReserve(t *testing.T) {
	f := servicetest.New(t)
	svc := reservation.New(f.Store, nil, reservation.Config{})
	ctx := context.Background()

	_, err := svc.CreatePrecondition(ctx, servicetest.PartyID, time.Now().Add(-time.Minute), 2)
	require.NoError(t, err)

	ok, err := svc.MayUserReserve(ctx, servicetest.PartyID, f.Owner.ID)
	require.NoError(t, err)
	assert.False(t, ok, "no tickets")

	first := f.Ticket(t)
	ok, err = svc.MayUserReserve(ctx, servicetest.PartyID, f.Owner.ID)
	require.NoError(t, err)
	assert.False(t, ok, "one ticket is below the minimum")

	f.Ticket(t)
	ok, err = svc.MayUserReserve(ctx, servicetest.PartyID, f.Owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Delegating seat management moves the ticket to the manager's count.
	manager := f.User(t, "manager")
	require.NoError(t, f.Ticketing.AppointSeatManager(ctx, first.ID, manager.ID, f.Initiator.ID))

	ok, err = svc.MayUserReserve(ctx, servicetest.PartyID, f.Owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreconditionLifecycle(t *testing.T) {
	f := servicetest.New(t)
	svc := reservation.New(f.Store, nil, reservation.Config{})
	ctx := context.Background()

	_, err := svc.CreatePrecondition(ctx, servicetest.PartyID, time.Now(), 0)
	assert.ErrorIs(t, err, reservation.ErrInvalidTicketQuantity)

	_, err = svc.CreatePrecondition(ctx, "no-such-party", time.Now(), 1)
	assert.ErrorIs(t, err, reservation.ErrPartyNotFound)

	at := time.Date(2025, 6, 17, 18, 0, 0, 0, time.UTC)
	p, err := svc.CreatePrecondition(ctx, servicetest.PartyID, at, 2)
	require.NoError(t, err)

	_, err = svc.CreatePrecondition(ctx, servicetest.PartyID, at, 2)
	assert.ErrorIs(t, err, reservation.ErrPreconditionExists)

	assert.ErrorIs(t, svc.DeletePrecondition(ctx, servicetest.PartyID, uuid.New()), reservation.ErrPreconditionNotFound)
	require.NoError(t, svc.DeletePrecondition(ctx, servicetest.PartyID, p.ID))

	pcs, err := svc.Preconditions(ctx, servicetest.PartyID)
	require.NoError(t, err)
	assert.Empty(t, pcs)
}

func TestCreatePrecondition_LogsFailedCacheInvalidation(t *testing.T) {
	f := servicetest.New(t)
	logger, logs := servicetest.BufferLogger()
	svc := reservation.New(f.Store, servicetest.UnreachableCache(t), reservation.Config{Logger: logger})

	_, err := svc.CreatePrecondition(context.Background(), servicetest.PartyID, time.Now(), 1)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "precondition cache invalidation failed")
	assert.Contains(t, logs.String(), "party_id="+servicetest.PartyID)
}
