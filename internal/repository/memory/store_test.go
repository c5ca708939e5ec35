package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/repository/memory"
)

type fixture struct {
	store    *memory.Store
	category domain.TicketCategory
	area     domain.SeatingArea
	owner    uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	s := memory.NewStore()
	s.PutParty(domain.Party{ID: "lan-2025", Title: "LAN 2025"})

	f := fixture{
		store:    s,
		category: domain.TicketCategory{ID: uuid.New(), PartyID: "lan-2025", Title: "Standard"},
		area:     domain.SeatingArea{ID: uuid.New(), PartyID: "lan-2025", Slug: "hall", Title: "Hall"},
		owner:    uuid.New(),
	}

	require.NoError(t, s.Categories().Insert(ctx, f.category))
	require.NoError(t, s.Seats().InsertArea(ctx, f.area))

	return f
}

func (f fixture) ticket(code string, createdAt time.Time) domain.Ticket {
	return domain.Ticket{
		ID:         uuid.New(),
		CreatedAt:  createdAt,
		Code:       code,
		PartyID:    f.category.PartyID,
		CategoryID: f.category.ID,
		OwnedByID:  f.owner,
	}
}

func (f fixture) seat(x, y int) domain.Seat {
	return domain.Seat{ID: uuid.New(), AreaID: f.area.ID, CoordX: x, CoordY: y, CategoryID: f.category.ID}
}

func TestRunTx_RollsBackOnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tk := f.ticket("BCDFG", time.Now())

	boom := errors.New("boom")
	err := f.store.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
		require.NoError(t, tx.Tickets().Insert(ctx, []domain.Ticket{tk}))

		_, err := tx.Tickets().Get(ctx, tk.ID)
		require.NoError(t, err, "writes are visible inside the transaction")

		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = f.store.Tickets().Get(ctx, tk.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRunTx_Commits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tk := f.ticket("BCDFG", time.Now())

	err := f.store.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
		return tx.Tickets().Insert(ctx, []domain.Ticket{tk})
	})
	require.NoError(t, err)

	got, err := f.store.Tickets().Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "BCDFG", got.Code)
}

func TestTickets_DuplicateCodeConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Tickets().Insert(ctx, []domain.Ticket{f.ticket("BCDFG", time.Now())}))

	err := f.store.Tickets().Insert(ctx, []domain.Ticket{f.ticket("HJKLM", time.Now()), f.ticket("BCDFG", time.Now())})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = f.store.Tickets().GetByCode(ctx, "lan-2025", "HJKLM")
	assert.ErrorIs(t, err, repository.ErrNotFound, "a failed batch inserts nothing")

	err = f.store.Tickets().Insert(ctx, []domain.Ticket{f.ticket("NPQRS", time.Now()), f.ticket("NPQRS", time.Now())})
	assert.ErrorIs(t, err, repository.ErrConflict, "duplicates within one batch")
}

func TestTickets_SeatHeldByOneTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seat := f.seat(0, 0)
	require.NoError(t, f.store.Seats().Insert(ctx, seat))

	t1 := f.ticket("BCDFG", time.Now())
	t2 := f.ticket("HJKLM", time.Now())
	require.NoError(t, f.store.Tickets().Insert(ctx, []domain.Ticket{t1, t2}))

	t1.OccupiedSeatID = &seat.ID
	require.NoError(t, f.store.Tickets().Update(ctx, t1))

	got, err := f.store.Seats().Get(ctx, seat.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OccupiedByTicketID)
	assert.Equal(t, t1.ID, *got.OccupiedByTicketID)

	t2.OccupiedSeatID = &seat.ID
	assert.ErrorIs(t, f.store.Tickets().Update(ctx, t2), repository.ErrConflict)

	n, err := f.store.Tickets().CountSeatManagedBy(ctx, "lan-2025", f.owner)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBundles_TicketIDsInCreationOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := domain.TicketBundle{ID: uuid.New(), PartyID: "lan-2025", CategoryID: f.category.ID, TicketQuantity: 2, OwnedByID: f.owner}
	require.NoError(t, f.store.Bundles().Insert(ctx, b))

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	late := f.ticket("BCDFG", base.Add(time.Hour))
	early := f.ticket("HJKLM", base)
	late.BundleID, early.BundleID = &b.ID, &b.ID
	require.NoError(t, f.store.Tickets().Insert(ctx, []domain.Ticket{late, early}))

	got, err := f.store.Bundles().Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{early.ID, late.ID}, got.TicketIDs)

	require.NoError(t, f.store.Bundles().SetRevoked(ctx, b.ID))
	got, err = f.store.Bundles().Get(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Revoked)
}

func TestSeatGroups_SeatAndOccupancyUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s1, s2 := f.seat(0, 0), f.seat(1, 0)
	require.NoError(t, f.store.Seats().Insert(ctx, s1))
	require.NoError(t, f.store.Seats().Insert(ctx, s2))

	g1 := domain.SeatGroup{ID: uuid.New(), PartyID: "lan-2025", CategoryID: f.category.ID, SeatQuantity: 2, Title: "Row A", Seats: []domain.Seat{s1, s2}}
	require.NoError(t, f.store.SeatGroups().Insert(ctx, g1))

	g2 := domain.SeatGroup{ID: uuid.New(), PartyID: "lan-2025", CategoryID: f.category.ID, SeatQuantity: 1, Title: "Row B", Seats: []domain.Seat{s2}}
	assert.ErrorIs(t, f.store.SeatGroups().Insert(ctx, g2), repository.ErrConflict)

	grouped, err := f.store.SeatGroups().IsSeatGrouped(ctx, s1.ID)
	require.NoError(t, err)
	assert.True(t, grouped)

	bundleID := uuid.New()
	occ := domain.SeatGroupOccupancy{ID: uuid.New(), SeatGroupID: g1.ID, TicketBundleID: bundleID}
	require.NoError(t, f.store.SeatGroups().InsertOccupancy(ctx, occ))

	dup := domain.SeatGroupOccupancy{ID: uuid.New(), SeatGroupID: g1.ID, TicketBundleID: uuid.New()}
	assert.ErrorIs(t, f.store.SeatGroups().InsertOccupancy(ctx, dup), repository.ErrConflict)

	got, err := f.store.SeatGroups().OccupancyByBundle(ctx, bundleID)
	require.NoError(t, err)
	assert.Equal(t, occ, *got)

	assert.Error(t, f.store.SeatGroups().Delete(ctx, g1.ID), "occupied groups cannot be deleted")

	require.NoError(t, f.store.SeatGroups().DeleteOccupancy(ctx, occ.ID))
	require.NoError(t, f.store.SeatGroups().Delete(ctx, g1.ID))

	grouped, err = f.store.SeatGroups().IsSeatGrouped(ctx, s1.ID)
	require.NoError(t, err)
	assert.False(t, grouped)
}

func TestPreconditions_MinimumTicketQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := domain.SeatReservationPrecondition{
		ID:         uuid.New(),
		PartyID:    f.category.PartyID,
		AtEarliest: time.Now().UTC(),
	}
	assert.Error(t, f.store.Preconditions().Insert(ctx, p))

	p.MinimumTicketQuantity = 1
	require.NoError(t, f.store.Preconditions().Insert(ctx, p))
}
