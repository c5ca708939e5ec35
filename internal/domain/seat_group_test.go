package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

func seat(x, y int, category uuid.UUID) domain.Seat {
	return domain.Seat{ID: uuid.New(), CoordX: x, CoordY: y, CategoryID: category}
}

func TestPairSeatsWithTickets_OrdersByCoordinatesAndCreation(t *testing.T) {
	cat := uuid.New()
	s1 := seat(2, 0, cat)
	s2 := seat(1, 5, cat)
	s3 := seat(1, 1, cat)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	t1 := domain.Ticket{ID: uuid.New(), CreatedAt: base.Add(2 * time.Minute)}
	t2 := domain.Ticket{ID: uuid.New(), CreatedAt: base}
	t3 := domain.Ticket{ID: uuid.New(), CreatedAt: base.Add(time.Minute)}

	got := domain.PairSeatsWithTickets(
		[]domain.Seat{s1, s2, s3},
		[]domain.Ticket{t1, t2, t3},
	)

	want := []domain.SeatAssignment{
		{SeatID: s3.ID, TicketID: t2.ID},
		{SeatID: s2.ID, TicketID: t3.ID},
		{SeatID: s1.ID, TicketID: t1.ID},
	}
	assert.Equal(t, want, got)
}

func TestPairSeatsWithTickets_IsIndependentOfInputOrder(t *testing.T) {
	cat := uuid.New()
	seats := []domain.Seat{seat(0, 0, cat), seat(0, 1, cat), seat(1, 0, cat), seat(1, 1, cat)}

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tickets := make([]domain.Ticket, 4)
	for i := range tickets {
		// Same creation time, as for tickets created in one batch.
		tickets[i] = domain.Ticket{ID: uuid.New(), CreatedAt: created}
	}

	firstTicket := tickets[0].ID
	first := domain.PairSeatsWithTickets(seats, tickets)
	assert.Equal(t, firstTicket, tickets[0].ID, "input slice must not be reordered")

	reversedSeats := []domain.Seat{seats[3], seats[2], seats[1], seats[0]}
	reversedTickets := []domain.Ticket{tickets[3], tickets[2], tickets[1], tickets[0]}
	second := domain.PairSeatsWithTickets(reversedSeats, reversedTickets)

	assert.Equal(t, first, second)
	assert.Equal(t, seats[0].ID, first[0].SeatID)
}

func TestValidateSeatGroupCreation(t *testing.T) {
	cat := uuid.New()

	var seatingErr *domain.SeatingError

	err := domain.ValidateSeatGroupCreation(cat, nil)
	require.True(t, errors.As(err, &seatingErr))

	err = domain.ValidateSeatGroupCreation(cat, []domain.Seat{seat(0, 0, cat), seat(0, 1, uuid.New())})
	require.True(t, errors.As(err, &seatingErr))

	assert.NoError(t, domain.ValidateSeatGroupCreation(cat, []domain.Seat{seat(0, 0, cat)}))
}

func TestValidateSeatGroupOccupancy(t *testing.T) {
	cat := uuid.New()

	group := func(n int) domain.SeatGroup {
		g := domain.SeatGroup{ID: uuid.New(), CategoryID: cat, SeatQuantity: n}
		for i := 0; i < n; i++ {
			g.Seats = append(g.Seats, seat(i, 0, cat))
		}
		return g
	}
	bundle := func(n int) domain.TicketBundle {
		b := domain.TicketBundle{ID: uuid.New(), CategoryID: cat, TicketQuantity: n}
		for i := 0; i < n; i++ {
			b.TicketIDs = append(b.TicketIDs, uuid.New())
		}
		return b
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, domain.ValidateSeatGroupOccupancy(group(3), bundle(3)))
	})

	t.Run("category mismatch", func(t *testing.T) {
		b := bundle(3)
		b.CategoryID = uuid.New()
		err := domain.ValidateSeatGroupOccupancy(group(3), b)
		var se *domain.SeatingError
		require.ErrorAs(t, err, &se)
		assert.Contains(t, se.Message, "categories")
	})

	t.Run("declared quantity mismatch", func(t *testing.T) {
		err := domain.ValidateSeatGroupOccupancy(group(2), bundle(3))
		var se *domain.SeatingError
		require.ErrorAs(t, err, &se)
		assert.Contains(t, se.Message, "quantities")
	})

	t.Run("actual seat count drifted", func(t *testing.T) {
		g := group(3)
		g.Seats = g.Seats[:2]
		err := domain.ValidateSeatGroupOccupancy(g, bundle(3))
		var se *domain.SeatingError
		require.ErrorAs(t, err, &se)
		assert.Contains(t, se.Message, "quantities")
	})

	t.Run("actual ticket count drifted", func(t *testing.T) {
		b := bundle(3)
		b.TicketIDs = b.TicketIDs[:1]
		err := domain.ValidateSeatGroupOccupancy(group(3), b)
		var se *domain.SeatingError
		require.ErrorAs(t, err, &se)
	})

	t.Run("seat already occupied", func(t *testing.T) {
		g := group(2)
		occupant := uuid.New()
		g.Seats[1].OccupiedByTicketID = &occupant
		err := domain.ValidateSeatGroupOccupancy(g, bundle(2))
		var se *domain.SeatingError
		require.ErrorAs(t, err, &se)
		assert.Contains(t, se.Message, "occupied")
	})
}
