package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

func TestPrecondition_IsMet_Boundary(t *testing.T) {
	at := time.Date(2025, 6, 17, 18, 0, 0, 0, time.UTC)
	p := domain.SeatReservationPrecondition{AtEarliest: at, MinimumTicketQuantity: 10}

	assert.True(t, p.IsMet(at, 10))
	assert.False(t, p.IsMet(at.Add(-time.Second), 10))
	assert.False(t, p.IsMet(at, 9))
	assert.True(t, p.IsMet(at.Add(time.Hour), 11))
}

func TestArePreconditionsMet(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC) }

	tiers := []domain.SeatReservationPrecondition{
		{AtEarliest: day(1), MinimumTicketQuantity: 10},
		{AtEarliest: day(5), MinimumTicketQuantity: 5},
		{AtEarliest: day(10), MinimumTicketQuantity: 1},
	}

	tests := []struct {
		name string
		now  time.Time
		qty  int
		want bool
	}{
		{"before any tier", day(1).Add(-time.Minute), 100, false},
		{"first tier large group", day(2), 10, true},
		{"first tier small group", day(2), 9, false},
		{"second tier", day(6), 5, true},
		{"second tier too few", day(6), 4, false},
		{"last tier single ticket", day(10), 1, true},
		{"no tickets", day(20), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ArePreconditionsMet(tiers, tt.now, tt.qty))
		})
	}
}

func TestArePreconditionsMet_EmptySetIsNotMet(t *testing.T) {
	assert.False(t, domain.ArePreconditionsMet(nil, time.Now(), 100))
}
