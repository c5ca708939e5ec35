// Package servicetest builds in-memory service fixtures for tests.
package servicetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository/memory"
	"github.com/kirinyoku/seatkeeper/internal/service/seating"
	"github.com/kirinyoku/seatkeeper/internal/service/ticketing"
	"github.com/kirinyoku/seatkeeper/internal/ticketcode"
)

const PartyID = "lan-2025"

// Fixture is a party with one ticket category and one seating area, backed
// by a fresh memory store.
type Fixture struct {
	Store     *memory.Store
	Ticketing *ticketing.Service
	Seating   *seating.Service

	Owner     domain.User
	Initiator domain.User
	Category  domain.TicketCategory
	Area      domain.SeatingArea
}

func New(t testing.TB) *Fixture {
	return NewWithCodes(t, ticketcode.New())
}

// NewWithCodes uses codes for ticket creation.
func NewWithCodes(t testing.TB, codes *ticketcode.Generator) *Fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	store.PutParty(domain.Party{ID: PartyID, Title: "LAN 2025"})

	f := &Fixture{
		Store:     store,
		Ticketing: ticketing.New(store, nil, codes, ticketing.Config{}),
		Seating:   seating.New(store, nil, seating.Config{}),
	}

	f.Owner = f.User(t, "owner")
	f.Initiator = f.User(t, "orga")

	category, err := f.Ticketing.CreateCategory(ctx, PartyID, "Standard")
	require.NoError(t, err)
	f.Category = *category

	area, err := f.Seating.CreateArea(ctx, PartyID, "main-hall", "Main Hall")
	require.NoError(t, err)
	f.Area = *area

	return f
}

// User stores a new active user.
func (f *Fixture) User(t testing.TB, screenName string) domain.User {
	t.Helper()

	u := domain.User{ID: uuid.New(), ScreenName: screenName}
	f.Store.PutUser(u)
	return u
}

// Seat creates a seat of the fixture category in the fixture area.
func (f *Fixture) Seat(t testing.TB, x, y int) domain.Seat {
	t.Helper()

	s, err := f.Seating.CreateSeat(context.Background(), f.Area.ID, x, y, f.Category.ID, nil)
	require.NoError(t, err)
	return *s
}

// Ticket creates a ticket of the fixture category owned by Owner.
func (f *Fixture) Ticket(t testing.TB) domain.Ticket {
	t.Helper()

	tk, err := f.Ticketing.CreateTicket(context.Background(), f.Category.ID, f.Owner.ID, ticketing.CreateOptions{})
	require.NoError(t, err)
	return *tk
}

// Bundle creates a bundle of n tickets owned by Owner.
func (f *Fixture) Bundle(t testing.TB, n int) domain.TicketBundle {
	t.Helper()

	b, err := f.Ticketing.CreateBundle(context.Background(), f.Category.ID, n, f.Owner.ID, ticketing.CreateOptions{})
	require.NoError(t, err)
	return *b
}

// Group creates a seat group over the given seats.
func (f *Fixture) Group(t testing.TB, title string, seats ...domain.Seat) domain.SeatGroup {
	t.Helper()

	ids := make([]uuid.UUID, 0, len(seats))
	for _, s := range seats {
		ids = append(ids, s.ID)
	}

	g, err := f.Seating.CreateGroup(context.Background(), PartyID, f.Category.ID, title, ids)
	require.NoError(t, err)
	return *g
}

// GetTicket reloads a ticket from the store.
func (f *Fixture) GetTicket(t testing.TB, id uuid.UUID) domain.Ticket {
	t.Helper()

	tk, err := f.Store.Tickets().Get(context.Background(), id)
	require.NoError(t, err)
	return *tk
}

// LogTypes returns the event types logged for a ticket, oldest first.
func (f *Fixture) LogTypes(t testing.TB, ticketID uuid.UUID) []domain.TicketLogEventType {
	t.Helper()

	entries, err := f.Store.TicketLog().ListByTicket(context.Background(), ticketID)
	require.NoError(t, err)

	out := make([]domain.TicketLogEventType, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.EventType)
	}
	return out
}
