//go:build integration

package postgresrepo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/postgres"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	postgresrepo "github.com/kirinyoku/seatkeeper/internal/repository/postgres"
	"github.com/kirinyoku/seatkeeper/internal/service/seating"
	"github.com/kirinyoku/seatkeeper/internal/service/ticketing"
)

const partyID = "lan-2025"

// startPostgres runs a throwaway postgres container and returns a migrated
// pool. Run with: go test -tags integration ./internal/repository/postgres/
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "seatkeeper",
				"POSTGRES_PASSWORD": "seatkeeper",
				"POSTGRES_DB":       "seatkeeper",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(cleanupCtx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://seatkeeper:seatkeeper@%s:%s/seatkeeper?sslmode=disable", host, port.Port())

	pool, err := postgres.New(ctx, postgres.Config{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	require.NoError(t, postgres.Migrate(ctx, pool), "migrations are repeatable")

	return pool
}

func TestStore_Integration(t *testing.T) {
	ctx := context.Background()
	store := postgresrepo.NewStore(startPostgres(t))

	owner := domain.User{ID: uuid.New(), ScreenName: "owner"}
	orga := domain.User{ID: uuid.New(), ScreenName: "orga"}
	require.NoError(t, store.Directory().UpsertParties(ctx, domain.Party{ID: partyID, Title: "LAN 2025"}))
	require.NoError(t, store.Directory().UpsertUsers(ctx, owner, orga))

	tickets := ticketing.New(store, nil, nil, ticketing.Config{})
	seats := seating.New(store, nil, seating.Config{})

	category, err := tickets.CreateCategory(ctx, partyID, "Standard")
	require.NoError(t, err)
	area, err := seats.CreateArea(ctx, partyID, "hall", "Hall")
	require.NoError(t, err)

	newSeat := func(x, y int) domain.Seat {
		s, err := seats.CreateSeat(ctx, area.ID, x, y, category.ID, nil)
		require.NoError(t, err)
		return *s
	}

	t.Run("seat occupancy", func(t *testing.T) {
		ticket, err := tickets.CreateTicket(ctx, category.ID, owner.ID, ticketing.CreateOptions{})
		require.NoError(t, err)
		s1, s2 := newSeat(1, 1), newSeat(2, 1)

		require.NoError(t, seats.OccupySeat(ctx, ticket.ID, s1.ID, orga.ID))
		require.NoError(t, seats.OccupySeat(ctx, ticket.ID, s2.ID, orga.ID))

		got, err := seats.GetSeat(ctx, s2.ID)
		require.NoError(t, err)
		require.NotNil(t, got.OccupiedByTicketID)
		assert.Equal(t, ticket.ID, *got.OccupiedByTicketID)

		got, err = seats.GetSeat(ctx, s1.ID)
		require.NoError(t, err)
		assert.Nil(t, got.OccupiedByTicketID)

		log, err := tickets.TicketLog(ctx, ticket.ID)
		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.Equal(t, s1.ID.String(), log[1].Data["previous_seat_id"])

		other, err := tickets.CreateTicket(ctx, category.ID, owner.ID, ticketing.CreateOptions{})
		require.NoError(t, err)
		err = seats.OccupySeat(ctx, other.ID, s2.ID, orga.ID)
		var occupied domain.SeatAlreadyOccupiedError
		assert.ErrorAs(t, err, &occupied)
	})

	t.Run("ticket codes are unique per party", func(t *testing.T) {
		ticket, err := tickets.CreateTicket(ctx, category.ID, owner.ID, ticketing.CreateOptions{})
		require.NoError(t, err)

		dup := *ticket
		dup.ID = uuid.New()
		err = store.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
			return tx.Tickets().Insert(ctx, []domain.Ticket{dup})
		})
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		boom := fmt.Errorf("boom")
		id := uuid.New()

		err := store.RunTx(ctx, func(ctx context.Context, tx repository.Repos) error {
			if err := tx.Categories().Insert(ctx, domain.TicketCategory{ID: id, PartyID: partyID, Title: "Rolled back"}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = store.Categories().Get(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("precondition needs at least one ticket", func(t *testing.T) {
		p := domain.SeatReservationPrecondition{
			ID:         uuid.New(),
			PartyID:    partyID,
			AtEarliest: time.Now().UTC(),
		}
		assert.Error(t, store.Preconditions().Insert(ctx, p))

		p.MinimumTicketQuantity = 1
		assert.NoError(t, store.Preconditions().Insert(ctx, p))
	})

	t.Run("seat group occupancy", func(t *testing.T) {
		bundle, err := tickets.CreateBundle(ctx, category.ID, 2, owner.ID, ticketing.CreateOptions{})
		require.NoError(t, err)
		group, err := seats.CreateGroup(ctx, partyID, category.ID, "Table 1",
			[]uuid.UUID{newSeat(1, 5).ID, newSeat(2, 5).ID})
		require.NoError(t, err)

		occupied, err := seats.OccupyGroup(ctx, partyID, group.ID, bundle.ID, orga.ID)
		require.NoError(t, err)
		assert.Equal(t, bundle.ID, occupied.TicketBundleID)

		got, err := seats.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		occupants := make([]uuid.UUID, 0, len(got.Seats))
		for _, s := range got.Seats {
			require.NotNil(t, s.OccupiedByTicketID)
			occupants = append(occupants, *s.OccupiedByTicketID)
		}
		assert.ElementsMatch(t, bundle.TicketIDs, occupants)

		assert.ErrorIs(t, seats.DeleteGroup(ctx, group.ID), seating.ErrGroupOccupied)

		released, err := tickets.RevokeBundle(ctx, bundle.ID, orga.ID, "refund")
		require.NoError(t, err)
		require.NotNil(t, released)
		assert.Equal(t, group.ID, released.SeatGroupID)

		require.NoError(t, seats.DeleteGroup(ctx, group.ID))
	})
}
