package seatimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kirinyoku/seatkeeper/internal/domain"
	"github.com/kirinyoku/seatkeeper/internal/repository"
	"github.com/kirinyoku/seatkeeper/internal/service/seating"
	"github.com/kirinyoku/seatkeeper/internal/service/ticketing"
)

// Result counts what an import created. Categories that already existed
// are reused and not counted.
type Result struct {
	Categories int
	Areas      int
	Seats      int
	Groups     int
}

type Importer struct {
	directory repository.Directory
	ticketing *ticketing.Service
	seating   *seating.Service
	log       *slog.Logger
}

func NewImporter(
	directory repository.Directory,
	ticketingSvc *ticketing.Service,
	seatingSvc *seating.Service,
	log *slog.Logger,
) *Importer {
	return &Importer{
		directory: directory,
		ticketing: ticketingSvc,
		seating:   seatingSvc,
		log:       log,
	}
}

// Import creates the layout's entities in document order. It is not atomic:
// a failure leaves everything created before it in place, and re-running
// the same document fails on the first existing area.
//
// Returns:
//   - Result: what was created before returning.
//   - error: the first service error, wrapped with the entity it concerned.
func (i *Importer) Import(ctx context.Context, l *Layout) (Result, error) {
	const op = "seatimport.Importer.Import"

	var res Result

	if err := i.directory.UpsertParties(ctx, domain.Party{
		ID:       l.Party.ID,
		Title:    l.Party.Title,
		Archived: l.Party.Archived,
	}); err != nil {
		return res, fmt.Errorf("%s: party %q:%w", op, l.Party.ID, err)
	}

	users := make([]domain.User, 0, len(l.Users))
	for _, u := range l.Users {
		users = append(users, domain.User{ID: u.ID, ScreenName: u.ScreenName})
	}
	if err := i.directory.UpsertUsers(ctx, users...); err != nil {
		return res, fmt.Errorf("%s: users:%w", op, err)
	}

	categories, created, err := i.categories(ctx, l.Party.ID, l.Categories)
	res.Categories = created
	if err != nil {
		return res, fmt.Errorf("%s:%w", op, err)
	}

	seatIDs := map[string]uuid.UUID{}
	for _, a := range l.Areas {
		area, err := i.seating.CreateArea(ctx, l.Party.ID, a.Slug, a.Title)
		if err != nil {
			return res, fmt.Errorf("%s: area %q:%w", op, a.Slug, err)
		}
		res.Areas++

		for _, s := range a.Seats {
			var label *string
			if s.Label != "" {
				label = &s.Label
			}

			seat, err := i.seating.CreateSeat(ctx, area.ID, s.X, s.Y, categories[s.Category], label)
			if err != nil {
				return res, fmt.Errorf("%s: seat (%d, %d) in %q:%w", op, s.X, s.Y, a.Slug, err)
			}
			res.Seats++

			if label != nil {
				seatIDs[*label] = seat.ID
			}
		}
	}

	for _, g := range l.Groups {
		ids := make([]uuid.UUID, 0, len(g.Seats))
		for _, label := range g.Seats {
			ids = append(ids, seatIDs[label])
		}

		if _, err := i.seating.CreateGroup(ctx, l.Party.ID, categories[g.Category], g.Title, ids); err != nil {
			return res, fmt.Errorf("%s: group %q:%w", op, g.Title, err)
		}
		res.Groups++
	}

	i.log.Info("seat layout imported",
		slog.String("party_id", l.Party.ID),
		slog.Int("areas", res.Areas),
		slog.Int("seats", res.Seats),
		slog.Int("groups", res.Groups),
	)

	return res, nil
}

// categories returns the IDs of the named categories, creating the ones the
// party does not have yet.
func (i *Importer) categories(
	ctx context.Context,
	partyID string,
	titles []string,
) (map[string]uuid.UUID, int, error) {
	existing, err := i.ticketing.PartyCategories(ctx, partyID)
	if err != nil {
		return nil, 0, err
	}

	ids := make(map[string]uuid.UUID, len(titles))
	for _, c := range existing {
		ids[c.Title] = c.ID
	}

	created := 0
	for _, title := range titles {
		if _, ok := ids[title]; ok {
			continue
		}

		c, err := i.ticketing.CreateCategory(ctx, partyID, title)
		if errors.Is(err, ticketing.ErrCategoryExists) {
			return nil, created, fmt.Errorf("category %q was created concurrently:%w", title, err)
		}
		if err != nil {
			return nil, created, fmt.Errorf("category %q:%w", title, err)
		}

		ids[title] = c.ID
		created++
	}

	return ids, created, nil
}
