package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/kirinyoku/seatkeeper/internal/app"
	"github.com/kirinyoku/seatkeeper/internal/config"
	postgresrepo "github.com/kirinyoku/seatkeeper/internal/repository/postgres"
	"github.com/kirinyoku/seatkeeper/internal/seatimport"
	"github.com/kirinyoku/seatkeeper/internal/service/seating"
	"github.com/kirinyoku/seatkeeper/internal/service/ticketing"
)

func importCommand() *command {
	c := &command{
		name:        "import",
		description: "Create a party's categories, areas, seats and seat groups from a YAML layout",
		usage:       "seatctl import -f layout.yaml [-dry-run]",
	}

	c.run = func(args []string) error {
		fs := c.flagSet()
		file := fs.String("f", "", "layout file")
		dryRun := fs.Bool("dry-run", false, "validate the layout without touching the database")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *file == "" {
			fs.Usage()
			return fmt.Errorf("layout file required")
		}

		f, err := os.Open(*file)
		if err != nil {
			return err
		}
		defer f.Close()

		layout, err := seatimport.Parse(f)
		if err != nil {
			return err
		}
		if *dryRun {
			fmt.Printf("layout for party %q is valid\n", layout.Party.ID)
			return nil
		}

		pgCfg, err := config.LoadPostgres()
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		pool, err := app.OpenPostgres(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		store := postgresrepo.NewStore(pool)
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		imp := seatimport.NewImporter(
			store.Directory(),
			ticketing.New(store, nil, nil, ticketing.Config{}),
			seating.New(store, nil, seating.Config{}),
			logger,
		)

		res, err := imp.Import(ctx, layout)
		fmt.Printf("created %d categories, %d areas, %d seats, %d groups\n",
			res.Categories, res.Areas, res.Seats, res.Groups)
		return err
	}

	return c
}
