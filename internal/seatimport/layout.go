// Package seatimport loads a party's seating plan from YAML: ticket
// categories, areas with their seats, and seat groups.
package seatimport

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var ErrInvalidLayout = errors.New("invalid seat layout")

// Layout is the YAML document. Seats are referenced from groups by label,
// so grouped seats need a label unique within the document.
//
//	party:
//	  id: lan-2025
//	  title: LAN 2025
//	categories: [Standard]
//	areas:
//	  - slug: hall-a
//	    title: Hall A
//	    seats:
//	      - {x: 10, y: 10, category: Standard, label: A-1}
//	groups:
//	  - {title: Table 1, category: Standard, seats: [A-1]}
type Layout struct {
	Party      Party    `yaml:"party"`
	Users      []User   `yaml:"users"`
	Categories []string `yaml:"categories"`
	Areas      []Area   `yaml:"areas"`
	Groups     []Group  `yaml:"groups"`
}

type Party struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Archived bool   `yaml:"archived"`
}

type User struct {
	ID         uuid.UUID `yaml:"id"`
	ScreenName string    `yaml:"screen_name"`
}

type Area struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	Seats []Seat `yaml:"seats"`
}

type Seat struct {
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Category string `yaml:"category"`
	Label    string `yaml:"label"`
}

type Group struct {
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Seats    []string `yaml:"seats"`
}

// Parse decodes and validates a layout. Unknown keys are rejected.
func Parse(r io.Reader) (*Layout, error) {
	const op = "seatimport.Parse"

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var l Layout
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("%s: %v:%w", op, err, ErrInvalidLayout)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &l, nil
}

// Validate checks the references inside the document. Whether the
// referenced entities can actually be created is left to the services.
func (l *Layout) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(l.Party.ID) == "" {
		addf("party.id is required")
	}

	categories := make(map[string]struct{}, len(l.Categories))
	for _, c := range l.Categories {
		if _, dup := categories[c]; dup {
			addf("category %q is listed twice", c)
		}
		categories[c] = struct{}{}
	}

	for _, u := range l.Users {
		if u.ID == uuid.Nil {
			addf("user %q has no id", u.ScreenName)
		}
	}

	labels := map[string]struct{}{}
	slugs := map[string]struct{}{}
	for _, a := range l.Areas {
		if a.Slug == "" {
			addf("area %q has no slug", a.Title)
		}
		if _, dup := slugs[a.Slug]; dup {
			addf("area slug %q is used twice", a.Slug)
		}
		slugs[a.Slug] = struct{}{}

		for _, s := range a.Seats {
			if _, ok := categories[s.Category]; !ok {
				addf("seat (%d, %d) in area %q uses unknown category %q", s.X, s.Y, a.Slug, s.Category)
			}
			if s.Label == "" {
				continue
			}
			if _, dup := labels[s.Label]; dup {
				addf("seat label %q is used twice", s.Label)
			}
			labels[s.Label] = struct{}{}
		}
	}

	for _, g := range l.Groups {
		if _, ok := categories[g.Category]; !ok {
			addf("group %q uses unknown category %q", g.Title, g.Category)
		}
		if len(g.Seats) == 0 {
			addf("group %q has no seats", g.Title)
		}
		for _, label := range g.Seats {
			if _, ok := labels[label]; !ok {
				addf("group %q references unknown seat %q", g.Title, label)
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s:%w", strings.Join(problems, "; "), ErrInvalidLayout)
	}

	return nil
}
