// Package ticketcode produces short human-readable ticket codes.
package ticketcode

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	// Alphabet leaves out vowels, to avoid accidental words, and 0/1,
	// which are easily confused with O/I.
	Alphabet = "BCDFGHJKLMNPQRSTVWXYZ23456789"

	Length = 5

	// MaxAttemptsPerCode bounds how often a single code is redrawn when it
	// collides with one drawn earlier in the same call.
	MaxAttemptsPerCode = 4
)

var ErrGenerationFailed = errors.New("ticket code generation failed")

// Generator draws codes from a randomness source.
type Generator struct {
	rand io.Reader
}

// New returns a Generator reading from crypto/rand.
func New() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewWithSource returns a Generator reading from r.
func NewWithSource(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// GenerateCodes returns n pairwise distinct codes.
func (g *Generator) GenerateCodes(n int) ([]string, error) {
	const op = "ticketcode.Generator.GenerateCodes"

	if n < 1 {
		return nil, fmt.Errorf("%s: invalid quantity %d: %w", op, n, ErrGenerationFailed)
	}

	if uint64(n) > codeSpace() {
		return nil, fmt.Errorf("%s: quantity %d exceeds code space: %w", op, n, ErrGenerationFailed)
	}

	seen := make(map[string]struct{}, n)
	codes := make([]string, 0, n)

	for len(codes) < n {
		code, err := g.generateNotIn(seen)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}

		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes, nil
}

func (g *Generator) generateNotIn(seen map[string]struct{}) (string, error) {
	for attempt := 0; attempt < MaxAttemptsPerCode; attempt++ {
		code, err := g.generate()
		if err != nil {
			return "", err
		}

		if _, dup := seen[code]; !dup {
			return code, nil
		}
	}

	return "", fmt.Errorf("no unique code after %d attempts: %w", MaxAttemptsPerCode, ErrGenerationFailed)
}

func (g *Generator) generate() (string, error) {
	limit := big.NewInt(int64(len(Alphabet)))

	b := make([]byte, Length)
	for i := range b {
		n, err := rand.Int(g.rand, limit)
		if err != nil {
			return "", fmt.Errorf("read randomness: %w", err)
		}
		b[i] = Alphabet[n.Int64()]
	}

	return string(b), nil
}

func codeSpace() uint64 {
	space := uint64(1)
	for i := 0; i < Length; i++ {
		space *= uint64(len(Alphabet))
	}
	return space
}

// IsWellFormed reports whether code has the shape of a ticket code. Upper
// case letters and digits outside the alphabet are accepted so codes typed
// in by hand can still be looked up.
func IsWellFormed(code string) bool {
	if len(code) != Length {
		return false
	}

	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}

	return true
}
