package ticketcode_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/ticketcode"
)

func TestGenerateCodes_AreWellFormedAndDistinct(t *testing.T) {
	g := ticketcode.New()

	codes, err := g.GenerateCodes(500)
	require.NoError(t, err)
	require.Len(t, codes, 500)

	seen := map[string]bool{}
	for _, c := range codes {
		assert.True(t, ticketcode.IsWellFormed(c), "code %q", c)
		assert.False(t, seen[c], "duplicate code %q", c)
		seen[c] = true
	}
}

func TestGenerateCodes_InvalidQuantity(t *testing.T) {
	_, err := ticketcode.New().GenerateCodes(0)
	assert.ErrorIs(t, err, ticketcode.ErrGenerationFailed)
}

func TestGenerateCodes_FailsWhenCodesKeepColliding(t *testing.T) {
	// A source of zero bytes always yields the same code.
	g := ticketcode.NewWithSource(bytes.NewReader(make([]byte, 1024)))

	_, err := g.GenerateCodes(2)
	assert.ErrorIs(t, err, ticketcode.ErrGenerationFailed)
}

func TestGenerateCodes_SourceExhausted(t *testing.T) {
	g := ticketcode.NewWithSource(bytes.NewReader(nil))

	_, err := g.GenerateCodes(1)
	assert.Error(t, err)
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"BCD23", true},
		{"AEIOU", true},
		{"01234", true},
		{"BCD2", false},
		{"BCD234", false},
		{"bcd23", false},
		{"BC-23", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ticketcode.IsWellFormed(tt.code), tt.code)
	}
}
