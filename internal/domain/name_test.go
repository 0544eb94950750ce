package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw  string
		want NodeID
	}{
		{"Denmark", "Denmark"},
		{"  Denmark  ", "Denmark"},
		{"North  Sea\tCoast", "North_Sea_Coast"},
		{"DK1 A", "DK1_A"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.raw), "NormalizeName(%q)", tt.raw)
	}
}

func TestParseNames(t *testing.T) {
	t.Run("keeps input order", func(t *testing.T) {
		assert.Equal(t, []NodeID{"Denmark", "Norway", "Sweden"}, ParseNames("Denmark, Norway ,Sweden"))
	})

	t.Run("drops empty fragments", func(t *testing.T) {
		assert.Equal(t, []NodeID{"DK1", "DK2"}, ParseNames(",DK1,, ,DK2,"))
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		assert.Equal(t, []NodeID{"DK1", "DK1"}, ParseNames("DK1, DK1"))
	})

	t.Run("empty text yields no names", func(t *testing.T) {
		assert.Empty(t, ParseNames(""))
	})

	t.Run("collapses internal whitespace", func(t *testing.T) {
		assert.Equal(t, []NodeID{"West_Denmark"}, ParseNames(" West   Denmark "))
	})
}
