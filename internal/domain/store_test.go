package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnection(t *testing.T) {
	dk := Ref(TierCountry, "Denmark")
	dk1 := Ref(TierRegion, "DK1")
	dk1a := Ref(TierArea, "DK1_A")

	t.Run("country then region", func(t *testing.T) {
		c, err := NewConnection(dk, dk1)
		require.NoError(t, err)
		assert.Equal(t, Connection{Source: dk, Target: dk1}, c)
	})

	t.Run("area then region is reoriented", func(t *testing.T) {
		c, err := NewConnection(dk1a, dk1)
		require.NoError(t, err)
		assert.Equal(t, Connection{Source: dk1, Target: dk1a}, c)
	})

	t.Run("same tier is rejected", func(t *testing.T) {
		_, err := NewConnection(dk1, Ref(TierRegion, "DK2"))
		assert.ErrorIs(t, err, ErrSameTier)
	})

	t.Run("country and area are rejected in both orders", func(t *testing.T) {
		_, err := NewConnection(dk, dk1a)
		assert.ErrorIs(t, err, ErrCountryArea)
		_, err = NewConnection(dk1a, dk)
		assert.ErrorIs(t, err, ErrCountryArea)
	})
}

func TestConnectionStore(t *testing.T) {
	dk := Ref(TierCountry, "Denmark")

	t.Run("appends in order and keeps duplicates", func(t *testing.T) {
		s := NewConnectionStore()
		require.NoError(t, s.Add(Connection{Source: dk, Target: Ref(TierRegion, "DK1")}))
		require.NoError(t, s.Add(Connection{Source: dk, Target: Ref(TierRegion, "DK2")}))
		require.NoError(t, s.Add(Connection{Source: dk, Target: Ref(TierRegion, "DK1")}))

		assert.Equal(t, []NodeID{"DK1", "DK2", "DK1"}, s.Targets(dk))
		assert.Equal(t, 3, s.Len())
	})

	t.Run("targets are a copy", func(t *testing.T) {
		s := NewConnectionStore()
		require.NoError(t, s.Add(Connection{Source: dk, Target: Ref(TierRegion, "DK1")}))
		got := s.Targets(dk)
		got[0] = "mutated"
		assert.Equal(t, []NodeID{"DK1"}, s.Targets(dk))
	})

	t.Run("rejects non adjacent links", func(t *testing.T) {
		s := NewConnectionStore()
		err := s.Add(Connection{Source: dk, Target: Ref(TierArea, "DK1_A")})
		assert.ErrorIs(t, err, ErrCountryArea)
		err = s.Add(Connection{Source: Ref(TierRegion, "DK1"), Target: dk})
		assert.Error(t, err)
		assert.Zero(t, s.Len())
	})

	t.Run("same name in different tiers stays apart", func(t *testing.T) {
		s := NewConnectionStore()
		require.NoError(t, s.Add(Connection{Source: Ref(TierCountry, "North"), Target: Ref(TierRegion, "North")}))
		require.NoError(t, s.Add(Connection{Source: Ref(TierRegion, "North"), Target: Ref(TierArea, "N1")}))

		assert.Equal(t, []NodeID{"North"}, s.Targets(Ref(TierCountry, "North")))
		assert.Equal(t, []NodeID{"N1"}, s.Targets(Ref(TierRegion, "North")))
	})

	t.Run("lists connections by source in first use order", func(t *testing.T) {
		s := NewConnectionStore()
		r1 := Ref(TierRegion, "DK1")
		require.NoError(t, s.Add(Connection{Source: r1, Target: Ref(TierArea, "A")}))
		require.NoError(t, s.Add(Connection{Source: dk, Target: r1}))
		require.NoError(t, s.Add(Connection{Source: r1, Target: Ref(TierArea, "B")}))

		assert.Equal(t, []Connection{
			{Source: r1, Target: Ref(TierArea, "A")},
			{Source: r1, Target: Ref(TierArea, "B")},
			{Source: dk, Target: r1},
		}, s.Connections())
	})
}
