package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofilemaker/internal/domain"
)

func TestParseTiers(t *testing.T) {
	t.Run("strings and lists", func(t *testing.T) {
		f, err := ParseTiers([]byte(`
countries: DENMARK, NORWAY
regions:
  - DK1
  - North Sea
areas: ""
`))
		require.NoError(t, err)

		texts := f.Texts()
		assert.Equal(t, "DENMARK, NORWAY", texts[domain.TierCountry])
		assert.Equal(t, "DK1, North Sea", texts[domain.TierRegion])
		assert.Equal(t, "", texts[domain.TierArea])
		assert.Equal(t, []domain.NodeID{"DK1", "North_Sea"}, domain.ParseNames(texts[domain.TierRegion]))
	})

	t.Run("empty document", func(t *testing.T) {
		f, err := ParseTiers(nil)
		require.NoError(t, err)
		assert.Equal(t, [domain.TierCount]string{}, f.Texts())
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := ParseTiers([]byte("continents: EUROPE\n"))
		assert.Error(t, err)
	})

	t.Run("nested list entry", func(t *testing.T) {
		_, err := ParseTiers([]byte("regions:\n  - [a, b]\n"))
		assert.Error(t, err)
	})

	t.Run("mapping as tier", func(t *testing.T) {
		_, err := ParseTiers([]byte("areas:\n  x: y\n"))
		assert.Error(t, err)
	})
}

func TestLoadTiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("countries: DENMARK\n"), 0644))

	f, err := LoadTiers(path)
	require.NoError(t, err)
	assert.Equal(t, TierText("DENMARK"), f.Countries)

	_, err = LoadTiers(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
