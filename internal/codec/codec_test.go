package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofilemaker/internal/domain"
)

func sampleDocument() *domain.Document {
	doc := domain.NewDocument()
	doc.Set(domain.TierCountry, "Denmark", []domain.NodeID{"DK1"})
	doc.Set(domain.TierRegion, "DK1", []domain.NodeID{"DK1_A"})
	doc.Set(domain.TierArea, "DK1_A", nil)
	return doc
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleDocument(), &buf))

	want := `{
  "countries": {
    "Denmark": [
      "DK1"
    ]
  },
  "regions": {
    "DK1": [
      "DK1_A"
    ]
  },
  "areas": {
    "DK1_A": []
  }
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("JSON export mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONParse(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(sampleDocument(), &buf))

	doc, err := NewJSONCodec().Parse(&buf)
	require.NoError(t, err)
	assert.True(t, sampleDocument().Equal(doc))

	_, err = NewJSONCodec().Parse(strings.NewReader(`{"countries":`))
	assert.Error(t, err)
}

func TestCanonicalIsStable(t *testing.T) {
	a, err := Canonical(sampleDocument())
	require.NoError(t, err)
	b, err := Canonical(sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "{\n  \"countries\""))
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(sampleDocument(), &buf))

	want := `countries:
  Denmark: [DK1]
regions:
  DK1: [DK1_A]
areas:
  DK1_A: []
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("YAML export mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLParse(t *testing.T) {
	t.Run("reads what it writes", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewYAMLCodec().Export(sampleDocument(), &buf))

		doc, err := NewYAMLCodec().Parse(&buf)
		require.NoError(t, err)
		assert.True(t, sampleDocument().Equal(doc))
	})

	t.Run("keeps node order", func(t *testing.T) {
		doc, err := NewYAMLCodec().Parse(strings.NewReader("countries:\n  Sweden: []\n  Denmark: []\nregions:\n"))
		require.NoError(t, err)
		assert.Equal(t, []domain.NodeID{"Sweden", "Denmark"}, doc.Nodes(domain.TierCountry))
		assert.Empty(t, doc.Nodes(domain.TierRegion))
	})

	t.Run("rejects unknown tiers", func(t *testing.T) {
		_, err := NewYAMLCodec().Parse(strings.NewReader("continents: {}\n"))
		assert.ErrorIs(t, err, domain.ErrUnknownTier)
	})

	t.Run("rejects non mapping", func(t *testing.T) {
		_, err := NewYAMLCodec().Parse(strings.NewReader("- a\n- b\n"))
		assert.Error(t, err)
	})
}

func TestForFormat(t *testing.T) {
	c, err := ForFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Format())

	_, err = ForFormat("ansible")
	assert.Error(t, err)
	assert.Contains(t, Formats(), "json")
}
