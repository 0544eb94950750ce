package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMarshalJSON(t *testing.T) {
	t.Run("empty document has all tiers", func(t *testing.T) {
		data, err := json.Marshal(NewDocument())
		require.NoError(t, err)
		assert.Equal(t, `{"countries":{},"regions":{},"areas":{}}`, string(data))
	})

	t.Run("keeps render order and writes empty lists", func(t *testing.T) {
		doc := NewDocument()
		doc.Set(TierCountry, "Sweden", nil)
		doc.Set(TierCountry, "Denmark", []NodeID{"DK2", "DK1"})
		doc.Set(TierRegion, "DK2", nil)
		doc.Set(TierRegion, "DK1", nil)

		data, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.Equal(t,
			`{"countries":{"Sweden":[],"Denmark":["DK2","DK1"]},"regions":{"DK2":[],"DK1":[]},"areas":{}}`,
			string(data))
	})

	t.Run("duplicate id keeps first position and last targets", func(t *testing.T) {
		doc := NewDocument()
		doc.Set(TierRegion, "DK1", []NodeID{"A"})
		doc.Set(TierRegion, "DK2", nil)
		doc.Set(TierRegion, "DK1", []NodeID{"B"})

		assert.Equal(t, []NodeID{"DK1", "DK2"}, doc.Nodes(TierRegion))
		links, ok := doc.Links(TierRegion, "DK1")
		assert.True(t, ok)
		assert.Equal(t, []NodeID{"B"}, links)
	})
}

func TestDocumentUnmarshalJSON(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		var doc Document
		err := json.Unmarshal([]byte(`{"countries":{"Norway":["NO1"],"Denmark":[]},"regions":{"NO1":[]}}`), &doc)
		require.NoError(t, err)

		assert.Equal(t, []NodeID{"Norway", "Denmark"}, doc.Nodes(TierCountry))
		assert.Equal(t, []NodeID{"NO1"}, doc.Nodes(TierRegion))
		assert.Empty(t, doc.Nodes(TierArea))
		links, _ := doc.Links(TierCountry, "Norway")
		assert.Equal(t, []NodeID{"NO1"}, links)
	})

	t.Run("rejects unknown tier", func(t *testing.T) {
		var doc Document
		err := json.Unmarshal([]byte(`{"continents":{}}`), &doc)
		assert.ErrorIs(t, err, ErrUnknownTier)
	})

	t.Run("rejects non object", func(t *testing.T) {
		var doc Document
		assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &doc))
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		var doc Document
		assert.Error(t, doc.UnmarshalJSON([]byte(`{"countries":{}} junk`)))
		assert.Error(t, doc.UnmarshalJSON([]byte(`{"countries":{}}{}`)))
		assert.NoError(t, doc.UnmarshalJSON([]byte("{\"countries\":{}}\n")))
	})
}

func TestDocumentCloneAndEqual(t *testing.T) {
	doc := NewDocument()
	doc.Set(TierCountry, "Denmark", []NodeID{"DK1"})

	clone := doc.Clone()
	assert.True(t, doc.Equal(clone))

	clone.Set(TierCountry, "Denmark", nil)
	assert.False(t, doc.Equal(clone))
	links, _ := doc.Links(TierCountry, "Denmark")
	assert.Equal(t, []NodeID{"DK1"}, links)
}

func TestGenerationFinish(t *testing.T) {
	g := NewGeneration("id", "/tmp/out", NewDocument())
	assert.Equal(t, GenerationRunning, g.Status)

	g.Finish([]string{"CCC.inc"}, nil)
	assert.Equal(t, GenerationSucceeded, g.Status)
	require.NotNil(t, g.FinishedAt)

	f := NewGeneration("id2", "/tmp/out", NewDocument())
	f.Finish(nil, assert.AnError)
	assert.Equal(t, GenerationFailed, f.Status)
	assert.Equal(t, assert.AnError.Error(), f.Error)
}
