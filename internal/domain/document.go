package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// NodeLinks is one document entry: a rendered node and its visible targets
type NodeLinks struct {
	ID      NodeID
	Targets []NodeID
}

// Document is the visible connection graph grouped by tier.
//
// It serializes as {"countries": {...}, "regions": {...}, "areas": {...}}
// with tiers in canonical order and nodes in render order.
type Document struct {
	tiers [TierCount][]NodeLinks
	index [TierCount]map[NodeID]int
}

// NewDocument creates a document with three empty tiers
func NewDocument() *Document {
	d := &Document{}
	for i := range d.index {
		d.index[i] = make(map[NodeID]int)
	}
	return d
}

// Set records the targets of id in tier.
// Setting an id twice keeps its first position and the last targets.
func (d *Document) Set(tier Tier, id NodeID, targets []NodeID) {
	if !tier.Valid() {
		return
	}
	if d.index[tier] == nil {
		d.index[tier] = make(map[NodeID]int)
	}
	cp := make([]NodeID, len(targets))
	copy(cp, targets)

	if i, ok := d.index[tier][id]; ok {
		d.tiers[tier][i].Targets = cp
		return
	}
	d.index[tier][id] = len(d.tiers[tier])
	d.tiers[tier] = append(d.tiers[tier], NodeLinks{ID: id, Targets: cp})
}

// Tier returns the entries of one tier in order
func (d *Document) Tier(tier Tier) []NodeLinks {
	if !tier.Valid() {
		return nil
	}
	return d.tiers[tier]
}

// Nodes returns the ids of one tier in order
func (d *Document) Nodes(tier Tier) []NodeID {
	entries := d.Tier(tier)
	ids := make([]NodeID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// Links returns the targets of id in tier
func (d *Document) Links(tier Tier, id NodeID) ([]NodeID, bool) {
	if !tier.Valid() {
		return nil, false
	}
	i, ok := d.index[tier][id]
	if !ok {
		return nil, false
	}
	return d.tiers[tier][i].Targets, true
}

// Clone returns a deep copy
func (d *Document) Clone() *Document {
	out := NewDocument()
	for _, t := range Tiers {
		for _, e := range d.tiers[t] {
			out.Set(t, e.ID, e.Targets)
		}
	}
	return out
}

// Equal reports whether two documents serialize identically
func (d *Document) Equal(other *Document) bool {
	a, errA := json.Marshal(d)
	b, errB := json.Marshal(other)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// MarshalJSON writes tiers and nodes in order
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for ti, t := range Tiers {
		if ti > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, t.String())
		buf.WriteString(":{")
		for ni, e := range d.tiers[t] {
			if ni > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(&buf, string(e.ID))
			buf.WriteByte(':')
			targets := e.Targets
			if targets == nil {
				targets = []NodeID{}
			}
			raw, err := json.Marshal(targets)
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	raw, _ := json.Marshal(s)
	buf.Write(raw)
}

// UnmarshalJSON reads a document while preserving key order.
// Missing tiers are left empty; unknown tier names are an error.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = *NewDocument()

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := key.(string)
		tier, err := ParseTier(name)
		if err != nil {
			return err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("tier %s: %w", name, err)
		}
		for dec.More() {
			idTok, err := dec.Token()
			if err != nil {
				return err
			}
			id, _ := idTok.(string)
			var targets []NodeID
			if err := dec.Decode(&targets); err != nil {
				return fmt.Errorf("tier %s node %s: %w", name, id, err)
			}
			d.Set(tier, NodeID(id), targets)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return fmt.Errorf("unexpected %v after document", tok)
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
