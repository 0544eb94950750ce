package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSameTier rejects a link between two members of one tier
	ErrSameTier = errors.New("cannot connect within the same tier")
	// ErrCountryArea rejects a link that skips the region tier
	ErrCountryArea = errors.New("cannot connect countries and areas directly")
)

// Connection is a directed link from a tier member to a member of the next tier
type Connection struct {
	Source NodeRef `json:"source"`
	Target NodeRef `json:"target"`
}

// NewConnection orients a and b so the lower tier is the source.
// Click order does not matter.
func NewConnection(a, b NodeRef) (Connection, error) {
	if !a.Tier.Valid() || !b.Tier.Valid() {
		return Connection{}, fmt.Errorf("%w: %s, %s", ErrUnknownTier, a.Tier, b.Tier)
	}
	if a.Tier == b.Tier {
		return Connection{}, ErrSameTier
	}
	if !Adjacent(a.Tier, b.Tier) {
		return Connection{}, ErrCountryArea
	}
	if a.Tier > b.Tier {
		a, b = b, a
	}
	return Connection{Source: a, Target: b}, nil
}

func (c Connection) String() string {
	return fmt.Sprintf("%s -> %s", c.Source, c.Target)
}

// ConnectionStore records every link made in a session.
//
// Sources are keyed by NodeRef so equal names in different tiers stay apart.
// Targets always live in the tier after their source and are kept in insertion
// order, duplicates included. Entries are never removed.
type ConnectionStore struct {
	targets map[NodeRef][]NodeID
	sources []NodeRef
	size    int
}

// NewConnectionStore creates an empty store
func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{
		targets: make(map[NodeRef][]NodeID),
	}
}

// Add appends c's target to the entry for c's source
func (s *ConnectionStore) Add(c Connection) error {
	next, ok := c.Source.Tier.Next()
	if !ok || next != c.Target.Tier {
		return fmt.Errorf("invalid connection %s: %w", c, ErrCountryArea)
	}
	if _, exists := s.targets[c.Source]; !exists {
		s.sources = append(s.sources, c.Source)
	}
	s.targets[c.Source] = append(s.targets[c.Source], c.Target.ID)
	s.size++
	return nil
}

// Targets returns a copy of the stored targets for source
func (s *ConnectionStore) Targets(source NodeRef) []NodeID {
	stored := s.targets[source]
	if len(stored) == 0 {
		return nil
	}
	out := make([]NodeID, len(stored))
	copy(out, stored)
	return out
}

// Connections lists every stored link, grouped by source in first-use order
func (s *ConnectionStore) Connections() []Connection {
	out := make([]Connection, 0, s.size)
	for _, src := range s.sources {
		next, _ := src.Tier.Next()
		for _, id := range s.targets[src] {
			out = append(out, Connection{Source: src, Target: Ref(next, id)})
		}
	}
	return out
}

// Len returns the number of stored links
func (s *ConnectionStore) Len() int {
	return s.size
}
