package domain

import "strings"

// NodeID is the canonical identifier of a tier member
type NodeID string

// NodeSeparator replaces internal whitespace runs in a NodeID
const NodeSeparator = "_"

// NodeRef identifies a rendered node: an id within a tier
type NodeRef struct {
	Tier Tier   `json:"tier"`
	ID   NodeID `json:"id"`
}

// Ref builds a NodeRef
func Ref(tier Tier, id NodeID) NodeRef {
	return NodeRef{Tier: tier, ID: id}
}

func (r NodeRef) String() string {
	return r.Tier.String() + "/" + string(r.ID)
}

// NormalizeName trims a raw name and collapses whitespace runs into NodeSeparator.
// It returns "" for names that contain only whitespace.
func NormalizeName(raw string) NodeID {
	return NodeID(strings.Join(strings.Fields(raw), NodeSeparator))
}

// ParseNames splits comma-separated tier text into NodeIDs in input order.
// Empty fragments are dropped; duplicates are kept.
func ParseNames(text string) []NodeID {
	parts := strings.Split(text, ",")
	ids := make([]NodeID, 0, len(parts))
	for _, part := range parts {
		if id := NormalizeName(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
