// Package domain defines the core types of the geographic set editor.
//
// The editor maps three ordered tiers of geographic entities onto each other:
// countries contain regions and regions contain areas. Users type tier members
// as free text and link members of adjacent tiers pairwise.
//
// # Core Types
//
// Tier is one of the three fixed, totally ordered levels. Only consecutive
// tiers may be linked, and the lower tier is always the source of a link.
//
// NodeID is the canonical, whitespace-normalized identifier of a tier member.
// NodeRef scopes a NodeID to its tier.
//
// ConnectionStore is the append-only record of every link made during a
// session. Editing tier text never removes links from the store; it only
// changes which of them are visible.
//
// Selection is the two-click state machine that turns a pair of compatible
// clicks into one Connection.
//
// Document is the canonical, ordered serialization of the visible links,
// grouped by tier. It is the only data handed to file generation.
//
// # Design Principles
//
// - No I/O and no external dependencies
// - Single writer: nothing in this package locks
// - Rejections are values, not panics
package domain
