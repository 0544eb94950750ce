package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTier is returned when a tier name cannot be parsed
var ErrUnknownTier = errors.New("unknown tier")

// Tier is one of the three geographic levels
type Tier int

const (
	TierCountry Tier = iota
	TierRegion
	TierArea
)

// Tiers lists every tier in canonical order
var Tiers = [...]Tier{TierCountry, TierRegion, TierArea}

// TierCount is the number of tiers
const TierCount = len(Tiers)

var tierNames = [...]string{"countries", "regions", "areas"}

// String returns the serialized (plural) tier name
func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// Valid reports whether t is one of the three known tiers
func (t Tier) Valid() bool {
	return t >= TierCountry && t <= TierArea
}

// Next returns the tier directly below t
func (t Tier) Next() (Tier, bool) {
	if !t.Valid() || t == TierArea {
		return 0, false
	}
	return t + 1, true
}

// Adjacent reports whether a and b are consecutive tiers
func Adjacent(a, b Tier) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	d := a - b
	return d == 1 || d == -1
}

// ParseTier accepts singular or plural tier names, case-insensitively
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "countries", "country":
		return TierCountry, nil
	case "regions", "region":
		return TierRegion, nil
	case "areas", "area":
		return TierArea, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// MarshalText implements encoding.TextMarshaler
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTier, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
