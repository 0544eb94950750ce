// Package loader reads tier texts from a YAML file.
//
// Each tier is either a comma-separated string, as typed into the editor, or
// a list of names:
//
//	countries: DENMARK, NORWAY
//	regions:
//	  - DK1
//	  - DK2
//	areas: ""
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"geofilemaker/internal/domain"
)

// TierText is the raw text of one tier
type TierText string

// UnmarshalYAML accepts a scalar or a sequence of scalars
func (t *TierText) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = TierText(node.Value)
		return nil
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: tier entries must be plain names", item.Line)
			}
			parts = append(parts, item.Value)
		}
		*t = TierText(strings.Join(parts, ", "))
		return nil
	}
	return fmt.Errorf("line %d: tier must be a string or a list of names", node.Line)
}

// TiersFile represents the YAML file structure
type TiersFile struct {
	Countries TierText `yaml:"countries"`
	Regions   TierText `yaml:"regions"`
	Areas     TierText `yaml:"areas"`
}

// Texts returns the tier texts indexed by domain.Tier
func (f *TiersFile) Texts() [domain.TierCount]string {
	return [domain.TierCount]string{
		domain.TierCountry: string(f.Countries),
		domain.TierRegion:  string(f.Regions),
		domain.TierArea:    string(f.Areas),
	}
}

// ParseTiers decodes a tiers document; unknown keys are an error
func ParseTiers(data []byte) (*TiersFile, error) {
	var f TiersFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse tiers: %w", err)
	}
	return &f, nil
}

// LoadTiers reads and decodes the tiers file at path
func LoadTiers(path string) (*TiersFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tiers: %w", err)
	}
	return ParseTiers(data)
}
