package codec

import (
	"fmt"
	"io"

	"geofilemaker/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles the document as ordered YAML mappings
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the MIME type of exported data
func (c *YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Parse reads a document from YAML, keeping key order
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	doc := domain.NewDocument()
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = *root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse YAML: document must be a mapping of tiers")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		tier, err := domain.ParseTier(root.Content[i].Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", root.Content[i].Line, err)
		}
		nodes := root.Content[i+1]
		if nodes.Kind == yaml.ScalarNode && nodes.Tag == "!!null" {
			continue
		}
		if nodes.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: tier %s must be a mapping", nodes.Line, tier)
		}
		for j := 0; j+1 < len(nodes.Content); j += 2 {
			var targets []domain.NodeID
			if err := nodes.Content[j+1].Decode(&targets); err != nil {
				return nil, fmt.Errorf("line %d: %w", nodes.Content[j+1].Line, err)
			}
			doc.Set(tier, domain.NodeID(nodes.Content[j].Value), targets)
		}
	}

	return doc, nil
}

// Export writes the document as YAML with tiers and nodes in order
func (c *YAMLCodec) Export(doc *domain.Document, w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, tier := range domain.Tiers {
		nodes := &yaml.Node{Kind: yaml.MappingNode}
		for _, entry := range doc.Tier(tier) {
			targets := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, id := range entry.Targets {
				targets.Content = append(targets.Content, scalar(string(id)))
			}
			nodes.Content = append(nodes.Content, scalar(string(entry.ID)), targets)
		}
		if len(nodes.Content) == 0 {
			nodes.Style = yaml.FlowStyle
		}
		root.Content = append(root.Content, scalar(tier.String()), nodes)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
