package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"geofilemaker/internal/domain"
)

// JSONCodec handles the canonical JSON document
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the MIME type of exported data
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Parse reads a document from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Document, error) {
	doc := domain.NewDocument()
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return doc, nil
}

// Export writes the document as 2-space indented JSON
func (c *JSONCodec) Export(doc *domain.Document, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Canonical returns the indented JSON form shown to users and handed to generation
func Canonical(doc *domain.Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
