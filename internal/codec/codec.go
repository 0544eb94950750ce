package codec

import (
	"fmt"
	"io"
	"sort"

	"geofilemaker/internal/domain"
)

// Importer reads a Document from a serialized form
type Importer interface {
	Parse(r io.Reader) (*domain.Document, error)
	Format() string
}

// Exporter writes a Document in a serialized form
type Exporter interface {
	Export(doc *domain.Document, w io.Writer) error
	Format() string
	ContentType() string
}

// Codec both reads and writes one format
type Codec interface {
	Importer
	Exporter
}

var codecs = map[string]Codec{
	"json": NewJSONCodec(),
	"yaml": NewYAMLCodec(),
	"yml":  NewYAMLCodec(),
}

// ForFormat returns the codec registered for format
func ForFormat(format string) (Codec, error) {
	c, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (supported: %v)", format, Formats())
	}
	return c, nil
}

// Formats lists the registered format names
func Formats() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
