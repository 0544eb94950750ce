package incfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"geofilemaker/internal/domain"
)

// set names per tier
var setNames = [domain.TierCount]string{"CCC", "RRR", "AAA"}

var setTitles = [domain.TierCount]string{"All countries", "All regions", "All areas"}

// Generator turns a Document into the six geography .inc files
type Generator struct {
	prefix string
	logger *zap.Logger
}

// NewGenerator creates a generator; filePrefix is prepended to every file name
func NewGenerator(filePrefix string, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{prefix: filePrefix, logger: logger}
}

// Files builds the .inc files for doc without writing them
func (g *Generator) Files(doc *domain.Document) []*IncFile {
	files := make([]*IncFile, 0, 6)

	for _, tier := range domain.Tiers {
		files = append(files, &IncFile{
			Name:   g.prefix + setNames[tier],
			Prefix: fmt.Sprintf("SET %s(CCCRRRAAA)  '%s'\n/\n", setNames[tier], setTitles[tier]),
			Body:   joinIDs(doc.Nodes(tier)),
			Suffix: "\n/;",
		})
	}

	var all strings.Builder
	for _, tier := range domain.Tiers {
		fmt.Fprintf(&all, "\n* %s:\n", capitalize(tier.String()))
		all.WriteString(joinIDs(doc.Nodes(tier)))
	}
	files = append(files, &IncFile{
		Name:   g.prefix + "CCCRRRAAA",
		Prefix: "* All sets that are related to Geographical resolution\nSET CCCRRRAAA 'All geographical entities (CCC + RRR + AAA)'\n/",
		Body:   all.String(),
		Suffix: "\n/;",
	})

	files = append(files,
		&IncFile{
			Name:   g.prefix + "CCCRRR",
			Prefix: "SET CCCRRR(CCC,RRR) \"Regions in countries\"\n/",
			Body:   pairs(doc.Tier(domain.TierCountry)),
			Suffix: "\n/;",
		},
		&IncFile{
			Name:   g.prefix + "RRRAAA",
			Prefix: "SET RRRAAA(RRR,AAA) \"Areas in regions\"\n/",
			Body:   pairs(doc.Tier(domain.TierRegion)),
			Suffix: "\n/;",
		},
	)

	return files
}

// Generate writes every file into dir and returns the written paths
func (g *Generator) Generate(ctx context.Context, doc *domain.Document, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("output directory: %s is not a directory", dir)
	}

	var written []string
	for _, f := range g.Files(doc) {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		path, err := f.Save(dir)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	g.logger.Info("generated .inc files",
		zap.String("dir", dir),
		zap.Int("files", len(written)))
	return written, nil
}

func joinIDs(ids []domain.NodeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, "\n")
}

// pairs writes "\n<source> . <target>" for every visible link
func pairs(entries []domain.NodeLinks) string {
	var b strings.Builder
	for _, e := range entries {
		for _, target := range e.Targets {
			fmt.Fprintf(&b, "\n%s . %s", e.ID, target)
		}
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
