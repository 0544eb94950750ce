package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geofilemaker/internal/codec"
	"geofilemaker/internal/domain"
	"geofilemaker/internal/incfile"
	"geofilemaker/internal/ui"
)

func generateCmd() *cobra.Command {
	var in, out, format, prefix string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write .inc files from a saved document",
		Long: "Reads a document exported from the editor (JSON or YAML) and writes\n" +
			"CCC, RRR, AAA, CCCRRRAAA, CCCRRR and RRRAAA .inc files.",
		Example: "  geofilemaker generate --in document.json --out ./data\n" +
			"  curl -s localhost:3000/api/document | geofilemaker generate --in - --out ./data",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin(), in, format)
			if err != nil {
				return err
			}

			if out == "" {
				out, err = cfg.OutputDir()
				if err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("prefix") {
				prefix = cfg.Output.Prefix
			}

			gen := incfile.NewGenerator(prefix, logger.Named("incfile"))
			files, err := gen.Generate(cmd.Context(), doc, out)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, f := range files {
				fmt.Fprintf(w, "  %s %s\n", ui.StatusIcon(true), f)
			}
			ui.Good.Fprintf(w, ".inc files successfully generated to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "document file, or - for stdin")
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination directory (default: output.dir or the working directory)")
	cmd.Flags().StringVar(&format, "format", "", "document format: json or yaml (default: from the file extension)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "prefix for generated file names (overrides output.prefix)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// readDocument parses path ("-" for r) in format, guessed from the extension when empty
func readDocument(r io.Reader, path, format string) (*domain.Document, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
		if path == "-" || format == "" {
			format = "json"
		}
	}
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := c.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	logger.Debug("document loaded", zap.String("path", path), zap.String("format", c.Format()))
	return doc, nil
}
