package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"geofilemaker/internal/domain"
	"geofilemaker/internal/repository/sqlite"
	"geofilemaker/internal/ui"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent .inc file generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := sqlite.New(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer repo.Close()

			gens, err := repo.ListGenerations(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(gens) == 0 {
				ui.Subtle.Fprintln(w, "  no generations recorded")
				return nil
			}

			var failures []string
			table := make([][]string, 0, len(gens))
			for _, g := range gens {
				table = append(table, []string{
					shortID(g.ID),
					g.StartedAt.Local().Format(time.DateTime),
					statusText(g.Status),
					fmt.Sprintf("%d", len(g.Files)),
					g.Path,
				})
				if g.Error != "" {
					failures = append(failures, fmt.Sprintf("%s: %s", shortID(g.ID), g.Error))
				}
			}
			ui.Table(w, []string{"ID", "STARTED", "STATUS", "FILES", "PATH"}, table)
			if len(failures) > 0 {
				fmt.Fprintln(w)
				ui.Bad.Fprintln(w, "  "+strings.Join(failures, "\n  "))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusText(s domain.GenerationStatus) string {
	switch s {
	case domain.GenerationSucceeded:
		return ui.Good.Sprint(string(s))
	case domain.GenerationFailed:
		return ui.Bad.Sprint(string(s))
	}
	return ui.Warn.Sprint(string(s))
}
