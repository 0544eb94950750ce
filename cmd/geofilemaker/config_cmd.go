package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"geofilemaker/internal/config"
	"geofilemaker/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(configInitCmd(), configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s wrote %s\n", ui.StatusIcon(true), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "where to write the file (default: XDG config dir)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			if cfgPath == "" {
				ui.Subtle.Fprintln(w, "  no config file found, using defaults")
			} else {
				ui.Subtle.Fprintf(w, "  %s\n", cfgPath)
			}
			fmt.Fprintln(w, cfg.Summary())
			ui.Subtle.Fprintln(w, "  search order:")
			for i, p := range config.SearchPaths() {
				ui.Subtle.Fprintf(w, "    %d. %s\n", i+1, p)
			}
		},
	}
}
