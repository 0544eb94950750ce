package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"geofilemaker/internal/logging"
	"geofilemaker/internal/tui"
)

func tuiCmd() *cobra.Command {
	var logFile, out string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the editor in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the screen belongs to the UI, so logs go to a file
			fileLogger, err := logging.NewFile(cfg.Log.Level, logFile)
			if err != nil {
				return err
			}
			logger = fileLogger

			sess, err := openSession(cmd.Context(), cfg, nil, logger)
			if err != nil {
				return err
			}
			defer sess.Close()

			if out == "" {
				out = cfg.Output.Dir
			}
			return tui.Run(cmd.Context(), sess.svc, out)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), "geofilemaker-tui.log"), "where to write logs while the UI runs")
	cmd.Flags().StringVarP(&out, "out", "o", "", "directory ctrl+g writes .inc files to (default: output.dir or the working directory)")
	return cmd
}
