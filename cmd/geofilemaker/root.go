package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geofilemaker/internal/config"
	"geofilemaker/internal/logging"
	"geofilemaker/internal/ui"
)

var version = "0.1.0"

var (
	configFlag   string
	logLevelFlag string
	devLogFlag   bool

	cfg     *config.Config
	cfgPath string
	logger  = zap.NewNop()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "geofilemaker",
		Short: "Build geographic set files",
		Long: ui.Brand.Sprint("geofilemaker") + ": connect countries, regions and areas and write them as .inc sets\n" +
			ui.Subtle.Sprint("Edit in the browser (serve) or the terminal (tui), or convert a saved document (generate)"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	root.SetVersionTemplate("geofilemaker {{ .Version }}\n")
	root.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: search $GEOFILEMAKER_CONFIG, ./geofilemaker.yaml, ~/.config/geofilemaker)")
	root.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&devLogFlag, "dev", false, "human-readable development logs")

	root.AddCommand(
		serveCmd(),
		tuiCmd(),
		generateCmd(),
		historyCmd(),
		configCmd(),
	)
	return root
}

// setup loads the config and builds the logger; flags win over the file
func setup() error {
	var err error
	if configFlag != "" {
		cfg, cfgPath, err = config.LoadFromPath(configFlag)
	} else {
		cfg, cfgPath, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	if devLogFlag {
		cfg.Log.Development = true
	}

	logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("config loaded", zap.String("path", cfgPath))
	}
	return nil
}

// Execute runs the root command and prints the error, if any
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		ui.Bad.Printf("geofilemaker: %v\n", err)
	}
	return err
}
