package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geofilemaker/internal/handler"
	"geofilemaker/internal/hub"
	"geofilemaker/internal/metrics"
	"geofilemaker/internal/service"
)

//go:embed web/*
var webFS embed.FS

func serveCmd() *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides server.addr)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides database.path)")
	return cmd
}

func serve(ctx context.Context) error {
	logger.Info("starting geofilemaker server", zap.String("version", version))

	reg := metrics.NewRegistry()
	sess, err := openSession(ctx, cfg, reg, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	// Initialize SSE hub
	sseHub := hub.New(logger.Named("hub"))
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go sseHub.Run(hubCtx)

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	sess.svc.Events().Subscribe(eventChan)
	defer sess.svc.Events().Unsubscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(event)
			case <-hubCtx.Done():
				return
			}
		}
	}()

	// Setup routes
	mux := http.NewServeMux()
	handler.NewEditorHandler(sess.svc, logger.Named("http")).Register(mux)

	// SSE events endpoint
	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /metrics", reg.Handler())

	// Static files from embedded filesystem
	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		return fmt.Errorf("embedded web content: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(webContent)))

	finalHandler := handler.Chain(mux,
		handler.Recover(logger),
		handler.CORS,
		handler.Logger(logger.Named("http")),
		handler.Metrics(reg),
	)

	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     finalHandler,
		ReadTimeout: 10 * time.Second,
		// no WriteTimeout: /events streams for the lifetime of the page
		IdleTimeout: 60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	// SSE streams end with the hub, otherwise Shutdown waits for them
	hubCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}
