package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"geofilemaker/internal/config"
	"geofilemaker/internal/incfile"
	"geofilemaker/internal/loader"
	"geofilemaker/internal/metrics"
	"geofilemaker/internal/repository/sqlite"
	"geofilemaker/internal/service"
	"geofilemaker/internal/watcher"
)

// session is one editor service with its storage and optional tiers file
type session struct {
	svc  *service.EditorService
	repo *sqlite.Repository
}

// openSession opens the history database, creates the service and seeds it
// from the tiers file. With tiers.watch the file is re-applied until ctx ends.
func openSession(ctx context.Context, cfg *config.Config, reg *metrics.Registry, log *zap.Logger) (*session, error) {
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Info("database opened", zap.String("path", cfg.Database.Path))

	opts := []service.Option{
		service.WithLogger(log.Named("service")),
		service.WithRepository(repo),
		service.WithGenerator(incfile.NewGenerator(cfg.Output.Prefix, log.Named("incfile"))),
		service.WithWorkDir(cfg.Output.Dir),
	}
	if reg != nil {
		opts = append(opts, service.WithMetrics(reg))
	}
	svc := service.NewEditorService(service.NewEventBus(), opts...)

	s := &session{svc: svc, repo: repo}
	if cfg.Tiers.File != "" {
		if err := s.applyTiers(cfg.Tiers.File, log); err != nil {
			s.Close()
			return nil, err
		}
		if cfg.Tiers.Watch {
			w := watcher.New(cfg.Tiers.File, func() {
				if err := s.applyTiers(cfg.Tiers.File, log); err != nil {
					log.Warn("failed to reload tiers file", zap.Error(err))
				}
			}, log.Named("watcher")).WithDebounce(cfg.Tiers.Debounce.Duration())
			go func() {
				if err := w.Watch(ctx); err != nil && ctx.Err() == nil {
					log.Error("tiers watcher stopped", zap.Error(err))
				}
			}()
		}
	}
	return s, nil
}

func (s *session) applyTiers(path string, log *zap.Logger) error {
	f, err := loader.LoadTiers(path)
	if err != nil {
		return err
	}
	s.svc.SetTiers(f.Texts())
	log.Info("tiers loaded", zap.String("path", path))
	return nil
}

// Close waits for running generations, then closes the database
func (s *session) Close() {
	s.svc.Close()
	s.repo.Close()
}
