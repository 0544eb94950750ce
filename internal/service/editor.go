package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"geofilemaker/internal/codec"
	"geofilemaker/internal/domain"
	"geofilemaker/internal/editor"
	"geofilemaker/internal/incfile"
	"geofilemaker/internal/metrics"
	"geofilemaker/internal/repository"
)

// ErrServiceClosed is returned by Generate after Close
var ErrServiceClosed = errors.New("editor service closed")

// Option configures an EditorService
type Option func(*EditorService)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *EditorService) {
		s.logger = logger
	}
}

// WithMetrics records editor and generation metrics on r
func WithMetrics(r *metrics.Registry) Option {
	return func(s *EditorService) {
		s.metrics = r
	}
}

// WithRepository records every generation run in repo
func WithRepository(repo repository.GenerationRepository) Option {
	return func(s *EditorService) {
		s.repo = repo
	}
}

// WithGenerator replaces the default .inc file generator
func WithGenerator(g *incfile.Generator) Option {
	return func(s *EditorService) {
		s.generator = g
	}
}

// WithWorkDir sets the directory suggested as generation target
func WithWorkDir(dir string) Option {
	return func(s *EditorService) {
		s.workDir = dir
	}
}

// EditorService is the mutex-guarded owner of one editor session
type EditorService struct {
	mu       sync.Mutex
	editor   *editor.Editor
	snapshot *editor.Snapshot

	bus       *EventBus
	repo      repository.GenerationRepository
	generator *incfile.Generator
	metrics   *metrics.Registry
	logger    *zap.Logger
	workDir   string

	ctx    context.Context
	cancel context.CancelFunc

	// runMu orders wg.Add in Generate against Close
	runMu  sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewEditorService creates a service with an empty session
func NewEditorService(bus *EventBus, opts ...Option) *EditorService {
	ctx, cancel := context.WithCancel(context.Background())
	s := &EditorService{
		bus:    bus,
		logger: zap.NewNop(),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = NewEventBus()
	}
	if s.generator == nil {
		s.generator = incfile.NewGenerator("", s.logger)
	}
	s.newSession()
	return s
}

func (s *EditorService) newSession() {
	s.snapshot = editor.NewSnapshot()
	s.editor = nil
	s.editor = editor.New(s.snapshot,
		editor.WithLogger(s.logger.Named("editor")),
		editor.WithRebuildHook(s.recordRebuild),
	)
}

// Events returns the bus state changes are published on
func (s *EditorService) Events() *EventBus {
	return s.bus
}

// State returns what a front-end needs to draw the editor
func (s *EditorService) State() editor.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.View(s.editor)
}

// Document returns a copy of the current document
func (s *EditorService) Document() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Document()
}

// SetTierText replaces the text of one tier
func (s *EditorService) SetTierText(tier domain.Tier, text string) (editor.View, error) {
	s.mu.Lock()
	if err := s.editor.SetText(tier, text); err != nil {
		s.mu.Unlock()
		return editor.View{}, err
	}
	view := s.snapshot.View(s.editor)
	s.mu.Unlock()

	s.publishState(view)
	return view, nil
}

// SetTiers replaces the text of every tier and publishes once
func (s *EditorService) SetTiers(texts [domain.TierCount]string) editor.View {
	s.mu.Lock()
	for _, t := range domain.Tiers {
		// tiers from domain.Tiers are always valid
		_ = s.editor.SetText(t, texts[t])
	}
	view := s.snapshot.View(s.editor)
	s.mu.Unlock()

	s.publishState(view)
	return view
}

// Click feeds a click on tier/id into the selection protocol
func (s *EditorService) Click(tier domain.Tier, id domain.NodeID) (domain.Outcome, editor.View, error) {
	s.mu.Lock()
	out, err := s.editor.Click(domain.Ref(tier, id))
	if err != nil {
		s.mu.Unlock()
		return out, editor.View{}, err
	}
	view := s.snapshot.View(s.editor)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordClick(out.Kind.String(), connectionResult(out))
	}
	s.publishState(view)
	return out, view, nil
}

func connectionResult(out domain.Outcome) string {
	switch out.Kind {
	case domain.OutcomeAccepted:
		return "accepted"
	case domain.OutcomeRejected:
		if errors.Is(out.Err, domain.ErrSameTier) {
			return "same_tier"
		}
		return "countries_areas"
	}
	return ""
}

// Reset starts a new session with empty tiers and an empty store
func (s *EditorService) Reset() editor.View {
	s.mu.Lock()
	s.newSession()
	view := s.snapshot.View(s.editor)
	s.mu.Unlock()

	s.logger.Info("session reset")
	s.publishState(view)
	return view
}

// Export writes the current document in format ("json" or "yaml")
func (s *EditorService) Export(format string, w io.Writer) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	return c.Export(s.Document(), w)
}

// WorkDir returns the absolute default destination for generated files
func (s *EditorService) WorkDir() (string, error) {
	dir := s.workDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve work dir: %w", err)
	}
	return abs, nil
}

// Generate hands the current document to the .inc file generator.
// The run continues in the background; the returned record is its starting
// state and generation_finished is published when it ends.
// An empty path means WorkDir.
func (s *EditorService) Generate(ctx context.Context, path string) (*domain.Generation, error) {
	s.runMu.Lock()
	if s.closed {
		s.runMu.Unlock()
		return nil, ErrServiceClosed
	}
	s.wg.Add(1)
	s.runMu.Unlock()

	started, err := s.startGeneration(ctx, path)
	if err != nil {
		s.wg.Done()
		return nil, err
	}
	return started, nil
}

// startGeneration records the run and launches it; the caller holds a wg slot
// that runGeneration releases.
func (s *EditorService) startGeneration(ctx context.Context, path string) (*domain.Generation, error) {
	if path == "" {
		wd, err := s.WorkDir()
		if err != nil {
			return nil, err
		}
		path = wd
	}

	gen := domain.NewGeneration(uuid.NewString(), path, s.Document())
	if s.repo != nil {
		if err := s.repo.SaveGeneration(ctx, gen); err != nil {
			return nil, fmt.Errorf("record generation: %w", err)
		}
	}
	started := *gen

	s.logger.Info("generation started", zap.String("id", gen.ID), zap.String("path", path))
	s.bus.Publish(Event{Type: EventGenerationStarted, Payload: started})

	go s.runGeneration(gen)

	return &started, nil
}

func (s *EditorService) runGeneration(gen *domain.Generation) {
	defer s.wg.Done()

	files, err := s.generator.Generate(s.ctx, gen.Document, gen.Path)
	gen.Finish(files, err)
	duration := gen.FinishedAt.Sub(gen.StartedAt)

	var status editor.Status
	if err != nil {
		s.logger.Error("generation failed", zap.String("id", gen.ID), zap.Error(err))
		status = editor.Status{Level: editor.StatusError, Message: fmt.Sprintf("generation failed: %v", err)}
	} else {
		s.logger.Info("generation finished",
			zap.String("id", gen.ID),
			zap.Int("files", len(files)),
			zap.Duration("duration", duration))
		status = editor.Status{Level: editor.StatusSuccess, Message: fmt.Sprintf(".inc files successfully generated to %s", gen.Path)}
	}

	if s.repo != nil {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), 5*time.Second)
		if err := s.repo.SaveGeneration(saveCtx, gen); err != nil {
			s.logger.Warn("failed to record generation", zap.String("id", gen.ID), zap.Error(err))
		}
		cancel()
	}
	if s.metrics != nil {
		s.metrics.RecordGeneration(string(gen.Status), duration)
	}

	s.mu.Lock()
	s.editor.Report(status)
	view := s.snapshot.View(s.editor)
	s.mu.Unlock()

	s.publishState(view)
	s.bus.Publish(Event{Type: EventGenerationFinished, Payload: *gen})
}

// History returns recent generation runs, newest first
func (s *EditorService) History(ctx context.Context, limit int) ([]domain.Generation, error) {
	if s.repo == nil {
		return []domain.Generation{}, nil
	}
	return s.repo.ListGenerations(ctx, limit)
}

// Generation returns one recorded run
func (s *EditorService) Generation(ctx context.Context, id string) (*domain.Generation, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return s.repo.GetGeneration(ctx, id)
}

// Close cancels running generations and waits for them.
// Later Generate calls return ErrServiceClosed.
func (s *EditorService) Close() {
	s.runMu.Lock()
	s.closed = true
	s.runMu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *EditorService) publishState(view editor.View) {
	s.bus.Publish(Event{Type: EventStateUpdated, Payload: view})
}

// recordRebuild runs inside editor.Rebuild with s.mu held
func (s *EditorService) recordRebuild(doc *domain.Document) {
	if s.metrics == nil {
		return
	}
	rendered := make(map[string]int, domain.TierCount)
	visible := 0
	for _, t := range domain.Tiers {
		entries := doc.Tier(t)
		rendered[t.String()] = len(entries)
		for _, e := range entries {
			visible += len(e.Targets)
		}
	}
	stored := 0
	if s.editor != nil {
		stored = len(s.editor.Connections())
	}
	s.metrics.RecordRebuild(rendered, visible, stored)
}
