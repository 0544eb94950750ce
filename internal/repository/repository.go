package repository

import (
	"context"
	"errors"

	"geofilemaker/internal/domain"
)

// ErrNotFound is returned for unknown generation IDs
var ErrNotFound = errors.New("generation not found")

// GenerationRepository stores the history of .inc file generation runs
type GenerationRepository interface {
	// SaveGeneration inserts or replaces a run by ID
	SaveGeneration(ctx context.Context, gen *domain.Generation) error
	GetGeneration(ctx context.Context, id string) (*domain.Generation, error)
	// ListGenerations returns the newest runs first
	ListGenerations(ctx context.Context, limit int) ([]domain.Generation, error)

	// Close releases resources
	Close() error
}
