package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"geofilemaker/internal/domain"
	"geofilemaker/internal/repository"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for unknown generation IDs
var ErrNotFound = repository.ErrNotFound

// DefaultListLimit caps ListGenerations when no limit is given
const DefaultListLimit = 50

var _ repository.GenerationRepository = (*Repository)(nil)

// Repository implements repository.GenerationRepository using SQLite
type Repository struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would get its own empty in-memory database
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		status TEXT NOT NULL,
		files JSON,
		error TEXT,
		document JSON,
		started_at INTEGER NOT NULL,
		finished_at INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_generations_started ON generations(started_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveGeneration inserts or replaces a generation run
func (r *Repository) SaveGeneration(ctx context.Context, gen *domain.Generation) error {
	if gen == nil || gen.ID == "" {
		return fmt.Errorf("generation ID required")
	}

	args, err := generationInsertArgs(gen)
	if err != nil {
		return fmt.Errorf("failed to encode generation %s: %w", gen.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO generations (`+generationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			status = excluded.status,
			files = excluded.files,
			error = excluded.error,
			document = excluded.document,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to save generation %s: %w", gen.ID, err)
	}
	return nil
}

// GetGeneration loads one run by ID
func (r *Repository) GetGeneration(ctx context.Context, id string) (*domain.Generation, error) {
	var row generationRow
	err := r.db.QueryRowContext(ctx,
		`SELECT `+generationColumns+` FROM generations WHERE id = ?`, id,
	).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query generation %s: %w", id, err)
	}
	return row.toDomain()
}

// ListGenerations returns up to limit runs, newest first
func (r *Repository) ListGenerations(ctx context.Context, limit int) ([]domain.Generation, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+generationColumns+` FROM generations ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	gens := make([]domain.Generation, 0)
	for rows.Next() {
		var row generationRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		gen, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		gens = append(gens, *gen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generations: %w", err)
	}

	return gens, nil
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}
