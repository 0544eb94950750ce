package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"geofilemaker/internal/domain"
)

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// timePtrToNull stores *time.Time as unix nanoseconds
func timePtrToNull(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

// nullToTimePtr reverses timePtrToNull
func nullToTimePtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(0, n.Int64)
	return &t
}

// generationColumns is shared by every SELECT; generationRow.scanArgs must match it
const generationColumns = `id, path, status, files, error, document, started_at, finished_at`

// generationRow holds all columns from a generation query for scanning
type generationRow struct {
	ID           string
	Path         string
	Status       string
	FilesJSON    sql.NullString
	Error        sql.NullString
	DocumentJSON sql.NullString
	StartedAt    int64
	FinishedAt   sql.NullInt64
}

func (r *generationRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Path,
		&r.Status,
		&r.FilesJSON,
		&r.Error,
		&r.DocumentJSON,
		&r.StartedAt,
		&r.FinishedAt,
	}
}

// toDomain converts the scanned row to a domain.Generation
func (r *generationRow) toDomain() (*domain.Generation, error) {
	gen := &domain.Generation{
		ID:         r.ID,
		Path:       r.Path,
		Status:     domain.GenerationStatus(r.Status),
		Error:      nullToString(r.Error),
		StartedAt:  time.Unix(0, r.StartedAt),
		FinishedAt: nullToTimePtr(r.FinishedAt),
	}

	if r.FilesJSON.Valid && r.FilesJSON.String != "" {
		if err := json.Unmarshal([]byte(r.FilesJSON.String), &gen.Files); err != nil {
			return nil, fmt.Errorf("failed to unmarshal files for %s: %w", r.ID, err)
		}
	}

	gen.Document = domain.NewDocument()
	if r.DocumentJSON.Valid && r.DocumentJSON.String != "" {
		if err := json.Unmarshal([]byte(r.DocumentJSON.String), gen.Document); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document for %s: %w", r.ID, err)
		}
	}

	return gen, nil
}

// generationInsertArgs returns values in generationColumns order
func generationInsertArgs(gen *domain.Generation) ([]interface{}, error) {
	var files sql.NullString
	if len(gen.Files) > 0 {
		data, err := json.Marshal(gen.Files)
		if err != nil {
			return nil, err
		}
		files = stringToNull(string(data))
	}

	var doc sql.NullString
	if gen.Document != nil {
		data, err := json.Marshal(gen.Document)
		if err != nil {
			return nil, err
		}
		doc = stringToNull(string(data))
	}

	return []interface{}{
		gen.ID,
		gen.Path,
		string(gen.Status),
		files,
		stringToNull(gen.Error),
		doc,
		gen.StartedAt.UnixNano(),
		timePtrToNull(gen.FinishedAt),
	}, nil
}
