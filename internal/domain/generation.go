package domain

import "time"

// GenerationStatus is the state of one .inc file generation run
type GenerationStatus string

const (
	GenerationRunning   GenerationStatus = "running"
	GenerationSucceeded GenerationStatus = "succeeded"
	GenerationFailed    GenerationStatus = "failed"
)

// Generation records one hand-off of a Document to file generation
type Generation struct {
	ID         string           `json:"id"`
	Path       string           `json:"path"`
	Status     GenerationStatus `json:"status"`
	Files      []string         `json:"files,omitempty"`
	Error      string           `json:"error,omitempty"`
	Document   *Document        `json:"document"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
}

// NewGeneration starts a running record for doc
func NewGeneration(id, path string, doc *Document) *Generation {
	return &Generation{
		ID:        id,
		Path:      path,
		Status:    GenerationRunning,
		Document:  doc,
		StartedAt: time.Now(),
	}
}

// Finish marks the record done; a nil err means success
func (g *Generation) Finish(files []string, err error) {
	now := time.Now()
	g.FinishedAt = &now
	g.Files = files
	if err != nil {
		g.Status = GenerationFailed
		g.Error = err.Error()
		return
	}
	g.Status = GenerationSucceeded
}
