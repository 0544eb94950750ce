// Package handler implements the HTTP API for the tier editor.
//
// EditorHandler exposes the editor session held by service.EditorService:
// tier text updates, node clicks, document export and .inc file generation.
// Request bodies are validated with struct tags before they reach the service.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200, 202).
// Error responses return JSON with {error, details} structure.
//
// # Middleware
//
// Chain composes Recover, CORS, Logger and Metrics around the mux. The
// response recorder used by Logger and Metrics passes Flush through so the
// /events stream keeps working behind them.
package handler
