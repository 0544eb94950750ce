// Package service coordinates the editor with its front-ends.
//
// EditorService owns the single editor session and serializes every event
// that reaches it (HTTP requests, terminal key presses, tiers file reloads).
// It hands documents to the .inc file generator, records each run in the
// generation history, and publishes every state change on the EventBus so
// connected clients can redraw.
package service
