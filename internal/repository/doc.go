// Package repository defines the data access interfaces for geofilemaker.
//
// The connection graph itself is never persisted: it lives in the editor and
// is rebuilt from tier text on every edit. The only stored data is the
// history of file generation runs, so users can see where and when .inc files
// were written and which document produced them.
//
// The sqlite subpackage implements GenerationRepository on modernc.org/sqlite
// (pure Go, no cgo) and migrates its schema on open.
package repository
