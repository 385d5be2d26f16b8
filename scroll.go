// Package scroll provides a crash-resilient, line-oriented document store
// backed by a single plain-text file. The document is an ordered sequence of
// rows (opaque text lines), kept fully in memory for fast reads, with every
// mutation journaled to a write-ahead redo log.
//
// The root file is only ever rewritten wholesale via an atomic
// temp-file-and-rename consolidation, never incrementally, so a crash can
// never leave a half-written row behind. Between consolidations the journal
// is the durable record: on the next Open it is replayed on top of the root
// file to reconstruct the exact pre-crash state, then folded back into the
// root file and destroyed.
//
// Internally the document is an append-only arena of rows plus a logical
// order of slot ids. Erase removes an id from the order without touching row
// data; once enough orphaned slots accumulate the arena is compacted in one
// pass. A store owns its root/journal/temp/manifest file set exclusively —
// a second process opening the same path gets ErrLocked, and a single Store
// is not safe for unserialized use from multiple goroutines.
package scroll

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// distinguish caller mistakes (ErrIndexOutOfRange, ErrEmptyDocument,
// ErrRowHasNewline) from environmental conditions (ErrLocked, ErrClosed).
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyDocument   = errors.New("document is empty")
	ErrRowHasNewline   = errors.New("row contains a newline")
	ErrRowTooLong      = errors.New("row exceeds maximum size")
	ErrClosed          = errors.New("store is closed")
	ErrLocked          = errors.New("store is locked by another process")
	ErrCorruptManifest = errors.New("corrupt manifest")
	ErrCorruptArchive  = errors.New("corrupt archive")
)
