// Core store type and lifecycle operations.
//
// Store wires the document, journal and consolidator together behind the
// public API. It owns the root/journal/temp/manifest file set for one
// logical document, guarded by an exclusive lock file. A Store is
// single-owner by contract: no internal synchronization is performed, and
// callers sharing one across goroutines must serialize access externally.
package scroll

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds store configuration options. Zero values select defaults.
type Config struct {
	ChecksumAlgorithm int          // 1=xxHash3, 2=FNV1a, 3=Blake2b
	FlushThreshold    int          // Pending records before auto-flush (default 16)
	CompactThreshold  int          // Orphaned slots before compaction (default 50)
	Logger            *slog.Logger // Destination for recovered-failure reports
}

// Store represents an open line-oriented document.
type Store struct {
	path         string // Root file
	tempPath     string // Consolidation target, renamed over the root
	manifestPath string // Integrity sidecar
	doc          document
	journal      journal
	lock         *fileLock
	config       Config
	logger       *slog.Logger
	dirty        bool // In-memory state may differ from the root file
	closed       bool
}

// Open opens or creates the document at path. The journal, temp, manifest
// and lock files live next to it, derived from the path with its extension
// replaced. A journal left behind by a previous session is replayed on top
// of the root file and consolidated away before Open returns. Returns
// ErrLocked when another process holds the document.
func Open(path string, config Config) (*Store, error) {
	if config.ChecksumAlgorithm == 0 {
		config.ChecksumAlgorithm = AlgXXHash3
	}
	if config.FlushThreshold == 0 {
		config.FlushThreshold = 16
	}
	if config.CompactThreshold == 0 {
		config.CompactThreshold = 50
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	s := &Store{
		path:         path,
		tempPath:     stem + ".tmp",
		manifestPath: stem + ".manifest",
		journal: journal{
			path:      stem + "_journal" + ext,
			threshold: config.FlushThreshold,
		},
		config: config,
		logger: config.Logger,
	}

	lock, err := acquireLock(stem + ".lock")
	if err != nil {
		return nil, err
	}
	s.lock = lock

	// A leftover temp file is an interrupted consolidation. The root file
	// and journal are the source of truth; discard it unread.
	if err := os.Remove(s.tempPath); err != nil && !os.IsNotExist(err) {
		s.lock.release()
		return nil, fmt.Errorf("open: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := s.doc.load(path); err != nil {
			s.lock.release()
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		s.lock.release()
		return nil, fmt.Errorf("open: %w", err)
	}

	if s.journal.exists() {
		// The root file is only the recovery baseline. Replay applies each
		// record directly, never re-recording, so journal order reproduces
		// the exact pre-crash state; then fold it into the root and drop
		// the journal as soon as possible.
		s.dirty = true
		if err := s.journal.replay(s.execute); err != nil {
			s.lock.release()
			return nil, err
		}
		if err := s.consolidate(); err != nil {
			s.logger.Warn("consolidation failed after replay, journal kept", "path", path, "error", err)
		}
	} else if _, err := verifyManifest(s.manifestPath, s.doc.allRows()); err != nil {
		s.logger.Warn("manifest verification failed", "path", path, "error", err)
	}

	return s, nil
}

// execute dispatches one replayed journal record to the matching apply
// primitive. Recovery is lenient: a record with too few arguments, a
// non-numeric index, an out-of-range index, or an unknown tag is skipped so
// that one damaged line never aborts recovery of the rows that survived.
func (s *Store) execute(cmd byte, args []string) {
	switch cmd {
	case cmdAppend:
		if len(args) < 1 {
			return
		}
		s.doc.applyAppend(args[0])
	case cmdOverwrite:
		if len(args) < 2 {
			return
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return
		}
		s.doc.applyOverwrite(index, args[1])
	case cmdErase:
		if len(args) < 1 {
			return
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return
		}
		s.doc.applyErase(index, s.config.CompactThreshold)
	case cmdClear:
		s.doc.applyClear()
	}
}

// recordLogged journals a mutation that has already been applied. An
// auto-flush failure is reported but never propagated: the records stay in
// the pending buffer and the mutation itself stands.
func (s *Store) recordLogged(cmd byte, args ...string) {
	if err := s.journal.record(cmd, args...); err != nil {
		s.logger.Warn("journal flush failed, records retained in memory", "error", err)
	}
}

// validRow rejects rows the store could not persist and read back: a
// newline would split the row in both the root file and the journal, and
// anything over MaxRowSize would journal a record too long for replay to
// scan.
func validRow(row string) error {
	if strings.ContainsRune(row, '\n') {
		return ErrRowHasNewline
	}
	if len(row) > MaxRowSize {
		return ErrRowTooLong
	}
	return nil
}

// Append adds row as the new last line of the document.
func (s *Store) Append(row string) error {
	if s.closed {
		return ErrClosed
	}
	if err := validRow(row); err != nil {
		return err
	}

	s.doc.applyAppend(row)
	s.dirty = true
	s.recordLogged(cmdAppend, row)
	return nil
}

// Overwrite replaces the row at index in place. Ordering does not change.
func (s *Store) Overwrite(index int, row string) error {
	if s.closed {
		return ErrClosed
	}
	if err := validRow(row); err != nil {
		return err
	}

	if err := s.doc.applyOverwrite(index, row); err != nil {
		return err
	}
	s.dirty = true
	s.recordLogged(cmdOverwrite, strconv.Itoa(index), row)
	return nil
}

// Erase removes the row at index, shifting later rows down by one.
func (s *Store) Erase(index int) error {
	if s.closed {
		return ErrClosed
	}

	if err := s.doc.applyErase(index, s.config.CompactThreshold); err != nil {
		return err
	}
	s.dirty = true
	s.recordLogged(cmdErase, strconv.Itoa(index))
	return nil
}

// Clear removes every row.
func (s *Store) Clear() error {
	if s.closed {
		return ErrClosed
	}

	if !s.doc.empty() {
		s.dirty = true
	}
	s.doc.applyClear()
	s.recordLogged(cmdClear)
	return nil
}

// Read returns a copy of the row at index.
func (s *Store) Read(index int) (string, error) {
	if s.closed {
		return "", ErrClosed
	}
	return s.doc.row(index)
}

// First returns a copy of the first row.
func (s *Store) First() (string, error) {
	if s.closed {
		return "", ErrClosed
	}
	return s.doc.firstRow()
}

// Last returns a copy of the last row.
func (s *Store) Last() (string, error) {
	if s.closed {
		return "", ErrClosed
	}
	return s.doc.lastRow()
}

// All returns a copy of every row in display order.
func (s *Store) All() ([]string, error) {
	if s.closed {
		return nil, ErrClosed
	}
	return s.doc.allRows(), nil
}

// Size returns the number of rows.
func (s *Store) Size() int {
	return s.doc.size()
}

// Empty reports whether the document has no rows.
func (s *Store) Empty() bool {
	return s.doc.empty()
}

// Save flushes the journal. It deliberately does not rewrite the root file;
// that is reserved for consolidation, which costs a full rewrite. Durability
// after Save rests on the journal alone, which is exactly what replay is
// for.
func (s *Store) Save() error {
	if s.closed {
		return ErrClosed
	}
	return s.journal.flush()
}

// Close runs one final consolidation and releases the lock. The
// consolidation error, if any, is both logged and returned; the store is
// closed regardless, and the journal survives on disk for the next Open to
// recover from.
func (s *Store) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	err := s.consolidate()
	if err != nil {
		s.logger.Warn("consolidation failed on close, journal kept", "path", s.path, "error", err)
	}

	if lerr := s.lock.release(); lerr != nil && err == nil {
		err = lerr
	}
	return err
}
