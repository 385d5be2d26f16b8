// Consolidation: folding in-memory state back into the root file.
//
// The root file is never written incrementally. Consolidation streams every
// row in logical order into a temp file, syncs it, and renames it over the
// root in one atomic step — a crash at any point leaves either the old root
// or the new one, never a blend. Only after the rename proves the root
// complete is the journal destroyed.
//
// Failure is deliberately non-fatal. The temp file is cleaned up best
// effort, any unflushed journal records are forced to disk so nothing is
// lost, and the dirty flag stays set for a retry on the next Save, Close,
// or Open.
package scroll

import (
	"bufio"
	"fmt"
	"os"
)

// consolidate rewrites the root file from the document when state has
// diverged. No-op when clean, which makes back-to-back calls idempotent.
func (s *Store) consolidate() error {
	if !s.dirty {
		return nil
	}

	rows := s.doc.allRows()

	if err := writeRows(s.tempPath, rows); err != nil {
		os.Remove(s.tempPath)
		s.keepJournal()
		return err
	}

	if err := os.Rename(s.tempPath, s.path); err != nil {
		os.Remove(s.tempPath)
		s.keepJournal()
		return fmt.Errorf("consolidate: %w", err)
	}

	// The root now reflects every recorded mutation; the journal is
	// redundant. If it cannot be removed, treat the whole consolidation as
	// failed — a surviving journal would replay on top of the new root.
	if err := s.journal.destroy(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("consolidate: %w", err)
	}
	s.journal.pending = s.journal.pending[:0]
	s.journal.dirty = false
	s.dirty = false

	if err := writeManifest(s.manifestPath, rows, s.config.ChecksumAlgorithm); err != nil {
		s.logger.Warn("manifest write failed", "path", s.manifestPath, "error", err)
	}
	return nil
}

// keepJournal forces pending records to disk after a failed consolidation,
// so the journal remains a complete durable record. A flush failure on top
// of that leaves the records in memory; there is nothing further to do but
// say so.
func (s *Store) keepJournal() {
	if err := s.journal.flush(); err != nil {
		s.logger.Warn("journal flush failed, records retained in memory", "error", err)
	}
}

// writeRows writes rows newline-terminated into a fresh file at path and
// syncs it before closing.
func writeRows(path string, rows []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("consolidate: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, row := range rows {
		w.WriteString(row)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("consolidate: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("consolidate: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("consolidate: %w", err)
	}
	return nil
}
