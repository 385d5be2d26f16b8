// Write-ahead journal: the durable record of mutations not yet folded into
// the root file.
//
// Records accumulate in an in-memory pending buffer and reach disk in
// batches — on Save, on Close, and automatically once the buffer holds
// flushThreshold records. Batching bounds both memory and the window of
// loss on a hard crash; a process that dies before a flush loses only the
// unflushed tail, never a half-written line (flush appends whole lines and
// fsyncs before closing).
//
// The journal file exists on disk exactly while there are mutations the
// root file does not reflect. Consolidation destroys it; its presence at
// Open is the recovery signal.
package scroll

import (
	"bufio"
	"fmt"
	"os"
)

// Journal command tags, one byte each on the wire.
const (
	cmdAppend    = 'A'
	cmdClear     = 'C'
	cmdErase     = 'E'
	cmdOverwrite = 'O'
)

// journal buffers mutation records and owns the on-disk journal file.
type journal struct {
	path      string
	pending   [][]byte
	threshold int
	dirty     bool
}

// record composes one journal line (tag, delimiter, framed args) and queues
// it. The buffer is flushed automatically at the threshold; a failed
// auto-flush is returned to the caller but the queued records are retained,
// so durability degrades to best-effort rather than dropping data.
func (j *journal) record(cmd byte, args ...string) error {
	line := make([]byte, 0, 16)
	line = append(line, cmd, delim)
	for _, a := range args {
		line = encodeToken(line, a)
	}

	j.pending = append(j.pending, line)
	j.dirty = true

	if len(j.pending) >= j.threshold {
		return j.flush()
	}
	return nil
}

// flush appends every pending record to the journal file and syncs it.
// No-op when clean. On failure the pending buffer is kept intact for a
// later retry.
func (j *journal) flush() error {
	if !j.dirty {
		return nil
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("journal flush: %w", err)
	}

	for _, line := range j.pending {
		if _, err := f.Write(append(line, '\n')); err != nil {
			f.Close()
			return fmt.Errorf("journal flush: %w", err)
		}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("journal flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("journal flush: %w", err)
	}

	j.pending = j.pending[:0]
	j.dirty = false
	return nil
}

// replay reads the journal line by line and dispatches each record to fn.
// Byte 0 is the command tag, the two-byte tag+delimiter header is skipped,
// and tokens are decoded until exhaustion. A malformed trailing token
// truncates that line's argument list; the line is still dispatched with
// whatever decoded cleanly. Lines too short to carry a header are skipped.
// Replay never mutates the file.
func (j *journal) replay(fn func(cmd byte, args []string)) error {
	f, err := os.Open(j.path)
	if err != nil {
		return fmt.Errorf("journal replay: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJournalLine)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) < 2 {
			continue
		}

		cur := tokens{line: line, pos: 2}
		var args []string
		for {
			value, ok := cur.next()
			if !ok {
				break
			}
			args = append(args, value)
		}
		fn(line[0], args)
	}
	return scanner.Err()
}

// MaxRowSize is the maximum length of a single row in bytes (16MB).
// Append and Overwrite enforce it, which guarantees every journaled record
// fits under maxJournalLine and replay can always read back what was
// written.
const MaxRowSize = 16 * 1024 * 1024

// maxJournalLine bounds a single replayed line: the largest valid row plus
// the tag header and token framing (length digits and delimiters). Anything
// larger is not a record this store wrote.
const maxJournalLine = MaxRowSize + 32

// destroy removes the journal file. Only called once the caller has proven
// the root file reflects every recorded mutation.
func (j *journal) destroy() error {
	return os.Remove(j.path)
}

// exists reports whether the journal file is present on disk, i.e. whether
// recovery is needed.
func (j *journal) exists() bool {
	_, err := os.Stat(j.path)
	return err == nil
}
