// In-memory document state: an append-only arena of rows plus a logical
// order of slot ids.
//
// The split lets erase stay cheap — it removes an id from the order without
// moving any row data. Slots that lose their last reference become orphans
// and are reclaimed in one pass once compactThreshold of them accumulate.
// Every accessor is a pure projection over the two slices; only the apply
// methods mutate.
package scroll

import (
	"bufio"
	"fmt"
	"os"
)

// estimatedRowBytes guesses arena capacity from file size at load time.
const estimatedRowBytes = 64

// document is the live row sequence. order holds arena slot ids in display
// order; it is always a subset of valid arena indexes with no duplicates.
type document struct {
	arena []string
	order []int
}

// load reads the file at path line by line into a fresh document. A missing
// file is not an error here; the caller decides whether a baseline is
// required.
func (d *document) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		estimated := int(info.Size()/estimatedRowBytes) + 1
		d.arena = make([]string, 0, estimated)
		d.order = make([]int, 0, estimated)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJournalLine)
	for scanner.Scan() {
		d.arena = append(d.arena, scanner.Text())
		d.order = append(d.order, len(d.arena)-1)
	}
	return scanner.Err()
}

func (d *document) applyAppend(row string) {
	d.arena = append(d.arena, row)
	d.order = append(d.order, len(d.arena)-1)
}

// applyOverwrite replaces the row content at the slot the logical index
// refers to. The slot id is reused; ordering does not change.
func (d *document) applyOverwrite(index int, row string) error {
	if index < 0 || index >= len(d.order) {
		return ErrIndexOutOfRange
	}
	d.arena[d.order[index]] = row
	return nil
}

// applyErase drops the logical entry at index, shifting later entries down.
// The arena row it referenced stays behind as an orphan until compaction.
func (d *document) applyErase(index int, compactThreshold int) error {
	if index < 0 || index >= len(d.order) {
		return ErrIndexOutOfRange
	}
	d.order = append(d.order[:index], d.order[index+1:]...)
	if len(d.arena) >= len(d.order)+compactThreshold {
		d.compact()
	}
	return nil
}

// applyClear discards everything. Nothing is retained, so no orphans and no
// compaction. No-op on an empty document.
func (d *document) applyClear() {
	if len(d.order) == 0 {
		return
	}
	d.arena = d.arena[:0]
	d.order = d.order[:0]
}

// compact rebuilds the arena with only the rows the order still references,
// in logical order, then resets the order to the identity sequence. O(n),
// amortized by the trigger threshold in applyErase.
func (d *document) compact() {
	arena := make([]string, len(d.order))
	for i, slot := range d.order {
		arena[i] = d.arena[slot]
	}
	d.arena = arena
	for i := range d.order {
		d.order[i] = i
	}
}

// Accessors. All return copies or values; none touch the journal.

func (d *document) row(index int) (string, error) {
	if index < 0 || index >= len(d.order) {
		return "", ErrIndexOutOfRange
	}
	return d.arena[d.order[index]], nil
}

func (d *document) firstRow() (string, error) {
	if len(d.order) == 0 {
		return "", ErrEmptyDocument
	}
	return d.arena[d.order[0]], nil
}

func (d *document) lastRow() (string, error) {
	if len(d.order) == 0 {
		return "", ErrEmptyDocument
	}
	return d.arena[d.order[len(d.order)-1]], nil
}

func (d *document) allRows() []string {
	rows := make([]string, len(d.order))
	for i, slot := range d.order {
		rows[i] = d.arena[slot]
	}
	return rows
}

func (d *document) size() int {
	return len(d.order)
}

func (d *document) empty() bool {
	return len(d.order) == 0
}
