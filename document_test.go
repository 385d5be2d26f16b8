package scroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestDocumentAppend(t *testing.T) {
	var d document
	d.applyAppend("first")
	d.applyAppend("second")

	if d.size() != 2 {
		t.Fatalf("size = %d, want 2", d.size())
	}
	if row, _ := d.row(0); row != "first" {
		t.Errorf("row(0) = %q", row)
	}
	if row, _ := d.row(1); row != "second" {
		t.Errorf("row(1) = %q", row)
	}
}

func TestDocumentOverwriteInPlace(t *testing.T) {
	var d document
	d.applyAppend("a")
	d.applyAppend("b")

	if err := d.applyOverwrite(1, "B"); err != nil {
		t.Fatalf("applyOverwrite: %v", err)
	}

	// The slot id is reused: the arena must not have grown.
	if len(d.arena) != 2 {
		t.Errorf("arena grew to %d slots on overwrite", len(d.arena))
	}
	if row, _ := d.row(1); row != "B" {
		t.Errorf("row(1) = %q, want B", row)
	}
}

func TestDocumentEraseShifts(t *testing.T) {
	var d document
	for _, row := range []string{"a", "b", "c"} {
		d.applyAppend(row)
	}

	if err := d.applyErase(1, 50); err != nil {
		t.Fatalf("applyErase: %v", err)
	}

	if d.size() != 2 {
		t.Fatalf("size = %d, want 2", d.size())
	}
	got := d.allRows()
	if got[0] != "a" || got[1] != "c" {
		t.Errorf("allRows = %v, want [a c]", got)
	}
	// The erased row stays in the arena as an orphan.
	if len(d.arena) != 3 {
		t.Errorf("arena = %d slots, want 3", len(d.arena))
	}
}

func TestDocumentIndexOutOfRange(t *testing.T) {
	var d document
	d.applyAppend("only")

	if err := d.applyOverwrite(1, "x"); err != ErrIndexOutOfRange {
		t.Errorf("applyOverwrite(1) = %v, want ErrIndexOutOfRange", err)
	}
	if err := d.applyErase(1, 50); err != ErrIndexOutOfRange {
		t.Errorf("applyErase(1) = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := d.row(1); err != ErrIndexOutOfRange {
		t.Errorf("row(1) = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := d.row(-1); err != ErrIndexOutOfRange {
		t.Errorf("row(-1) = %v, want ErrIndexOutOfRange", err)
	}
}

func TestDocumentEmptyAccessors(t *testing.T) {
	var d document

	if !d.empty() {
		t.Error("fresh document not empty")
	}
	if _, err := d.firstRow(); err != ErrEmptyDocument {
		t.Errorf("firstRow = %v, want ErrEmptyDocument", err)
	}
	if _, err := d.lastRow(); err != ErrEmptyDocument {
		t.Errorf("lastRow = %v, want ErrEmptyDocument", err)
	}
	if _, err := d.row(0); err != ErrIndexOutOfRange {
		t.Errorf("row(0) = %v, want ErrIndexOutOfRange", err)
	}
	if rows := d.allRows(); len(rows) != 0 {
		t.Errorf("allRows = %v, want empty", rows)
	}
}

func TestDocumentFirstLast(t *testing.T) {
	var d document
	d.applyAppend("head")
	d.applyAppend("middle")
	d.applyAppend("tail")

	if row, _ := d.firstRow(); row != "head" {
		t.Errorf("firstRow = %q", row)
	}
	if row, _ := d.lastRow(); row != "tail" {
		t.Errorf("lastRow = %q", row)
	}
}

func TestDocumentClear(t *testing.T) {
	var d document
	d.applyAppend("a")
	d.applyAppend("b")

	d.applyClear()
	if !d.empty() {
		t.Error("document not empty after clear")
	}
	if len(d.arena) != 0 {
		t.Errorf("arena holds %d slots after clear", len(d.arena))
	}

	// Clear on empty is a no-op.
	d.applyClear()
	if d.size() != 0 {
		t.Error("clear on empty document changed state")
	}
}

// allRows returns a copy: mutating the result must not alias internal
// storage.
func TestDocumentAllReturnsCopy(t *testing.T) {
	var d document
	d.applyAppend("original")

	rows := d.allRows()
	rows[0] = "mutated"

	if row, _ := d.row(0); row != "original" {
		t.Errorf("row(0) = %q after mutating the copy", row)
	}
}

func TestDocumentCompactionTriggered(t *testing.T) {
	var d document
	for i := 0; i < 60; i++ {
		d.applyAppend(strconv.Itoa(i))
	}

	// Erase from the front until the orphan count crosses the threshold.
	// With threshold 50 the 50th erase leaves 10 live rows against 60
	// arena slots and must trigger the rebuild.
	for i := 0; i < 50; i++ {
		d.applyErase(0, 50)
	}

	if len(d.arena) != d.size() {
		t.Errorf("arena = %d slots, %d live rows: compaction did not run", len(d.arena), d.size())
	}
	for i, slot := range d.order {
		if slot != i {
			t.Fatalf("order[%d] = %d after compaction, want identity", i, slot)
		}
	}
}

// Results must be identical whether or not the garbage threshold was
// crossed while erasing.
func TestDocumentCompactionTransparent(t *testing.T) {
	build := func(threshold int) *document {
		var d document
		for i := 0; i < 80; i++ {
			d.applyAppend(fmt.Sprintf("row %d", i))
		}
		for i := 0; i < 40; i++ {
			d.applyErase(i%7, threshold)
		}
		d.applyOverwrite(3, "patched")
		return &d
	}

	compacted := build(10)   // crosses the threshold repeatedly
	untouched := build(1000) // never compacts

	if compacted.size() != untouched.size() {
		t.Fatalf("size %d vs %d", compacted.size(), untouched.size())
	}
	a, b := compacted.allRows(), untouched.allRows()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("row %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestDocumentLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644)

	var d document
	if err := d.load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	if d.size() != 3 {
		t.Fatalf("size = %d, want 3", d.size())
	}
	if row, _ := d.row(2); row != "three" {
		t.Errorf("row(2) = %q", row)
	}
}

func TestDocumentLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	os.WriteFile(path, nil, 0o644)

	var d document
	if err := d.load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !d.empty() {
		t.Error("empty file loaded rows")
	}
}
