// Compressed whole-document snapshots.
//
// Export writes the entire document as a single Zstd frame; Import replaces
// the document with an exported frame's content. Imports run through the
// normal apply-then-record path, so a restore is journaled like any other
// mutation and survives a crash mid-import the same way.
package scroll

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Shared encoder/decoder — both are documented as safe for concurrent use.
// Allocated once because zstd encoder/decoder construction is expensive
// (internal state tables). SpeedFastest: exports are interactive
// backup-sized operations, not archival pipelines.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Export writes a compressed snapshot of the document to w.
func (s *Store) Export(w io.Writer) error {
	if s.closed {
		return ErrClosed
	}

	var content strings.Builder
	for _, row := range s.doc.allRows() {
		content.WriteString(row)
		content.WriteByte('\n')
	}

	compressed := zstdEncoder.EncodeAll([]byte(content.String()), nil)
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Import replaces the document with the snapshot read from r. The previous
// content is cleared first; both the clear and every restored row are
// journaled.
func (s *Store) Import(r io.Reader) error {
	if s.closed {
		return ErrClosed
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	content, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return fmt.Errorf("%w: zstd: %w", ErrCorruptArchive, err)
	}

	if err := s.Clear(); err != nil {
		return err
	}
	if len(content) == 0 {
		return nil
	}

	rows := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	for _, row := range rows {
		if err := s.Append(row); err != nil {
			return err
		}
	}
	return nil
}
