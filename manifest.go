// Manifest sidecar: consolidation metadata for integrity checks.
//
// After every successful consolidation a small JSON file is written next to
// the root file recording how many rows were written, their checksum, and
// when. On the next clean startup (root present, no journal) the root file
// is verified against it. The manifest is advisory only — a mismatch means
// the root file was modified or damaged outside this store's control, which
// is logged and then tolerated; the root file remains the source of truth.
package scroll

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
)

// manifest describes the root file as of the last consolidation.
type manifest struct {
	Version   int    `json:"_v"`   // Format version, currently 1
	Rows      int    `json:"_n"`   // Row count written
	Checksum  string `json:"_sum"` // 16 hex chars, see checksum.go
	Algorithm int    `json:"_alg"` // Checksum algorithm (1=xxHash3, 2=FNV1a, 3=Blake2b)
	Timestamp int64  `json:"_ts"`  // Unix milliseconds when written
}

// writeManifest records the consolidated state at path. Best effort: the
// caller treats failure as a logging matter, not a consolidation failure.
func writeManifest(path string, rows []string, alg int) error {
	m := manifest{
		Version:   1,
		Rows:      len(rows),
		Checksum:  checksum(rows, alg),
		Algorithm: alg,
		Timestamp: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// readManifest loads and parses the sidecar. Unparseable content maps to
// ErrCorruptManifest so callers can distinguish damage from absence.
func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ErrCorruptManifest
	}
	return &m, nil
}

// verifyManifest checks the loaded document against the sidecar, if one
// exists. Returns false with a nil error when no manifest is present, and
// false with a descriptive error on any disagreement. Verification uses the
// algorithm recorded in the manifest, not the store's configured one, so a
// config change between sessions does not read as corruption.
func verifyManifest(path string, rows []string) (bool, error) {
	m, err := readManifest(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if m.Rows != len(rows) {
		return false, fmt.Errorf("%w: row count %d, manifest says %d", ErrCorruptManifest, len(rows), m.Rows)
	}
	if sum := checksum(rows, m.Algorithm); sum != m.Checksum {
		return false, fmt.Errorf("%w: checksum %s, manifest says %s", ErrCorruptManifest, sum, m.Checksum)
	}
	return true, nil
}
