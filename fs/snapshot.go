// Package fs provides file-based export of extraction results.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shaulkr/ragcontent"
)

// SnapshotWriter writes extraction results as JSON files with atomic
// snapshot semantics. Results are saved to a temporary directory, then
// moved into place on Commit, so readers never observe a half-written
// export.
type SnapshotWriter struct {
	baseDir string
	name    string
}

// NewSnapshotWriter creates a new SnapshotWriter.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewSnapshotWriter(baseDir, name string) *SnapshotWriter {
	return &SnapshotWriter{baseDir: baseDir, name: name}
}

func (w *SnapshotWriter) tempDir() string {
	return filepath.Join(w.baseDir, w.name+".tmp")
}

func (w *SnapshotWriter) finalDir() string {
	return filepath.Join(w.baseDir, w.name)
}

// Save writes one extraction result into the pending snapshot. The file is
// named after the page ID.
func (w *SnapshotWriter) Save(res *ragcontent.ExtractionResult) error {
	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	content, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode page %d: %w", res.PageID, err)
	}

	path := filepath.Join(w.tempDir(), strconv.FormatInt(res.PageID, 10)+".json")
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write page %d: %w", res.PageID, err)
	}
	return nil
}

// Commit atomically replaces the previous snapshot with the pending one.
func (w *SnapshotWriter) Commit() error {
	if err := os.RemoveAll(w.finalDir()); err != nil {
		return fmt.Errorf("failed to remove previous snapshot: %w", err)
	}
	if err := os.Rename(w.tempDir(), w.finalDir()); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}

// Abort discards the pending snapshot, leaving any previous one intact.
func (w *SnapshotWriter) Abort() error {
	return os.RemoveAll(w.tempDir())
}
