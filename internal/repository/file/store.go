// Package file contains flat-file JSON implementations of repository interfaces.
//
// Each collection lives in one JSON document that is read, mutated in
// memory and rewritten whole on every change. A process-local mutex
// serializes the read-modify-write cycle; cross-process writers are not
// supported. Writes go through a temp file plus rename so a failed
// write never leaves a truncated document behind.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// doc is a single JSON-document store on disk.
type doc struct {
	path string
}

func newDoc(dir, name string) doc {
	return doc{path: filepath.Join(dir, name)}
}

// load decodes the document into v. A missing file is reported via
// os.ErrNotExist so callers can fall back to an empty collection.
func (d doc) load(v any) error {
	b, err := os.ReadFile(d.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", d.path, err)
	}
	return nil
}

// save writes v atomically (temp file, then rename).
func (d doc) save(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.path, err)
	}
	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, d.path)
}

func notExist(err error) bool { return errors.Is(err, os.ErrNotExist) }
