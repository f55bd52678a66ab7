package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store that keeps each collection as a standalone JSON
// file under a data directory. Writes go through a temp file and a
// rename so a crash mid-write never leaves a half-written document.
// A single File value serializes its own readers and writers; it does
// not coordinate with other processes pointed at the same directory.
type File struct {
	dir string
	mu  sync.RWMutex
}

// NewFile creates the data directory if needed and returns a
// file-backed store rooted there.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

// Read decodes the collection file into out. A missing file reads as
// an empty collection; so does a file that fails to parse, which gets
// logged once per read rather than propagated.
func (f *File) Read(_ context.Context, collection string, out any) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	doc, err := os.ReadFile(f.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("store: read %s: %w", collection, err)
	}
	if err := json.Unmarshal(doc, out); err != nil {
		log.Printf("store: %s.json is corrupt, treating as empty: %v", collection, err)
		return nil
	}
	return nil
}

// Write replaces the collection file via temp file + rename.
func (f *File) Write(_ context.Context, collection string, in any) error {
	doc, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", collection, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: temp file for %s: %w", collection, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close %s: %w", collection, err)
	}
	if err := os.Rename(tmpName, f.path(collection)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: replace %s: %w", collection, err)
	}
	return nil
}
