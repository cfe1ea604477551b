// Package locset persists sets of owned program locations across runs.
//
// A saved set is bound to the structural digest of the program it was
// taken from; loading it against a structurally different program fails
// with ErrStale instead of silently resolving against the wrong snapshot.
package locset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"talon/internal/il"
	"talon/internal/loc"
)

// Schema version - increment when the File format changes.
const schemaVersion uint16 = 1

// ErrStale marks a location set saved against a structurally different
// program than the one it is being loaded for.
var ErrStale = errors.New("location set was saved against a different program")

// File is the on-disk payload.
type File struct {
	Schema    uint16
	Program   string // structural digest of the source program
	Locations []loc.ProgramLocation
}

// Save writes the locations to path, bound to the program's digest.
// The write is atomic: a temp file in the target directory is renamed
// over the destination.
func Save(path string, program *il.Program, locations []loc.ProgramLocation) error {
	payload := File{
		Schema:    schemaVersion,
		Program:   il.Digest(program),
		Locations: locations,
	}
	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("locset: encode: %w", err)
	}
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("locset: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("locset: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("locset: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("locset: %w", err)
	}
	return nil
}

// Load reads a location set from path and verifies it was saved against a
// program structurally identical to the given one.
func Load(path string, program *il.Program) ([]loc.ProgramLocation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("locset: %w", err)
	}
	var payload File
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("locset: decode %s: %w", path, err)
	}
	if payload.Schema != schemaVersion {
		return nil, fmt.Errorf("locset: %s: schema %d, want %d", path, payload.Schema, schemaVersion)
	}
	if payload.Program != il.Digest(program) {
		return nil, fmt.Errorf("locset: %s: %w", path, ErrStale)
	}
	return payload.Locations, nil
}
