package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matthewlchambers/standardizedinventories/core/metadata"
	"github.com/matthewlchambers/standardizedinventories/core/record"
)

// Local is the on-disk layout of generated artifacts: one directory per
// inventory format, one per raw source category, plus data/ for reference
// totals and the ledger and validation/ for reports.
type Local struct {
	root string
}

// NewLocal resolves the storage root and makes sure it exists.
func NewLocal(cfg Config) (*Local, error) {
	root := cfg.LocalRoot
	if root == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving user cache directory: %w", err)
		}
		root = filepath.Join(cache, "stewi")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &Local{root: root}, nil
}

// Root returns the storage root directory.
func (l *Local) Root() string { return l.root }

// Dir returns the joined path under the root, creating it if missing.
func (l *Local) Dir(parts ...string) (string, error) {
	dir := filepath.Join(append([]string{l.root}, parts...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return dir, nil
}

// ValidationDir returns the directory validation reports are written to.
func (l *Local) ValidationDir() (string, error) { return l.Dir("validation") }

// DataDir returns the directory for reference totals and the sources ledger.
func (l *Local) DataDir() (string, error) { return l.Dir("data") }

// LedgerPath returns the path of the validation sources ledger CSV.
func (l *Local) LedgerPath() (string, error) {
	dir, err := l.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ValidationSets_Sources.csv"), nil
}

// SourcePath returns the path of a raw source file within its category
// folder, e.g. "NEI Data Files".
func (l *Local) SourcePath(category, name string) (string, error) {
	dir, err := l.Dir(category)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// StoreInventory writes an inventory table as parquet under its format
// directory, along with its metadata descriptor, and returns the table path.
func (l *Local) StoreInventory(name string, format record.Format, rows []record.Record, meta metadata.FileMeta) (string, error) {
	dir, err := l.Dir(string(format))
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+".parquet")
	if err := WriteParquet(path, rows); err != nil {
		return "", err
	}
	if err := metadata.Write(filepath.Join(dir, name+"_metadata.json"), meta); err != nil {
		return "", err
	}
	return path, nil
}

// ReadInventory loads a stored inventory table. A missing table returns
// os.ErrNotExist so callers can decide to generate it.
func (l *Local) ReadInventory(name string, format record.Format) ([]record.Record, error) {
	path := filepath.Join(l.root, string(format), name+".parquet")
	return ReadParquet[record.Record](path)
}

// StoreFacilities writes the facility attribute table of an inventory.
func (l *Local) StoreFacilities(name string, rows []record.FacilityRecord, meta metadata.FileMeta) (string, error) {
	dir, err := l.Dir(string(record.Facilities))
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+".parquet")
	if err := WriteParquet(path, rows); err != nil {
		return "", err
	}
	if err := metadata.Write(filepath.Join(dir, name+"_metadata.json"), meta); err != nil {
		return "", err
	}
	return path, nil
}
