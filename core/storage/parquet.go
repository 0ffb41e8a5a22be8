package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// WriteParquet writes rows as a parquet file at path, creating parent
// directories as needed.
func WriteParquet[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := parquet.Write(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("writing parquet %s: %w", path, err)
	}
	return f.Close()
}

// ReadParquet loads all rows of a parquet file at path.
func ReadParquet[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	rows, err := parquet.Read[T](f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("reading parquet %s: %w", path, err)
	}
	return rows, nil
}
