package main

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileNotFound is the distinguished, non-fatal read result: optional
// inputs (scaler matrix override, border image) simply do not exist on most
// installs.
var ErrFileNotFound = errors.New("file not found")

// Storage is the persistent-storage surface the pipeline consumes. ReadFile
// fills buf completely or fails; WriteFile replaces the file atomically
// enough for our purposes.
type Storage interface {
	ReadFile(path string, buf []byte) error
	WriteFile(path string, data []byte) error
}

// FsStorage backs Storage with the host filesystem.
type FsStorage struct{}

func (FsStorage) ReadFile(path string, buf []byte) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return err
	}
	defer f.Close()
	_, err = io.ReadFull(f, buf)
	return err
}

func (FsStorage) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
