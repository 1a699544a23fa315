package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps blobs as plain files in a single flat directory.
// Blob keys are generated filenames, so no subdirectories are needed.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	slog.Info("initializing local storage", "dir", dir)
	return &LocalStorage{dir: dir}, nil
}

// resolve maps a blob key to a path inside the upload directory,
// rejecting keys that would escape it.
func (s *LocalStorage) resolve(path string) (string, error) {
	if path == "" || path != filepath.Base(path) || strings.Contains(path, "..") {
		return "", fmt.Errorf("invalid blob key %q", path)
	}
	return filepath.Join(s.dir, path), nil
}

func (s *LocalStorage) Save(path string, file io.Reader) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}

	dst, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(dst, file)
	if err != nil {
		dst.Close()
		os.Remove(full)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return dst.Close()
}

func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if os.IsNotExist(err) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}

func (s *LocalStorage) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}

	err = os.Remove(full)
	if os.IsNotExist(err) {
		return ErrBlobNotFound
	}
	return err
}
