package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore keeps images in a directory served by the application itself.
// Without a public base the bare key is the public reference.
type LocalStore struct {
	dir        string
	publicBase string
}

func NewLocalStore(dir, publicBase string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory %q: %w", dir, err)
	}
	return &LocalStore{dir: dir, publicBase: publicBase}, nil
}

// Dir is the directory images are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

func validKey(key string) error {
	if key == "" || key == "." || key == ".." || key != filepath.Base(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

func (s *LocalStore) Upload(ctx context.Context, key string, data []byte, _ string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", key, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %q: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		return fmt.Errorf("move %q into place: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (s *LocalStore) PublicURL(key string) string {
	if s.publicBase == "" {
		return key
	}
	return joinURL(s.publicBase, key)
}
