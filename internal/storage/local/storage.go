// Package local implements the object storage gateway on a plain
// directory. Development use only.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Storage struct {
	dir string
}

func New(dir string) (*Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) Upload(ctx context.Context, key string, file io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("local create %q: %w", key, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("local write %q: %w", key, err)
	}
	return key, nil
}

func (s *Storage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, path)); err != nil {
		return fmt.Errorf("local delete %q: %w", path, err)
	}
	return nil
}
