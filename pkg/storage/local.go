package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects under a base directory and serves them from a
// public URL prefix. It is the development and test driver.
type LocalStore struct {
	base      string
	publicURL string
}

func NewLocal(base, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create upload base dir: %w", err)
	}
	return &LocalStore{base: base, publicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	full := filepath.Join(s.base, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(full)
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.base, filepath.FromSlash(key)))
}

// BaseDir exposes the storage root so the HTTP layer can serve it.
func (s *LocalStore) BaseDir() string { return s.base }
