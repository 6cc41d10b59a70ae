package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore reads dataset files from the local filesystem
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a local dataset store rooted at basePath
func NewLocalStore(basePath string) (*LocalStore, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("dataset directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset path is not a directory: %s", basePath)
	}

	return &LocalStore{basePath: basePath}, nil
}

// Fetch opens a dataset file under the store's base path
func (s *LocalStore) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") {
		return nil, fmt.Errorf("invalid dataset key: %s", key)
	}

	fullPath := filepath.Join(s.basePath, cleaned)
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}

	return file, nil
}
