package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// DatasetStore fetches the enriched IPC section dataset used by the offline
// embedding build. The serving path never touches it.
type DatasetStore interface {
	// Fetch opens the dataset object identified by key
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
}

// StoreType represents the dataset store backend type
type StoreType string

const (
	StoreTypeLocal StoreType = "local"
	StoreTypeS3    StoreType = "s3"
)

// StoreConfig holds configuration for the dataset store
type StoreConfig struct {
	Type         StoreType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// NewDatasetStore creates a dataset store from explicit configuration
func NewDatasetStore(cfg StoreConfig) (DatasetStore, error) {
	switch cfg.Type {
	case StoreTypeLocal:
		return NewLocalStore(cfg.LocalPath)
	case StoreTypeS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown dataset store type: %s", cfg.Type)
	}
}

// NewDatasetStoreFromEnv creates a dataset store from environment variables
func NewDatasetStoreFromEnv() (DatasetStore, error) {
	storeType := os.Getenv("DATASET_STORE")
	if storeType == "" {
		storeType = "local" // Default to local for development
	}

	switch StoreType(storeType) {
	case StoreTypeLocal:
		localPath := os.Getenv("DATASET_LOCAL_PATH")
		if localPath == "" {
			localPath = "./data"
		}
		return NewLocalStore(localPath)

	case StoreTypeS3:
		cfg := StoreConfig{
			Type:     StoreTypeS3,
			S3Bucket: os.Getenv("DATASET_S3_BUCKET"),
			S3Region: os.Getenv("AWS_REGION"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1" // Default region
		}
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

		if cfg.S3Bucket == "" {
			return nil, errors.New("DATASET_S3_BUCKET environment variable is required for S3 dataset store")
		}

		return NewS3Store(cfg)

	default:
		return nil, fmt.Errorf("unknown dataset store type: %s", storeType)
	}
}
