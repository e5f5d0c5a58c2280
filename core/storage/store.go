package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Store persists run artifacts as timestamped JSON files in the output
// directory and optionally mirrors them to object storage. Upload failures
// do not fail the run: the local file is the artifact of record.
type Store struct {
	cfg    Config
	client Client
	log    *zap.Logger
}

// NewStore creates a new artifact store. The output directory is created if
// missing; the upload client is only constructed when upload is enabled.
func NewStore(cfg Config, log *zap.Logger) (*Store, error) {
	var client Client
	if cfg.Upload.Enabled {
		c, err := NewClient(cfg.Upload)
		if err != nil {
			return nil, err
		}
		client = c
	}
	return NewStoreWithClient(cfg, client, log)
}

// NewStoreWithClient creates a store with an injected upload client. Tests
// pass a mock; a nil client disables upload.
func NewStoreWithClient(cfg Config, client Client, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}
	return &Store{cfg: cfg, client: client, log: log}, nil
}

// SaveRaw reports whether raw API results should be persisted.
func (s *Store) SaveRaw() bool {
	return s.cfg.SaveRaw
}

// ArtifactName builds the canonical artifact file name: a resource-kind
// prefix, the artifact kind, and a timestamp suffix.
func ArtifactName(prefix, kind string, ts time.Time) string {
	return fmt.Sprintf("%s_%s_%s.json", prefix, kind, ts.UTC().Format("20060102_150405"))
}

// SaveJSON writes v to name inside the output directory and returns the
// local path.
func (s *Store) SaveJSON(ctx context.Context, name string, v any) (string, error) {
	var data []byte
	var err error
	if s.cfg.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(s.cfg.OutputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.log.Info("artifact written",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)

	if s.client != nil {
		if err := s.upload(ctx, name, data); err != nil {
			s.log.Warn("artifact upload failed, local copy kept",
				zap.String("artifact", name),
				zap.Error(err),
			)
		}
	}

	return path, nil
}

// Latest returns the most recent artifact path matching prefix and kind, by
// the timestamp embedded in the file name.
func (s *Store) Latest(prefix, kind string) (string, error) {
	pattern := filepath.Join(s.cfg.OutputDir, fmt.Sprintf("%s_%s_*.json", prefix, kind))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s %s artifacts found in %s", prefix, kind, s.cfg.OutputDir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

func (s *Store) upload(ctx context.Context, name string, data []byte) error {
	bucket := s.cfg.Upload.Bucket

	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.cfg.Upload.Region}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	_, err = s.client.PutObject(ctx, bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}

	s.log.Info("artifact uploaded",
		zap.String("bucket", bucket),
		zap.String("object", name),
	)
	return nil
}
