// Package archive stores point-in-time period snapshots in Google Cloud
// Storage. The artifact is advisory: a failed upload never blocks the lock.
package archive

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
)

const uploadTimeout = 2 * time.Minute

// GCSArchiver writes period snapshots to one bucket, keyed by ledger and
// period. Objects are written once and never rewritten.
type GCSArchiver struct {
	client *storage.Client
	bucket string
}

// NewGCSArchiver creates an archiver over the named bucket.
func NewGCSArchiver(ctx context.Context, bucket string) (*GCSArchiver, error) {
	if bucket == "" {
		return nil, fmt.Errorf("archive bucket cannot be empty")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSArchiver{client: client, bucket: bucket}, nil
}

// Ensure GCSArchiver implements the portssvc.PeriodArchiver interface
var _ portssvc.PeriodArchiver = (*GCSArchiver)(nil)

// Store uploads the snapshot and returns the object reference.
func (a *GCSArchiver) Store(ctx context.Context, ledgerID string, periodID string, snapshot []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	objectName := fmt.Sprintf("ledgers/%s/periods/%s/snapshot-%s.json",
		ledgerID, periodID, time.Now().UTC().Format("20060102T150405Z"))

	obj := a.client.Bucket(a.bucket).Object(objectName)
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(snapshot); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write snapshot object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize snapshot object: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, objectName), nil
}

// Close releases the underlying storage client.
func (a *GCSArchiver) Close() error {
	return a.client.Close()
}
