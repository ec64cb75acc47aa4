package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"snipe-netbox-sync/core/snipe"
	"snipe-netbox-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a run id.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// snapshotPrefix is the folder holding the archived Snipe-IT snapshots.
const snapshotPrefix = "snapshots/"

// SnapshotInfo describes one archived snapshot.
type SnapshotInfo struct {
	RunID        string    `json:"run_id"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Snapshots archives the Snipe-IT collections fetched by each run.
type Snapshots struct {
	client    storage.Client
	bucket    string
	retention int
	logger    *zap.Logger
}

// NewSnapshots creates a snapshot archive. A retention of zero keeps every snapshot.
func NewSnapshots(client storage.Client, bucket string, retention int, logger *zap.Logger) *Snapshots {
	return &Snapshots{client: client, bucket: bucket, retention: retention, logger: logger}
}

func snapshotKey(runID string) string {
	return snapshotPrefix + runID + ".json"
}

// Save uploads the snapshot of a run and prunes old snapshots.
func (s *Snapshots) Save(ctx context.Context, runID string, snap *snipe.Snapshot) error {
	if err := storage.EnsureBucket(ctx, s.client, s.bucket); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := snapshotKey(runID)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}
	s.logger.Debug("Archived snapshot", zap.String("key", key), zap.Int("size", len(data)))

	return s.prune(ctx)
}

// List returns the archived snapshots, newest first.
func (s *Snapshots) List(ctx context.Context) ([]SnapshotInfo, error) {
	var out []SnapshotInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: snapshotPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		out = append(out, SnapshotInfo{
			RunID:        strings.TrimSuffix(path.Base(obj.Key), ".json"),
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	return out, nil
}

// Load downloads the snapshot of a run.
func (s *Snapshots) Load(ctx context.Context, runID string) (*snipe.Snapshot, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, snapshotKey(runID), minio.GetObjectOptions{})
	if isNoSuchKey(err) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download snapshot %s: %w", runID, err)
	}
	defer obj.Close()

	var snap snipe.Snapshot
	// minio reports a missing object on the first read
	if err := json.NewDecoder(obj).Decode(&snap); err != nil {
		if isNoSuchKey(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", runID, err)
	}
	return &snap, nil
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	return errors.As(err, &resp) && resp.Code == "NoSuchKey"
}

// prune removes all but the newest retention snapshots.
func (s *Snapshots) prune(ctx context.Context) error {
	if s.retention <= 0 {
		return nil
	}

	snapshots, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(snapshots) <= s.retention {
		return nil
	}
	expired := snapshots[s.retention:]

	objectsCh := make(chan minio.ObjectInfo, len(expired))
	for _, snap := range expired {
		objectsCh <- minio.ObjectInfo{Key: snap.Key}
	}
	close(objectsCh)

	var failed []string
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		s.logger.Warn("Failed to remove snapshot", zap.String("key", rErr.ObjectName), zap.Error(rErr.Err))
		failed = append(failed, rErr.ObjectName)
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to remove %d expired snapshots", len(failed))
	}

	s.logger.Info("Pruned snapshots", zap.Int("removed", len(expired)))
	return nil
}
