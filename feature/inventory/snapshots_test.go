package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"testing/iotest"
	"time"

	"snipe-netbox-sync/core/snipe"
	"snipe-netbox-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objectList(objects ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func TestSnapshots_Save(t *testing.T) {
	client := new(mocks.Client)
	snapshots := NewSnapshots(client, "test-bucket", 0, zap.NewNop())

	client.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "test-bucket", "snapshots/run-1.json", mock.Anything, mock.Anything,
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" })).
		Return(minio.UploadInfo{}, nil)

	err := snapshots.Save(context.Background(), "run-1", testSnapshot())

	require.NoError(t, err)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestSnapshots_SavePrunesExpired(t *testing.T) {
	client := new(mocks.Client)
	snapshots := NewSnapshots(client, "test-bucket", 2, zap.NewNop())
	now := time.Now()

	client.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	client.On("PutObject", mock.Anything, "test-bucket", "snapshots/run-3.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(objectList(
		minio.ObjectInfo{Key: "snapshots/run-1.json", LastModified: now.Add(-2 * time.Hour)},
		minio.ObjectInfo{Key: "snapshots/run-3.json", LastModified: now},
		minio.ObjectInfo{Key: "snapshots/run-2.json", LastModified: now.Add(-time.Hour)},
	))

	var removed []string
	client.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, obj.Key)
			}
		}).
		Return(nil)

	require.NoError(t, snapshots.Save(context.Background(), "run-3", testSnapshot()))
	assert.Equal(t, []string{"snapshots/run-1.json"}, removed)
}

func TestSnapshots_List(t *testing.T) {
	client := new(mocks.Client)
	snapshots := NewSnapshots(client, "test-bucket", 0, zap.NewNop())
	now := time.Now()

	client.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{Prefix: "snapshots/", Recursive: true}).Return(objectList(
		minio.ObjectInfo{Key: "snapshots/old.json", Size: 10, LastModified: now.Add(-time.Hour)},
		minio.ObjectInfo{Key: "snapshots/readme.txt", LastModified: now},
		minio.ObjectInfo{Key: "snapshots/new.json", Size: 20, LastModified: now},
	))

	list, err := snapshots.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].RunID)
	assert.Equal(t, int64(20), list[0].Size)
	assert.Equal(t, "old", list[1].RunID)
}

func TestSnapshots_ListError(t *testing.T) {
	client := new(mocks.Client)
	snapshots := NewSnapshots(client, "test-bucket", 0, zap.NewNop())
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(objectList(minio.ObjectInfo{Err: assert.AnError}))

	_, err := snapshots.List(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}

func TestSnapshots_Load(t *testing.T) {
	client := new(mocks.Client)
	snapshots := NewSnapshots(client, "test-bucket", 0, zap.NewNop())

	data, err := json.Marshal(testSnapshot())
	require.NoError(t, err)
	client.On("GetObject", mock.Anything, "test-bucket", "snapshots/run-1.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)
	client.On("GetObject", mock.Anything, "test-bucket", "snapshots/missing.json", mock.Anything).
		Return(nil, assert.AnError)

	snap, err := snapshots.Load(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Len(t, snap.Assets, 3)
	assert.Equal(t, []snipe.Company{{ID: 7, Name: "Acme"}, {ID: 8, Name: "Globex Research"}}, snap.Companies)

	_, err = snapshots.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSnapshots_LoadNotFound(t *testing.T) {
	noSuchKey := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}

	tests := []struct {
		name   string
		reader io.ReadCloser
		err    error
	}{
		{name: "stat error", err: noSuchKey},
		{name: "first read", reader: io.NopCloser(iotest.ErrReader(noSuchKey))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			snapshots := NewSnapshots(client, "test-bucket", 0, zap.NewNop())
			client.On("GetObject", mock.Anything, "test-bucket", "snapshots/gone.json", mock.Anything).
				Return(tt.reader, tt.err)

			_, err := snapshots.Load(context.Background(), "gone")
			assert.ErrorIs(t, err, ErrSnapshotNotFound)
		})
	}
}
