package inventory

import (
	"context"
	"testing"
	"time"

	"snipe-netbox-sync/core/database"
	"snipe-netbox-sync/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newTestHistory opens a migrated in-memory sqlite history.
func newTestHistory(t *testing.T) *History {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	h := NewHistory(db)
	require.NoError(t, h.Migrate())
	return h
}

// setupMockDB creates a gorm DB backed by sqlmock.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func TestHistory_Lifecycle(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()
	started := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)

	run := &SyncRun{ID: "run-1", Phases: "tenants", AllowUpdates: true, StartedAt: started}
	require.NoError(t, h.Start(ctx, run))
	assert.Equal(t, RunRunning, run.Status)

	report := NewReport()
	report.Add(Item{Kind: KindTenant, SourceID: 7, Name: "Acme", Action: reconcile.ActionCreated})
	report.Add(Item{Kind: KindTenant, SourceID: 8, Name: "Globex", Action: reconcile.ActionSkippedUpdate, Fields: []string{"name", "slug"}})
	report.Add(Item{Kind: KindTenant, SourceID: 9, Name: "Initech", Action: reconcile.ActionUnchanged})
	require.NoError(t, h.Finish(ctx, "run-1", started.Add(time.Minute), report, nil))

	got, err := h.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, RunSucceeded, got.Status)
	assert.True(t, got.AllowUpdates)
	assert.Equal(t, 1, got.Created)
	assert.Equal(t, 1, got.Skipped)
	assert.Equal(t, 1, got.Unchanged)
	require.NotNil(t, got.FinishedAt)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "name,slug", got.Items[1].Fields)
}

func TestHistory_FinishWithError(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	require.NoError(t, h.Start(ctx, &SyncRun{ID: "run-1", StartedAt: time.Now()}))
	require.NoError(t, h.Finish(ctx, "run-1", time.Now(), NewReport(), assert.AnError))

	got, err := h.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, RunFailed, got.Status)
	assert.Equal(t, assert.AnError.Error(), got.Error)
	assert.Empty(t, got.Items)
}

func TestHistory_List(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, h.Start(ctx, &SyncRun{ID: id, StartedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	runs, err := h.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	runs, err = h.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestHistory_GetUnknownRun(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `sync_runs`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewHistory(db).Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistory_StartFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `sync_runs`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := NewHistory(db).Start(context.Background(), &SyncRun{ID: "run-1", StartedAt: time.Now()})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "run-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
