package inventory

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"snipe-netbox-sync/core/netbox/memory"
	"snipe-netbox-sync/core/reconcile"
	"snipe-netbox-sync/core/snipe"
	"snipe-netbox-sync/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, history *History) (*fiber.App, *Service, *memory.Registry) {
	reg := memory.New()
	svc := NewService(mockProvider(testSnapshot()), reg, history, nil, Options{}, zap.NewNop())
	handler := NewHandler(svc, reconcile.Policy{AllowLinking: true}, zap.NewNop())

	app := fiber.New()
	require.NoError(t, NewFeature(handler).Load(app))
	return app, svc, reg
}

func TestHandleSync(t *testing.T) {
	app, _, reg := setupTestApp(t, nil)

	req := httptest.NewRequest("POST", "/sync", strings.NewReader(`{"phases":["tenants"],"allow_updates":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result RunResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, []Phase{PhaseTenants}, result.Phases)
	assert.True(t, result.Policy.AllowUpdates)
	assert.True(t, result.Policy.AllowLinking, "default policy is kept")
	assert.Equal(t, 2, result.Report.Kind(KindTenant).Created)
	assert.Len(t, reg.TenantStore.Items(), 2)
}

func TestHandleSync_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"phases":`},
		{name: "unknown phase", body: `{"phases":["racks"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, reg := setupTestApp(t, nil)

			req := httptest.NewRequest("POST", "/sync", strings.NewReader(tt.body))
			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
			assert.Empty(t, reg.Writes())
		})
	}
}

func TestHandleSync_Conflict(t *testing.T) {
	app, svc, _ := setupTestApp(t, nil)
	svc.mu.Lock()
	defer svc.mu.Unlock()

	resp, err := app.Test(httptest.NewRequest("POST", "/sync", nil))

	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}

func TestHandleRuns(t *testing.T) {
	app, _, _ := setupTestApp(t, newTestHistory(t))

	resp, err := app.Test(httptest.NewRequest("POST", "/sync", nil), 5000)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	var result RunResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	resp, err = app.Test(httptest.NewRequest("GET", "/runs?limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var runs []SyncRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, result.ID, runs[0].ID)

	resp, err = app.Test(httptest.NewRequest("GET", "/runs/"+result.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var run SyncRun
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.Equal(t, RunSucceeded, run.Status)
	assert.NotEmpty(t, run.Items)

	resp, err = app.Test(httptest.NewRequest("GET", "/runs/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleDisabledStores(t *testing.T) {
	app, _, _ := setupTestApp(t, nil)

	for _, path := range []string{"/runs", "/runs/abc", "/snapshots", "/snapshots/abc"} {
		t.Run(path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", path, nil))
			require.NoError(t, err)
			assert.Equal(t, 503, resp.StatusCode)
		})
	}
}

func TestHandleGetSnapshot(t *testing.T) {
	data, err := json.Marshal(testSnapshot())
	require.NoError(t, err)

	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "snapshots/run-1.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)
	client.On("GetObject", mock.Anything, "snapshots", "snapshots/gone.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	client.On("GetObject", mock.Anything, "snapshots", "snapshots/broken.json", mock.Anything).
		Return(nil, assert.AnError)

	snapshots := NewSnapshots(client, "snapshots", 0, zap.NewNop())
	svc := NewService(mockProvider(testSnapshot()), memory.New(), nil, snapshots, Options{}, zap.NewNop())
	app := fiber.New()
	require.NoError(t, NewFeature(NewHandler(svc, reconcile.Policy{}, zap.NewNop())).Load(app))

	tests := []struct {
		id         string
		wantStatus int
	}{
		{id: "run-1", wantStatus: 200},
		{id: "gone", wantStatus: 404},
		{id: "broken", wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/snapshots/"+tt.id, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == 200 {
				var snap snipe.Snapshot
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
				assert.Len(t, snap.Assets, 3)
				assert.Len(t, snap.Locations, 3)
			}
		})
	}
}
