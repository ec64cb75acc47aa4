package inventory

import (
	"context"
	"testing"
	"time"

	"snipe-netbox-sync/core/netbox/memory"
	"snipe-netbox-sync/core/reconcile"
	"snipe-netbox-sync/core/snipe"
	"snipe-netbox-sync/core/snipe/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mockProvider(snap *snipe.Snapshot) *mocks.Provider {
	p := new(mocks.Provider)
	p.On("Companies", mock.Anything).Return(snap.Companies, nil)
	p.On("ModelsWithMAC", mock.Anything).Return(snap.Manufacturers, snap.Models, nil)
	p.On("Locations", mock.Anything).Return(snap.Locations, nil)
	p.On("AssetsWithMAC", mock.Anything).Return(snap.Assets, nil)
	return p
}

func TestParsePhases(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []Phase
		wantErr bool
	}{
		{name: "none selects all", input: nil, want: AllPhases},
		{name: "dependency order", input: []string{"devices", "Tenants"}, want: []Phase{PhaseTenants, PhaseDevices}},
		{name: "duplicates", input: []string{"locations", " locations "}, want: []Phase{PhaseLocations}},
		{name: "unknown", input: []string{"racks"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePhases(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePhases_ReturnsCopy(t *testing.T) {
	phases, err := ParsePhases(nil)
	require.NoError(t, err)

	phases[0] = PhaseDevices

	assert.Equal(t, PhaseTenants, AllPhases[0])
}

func TestService_Run(t *testing.T) {
	reg := memory.New()
	history := newTestHistory(t)
	provider := mockProvider(testSnapshot())
	svc := NewService(provider, reg, history, nil, Options{}, zap.NewNop())
	svc.now = func() time.Time { return testTime }

	result, err := svc.Run(context.Background(), RunRequest{Policy: reconcile.Policy{AllowUpdates: true}})

	require.NoError(t, err)
	provider.AssertExpectations(t)
	assert.Equal(t, AllPhases, result.Phases)
	assert.Empty(t, result.Error)
	assert.Equal(t, 3, result.Report.Kind(KindDevice).Created)
	assert.Equal(t, 2, result.Report.Kind(KindTenant).Created)

	def, ok := reg.CustomField(reconcile.ForeignKeyField)
	require.True(t, ok)
	assert.True(t, def.ReadOnly)

	stored, err := history.Get(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, RunSucceeded, stored.Status)
	assert.Equal(t, "tenants,manufacturers,devicetypes,locations,devices", stored.Phases)
	assert.Equal(t, result.Report.Total().Created, stored.Created)
}

func TestService_RunSelectedPhases(t *testing.T) {
	reg := memory.New()
	svc := NewService(mockProvider(testSnapshot()), reg, nil, nil, Options{}, zap.NewNop())

	result, err := svc.Run(context.Background(), RunRequest{Phases: []Phase{PhaseTenants}})

	require.NoError(t, err)
	assert.Len(t, reg.TenantStore.Items(), 2)
	assert.Empty(t, reg.DeviceStore.Items())
	assert.Equal(t, Counts{}, result.Report.Kind(KindDevice))
}

func TestService_RunFetchFailure(t *testing.T) {
	reg := memory.New()
	history := newTestHistory(t)
	provider := new(mocks.Provider)
	provider.On("Companies", mock.Anything).Return(nil, assert.AnError)
	provider.On("ModelsWithMAC", mock.Anything).Return(nil, nil, nil).Maybe()
	provider.On("Locations", mock.Anything).Return(nil, nil).Maybe()
	provider.On("AssetsWithMAC", mock.Anything).Return(nil, nil).Maybe()
	svc := NewService(provider, reg, history, nil, Options{}, zap.NewNop())

	result, err := svc.Run(context.Background(), RunRequest{})

	assert.ErrorIs(t, err, assert.AnError)
	require.NotNil(t, result)
	assert.Contains(t, result.Error, "failed to list companies")
	assert.Empty(t, reg.Writes())

	stored, err := history.Get(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, RunFailed, stored.Status)
}

func TestService_RunLocationCycleAborts(t *testing.T) {
	snap := testSnapshot()
	snap.Locations = []snipe.Location{
		{ID: 6, Name: "A", Parent: ref(7, "B")},
		{ID: 7, Name: "B", Parent: ref(6, "A")},
	}
	reg := memory.New()
	svc := NewService(mockProvider(snap), reg, nil, nil, Options{}, zap.NewNop())

	result, err := svc.Run(context.Background(), RunRequest{})

	assert.ErrorIs(t, err, reconcile.ErrLocationCycle)
	assert.Contains(t, result.Error, "phase locations")
	assert.Empty(t, reg.DeviceStore.Items(), "devices phase never runs")
}

func TestService_TryRunInProgress(t *testing.T) {
	svc := NewService(new(mocks.Provider), memory.New(), nil, nil, Options{}, zap.NewNop())
	svc.mu.Lock()
	defer svc.mu.Unlock()

	result, err := svc.TryRun(context.Background(), RunRequest{})

	assert.ErrorIs(t, err, ErrRunInProgress)
	assert.Nil(t, result)
}

func TestService_DisabledStores(t *testing.T) {
	svc := NewService(new(mocks.Provider), memory.New(), nil, nil, Options{}, zap.NewNop())

	_, err := svc.Runs(context.Background(), 10)
	assert.ErrorIs(t, err, errHistoryDisabled)
	_, err = svc.GetRun(context.Background(), "x")
	assert.ErrorIs(t, err, errHistoryDisabled)
	_, err = svc.Snapshots(context.Background())
	assert.ErrorIs(t, err, errSnapshotsDisabled)
}
