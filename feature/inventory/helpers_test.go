package inventory

import (
	"context"
	"testing"
	"time"

	"snipe-netbox-sync/core/netbox"
	"snipe-netbox-sync/core/netbox/memory"
	"snipe-netbox-sync/core/reconcile"
	"snipe-netbox-sync/core/snipe"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testTime = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

const (
	importedComment = "Imported from SnipeIT 24-03-05 14:07:09 (UTC)"
	linkedComment   = "Updated from SnipeIT 24-03-05 14:07:09 (UTC) [Foreign ID]"
	updatedComment  = "Updated from SnipeIT 24-03-05 14:07:09 (UTC) [Values]"
)

func newTestSyncer(reg *memory.Registry, policy reconcile.Policy) *Syncer {
	return NewSyncer(reg, zap.NewNop(), reconcile.NewRun(policy, testTime), Options{})
}

func fk(id int) netbox.CustomFields {
	return netbox.CustomFields{reconcile.ForeignKeyField: id}
}

func ref(id int, name string) *snipe.Ref {
	return &snipe.Ref{ID: id, Name: name}
}

func strPtr(s string) *string {
	return &s
}

func foreignID(t *testing.T, r reconcile.Record) int {
	t.Helper()
	id, ok := r.ForeignID()
	require.True(t, ok, "foreign key not set on %s", r.DisplayName())
	return id
}

// fullSync runs every phase without the custom field setup.
func fullSync(t *testing.T, s *Syncer, snap *snipe.Snapshot) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Tenants(ctx, snap.Companies))
	require.NoError(t, s.Manufacturers(ctx, snap.Manufacturers))
	require.NoError(t, s.DeviceTypes(ctx, snap.Models))
	require.NoError(t, s.Locations(ctx, snap.Locations))
	require.NoError(t, s.Devices(ctx, snap.Assets))
}

// testSnapshot is a small consistent Snipe-IT inventory.
func testSnapshot() *snipe.Snapshot {
	deployed := &snipe.StatusLabel{Name: "Deployed", StatusMeta: snipe.StatusDeployed}
	stock := &snipe.StatusLabel{Name: "Ready", StatusMeta: snipe.StatusDeployable}

	return &snipe.Snapshot{
		Companies:     []snipe.Company{{ID: 7, Name: "Acme"}, {ID: 8, Name: "Globex Research"}},
		Manufacturers: []snipe.Manufacturer{{ID: 11, Name: "Dell"}},
		Models: []snipe.Model{
			{ID: 20, Name: "PowerEdge R640", ModelNumber: "R640", Manufacturer: ref(11, "Dell"), Notes: "2U"},
		},
		Locations: []snipe.Location{
			{ID: 1, Name: "Berlin"},
			{ID: 2, Name: "Building 5", Parent: ref(1, "Berlin")},
			{ID: 3, Name: "Server Room", Parent: ref(2, "Building 5")},
		},
		Assets: []snipe.Asset{
			{
				ID: 100, Name: "web", AssetTag: "A1", Serial: "SN1", StatusLabel: deployed,
				Model: ref(20, "PowerEdge R640"), Category: ref(30, "Server - Rack"),
				Company: ref(7, "Acme"), Location: ref(3, "Server Room"),
			},
			{
				ID: 101, Name: "web", AssetTag: "A2", Serial: "SN2", StatusLabel: deployed,
				Model: ref(20, "PowerEdge R640"), Category: ref(30, "Server - Rack"),
				Company: ref(7, "Acme"), Location: ref(3, "Server Room"),
			},
			{
				ID: 102, Name: "", AssetTag: "A3", Serial: "SN3", StatusLabel: stock,
				Model: ref(20, "PowerEdge R640"), Category: ref(31, "Switch"),
				Company: ref(8, "Globex Research"),
			},
		},
	}
}
