package inventory

import (
	"testing"

	"snipe-netbox-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	r := NewReport()
	r.Add(Item{Kind: KindTenant, SourceID: 1, Action: reconcile.ActionCreated})
	r.Add(Item{Kind: KindTenant, SourceID: 2, Action: reconcile.ActionUnchanged})
	r.Add(Item{Kind: KindDevice, SourceID: 3, Action: reconcile.ActionSkippedLink})
	r.Add(Item{Kind: KindDevice, SourceID: 4, Action: reconcile.ActionSkippedUpdate})
	r.Add(Item{Kind: KindDevice, SourceID: 5, Action: reconcile.ActionFailed, Error: "boom"})

	assert.Equal(t, Counts{Created: 1, Unchanged: 1}, r.Kind(KindTenant))
	assert.Equal(t, Counts{Skipped: 2, Failed: 1}, r.Kind(KindDevice))
	assert.Equal(t, Counts{}, r.Kind(KindSite))
	assert.Equal(t, Counts{Created: 1, Unchanged: 1, Skipped: 2, Failed: 1}, r.Total())
	assert.Len(t, r.Items, 4, "unchanged items are only counted")
}
