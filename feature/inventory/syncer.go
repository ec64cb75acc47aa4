package inventory

import (
	"context"
	"fmt"

	"snipe-netbox-sync/core/netbox"
	"snipe-netbox-sync/core/reconcile"

	"go.uber.org/zap"
)

// Object kinds used in logs and reports.
const (
	KindTenant         = "tenant"
	KindManufacturer   = "manufacturer"
	KindDeviceType     = "device_type"
	KindSite           = "site"
	KindLocation       = "location"
	KindLocationParent = "location_parent"
	KindDeviceRole     = "device_role"
	KindDevice         = "device"
)

// Options holds the placement settings of a Syncer.
type Options struct {
	// DefaultSiteName is the site used for company devices matching no fallback rule.
	DefaultSiteName string
	// DefaultSiteID is the site id used when a device has no resolvable placement.
	DefaultSiteID int
	// FallbackSites maps company name keywords to site names.
	FallbackSites []FallbackRule
}

func (o Options) withDefaults() Options {
	if o.DefaultSiteName == "" {
		o.DefaultSiteName = "Default Site"
	}
	if o.DefaultSiteID <= 0 {
		o.DefaultSiteID = 1
	}
	return o
}

// Syncer runs the reconciliation phases against a NetBox registry.
// A Syncer belongs to one run and is not safe for concurrent use.
type Syncer struct {
	registry netbox.Registry
	logger   *zap.Logger
	run      reconcile.Run
	opts     Options
	report   *Report
}

// NewSyncer creates a Syncer for one run.
func NewSyncer(registry netbox.Registry, logger *zap.Logger, run reconcile.Run, opts Options) *Syncer {
	return &Syncer{
		registry: registry,
		logger:   logger,
		run:      run,
		opts:     opts.withDefaults(),
		report:   NewReport(),
	}
}

// Report returns the outcomes collected so far.
func (s *Syncer) Report() *Report {
	return s.report
}

// EnsureCustomField creates or updates the snipe_object_id definition.
func (s *Syncer) EnsureCustomField(ctx context.Context) error {
	created, err := s.registry.EnsureCustomField(ctx, netbox.ForeignKeyDefinition())
	if err != nil {
		return fmt.Errorf("failed to ensure custom field %s: %w", reconcile.ForeignKeyField, err)
	}
	if created {
		s.logger.Info("Created NetBox custom field", zap.String("field", reconcile.ForeignKeyField))
	} else {
		s.logger.Debug("Updated NetBox custom field", zap.String("field", reconcile.ForeignKeyField))
	}
	return nil
}

func (s *Syncer) record(kind string, sourceID int, name string, action reconcile.Action, fields []string, err error) {
	item := Item{Kind: kind, SourceID: sourceID, Name: name, Action: action, Fields: fields}
	if err != nil {
		item.Error = err.Error()
	}
	s.report.Add(item)
}

// updateOne adapts a batch update to the single patch writes of the matcher.
func updateOne[T any](col netbox.Collection[T]) func(context.Context, map[string]any) error {
	return func(ctx context.Context, patch map[string]any) error {
		return col.Update(ctx, []map[string]any{patch})
	}
}

// slugFor returns the slug of name, falling back to the Snipe-IT id when the
// name has no ASCII representation.
func slugFor(name string, sourceID int) string {
	if slug := reconcile.Slugify(name); slug != "" {
		return slug
	}
	return fmt.Sprintf("snipe-%d", sourceID)
}

// nameDiff compares the name and slug of a linked object.
func nameDiff(name, slug, desired string, sourceID int) *reconcile.ChangeSet {
	return reconcile.NewChangeSet().
		DiffString("name", name, desired).
		DiffString("slug", slug, slugFor(desired, sourceID))
}

// newObject returns the create payload shared by every synced kind.
func newObject(sourceID int, name, comment string) map[string]any {
	return map[string]any{
		"name":                    name,
		"slug":                    slugFor(name, sourceID),
		reconcile.AuditField:      comment,
		reconcile.CustomFieldsKey: map[string]any{reconcile.ForeignKeyField: sourceID},
	}
}

func intPtr(v int) *int {
	return &v
}
