package inventory

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"snipe-netbox-sync/core/netbox"
	"snipe-netbox-sync/core/reconcile"
	"snipe-netbox-sync/core/snipe"

	"go.uber.org/zap"
)

// roleColor is the color of device roles created by the sync.
const roleColor = "9e9e9e"

// DeviceStatus maps a Snipe-IT status class to a NetBox device status.
func DeviceStatus(class string) string {
	switch class {
	case snipe.StatusUndeployable, snipe.StatusPending:
		return netbox.StatusOffline
	case snipe.StatusDeployable:
		return netbox.StatusInventory
	default:
		return netbox.StatusActive
	}
}

// RoleName derives the device role name from a category name.
// "Server - Rack" becomes "Server"; a leading hyphen is kept.
func RoleName(category string) string {
	if i := strings.Index(category, "-"); i > 0 {
		category = category[:i]
	}
	return strings.TrimSpace(category)
}

// UniqueNames reports, per trimmed asset name, whether the name occurs once in the batch.
func UniqueNames(assets []snipe.Asset) map[string]bool {
	counts := make(map[string]int, len(assets))
	for _, a := range assets {
		if name := strings.TrimSpace(a.Name); name != "" {
			counts[name]++
		}
	}
	unique := make(map[string]bool, len(counts))
	for name, n := range counts {
		unique[name] = n == 1
	}
	return unique
}

// match identifies how an existing device was found.
type match int

const (
	matchNone match = iota
	matchForeignID
	matchAssetTag
	matchName
)

func (m match) String() string {
	switch m {
	case matchForeignID:
		return "foreign_id"
	case matchAssetTag:
		return "asset_tag"
	case matchName:
		return "name"
	default:
		return "none"
	}
}

// placement is where a device goes. A nil site means no placement was found.
type placement struct {
	site     *int
	location *int
}

// inventory holds the NetBox snapshot used while syncing devices.
type inventory struct {
	devices   []netbox.Device
	types     []netbox.DeviceType
	tenants   []netbox.Tenant
	sites     []netbox.Site
	locations []netbox.Location
	roles     []netbox.DeviceRole

	rolesByCategory map[int]netbox.DeviceRole
	rolesByName     map[string]netbox.DeviceRole
	defaultSite     *netbox.Site
}

func (s *Syncer) inventory(ctx context.Context) (*inventory, error) {
	inv := &inventory{
		rolesByCategory: make(map[int]netbox.DeviceRole),
		rolesByName:     make(map[string]netbox.DeviceRole),
	}
	var err error

	if inv.devices, err = s.registry.Devices().All(ctx); err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	if inv.types, err = s.registry.DeviceTypes().All(ctx); err != nil {
		return nil, fmt.Errorf("failed to list device types: %w", err)
	}
	if inv.tenants, err = s.registry.Tenants().All(ctx); err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	if inv.sites, err = s.registry.Sites().All(ctx); err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	if inv.locations, err = s.registry.Locations().All(ctx); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	if inv.roles, err = s.registry.DeviceRoles().All(ctx); err != nil {
		return nil, fmt.Errorf("failed to list device roles: %w", err)
	}
	return inv, nil
}

// Devices maps Snipe-IT assets to NetBox devices. A failing asset is logged
// and does not stop the remaining assets.
func (s *Syncer) Devices(ctx context.Context, assets []snipe.Asset) error {
	inv, err := s.inventory(ctx)
	if err != nil {
		return err
	}
	unique := UniqueNames(assets)

	for _, asset := range assets {
		action, fields, err := s.syncAsset(ctx, inv, asset, unique[strings.TrimSpace(asset.Name)])
		if err != nil {
			action = reconcile.ActionFailed
			s.logger.Error("Failed to sync asset",
				zap.Int("source_id", asset.ID),
				zap.String("name", asset.Name),
				zap.String("asset_tag", asset.AssetTag),
				zap.Error(err))
		}
		s.record(KindDevice, asset.ID, asset.Name, action, fields, err)
	}
	return nil
}

// syncAsset isolates one asset, turning a panic into an error.
func (s *Syncer) syncAsset(ctx context.Context, inv *inventory, asset snipe.Asset, unique bool) (action reconcile.Action, fields []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			action, fields, err = reconcile.ActionFailed, nil, fmt.Errorf("panic while syncing asset: %v", r)
		}
	}()
	return s.device(ctx, inv, asset, unique)
}

func (s *Syncer) device(ctx context.Context, inv *inventory, asset snipe.Asset, unique bool) (reconcile.Action, []string, error) {
	l := s.logger.With(zap.Int("source_id", asset.ID), zap.String("name", asset.Name), zap.String("asset_tag", asset.AssetTag))

	if asset.Model == nil {
		l.Warn("Skipping asset without model")
		return reconcile.ActionSkipped, nil, nil
	}
	deviceType, ok := reconcile.FindByForeignID(inv.types, asset.Model.ID)
	if !ok {
		l.Warn("Skipping asset, device type is not in NetBox", zap.Error(reconcile.Unresolved(KindDeviceType, asset.Model.ID)))
		return reconcile.ActionSkipped, nil, nil
	}

	existing, how := s.findDevice(inv, asset, unique)
	status := DeviceStatus(asset.StatusClass())
	if how == matchNone && status == netbox.StatusOffline && asset.Unassigned() {
		l.Info("Skipping unassigned asset that is not deployable", zap.String("status", asset.StatusClass()))
		return reconcile.ActionSkipped, nil, nil
	}

	role, err := s.role(ctx, inv, asset.Category)
	if err != nil {
		return reconcile.ActionFailed, nil, err
	}
	if role == nil {
		l.Warn("Skipping asset without category")
		return reconcile.ActionSkipped, nil, nil
	}

	place, err := s.place(ctx, inv, asset)
	if err != nil {
		return reconcile.ActionFailed, nil, err
	}

	var tenant *int
	if asset.Company != nil {
		if t, ok := reconcile.FindByForeignID(inv.tenants, asset.Company.ID); ok {
			tenant = intPtr(t.ID)
		} else {
			l.Debug("Company is not linked to a tenant", zap.Int("company_id", asset.Company.ID))
		}
	}

	desired := desiredDevice{
		asset:      asset,
		status:     status,
		deviceType: deviceType.ID,
		role:       role.ID,
		tenant:     tenant,
		place:      place,
	}

	if how == matchNone {
		return s.createDevice(ctx, l, inv, desired, unique)
	}
	return s.updateDevice(ctx, l.With(zap.Stringer("match", how)), existing, how, desired)
}

// findDevice looks an asset up by foreign key, then asset tag, then (name, tenant)
// when the name is unique in the batch and unique matching is enabled.
func (s *Syncer) findDevice(inv *inventory, asset snipe.Asset, unique bool) (netbox.Device, match) {
	if d, ok := reconcile.FindByForeignID(inv.devices, asset.ID); ok {
		return d, matchForeignID
	}
	if asset.AssetTag != "" {
		if d, ok := reconcile.FindFirst(inv.devices, func(d netbox.Device) bool { return d.Tag() == asset.AssetTag }); ok {
			return d, matchAssetTag
		}
	}

	name := strings.TrimSpace(asset.Name)
	if name != "" && unique && s.run.Policy.UpdateUniqueExisting {
		var tenant *int
		if asset.Company != nil {
			if t, ok := reconcile.FindByForeignID(inv.tenants, asset.Company.ID); ok {
				tenant = intPtr(t.ID)
			}
		}
		if d, ok := reconcile.FindFirst(inv.devices, func(d netbox.Device) bool {
			return d.Name == name && sameRef(netbox.RefID(d.Tenant), tenant)
		}); ok {
			return d, matchName
		}
	}
	return netbox.Device{}, matchNone
}

// role resolves the device role of a category. Roles matched by name are
// always linked. Categories sharing a role name share the role; it keeps the
// foreign key of the first category linked to it.
func (s *Syncer) role(ctx context.Context, inv *inventory, category *snipe.Ref) (*netbox.DeviceRole, error) {
	if category == nil || RoleName(category.Name) == "" {
		return nil, nil
	}
	if r, ok := inv.rolesByCategory[category.ID]; ok {
		return &r, nil
	}

	name := RoleName(category.Name)
	if _, owned := reconcile.FindByForeignID(inv.roles, category.ID); !owned {
		shared, ok := inv.rolesByName[name]
		if !ok {
			shared, ok = reconcile.FindFirst(inv.roles, func(r netbox.DeviceRole) bool {
				fid, linked := r.ForeignID()
				return linked && fid != category.ID && r.Name == name
			})
		}
		if ok {
			s.logger.Debug("Device role is shared with another category",
				zap.Int("source_id", category.ID), zap.String("name", name), zap.Int("netbox_id", shared.ID))
			s.record(KindDeviceRole, category.ID, name, reconcile.ActionUnchanged, nil, nil)
			inv.rolesByCategory[category.ID] = shared
			return &shared, nil
		}
	}

	out, err := reconcile.Resolve(ctx, s.logger, s.run, reconcile.Match[netbox.DeviceRole]{
		Kind:       KindDeviceRole,
		SourceID:   category.ID,
		Name:       name,
		Candidates: inv.roles,
		SameName:   func(r netbox.DeviceRole) bool { return r.Name == name },
		AlwaysLink: true,
		Diff: func(r netbox.DeviceRole) *reconcile.ChangeSet {
			return nameDiff(r.Name, r.Slug, name, category.ID)
		},
		Create: func(ctx context.Context, comment string) (netbox.DeviceRole, error) {
			payload := newObject(category.ID, name, comment)
			payload["color"] = roleColor
			return s.registry.DeviceRoles().Create(ctx, payload)
		},
		Update: updateOne(s.registry.DeviceRoles()),
	})
	s.finish(KindDeviceRole, category.ID, name, out.Action, out.Fields, err)
	if err != nil {
		return nil, err
	}

	if out.Action == reconcile.ActionCreated {
		inv.roles = append(inv.roles, out.Record)
	}
	inv.rolesByCategory[category.ID] = out.Record
	inv.rolesByName[name] = out.Record
	return &out.Record, nil
}

// place resolves the site and location of an asset.
func (s *Syncer) place(ctx context.Context, inv *inventory, asset snipe.Asset) (placement, error) {
	if asset.Location != nil {
		if loc, ok := reconcile.FindByForeignID(inv.locations, asset.Location.ID); ok {
			return placement{site: intPtr(loc.Site.ID), location: intPtr(loc.ID)}, nil
		}
		if site, ok := reconcile.FindByForeignID(inv.sites, asset.Location.ID); ok {
			return placement{site: intPtr(site.ID)}, nil
		}
	}

	if asset.RtdLocation != nil {
		if loc, ok := reconcile.FindByForeignID(inv.locations, asset.RtdLocation.ID); ok {
			return placement{site: intPtr(loc.Site.ID)}, nil
		}
		if site, ok := reconcile.FindByForeignID(inv.sites, asset.RtdLocation.ID); ok {
			return placement{site: intPtr(site.ID)}, nil
		}
	}

	if asset.Company != nil {
		site, err := s.fallbackSite(ctx, inv, asset.Company.Name)
		if err != nil {
			return placement{}, err
		}
		return placement{site: intPtr(site.ID)}, nil
	}
	return placement{}, nil
}

// fallbackSite picks the site of a company by keyword, else the default site.
func (s *Syncer) fallbackSite(ctx context.Context, inv *inventory, company string) (netbox.Site, error) {
	if name, ok := matchFallback(s.opts.FallbackSites, company); ok {
		if site, ok := reconcile.FindFirst(inv.sites, func(site netbox.Site) bool { return reconcile.EqualNames(site.Name, name) }); ok {
			return site, nil
		}
		s.logger.Warn("Fallback site is not in NetBox, using default site",
			zap.String("company", company), zap.String("site", name))
	}
	return s.defaultSite(ctx, inv)
}

// defaultSite returns the default site, creating it on first use.
func (s *Syncer) defaultSite(ctx context.Context, inv *inventory) (netbox.Site, error) {
	if inv.defaultSite != nil {
		return *inv.defaultSite, nil
	}

	name := s.opts.DefaultSiteName
	site, ok := reconcile.FindFirst(inv.sites, func(site netbox.Site) bool { return reconcile.EqualNames(site.Name, name) })
	if !ok {
		var err error
		site, err = s.registry.Sites().Create(ctx, map[string]any{
			"name":               name,
			"slug":               slugFor(name, 0),
			"status":             netbox.StatusActive,
			reconcile.AuditField: s.run.Audit.Imported(),
		})
		if err != nil {
			return netbox.Site{}, fmt.Errorf("failed to create default site %q: %w", name, err)
		}
		s.logger.Info("Created default site", zap.String("name", name), zap.Int("netbox_id", site.ID))
		s.record(KindSite, 0, name, reconcile.ActionCreated, nil, nil)
		inv.sites = append(inv.sites, site)
	}
	inv.defaultSite = &site
	return site, nil
}

// desiredDevice is the NetBox state derived from an asset.
type desiredDevice struct {
	asset      snipe.Asset
	status     string
	deviceType int
	role       int
	tenant     *int
	place      placement
}

// baseName is the device name before collision suffixing.
func (d desiredDevice) baseName() string {
	if name := strings.TrimSpace(d.asset.Name); name != "" {
		return name
	}
	return d.asset.AssetTag
}

// creationName applies the naming rule for new devices.
func (s *Syncer) creationName(asset snipe.Asset, unique bool) string {
	name := strings.TrimSpace(asset.Name)
	if name == "" {
		return asset.AssetTag
	}
	if unique && (s.run.Policy.UpdateUniqueExisting || s.run.Policy.NoAppendAssetTag) {
		return name
	}
	return name + " " + asset.AssetTag
}

// uniqueName appends the asset tag when another device at the same site and
// tenant already uses name.
func (s *Syncer) uniqueName(ctx context.Context, name, tag string, site int, tenant *int, self int) (string, error) {
	if tag == "" || name == tag || strings.HasSuffix(name, " "+tag) {
		return name, nil
	}

	query := url.Values{"name": {name}, "site_id": {strconv.Itoa(site)}}
	if tenant != nil {
		query.Set("tenant_id", strconv.Itoa(*tenant))
	} else {
		query.Set("tenant_id", "null")
	}

	taken, err := s.registry.Devices().Filter(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to look up devices named %q: %w", name, err)
	}
	for _, d := range taken {
		if d.ID != self {
			return name + " " + tag, nil
		}
	}
	return name, nil
}

func (s *Syncer) createDevice(ctx context.Context, l *zap.Logger, inv *inventory, want desiredDevice, unique bool) (reconcile.Action, []string, error) {
	asset := want.asset
	site := s.opts.DefaultSiteID
	if want.place.site != nil {
		site = *want.place.site
	}

	name, err := s.uniqueName(ctx, s.creationName(asset, unique), asset.AssetTag, site, want.tenant, 0)
	if err != nil {
		return reconcile.ActionFailed, nil, err
	}

	payload := map[string]any{
		"name":                    name,
		"serial":                  asset.Serial,
		"site":                    site,
		"role":                    want.role,
		"device_type":             want.deviceType,
		"status":                  want.status,
		reconcile.AuditField:      s.run.Audit.Imported(),
		reconcile.CustomFieldsKey: map[string]any{reconcile.ForeignKeyField: asset.ID},
	}
	if asset.AssetTag != "" {
		payload["asset_tag"] = asset.AssetTag
	}
	if want.place.location != nil {
		payload["location"] = *want.place.location
	}
	if want.tenant != nil {
		payload["tenant"] = *want.tenant
	}
	if asset.Notes != "" {
		payload["comments"] = asset.Notes
	}

	created, err := s.registry.Devices().Create(ctx, payload)
	if err != nil {
		return reconcile.ActionFailed, nil, fmt.Errorf("failed to create device %q: %w", name, err)
	}
	inv.devices = append(inv.devices, created)
	l.Info("Created device", zap.String("device", name), zap.Int("netbox_id", created.ID))
	return reconcile.ActionCreated, nil, nil
}

// deviceDiff compares an existing device to the desired state.
func (s *Syncer) deviceDiff(ctx context.Context, current netbox.Device, want desiredDevice) (*reconcile.ChangeSet, error) {
	asset := want.asset
	changes := reconcile.NewChangeSet().
		DiffOptionalString("asset_tag", current.AssetTag, asset.AssetTag).
		DiffString("serial", current.Serial, asset.Serial)

	site := current.Site.ID
	if want.place.site != nil {
		site = *want.place.site
		changes.DiffInt("site", current.Site.ID, site)
		changes.DiffRef("location", netbox.RefID(current.Location), want.place.location)
	}

	changes.
		DiffInt("role", current.Role.ID, want.role).
		DiffRef("tenant", netbox.RefID(current.Tenant), want.tenant).
		DiffInt("device_type", current.DeviceType.ID, want.deviceType).
		DiffString("status", current.Status.Value, want.status)

	base := want.baseName()
	if strings.TrimSuffix(current.Name, " "+asset.AssetTag) != base {
		name, err := s.uniqueName(ctx, base, asset.AssetTag, site, want.tenant, current.ID)
		if err != nil {
			return nil, err
		}
		changes.DiffString("name", current.Name, name)
	}
	return changes, nil
}

func (s *Syncer) updateDevice(ctx context.Context, l *zap.Logger, current netbox.Device, how match, want desiredDevice) (reconcile.Action, []string, error) {
	changes, err := s.deviceDiff(ctx, current, want)
	if err != nil {
		return reconcile.ActionFailed, nil, err
	}
	if how != matchForeignID {
		changes.SetForeignID(want.asset.ID)
	}

	if changes.IsEmpty() {
		l.Debug("Device is up to date")
		return reconcile.ActionUnchanged, nil, nil
	}

	if !s.run.Policy.AllowUpdates {
		if how == matchForeignID {
			l.Info("Device has changed, skipping since updating is not enabled", zap.Strings("fields", changes.Fields()))
			return reconcile.ActionSkippedUpdate, changes.Fields(), nil
		}
		// the foreign key is written on every identity match
		changes = reconcile.NewChangeSet().SetForeignID(want.asset.ID)
	}

	fields := changes.Fields()
	tag := changes.Tag()
	changes.Set(reconcile.AuditField, s.run.Audit.Updated(tag))
	if err := s.registry.Devices().Update(ctx, []map[string]any{changes.Patch(current.ID)}); err != nil {
		return reconcile.ActionFailed, nil, fmt.Errorf("failed to update device %q: %w", current.Name, err)
	}

	if tag == reconcile.TagForeignID {
		l.Info("Linked device foreign id", zap.String("device", current.Name))
		return reconcile.ActionLinked, fields, nil
	}
	l.Info("Updated device", zap.String("device", current.Name), zap.Strings("fields", fields))
	return reconcile.ActionUpdated, fields, nil
}

func sameRef(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
