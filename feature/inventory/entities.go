package inventory

import (
	"context"
	"fmt"
	"strings"

	"snipe-netbox-sync/core/netbox"
	"snipe-netbox-sync/core/reconcile"
	"snipe-netbox-sync/core/snipe"

	"go.uber.org/zap"
)

// notesHeader prefixes the model notes copied into new device types.
const notesHeader = "Notes from SnipeIT when initially creating this Netbox Entry. " +
	"(It will not be Updated on further syncs):\n\n "

// Tenants maps Snipe-IT companies to NetBox tenants.
func (s *Syncer) Tenants(ctx context.Context, companies []snipe.Company) error {
	tenants, err := s.registry.Tenants().All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tenants: %w", err)
	}

	for _, company := range companies {
		out, err := reconcile.Resolve(ctx, s.logger, s.run, reconcile.Match[netbox.Tenant]{
			Kind:       KindTenant,
			SourceID:   company.ID,
			Name:       company.Name,
			Candidates: tenants,
			Diff: func(t netbox.Tenant) *reconcile.ChangeSet {
				return nameDiff(t.Name, t.Slug, company.Name, company.ID)
			},
			Create: func(ctx context.Context, comment string) (netbox.Tenant, error) {
				return s.registry.Tenants().Create(ctx, newObject(company.ID, company.Name, comment))
			},
			Update: updateOne(s.registry.Tenants()),
		})
		s.finish(KindTenant, company.ID, company.Name, out.Action, out.Fields, err)
		if out.Action == reconcile.ActionCreated {
			tenants = append(tenants, out.Record)
		}
	}
	return nil
}

// Manufacturers maps Snipe-IT manufacturers to NetBox manufacturers.
func (s *Syncer) Manufacturers(ctx context.Context, manufacturers []snipe.Manufacturer) error {
	existing, err := s.registry.Manufacturers().All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list manufacturers: %w", err)
	}

	for _, m := range manufacturers {
		out, err := reconcile.Resolve(ctx, s.logger, s.run, reconcile.Match[netbox.Manufacturer]{
			Kind:       KindManufacturer,
			SourceID:   m.ID,
			Name:       m.Name,
			Candidates: existing,
			Diff: func(nb netbox.Manufacturer) *reconcile.ChangeSet {
				return nameDiff(nb.Name, nb.Slug, m.Name, m.ID)
			},
			Create: func(ctx context.Context, comment string) (netbox.Manufacturer, error) {
				return s.registry.Manufacturers().Create(ctx, newObject(m.ID, m.Name, comment))
			},
			Update: updateOne(s.registry.Manufacturers()),
		})
		s.finish(KindManufacturer, m.ID, m.Name, out.Action, out.Fields, err)
		if out.Action == reconcile.ActionCreated {
			existing = append(existing, out.Record)
		}
	}
	return nil
}

// DeviceTypes maps Snipe-IT models to NetBox device types.
// A device type is identified by name within its manufacturer.
func (s *Syncer) DeviceTypes(ctx context.Context, models []snipe.Model) error {
	types, err := s.registry.DeviceTypes().All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list device types: %w", err)
	}
	manufacturers, err := s.registry.Manufacturers().All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list manufacturers: %w", err)
	}

	for _, model := range models {
		manufacturer, ok := manufacturerOf(manufacturers, model.Manufacturer)
		if !ok {
			err := reconcile.Unresolved(KindManufacturer, refID(model.Manufacturer))
			s.logger.Warn("Skipping device type, manufacturer is not in NetBox",
				zap.Int("source_id", model.ID), zap.String("name", model.Name), zap.Error(err))
			s.record(KindDeviceType, model.ID, model.Name, reconcile.ActionSkipped, nil, err)
			continue
		}

		out, err := reconcile.Resolve(ctx, s.logger, s.run, reconcile.Match[netbox.DeviceType]{
			Kind:       KindDeviceType,
			SourceID:   model.ID,
			Name:       model.Name,
			Candidates: types,
			SameName: func(dt netbox.DeviceType) bool {
				return dt.Manufacturer.ID == manufacturer.ID && reconcile.EqualNames(dt.Model, model.Name)
			},
			Diff: func(dt netbox.DeviceType) *reconcile.ChangeSet {
				return reconcile.NewChangeSet().
					DiffString("model", dt.Model, model.Name).
					DiffString("slug", dt.Slug, slugFor(model.Name, model.ID)).
					DiffString("part_number", dt.PartNumber, model.ModelNumber).
					DiffInt("manufacturer", dt.Manufacturer.ID, manufacturer.ID)
			},
			Create: func(ctx context.Context, comment string) (netbox.DeviceType, error) {
				payload := newObject(model.ID, model.Name, comment)
				delete(payload, "name")
				payload["model"] = model.Name
				payload["part_number"] = model.ModelNumber
				payload["manufacturer"] = manufacturer.ID
				payload["comments"] = notesHeader + strings.ReplaceAll(model.Notes, "\r\n", "\r\n\r\n")
				payload["u_height"] = 0
				payload["is_full_depth"] = false
				return s.registry.DeviceTypes().Create(ctx, payload)
			},
			Update: updateOne(s.registry.DeviceTypes()),
		})
		s.finish(KindDeviceType, model.ID, model.Name, out.Action, out.Fields, err)
		if out.Action == reconcile.ActionCreated {
			types = append(types, out.Record)
		}
	}
	return nil
}

// finish logs a per-item failure and records the outcome.
func (s *Syncer) finish(kind string, sourceID int, name string, action reconcile.Action, fields []string, err error) {
	if err != nil {
		action = reconcile.ActionFailed
		s.logger.Error("Failed to sync object",
			zap.String("kind", kind), zap.Int("source_id", sourceID), zap.String("name", name), zap.Error(err))
	}
	s.record(kind, sourceID, name, action, fields, err)
}

// manufacturerOf resolves the manufacturer of a model by foreign key, then by name.
func manufacturerOf(manufacturers []netbox.Manufacturer, ref *snipe.Ref) (netbox.Manufacturer, bool) {
	if ref == nil {
		return netbox.Manufacturer{}, false
	}
	if m, ok := reconcile.FindByForeignID(manufacturers, ref.ID); ok {
		return m, true
	}
	return reconcile.FindFirst(manufacturers, func(m netbox.Manufacturer) bool {
		return reconcile.EqualNames(m.Name, ref.Name)
	})
}

func refID(ref *snipe.Ref) int {
	if ref == nil {
		return 0
	}
	return ref.ID
}
