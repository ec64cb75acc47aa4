package inventory

import (
	"context"
	"errors"
	"fmt"

	"snipe-netbox-sync/core/netbox"
	"snipe-netbox-sync/core/reconcile"
	"snipe-netbox-sync/core/snipe"

	"go.uber.org/zap"
)

// forest indexes the Snipe-IT locations by id.
type forest map[int]snipe.Location

func newForest(locations []snipe.Location) forest {
	f := make(forest, len(locations))
	for _, l := range locations {
		f[l.ID] = l
	}
	return f
}

// split partitions the locations into roots and non-roots, keeping their order.
func split(locations []snipe.Location) (roots, children []snipe.Location) {
	for _, l := range locations {
		if l.IsRoot() {
			roots = append(roots, l)
		} else {
			children = append(children, l)
		}
	}
	return roots, children
}

// Locations maps the Snipe-IT location forest. Roots become sites, every other
// location becomes a NetBox location under the site of its nearest mapped
// ancestor. Parent links between locations are repaired in a final batch.
func (s *Syncer) Locations(ctx context.Context, locations []snipe.Location) error {
	roots, children := split(locations)
	tree := newForest(locations)

	if err := s.sites(ctx, roots); err != nil {
		return err
	}
	if err := s.locations(ctx, tree, children); err != nil {
		return err
	}
	return s.parents(ctx, tree, children)
}

// sites maps root locations to sites.
func (s *Syncer) sites(ctx context.Context, roots []snipe.Location) error {
	sites, err := s.registry.Sites().All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}

	for _, root := range roots {
		out, err := reconcile.Resolve(ctx, s.logger, s.run, reconcile.Match[netbox.Site]{
			Kind:       KindSite,
			SourceID:   root.ID,
			Name:       root.Name,
			Candidates: sites,
			Diff: func(site netbox.Site) *reconcile.ChangeSet {
				return nameDiff(site.Name, site.Slug, root.Name, root.ID)
			},
			Create: func(ctx context.Context, comment string) (netbox.Site, error) {
				payload := newObject(root.ID, root.Name, comment)
				payload["status"] = netbox.StatusActive
				return s.registry.Sites().Create(ctx, payload)
			},
			Update: updateOne(s.registry.Sites()),
		})
		s.finish(KindSite, root.ID, root.Name, out.Action, out.Fields, err)
		if out.Action == reconcile.ActionCreated {
			sites = append(sites, out.Record)
		}
	}
	return nil
}

// locations maps non-root locations under the site found by ownerSite.
func (s *Syncer) locations(ctx context.Context, tree forest, children []snipe.Location) error {
	sites, err := s.registry.Sites().All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}
	existing, err := s.registry.Locations().All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list locations: %w", err)
	}

	for _, loc := range children {
		site, err := ownerSite(tree, sites, loc)
		if errors.Is(err, reconcile.ErrLocationCycle) {
			return err
		}
		if err != nil {
			s.logger.Error("Cannot map location, no ancestor is a NetBox site",
				zap.Int("source_id", loc.ID), zap.String("name", loc.Name), zap.Error(err))
			s.record(KindLocation, loc.ID, loc.Name, reconcile.ActionSkipped, nil, err)
			continue
		}

		out, err := reconcile.Resolve(ctx, s.logger, s.run, reconcile.Match[netbox.Location]{
			Kind:       KindLocation,
			SourceID:   loc.ID,
			Name:       loc.Name,
			Candidates: existing,
			SameName: func(l netbox.Location) bool {
				return l.Site.ID == site.ID && reconcile.EqualNames(l.Name, loc.Name)
			},
			Diff: func(l netbox.Location) *reconcile.ChangeSet {
				return nameDiff(l.Name, l.Slug, loc.Name, loc.ID).DiffInt("site", l.Site.ID, site.ID)
			},
			Create: func(ctx context.Context, comment string) (netbox.Location, error) {
				payload := newObject(loc.ID, loc.Name, comment)
				payload["site"] = site.ID
				payload["status"] = netbox.StatusActive
				return s.registry.Locations().Create(ctx, payload)
			},
			Update: updateOne(s.registry.Locations()),
		})
		s.finish(KindLocation, loc.ID, loc.Name, out.Action, out.Fields, err)
		if out.Action == reconcile.ActionCreated {
			existing = append(existing, out.Record)
		}
	}
	return nil
}

// ownerSite walks up the parent chain of loc until an ancestor is linked to a site.
// Ancestors missing from NetBox are passed over.
func ownerSite(tree forest, sites []netbox.Site, loc snipe.Location) (netbox.Site, error) {
	visited := map[int]bool{loc.ID: true}

	for parent := loc.Parent; parent != nil; {
		if visited[parent.ID] {
			return netbox.Site{}, fmt.Errorf("%w: location %d reaches %d twice", reconcile.ErrLocationCycle, loc.ID, parent.ID)
		}
		visited[parent.ID] = true

		if site, ok := reconcile.FindByForeignID(sites, parent.ID); ok {
			return site, nil
		}

		next, ok := tree[parent.ID]
		if !ok {
			break
		}
		parent = next.Parent
	}
	return netbox.Site{}, reconcile.Unresolved(KindSite, loc.ID)
}

// parents links each location to its parent location. Locations whose parent
// is a root are owned by the site and keep no parent.
func (s *Syncer) parents(ctx context.Context, tree forest, children []snipe.Location) error {
	current, err := s.registry.Locations().All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list locations: %w", err)
	}

	var patches []map[string]any
	var linked []snipe.Location
	for _, loc := range children {
		parent, ok := tree[loc.Parent.ID]
		if !ok || parent.IsRoot() {
			continue
		}

		child, ok := reconcile.FindByForeignID(current, loc.ID)
		if !ok {
			s.logger.Warn("Location is not in NetBox, cannot link parent",
				zap.Int("source_id", loc.ID), zap.String("name", loc.Name))
			continue
		}
		want, ok := reconcile.FindByForeignID(current, parent.ID)
		if !ok {
			s.logger.Warn("Parent location is not in NetBox, cannot link parent",
				zap.Int("source_id", loc.ID), zap.String("name", loc.Name), zap.Int("parent_id", parent.ID))
			continue
		}
		if child.Parent != nil && child.Parent.ID == want.ID {
			continue
		}

		patches = append(patches, map[string]any{"id": child.ID, "parent": want.ID})
		linked = append(linked, loc)
	}

	if len(patches) == 0 {
		return nil
	}

	names := make([]string, len(linked))
	for i, loc := range linked {
		names[i] = loc.Name
	}

	if !s.run.Policy.AllowUpdates {
		s.logger.Info("Location parents have changed, skipping since updating is not enabled", zap.Strings("locations", names))
		s.recordAll(linked, reconcile.ActionSkippedUpdate, nil)
		return nil
	}

	if err := s.registry.Locations().Update(ctx, patches); err != nil {
		s.logger.Error("Failed to link location parents", zap.Strings("locations", names), zap.Error(err))
		s.recordAll(linked, reconcile.ActionFailed, err)
		return nil
	}
	s.logger.Info("Linked location parents", zap.Strings("locations", names))
	s.recordAll(linked, reconcile.ActionUpdated, nil)
	return nil
}

func (s *Syncer) recordAll(locations []snipe.Location, action reconcile.Action, err error) {
	for _, loc := range locations {
		s.record(KindLocationParent, loc.ID, loc.Name, action, []string{"parent"}, err)
	}
}
