// Package reconcile provides the generic identity-resolution engine used to keep
// NetBox in sync with Snipe-IT without ever assuming NetBox is fully owned.
//
// Snipe-IT and NetBox share no primary keys. The only persistent correlation is an
// integer custom field (ForeignKeyField) on every NetBox object, holding the id of
// the Snipe-IT object it was created from or linked to.
//
// # Architecture
//
// The package consists of four small building blocks:
//
// 1. Slugify: converts display names into NetBox slugs (ASCII-folded, lower-cased,
//    hyphen separated).
//
// 2. ChangeSet: a typed field -> value diff between the current NetBox state and the
//    desired state. An empty ChangeSet means no write is issued.
//
// 3. Resolve: the resolve-or-create routine shared by every simple object kind
//    (tenant, manufacturer, device type, site, location, device role). It looks a
//    record up by foreign key, then by name, and creates it when neither matches.
//
// 4. Run and Policy: the immutable per-run settings. Policy gates linking
//    (attach a foreign key to a record matched by name) and updating (overwrite
//    diverged values on a record matched by foreign key).
//
// # Resolution Order
//
//	foreign key match  -> diff -> update (AllowUpdates) or skip
//	name match         -> link (AllowLinking) or skip
//	no match           -> create
//
// Every call issues at most one write. Absence is a valid terminal state when a
// policy flag is disabled; it is never reported as an error.
//
// # Usage Example
//
//	out, err := reconcile.Resolve(ctx, log, run, reconcile.Match[netbox.Tenant]{
//	    Kind:       "tenant",
//	    SourceID:   company.ID,
//	    Name:       company.Name,
//	    Candidates: tenants,
//	    Diff:       func(t netbox.Tenant) *reconcile.ChangeSet { ... },
//	    Create:     func(ctx context.Context, comment string) (netbox.Tenant, error) { ... },
//	    Update:     func(ctx context.Context, patch map[string]any) error { ... },
//	})
package reconcile
