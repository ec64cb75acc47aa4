// Package inventory synchronizes the Snipe-IT asset catalog into NetBox.
//
// A run resolves, in dependency order, companies into tenants, manufacturers,
// models into device types, the location forest into sites and locations, and
// finally assets into devices. Every NetBox object touched carries the
// snipe_object_id custom field so that later runs find it again even after it
// was renamed on either side.
//
// # Components
//
//   - Syncer: the reconciliation steps, one method per phase.
//   - Service: fetches Snipe-IT, archives the snapshot, runs the phases and
//     records the run history.
//   - History: gorm backed run and item log.
//   - Snapshots: JSON archive of the fetched Snipe-IT collections in object storage.
//   - Handler: HTTP endpoints to trigger runs and read their history.
package inventory
