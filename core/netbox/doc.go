// Package netbox provides the read/write boundary to the NetBox registry.
//
// Every object kind touched by the sync engine (tenants, manufacturers, device types,
// sites, locations, device roles and devices) is exposed as a Collection with four
// operations: All, Filter (get-by-attribute), Create and Update (bulk partial update).
// Update payloads carry only the changed fields plus the object id and NetBox applies
// them last-write-wins.
//
// EnsureCustomField creates or updates the integer custom field that links NetBox
// objects to their Snipe-IT origin. It is called once per run before any sync.
//
// The HTTP Client talks to the NetBox REST API. The memory sub-package provides an
// in-memory Registry used by tests.
package netbox
