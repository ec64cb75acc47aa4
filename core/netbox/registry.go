package netbox

import (
	"context"
	"net/url"
)

// Collection is the set of operations available for one NetBox object kind.
type Collection[T any] interface {
	// All lists every object in NetBox listing order.
	All(ctx context.Context) ([]T, error)
	// Filter lists the objects matching the query (e.g. name, site_id, tenant_id).
	Filter(ctx context.Context, query url.Values) ([]T, error)
	// Create creates one object from a write payload and returns it.
	Create(ctx context.Context, payload map[string]any) (T, error)
	// Update applies partial updates. Every patch must carry an "id".
	Update(ctx context.Context, patches []map[string]any) error
}

// Registry is the read/write boundary to NetBox.
type Registry interface {
	Tenants() Collection[Tenant]
	Manufacturers() Collection[Manufacturer]
	DeviceTypes() Collection[DeviceType]
	Sites() Collection[Site]
	Locations() Collection[Location]
	DeviceRoles() Collection[DeviceRole]
	Devices() Collection[Device]

	// EnsureCustomField creates the custom field definition, or updates it when
	// it already exists. It reports whether the field was created.
	EnsureCustomField(ctx context.Context, def CustomFieldDefinition) (bool, error)
}
