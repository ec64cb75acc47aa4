package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"snipe-netbox-sync/core/netbox"
	"snipe-netbox-sync/core/reconcile"
	"snipe-netbox-sync/core/utils"
)

// Operations recorded in the journal.
const (
	OpCreate = "create"
	OpUpdate = "update"
)

// Write is one journal entry.
type Write struct {
	Kind     string
	Op       string
	Payloads []map[string]any
}

// FailFunc injects an error into a write. Returning nil lets the write proceed.
type FailFunc func(kind, op string, payloads []map[string]any) error

// Registry is an in-memory netbox.Registry.
type Registry struct {
	mu      sync.Mutex
	journal []Write
	fields  map[string]netbox.CustomFieldDefinition

	// Fail, when set, is consulted before every write.
	Fail FailFunc

	TenantStore       *Collection[netbox.Tenant]
	ManufacturerStore *Collection[netbox.Manufacturer]
	DeviceTypeStore   *Collection[netbox.DeviceType]
	SiteStore         *Collection[netbox.Site]
	LocationStore     *Collection[netbox.Location]
	DeviceRoleStore   *Collection[netbox.DeviceRole]
	DeviceStore       *Collection[netbox.Device]
}

// New creates an empty registry.
func New() *Registry {
	r := &Registry{fields: make(map[string]netbox.CustomFieldDefinition)}
	r.TenantStore = newCollection[netbox.Tenant](r, "tenant")
	r.ManufacturerStore = newCollection[netbox.Manufacturer](r, "manufacturer")
	r.DeviceTypeStore = newCollection[netbox.DeviceType](r, "device_type")
	r.SiteStore = newCollection[netbox.Site](r, "site")
	r.LocationStore = newCollection[netbox.Location](r, "location")
	r.DeviceRoleStore = newCollection[netbox.DeviceRole](r, "device_role")
	r.DeviceStore = newCollection[netbox.Device](r, "device")
	return r
}

func (r *Registry) Tenants() netbox.Collection[netbox.Tenant]             { return r.TenantStore }
func (r *Registry) Manufacturers() netbox.Collection[netbox.Manufacturer] { return r.ManufacturerStore }
func (r *Registry) DeviceTypes() netbox.Collection[netbox.DeviceType]     { return r.DeviceTypeStore }
func (r *Registry) Sites() netbox.Collection[netbox.Site]                 { return r.SiteStore }
func (r *Registry) Locations() netbox.Collection[netbox.Location]         { return r.LocationStore }
func (r *Registry) DeviceRoles() netbox.Collection[netbox.DeviceRole]     { return r.DeviceRoleStore }
func (r *Registry) Devices() netbox.Collection[netbox.Device]             { return r.DeviceStore }

// EnsureCustomField stores the definition.
func (r *Registry) EnsureCustomField(_ context.Context, def netbox.CustomFieldDefinition) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.fields[def.Name]
	op := OpCreate
	if exists {
		op = OpUpdate
	}
	if err := r.record("custom_field", op, []map[string]any{def.Payload()}); err != nil {
		return false, err
	}
	r.fields[def.Name] = def
	return !exists, nil
}

// CustomField returns a stored custom field definition.
func (r *Registry) CustomField(name string) (netbox.CustomFieldDefinition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.fields[name]
	return def, ok
}

// Writes returns a copy of the journal.
func (r *Registry) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Write, len(r.journal))
	copy(out, r.journal)
	return out
}

// WritesOf returns the journal entries for one object kind.
func (r *Registry) WritesOf(kind string) []Write {
	var out []Write
	for _, w := range r.Writes() {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// record must be called with mu held.
func (r *Registry) record(kind, op string, payloads []map[string]any) error {
	if r.Fail != nil {
		if err := r.Fail(kind, op, payloads); err != nil {
			return err
		}
	}
	r.journal = append(r.journal, Write{Kind: kind, Op: op, Payloads: payloads})
	return nil
}

// Collection is an in-memory netbox.Collection.
type Collection[T any] struct {
	registry *Registry
	kind     string
	nextID   int
	items    []map[string]any
}

func newCollection[T any](r *Registry, kind string) *Collection[T] {
	return &Collection[T]{registry: r, kind: kind, nextID: 1}
}

// Seed stores existing objects without journaling them.
func (c *Collection[T]) Seed(items ...T) *Collection[T] {
	c.registry.mu.Lock()
	defer c.registry.mu.Unlock()

	for _, item := range items {
		obj, err := toObject(item)
		if err != nil {
			panic(fmt.Sprintf("memory: cannot seed %s: %v", c.kind, err))
		}
		if id := utils.ToInt(obj["id"]); id >= c.nextID {
			c.nextID = id + 1
		}
		c.items = append(c.items, obj)
	}
	return c
}

// Items returns the stored objects.
func (c *Collection[T]) Items() []T {
	out, err := c.All(context.Background())
	if err != nil {
		panic(fmt.Sprintf("memory: cannot decode %s: %v", c.kind, err))
	}
	return out
}

// Get returns the object with the given id.
func (c *Collection[T]) Get(id int) (T, bool) {
	c.registry.mu.Lock()
	defer c.registry.mu.Unlock()

	var zero T
	obj := c.find(id)
	if obj == nil {
		return zero, false
	}
	item, err := fromObject[T](obj)
	if err != nil {
		return zero, false
	}
	return item, true
}

func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	return c.Filter(ctx, nil)
}

func (c *Collection[T]) Filter(_ context.Context, query url.Values) ([]T, error) {
	c.registry.mu.Lock()
	defer c.registry.mu.Unlock()

	out := make([]T, 0, len(c.items))
	for _, obj := range c.items {
		if !matches(obj, query) {
			continue
		}
		item, err := fromObject[T](obj)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (c *Collection[T]) Create(_ context.Context, payload map[string]any) (T, error) {
	c.registry.mu.Lock()
	defer c.registry.mu.Unlock()

	var zero T
	obj, err := normalize(payload)
	if err != nil {
		return zero, err
	}
	if err := c.registry.record(c.kind, OpCreate, []map[string]any{payload}); err != nil {
		return zero, err
	}

	obj["id"] = c.nextID
	c.nextID++
	if _, ok := obj[reconcile.CustomFieldsKey]; !ok {
		obj[reconcile.CustomFieldsKey] = map[string]any{}
	}
	c.items = append(c.items, obj)
	return fromObject[T](obj)
}

func (c *Collection[T]) Update(_ context.Context, patches []map[string]any) error {
	if len(patches) == 0 {
		return nil
	}

	c.registry.mu.Lock()
	defer c.registry.mu.Unlock()

	targets := make([]map[string]any, len(patches))
	for i, patch := range patches {
		id, ok := patch["id"]
		if !ok {
			return fmt.Errorf("%s patch without id", c.kind)
		}
		targets[i] = c.find(utils.ToInt(id))
		if targets[i] == nil {
			return fmt.Errorf("%s %v not found", c.kind, id)
		}
	}
	if err := c.registry.record(c.kind, OpUpdate, patches); err != nil {
		return err
	}

	for i, patch := range patches {
		values, err := normalize(patch)
		if err != nil {
			return err
		}
		for k, v := range values {
			if k == reconcile.CustomFieldsKey {
				merged, _ := targets[i][k].(map[string]any)
				if merged == nil {
					merged = map[string]any{}
				}
				if cf, ok := v.(map[string]any); ok {
					for name, value := range cf {
						merged[name] = value
					}
				}
				targets[i][k] = merged
				continue
			}
			targets[i][k] = v
		}
	}
	return nil
}

func (c *Collection[T]) find(id int) map[string]any {
	for _, obj := range c.items {
		if utils.ToInt(obj["id"]) == id {
			return obj
		}
	}
	return nil
}

// matches implements the subset of the NetBox filter syntax used by the sync:
// plain attributes, <ref>_id and cf_<name>. The value "null" matches nil.
func matches(obj map[string]any, query url.Values) bool {
	for key := range query {
		if key == "limit" || key == "offset" {
			continue
		}
		want := query.Get(key)

		var have any
		switch {
		case strings.HasPrefix(key, "cf_"):
			cf, _ := obj[reconcile.CustomFieldsKey].(map[string]any)
			have = cf[strings.TrimPrefix(key, "cf_")]
		case strings.HasSuffix(key, "_id"):
			have = refID(obj[strings.TrimSuffix(key, "_id")])
		default:
			have = obj[key]
		}

		if have == nil {
			if want != "null" {
				return false
			}
			continue
		}
		if utils.ToString(have) != want {
			return false
		}
	}
	return true
}

// refID reads the id of a reference stored as a bare id or a nested object.
func refID(v any) any {
	switch ref := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return ref["id"]
	default:
		return ref
	}
}

func toObject(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func normalize(payload map[string]any) (map[string]any, error) {
	return toObject(payload)
}

func fromObject[T any](obj map[string]any) (T, error) {
	var item T
	data, err := json.Marshal(obj)
	if err != nil {
		return item, err
	}
	err = json.Unmarshal(data, &item)
	return item, err
}
