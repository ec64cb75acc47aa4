package netbox

import (
	"bytes"
	"encoding/json"
	"fmt"

	"snipe-netbox-sync/core/reconcile"
	"snipe-netbox-sync/core/utils"
)

// Ref is a nested reference to another NetBox object.
// NetBox returns nested objects but accepts bare ids in write payloads, so both forms decode.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// UnmarshalJSON accepts a nested object or a bare id.
func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		var id int
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return fmt.Errorf("invalid reference %s: %w", trimmed, err)
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// RefID returns a pointer to the id of r, or nil when r is nil.
func RefID(r *Ref) *int {
	if r == nil {
		return nil
	}
	id := r.ID
	return &id
}

// Status is a NetBox choice field.
type Status struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// UnmarshalJSON accepts a choice object or a bare value.
func (s *Status) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*s = Status{Value: v}
		return nil
	}
	type plain Status
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*s = Status(p)
	return nil
}

// Status values used by the sync engine.
const (
	StatusActive    = "active"
	StatusOffline   = "offline"
	StatusInventory = "inventory"
)

// CustomFields holds custom field values keyed by field name.
type CustomFields map[string]any

// Int returns an integer custom field value.
func (c CustomFields) Int(name string) (int, bool) {
	v, ok := c[name]
	if !ok || v == nil {
		return 0, false
	}
	return utils.ToInt(v), true
}

// foreignID reads the foreign key custom field.
func (c CustomFields) foreignID() (int, bool) {
	return c.Int(reconcile.ForeignKeyField)
}

// Tenant is a NetBox tenant.
type Tenant struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description"`
	CustomFields CustomFields `json:"custom_fields"`
}

func (t Tenant) RecordID() int { return t.ID }
func (t Tenant) ForeignID() (int, bool) { return t.CustomFields.foreignID() }
func (t Tenant) DisplayName() string { return t.Name }

// Manufacturer is a NetBox manufacturer.
type Manufacturer struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description"`
	CustomFields CustomFields `json:"custom_fields"`
}

func (m Manufacturer) RecordID() int { return m.ID }
func (m Manufacturer) ForeignID() (int, bool) { return m.CustomFields.foreignID() }
func (m Manufacturer) DisplayName() string { return m.Name }

// DeviceType is a NetBox device type.
type DeviceType struct {
	ID           int          `json:"id"`
	Model        string       `json:"model"`
	Slug         string       `json:"slug"`
	PartNumber   string       `json:"part_number"`
	Manufacturer Ref          `json:"manufacturer"`
	UHeight      float64      `json:"u_height"`
	IsFullDepth  bool         `json:"is_full_depth"`
	Description  string       `json:"description"`
	Comments     string       `json:"comments"`
	CustomFields CustomFields `json:"custom_fields"`
}

func (d DeviceType) RecordID() int { return d.ID }
func (d DeviceType) ForeignID() (int, bool) { return d.CustomFields.foreignID() }
func (d DeviceType) DisplayName() string { return d.Model }

// Site is a NetBox site.
type Site struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Status       Status       `json:"status"`
	Description  string       `json:"description"`
	CustomFields CustomFields `json:"custom_fields"`
}

func (s Site) RecordID() int { return s.ID }
func (s Site) ForeignID() (int, bool) { return s.CustomFields.foreignID() }
func (s Site) DisplayName() string { return s.Name }

// Location is a NetBox location. Locations belong to a site and may nest.
type Location struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Site         Ref          `json:"site"`
	Parent       *Ref         `json:"parent"`
	Status       Status       `json:"status"`
	Description  string       `json:"description"`
	CustomFields CustomFields `json:"custom_fields"`
}

func (l Location) RecordID() int { return l.ID }
func (l Location) ForeignID() (int, bool) { return l.CustomFields.foreignID() }
func (l Location) DisplayName() string { return l.Name }

// DeviceRole is a NetBox device role.
type DeviceRole struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Color        string       `json:"color"`
	Description  string       `json:"description"`
	CustomFields CustomFields `json:"custom_fields"`
}

func (r DeviceRole) RecordID() int { return r.ID }
func (r DeviceRole) ForeignID() (int, bool) { return r.CustomFields.foreignID() }
func (r DeviceRole) DisplayName() string { return r.Name }

// Device is a NetBox device.
type Device struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	AssetTag     *string      `json:"asset_tag"`
	Serial       string       `json:"serial"`
	Site         Ref          `json:"site"`
	Location     *Ref         `json:"location"`
	Role         Ref          `json:"role"`
	DeviceType   Ref          `json:"device_type"`
	Tenant       *Ref         `json:"tenant"`
	Status       Status       `json:"status"`
	Description  string       `json:"description"`
	Comments     string       `json:"comments"`
	CustomFields CustomFields `json:"custom_fields"`
}

func (d Device) RecordID() int { return d.ID }
func (d Device) ForeignID() (int, bool) { return d.CustomFields.foreignID() }
func (d Device) DisplayName() string { return d.Name }

// Tag returns the asset tag or an empty string.
func (d Device) Tag() string {
	if d.AssetTag == nil {
		return ""
	}
	return *d.AssetTag
}
