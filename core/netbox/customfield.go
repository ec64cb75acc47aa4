package netbox

import "snipe-netbox-sync/core/reconcile"

// CustomFieldDefinition describes a NetBox custom field.
type CustomFieldDefinition struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	ObjectTypes []string `json:"object_types"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	ReadOnly    bool     `json:"-"`
}

// Payload renders the definition as a write payload.
// Both the NetBox 3 (content_types, ui_visibility) and NetBox 4 (object_types,
// ui_editable) attribute names are sent; unknown attributes are ignored by the API.
func (d CustomFieldDefinition) Payload() map[string]any {
	visibility, editable := "read-write", "yes"
	if d.ReadOnly {
		visibility, editable = "read-only", "no"
	}
	return map[string]any{
		"name":          d.Name,
		"label":         d.Label,
		"content_types": d.ObjectTypes,
		"object_types":  d.ObjectTypes,
		"description":   d.Description,
		"type":          d.Type,
		"ui_visibility": visibility,
		"ui_editable":   editable,
	}
}

// ForeignKeyDefinition returns the definition of the Snipe-IT id custom field.
func ForeignKeyDefinition() CustomFieldDefinition {
	return CustomFieldDefinition{
		Name:  reconcile.ForeignKeyField,
		Label: "Snipe object id",
		ObjectTypes: []string{
			"dcim.device",
			"dcim.devicerole",
			"dcim.devicetype",
			"dcim.location",
			"dcim.manufacturer",
			"dcim.site",
			"tenancy.tenant",
		},
		Description: "The ID of the original SnipeIT Object used for Sync",
		Type:        "integer",
		ReadOnly:    true,
	}
}
