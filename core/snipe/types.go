package snipe

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Ref is a nested reference to another Snipe-IT object.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company is a Snipe-IT company. Companies become NetBox tenants.
type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Manufacturer is a Snipe-IT manufacturer.
type Manufacturer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Model is a Snipe-IT asset model. Models become NetBox device types.
type Model struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ModelNumber  string `json:"model_number"`
	Manufacturer *Ref   `json:"manufacturer"`
	Fieldset     *Ref   `json:"fieldset"`
	Notes        string `json:"notes"`
}

// Location is a Snipe-IT location. Roots become NetBox sites, the rest NetBox locations.
type Location struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Parent *Ref   `json:"parent"`
}

// IsRoot reports whether the location has no parent.
func (l Location) IsRoot() bool {
	return l.Parent == nil
}

// StatusLabel is the status attached to an asset.
type StatusLabel struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	StatusType string `json:"status_type"`
	StatusMeta string `json:"status_meta"`
}

// CustomField is a single custom field value on an asset.
type CustomField struct {
	Field  string `json:"field"`
	Value  any    `json:"value"`
	Format string `json:"field_format"`
}

// CustomFields maps custom field labels to values.
// Snipe-IT encodes an empty set as a JSON array.
type CustomFields map[string]CustomField

// UnmarshalJSON accepts both an object and an empty array.
func (c *CustomFields) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '[' || bytes.Equal(trimmed, []byte("null")) {
		*c = CustomFields{}
		return nil
	}
	var m map[string]CustomField
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*c = m
	return nil
}

// HasMACFormat reports whether any field uses the MAC format.
func (c CustomFields) HasMACFormat() bool {
	for _, f := range c {
		if strings.EqualFold(f.Format, FormatMAC) {
			return true
		}
	}
	return false
}

// FormatMAC is the custom field format that marks hardware taking part in sync.
const FormatMAC = "MAC"

// Asset is a Snipe-IT hardware asset. Assets become NetBox devices.
type Asset struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	AssetTag     string       `json:"asset_tag"`
	Serial       string       `json:"serial"`
	StatusLabel  *StatusLabel `json:"status_label"`
	Model        *Ref         `json:"model"`
	Category     *Ref         `json:"category"`
	Company      *Ref         `json:"company"`
	Location     *Ref         `json:"location"`
	RtdLocation  *Ref         `json:"rtd_location"`
	AssignedTo   *Ref         `json:"assigned_to"`
	Notes        string       `json:"notes"`
	CustomFields CustomFields `json:"custom_fields"`
}

// Status classes reported in status_label.status_meta.
const (
	StatusDeployed     = "deployed"
	StatusDeployable   = "deployable"
	StatusPending      = "pending"
	StatusUndeployable = "undeployable"
	StatusArchived     = "archived"
)

// StatusClass returns the lower-cased status class of the asset.
func (a Asset) StatusClass() string {
	if a.StatusLabel == nil {
		return ""
	}
	if a.StatusLabel.StatusMeta != "" {
		return strings.ToLower(a.StatusLabel.StatusMeta)
	}
	return strings.ToLower(a.StatusLabel.StatusType)
}

// Unassigned reports whether the asset is not checked out to anything.
func (a Asset) Unassigned() bool {
	return a.AssignedTo == nil
}

// Fieldset is a Snipe-IT custom fieldset.
type Fieldset struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Fields struct {
		Rows []FieldDefinition `json:"rows"`
	} `json:"fields"`
}

// FieldDefinition is one field of a fieldset.
type FieldDefinition struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Format string `json:"format"`
}

// HasMACFormat reports whether the fieldset declares a MAC field.
func (f Fieldset) HasMACFormat() bool {
	for _, field := range f.Fields.Rows {
		if strings.EqualFold(field.Format, FormatMAC) {
			return true
		}
	}
	return false
}

// Snapshot is the full set of collections fetched for one sync run.
type Snapshot struct {
	Companies     []Company      `json:"companies"`
	Manufacturers []Manufacturer `json:"manufacturers"`
	Models        []Model        `json:"models"`
	Locations     []Location     `json:"locations"`
	Assets        []Asset        `json:"assets"`
}
