package config

import "snipe-netbox-sync/core/reconcile"

// Sync holds the default sync policy and device placement settings.
type Sync struct {
	// AllowUpdates enables overwriting diverged values in NetBox.
	AllowUpdates bool `mapstructure:"allow_updates" default:"false"`
	// AllowLinking enables linking existing NetBox objects matched by name.
	AllowLinking bool `mapstructure:"allow_linking" default:"false"`
	// UpdateUniqueExisting enables matching devices by unique name and tenant.
	UpdateUniqueExisting bool `mapstructure:"update_unique_existing" default:"false"`
	// NoAppendAssetTag keeps unique device names without the asset tag suffix.
	NoAppendAssetTag bool `mapstructure:"no_append_assettag" default:"false"`
	// DefaultSiteName is the site for company devices matching no fallback rule.
	DefaultSiteName string `mapstructure:"default_site_name" default:"Default Site"`
	// FallbackSites maps company keywords to sites, e.g. "lab=Research Lab,hq=Headquarters".
	FallbackSites string `mapstructure:"fallback_sites" default:""`
}

// Policy returns the policy flags.
func (s Sync) Policy() reconcile.Policy {
	return reconcile.Policy{
		AllowUpdates:         s.AllowUpdates,
		AllowLinking:         s.AllowLinking,
		UpdateUniqueExisting: s.UpdateUniqueExisting,
		NoAppendAssetTag:     s.NoAppendAssetTag,
	}
}
