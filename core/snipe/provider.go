package snipe

import "context"

// Provider is the read-only boundary to Snipe-IT.
type Provider interface {
	// Companies lists all companies.
	Companies(ctx context.Context) ([]Company, error)
	// ModelsWithMAC lists the models whose fieldset declares a MAC field, together
	// with their manufacturers.
	ModelsWithMAC(ctx context.Context) ([]Manufacturer, []Model, error)
	// Locations lists all locations sorted by name.
	Locations(ctx context.Context) ([]Location, error)
	// AssetsWithMAC lists the assets carrying a MAC formatted custom field, sorted by tag.
	AssetsWithMAC(ctx context.Context) ([]Asset, error)
}
