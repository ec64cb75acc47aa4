// Package snipe provides the read-only Snipe-IT source provider.
//
// The Provider interface lists the collections consumed by the sync engine:
// companies, manufacturers and models, locations and assets. Only models and assets
// whose fieldset declares a custom field with the "MAC" format take part in sync.
//
// The HTTP Client pages through the Snipe-IT REST API (limit/offset against the
// reported total), de-duplicates rows across pages and returns fully materialized,
// sorted slices. Mocks for tests live in core/snipe/mocks.
//
// # Usage
//
//	client, err := snipe.NewClient(cfg.Snipe)
//	assets, err := client.AssetsWithMAC(ctx)
package snipe
