// Package config loads the application configuration.
//
// Values come from environment variables, optionally provided through a .env
// file, and fall back to the `default` struct tags of every section. Nested
// keys map to upper-case variables: netbox.url is NETBOX_URL.
//
// # Sections
//
//   - Snipe / NetBox: API endpoints, tokens and paging.
//   - Sync: default policy flags and device placement.
//   - Server: HTTP port and API key.
//   - Database: run history (mysql or sqlite).
//   - Storage: snapshot archive (S3/MinIO).
//   - Log: level and format.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
