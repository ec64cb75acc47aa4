package netbox

// Config holds configuration for the NetBox API.
type Config struct {
	// URL is the NetBox base URL (without /api).
	URL string `mapstructure:"url" default:""`
	// Token is the API token.
	Token string `mapstructure:"token" default:""`
	// PageSize is the number of objects requested per page.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// TimeoutSeconds is the HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// DefaultSiteID is the site used for new devices whose placement cannot be resolved.
	DefaultSiteID int `mapstructure:"default_site_id" default:"1"`
}
