package snipe

// Config holds configuration for the Snipe-IT API.
type Config struct {
	// URL is the Snipe-IT base URL (without /api/v1).
	URL string `mapstructure:"url" default:""`
	// Token is the personal API token.
	Token string `mapstructure:"token" default:""`
	// PageSize is the number of rows requested per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// TimeoutSeconds is the HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
