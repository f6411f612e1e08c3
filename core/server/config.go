package server

import "strconv"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables
	// authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// CacheSeconds is the max-age sent with catalog responses. The data
	// only changes when the server restarts with a new snapshot, so
	// aggressive caching is safe.
	CacheSeconds int `mapstructure:"cache_seconds" default:"300"`
}

// CacheControl renders the Cache-Control header value for catalog
// responses. A non-positive max-age disables caching.
func (c Config) CacheControl() string {
	if c.CacheSeconds <= 0 {
		return "no-store"
	}
	return "public, max-age=" + strconv.Itoa(c.CacheSeconds)
}
