// Package server holds the HTTP server configuration and constants.
//
// While the serve command handles the actual server startup, this package
// defines the configuration structures and derived values for server
// settings, such as the response cache policy.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key and the max-age sent
// with catalog responses.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the serve feature to shape responses.
package server
