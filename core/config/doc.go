// Package config provides configuration management for the tech tree tools.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, cache policy)
//   - Source: game data locations plus S3/MinIO credentials
//   - Catalog: identity resolution and strictness knobs
//   - Database: MySQL connection details
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
