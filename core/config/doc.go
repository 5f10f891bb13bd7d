// Package config provides configuration management for the BeamMP manager.
//
// Values come from environment variables, optionally seeded from a .env
// file. Defaults are declared with `default` struct tags on each section and
// registered with Viper by reflection, so every key can be overridden by an
// environment variable named SECTION_KEY (for example INSTANCE_PORT or
// RELEASE_TIMEOUT_SECONDS).
//
// # Configuration Structure
//
//   - Server: HTTP API bind address and API key
//   - Instance: instance directory, file names and the authoritative
//     server settings (name, port, auth key, max players, map)
//   - Release: release index and download endpoints, timeouts
//   - Storage: optional S3/MinIO release archive
//   - Database: optional MySQL lifecycle history
//   - Log: logging level and format
//   - Schedule: update check schedule and auto update
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Instance.Port)
package config
