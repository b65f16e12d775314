// Package config provides configuration management for the gallery indexer.
//
// It loads settings from a .env file and environment variables through Viper. Defaults
// come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit
//   - Database: driver (sqlite, mysql) and connection details
//   - Storage: S3/MinIO credentials when the gallery lives in a bucket
//   - Gallery: media root, scanner source, watcher settings
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Gallery.Root)
package config
