// Package config provides configuration management for StEWI.
//
// It utilizes Viper for loading configuration from environment variables,
// config files (config.yaml), and command-line flags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Storage: local cache root and data commons endpoint
//   - NEI: per-year National Emissions Inventory source files
//   - EGRID: per-year eGRID workbook sources
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
