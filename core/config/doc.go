// Package config provides configuration management for the fetcher.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional config file (config.yaml), and a .env overlay.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - API: USAspending endpoints, timeouts, page/batch sizes, request pacing
//   - Fetch: type codes, minimum amount, lookback window, end-date selection
//   - Storage: artifact output directory, formatting, optional upload
//   - Log: logging level and format
//
// Validation fails fast with a descriptive error naming the offending key
// before any network activity happens.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.BaseURL)
package config
