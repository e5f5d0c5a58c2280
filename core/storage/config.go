package storage

import "fmt"

// Config holds configuration for run artifact storage.
type Config struct {
	// OutputDir is the local directory artifacts are written to.
	OutputDir string `mapstructure:"output_dir" default:"output"`
	// Pretty indents the JSON artifacts for human inspection.
	Pretty bool `mapstructure:"pretty" default:"true"`
	// SaveRaw also persists the raw API results next to the normalized
	// artifact.
	SaveRaw bool `mapstructure:"save_raw" default:"false"`
	// Upload holds settings for mirroring artifacts to object storage.
	Upload UploadConfig `mapstructure:"upload"`
}

// UploadConfig holds configuration for the optional S3-compatible upload of
// artifacts.
type UploadConfig struct {
	// Enabled turns artifact upload on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket artifacts are uploaded to.
	Bucket string `mapstructure:"bucket" default:"usaspending"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("storage.output_dir is required")
	}
	if c.Upload.Enabled {
		if c.Upload.Endpoint == "" {
			return fmt.Errorf("storage.upload.endpoint is required when upload is enabled")
		}
		if c.Upload.Bucket == "" {
			return fmt.Errorf("storage.upload.bucket is required when upload is enabled")
		}
		if c.Upload.AccessKey == "" || c.Upload.SecretKey == "" {
			return fmt.Errorf("storage.upload.access_key and storage.upload.secret_key are required when upload is enabled")
		}
	}
	return nil
}
