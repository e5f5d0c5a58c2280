package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/sutt/usa-spending/core/logger"
	"github.com/sutt/usa-spending/core/spending"
	"github.com/sutt/usa-spending/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// API holds configuration for the USAspending API client.
	API spending.Config `mapstructure:"api"`
	// Fetch holds the query window and filter settings for fetch runs.
	Fetch FetchConfig `mapstructure:"fetch"`
	// Storage holds configuration for run artifact storage.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// FetchConfig holds the query settings a fetch run is built from.
type FetchConfig struct {
	// TypeCodes is a comma-separated list of award type codes to include.
	// Empty means no type filter on stage 1 (batch queries still default to
	// all known codes).
	TypeCodes string `mapstructure:"type_codes" default:""`
	// MinAmount is the minimum award/obligation amount in dollars.
	MinAmount float64 `mapstructure:"min_amount" default:"0"`
	// LookbackDays is the rolling lookback window length in days.
	LookbackDays int `mapstructure:"lookback_days" default:"30"`
	// EndDate pins the window end to a fixed YYYY-MM-DD date. Empty means
	// the current date.
	EndDate string `mapstructure:"end_date" default:""`
}

// Codes returns the configured type codes as a slice.
func (f FetchConfig) Codes() []string {
	if strings.TrimSpace(f.TypeCodes) == "" {
		return nil
	}
	parts := strings.Split(f.TypeCodes, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// Window computes the effective date interval: LookbackDays ending at either
// the fixed end date or now.
func (f FetchConfig) Window(now time.Time) (start, end string, err error) {
	endDay := now.UTC()
	if f.EndDate != "" {
		endDay, err = time.Parse("2006-01-02", f.EndDate)
		if err != nil {
			return "", "", fmt.Errorf("fetch.end_date %q is not a valid YYYY-MM-DD date: %w", f.EndDate, err)
		}
	}
	startDay := endDay.AddDate(0, 0, -f.LookbackDays)
	return startDay.Format("2006-01-02"), endDay.Format("2006-01-02"), nil
}

// Validate fails fast on the first missing or invalid required setting,
// before any network activity.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if c.Fetch.LookbackDays <= 0 {
		return fmt.Errorf("fetch.lookback_days must be greater than 0")
	}
	if c.Fetch.MinAmount < 0 {
		return fmt.Errorf("fetch.min_amount must not be negative")
	}
	if _, _, err := c.Fetch.Window(time.Now()); err != nil {
		return err
	}
	return nil
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. API_PAGE_SIZE -> api.page_size)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Optional config file next to the binary
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
