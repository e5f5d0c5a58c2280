package spending

import "fmt"

// Config holds configuration for the USAspending API client.
type Config struct {
	// BaseURL is the root address of the API.
	BaseURL string `mapstructure:"base_url" default:"https://api.usaspending.gov"`
	// AwardsEndpoint is the award-search endpoint path.
	AwardsEndpoint string `mapstructure:"awards_endpoint" default:"/api/v2/search/spending_by_award/"`
	// TransactionsEndpoint is the transaction-search endpoint path.
	TransactionsEndpoint string `mapstructure:"transactions_endpoint" default:"/api/v2/search/spending_by_transaction/"`
	// TimeoutSeconds is the per-request HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the number of records requested per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// MaxTotalRecords is a safety ceiling on records accumulated by one
	// collection call, independent of the API's own hard cap.
	MaxTotalRecords int `mapstructure:"max_total_records" default:"50000"`
	// BatchSize is the number of award identifiers per batch query.
	BatchSize int `mapstructure:"batch_size" default:"100"`
	// RequestsPerSecond paces page and batch requests toward the API.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"2"`
	// Burst is the rate limiter burst size.
	Burst int `mapstructure:"burst" default:"1"`
	// StrictBatches aborts a batched fetch on the first failed batch
	// instead of skipping it.
	StrictBatches bool `mapstructure:"strict_batches" default:"false"`
}

// Validate reports the first missing or invalid required setting.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.AwardsEndpoint == "" {
		return fmt.Errorf("api.awards_endpoint is required")
	}
	if c.TransactionsEndpoint == "" {
		return fmt.Errorf("api.transactions_endpoint is required")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be greater than 0")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("api.page_size must be greater than 0")
	}
	if c.MaxTotalRecords <= 0 {
		return fmt.Errorf("api.max_total_records must be greater than 0")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("api.batch_size must be greater than 0")
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("api.requests_per_second must be greater than 0")
	}
	return nil
}
