package cmd

import (
	"fmt"

	"github.com/sutt/usa-spending/core/config"

	"github.com/spf13/cobra"
)

var configDir string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets masked",
	RunE:  runConfigShow,
}

func init() {
	configCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory containing config.yaml / .env")
	configCmd.AddCommand(configShowCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "api:")
	fmt.Fprintf(out, "  base_url:            %s\n", cfg.API.BaseURL)
	fmt.Fprintf(out, "  awards_endpoint:     %s\n", cfg.API.AwardsEndpoint)
	fmt.Fprintf(out, "  transactions_endpoint: %s\n", cfg.API.TransactionsEndpoint)
	fmt.Fprintf(out, "  timeout_seconds:     %d\n", cfg.API.TimeoutSeconds)
	fmt.Fprintf(out, "  page_size:           %d\n", cfg.API.PageSize)
	fmt.Fprintf(out, "  max_total_records:   %d\n", cfg.API.MaxTotalRecords)
	fmt.Fprintf(out, "  batch_size:          %d\n", cfg.API.BatchSize)
	fmt.Fprintf(out, "  requests_per_second: %g\n", cfg.API.RequestsPerSecond)
	fmt.Fprintf(out, "  burst:               %d\n", cfg.API.Burst)
	fmt.Fprintf(out, "  strict_batches:      %t\n", cfg.API.StrictBatches)
	fmt.Fprintln(out, "fetch:")
	fmt.Fprintf(out, "  type_codes:          %q\n", cfg.Fetch.TypeCodes)
	fmt.Fprintf(out, "  min_amount:          %g\n", cfg.Fetch.MinAmount)
	fmt.Fprintf(out, "  lookback_days:       %d\n", cfg.Fetch.LookbackDays)
	fmt.Fprintf(out, "  end_date:            %q\n", cfg.Fetch.EndDate)
	fmt.Fprintln(out, "storage:")
	fmt.Fprintf(out, "  output_dir:          %s\n", cfg.Storage.OutputDir)
	fmt.Fprintf(out, "  pretty:              %t\n", cfg.Storage.Pretty)
	fmt.Fprintf(out, "  save_raw:            %t\n", cfg.Storage.SaveRaw)
	fmt.Fprintf(out, "  upload.enabled:      %t\n", cfg.Storage.Upload.Enabled)
	fmt.Fprintf(out, "  upload.endpoint:     %s\n", cfg.Storage.Upload.Endpoint)
	fmt.Fprintf(out, "  upload.bucket:       %s\n", cfg.Storage.Upload.Bucket)
	fmt.Fprintf(out, "  upload.access_key:   %s\n", mask(cfg.Storage.Upload.AccessKey))
	fmt.Fprintf(out, "  upload.secret_key:   %s\n", mask(cfg.Storage.Upload.SecretKey))
	fmt.Fprintln(out, "log:")
	fmt.Fprintf(out, "  level:               %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  format:              %s\n", cfg.Log.Format)
	return nil
}

// mask hides all but the first characters of a credential.
func mask(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
