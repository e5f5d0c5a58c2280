package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sutt/usa-spending/core/config"
	"github.com/sutt/usa-spending/core/logger"
	"github.com/sutt/usa-spending/core/spending"
	"github.com/sutt/usa-spending/core/storage"
	"github.com/sutt/usa-spending/feature/awards"
	"github.com/sutt/usa-spending/feature/reconcile"
	"github.com/sutt/usa-spending/feature/transactions"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags shared across fetch subcommands
	fetchDays   int
	fetchConfig string
	fetchOutput string
)

// fetchCmd is the parent command for all fetch operations.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch award or transaction records from the USAspending API",
	Long: `Fetch records from the USAspending API for the configured date window
and filters, normalize them, and persist timestamped JSON artifacts.`,
}

var fetchAwardsCmd = &cobra.Command{
	Use:   "awards",
	Short: "Fetch awards (single-stage, amount-sorted)",
	Long: `Fetch awards for the configured window in a single paginated query.

The API sorts award results by amount descending and caps any query at
10,000 records, so a large window may be silently truncated. Use
"fetch complete" when completeness relative to transactions matters.`,
	RunE: runFetchAwards,
}

var fetchTransactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Fetch transactions (single-stage, date-sorted)",
	RunE:  runFetchTransactions,
}

var fetchCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Run the two-stage reconciliation fetch",
	Long: `Fetch transactions for the window, derive the exact set of award
identifiers referenced by new-award events, then fetch those awards by
identifier in batches. This bypasses the amount-sort truncation a plain
award search suffers and reports how completely the two sides join.

Examples:
  # Last 30 days (config default)
  usaspending fetch complete

  # Last 7 days into a custom directory
  usaspending fetch complete --days 7 --output ./runs`,
	RunE: runFetchComplete,
}

func init() {
	fetchCmd.PersistentFlags().IntVar(&fetchDays, "days", 0, "Override the lookback window length in days")
	fetchCmd.PersistentFlags().StringVar(&fetchConfig, "config", ".", "Directory containing config.yaml / .env")
	fetchCmd.PersistentFlags().StringVar(&fetchOutput, "output", "", "Override the artifact output directory")

	fetchCmd.AddCommand(fetchAwardsCmd)
	fetchCmd.AddCommand(fetchTransactionsCmd)
	fetchCmd.AddCommand(fetchCompleteCmd)

	RootCmd.AddCommand(fetchCmd)
}

// fetchSetup loads config, applies flag overrides, and wires the shared
// collaborators every fetch subcommand needs.
func fetchSetup() (*zap.Logger, *spending.Client, *storage.Store, spending.Filter, error) {
	fail := func(err error) (*zap.Logger, *spending.Client, *storage.Store, spending.Filter, error) {
		return nil, nil, nil, spending.Filter{}, err
	}

	cfg, err := config.LoadConfig(fetchConfig)
	if err != nil {
		return fail(fmt.Errorf("failed to load config: %w", err))
	}
	if fetchDays > 0 {
		cfg.Fetch.LookbackDays = fetchDays
	}
	if fetchOutput != "" {
		cfg.Storage.OutputDir = fetchOutput
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize logger: %w", err))
	}

	store, err := storage.NewStore(cfg.Storage, l)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize storage: %w", err))
	}

	start, end, err := cfg.Fetch.Window(time.Now())
	if err != nil {
		return fail(err)
	}
	filter := spending.Filter{
		TypeCodes: cfg.Fetch.Codes(),
		MinAmount: cfg.Fetch.MinAmount,
		StartDate: start,
		EndDate:   end,
	}

	client := spending.NewClient(cfg.API, nil, l)
	return l, client, store, filter, nil
}

func runFetchAwards(cmd *cobra.Command, args []string) error {
	l, client, store, filter, err := fetchSetup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	svc := awards.NewService(client, store, l)
	out, err := svc.Fetch(context.Background(), filter)
	if err != nil {
		return err
	}

	l.Info("Fetched awards",
		zap.Int("records", out.Summary.RecordCount),
		zap.Float64("total_amount", out.Summary.TotalAmount),
		zap.Strings("artifacts", out.Artifacts),
	)
	if out.Summary.PossiblyTruncated {
		warnTruncated(l, "award")
	}
	return nil
}

func runFetchTransactions(cmd *cobra.Command, args []string) error {
	l, client, store, filter, err := fetchSetup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	svc := transactions.NewService(client, store, l)
	out, err := svc.Fetch(context.Background(), filter)
	if err != nil {
		return err
	}

	l.Info("Fetched transactions",
		zap.Int("records", out.Summary.RecordCount),
		zap.Int("new_award_events", out.Summary.NewAwardEvents),
		zap.Strings("artifacts", out.Artifacts),
	)
	if out.Summary.PossiblyTruncated {
		warnTruncated(l, "transaction")
	}
	return nil
}

func runFetchComplete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	l, client, store, filter, err := fetchSetup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	engine := reconcile.NewEngine(client, l)
	result, err := engine.Run(ctx, filter)
	if err != nil {
		return err
	}

	rl := logger.WithRun(l, result.Report.RunID)
	now := result.Report.FetchedAt

	var artifacts []string
	path, err := store.SaveJSON(ctx, storage.ArtifactName("transactions", "normalized", now), result.Transactions)
	if err != nil {
		return err
	}
	artifacts = append(artifacts, path)

	path, err = store.SaveJSON(ctx, storage.ArtifactName("awards", "normalized", now), result.Awards)
	if err != nil {
		return err
	}
	artifacts = append(artifacts, path)

	path, err = store.SaveJSON(ctx, storage.ArtifactName("reconciliation", "report", now), result.Report)
	if err != nil {
		return err
	}
	artifacts = append(artifacts, path)

	printReconcileReport(rl, result.Report)
	rl.Info("Artifacts written", zap.Strings("artifacts", artifacts))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, r reconcile.Report) {
	l.Info("Reconciliation report",
		zap.String("window", r.StartDate+" .. "+r.EndDate),
		zap.Int("total_transactions", r.TotalTransactions),
		zap.Int("new_transactions", r.NewTransactions),
		zap.Int("unique_award_ids", r.UniqueAwardIDs),
		zap.Int("awards_requested", r.AwardsRequested),
		zap.Int("batches", r.Batches),
		zap.Int("awards_fetched", r.AwardsFetched),
		zap.Int("duplicates_collapsed", r.DuplicatesCollapsed),
		zap.Int("matched_transactions", r.MatchedTransactions),
		zap.Int("unmatched_transactions", r.UnmatchedTransactions),
		zap.Float64("join_rate", r.JoinRate),
	)

	if r.TransactionsTruncated {
		warnTruncated(l, "transaction")
	}
	if r.AwardsMissing > 0 {
		maxShow := 10
		shown := r.MissingAwardIDs
		if len(shown) > maxShow {
			shown = shown[:maxShow]
		}
		l.Warn("==========================================================")
		l.Warn("Some referenced awards could not be retrieved",
			zap.Int("awards_missing", r.AwardsMissing),
			zap.Strings("sample_missing_ids", shown),
		)
		l.Warn("The full missing-identifier list is in the report artifact.")
		l.Warn("==========================================================")
	}
	if r.FailedBatches > 0 {
		l.Warn("Batch queries failed and were skipped", zap.Int("failed_batches", r.FailedBatches))
	}
}

func warnTruncated(l *zap.Logger, kind string) {
	l.Warn("==========================================================")
	l.Warn("Result set landed exactly on the API's 10,000-record cap.")
	l.Warn("The " + kind + " collection may be incomplete. Narrow the")
	l.Warn("date window or raise the minimum amount to be sure.")
	l.Warn("==========================================================")
}
