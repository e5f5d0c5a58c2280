package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sutt/usa-spending/core/config"
	"github.com/sutt/usa-spending/core/logger"
	"github.com/sutt/usa-spending/core/storage"
	"github.com/sutt/usa-spending/feature/awards"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the analyze command
	analyzeFile      string
	analyzeTypes     string
	analyzeState     string
	analyzeRecipient string
	analyzeAgency    string
	analyzeMin       float64
	analyzeMax       float64
	analyzeSort      string
	analyzeOrder     string
	analyzeLimit     int
	analyzeConfigDir string
	analyzeOutput    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Filter and rank previously fetched award records",
	Long: `Analyze operates on an already-normalized award artifact without any
network activity. It filters by type code, place-of-performance state,
recipient or agency name, and amount band, sorts the survivors, and writes
the filtered collection with its summary as new artifacts.

Examples:
  # Top 20 awards by amount from the most recent fetch
  usaspending analyze --limit 20

  # Virginia awards from a specific artifact, smallest first
  usaspending analyze --file output/awards_normalized_20260801_120000.json \
    --state VA --sort amount --order asc`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Normalized award artifact to analyze (default: most recent)")
	analyzeCmd.Flags().StringVar(&analyzeTypes, "types", "", "Comma-separated award type codes to keep")
	analyzeCmd.Flags().StringVar(&analyzeState, "state", "", "Place-of-performance state code")
	analyzeCmd.Flags().StringVar(&analyzeRecipient, "recipient", "", "Recipient name substring (case-insensitive)")
	analyzeCmd.Flags().StringVar(&analyzeAgency, "agency", "", "Awarding agency or sub-agency substring (case-insensitive)")
	analyzeCmd.Flags().Float64Var(&analyzeMin, "min-amount", 0, "Minimum award amount")
	analyzeCmd.Flags().Float64Var(&analyzeMax, "max-amount", 0, "Maximum award amount (0 = no bound)")
	analyzeCmd.Flags().StringVar(&analyzeSort, "sort", "amount", "Sort key: amount, date, recipient, agency")
	analyzeCmd.Flags().StringVar(&analyzeOrder, "order", "desc", "Sort order: asc or desc")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 0, "Keep at most this many records (0 = all)")
	analyzeCmd.Flags().StringVar(&analyzeConfigDir, "config", ".", "Directory containing config.yaml / .env")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "Override the artifact output directory")

	RootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(analyzeConfigDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if analyzeOutput != "" {
		cfg.Storage.OutputDir = analyzeOutput
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	store, err := storage.NewStore(cfg.Storage, l)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	opts := awards.AnalyzeOptions{
		File:      analyzeFile,
		State:     analyzeState,
		Recipient: analyzeRecipient,
		Agency:    analyzeAgency,
		MinAmount: analyzeMin,
		MaxAmount: analyzeMax,
		SortBy:    analyzeSort,
		Order:     analyzeOrder,
		Limit:     analyzeLimit,
	}
	for _, c := range strings.Split(analyzeTypes, ",") {
		if code := strings.TrimSpace(c); code != "" {
			opts.TypeCodes = append(opts.TypeCodes, code)
		}
	}

	analyzer := awards.NewAnalyzer(store, l)
	out, err := analyzer.Analyze(context.Background(), opts)
	if err != nil {
		return err
	}

	l.Info("Analysis complete",
		zap.String("source", out.SourceFile),
		zap.Int("loaded", out.Loaded),
		zap.Int("selected", out.Summary.RecordCount),
		zap.Float64("total_amount", out.Summary.TotalAmount),
		zap.Strings("artifacts", out.Artifacts),
	)
	return nil
}
