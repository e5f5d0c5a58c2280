package awards

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sutt/usa-spending/core/storage"
	"github.com/sutt/usa-spending/feature/awards/models"

	"go.uber.org/zap"
)

// AnalyzeOptions selects, orders, and trims a saved award collection.
type AnalyzeOptions struct {
	// File is the normalized award artifact to load. Empty means the most
	// recent normalized artifact in the output directory.
	File string

	TypeCodes []string
	State     string
	// Recipient matches case-insensitively against the recipient name.
	Recipient string
	// Agency matches case-insensitively against awarding agency and
	// sub-agency names.
	Agency    string
	MinAmount float64
	MaxAmount float64

	// SortBy is one of amount, date, recipient, agency. Empty means amount.
	SortBy string
	// Order is asc or desc. Empty means desc.
	Order string
	Limit int
}

// AnalyzeOutput is the result of one analyze run.
type AnalyzeOutput struct {
	SourceFile string
	Loaded     int
	Awards     []models.Award
	Summary    Summary
	Artifacts  []string
}

// Analyzer filters and ranks previously fetched award collections without
// touching the API.
type Analyzer struct {
	store *storage.Store
	log   *zap.Logger
}

// NewAnalyzer creates a new award analyzer.
func NewAnalyzer(store *storage.Store, log *zap.Logger) *Analyzer {
	return &Analyzer{store: store, log: log}
}

// Analyze loads a normalized award artifact, applies the option filters and
// ordering, and persists the filtered collection alongside its summary.
func (a *Analyzer) Analyze(ctx context.Context, opts AnalyzeOptions) (*AnalyzeOutput, error) {
	file := opts.File
	if file == "" {
		latest, err := a.store.Latest("awards", "normalized")
		if err != nil {
			return nil, fmt.Errorf("no award artifact to analyze: %w", err)
		}
		file = latest
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read award artifact %s: %w", file, err)
	}
	var loaded []models.Award
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse award artifact %s: %w", file, err)
	}

	filtered := FilterAwards(loaded, opts)
	if err := SortAwards(filtered, opts.SortBy, opts.Order); err != nil {
		return nil, err
	}
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}

	now := time.Now().UTC()
	summary := BuildSummary(filtered, "", "", now)
	out := &AnalyzeOutput{SourceFile: file, Loaded: len(loaded), Awards: filtered, Summary: summary}

	path, err := a.store.SaveJSON(ctx, storage.ArtifactName("awards", "filtered", now), filtered)
	if err != nil {
		return nil, err
	}
	out.Artifacts = append(out.Artifacts, path)

	path, err = a.store.SaveJSON(ctx, storage.ArtifactName("awards", "filtered_summary", now), summary)
	if err != nil {
		return nil, err
	}
	out.Artifacts = append(out.Artifacts, path)

	a.log.Info("award analysis complete",
		zap.String("source", file),
		zap.Int("loaded", len(loaded)),
		zap.Int("selected", len(filtered)),
	)
	return out, nil
}

// FilterAwards returns the awards matching every non-empty criterion in opts.
func FilterAwards(in []models.Award, opts AnalyzeOptions) []models.Award {
	codes := make(map[string]bool, len(opts.TypeCodes))
	for _, c := range opts.TypeCodes {
		codes[c] = true
	}
	out := make([]models.Award, 0, len(in))
	for _, award := range in {
		if len(codes) > 0 && !codes[award.TypeCode] {
			continue
		}
		if opts.State != "" && !strings.EqualFold(award.PlaceOfPerformanceState, opts.State) {
			continue
		}
		if opts.Recipient != "" && !containsFold(award.RecipientName, opts.Recipient) {
			continue
		}
		if opts.Agency != "" &&
			!containsFold(award.AwardingAgency, opts.Agency) &&
			!containsFold(award.AwardingSubAgency, opts.Agency) {
			continue
		}
		if opts.MinAmount > 0 && award.Amount < opts.MinAmount {
			continue
		}
		if opts.MaxAmount > 0 && award.Amount > opts.MaxAmount {
			continue
		}
		out = append(out, award)
	}
	return out
}

// SortAwards orders the slice in place. Empty key and order fall back to
// amount descending, matching the API's own award ordering.
func SortAwards(aws []models.Award, key, order string) error {
	if key == "" {
		key = "amount"
	}
	if order == "" {
		order = "desc"
	}
	if order != "asc" && order != "desc" {
		return fmt.Errorf("invalid sort order %q, want asc or desc", order)
	}

	var less func(a, b models.Award) bool
	switch key {
	case "amount":
		less = func(a, b models.Award) bool { return a.Amount < b.Amount }
	case "date":
		less = func(a, b models.Award) bool { return a.AwardDate < b.AwardDate }
	case "recipient":
		less = func(a, b models.Award) bool { return a.RecipientName < b.RecipientName }
	case "agency":
		less = func(a, b models.Award) bool { return a.AwardingAgency < b.AwardingAgency }
	default:
		return fmt.Errorf("invalid sort key %q, want amount, date, recipient, or agency", key)
	}

	sort.SliceStable(aws, func(i, j int) bool {
		if order == "desc" {
			return less(aws[j], aws[i])
		}
		return less(aws[i], aws[j])
	})
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
