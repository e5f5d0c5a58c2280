package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/sutt/usa-spending/core/spending"
	"github.com/sutt/usa-spending/core/storage"
	"github.com/sutt/usa-spending/feature/transactions/models"

	"go.uber.org/zap"
)

// Fetcher is the slice of the API client the service uses.
type Fetcher interface {
	FetchAll(ctx context.Context, res spending.Resource, f spending.Filter) (*spending.FetchResult, error)
}

// Service runs single-resource transaction fetches.
type Service struct {
	fetcher Fetcher
	store   *storage.Store
	log     *zap.Logger
}

// NewService creates a new transaction fetch service.
func NewService(fetcher Fetcher, store *storage.Store, log *zap.Logger) *Service {
	return &Service{fetcher: fetcher, store: store, log: log}
}

// FetchOutput is the result of one transaction fetch run.
type FetchOutput struct {
	Transactions []models.Transaction
	Summary      Summary
	Artifacts    []string
}

// Fetch retrieves, normalizes, summarizes, and persists one transaction
// collection for the given filter.
func (s *Service) Fetch(ctx context.Context, f spending.Filter) (*FetchOutput, error) {
	result, err := s.fetcher.FetchAll(ctx, spending.ResourceTransactions, f)
	if err != nil {
		return nil, fmt.Errorf("transaction fetch failed: %w", err)
	}

	now := time.Now().UTC()
	txs := NormalizeAll(result.Records, now)
	summary := BuildSummary(txs, f.StartDate, f.EndDate, now)

	out := &FetchOutput{Transactions: txs, Summary: summary}

	if s.store.SaveRaw() {
		path, err := s.store.SaveJSON(ctx, storage.ArtifactName("transactions", "raw", now), result.Records)
		if err != nil {
			return nil, err
		}
		out.Artifacts = append(out.Artifacts, path)
	}
	path, err := s.store.SaveJSON(ctx, storage.ArtifactName("transactions", "normalized", now), txs)
	if err != nil {
		return nil, err
	}
	out.Artifacts = append(out.Artifacts, path)

	path, err = s.store.SaveJSON(ctx, storage.ArtifactName("transactions", "summary", now), summary)
	if err != nil {
		return nil, err
	}
	out.Artifacts = append(out.Artifacts, path)

	s.log.Info("transaction fetch complete",
		zap.Int("records", len(txs)),
		zap.Int("new_award_events", summary.NewAwardEvents),
		zap.Bool("possibly_truncated", result.PossiblyTruncated),
	)
	return out, nil
}
