package awards

import (
	"context"
	"fmt"
	"time"

	"github.com/sutt/usa-spending/core/spending"
	"github.com/sutt/usa-spending/core/storage"
	"github.com/sutt/usa-spending/feature/awards/models"

	"go.uber.org/zap"
)

// Fetcher is the slice of the API client the service uses.
type Fetcher interface {
	FetchAll(ctx context.Context, res spending.Resource, f spending.Filter) (*spending.FetchResult, error)
}

// Service runs single-resource award fetches.
type Service struct {
	fetcher Fetcher
	store   *storage.Store
	log     *zap.Logger
}

// NewService creates a new award fetch service.
func NewService(fetcher Fetcher, store *storage.Store, log *zap.Logger) *Service {
	return &Service{fetcher: fetcher, store: store, log: log}
}

// FetchOutput is the result of one award fetch run.
type FetchOutput struct {
	Awards    []models.Award
	Summary   Summary
	Artifacts []string
}

// Fetch retrieves, normalizes, summarizes, and persists one award collection
// for the given filter. Award-search results are sorted by amount descending,
// so a truncated run silently drops the smallest awards in the window.
func (s *Service) Fetch(ctx context.Context, f spending.Filter) (*FetchOutput, error) {
	result, err := s.fetcher.FetchAll(ctx, spending.ResourceAwards, f)
	if err != nil {
		return nil, fmt.Errorf("award fetch failed: %w", err)
	}

	now := time.Now().UTC()
	aws := NormalizeAll(result.Records, now)
	summary := BuildSummary(aws, f.StartDate, f.EndDate, now)

	out := &FetchOutput{Awards: aws, Summary: summary}

	if s.store.SaveRaw() {
		path, err := s.store.SaveJSON(ctx, storage.ArtifactName("awards", "raw", now), result.Records)
		if err != nil {
			return nil, err
		}
		out.Artifacts = append(out.Artifacts, path)
	}
	path, err := s.store.SaveJSON(ctx, storage.ArtifactName("awards", "normalized", now), aws)
	if err != nil {
		return nil, err
	}
	out.Artifacts = append(out.Artifacts, path)

	path, err = s.store.SaveJSON(ctx, storage.ArtifactName("awards", "summary", now), summary)
	if err != nil {
		return nil, err
	}
	out.Artifacts = append(out.Artifacts, path)

	s.log.Info("award fetch complete",
		zap.Int("records", len(aws)),
		zap.Float64("total_amount", summary.TotalAmount),
		zap.Bool("possibly_truncated", result.PossiblyTruncated),
	)
	return out, nil
}
