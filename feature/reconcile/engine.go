package reconcile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sutt/usa-spending/core/spending"
	"github.com/sutt/usa-spending/feature/awards"
	"github.com/sutt/usa-spending/feature/transactions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Source is the slice of the API client the engine drives. Implemented by
// *spending.Client.
type Source interface {
	FetchAll(ctx context.Context, res spending.Resource, f spending.Filter) (*spending.FetchResult, error)
	FetchAwardsByID(ctx context.Context, ids []string, typeCodes []string) (*spending.BatchResult, error)
}

// Engine runs the two-stage reconciliation pipeline.
type Engine struct {
	source Source
	log    *zap.Logger
}

// NewEngine creates a new reconciliation engine.
func NewEngine(source Source, log *zap.Logger) *Engine {
	return &Engine{source: source, log: log}
}

// Run executes the pipeline for one filter window. It either completes with
// a full Result (missing identifiers and truncation are reported, not
// errors) or aborts on the first transport or parse failure.
func (e *Engine) Run(ctx context.Context, f spending.Filter) (*Result, error) {
	runID := uuid.New().String()
	log := e.log.With(zap.String("run_id", runID))

	log.Info("stage 1: fetching transactions",
		zap.String("start_date", f.StartDate),
		zap.String("end_date", f.EndDate),
		zap.Strings("type_codes", f.TypeCodes),
		zap.Float64("min_amount", f.MinAmount),
	)
	fetched, err := e.source.FetchAll(ctx, spending.ResourceTransactions, f)
	if err != nil {
		return nil, fmt.Errorf("stage 1 transaction fetch failed: %w", err)
	}

	now := time.Now().UTC()
	all := transactions.NormalizeAll(fetched.Records, now)
	newTxs := transactions.FilterNew(all)
	newTxs = transactions.AboveMinimum(newTxs, f.MinAmount)
	ids := transactions.UniqueAwardIDs(newTxs)

	log.Info("stage 1 complete",
		zap.Int("total_transactions", len(all)),
		zap.Int("new_transactions", len(newTxs)),
		zap.Int("unique_award_ids", len(ids)),
		zap.Bool("possibly_truncated", fetched.PossiblyTruncated),
	)

	log.Info("stage 2: fetching awards by identifier", zap.Int("ids", len(ids)))
	batched, err := e.source.FetchAwardsByID(ctx, ids, f.TypeCodes)
	if err != nil {
		return nil, fmt.Errorf("stage 2 award fetch failed: %w", err)
	}

	deduped, duplicates := awards.Deduplicate(awards.NormalizeAll(batched.Records, now))
	fetchedIDs := awards.IDSet(deduped)

	missing := make([]string, 0)
	for _, id := range ids {
		if !fetchedIDs[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)

	matched := 0
	for _, tx := range newTxs {
		if fetchedIDs[tx.AwardID] {
			matched++
		}
	}
	joinRate := 0.0
	if len(newTxs) > 0 {
		joinRate = float64(matched) / float64(len(newTxs)) * 100
	}

	report := Report{
		RunID:                 runID,
		FetchedAt:             now,
		StartDate:             f.StartDate,
		EndDate:               f.EndDate,
		MinAmount:             f.MinAmount,
		TypeCodes:             f.TypeCodes,
		TotalTransactions:     len(all),
		NewTransactions:       len(newTxs),
		UniqueAwardIDs:        len(ids),
		TransactionsTruncated: fetched.PossiblyTruncated,
		AwardsRequested:       batched.Requested,
		Batches:               batched.Batches,
		AwardsFetched:         len(deduped),
		DuplicatesCollapsed:   duplicates,
		AwardsMissing:         len(missing),
		MissingAwardIDs:       missing,
		FailedBatches:         batched.FailedBatches,
		MatchedTransactions:   matched,
		UnmatchedTransactions: len(newTxs) - matched,
		JoinRate:              joinRate,
	}

	log.Info("reconciliation complete",
		zap.Int("awards_fetched", len(deduped)),
		zap.Int("awards_missing", len(missing)),
		zap.Int("duplicates_collapsed", duplicates),
		zap.Float64("join_rate", joinRate),
	)

	return &Result{Transactions: newTxs, Awards: deduped, Report: report}, nil
}
