package transactions

import (
	"time"

	"github.com/sutt/usa-spending/core/spending"
	"github.com/sutt/usa-spending/feature/transactions/models"
)

// Summary aggregates one normalized transaction collection.
type Summary struct {
	Resource          string         `json:"resource"`
	RecordCount       int            `json:"record_count"`
	TotalAmount       float64        `json:"total_amount"`
	CountByActionType map[string]int `json:"count_by_action_type"`
	CountByAwardType  map[string]int `json:"count_by_award_type"`
	NewAwardEvents    int            `json:"new_award_events"`
	UniqueAwards      int            `json:"unique_awards"`
	StartDate         string         `json:"start_date,omitempty"`
	EndDate           string         `json:"end_date,omitempty"`
	PossiblyTruncated bool           `json:"possibly_truncated"`
	FetchedAt         time.Time      `json:"fetched_at"`
}

// BuildSummary aggregates counts and totals over a normalized collection,
// echoing the originating filter window. The truncation flag is a
// collection-level echo of the fetch engine's detection: it is set when the
// collection size exactly equals the external cap, for consumers that only
// ever see normalized data.
func BuildSummary(txs []models.Transaction, startDate, endDate string, fetchedAt time.Time) Summary {
	s := Summary{
		Resource:          string(spending.ResourceTransactions),
		RecordCount:       len(txs),
		CountByActionType: make(map[string]int),
		CountByAwardType:  make(map[string]int),
		StartDate:         startDate,
		EndDate:           endDate,
		PossiblyTruncated: len(txs) == spending.ExternalRecordLimit,
		FetchedAt:         fetchedAt,
	}
	for _, tx := range txs {
		s.TotalAmount += tx.Amount
		s.CountByActionType[tx.ActionTypeDescription]++
		if tx.AwardType != "" {
			s.CountByAwardType[tx.AwardType]++
		}
		if tx.IsNewAward() {
			s.NewAwardEvents++
		}
	}
	s.UniqueAwards = len(UniqueAwardIDs(txs))
	return s
}
