package reconcile

import (
	"time"

	awardmodels "github.com/sutt/usa-spending/feature/awards/models"
	txmodels "github.com/sutt/usa-spending/feature/transactions/models"
)

// Report is the join/reconciliation record of one two-stage run. Missing
// identifiers and truncation are flags here, never errors: the run that
// produced this report completed.
type Report struct {
	RunID     string    `json:"run_id"`
	FetchedAt time.Time `json:"fetched_at"`

	// Originating filter parameters.
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	MinAmount float64  `json:"min_amount,omitempty"`
	TypeCodes []string `json:"type_codes,omitempty"`

	// Stage one.
	TotalTransactions     int  `json:"total_transactions"`
	NewTransactions       int  `json:"new_transactions"`
	UniqueAwardIDs        int  `json:"unique_award_ids"`
	TransactionsTruncated bool `json:"transactions_truncated"`

	// Stage two.
	AwardsRequested     int      `json:"awards_requested"`
	Batches             int      `json:"batches"`
	AwardsFetched       int      `json:"awards_fetched"`
	DuplicatesCollapsed int      `json:"duplicates_collapsed"`
	AwardsMissing       int      `json:"awards_missing"`
	MissingAwardIDs     []string `json:"missing_award_ids"`
	FailedBatches       int      `json:"failed_batches"`

	// Join analysis.
	MatchedTransactions   int     `json:"matched_transactions"`
	UnmatchedTransactions int     `json:"unmatched_transactions"`
	JoinRate              float64 `json:"join_rate"`
}

// Result is the full output of one reconciliation run: the filtered
// new-award transactions, the deduplicated awards they reference, and the
// report tying the two together.
type Result struct {
	Transactions []txmodels.Transaction
	Awards       []awardmodels.Award
	Report       Report
}
