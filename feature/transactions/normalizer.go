package transactions

import (
	"time"

	"github.com/sutt/usa-spending/core/spending"
	"github.com/sutt/usa-spending/feature/transactions/models"
)

// Normalize maps one raw transaction dictionary into a Transaction record.
// It is total: missing or null fields get their documented defaults and
// never cause an error. Only this function reads raw transaction keys.
func Normalize(raw spending.RawRecord, fetchedAt time.Time) models.Transaction {
	awardID := raw.String("Award ID")
	generatedID := raw.String("generated_internal_id")
	actionDate := raw.String("Action Date")
	actionType := raw.String("Action Type")

	txID := raw.String("internal_id")
	if txID == "" {
		// No source identifier; synthesize one from the parent award and
		// the action date.
		txID = awardID + "_" + actionDate
	}

	return models.Transaction{
		TransactionID:           txID,
		AwardID:                 awardID,
		GeneratedID:             generatedID,
		ActionDate:              actionDate,
		ActionType:              actionType,
		ActionTypeDescription:   models.ActionTypeDescription(actionType),
		ModificationNumber:      raw.String("Mod"),
		Amount:                  raw.Float("Transaction Amount"),
		AwardType:               raw.String("Award Type"),
		Description:             raw.String("Transaction Description"),
		StartDate:               raw.String("Start Date"),
		EndDate:                 raw.String("End Date"),
		AwardingAgency:          raw.String("Awarding Agency"),
		AwardingSubAgency:       raw.String("Awarding Sub Agency"),
		RecipientName:           raw.String("Recipient Name"),
		RecipientUEI:            raw.String("Recipient UEI"),
		NAICSCode:               raw.String("NAICS"),
		PSCCode:                 raw.String("PSC"),
		PlaceOfPerformanceState: raw.String("Place of Performance State Code"),
		FetchedAt:               fetchedAt,
		Link:                    spending.AwardLink(generatedID, awardID),
	}
}

// NormalizeAll normalizes every raw record in API order.
func NormalizeAll(raws []spending.RawRecord, fetchedAt time.Time) []models.Transaction {
	out := make([]models.Transaction, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw, fetchedAt))
	}
	return out
}

// FilterNew retains only transactions classified as new award events. The
// input order is preserved.
func FilterNew(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsNewAward() {
			out = append(out, tx)
		}
	}
	return out
}

// AboveMinimum retains transactions whose obligation amount is at least
// minAmount. A zero or negative threshold returns the input unchanged. The
// API-level amount filter already constrains the query; this local pass is
// deliberate double-filtering in case the endpoint's filter semantics differ
// from the per-record obligation field.
func AboveMinimum(txs []models.Transaction, minAmount float64) []models.Transaction {
	if minAmount <= 0 {
		return txs
	}
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Amount >= minAmount {
			out = append(out, tx)
		}
	}
	return out
}

// UniqueAwardIDs returns the distinct award identifiers referenced by txs,
// in first-seen order.
func UniqueAwardIDs(txs []models.Transaction) []string {
	seen := make(map[string]bool, len(txs))
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		if tx.AwardID == "" || seen[tx.AwardID] {
			continue
		}
		seen[tx.AwardID] = true
		ids = append(ids, tx.AwardID)
	}
	return ids
}
