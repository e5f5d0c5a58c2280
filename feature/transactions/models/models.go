package models

import (
	"strings"
	"time"
)

// Transaction represents one discrete action (new award, modification,
// correction) against an award. Transactions are immutable once normalized
// and are never deduplicated: each one is a distinct event.
type Transaction struct {
	TransactionID           string    `json:"transaction_id"`
	AwardID                 string    `json:"award_id"`
	GeneratedID             string    `json:"generated_internal_id,omitempty"`
	ActionDate              string    `json:"action_date"`
	ActionType              string    `json:"action_type,omitempty"`
	ActionTypeDescription   string    `json:"action_type_description"`
	ModificationNumber      string    `json:"modification_number,omitempty"`
	Amount                  float64   `json:"amount"`
	AwardType               string    `json:"award_type,omitempty"`
	Description             string    `json:"description,omitempty"`
	StartDate               string    `json:"start_date,omitempty"`
	EndDate                 string    `json:"end_date,omitempty"`
	AwardingAgency          string    `json:"awarding_agency,omitempty"`
	AwardingSubAgency       string    `json:"awarding_sub_agency,omitempty"`
	RecipientName           string    `json:"recipient_name,omitempty"`
	RecipientUEI            string    `json:"recipient_uei,omitempty"`
	NAICSCode               string    `json:"naics_code,omitempty"`
	PSCCode                 string    `json:"psc_code,omitempty"`
	PlaceOfPerformanceState string    `json:"place_of_performance_state,omitempty"`
	FetchedAt               time.Time `json:"fetched_at"`
	Link                    string    `json:"usaspending_link,omitempty"`
}

// actionTypeDescriptions is the fixed mapping from action type codes to
// their human-readable descriptions.
var actionTypeDescriptions = map[string]string{
	"A": "New",
	"B": "Continuation",
	"C": "Revision",
	"D": "Funding Adjustment",
	"E": "Correction",
}

// ActionTypeDescription maps an action type code to its description,
// falling back to the raw code when unmapped and "Unknown" when empty.
func ActionTypeDescription(code string) string {
	if desc, ok := actionTypeDescriptions[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return desc
	}
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	return code
}

// IsNewAward reports whether the transaction represents a new award event
// / rather than an amendment: the modification number is absent or the
// zero-sequence value, or the action type describes a new action.
func (t Transaction) IsNewAward() bool {
	if strings.TrimLeft(strings.TrimSpace(t.ModificationNumber), "0") == "" {
		return true
	}
	return strings.EqualFold(t.ActionTypeDescription, "new")
}
