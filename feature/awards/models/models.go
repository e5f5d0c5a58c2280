package models

import "time"

// Award represents the rolled-up, current state of a contract or agreement.
// The same award id may appear multiple times across fetch batches as
// different historical snapshots; only the snapshot with the greatest
// last-modified date is authoritative. Awards are never mutated after
// normalization, only superseded.
type Award struct {
	AwardID                 string    `json:"award_id"`
	GeneratedID             string    `json:"generated_internal_id,omitempty"`
	TypeCode                string    `json:"type_code,omitempty"`
	Amount                  float64   `json:"amount"`
	AwardDate               string    `json:"award_date,omitempty"`
	StartDate               string    `json:"start_date,omitempty"`
	EndDate                 string    `json:"end_date,omitempty"`
	LastModifiedDate        string    `json:"last_modified_date,omitempty"`
	BaseObligationDate      string    `json:"base_obligation_date,omitempty"`
	AwardingAgency          string    `json:"awarding_agency,omitempty"`
	AwardingSubAgency       string    `json:"awarding_sub_agency,omitempty"`
	FundingAgency           string    `json:"funding_agency,omitempty"`
	RecipientName           string    `json:"recipient_name,omitempty"`
	RecipientUEI            string    `json:"recipient_uei,omitempty"`
	RecipientCategories     []string  `json:"recipient_categories"`
	Description             string    `json:"description,omitempty"`
	NAICSCode               string    `json:"naics_code,omitempty"`
	PSCCode                 string    `json:"psc_code,omitempty"`
	PlaceOfPerformanceState string    `json:"place_of_performance_state,omitempty"`
	FetchedAt               time.Time `json:"fetched_at"`
	Link                    string    `json:"usaspending_link,omitempty"`
}

// Supersedes reports whether a is the more authoritative snapshot of the
// same award than b: its last-modified date is strictly greater. Absent
// dates sort as the minimum; ISO dates compare correctly as strings.
func (a Award) Supersedes(b Award) bool {
	return a.LastModifiedDate > b.LastModifiedDate
}
