package awards

import (
	"time"

	"github.com/sutt/usa-spending/core/spending"
	"github.com/sutt/usa-spending/feature/awards/models"
)

// Summary aggregates one normalized award collection.
type Summary struct {
	Resource          string         `json:"resource"`
	RecordCount       int            `json:"record_count"`
	TotalAmount       float64        `json:"total_amount"`
	CountByType       map[string]int `json:"count_by_type"`
	CountByAgency     map[string]int `json:"count_by_agency"`
	StartDate         string         `json:"start_date,omitempty"`
	EndDate           string         `json:"end_date,omitempty"`
	PossiblyTruncated bool           `json:"possibly_truncated"`
	FetchedAt         time.Time      `json:"fetched_at"`
}

// BuildSummary aggregates counts and totals over a normalized collection,
// echoing the originating filter window. The truncation flag is set when the
// collection size exactly equals the external cap.
func BuildSummary(aws []models.Award, startDate, endDate string, fetchedAt time.Time) Summary {
	s := Summary{
		Resource:          string(spending.ResourceAwards),
		RecordCount:       len(aws),
		CountByType:       make(map[string]int),
		CountByAgency:     make(map[string]int),
		StartDate:         startDate,
		EndDate:           endDate,
		PossiblyTruncated: len(aws) == spending.ExternalRecordLimit,
		FetchedAt:         fetchedAt,
	}
	for _, award := range aws {
		s.TotalAmount += award.Amount
		if award.TypeCode != "" {
			s.CountByType[award.TypeCode]++
		}
		if award.AwardingAgency != "" {
			s.CountByAgency[award.AwardingAgency]++
		}
	}
	return s
}
