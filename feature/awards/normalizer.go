package awards

import (
	"strings"
	"time"

	"github.com/sutt/usa-spending/core/spending"
	"github.com/sutt/usa-spending/feature/awards/models"
)

// Normalize maps one raw award dictionary into an Award record. It is total:
// missing or null fields get their documented defaults and never cause an
// error. Only this function reads raw award keys.
func Normalize(raw spending.RawRecord, fetchedAt time.Time) models.Award {
	generatedID := raw.String("generated_internal_id")
	awardID := recoverAwardID(raw.String("Award ID"), generatedID)

	return models.Award{
		AwardID:                 awardID,
		GeneratedID:             generatedID,
		TypeCode:                raw.String("Award Type"),
		Amount:                  raw.Float("Award Amount"),
		AwardDate:               raw.String("Award Date"),
		StartDate:               raw.String("Start Date"),
		EndDate:                 raw.String("End Date"),
		LastModifiedDate:        raw.String("Last Modified Date"),
		BaseObligationDate:      raw.String("Base Obligation Date"),
		AwardingAgency:          raw.String("Awarding Agency"),
		AwardingSubAgency:       raw.String("Awarding Sub Agency"),
		FundingAgency:           raw.String("Funding Agency"),
		RecipientName:           raw.String("Recipient Name"),
		RecipientUEI:            raw.String("Recipient UEI"),
		RecipientCategories:     raw.Strings("Recipient Business Categories"),
		Description:             raw.String("Description"),
		NAICSCode:               raw.String("NAICS"),
		PSCCode:                 raw.String("PSC"),
		PlaceOfPerformanceState: raw.String("Place of Performance State Code"),
		FetchedAt:               fetchedAt,
		Link:                    spending.AwardLink(generatedID, awardID),
	}
}

// NormalizeAll normalizes every raw record in API order.
func NormalizeAll(raws []spending.RawRecord, fetchedAt time.Time) []models.Award {
	out := make([]models.Award, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw, fetchedAt))
	}
	return out
}

// compositeIDSegments is the minimum segment count of a generated internal
// id ("CONT_AWD_<piid>_<agency>_<parent piid>_<agency>") that carries the
// full contract number at a fixed position.
const compositeIDSegments = 5

// recoverAwardID works around an API quirk: the award id sometimes arrives
// as a short numeric fragment (e.g. "0001") instead of the full contract
// number. When the id is all digits of length <= 4 and a composite internal
// id is present, the true identifier is taken from the composite's fixed
// position; a malformed or absent composite falls back to the short id.
func recoverAwardID(awardID, generatedID string) string {
	if !isTruncatedID(awardID) || generatedID == "" {
		return awardID
	}
	parts := strings.Split(generatedID, "_")
	if len(parts) < compositeIDSegments {
		return awardID
	}
	if recovered := parts[4]; recovered != "" {
		return recovered
	}
	return awardID
}

func isTruncatedID(id string) bool {
	if id == "" || len(id) > 4 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
