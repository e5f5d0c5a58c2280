package awards

import "github.com/sutt/usa-spending/feature/awards/models"

// Deduplicate collapses awards sharing an award id down to the snapshot with
// the greatest last-modified date (absent dates sort as the minimum). The
// first-seen order of identifiers is preserved. It returns the collapsed
// list and the number of duplicate snapshots discarded.
func Deduplicate(in []models.Award) ([]models.Award, int) {
	best := make(map[string]models.Award, len(in))
	order := make([]string, 0, len(in))
	duplicates := 0

	for _, award := range in {
		current, seen := best[award.AwardID]
		if !seen {
			best[award.AwardID] = award
			order = append(order, award.AwardID)
			continue
		}
		duplicates++
		if award.Supersedes(current) {
			best[award.AwardID] = award
		}
	}

	out := make([]models.Award, 0, len(order))
	for _, id := range order {
		out = append(out, best[id])
	}
	return out, duplicates
}

// IDSet returns the set of award identifiers present in the collection.
func IDSet(in []models.Award) map[string]bool {
	set := make(map[string]bool, len(in))
	for _, award := range in {
		set[award.AwardID] = true
	}
	return set
}
