package awards

import (
	"testing"

	"github.com/sutt/usa-spending/feature/awards/models"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicate_KeepsLatestSnapshot(t *testing.T) {
	in := []models.Award{
		{AwardID: "AAA-1", LastModifiedDate: "2026-06-01", Amount: 100},
		{AwardID: "BBB-2", LastModifiedDate: "2026-06-15", Amount: 50},
		{AwardID: "AAA-1", LastModifiedDate: "2026-07-20", Amount: 250},
		{AwardID: "AAA-1", LastModifiedDate: "2026-05-10", Amount: 75},
	}

	out, duplicates := Deduplicate(in)

	assert.Len(t, out, 2)
	assert.Equal(t, 2, duplicates)
	assert.Equal(t, "AAA-1", out[0].AwardID)
	assert.Equal(t, "2026-07-20", out[0].LastModifiedDate)
	assert.Equal(t, 250.0, out[0].Amount)
	assert.Equal(t, "BBB-2", out[1].AwardID)
}

func TestDeduplicate_AbsentDateSortsMinimum(t *testing.T) {
	in := []models.Award{
		{AwardID: "AAA-1", LastModifiedDate: "", Amount: 10},
		{AwardID: "AAA-1", LastModifiedDate: "2026-01-02", Amount: 20},
		{AwardID: "AAA-1", LastModifiedDate: "", Amount: 30},
	}

	out, duplicates := Deduplicate(in)

	assert.Len(t, out, 1)
	assert.Equal(t, 2, duplicates)
	assert.Equal(t, "2026-01-02", out[0].LastModifiedDate)
	assert.Equal(t, 20.0, out[0].Amount)
}

func TestDeduplicate_AllDatesAbsentKeepsFirst(t *testing.T) {
	in := []models.Award{
		{AwardID: "AAA-1", Amount: 10},
		{AwardID: "AAA-1", Amount: 20},
	}

	out, duplicates := Deduplicate(in)

	assert.Len(t, out, 1)
	assert.Equal(t, 1, duplicates)
	assert.Equal(t, 10.0, out[0].Amount)
}

func TestDeduplicate_OnePerID(t *testing.T) {
	in := []models.Award{
		{AwardID: "AAA-1", LastModifiedDate: "2026-01-01"},
		{AwardID: "BBB-2", LastModifiedDate: "2026-02-01"},
		{AwardID: "AAA-1", LastModifiedDate: "2026-03-01"},
		{AwardID: "CCC-3", LastModifiedDate: "2026-04-01"},
		{AwardID: "BBB-2", LastModifiedDate: "2026-01-15"},
	}

	out, duplicates := Deduplicate(in)

	assert.Equal(t, 2, duplicates)
	seen := make(map[string]int)
	for _, award := range out {
		seen[award.AwardID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "award %s appears more than once", id)
	}
	// First-seen order survives collapsing.
	assert.Equal(t, "AAA-1", out[0].AwardID)
	assert.Equal(t, "BBB-2", out[1].AwardID)
	assert.Equal(t, "CCC-3", out[2].AwardID)
}

func TestDeduplicate_Empty(t *testing.T) {
	out, duplicates := Deduplicate(nil)
	assert.Empty(t, out)
	assert.Zero(t, duplicates)
}

func TestIDSet(t *testing.T) {
	in := []models.Award{
		{AwardID: "AAA-1"},
		{AwardID: "BBB-2"},
		{AwardID: "AAA-1"},
	}
	set := IDSet(in)

	assert.Len(t, set, 2)
	assert.True(t, set["AAA-1"])
	assert.True(t, set["BBB-2"])
	assert.False(t, set["CCC-3"])
}
