package awards

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sutt/usa-spending/core/storage"
	"github.com/sutt/usa-spending/feature/awards/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func analyzerFixture(t *testing.T) (*Analyzer, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewStore(storage.Config{OutputDir: dir, Pretty: true}, zap.NewNop())
	require.NoError(t, err)
	return NewAnalyzer(store, zap.NewNop()), dir
}

func writeArtifact(t *testing.T, dir string, aws []models.Award) string {
	t.Helper()
	data, err := json.Marshal(aws)
	require.NoError(t, err)
	path := filepath.Join(dir, "awards_normalized_20260801_120000.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sampleAwards() []models.Award {
	return []models.Award{
		{AwardID: "AAA-1", TypeCode: "A", Amount: 5000, AwardDate: "2026-07-01", RecipientName: "ACME SYSTEMS LLC", AwardingAgency: "Department of Defense", PlaceOfPerformanceState: "VA"},
		{AwardID: "BBB-2", TypeCode: "B", Amount: 12000, AwardDate: "2026-07-10", RecipientName: "GLOBEX CORP", AwardingAgency: "Department of Energy", PlaceOfPerformanceState: "TX"},
		{AwardID: "CCC-3", TypeCode: "A", Amount: 800, AwardDate: "2026-07-05", RecipientName: "ACME FABRICATION INC", AwardingAgency: "Department of Defense", AwardingSubAgency: "Department of the Navy", PlaceOfPerformanceState: "va"},
		{AwardID: "DDD-4", TypeCode: "C", Amount: 30000, AwardDate: "2026-06-20", RecipientName: "INITECH LLC", AwardingAgency: "General Services Administration", PlaceOfPerformanceState: "CA"},
	}
}

func TestAnalyze_ExplicitFile(t *testing.T) {
	analyzer, dir := analyzerFixture(t)
	path := writeArtifact(t, dir, sampleAwards())

	out, err := analyzer.Analyze(context.Background(), AnalyzeOptions{
		File:      path,
		TypeCodes: []string{"A"},
	})
	require.NoError(t, err)

	assert.Equal(t, path, out.SourceFile)
	assert.Equal(t, 4, out.Loaded)
	require.Len(t, out.Awards, 2)
	// Default ordering is amount descending.
	assert.Equal(t, "AAA-1", out.Awards[0].AwardID)
	assert.Equal(t, "CCC-3", out.Awards[1].AwardID)
	assert.Equal(t, 2, out.Summary.RecordCount)
	assert.Len(t, out.Artifacts, 2)
	for _, artifact := range out.Artifacts {
		_, err := os.Stat(artifact)
		assert.NoError(t, err)
	}
}

func TestAnalyze_LatestArtifact(t *testing.T) {
	analyzer, dir := analyzerFixture(t)
	writeArtifact(t, dir, sampleAwards())

	out, err := analyzer.Analyze(context.Background(), AnalyzeOptions{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Loaded)
	require.Len(t, out.Awards, 2)
	assert.Equal(t, "DDD-4", out.Awards[0].AwardID)
	assert.Equal(t, "BBB-2", out.Awards[1].AwardID)
}

func TestAnalyze_NoArtifact(t *testing.T) {
	analyzer, _ := analyzerFixture(t)
	_, err := analyzer.Analyze(context.Background(), AnalyzeOptions{})
	assert.Error(t, err)
}

func TestAnalyze_BadOrder(t *testing.T) {
	analyzer, dir := analyzerFixture(t)
	path := writeArtifact(t, dir, sampleAwards())

	_, err := analyzer.Analyze(context.Background(), AnalyzeOptions{File: path, Order: "sideways"})
	assert.ErrorContains(t, err, "invalid sort order")
}

func TestFilterAwards(t *testing.T) {
	aws := sampleAwards()
	tests := []struct {
		name string
		opts AnalyzeOptions
		want []string
	}{
		{
			name: "no criteria keeps everything",
			opts: AnalyzeOptions{},
			want: []string{"AAA-1", "BBB-2", "CCC-3", "DDD-4"},
		},
		{
			name: "state is case-insensitive",
			opts: AnalyzeOptions{State: "VA"},
			want: []string{"AAA-1", "CCC-3"},
		},
		{
			name: "recipient substring",
			opts: AnalyzeOptions{Recipient: "acme"},
			want: []string{"AAA-1", "CCC-3"},
		},
		{
			name: "agency matches sub agency too",
			opts: AnalyzeOptions{Agency: "navy"},
			want: []string{"CCC-3"},
		},
		{
			name: "amount band",
			opts: AnalyzeOptions{MinAmount: 1000, MaxAmount: 20000},
			want: []string{"AAA-1", "BBB-2"},
		},
		{
			name: "criteria combine",
			opts: AnalyzeOptions{TypeCodes: []string{"A", "B"}, State: "TX"},
			want: []string{"BBB-2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAwards(aws, tt.opts)
			ids := make([]string, 0, len(got))
			for _, award := range got {
				ids = append(ids, award.AwardID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSortAwards(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		order string
		want  []string
	}{
		{"amount desc default", "", "", []string{"DDD-4", "BBB-2", "AAA-1", "CCC-3"}},
		{"amount asc", "amount", "asc", []string{"CCC-3", "AAA-1", "BBB-2", "DDD-4"}},
		{"date asc", "date", "asc", []string{"DDD-4", "AAA-1", "CCC-3", "BBB-2"}},
		{"recipient asc", "recipient", "asc", []string{"CCC-3", "AAA-1", "BBB-2", "DDD-4"}},
		{"agency desc", "agency", "desc", []string{"DDD-4", "BBB-2", "AAA-1", "CCC-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aws := sampleAwards()
			require.NoError(t, SortAwards(aws, tt.key, tt.order))
			ids := make([]string, 0, len(aws))
			for _, award := range aws {
				ids = append(ids, award.AwardID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSortAwards_InvalidKey(t *testing.T) {
	err := SortAwards(sampleAwards(), "color", "asc")
	assert.ErrorContains(t, err, "invalid sort key")
}

func TestSortAwards_Stable(t *testing.T) {
	aws := []models.Award{
		{AwardID: "AAA-1", Amount: 100},
		{AwardID: "BBB-2", Amount: 100},
		{AwardID: "CCC-3", Amount: 100},
	}
	require.NoError(t, SortAwards(aws, "amount", "desc"))
	assert.Equal(t, "AAA-1", aws[0].AwardID)
	assert.Equal(t, "BBB-2", aws[1].AwardID)
	assert.Equal(t, "CCC-3", aws[2].AwardID)
}
