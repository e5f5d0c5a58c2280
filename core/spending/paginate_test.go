package spending

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pagedServer serves totalRecords synthetic records in pageSize chunks, the
// way the real endpoint paginates.
func pagedServer(t *testing.T, totalRecords int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		start := (req.Page - 1) * req.Limit
		end := start + req.Limit
		if end > totalRecords {
			end = totalRecords
		}
		results := make([]RawRecord, 0, req.Limit)
		for i := start; i < end; i++ {
			results = append(results, RawRecord{"Award ID": fmt.Sprintf("AWD-%05d", i)})
		}
		_ = json.NewEncoder(w).Encode(searchResponse{
			Limit:        req.Limit,
			PageMetadata: pageMetadata{Page: req.Page, HasNext: end < totalRecords},
			Results:      results,
		})
	}))
}

func TestFetchAllAccumulatesPages(t *testing.T) {
	server := pagedServer(t, 250)
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, zap.NewNop())
	result, err := client.FetchAll(context.Background(), ResourceTransactions, Filter{})
	require.NoError(t, err)

	assert.Len(t, result.Records, 250)
	assert.Equal(t, 3, result.Pages)
	assert.False(t, result.PossiblyTruncated)
	assert.Equal(t, "AWD-00000", result.Records[0].String("Award ID"))
	assert.Equal(t, "AWD-00249", result.Records[249].String("Award ID"))
}

// TestFetchAllDetectsTruncation exercises the cap boundary end to end: the
// server stops at exactly 10,000 records while claiming no more pages.
func TestFetchAllDetectsTruncation(t *testing.T) {
	server := pagedServer(t, ExternalRecordLimit)
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, zap.NewNop())
	result, err := client.FetchAll(context.Background(), ResourceAwards, Filter{})
	require.NoError(t, err)

	assert.Len(t, result.Records, ExternalRecordLimit)
	assert.Equal(t, 100, result.Pages)
	assert.True(t, result.PossiblyTruncated)
}

func TestFetchAllSafetyCeiling(t *testing.T) {
	server := pagedServer(t, 1000)
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxTotalRecords = 150
	client := NewClient(cfg, nil, zap.NewNop())

	result, err := client.FetchAll(context.Background(), ResourceAwards, Filter{})
	require.NoError(t, err)

	// The ceiling is checked after each full page is accumulated.
	assert.Len(t, result.Records, 200)
	assert.Equal(t, 2, result.Pages)
	assert.False(t, result.PossiblyTruncated)
}

func TestFetchAllPageFailureAborts(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls >= 2 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream timeout"))
			return
		}
		_ = json.NewEncoder(w).Encode(searchResponse{
			PageMetadata: pageMetadata{Page: 1, HasNext: true},
			Results:      []RawRecord{{"Award ID": "AWD-1"}},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, zap.NewNop())
	result, err := client.FetchAll(context.Background(), ResourceAwards, Filter{})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "page 2")
	assert.Contains(t, err.Error(), "upstream timeout")
}

// TestIsPossiblyTruncated pins the three-way conjunction to its exact
// boundary values. The predicate is easy to get subtly wrong under refactor.
func TestIsPossiblyTruncated(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		pages       int
		pageSize    int
		lastHasNext bool
		want        bool
	}{
		{"at the cap boundary", 10000, 100, 100, false, true},
		{"cap reached but more pages signaled", 10000, 100, 100, true, false},
		{"one record short of the cap", 9999, 100, 100, false, false},
		{"cap total on too few pages", 10000, 99, 100, false, false},
		{"cap total on too many pages", 10000, 101, 100, false, false},
		{"non-divisible page size", 10000, 34, 300, false, true},
		{"non-divisible page size wrong page count", 10000, 33, 300, false, false},
		{"zero page size", 10000, 100, 0, false, false},
		{"small clean collection", 250, 3, 100, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsPossiblyTruncated(tt.total, tt.pages, tt.pageSize, tt.lastHasNext)
			assert.Equal(t, tt.want, got)
		})
	}
}
