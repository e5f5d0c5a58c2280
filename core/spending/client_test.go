package spending

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:              baseURL,
		AwardsEndpoint:       "/api/v2/search/spending_by_award/",
		TransactionsEndpoint: "/api/v2/search/spending_by_transaction/",
		TimeoutSeconds:       5,
		PageSize:             100,
		MaxTotalRecords:      50000,
		BatchSize:            100,
		RequestsPerSecond:    1000,
		Burst:                100,
	}
}

// TestSearchRequestShape verifies the wire shape of a page request.
func TestSearchRequestShape(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v2/search/spending_by_award/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(searchResponse{
			Limit:        100,
			PageMetadata: pageMetadata{Page: 1, HasNext: false},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, zap.NewNop())
	f := Filter{
		TypeCodes: []string{"A", "B"},
		MinAmount: 900000,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	}
	_, err := client.FetchAll(context.Background(), ResourceAwards, f)
	require.NoError(t, err)

	assert.Equal(t, float64(1), captured["page"])
	assert.Equal(t, float64(100), captured["limit"])
	assert.Equal(t, "Award Amount", captured["sort"])
	assert.Equal(t, "desc", captured["order"])

	fields, ok := captured["fields"].([]any)
	require.True(t, ok)
	assert.Contains(t, fields, "Award ID")
	assert.Contains(t, fields, "Last Modified Date")
	assert.NotContains(t, fields, "COVID-19 Obligations")

	filters, ok := captured["filters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"A", "B"}, filters["award_type_codes"])

	periods, ok := filters["time_period"].([]any)
	require.True(t, ok)
	require.Len(t, periods, 1)
	period := periods[0].(map[string]any)
	assert.Equal(t, "2024-01-01", period["start_date"])
	assert.Equal(t, "2024-01-31", period["end_date"])

	amounts, ok := filters["award_amounts"].([]any)
	require.True(t, ok)
	require.Len(t, amounts, 1)
	assert.Equal(t, float64(900000), amounts[0].(map[string]any)["lower_bound"])
}

// TestSearchAPIErrorPreservesBody verifies that a non-2xx response surfaces
// as an APIError carrying the status code and response body.
func TestSearchAPIErrorPreservesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"Field 'bogus' is not a valid field"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, zap.NewNop())
	_, err := client.FetchAll(context.Background(), ResourceTransactions, Filter{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "not a valid field")
	assert.Contains(t, apiErr.URL, "/spending_by_transaction/")
}

func TestTransactionSortKey(t *testing.T) {
	sort, order := SortKeyFor(ResourceTransactions)
	assert.Equal(t, "Action Date", sort)
	assert.Equal(t, "desc", order)

	sort, order = SortKeyFor(ResourceAwards)
	assert.Equal(t, "Award Amount", sort)
	assert.Equal(t, "desc", order)
}

func TestConfigValidate(t *testing.T) {
	cfg := testConfig("https://api.usaspending.gov")
	assert.NoError(t, cfg.Validate())

	missing := cfg
	missing.BaseURL = ""
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")

	badPage := cfg
	badPage.PageSize = 0
	err = badPage.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.page_size")
}
