package spending

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// FetchResult is the accumulated output of one paginated collection call.
type FetchResult struct {
	// Resource is the resource kind that was fetched.
	Resource Resource `json:"resource"`
	// Records are the raw result dictionaries from all pages, in API order.
	Records []RawRecord `json:"records"`
	// Pages is the number of pages fetched.
	Pages int `json:"pages"`
	// PossiblyTruncated is set when the collection landed exactly on the
	// API's hard cap boundary. The records are valid; completeness is not
	// guaranteed.
	PossiblyTruncated bool `json:"possibly_truncated"`
}

// FetchAll drives sequential page requests for a resource kind until the API
// signals no further pages or the configured safety ceiling is reached. A
// page failure aborts the whole collection.
func (c *Client) FetchAll(ctx context.Context, res Resource, f Filter) (*FetchResult, error) {
	sortKey, order := SortKeyFor(res)
	return c.fetchAll(ctx, res, f, sortKey, order)
}

func (c *Client) fetchAll(ctx context.Context, res Resource, f Filter, sortKey, order string) (*FetchResult, error) {
	pageSize := c.cfg.PageSize
	fields := FieldsFor(res)

	var records []RawRecord
	page := 1
	lastHasNext := false

	for {
		resp, err := c.search(ctx, res, searchRequest{
			Filters: f.payload(),
			Fields:  fields,
			Page:    page,
			Limit:   pageSize,
			Sort:    sortKey,
			Order:   order,
		})
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		records = append(records, resp.Results...)
		lastHasNext = resp.PageMetadata.HasNext

		c.log.Info("fetched page",
			zap.String("resource", string(res)),
			zap.Int("page", page),
			zap.Int("page_records", len(resp.Results)),
			zap.Int("total_records", len(records)),
			zap.Bool("has_next", lastHasNext),
		)

		if !lastHasNext || len(resp.Results) == 0 {
			break
		}
		if len(records) >= c.cfg.MaxTotalRecords {
			c.log.Warn("safety ceiling reached, stopping collection",
				zap.String("resource", string(res)),
				zap.Int("total_records", len(records)),
				zap.Int("max_total_records", c.cfg.MaxTotalRecords),
			)
			break
		}
		page++
	}

	truncated := IsPossiblyTruncated(len(records), page, pageSize, lastHasNext)
	if truncated {
		c.log.Warn("==================================================")
		c.log.Warn("collection possibly truncated at the API hard cap",
			zap.String("resource", string(res)),
			zap.Int("total_records", len(records)),
			zap.Int("external_limit", ExternalRecordLimit),
		)
		c.log.Warn("==================================================")
	}

	return &FetchResult{
		Resource:          res,
		Records:           records,
		Pages:             page,
		PossiblyTruncated: truncated,
	}, nil
}

// IsPossiblyTruncated reports whether a completed collection is suspected of
// having been silently capped by the API. All three conditions must hold:
// the total equals the external limit, the page count equals exactly
// ceil(limit/pageSize), and the API reported no further pages on the final
// page. A result set whose true size coincidentally equals the limit is an
// unavoidable false negative.
func IsPossiblyTruncated(total, pages, pageSize int, lastHasNext bool) bool {
	if pageSize <= 0 || lastHasNext {
		return false
	}
	if total != ExternalRecordLimit {
		return false
	}
	capPages := (ExternalRecordLimit + pageSize - 1) / pageSize
	return pages == capPages
}
