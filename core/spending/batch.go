package spending

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// BatchResult is the output of an identifier-filtered award fetch.
type BatchResult struct {
	// Records are the raw award dictionaries from all successful batches.
	Records []RawRecord `json:"records"`
	// Requested is the number of identifiers asked for.
	Requested int `json:"requested"`
	// Batches is the number of batch queries issued.
	Batches int `json:"batches"`
	// FailedBatches counts batches whose query failed and whose results
	// were skipped.
	FailedBatches int `json:"failed_batches"`
}

// FetchAwardsByID fetches awards for an arbitrary identifier list in
// fixed-size batches. Identifier filtering bypasses the amount sort, so the
// API's hard cap cannot drop a specifically requested award: each batch is
// far below the cap by construction.
//
// A failed batch is logged and skipped unless strict batches are configured,
// in which case the failure aborts the whole fetch. Context cancellation
// always aborts.
func (c *Client) FetchAwardsByID(ctx context.Context, ids []string, typeCodes []string) (*BatchResult, error) {
	batchSize := c.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	if len(typeCodes) == 0 {
		typeCodes = AllTypeCodes()
	}

	result := &BatchResult{Requested: len(ids)}

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]
		result.Batches++

		f := Filter{TypeCodes: typeCodes, AwardIDs: batch}
		fetched, err := c.fetchAll(ctx, ResourceAwards, f, "Award ID", "asc")
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if c.cfg.StrictBatches {
				return nil, fmt.Errorf("batch %d (%d ids): %w", result.Batches, len(batch), err)
			}
			result.FailedBatches++
			c.log.Error("batch fetch failed, skipping batch",
				zap.Int("batch", result.Batches),
				zap.Int("batch_ids", len(batch)),
				zap.Error(err),
			)
			continue
		}

		result.Records = append(result.Records, fetched.Records...)
		c.log.Info("fetched award batch",
			zap.Int("batch", result.Batches),
			zap.Int("batch_ids", len(batch)),
			zap.Int("batch_records", len(fetched.Records)),
			zap.Int("total_records", len(result.Records)),
		)
	}

	return result, nil
}
