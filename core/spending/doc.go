// Package spending provides the client for the USAspending search API.
//
// It owns the request/response wire shapes, the per-resource field
// allow-lists, the paginated fetch engine, and the batched identifier fetch
// used by the reconciliation pipeline.
//
// # Truncation
//
// The API silently caps any sorted search at 10,000 records while still
// reporting "no more pages" on the final page. The engine detects that
// boundary (IsPossiblyTruncated) and flags the collection rather than
// failing: the records fetched are valid, completeness is not guaranteed.
//
// # Batched identifier fetch
//
// FetchAwardsByID partitions an arbitrary identifier list into fixed-size
// batches and issues one identifier-filtered query per batch. Because each
// batch is far below the cap and the query is keyed on identifiers rather
// than the amount sort, the cap cannot silently drop a requested award.
//
// # Usage
//
//	client := spending.NewClient(cfg, nil, log)
//	result, err := client.FetchAll(ctx, spending.ResourceTransactions, filter)
package spending
