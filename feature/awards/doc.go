// Package awards owns the Award record: normalization from raw API
// dictionaries (including truncated-identifier recovery), snapshot
// deduplication, summary building, the single-resource fetch run, and
// offline analysis of already-normalized award artifacts.
package awards
