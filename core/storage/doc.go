// Package storage persists run artifacts.
//
// Each fetch run produces timestamped JSON files (raw results when enabled,
// normalized records, a summary, and for two-stage runs the reconciliation
// report) in a local output directory. Artifacts can additionally be mirrored
// to any S3-compatible object store.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider (wrapping
// the MinIO Go client, which supports both AWS S3 and self-hosted MinIO),
// making it easy to mock uploads for unit testing (see core/storage/mocks).
//
// # Naming
//
// Artifact names follow <prefix>_<kind>_<timestamp>.json, e.g.
// awards_normalized_20250105_143000.json. Latest resolves the most recent
// artifact for a prefix/kind pair.
//
// # Usage
//
//	store, err := storage.NewStore(cfg, log)
//	path, err := store.SaveJSON(ctx, storage.ArtifactName("awards", "summary", time.Now()), summary)
package storage
