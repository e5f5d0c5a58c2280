// Package reconcile implements the two-stage fetch that works around the
// API's 10,000-record cap. Stage one pages through transactions sorted by
// action date, filters down to new-award events, and extracts the exact set
// of award identifiers they reference. Stage two fetches those awards by
// identifier in batches, sidestepping the amount-sorted truncation a naive
// award search would suffer, then deduplicates snapshots and measures how
// completely the two sides join.
//
// The pipeline is linear and all-or-nothing: missing identifiers after stage
// two are a normal, reported outcome, while any transport or parse failure
// aborts the whole run.
package reconcile
