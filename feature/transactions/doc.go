// Package transactions owns the Transaction record: normalization from raw
// API dictionaries, the new-award classification, summary building, and the
// single-resource fetch run.
package transactions
