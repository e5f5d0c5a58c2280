// Package utils provides common utility functions shared across the fetcher.
// It includes loose-typed conversion helpers for values decoded from the
// USAspending API, whose JSON dictionaries mix strings, numbers, and nulls
// for the same logical field.
package utils
