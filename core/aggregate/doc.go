// Package aggregate groups standardized records by arbitrary key column sets
// and sums their flow amounts.
//
// Sum is the plain fill-then-sum aggregation used by the validation engine:
// it is deterministic, mass conserving, and keeps first-seen group order so a
// fixed input order always yields the same output order.
//
// WithReliability is the inventory-generation variant that also computes a
// flow-weighted mean data reliability score per group and drops groups whose
// total amount is not positive.
package aggregate
