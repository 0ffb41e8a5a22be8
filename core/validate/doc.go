// Package validate reconciles a generated inventory against an independently
// published reference dataset, such as national emission totals.
//
// The engine aggregates both datasets over a fixed key column set chosen by a
// GroupBy value, combines the aggregates with a full outer join, and
// classifies every group's discrepancy: identical, statistically similar
// within a tolerance, one-sided zero, infinite reference, or exceeding
// tolerance. Percent differences are always normalized by the reference
// amount, which is treated as ground truth.
//
// Findings never abort a run. Groups flagged as potential issues are counted
// and surfaced in a single warning, and the full report is always produced
// for human review.
//
// The package also maintains the validation sources ledger, an ordered CSV
// table recording which reference dataset each (inventory, year) pair was
// checked against, and writes report artifacts with their provenance
// metadata.
package validate
