// Package record defines the standardized tabular data model shared by all
// source adapters: one Record per emission or generation observation, plus
// the named inventory table formats (flowbyfacility, flowbyprocess, flow,
// facility) and their required columns.
//
// Amounts may arrive from raw files as comma-grouped numeric text. ParseAmount
// and Record.Amount normalize them to float64 before any arithmetic; missing
// values parse to zero so that downstream aggregation can fill-then-sum.
package record
