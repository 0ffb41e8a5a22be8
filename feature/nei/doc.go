// Package nei implements the National Emissions Inventory source adapter.
//
// It reads the preprocessed NEI point source parquet exports from the data
// commons, normalizes them to the standardized record layout, and produces
// the four inventory output tables:
//  1. flowbyfacility: emissions aggregated per facility and flow.
//  2. flowbyprocess: emissions aggregated per facility, flow, and SCC.
//  3. flow: the distinct flow list.
//  4. facility: the facility attribute table.
//
// Amounts arrive in US short tons and leave in kilograms. Every flow is a
// release to air; the per-row emission calculation method code is mapped onto
// a data reliability score during standardization.
//
// # National Totals
//
// For years with a published "Facility-level by Pollutant" summary, the
// package downloads the zipped CSV bundle, sums it to national level per
// flow, and reconciles the flowbyfacility output against it.
//
// # Components
//
//   - Service: orchestrates download, standardization, output generation,
//     and validation for one NEI year.
package nei
