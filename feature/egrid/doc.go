// Package egrid implements the eGRID source adapter.
//
// eGRID publishes one Excel workbook per data year covering US electricity
// generating plants. The adapter downloads the workbook, melts the wide
// plant-level sheet into standardized observations, and produces the
// flowbyfacility, flow, and facility output tables.
//
// Unlike point source inventories, eGRID covers several release media: stack
// emissions go to air while heat, steam, and electricity are tracked as
// energy flows with their own compartments. Mass flows convert to kilograms
// and energy flows to megajoules during standardization.
//
// Data reliability for heat, NOx, SO2, and CO2 is derived from the unit
// level sheet, where eGRID discloses how each unit's value was obtained;
// scores are weighted by unit flow amount and aggregated per facility.
//
// # National Totals
//
// The workbook's US total sheet doubles as the reference dataset: the
// adapter extracts the national columns, keeps them in source units, and
// reconciles the generated flowbyfacility output against them with amounts
// converted at validation time.
package egrid
