// Package units holds the conversion factors between the source units that
// appear in raw emission and generation data (pounds, short tons, MMBtu,
// megawatt hours) and the canonical basis used throughout the module
// (kilograms for mass, megajoules for energy).
//
// Source adapters are responsible for converting amounts before a dataset is
// stored or validated; reference totals files that carry an explicit Unit
// column are converted row by row at validation time using Factor.
package units
