package egrid

import "github.com/matthewlchambers/standardizedinventories/core/units"

// flowColumn describes one meltable column of the plant level sheet: the
// eGRID column code it comes from and the source unit its values carry.
type flowColumn struct {
	Code string
	Unit string
}

// plantFlows are the plant sheet columns that melt into standardized
// observations, in output order. The codes are stable across vintages even
// where the descriptive headers changed.
var plantFlows = []struct {
	Name string
	flowColumn
}{
	{"Nitrogen oxides", flowColumn{"PLNOXAN", "tons"}},
	{"Sulfur dioxide", flowColumn{"PLSO2AN", "tons"}},
	{"Carbon dioxide", flowColumn{"PLCO2AN", "tons"}},
	{"Methane", flowColumn{"PLCH4AN", "lbs"}},
	{"Nitrous oxide", flowColumn{"PLN2OAN", "lbs"}},
	{"Heat", flowColumn{"PLHTIAN", "MMBtu"}},
	{"Steam", flowColumn{"USETHRMO", "MMBtu"}},
	{"Electricity", flowColumn{"PLNGENAN", "MWh"}},
}

// plantAttributes are the plant sheet columns that feed the facility table.
var plantAttributes = map[string]string{
	"FacilityID":   "ORISPL",
	"FacilityName": "PNAME",
	"State":        "PSTATABB",
	"County":       "CNTYNAME",
	"Latitude":     "LAT",
	"Longitude":    "LON",
}

// primaryFuelCode is the plant primary fuel column, used when assigning
// methane and nitrous oxide reliability.
const primaryFuelCode = "PLPRMFL"

// flowCompartments maps each flow onto its release medium or product
// classification.
var flowCompartments = map[string]string{
	"Nitrogen oxides": "air",
	"Sulfur dioxide":  "air",
	"Carbon dioxide":  "air",
	"Methane":         "air",
	"Nitrous oxide":   "air",
	"Heat":            "input",
	"Steam":           "product",
	"Electricity":     "product",
}

// unitFlows are the unit sheet flows that carry a disclosed estimation
// source. Each pairs the amount column used as the weighting basis with the
// source disclosure column.
var unitFlows = []struct {
	Name       string
	AmountCode string
	SourceCode string
}{
	{"Heat", "HTIAN", "HTIANSRC"},
	{"Nitrogen oxides", "NOXAN", "NOXANSRC"},
	{"Sulfur dioxide", "SO2AN", "SO2ANSRC"},
	{"Carbon dioxide", "CO2AN", "CO2ANSRC"},
}

// reliabilitySourceScores maps the unit sheet's estimation source
// disclosures onto reliability scores. Continuous monitoring scores best,
// undisclosed sources worst.
var reliabilitySourceScores = map[string]float64{
	"CEM":                 1,
	"Unadjusted CEM":      1,
	"Measured":            1,
	"Calculated from CEM": 2,
	"Calculated":          3,
	"Fuel-based estimate": 4,
	"Estimated":           5,
}

// reliabilityFromSource scores one estimation source disclosure. Unknown or
// blank disclosures score worst.
func reliabilityFromSource(source string) float64 {
	if s, ok := reliabilitySourceScores[source]; ok {
		return s
	}
	return 5
}

// measuredGHGFuels are the primary fuel codes for which methane and nitrous
// oxide rest on measurements rather than emission factors.
var measuredGHGFuels = map[string]bool{
	"PG":  true,
	"RC":  true,
	"WC":  true,
	"SLW": true,
}

// ghgReliability scores methane and nitrous oxide by plant primary fuel.
func ghgReliability(fuel string) float64 {
	if measuredGHGFuels[fuel] {
		return 3
	}
	return 2
}

// canonicalUnit maps a source unit label onto the canonical basis written to
// output tables.
func canonicalUnit(unit string) string {
	c, err := units.Canonical(unit)
	if err != nil {
		return unit
	}
	return c
}
