package units

import "fmt"

// Conversion factors to the canonical unit basis. All masses are expressed
// in kilograms and all energy quantities in megajoules before any
// cross-dataset comparison.
const (
	// USTonToKg converts US short tons to kilograms.
	USTonToKg = 907.18474
	// LbToKg converts pounds to kilograms.
	LbToKg = 0.4535924
	// MMBtuToMJ converts million British thermal units to megajoules.
	MMBtuToMJ = 1055.056
	// MWhToMJ converts megawatt hours to megajoules.
	MWhToMJ = 3600
	// GToKg converts grams to kilograms.
	GToKg = 0.001
)

// Factor returns the conversion factor to the canonical basis for one of the
// unit labels used by reference totals files. The label set is closed; any
// other label is an error.
func Factor(unit string) (float64, error) {
	switch unit {
	case "lbs":
		return LbToKg, nil
	case "tons":
		return USTonToKg, nil
	case "MMBtu":
		return MMBtuToMJ, nil
	case "MWh":
		return MWhToMJ, nil
	default:
		return 0, fmt.Errorf("unknown unit label %q", unit)
	}
}

// Canonical reports the canonical unit for a source label: "kg" for mass
// labels and "MJ" for energy labels.
func Canonical(unit string) (string, error) {
	switch unit {
	case "lbs", "tons":
		return "kg", nil
	case "MMBtu", "MWh":
		return "MJ", nil
	default:
		return "", fmt.Errorf("unknown unit label %q", unit)
	}
}
