package nei

import "fmt"

// sourceFields maps standardized column names onto the EIS export column
// names of each vintage. The exports renamed most columns between 2011 and
// 2014 and again in 2017, so each supported year carries its own map.
var sourceFields = map[string]map[string]string{
	"2011": {
		"FacilityID":       "eis_facility_site_id",
		"FacilityName":     "facility_site_name",
		"Address":          "location_address_text",
		"City":             "locality",
		"State":            "st_usps_cd",
		"Zip":              "address_postal_code",
		"Latitude":         "latitude_msr",
		"Longitude":        "longitude_msr",
		"NAICS":            "naics_cd",
		"County":           "county_name",
		"FlowName":         "description",
		"FlowID":           "pollutant_cd",
		"FlowAmount":       "total_emissions",
		"Process":          "scc",
		"ReliabilityScore": "reliability_score",
	},
	"2014": {
		"FacilityID":       "eis_facility_id",
		"FacilityName":     "facility_name",
		"Address":          "address",
		"City":             "city",
		"State":            "state",
		"Zip":              "zip_code",
		"Latitude":         "latitude",
		"Longitude":        "longitude",
		"NAICS":            "naics_code",
		"County":           "county",
		"FlowName":         "pollutant_desc",
		"FlowID":           "pollutant_cd",
		"FlowAmount":       "total_emissions",
		"Process":          "scc",
		"ReliabilityScore": "reliability_score",
	},
	"2017": {
		"FacilityID":       "eis facility id",
		"FacilityName":     "site name",
		"Address":          "address",
		"City":             "city",
		"State":            "st usps cd",
		"Zip":              "zip code",
		"Latitude":         "site latitude",
		"Longitude":        "site longitude",
		"NAICS":            "naics code",
		"County":           "county",
		"FlowName":         "pollutant desc",
		"FlowID":           "pollutant code",
		"FlowAmount":       "total emissions",
		"Process":          "scc",
		"ReliabilityScore": "reliability score",
	},
}

func init() {
	// 2018 uses the 2017 export layout.
	sourceFields["2018"] = sourceFields["2017"]
}

// fieldsForYear returns the source column map of the vintage.
func fieldsForYear(year string) (map[string]string, error) {
	fields, ok := sourceFields[year]
	if !ok {
		return nil, fmt.Errorf("no source field mapping for NEI year %s", year)
	}
	return fields, nil
}

// reliabilityScores maps the NEI emission calculation method code onto a
// data quality reliability score, following Table 3-3 of the ERG data
// quality report. Direct measurement scores best, engineering judgment and
// unranked methods worst.
var reliabilityScores = map[int]float64{
	0:  5,
	1:  1,
	2:  2,
	3:  3,
	4:  4,
	5:  4,
	6:  4,
	7:  5,
	8:  4,
	9:  5,
	10: 5,
	11: 5,
	12: 5,
	13: 5,
}

// reliabilityScore resolves a calculation method code. Codes absent from the
// table score worst.
func reliabilityScore(code int) float64 {
	if s, ok := reliabilityScores[code]; ok {
		return s
	}
	return 5
}
