package record

// Format names one of the standardized inventory table layouts.
type Format string

const (
	// FlowByFacility is one row per facility and flow.
	FlowByFacility Format = "flowbyfacility"
	// FlowByProcess is one row per facility, flow, and process.
	FlowByProcess Format = "flowbyprocess"
	// Flows is the distinct flow list of an inventory.
	Flows Format = "flow"
	// Facilities is the facility attribute table of an inventory.
	Facilities Format = "facility"
)

// InventoryFormats lists the formats that hold quantified observations.
var InventoryFormats = []Format{FlowByFacility, FlowByProcess}

// RequiredColumns returns the required column set of the format, in its
// canonical order.
func (f Format) RequiredColumns() []string {
	switch f {
	case FlowByFacility:
		return []string{"FacilityID", "FlowName", "Compartment", "FlowAmount", "Unit", "DataReliability"}
	case FlowByProcess:
		return []string{"FacilityID", "FlowName", "Compartment", "FlowAmount", "Unit", "DataReliability", "Process"}
	case Flows:
		return []string{"FlowName", "FlowID"}
	case Facilities:
		return []string{"FacilityID", "State"}
	default:
		return nil
	}
}

// FacilityRecord is one row of the facility attribute table. It carries the
// descriptive fields that do not belong on quantified observations.
type FacilityRecord struct {
	FacilityID   string  `parquet:"FacilityID"`
	FacilityName string  `parquet:"FacilityName,optional"`
	Address      string  `parquet:"Address,optional"`
	City         string  `parquet:"City,optional"`
	State        string  `parquet:"State,optional"`
	Zip          string  `parquet:"Zip,optional"`
	Latitude     float64 `parquet:"Latitude,optional"`
	Longitude    float64 `parquet:"Longitude,optional"`
	County       string  `parquet:"County,optional"`
	NAICS        string  `parquet:"NAICS,optional"`
}

// SingleCompartment maps inventory acronyms whose flows all release to one
// medium onto that compartment. Inventories absent from the map, such as
// eGRID, assign compartments per flow.
var SingleCompartment = map[string]string{
	"NEI": "air",
}
