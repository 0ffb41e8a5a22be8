package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one standardized emission or generation observation. A dataset is
// a slice of Records sharing one canonical unit basis (kg for mass, MJ for
// energy); conversion happens in the source adapters before a dataset is
// stored or compared.
type Record struct {
	// FacilityID identifies the reporting facility. It may be empty for
	// rows that do not describe a facility, such as national totals.
	FacilityID string `parquet:"FacilityID,optional"`

	// FlowName is the canonical pollutant or energy flow name.
	FlowName string `parquet:"FlowName"`

	// FlowID is the source-assigned identifier for the flow, when one exists.
	FlowID string `parquet:"FlowID,optional"`

	// Compartment is the release medium, e.g. "air".
	Compartment string `parquet:"Compartment,optional"`

	// State is the two-letter state code of the facility.
	State string `parquet:"State,optional"`

	// SubpartName is the reporting subpart, for sources that report by subpart.
	SubpartName string `parquet:"SubpartName,optional"`

	// Process is the source classification code or process identifier.
	Process string `parquet:"Process,optional"`

	// ProcessType labels the kind of process identifier, e.g. "SCC".
	ProcessType string `parquet:"ProcessType,optional"`

	// Unit is the unit label of FlowAmount. Standardized datasets use the
	// canonical basis ("kg", "MJ"); reference totals may carry a source
	// label ("lbs", "tons", "MMBtu", "MWh") to be converted at validation.
	Unit string `parquet:"Unit,optional"`

	// FlowAmount is the observed quantity. NaN marks a missing value; it is
	// filled with zero before aggregation.
	FlowAmount float64 `parquet:"FlowAmount"`

	// FlowAmountText is the raw textual amount as read from a source file,
	// possibly with thousands separators ("1,234.5"). When non-empty it
	// takes precedence over FlowAmount and is parsed before any arithmetic.
	FlowAmountText string `parquet:"-"`

	// DataReliability is the data quality score attached to the observation.
	DataReliability float64 `parquet:"DataReliability,optional"`

	// Source labels the origin of the row within an inventory, e.g. "Point".
	Source string `parquet:"Source,optional"`
}

// Amount returns the numeric flow amount of the record. Textual amounts are
// parsed with thousands separators stripped; missing values (NaN, or an empty
// textual amount) are returned as zero. A non-numeric textual amount is a
// hard error.
func (r Record) Amount() (float64, error) {
	if r.FlowAmountText != "" {
		return ParseAmount(r.FlowAmountText)
	}
	if math.IsNaN(r.FlowAmount) {
		return 0, nil
	}
	return r.FlowAmount, nil
}

// ParseAmount parses a textual flow amount, stripping comma thousands
// separators first. An empty or whitespace-only string is a missing value
// and parses to zero.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing flow amount %q: %w", s, err)
	}
	return v, nil
}

// Field returns the value of the named key column.
func (r Record) Field(name string) (string, error) {
	switch name {
	case "FacilityID":
		return r.FacilityID, nil
	case "FlowName":
		return r.FlowName, nil
	case "FlowID":
		return r.FlowID, nil
	case "Compartment":
		return r.Compartment, nil
	case "State":
		return r.State, nil
	case "SubpartName":
		return r.SubpartName, nil
	case "Process":
		return r.Process, nil
	case "Unit":
		return r.Unit, nil
	case "Source":
		return r.Source, nil
	default:
		return "", fmt.Errorf("unknown key column %q", name)
	}
}

// SetField sets the named key column. It is the inverse of Field and is used
// when rebuilding records from grouped key tuples.
func (r *Record) SetField(name, value string) error {
	switch name {
	case "FacilityID":
		r.FacilityID = value
	case "FlowName":
		r.FlowName = value
	case "FlowID":
		r.FlowID = value
	case "Compartment":
		r.Compartment = value
	case "State":
		r.State = value
	case "SubpartName":
		r.SubpartName = value
	case "Process":
		r.Process = value
	case "Unit":
		r.Unit = value
	case "Source":
		r.Source = value
	default:
		return fmt.Errorf("unknown key column %q", name)
	}
	return nil
}

// Key returns the tuple of the record's values for the given ordered column
// list. The values keep the column order they were requested in.
func (r Record) Key(columns []string) ([]string, error) {
	key := make([]string, len(columns))
	for i, c := range columns {
		v, err := r.Field(c)
		if err != nil {
			return nil, err
		}
		key[i] = v
	}
	return key, nil
}
