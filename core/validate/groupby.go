package validate

import "fmt"

type groupMode int

const (
	modeFlow groupMode = iota
	modeState
	modeFacility
	modeSubpart
)

// GroupBy selects the fixed key column set a validation run is grouped on.
// Whether the flow grouping includes Compartment is the caller's decision;
// it is never inferred from the shape of the input data.
type GroupBy struct {
	mode        groupMode
	compartment bool
}

// ByFlow groups by FlowName, optionally widened with Compartment for
// inventories that report releases to more than one medium.
func ByFlow(includeCompartment bool) GroupBy {
	return GroupBy{mode: modeFlow, compartment: includeCompartment}
}

// ByState groups by State.
func ByState() GroupBy { return GroupBy{mode: modeState} }

// ByFacility groups by FlowName and FacilityID.
func ByFacility() GroupBy { return GroupBy{mode: modeFacility} }

// BySubpart groups by FlowName and SubpartName.
func BySubpart() GroupBy { return GroupBy{mode: modeSubpart} }

// ParseGroupBy maps the textual mode names accepted on the command line onto
// a GroupBy. includeCompartment only affects the "flow" mode.
func ParseGroupBy(s string, includeCompartment bool) (GroupBy, error) {
	switch s {
	case "flow":
		return ByFlow(includeCompartment), nil
	case "state":
		return ByState(), nil
	case "facility":
		return ByFacility(), nil
	case "subpart":
		return BySubpart(), nil
	default:
		return GroupBy{}, fmt.Errorf("unknown group-by mode %q (want flow, state, facility, or subpart)", s)
	}
}

// Columns returns the key column list of the grouping, in canonical order.
func (g GroupBy) Columns() []string {
	switch g.mode {
	case modeFlow:
		if g.compartment {
			return []string{"FlowName", "Compartment"}
		}
		return []string{"FlowName"}
	case modeState:
		return []string{"State"}
	case modeFacility:
		return []string{"FlowName", "FacilityID"}
	case modeSubpart:
		return []string{"FlowName", "SubpartName"}
	default:
		return nil
	}
}

func (g GroupBy) String() string {
	switch g.mode {
	case modeFlow:
		return "flow"
	case modeState:
		return "state"
	case modeFacility:
		return "facility"
	case modeSubpart:
		return "subpart"
	default:
		return "unknown"
	}
}
