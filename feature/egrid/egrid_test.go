package egrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewlchambers/standardizedinventories/core/record"
	"github.com/matthewlchambers/standardizedinventories/core/units"
)

func plantTestSheet() *sheet {
	return &sheet{
		codes: []string{"ORISPL", "PNAME", "PSTATABB", "CNTYNAME", "LAT", "LON",
			"PLPRMFL", "PLNOXAN", "PLSO2AN", "PLCO2AN", "PLCH4AN", "PLN2OAN",
			"PLHTIAN", "USETHRMO", "PLNGENAN"},
		rows: [][]string{
			{"3", "Barry", "AL", "Mobile", "31.0069", "-88.0103",
				"NG", "1,250.5", "2", "3000000", "150", "20", "60000000", "", "7500000"},
			{"10", "Greene County", "AL", "Greene", "32.6017", "-87.7811",
				"BIT", "", "", "", "", "", "", "", "100"},
		},
	}
}

func TestMeltPlantSheet(t *testing.T) {
	records, facilities, fuels, err := meltPlantSheet(plantTestSheet())
	require.NoError(t, err)

	// Blank cells are missing observations and melt to nothing: the first
	// plant has no steam, the second only generation.
	require.Len(t, records, 8)
	require.Len(t, facilities, 2)
	assert.Equal(t, "NG", fuels["3"])
	assert.Equal(t, "BIT", fuels["10"])

	byFlow := make(map[string]record.Record)
	for _, r := range records {
		if r.FacilityID == "3" {
			byFlow[r.FlowName] = r
		}
	}

	nox := byFlow["Nitrogen oxides"]
	assert.InDelta(t, 1250.5*units.USTonToKg, nox.FlowAmount, 1e-9)
	assert.Equal(t, "kg", nox.Unit)
	assert.Equal(t, "air", nox.Compartment)
	assert.Equal(t, "AL", nox.State)

	methane := byFlow["Methane"]
	assert.InDelta(t, 150*units.LbToKg, methane.FlowAmount, 1e-9)

	heat := byFlow["Heat"]
	assert.InDelta(t, 60000000*units.MMBtuToMJ, heat.FlowAmount, 1e-3)
	assert.Equal(t, "MJ", heat.Unit)
	assert.Equal(t, "input", heat.Compartment)

	electricity := byFlow["Electricity"]
	assert.InDelta(t, 7500000*units.MWhToMJ, electricity.FlowAmount, 1e-3)
	assert.Equal(t, "product", electricity.Compartment)

	fac := facilities[0]
	assert.Equal(t, "Barry", fac.FacilityName)
	assert.Equal(t, "Mobile", fac.County)
	assert.InDelta(t, 31.0069, fac.Latitude, 1e-9)
}

func TestMeltPlantSheetMissingColumn(t *testing.T) {
	s := &sheet{codes: []string{"ORISPL", "PNAME"}}
	_, _, _, err := meltPlantSheet(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestSortByFacility(t *testing.T) {
	records := []record.Record{
		{FacilityID: "10"},
		{FacilityID: "9"},
		{FacilityID: "100"},
	}
	sortByFacility(records)
	assert.Equal(t, "9", records[0].FacilityID)
	assert.Equal(t, "10", records[1].FacilityID)
	assert.Equal(t, "100", records[2].FacilityID)
}

func TestUnitReliability(t *testing.T) {
	s := &sheet{
		codes: []string{"ORISPL", "HTIAN", "HTIANSRC", "NOXAN", "NOXANSRC",
			"SO2AN", "SO2ANSRC", "CO2AN", "CO2ANSRC"},
		rows: [][]string{
			{"3", "", "", "90", "CEM", "", "", "", ""},
			{"3", "", "", "10", "Estimated", "", "", "", ""},
		},
	}

	scores, err := unitReliability(s)
	require.NoError(t, err)

	// Weighted by unit flow amount: (90*1 + 10*5) / 100.
	assert.InDelta(t, 1.4, scores["3\x1fNitrogen oxides"], 1e-9)

	// Heat reported no amounts, so no score survives aggregation.
	_, ok := scores["3\x1fHeat"]
	assert.False(t, ok)
}

func TestApplyReliability(t *testing.T) {
	records := []record.Record{
		{FacilityID: "3", FlowName: "Electricity"},
		{FacilityID: "3", FlowName: "Methane"},
		{FacilityID: "7", FlowName: "Nitrous oxide"},
		{FacilityID: "3", FlowName: "Nitrogen oxides"},
		{FacilityID: "3", FlowName: "Sulfur dioxide"},
	}
	scores := map[string]float64{"3\x1fNitrogen oxides": 1.4}
	fuels := map[string]string{"3": "NG", "7": "PG"}

	applyReliability(records, scores, fuels)

	assert.Equal(t, 1.0, records[0].DataReliability)
	assert.Equal(t, 2.0, records[1].DataReliability) // emission factor fuel
	assert.Equal(t, 3.0, records[2].DataReliability) // measured fuel type
	assert.InDelta(t, 1.4, records[3].DataReliability, 1e-9)
	assert.Equal(t, 5.0, records[4].DataReliability) // no unit sheet score
}

func TestDistinctFlows(t *testing.T) {
	records := []record.Record{
		{FlowName: "Sulfur dioxide", Compartment: "air", Unit: "kg"},
		{FlowName: "Electricity", Compartment: "product", Unit: "MJ"},
		{FlowName: "Sulfur dioxide", Compartment: "air", Unit: "kg"},
	}
	flows := distinctFlows(records)
	require.Len(t, flows, 2)
	assert.Equal(t, "Electricity", flows[0].FlowName)
	assert.Equal(t, "Sulfur dioxide", flows[1].FlowName)
}
