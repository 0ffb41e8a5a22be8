package egrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewlchambers/standardizedinventories/core/record"
	"github.com/matthewlchambers/standardizedinventories/core/units"
)

func TestConvertTotals(t *testing.T) {
	totals := []record.Record{
		{FlowName: "Carbon dioxide", FlowAmountText: "2,000,000", Unit: "tons"},
		{FlowName: "Methane", FlowAmount: 500, Unit: "lbs"},
		{FlowName: "Electricity", FlowAmount: 4000000, Unit: "MWh"},
		{FlowName: "Heat", FlowAmount: 100, Unit: "MMBtu"},
	}

	require.NoError(t, convertTotals(totals))

	assert.InDelta(t, 2000000*units.USTonToKg, totals[0].FlowAmount, 1e-3)
	assert.InDelta(t, 500*units.LbToKg, totals[1].FlowAmount, 1e-9)
	assert.InDelta(t, 4000000*units.MWhToMJ, totals[2].FlowAmount, 1e-3)
	assert.InDelta(t, 100*units.MMBtuToMJ, totals[3].FlowAmount, 1e-9)

	for _, r := range totals {
		assert.Empty(t, r.Unit)
		assert.Empty(t, r.FlowAmountText)
	}
}

func TestConvertTotalsUnknownUnit(t *testing.T) {
	totals := []record.Record{{FlowName: "Heat", FlowAmount: 1, Unit: "BTU"}}
	err := convertTotals(totals)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Heat")
}

func TestUSTotalColumnsCoverEveryFlow(t *testing.T) {
	covered := map[string]bool{"Steam": true}
	for _, c := range usTotalColumns {
		covered[c.Name] = true
	}
	for _, pf := range plantFlows {
		assert.True(t, covered[pf.Name], pf.Name)
	}
}
