package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByColumns(t *testing.T) {
	assert.Equal(t, []string{"FlowName"}, ByFlow(false).Columns())
	assert.Equal(t, []string{"FlowName", "Compartment"}, ByFlow(true).Columns())
	assert.Equal(t, []string{"State"}, ByState().Columns())
	assert.Equal(t, []string{"FlowName", "FacilityID"}, ByFacility().Columns())
	assert.Equal(t, []string{"FlowName", "SubpartName"}, BySubpart().Columns())
}

func TestParseGroupBy(t *testing.T) {
	g, err := ParseGroupBy("flow", true)
	require.NoError(t, err)
	assert.Equal(t, ByFlow(true), g)

	g, err = ParseGroupBy("facility", true)
	require.NoError(t, err)
	// includeCompartment only matters for the flow mode.
	assert.Equal(t, ByFacility(), g)

	_, err = ParseGroupBy("pollutant", false)
	assert.Error(t, err)
}
