package validate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matthewlchambers/standardizedinventories/core/record"
)

func newTestEngine() *Engine {
	return NewEngine(zap.NewNop())
}

func inv(flow string, amount float64) record.Record {
	return record.Record{FlowName: flow, FlowAmount: amount}
}

func TestValidateIdentical(t *testing.T) {
	res, err := newTestEngine().Validate(
		[]record.Record{inv("CO2", 100)},
		[]record.Record{inv("CO2", 100)},
		ByFlow(false), DefaultTolerance)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	row := res.Rows[0]
	assert.Equal(t, []string{"CO2"}, row.Key)
	assert.Equal(t, 0.0, row.PercentDifference)
	assert.Equal(t, ConclusionIdentical, row.Conclusion)
	assert.Zero(t, res.ErrorCount)
}

func TestValidateBoundaryInclusive(t *testing.T) {
	res, err := newTestEngine().Validate(
		[]record.Record{inv("CO2", 95)},
		[]record.Record{inv("CO2", 100)},
		ByFlow(false), 5.0)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	assert.InDelta(t, 5.0, res.Rows[0].PercentDifference, 1e-12)
	assert.Equal(t, ConclusionSimilar, res.Rows[0].Conclusion)
	assert.Zero(t, res.ErrorCount)
}

func TestValidateExceedsTolerance(t *testing.T) {
	res, err := newTestEngine().Validate(
		[]record.Record{inv("CO2", 90)},
		[]record.Record{inv("CO2", 100)},
		ByFlow(false), 5.0)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, res.Rows[0].PercentDifference, 1e-12)
	assert.Equal(t, ConclusionExceedsTolerance, res.Rows[0].Conclusion)
	assert.Equal(t, 1, res.ErrorCount)
}

func TestValidateBothZero(t *testing.T) {
	res, err := newTestEngine().Validate(
		[]record.Record{inv("CO2", 0)},
		[]record.Record{inv("CO2", 0)},
		ByFlow(false), DefaultTolerance)
	require.NoError(t, err)

	assert.Equal(t, ConclusionBothZero, res.Rows[0].Conclusion)
	assert.Equal(t, 0.0, res.Rows[0].PercentDifference)
	assert.Zero(t, res.ErrorCount)
}

func TestValidateMissingReferenceKey(t *testing.T) {
	res, err := newTestEngine().Validate(
		[]record.Record{inv("SO2", 50)},
		nil,
		ByFlow(false), DefaultTolerance)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	row := res.Rows[0]
	assert.Equal(t, 50.0, row.InventoryAmount)
	assert.Equal(t, 0.0, row.ReferenceAmount)
	assert.Equal(t, 100.0, row.PercentDifference)
	assert.Equal(t, ConclusionReferenceZero, row.Conclusion)
	assert.Equal(t, 1, res.ErrorCount)
}

func TestValidateMissingInventoryKey(t *testing.T) {
	res, err := newTestEngine().Validate(
		nil,
		[]record.Record{inv("Pb", 3)},
		ByFlow(false), DefaultTolerance)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)

	row := res.Rows[0]
	assert.Equal(t, 0.0, row.InventoryAmount)
	assert.Equal(t, 3.0, row.ReferenceAmount)
	assert.Equal(t, 100.0, row.PercentDifference)
	assert.Equal(t, ConclusionInventoryZero, row.Conclusion)
	assert.Equal(t, 1, res.ErrorCount)
}

func TestValidateCommaGroupedText(t *testing.T) {
	res, err := newTestEngine().Validate(
		[]record.Record{{FlowName: "CO2", FlowAmountText: "1,000.00"}},
		[]record.Record{{FlowName: "CO2", FlowAmountText: "1,000.00"}},
		ByFlow(false), DefaultTolerance)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, res.Rows[0].InventoryAmount)
	assert.Equal(t, ConclusionIdentical, res.Rows[0].Conclusion)
}

func TestValidateParseErrorFails(t *testing.T) {
	_, err := newTestEngine().Validate(
		[]record.Record{{FlowName: "CO2", FlowAmountText: "garbage"}},
		nil, ByFlow(false), DefaultTolerance)
	assert.Error(t, err)
}

func TestValidateInfiniteReference(t *testing.T) {
	t.Run("inventory zero", func(t *testing.T) {
		res, err := newTestEngine().Validate(
			[]record.Record{inv("Hg", 0)},
			[]record.Record{inv("Hg", math.Inf(1))},
			ByFlow(false), DefaultTolerance)
		require.NoError(t, err)

		row := res.Rows[0]
		assert.True(t, math.IsNaN(row.ReferenceAmount))
		assert.Equal(t, 100.0, row.PercentDifference)
		assert.Equal(t, ConclusionReferenceInfinite, row.Conclusion)
		assert.Zero(t, res.ErrorCount)
	})

	t.Run("inventory nonzero is not counted as an error", func(t *testing.T) {
		res, err := newTestEngine().Validate(
			[]record.Record{inv("Hg", 5)},
			[]record.Record{inv("Hg", math.Inf(1))},
			ByFlow(false), DefaultTolerance)
		require.NoError(t, err)

		row := res.Rows[0]
		assert.True(t, math.IsNaN(row.ReferenceAmount))
		assert.Equal(t, 100.0, row.PercentDifference)
		assert.Equal(t, ConclusionReferenceInfinite, row.Conclusion)
		assert.Zero(t, res.ErrorCount)
	})
}

func TestValidateHomogeneity(t *testing.T) {
	// Scaling both datasets never changes percent differences or conclusions.
	base, err := newTestEngine().Validate(
		[]record.Record{inv("A", 90), inv("B", 50)},
		[]record.Record{inv("A", 100), inv("B", 50)},
		ByFlow(false), 5.0)
	require.NoError(t, err)

	for _, k := range []float64{0.001, 2, 1e6} {
		scaled, err := newTestEngine().Validate(
			[]record.Record{inv("A", 90*k), inv("B", 50*k)},
			[]record.Record{inv("A", 100*k), inv("B", 50*k)},
			ByFlow(false), 5.0)
		require.NoError(t, err)
		require.Len(t, scaled.Rows, len(base.Rows))
		for i := range base.Rows {
			assert.InDelta(t, base.Rows[i].PercentDifference, scaled.Rows[i].PercentDifference, 1e-9)
			assert.Equal(t, base.Rows[i].Conclusion, scaled.Rows[i].Conclusion)
		}
		assert.Equal(t, base.ErrorCount, scaled.ErrorCount)
	}
}

func TestValidateOuterJoinCompleteness(t *testing.T) {
	inventory := []record.Record{
		{FlowName: "CO2", Compartment: "air", FlowAmount: 10},
		{FlowName: "SO2", Compartment: "air", FlowAmount: 20},
		{FlowName: "CO2", Compartment: "air", FlowAmount: 5},
	}
	reference := []record.Record{
		{FlowName: "SO2", Compartment: "air", FlowAmount: 19},
		{FlowName: "NOx", Compartment: "air", FlowAmount: 7},
	}

	res, err := newTestEngine().Validate(inventory, reference, ByFlow(true), DefaultTolerance)
	require.NoError(t, err)

	assert.Equal(t, []string{"FlowName", "Compartment"}, res.Columns)
	require.Len(t, res.Rows, 3)

	// Every key from either side appears exactly once: inventory groups
	// first in aggregation order, then reference-only groups.
	assert.Equal(t, []string{"CO2", "air"}, res.Rows[0].Key)
	assert.Equal(t, []string{"SO2", "air"}, res.Rows[1].Key)
	assert.Equal(t, []string{"NOx", "air"}, res.Rows[2].Key)
	assert.Equal(t, 15.0, res.Rows[0].InventoryAmount)
	assert.Equal(t, 0.0, res.Rows[2].InventoryAmount)
}

func TestValidateGroupByModes(t *testing.T) {
	records := []record.Record{
		{FlowName: "CO2", FacilityID: "42", State: "MN", SubpartName: "C", FlowAmount: 9},
	}
	tests := []struct {
		groupBy GroupBy
		key     []string
	}{
		{ByFlow(false), []string{"CO2"}},
		{ByState(), []string{"MN"}},
		{ByFacility(), []string{"CO2", "42"}},
		{BySubpart(), []string{"CO2", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.groupBy.String(), func(t *testing.T) {
			res, err := newTestEngine().Validate(records, records, tt.groupBy, DefaultTolerance)
			require.NoError(t, err)
			require.Len(t, res.Rows, 1)
			assert.Equal(t, tt.key, res.Rows[0].Key)
			assert.Equal(t, ConclusionIdentical, res.Rows[0].Conclusion)
		})
	}
}

func TestValidateNegativeTolerance(t *testing.T) {
	_, err := newTestEngine().Validate(nil, nil, ByFlow(false), -1)
	assert.Error(t, err)
}

func TestValidatePureFunction(t *testing.T) {
	inventory := []record.Record{inv("A", 90), inv("B", 100)}
	reference := []record.Record{inv("A", 100), inv("C", 1)}

	first, err := newTestEngine().Validate(inventory, reference, ByFlow(false), 5.0)
	require.NoError(t, err)
	second, err := newTestEngine().Validate(inventory, reference, ByFlow(false), 5.0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
