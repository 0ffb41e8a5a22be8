package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewlchambers/standardizedinventories/core/record"
)

func TestReadRecordsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totals.csv")
	data := "FlowName,Compartment,FlowAmount,Unit\n" +
		"Carbon dioxide,air,\"1,234.5\",tons\n" +
		"Methane,air,42,lbs\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	got, err := ReadRecordsCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Carbon dioxide", got[0].FlowName)
	assert.Equal(t, "tons", got[0].Unit)
	// The comma-grouped text survives until parsing.
	assert.Equal(t, "1,234.5", got[0].FlowAmountText)
	amount, err := got[0].Amount()
	require.NoError(t, err)
	assert.Equal(t, 1234.5, amount)
}

func TestReadRecordsCSVUnitSuffixedAmountHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totals.csv")
	data := "FlowID,FlowName,FlowAmount[kg]\nCO2,Carbon dioxide,1000\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	got, err := ReadRecordsCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1000", got[0].FlowAmountText)
	assert.Equal(t, "CO2", got[0].FlowID)
}

func TestWriteRecordsCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	records := []record.Record{
		{FlowName: "Heat", Compartment: "input", FlowAmount: 1055.056, Unit: "MJ"},
		{FlowName: "Sulfur dioxide", Compartment: "air", FlowAmount: 12, Unit: "kg"},
	}
	cols := []string{"FlowName", "Compartment", "FlowAmount", "Unit"}
	require.NoError(t, WriteRecordsCSV(path, records, cols))

	got, err := ReadRecordsCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Heat", got[0].FlowName)
	amount, err := got[0].Amount()
	require.NoError(t, err)
	assert.Equal(t, 1055.056, amount)
}

func TestReadRecordsCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := ReadRecordsCSV(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
