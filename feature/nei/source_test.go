package nei

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewlchambers/standardizedinventories/core/storage"
)

// export2017 mirrors the column layout of the 2017 EIS point source export.
type export2017 struct {
	FacilityID  string  `parquet:"eis facility id"`
	SiteName    string  `parquet:"site name"`
	Address     string  `parquet:"address"`
	City        string  `parquet:"city"`
	State       string  `parquet:"st usps cd"`
	Zip         string  `parquet:"zip code"`
	Latitude    float64 `parquet:"site latitude"`
	Longitude   float64 `parquet:"site longitude"`
	NAICS       string  `parquet:"naics code"`
	County      string  `parquet:"county"`
	FlowName    string  `parquet:"pollutant desc"`
	FlowID      string  `parquet:"pollutant code"`
	Emissions   float64 `parquet:"total emissions"`
	SCC         string  `parquet:"scc"`
	Reliability float64 `parquet:"reliability score"`
}

func TestReadSourceFile(t *testing.T) {
	rows := []export2017{
		{
			FacilityID: "1018", SiteName: "Acme Power", Address: "1 Plant Rd",
			City: "Duluth", State: "MN", Zip: "55802",
			Latitude: 46.78, Longitude: -92.1, NAICS: "221112", County: "St. Louis",
			FlowName: "Nitrogen Oxides", FlowID: "NOX", Emissions: 12.5,
			SCC: "10100222", Reliability: 1,
		},
		{
			FacilityID: "1018", SiteName: "Acme Power", Address: "1 Plant Rd",
			City: "Duluth", State: "MN", Zip: "55802",
			Latitude: 46.78, Longitude: -92.1, NAICS: "221112", County: "St. Louis",
			FlowName: "Sulfur Dioxide", FlowID: "SO2", Emissions: 3.25,
			SCC: "10100222", Reliability: 7,
		},
	}
	path := filepath.Join(t.TempDir(), "point_1.parquet")
	require.NoError(t, storage.WriteParquet(path, rows))

	fields, err := fieldsForYear("2017")
	require.NoError(t, err)

	got, err := readSourceFile(path, fields)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "1018", got[0].rec.FacilityID)
	assert.Equal(t, "Nitrogen Oxides", got[0].rec.FlowName)
	assert.Equal(t, "NOX", got[0].rec.FlowID)
	assert.Equal(t, "10100222", got[0].rec.Process)
	assert.Equal(t, "MN", got[0].rec.State)
	assert.Equal(t, 12.5, got[0].rec.FlowAmount)
	assert.Equal(t, 1.0, got[0].rec.DataReliability)
	assert.Equal(t, 5.0, got[1].rec.DataReliability)

	assert.Equal(t, "Acme Power", got[0].fac.FacilityName)
	assert.Equal(t, "Duluth", got[0].fac.City)
	assert.Equal(t, "55802", got[0].fac.Zip)
	assert.Equal(t, 46.78, got[0].fac.Latitude)
}

func TestReadSourceFileMissingColumn(t *testing.T) {
	type truncated struct {
		FacilityID string `parquet:"eis facility id"`
	}
	path := filepath.Join(t.TempDir(), "point_1.parquet")
	require.NoError(t, storage.WriteParquet(path, []truncated{{FacilityID: "1"}}))

	fields, err := fieldsForYear("2017")
	require.NoError(t, err)

	_, err = readSourceFile(path, fields)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}
