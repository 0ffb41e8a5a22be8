package egrid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, sheetName string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet(sheetName)
	require.NoError(t, err)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheetName, cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "egrid2018_data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "PLNT18", sheetName("PLNT", "2018"))
	assert.Equal(t, "US16", sheetName("US", "2016"))
}

func TestReadSheet(t *testing.T) {
	path := writeTestWorkbook(t, "PLNT18", [][]any{
		{"Plant name", "DOE/EIA ORIS plant\nor facility code", "Plant annual NOx\nemissions (tons)"},
		{"PNAME", "ORISPL", "PLNOXAN"},
		{"Barry", "3", "1250.5"},
		{"Greene County", "10", ""},
	})

	s, err := readSheet(path, "PLNT", "2018")
	require.NoError(t, err)

	// Line breaks in header cells collapse to spaces.
	assert.Equal(t, "DOE/EIA ORIS plant or facility code", s.fields[1])
	assert.Equal(t, "Plant annual NOx emissions (tons)", s.fields[2])

	i, ok := s.columnByCode("PLNOXAN")
	require.True(t, ok)
	assert.Equal(t, 2, i)

	require.Len(t, s.rows, 2)
	assert.Equal(t, "1250.5", s.cell(s.rows[0], i))
	assert.Equal(t, "", s.cell(s.rows[1], i))
}

func TestReadSheetMissing(t *testing.T) {
	path := writeTestWorkbook(t, "PLNT18", [][]any{
		{"Plant name"},
		{"PNAME"},
	})

	_, err := readSheet(path, "UNT", "2018")
	assert.Error(t, err)
}
