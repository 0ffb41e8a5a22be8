package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matthewlchambers/standardizedinventories/core/record"
)

// ReadRecordsCSV loads a tabular dataset of standardized records from a CSV
// file. Columns are matched by header name; unknown columns are ignored.
// Flow amounts are kept as text so that comma-grouped values and infinities
// survive until the validation engine parses them.
func ReadRecordsCSV(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		// Some totals files label the amount column with its unit.
		if h == "FlowAmount[kg]" {
			h = "FlowAmount"
		}
		col[h] = i
	}

	get := func(row []string, name string) string {
		if i, ok := col[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	records := make([]record.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := record.Record{
			FacilityID:     get(row, "FacilityID"),
			FlowName:       get(row, "FlowName"),
			FlowID:         get(row, "FlowID"),
			Compartment:    get(row, "Compartment"),
			State:          get(row, "State"),
			SubpartName:    get(row, "SubpartName"),
			Process:        get(row, "Process"),
			Unit:           get(row, "Unit"),
			Source:         get(row, "Source"),
			FlowAmountText: get(row, "FlowAmount"),
		}
		if s := get(row, "DataReliability"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing DataReliability %q in %s: %w", s, path, err)
			}
			rec.DataReliability = v
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecordsCSV writes the chosen columns of a record dataset as CSV.
// FlowAmount and DataReliability render numerically; the remaining columns
// render their key values.
func WriteRecordsCSV(path string, records []record.Record, columns []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			switch c {
			case "FlowAmount", "FlowAmount[kg]":
				amount, err := rec.Amount()
				if err != nil {
					return err
				}
				row[i] = strconv.FormatFloat(amount, 'f', -1, 64)
			case "DataReliability":
				row[i] = strconv.FormatFloat(rec.DataReliability, 'f', -1, 64)
			default:
				v, err := rec.Field(c)
				if err != nil {
					return err
				}
				row[i] = v
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
