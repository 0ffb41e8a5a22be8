package nei

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/matthewlchambers/standardizedinventories/core/record"
)

// pointRow is one raw NEI point source observation with standardized column
// names, before aggregation. The facility attributes ride along so the
// facility table can be cut from the same pass over the data.
type pointRow struct {
	rec record.Record
	fac record.FacilityRecord
}

// readSourceFile reads one NEI parquet export, projecting only the columns
// the field map names and renaming them to the standardized layout. Amounts
// stay in the source unit (US short tons).
func readSourceFile(path string, fields map[string]string) ([]pointRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("opening parquet %s: %w", path, err)
	}

	// Resolve the projected leaf columns once, up front. A vintage whose
	// export lacks a mapped column is a configuration error.
	schema := pf.Schema()
	names := make(map[int]string, len(fields))
	for std, src := range fields {
		leaf, ok := schema.Lookup(src)
		if !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, src)
		}
		names[leaf.ColumnIndex] = std
	}

	var out []pointRow
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		buf := make([]parquet.Row, 256)
		for {
			n, readErr := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				pr, err := buildRow(row, names)
				if err != nil {
					rows.Close()
					return nil, fmt.Errorf("%s: %w", path, err)
				}
				out = append(out, pr)
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				rows.Close()
				return nil, fmt.Errorf("reading %s: %w", path, readErr)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return out, nil
}

func buildRow(row parquet.Row, names map[int]string) (pointRow, error) {
	var pr pointRow
	for _, v := range row {
		std, ok := names[v.Column()]
		if !ok {
			continue
		}
		switch std {
		case "FlowAmount":
			amount, err := valueFloat(v)
			if err != nil {
				return pr, fmt.Errorf("column FlowAmount: %w", err)
			}
			pr.rec.FlowAmount = amount
		case "ReliabilityScore":
			code, err := valueFloat(v)
			if err != nil {
				return pr, fmt.Errorf("column ReliabilityScore: %w", err)
			}
			if math.IsNaN(code) {
				pr.rec.DataReliability = reliabilityScore(-1)
			} else {
				pr.rec.DataReliability = reliabilityScore(int(code))
			}
		case "Latitude":
			lat, err := valueFloat(v)
			if err != nil {
				return pr, fmt.Errorf("column Latitude: %w", err)
			}
			pr.fac.Latitude = lat
		case "Longitude":
			lon, err := valueFloat(v)
			if err != nil {
				return pr, fmt.Errorf("column Longitude: %w", err)
			}
			pr.fac.Longitude = lon
		case "FacilityName":
			pr.fac.FacilityName = valueString(v)
		case "Address":
			pr.fac.Address = valueString(v)
		case "City":
			pr.fac.City = valueString(v)
		case "Zip":
			pr.fac.Zip = valueString(v)
		case "NAICS":
			pr.fac.NAICS = valueString(v)
		case "County":
			pr.fac.County = valueString(v)
		case "State":
			pr.fac.State = valueString(v)
			pr.rec.State = pr.fac.State
		case "FacilityID":
			pr.fac.FacilityID = valueString(v)
			pr.rec.FacilityID = pr.fac.FacilityID
		default:
			if err := pr.rec.SetField(std, valueString(v)); err != nil {
				return pr, err
			}
		}
	}
	return pr, nil
}

// valueString renders a parquet value as its standardized string form. Nulls
// become empty strings, integer identifiers lose no precision.
func valueString(v parquet.Value) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'f', -1, 32)
	default:
		return v.String()
	}
}

// valueFloat parses a parquet value as a number. Nulls are missing values and
// come back as NaN; textual cells go through the shared amount parser so
// thousands separators do not break the read.
func valueFloat(v parquet.Value) (float64, error) {
	if v.IsNull() {
		return math.NaN(), nil
	}
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Int32:
		return float64(v.Int32()), nil
	case parquet.Int64:
		return float64(v.Int64()), nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return record.ParseAmount(string(v.ByteArray()))
	default:
		return 0, fmt.Errorf("unsupported value kind %s", v.Kind())
	}
}
