package validate

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/matthewlchambers/standardizedinventories/core/metadata"
)

// WriteResult persists a validation result to dir as <inventory>_<year>.csv
// and writes the matching validation set metadata next to it. A missing
// ledger entry for (inventory, year) is logged as an error and only skips
// the metadata artifact; the report CSV is always written.
func WriteResult(log *zap.Logger, dir string, ledger *Ledger, inventory, year string, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating validation directory: %w", err)
	}

	csvPath := filepath.Join(dir, inventory+"_"+year+".csv")
	log.Info("writing validation result", zap.String("path", csvPath))
	if err := writeResultCSV(csvPath, res); err != nil {
		return err
	}

	src, ok := ledger.Find(inventory, year)
	if !ok {
		log.Error("no validation metadata found",
			zap.String("inventory", inventory), zap.String("year", year))
		return nil
	}

	info := metadata.NewSourceInfo()
	info.SourceFileName = src.Name
	info.SourceVersion = src.Version
	info.SourceURL = src.URL
	info.SourceAcquisitionTime = src.DateAcquired
	info.Criteria = src.Criteria

	metaPath := filepath.Join(dir, inventory+"_"+year+"_validationset_metadata.json")
	return metadata.Write(metaPath, info)
}

func writeResultCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing validation result: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append(append([]string{}, res.Columns...),
		"Inventory_Amount", "Reference_Amount", "Percent_Difference", "Conclusion")
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range res.Rows {
		line := append(append([]string{}, row.Key...),
			formatAmount(row.InventoryAmount),
			formatAmount(row.ReferenceAmount),
			formatAmount(row.PercentDifference),
			row.Conclusion)
		if err := w.Write(line); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatAmount renders a float for CSV output; NaN becomes an empty cell.
func formatAmount(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
