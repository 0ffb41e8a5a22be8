package egrid

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/matthewlchambers/standardizedinventories/core/record"
	"github.com/matthewlchambers/standardizedinventories/core/storage"
	"github.com/matthewlchambers/standardizedinventories/core/units"
	"github.com/matthewlchambers/standardizedinventories/core/validate"
)

// usTotalColumns maps the US total sheet columns onto flows and the source
// units their values carry. Steam is absent from the US sheet and is summed
// from the plant sheet instead.
var usTotalColumns = []struct {
	Code string
	Name string
	Unit string
}{
	{"USHTIANT", "Heat", "MMBtu"},
	{"USNGENAN", "Electricity", "MWh"},
	{"USNOXAN", "Nitrogen oxides", "tons"},
	{"USSO2AN", "Sulfur dioxide", "tons"},
	{"USCO2AN", "Carbon dioxide", "tons"},
	{"USCH4AN", "Methane", "lbs"},
	{"USN2OAN", "Nitrous oxide", "lbs"},
}

// GenerateNationalTotals extracts the published US totals from the workbook
// and writes eGRID_<year>_NationalTotals.csv in source units, along with its
// ledger entry. Amounts stay unconverted so the file mirrors what EPA
// publishes; conversion happens at validation time.
func (s *Service) GenerateNationalTotals(ctx context.Context, year string) error {
	yearCfg, ok := s.cfg.Years[year]
	if !ok {
		return fmt.Errorf("eGRID year %s is not available", year)
	}
	path, err := s.ensureWorkbook(ctx, year)
	if err != nil {
		return err
	}
	s.log.Info("processing eGRID national totals", zap.String("year", year))

	us, err := readSheet(path, "US", year)
	if err != nil {
		return err
	}
	if len(us.rows) == 0 {
		return fmt.Errorf("US total sheet of %s has no data", path)
	}

	totals := make([]record.Record, 0, len(usTotalColumns)+1)
	for _, c := range usTotalColumns {
		i, ok := us.columnByCode(c.Code)
		if !ok {
			return fmt.Errorf("US total sheet missing column %s", c.Code)
		}
		amount, err := record.ParseAmount(us.cell(us.rows[0], i))
		if err != nil {
			return fmt.Errorf("US total %s: %w", c.Name, err)
		}
		totals = append(totals, record.Record{
			FlowName:    c.Name,
			Compartment: flowCompartments[c.Name],
			FlowAmount:  amount,
			Unit:        c.Unit,
		})
	}

	steam, err := s.sumPlantSteam(path, year)
	if err != nil {
		return err
	}
	totals = append(totals, record.Record{
		FlowName:    "Steam",
		Compartment: flowCompartments["Steam"],
		FlowAmount:  steam,
		Unit:        "MMBtu",
	})

	dir, err := s.store.DataDir()
	if err != nil {
		return err
	}
	out := filepath.Join(dir, "eGRID_"+year+"_NationalTotals.csv")
	s.log.Info("saving national totals", zap.String("path", out))
	if err := storage.WriteRecordsCSV(out, totals, []string{"FlowName", "Compartment", "FlowAmount", "Unit"}); err != nil {
		return err
	}

	return s.recordTotalsSource(year, yearCfg.FileVersion, yearCfg.DownloadURL)
}

// sumPlantSteam totals useful thermal output across every plant.
func (s *Service) sumPlantSteam(path, year string) (float64, error) {
	plant, err := readSheet(path, "PLNT", year)
	if err != nil {
		return 0, err
	}
	col, ok := plant.columnByCode("USETHRMO")
	if !ok {
		return 0, fmt.Errorf("plant sheet missing column USETHRMO")
	}
	var total float64
	for _, row := range plant.rows {
		v, err := record.ParseAmount(plant.cell(row, col))
		if err != nil {
			return 0, fmt.Errorf("summing steam: %w", err)
		}
		total += v
	}
	return total, nil
}

func (s *Service) recordTotalsSource(year, version, url string) error {
	ledgerPath, err := s.store.LedgerPath()
	if err != nil {
		return err
	}
	ledger, err := validate.LoadLedger(ledgerPath)
	if err != nil {
		return err
	}
	ledger.Upsert(validate.SourceRecord{
		Inventory: "eGRID",
		Version:   version,
		Year:      year,
		Name:      "eGRID Data Files",
		URL:       url,
		Criteria:  "Extracted from US Total tab, or for steam, summed from PLNT tab",
	})
	return ledger.Save(ledgerPath)
}

// ValidateNationalTotals reconciles a flowbyfacility dataset against the US
// totals of the year, converting the reference amounts from source units to
// the canonical basis first.
func (s *Service) ValidateNationalTotals(ctx context.Context, flowByFacility []record.Record, year string) error {
	dir, err := s.store.DataDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "eGRID_"+year+"_NationalTotals.csv")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.GenerateNationalTotals(ctx, year); err != nil {
			return err
		}
	}

	s.log.Info("validating data against national totals")
	totals, err := storage.ReadRecordsCSV(path)
	if err != nil {
		return err
	}
	if err := convertTotals(totals); err != nil {
		return err
	}

	engine := validate.NewEngine(s.log)
	res, err := engine.Validate(flowByFacility, totals, validate.ByFlow(true), validate.DefaultTolerance)
	if err != nil {
		return err
	}

	validationDir, err := s.store.ValidationDir()
	if err != nil {
		return err
	}
	ledgerPath, err := s.store.LedgerPath()
	if err != nil {
		return err
	}
	ledger, err := validate.LoadLedger(ledgerPath)
	if err != nil {
		return err
	}
	return validate.WriteResult(s.log, validationDir, ledger, "eGRID", year, res)
}

// convertTotals converts reference rows from their source unit to the
// canonical basis in place, dropping the unit label afterwards.
func convertTotals(totals []record.Record) error {
	for i := range totals {
		amount, err := totals[i].Amount()
		if err != nil {
			return err
		}
		factor, err := units.Factor(totals[i].Unit)
		if err != nil {
			return fmt.Errorf("flow %s: %w", totals[i].FlowName, err)
		}
		totals[i].FlowAmount = amount * factor
		totals[i].FlowAmountText = ""
		totals[i].Unit = ""
	}
	return nil
}
