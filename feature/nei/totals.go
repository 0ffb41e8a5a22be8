package nei

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/matthewlchambers/standardizedinventories/core/aggregate"
	"github.com/matthewlchambers/standardizedinventories/core/record"
	"github.com/matthewlchambers/standardizedinventories/core/storage"
	"github.com/matthewlchambers/standardizedinventories/core/units"
	"github.com/matthewlchambers/standardizedinventories/core/validate"
)

// Column headings of the Facility-level by Pollutant files vary across
// vintages; each standardized column accepts any of its known spellings.
var totalsHeaders = map[string][]string{
	"FlowID":     {"pollutant code", "pollutant_cd"},
	"FlowName":   {"pollutant desc", "pollutant_desc", "description"},
	"FlowAmount": {"total emissions", "total_emissions"},
	"UOM":        {"emissions uom", "uom"},
}

// GenerateNationalTotals downloads the published Facility-level by Pollutant
// summary for the year, sums it to national level per flow in kilograms, and
// writes NEI_<year>_NationalTotals.csv along with its ledger entry.
func (s *Service) GenerateNationalTotals(ctx context.Context, year string) error {
	version, ok := s.cfg.NationalVersion[year]
	if !ok {
		return fmt.Errorf("national totals do not exist for year %s", year)
	}
	url := strings.ReplaceAll(s.cfg.NationalURL, "__year__", year)
	url = strings.ReplaceAll(url, "__version__", version)

	s.log.Info("downloading national totals", zap.String("url", url))
	body, err := storage.FetchURL(ctx, url)
	if err != nil {
		return err
	}

	records, err := parseTotalsArchive(body)
	if err != nil {
		return err
	}
	totals, err := aggregate.Sum(records, []string{"FlowID", "FlowName"})
	if err != nil {
		return err
	}

	dir, err := s.store.DataDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "NEI_"+year+"_NationalTotals.csv")
	s.log.Info("saving national totals", zap.String("path", path))
	if err := storage.WriteRecordsCSV(path, totals, []string{"FlowID", "FlowName", "FlowAmount[kg]"}); err != nil {
		return err
	}

	return s.recordTotalsSource(year, version, url)
}

// parseTotalsArchive reads every CSV inside the downloaded zip bundle and
// converts each facility row to kilograms. Amounts reported in pounds use
// the pound factor, everything else is short tons.
func parseTotalsArchive(body []byte) ([]record.Record, error) {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("opening national totals archive: %w", err)
	}

	var records []record.Record
	for _, zf := range zr.File {
		if !strings.HasSuffix(zf.Name, ".csv") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", zf.Name, err)
		}
		rows, err := csv.NewReader(rc).ReadAll()
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", zf.Name, err)
		}
		if len(rows) == 0 {
			continue
		}

		col, err := matchTotalsColumns(rows[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", zf.Name, err)
		}
		for _, row := range rows[1:] {
			amount, err := record.ParseAmount(row[col["FlowAmount"]])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", zf.Name, err)
			}
			if row[col["UOM"]] == "LB" {
				amount *= units.LbToKg
			} else {
				amount *= units.USTonToKg
			}
			records = append(records, record.Record{
				FlowID:     row[col["FlowID"]],
				FlowName:   row[col["FlowName"]],
				FlowAmount: amount,
			})
		}
	}
	return records, nil
}

// matchTotalsColumns resolves the standardized columns against the header
// row, accepting any known spelling.
func matchTotalsColumns(header []string) (map[string]int, error) {
	col := make(map[string]int, len(totalsHeaders))
	for std, variants := range totalsHeaders {
		for i, h := range header {
			for _, v := range variants {
				if strings.EqualFold(strings.TrimSpace(h), v) {
					col[std] = i
				}
			}
		}
		if _, ok := col[std]; !ok {
			return nil, fmt.Errorf("missing column %s (any of %v)", std, variants)
		}
	}
	return col, nil
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
		Inventory: "NEI",
		Version:   version,
		Year:      year,
		Name:      "NEI Data",
		URL:       url,
		Criteria: "Data Summaries tab, Facility-level by Pollutant zip file " +
			"download, summed to national level",
	})
	return ledger.Save(ledgerPath)
}

// ValidateNationalTotals reconciles a flowbyfacility dataset against the
// national totals of the year, generating the totals file first when it is
// not already cached.
func (s *Service) ValidateNationalTotals(ctx context.Context, flowByFacility []record.Record, year string) error {
	s.log.Info("validating flow by facility against national totals")

	dir, err := s.store.DataDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "NEI_"+year+"_NationalTotals.csv")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.GenerateNationalTotals(ctx, year); err != nil {
			return err
		}
	} else {
		s.log.Info("using already processed national totals validation file")
	}

	totals, err := storage.ReadRecordsCSV(path)
	if err != nil {
		return err
	}

	engine := validate.NewEngine(s.log)
	res, err := engine.Validate(flowByFacility, totals, validate.ByFlow(false), validate.DefaultTolerance)
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
	return validate.WriteResult(s.log, validationDir, ledger, "NEI", year, res)
}
