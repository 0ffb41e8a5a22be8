package egrid

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matthewlchambers/standardizedinventories/core/aggregate"
	"github.com/matthewlchambers/standardizedinventories/core/config"
	"github.com/matthewlchambers/standardizedinventories/core/metadata"
	"github.com/matthewlchambers/standardizedinventories/core/record"
	"github.com/matthewlchambers/standardizedinventories/core/storage"
	"github.com/matthewlchambers/standardizedinventories/core/units"
)

// sourceCategory is the folder the eGRID workbooks are cached under.
const sourceCategory = "eGRID Data Files"

// Service orchestrates eGRID processing: downloading the workbook for a
// year, generating the inventory outputs, and validating against the US
// totals published in the same workbook.
type Service struct {
	log   *zap.Logger
	cfg   config.SourceConfig
	store *storage.Local
}

// NewService creates a new eGRID service.
func NewService(log *zap.Logger, cfg config.SourceConfig, store *storage.Local) *Service {
	return &Service{log: log, cfg: cfg, store: store}
}

// Download fetches the workbook for the year and caches it locally. Vintages
// published as zip bundles are unpacked to the named workbook inside.
func (s *Service) Download(ctx context.Context, year string) error {
	yearCfg, ok := s.cfg.Years[year]
	if !ok {
		return fmt.Errorf("eGRID year %s is not available", year)
	}

	s.log.Info("downloading eGRID data", zap.String("year", year),
		zap.String("url", yearCfg.DownloadURL))
	body, err := storage.FetchURL(ctx, yearCfg.DownloadURL)
	if err != nil {
		return err
	}

	if strings.HasSuffix(yearCfg.DownloadURL, ".zip") {
		body, err = extractWorkbook(body, yearCfg.FileName)
		if err != nil {
			return err
		}
	}

	path, err := s.workbookPath(year)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	s.log.Info("workbook saved", zap.String("path", path))

	src := metadata.NewSourceInfo()
	src.SourceFileName = yearCfg.FileName
	src.SourceURL = yearCfg.DownloadURL
	src.SourceVersion = yearCfg.FileVersion
	src.SourceAcquisitionTime = time.Now().Format(metadata.DateLayout)
	return metadata.Write(s.workbookMetaPath(path), src)
}

func extractWorkbook(body []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("opening eGRID archive: %w", err)
	}
	for _, zf := range zr.File {
		if zf.Name != name {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			return nil, fmt.Errorf("extracting %s: %w", name, err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("eGRID archive does not contain %s", name)
}

func (s *Service) workbookPath(year string) (string, error) {
	yearCfg, ok := s.cfg.Years[year]
	if !ok {
		return "", fmt.Errorf("eGRID year %s is not available", year)
	}
	return s.store.SourcePath(sourceCategory, yearCfg.FileName)
}

func (s *Service) workbookMetaPath(path string) string {
	return strings.TrimSuffix(path, ".xlsx") + "_metadata.json"
}

// ensureWorkbook returns the local workbook path, downloading it first when
// it is not cached.
func (s *Service) ensureWorkbook(ctx context.Context, year string) (string, error) {
	path, err := s.workbookPath(year)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.Download(ctx, year); err != nil {
			return "", err
		}
	}
	return path, nil
}

// GenerateOutputs parses the workbook for one year and stores the
// flowbyfacility, flow, and facility output tables, then validates against
// the US totals.
func (s *Service) GenerateOutputs(ctx context.Context, year string) error {
	path, err := s.ensureWorkbook(ctx, year)
	if err != nil {
		return err
	}
	name := "eGRID_" + year

	s.log.Info("importing plant level emissions data")
	plant, err := readSheet(path, "PLNT", year)
	if err != nil {
		return err
	}
	flowByFac, facilities, fuels, err := meltPlantSheet(plant)
	if err != nil {
		return err
	}

	s.log.Info("importing unit level data to assess data quality")
	unit, err := readSheet(path, "UNT", year)
	if err != nil {
		return err
	}
	relScores, err := unitReliability(unit)
	if err != nil {
		return err
	}
	applyReliability(flowByFac, relScores, fuels)

	sources := s.workbookSources(path)

	if err := s.storeInventory(name, record.FlowByFacility, flowByFac, sources); err != nil {
		return err
	}

	s.log.Info("generating flows output")
	if err := s.storeInventory(name, record.Flows, distinctFlows(flowByFac), sources); err != nil {
		return err
	}

	s.log.Info("generating facility output")
	meta := metadata.NewFileMeta(name, string(record.Facilities), "parquet")
	meta.Sources = sources
	if _, err := s.store.StoreFacilities(name, facilities, meta); err != nil {
		return err
	}

	return s.ValidateNationalTotals(ctx, flowByFac, year)
}

func (s *Service) storeInventory(name string, format record.Format, rows []record.Record, sources []metadata.SourceInfo) error {
	meta := metadata.NewFileMeta(name, string(format), "parquet")
	meta.Sources = sources
	path, err := s.store.StoreInventory(name, format, rows, meta)
	if err != nil {
		return err
	}
	s.log.Info("stored inventory", zap.String("path", path))
	return nil
}

func (s *Service) workbookSources(path string) []metadata.SourceInfo {
	src := metadata.NewSourceInfo()
	if err := metadata.Read(s.workbookMetaPath(path), &src); err != nil {
		src = metadata.NewSourceInfo()
	}
	return []metadata.SourceInfo{src}
}

// meltPlantSheet turns the wide plant sheet into standardized observations,
// converting each flow column with its unit factor, and cuts the facility
// table from the same pass. Blank flow cells are missing observations and
// melt to nothing.
func meltPlantSheet(s *sheet) ([]record.Record, []record.FacilityRecord, map[string]string, error) {
	attrs := make(map[string]int, len(plantAttributes))
	for std, code := range plantAttributes {
		i, ok := s.columnByCode(code)
		if !ok {
			return nil, nil, nil, fmt.Errorf("plant sheet missing column %s", code)
		}
		attrs[std] = i
	}
	fuelCol, ok := s.columnByCode(primaryFuelCode)
	if !ok {
		return nil, nil, nil, fmt.Errorf("plant sheet missing column %s", primaryFuelCode)
	}
	flowCols := make([]int, len(plantFlows))
	for i, pf := range plantFlows {
		c, ok := s.columnByCode(pf.Code)
		if !ok {
			return nil, nil, nil, fmt.Errorf("plant sheet missing column %s", pf.Code)
		}
		flowCols[i] = c
	}

	var (
		records    []record.Record
		facilities []record.FacilityRecord
		fuels      = make(map[string]string)
	)
	for _, row := range s.rows {
		facilityID := s.cell(row, attrs["FacilityID"])
		if facilityID == "" {
			continue
		}
		state := s.cell(row, attrs["State"])
		fuels[facilityID] = s.cell(row, fuelCol)

		fac := record.FacilityRecord{
			FacilityID:   facilityID,
			FacilityName: s.cell(row, attrs["FacilityName"]),
			State:        state,
			County:       s.cell(row, attrs["County"]),
		}
		if v, err := record.ParseAmount(s.cell(row, attrs["Latitude"])); err == nil {
			fac.Latitude = v
		}
		if v, err := record.ParseAmount(s.cell(row, attrs["Longitude"])); err == nil {
			fac.Longitude = v
		}
		facilities = append(facilities, fac)

		for i, pf := range plantFlows {
			text := s.cell(row, flowCols[i])
			if text == "" {
				continue
			}
			amount, err := record.ParseAmount(text)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("facility %s, flow %s: %w", facilityID, pf.Name, err)
			}
			factor, err := units.Factor(pf.Unit)
			if err != nil {
				return nil, nil, nil, err
			}
			records = append(records, record.Record{
				FacilityID:  facilityID,
				FlowName:    pf.Name,
				State:       state,
				Compartment: flowCompartments[pf.Name],
				Unit:        canonicalUnit(pf.Unit),
				FlowAmount:  amount * factor,
			})
		}
	}

	sortByFacility(records)
	return records, facilities, fuels, nil
}

// sortByFacility orders observations by facility, numerically where the
// identifiers are numeric.
func sortByFacility(records []record.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, errA := strconv.Atoi(records[i].FacilityID)
		b, errB := strconv.Atoi(records[j].FacilityID)
		if errA == nil && errB == nil {
			return a < b
		}
		return records[i].FacilityID < records[j].FacilityID
	})
}

// unitReliability derives per-facility reliability scores for the flows the
// unit sheet discloses estimation sources for. Scores are weighted by the
// unit's flow amount; facilities whose units report no amounts drop out and
// fall back to the worst score downstream.
func unitReliability(s *sheet) (map[string]float64, error) {
	facCol, ok := s.columnByCode("ORISPL")
	if !ok {
		return nil, fmt.Errorf("unit sheet missing column ORISPL")
	}

	var observations []record.Record
	for _, uf := range unitFlows {
		amountCol, ok := s.columnByCode(uf.AmountCode)
		if !ok {
			return nil, fmt.Errorf("unit sheet missing column %s", uf.AmountCode)
		}
		sourceCol, ok := s.columnByCode(uf.SourceCode)
		if !ok {
			return nil, fmt.Errorf("unit sheet missing column %s", uf.SourceCode)
		}
		for _, row := range s.rows {
			facilityID := s.cell(row, facCol)
			if facilityID == "" {
				continue
			}
			amount, err := record.ParseAmount(s.cell(row, amountCol))
			if err != nil {
				return nil, fmt.Errorf("facility %s, flow %s: %w", facilityID, uf.Name, err)
			}
			observations = append(observations, record.Record{
				FacilityID:      facilityID,
				FlowName:        uf.Name,
				FlowAmount:      amount,
				DataReliability: reliabilityFromSource(s.cell(row, sourceCol)),
			})
		}
	}

	grouped, err := aggregate.WithReliability(observations, []string{"FacilityID", "FlowName"})
	if err != nil {
		return nil, err
	}
	scores := make(map[string]float64, len(grouped))
	for _, g := range grouped {
		scores[g.FacilityID+"\x1f"+g.FlowName] = g.DataReliability
	}
	return scores, nil
}

// applyReliability assigns the data reliability score of every observation:
// electricity is metered, methane and nitrous oxide depend on the plant's
// primary fuel, and the unit sheet scores cover the rest.
func applyReliability(records []record.Record, scores map[string]float64, fuels map[string]string) {
	for i := range records {
		switch records[i].FlowName {
		case "Electricity":
			records[i].DataReliability = 1
		case "Methane", "Nitrous oxide":
			records[i].DataReliability = ghgReliability(fuels[records[i].FacilityID])
		default:
			if s, ok := scores[records[i].FacilityID+"\x1f"+records[i].FlowName]; ok {
				records[i].DataReliability = s
			} else {
				records[i].DataReliability = 5
			}
		}
	}
}

// distinctFlows cuts the unique flow list from the observations, sorted by
// flow name.
func distinctFlows(records []record.Record) []record.Record {
	seen := make(map[string]bool)
	flows := make([]record.Record, 0)
	for _, r := range records {
		k := r.FlowName + "\x1f" + r.Compartment
		if seen[k] {
			continue
		}
		seen[k] = true
		flows = append(flows, record.Record{
			FlowName:    r.FlowName,
			Compartment: r.Compartment,
			Unit:        r.Unit,
		})
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].FlowName < flows[j].FlowName })
	return flows
}
