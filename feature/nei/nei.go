package nei

import (
	"context"
	"fmt"
	"os"
	"sort"
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

// sourceCategory is the folder the raw parquet exports are cached under.
const sourceCategory = "NEI Data Files"

// Service orchestrates NEI processing: fetching the point source exports,
// standardizing them, generating the inventory outputs, and validating
// against national totals.
type Service struct {
	log     *zap.Logger
	cfg     config.SourceConfig
	store   *storage.Local
	commons *storage.DataCommons
}

// NewService creates a new NEI service.
func NewService(log *zap.Logger, cfg config.SourceConfig, store *storage.Local, commons *storage.DataCommons) *Service {
	return &Service{log: log, cfg: cfg, store: store, commons: commons}
}

// Standardize reads every point source export configured for the year,
// downloading missing files from the data commons first, and returns the
// standardized observations together with the deduplicated facility table
// and the source provenance of each file.
func (s *Service) Standardize(ctx context.Context, year string) ([]record.Record, []record.FacilityRecord, []metadata.SourceInfo, error) {
	yearCfg, ok := s.cfg.Years[year]
	if !ok {
		return nil, nil, nil, fmt.Errorf("no NEI configuration for year %s", year)
	}
	fields, err := fieldsForYear(year)
	if err != nil {
		return nil, nil, nil, err
	}

	var (
		records    []record.Record
		facilities []record.FacilityRecord
		sources    []metadata.SourceInfo
		seen       = make(map[string]bool)
	)
	compartment := record.SingleCompartment["NEI"]

	for _, file := range yearCfg.Files {
		path, src, err := s.fetchSource(ctx, file)
		if err != nil {
			return nil, nil, nil, err
		}
		sources = append(sources, src)

		s.log.Info("reading NEI data", zap.String("file", path))
		rows, err := readSourceFile(path, fields)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, pr := range rows {
			rec := pr.rec
			rec.FlowAmount *= units.USTonToKg
			rec.Unit = "kg"
			rec.Compartment = compartment
			rec.Source = "Point"
			records = append(records, rec)

			if !seen[pr.fac.FacilityID] {
				seen[pr.fac.FacilityID] = true
				facilities = append(facilities, pr.fac)
			}
		}
		s.log.Debug("records so far", zap.Int("count", len(records)))
	}
	return records, facilities, sources, nil
}

// fetchSource makes sure the named export is cached locally, downloading it
// from the data commons when missing, and returns its path and provenance.
func (s *Service) fetchSource(ctx context.Context, file string) (string, metadata.SourceInfo, error) {
	path, err := s.store.SourcePath(sourceCategory, file)
	if err != nil {
		return "", metadata.SourceInfo{}, err
	}
	metaPath := strings.TrimSuffix(path, ".parquet") + "_metadata.json"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.log.Info("source file not found, downloading",
			zap.String("file", file), zap.String("category", sourceCategory))
		if err := s.commons.Fetch(ctx, sourceCategory+"/"+file, path); err != nil {
			return "", metadata.SourceInfo{}, err
		}
		src := metadata.NewSourceInfo()
		src.SourceType = "Data Commons"
		src.SourceFileName = file
		src.SourceAcquisitionTime = time.Now().Format(metadata.DateLayout)
		if err := metadata.Write(metaPath, src); err != nil {
			return "", metadata.SourceInfo{}, err
		}
		return path, src, nil
	}

	src := metadata.NewSourceInfo()
	if err := metadata.Read(metaPath, &src); err != nil {
		// A file cached without provenance keeps the NA defaults.
		src = metadata.NewSourceInfo()
		src.SourceFileName = file
	}
	return path, src, nil
}

// GenerateOutputs standardizes one NEI year and stores the four inventory
// output tables, then validates against national totals for the years that
// publish them.
func (s *Service) GenerateOutputs(ctx context.Context, year string) error {
	points, facilities, sources, err := s.Standardize(ctx, year)
	if err != nil {
		return err
	}
	name := "NEI_" + year

	s.log.Info("generating flow by facility output")
	fbf, err := aggregate.WithReliability(points, []string{"FacilityID", "FlowName", "Compartment"})
	if err != nil {
		return err
	}
	if err := s.storeInventory(name, record.FlowByFacility, fbf, sources); err != nil {
		return err
	}
	s.log.Debug("flow by facility rows", zap.Int("count", len(fbf)))

	s.log.Info("generating flow by SCC output")
	fbp, err := aggregate.WithReliability(points, []string{"FacilityID", "FlowName", "Compartment", "Process"})
	if err != nil {
		return err
	}
	for i := range fbp {
		fbp[i].ProcessType = "SCC"
	}
	if err := s.storeInventory(name, record.FlowByProcess, fbp, sources); err != nil {
		return err
	}

	s.log.Info("generating flows output")
	flows := distinctFlows(points)
	if err := s.storeInventory(name, record.Flows, flows, sources); err != nil {
		return err
	}

	s.log.Info("generating facility output")
	meta := metadata.NewFileMeta(name, string(record.Facilities), "parquet")
	meta.Sources = sources
	if _, err := s.store.StoreFacilities(name, facilities, meta); err != nil {
		return err
	}

	if _, ok := s.cfg.NationalVersion[year]; ok {
		return s.ValidateNationalTotals(ctx, fbf, year)
	}
	s.log.Info("no validation performed", zap.String("year", year))
	return nil
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

// distinctFlows cuts the unique flow list from the standardized observations,
// sorted by flow name.
func distinctFlows(points []record.Record) []record.Record {
	seen := make(map[string]bool)
	flows := make([]record.Record, 0)
	for _, p := range points {
		k := p.FlowName + "\x1f" + p.FlowID + "\x1f" + p.Compartment
		if seen[k] {
			continue
		}
		seen[k] = true
		flows = append(flows, record.Record{
			FlowName:    p.FlowName,
			FlowID:      p.FlowID,
			Compartment: p.Compartment,
			Unit:        "kg",
		})
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].FlowName < flows[j].FlowName })
	return flows
}
