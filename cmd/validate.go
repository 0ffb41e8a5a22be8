package cmd

import (
	"fmt"

	"github.com/matthewlchambers/standardizedinventories/core/storage"
	"github.com/matthewlchambers/standardizedinventories/core/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	validateInventoryFile   string
	validateReferenceFile   string
	validateInventoryName   string
	validateYear            string
	validateGroupByMode     string
	validateWithCompartment bool
	validateTolerance       float64
	validateOutputDir       string
)

// validateCmd reconciles any standardized inventory CSV against a reference
// totals CSV, outside the per-source pipelines.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Reconcile an inventory dataset against reference totals",
	Long: `Validate compares an inventory CSV against an independently published
reference CSV, grouping both on a chosen key and classifying the percent
difference of every group.

Examples:
  # Compare against national totals per flow
  stewi validate --inventory fbf.csv --reference totals.csv --name NEI --data-year 2017

  # Group by flow and compartment with a custom tolerance
  stewi validate --inventory fbf.csv --reference totals.csv \
    --name eGRID --data-year 2018 --group-by flow --include-compartment --tolerance 2.5`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateInventoryFile, "inventory", "", "inventory dataset CSV")
	f.StringVar(&validateReferenceFile, "reference", "", "reference totals CSV")
	f.StringVar(&validateInventoryName, "name", "", "inventory acronym used in report names")
	f.StringVar(&validateYear, "data-year", "", "data year used in report names")
	f.StringVar(&validateGroupByMode, "group-by", "flow", "grouping key: flow, state, facility, or subpart")
	f.BoolVar(&validateWithCompartment, "include-compartment", false, "widen the flow grouping with Compartment")
	f.Float64Var(&validateTolerance, "tolerance", validate.DefaultTolerance, "maximum acceptable percent difference")
	f.StringVar(&validateOutputDir, "output", "", "report directory (defaults to the storage validation directory)")

	_ = validateCmd.MarkFlagRequired("inventory")
	_ = validateCmd.MarkFlagRequired("reference")
	_ = validateCmd.MarkFlagRequired("name")
	_ = validateCmd.MarkFlagRequired("data-year")

	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	groupBy, err := validate.ParseGroupBy(validateGroupByMode, validateWithCompartment)
	if err != nil {
		return err
	}

	inventory, err := storage.ReadRecordsCSV(validateInventoryFile)
	if err != nil {
		return fmt.Errorf("reading inventory dataset: %w", err)
	}
	reference, err := storage.ReadRecordsCSV(validateReferenceFile)
	if err != nil {
		return fmt.Errorf("reading reference dataset: %w", err)
	}

	engine := validate.NewEngine(a.log)
	res, err := engine.Validate(inventory, reference, groupBy, validateTolerance)
	if err != nil {
		return err
	}
	a.log.Info("validation complete",
		zap.Int("groups", len(res.Rows)), zap.Int("potential_issues", res.ErrorCount))

	outputDir := validateOutputDir
	if outputDir == "" {
		outputDir, err = a.store.ValidationDir()
		if err != nil {
			return err
		}
	}
	ledgerPath, err := a.store.LedgerPath()
	if err != nil {
		return err
	}
	ledger, err := validate.LoadLedger(ledgerPath)
	if err != nil {
		return err
	}
	return validate.WriteResult(a.log, outputDir, ledger, validateInventoryName, validateYear, res)
}
