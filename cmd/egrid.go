package cmd

import (
	"context"

	"github.com/matthewlchambers/standardizedinventories/core/logger"
	"github.com/matthewlchambers/standardizedinventories/feature/egrid"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var egridYears []string

// egridCmd is the parent command for eGRID operations.
var egridCmd = &cobra.Command{
	Use:   "egrid",
	Short: "Process eGRID power plant data",
	Long: `Download and standardize eGRID workbooks.

The download command caches the workbook for each requested year. The
process command generates the flowbyfacility, flow, and facility output
tables and validates against the published US totals.`,
}

var egridDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the eGRID workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEGRID(func(ctx context.Context, svc *egrid.Service, year string) error {
			return svc.Download(ctx, year)
		})
	},
}

var egridProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Generate inventory outputs and validate against US totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEGRID(func(ctx context.Context, svc *egrid.Service, year string) error {
			return svc.GenerateOutputs(ctx, year)
		})
	},
}

var egridTotalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Extract and store US totals for validation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEGRID(func(ctx context.Context, svc *egrid.Service, year string) error {
			return svc.GenerateNationalTotals(ctx, year)
		})
	},
}

func init() {
	egridCmd.PersistentFlags().StringSliceVarP(&egridYears, "year", "y", nil, "eGRID year(s) to retrieve")
	_ = egridCmd.MarkPersistentFlagRequired("year")

	egridCmd.AddCommand(egridDownloadCmd)
	egridCmd.AddCommand(egridProcessCmd)
	egridCmd.AddCommand(egridTotalsCmd)
	RootCmd.AddCommand(egridCmd)
}

func runEGRID(op func(context.Context, *egrid.Service, string) error) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}

	for _, year := range egridYears {
		if !a.cfg.EGRID.HasYear(year) {
			a.log.Error("requested eGRID year is not available", zap.String("year", year))
			continue
		}
		l := logger.WithInventory(a.log, "eGRID", year)
		svc := egrid.NewService(l, a.cfg.EGRID, a.store)
		if err := op(ctx, svc, year); err != nil {
			return err
		}
	}
	return nil
}
