package cmd

import (
	"context"

	"github.com/matthewlchambers/standardizedinventories/core/logger"
	"github.com/matthewlchambers/standardizedinventories/feature/nei"

	"github.com/spf13/cobra"
)

var neiYears []string

// neiCmd is the parent command for National Emissions Inventory operations.
var neiCmd = &cobra.Command{
	Use:   "nei",
	Short: "Process the National Emissions Inventory",
	Long: `Download and standardize NEI point source data.

The process command generates the flowbyfacility, flowbyprocess, flow, and
facility output tables for each requested year, and validates against
national totals for the years that publish them.`,
}

var neiProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Generate inventory outputs and validate against national totals",
	RunE:  runNEIProcess,
}

var neiTotalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Download and store national totals for validation",
	RunE:  runNEITotals,
}

func init() {
	neiCmd.PersistentFlags().StringSliceVarP(&neiYears, "year", "y", nil, "NEI year(s) to retrieve")
	_ = neiCmd.MarkPersistentFlagRequired("year")

	neiCmd.AddCommand(neiProcessCmd)
	neiCmd.AddCommand(neiTotalsCmd)
	RootCmd.AddCommand(neiCmd)
}

func runNEIProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	commons, err := a.commons()
	if err != nil {
		return err
	}

	for _, year := range neiYears {
		l := logger.WithInventory(a.log, "NEI", year)
		svc := nei.NewService(l, a.cfg.NEI, a.store, commons)
		if err := svc.GenerateOutputs(ctx, year); err != nil {
			return err
		}
	}
	return nil
}

func runNEITotals(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	commons, err := a.commons()
	if err != nil {
		return err
	}

	for _, year := range neiYears {
		l := logger.WithInventory(a.log, "NEI", year)
		svc := nei.NewService(l, a.cfg.NEI, a.store, commons)
		if err := svc.GenerateNationalTotals(ctx, year); err != nil {
			return err
		}
	}
	return nil
}
