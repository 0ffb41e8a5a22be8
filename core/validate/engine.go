package validate

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/matthewlchambers/standardizedinventories/core/aggregate"
	"github.com/matthewlchambers/standardizedinventories/core/record"
)

// DefaultTolerance is the maximum acceptable percent difference between an
// inventory and its reference when the caller does not choose one.
const DefaultTolerance = 5.0

// Conclusions reached for each reconciled group. The reference amount is the
// denominator of every percent difference: the reference is treated as ground
// truth, so differences are never normalized by the inventory or the mean.
const (
	ConclusionIdentical         = "Identical"
	ConclusionSimilar           = "Statistically similar"
	ConclusionExceedsTolerance  = "Percent difference exceeds tolerance"
	ConclusionBothZero          = "Both inventory and reference are zero or null"
	ConclusionInventoryZero     = "Inventory value is zero or null"
	ConclusionReferenceZero     = "Reference value is zero or null"
	ConclusionReferenceInfinite = "Reference contains infinity values. Check prior calculations."
)

// Row is the reconciliation outcome for one key tuple present in either
// dataset.
type Row struct {
	// Key holds the group's values for the run's key columns, aligned with
	// Result.Columns.
	Key []string

	// InventoryAmount is the aggregated inventory total for the group, zero
	// when the group is absent from the inventory.
	InventoryAmount float64

	// ReferenceAmount is the aggregated reference total for the group, zero
	// when absent from the reference and NaN when the reference total is
	// infinite.
	ReferenceAmount float64

	// PercentDifference is 100*|reference-inventory|/reference for finite
	// nonzero references, and 100 (or 0 when both sides are zero) otherwise.
	PercentDifference float64

	// Conclusion is one of the Conclusion constants.
	Conclusion string
}

// Result is the full reconciliation report of one validation run.
type Result struct {
	// Columns is the key column list the run was grouped on.
	Columns []string

	// Rows holds one entry per key tuple, inventory groups first in their
	// aggregation order, then reference-only groups in theirs.
	Rows []Row

	// ErrorCount is the number of rows considered potential issues: groups
	// exceeding tolerance and groups where exactly one side is zero.
	ErrorCount int
}

// Engine reconciles an inventory dataset against an independently published
// reference dataset. It holds no state besides its logger; a run is a pure
// function of its inputs.
type Engine struct {
	log *zap.Logger
}

// NewEngine creates a validation engine that reports advisory findings on the
// given logger.
func NewEngine(log *zap.Logger) *Engine {
	return &Engine{log: log}
}

// Validate aggregates both datasets over the grouping's key columns, joins
// them with a full outer join, and classifies the discrepancy of every group.
// Rows that exceed tolerance never make the run fail; they are counted and
// reported with a single warning. Unparseable flow amounts do fail the run.
func (e *Engine) Validate(inventory, reference []record.Record, groupBy GroupBy, tolerance float64) (*Result, error) {
	if tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be non-negative, got %v", tolerance)
	}
	columns := groupBy.Columns()

	invSums, err := aggregate.Sum(inventory, columns)
	if err != nil {
		return nil, fmt.Errorf("aggregating inventory: %w", err)
	}
	refSums, err := aggregate.Sum(reference, columns)
	if err != nil {
		return nil, fmt.Errorf("aggregating reference: %w", err)
	}

	// Full outer join on the key tuple: inventory groups in order, then the
	// reference-only groups in their order.
	refAmount := make(map[string]float64, len(refSums))
	refSeen := make(map[string]bool, len(refSums))
	refKeys := make([]string, 0, len(refSums))
	refByKey := make(map[string][]string, len(refSums))
	for _, r := range refSums {
		key, err := r.Key(columns)
		if err != nil {
			return nil, err
		}
		k := strings.Join(key, keySep)
		refAmount[k] = r.FlowAmount
		refKeys = append(refKeys, k)
		refByKey[k] = key
	}

	result := &Result{Columns: columns}
	for _, r := range invSums {
		key, err := r.Key(columns)
		if err != nil {
			return nil, err
		}
		k := strings.Join(key, keySep)
		refSeen[k] = true
		result.addRow(key, r.FlowAmount, refAmount[k], tolerance)
	}
	for _, k := range refKeys {
		if refSeen[k] {
			continue
		}
		result.addRow(refByKey[k], 0, refAmount[k], tolerance)
	}

	if result.ErrorCount > 0 {
		e.log.Warn("potential issues in validation exceeding tolerance",
			zap.Int("count", result.ErrorCount),
			zap.String("group_by", groupBy.String()))
	}
	return result, nil
}

// keySep joins key tuples for join lookups; it cannot occur in key values.
const keySep = "\x1f"

// addRow classifies one joined group. The decision order is fixed and the
// first match wins. A zero inventory against a finite nonzero reference
// counts as an error; a nonzero inventory against an infinite reference does
// not, even though both are anomalous. That asymmetry is kept deliberately
// for compatibility with prior reports.
func (res *Result) addRow(key []string, inv, ref float64, tolerance float64) {
	row := Row{Key: key, InventoryAmount: inv, ReferenceAmount: ref}

	switch {
	case inv == 0 && ref == 0:
		row.PercentDifference = 0
		row.Conclusion = ConclusionBothZero
	case inv == 0 && math.IsInf(ref, 1):
		row.ReferenceAmount = math.NaN()
		row.PercentDifference = 100
		row.Conclusion = ConclusionReferenceInfinite
	case inv == 0:
		row.PercentDifference = 100
		row.Conclusion = ConclusionInventoryZero
		res.ErrorCount++
	case ref == 0:
		row.PercentDifference = 100
		row.Conclusion = ConclusionReferenceZero
		res.ErrorCount++
	case math.IsInf(ref, 1):
		row.ReferenceAmount = math.NaN()
		row.PercentDifference = 100
		row.Conclusion = ConclusionReferenceInfinite
	default:
		pct := 100 * math.Abs(ref-inv) / ref
		row.PercentDifference = pct
		switch {
		case pct == 0:
			row.Conclusion = ConclusionIdentical
		case pct <= tolerance:
			row.Conclusion = ConclusionSimilar
		default:
			row.Conclusion = ConclusionExceedsTolerance
			res.ErrorCount++
		}
	}

	res.Rows = append(res.Rows, row)
}
