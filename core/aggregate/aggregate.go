package aggregate

import (
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/matthewlchambers/standardizedinventories/core/record"
)

// keySep joins key tuple values into a map key. It cannot occur in column
// values read from the supported sources.
const keySep = "\x1f"

// Sum groups records by the ordered key column list and sums FlowAmount per
// distinct key tuple. Missing amounts are filled with zero before summing, so
// the total of the output always equals the total of the input. Groups appear
// in first-seen input order; empty input yields empty output.
func Sum(records []record.Record, columns []string) ([]record.Record, error) {
	index := make(map[string]int)
	out := make([]record.Record, 0)

	for _, r := range records {
		key, err := r.Key(columns)
		if err != nil {
			return nil, err
		}
		amount, err := r.Amount()
		if err != nil {
			return nil, err
		}

		k := strings.Join(key, keySep)
		i, ok := index[k]
		if !ok {
			var g record.Record
			for j, c := range columns {
				if err := g.SetField(c, key[j]); err != nil {
					return nil, err
				}
			}
			i = len(out)
			out = append(out, g)
			index[k] = i
		}
		out[i].FlowAmount += amount
	}

	return out, nil
}

// WithReliability groups records like Sum and additionally carries a
// flow-weighted mean of DataReliability per group, so that a large release
// with a measured amount outweighs a small estimated one. Groups whose summed
// amount is not positive are dropped; this variant is used when generating
// inventory output tables, never for validation.
func WithReliability(records []record.Record, columns []string) ([]record.Record, error) {
	type group struct {
		rec     record.Record
		scores  []float64
		weights []float64
	}

	index := make(map[string]int)
	groups := make([]*group, 0)

	for _, r := range records {
		key, err := r.Key(columns)
		if err != nil {
			return nil, err
		}
		amount, err := r.Amount()
		if err != nil {
			return nil, err
		}

		k := strings.Join(key, keySep)
		i, ok := index[k]
		if !ok {
			g := &group{}
			for j, c := range columns {
				if err := g.rec.SetField(c, key[j]); err != nil {
					return nil, err
				}
			}
			g.rec.Unit = r.Unit
			g.rec.Source = r.Source
			i = len(groups)
			groups = append(groups, g)
			index[k] = i
		}
		g := groups[i]
		g.rec.FlowAmount += amount
		g.scores = append(g.scores, r.DataReliability)
		g.weights = append(g.weights, amount)
	}

	out := make([]record.Record, 0, len(groups))
	for _, g := range groups {
		if !(g.rec.FlowAmount > 0) {
			continue
		}
		g.rec.DataReliability = stat.Mean(g.scores, g.weights)
		out = append(out, g.rec)
	}
	return out, nil
}

// Total returns the sum of all record amounts. It is used to assert mass
// conservation across aggregations.
func Total(records []record.Record) (float64, error) {
	var total float64
	for _, r := range records {
		v, err := r.Amount()
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
