package aggregate

import (
	"context"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/deferred"
)

// MismatchCounts is the three-way classification tally for one column.
// Every value lands in exactly one bucket, so the three totals always sum
// to the column's row count.
type MismatchCounts struct {
	Match    int64
	Missing  int64
	Mismatch int64
}

// CountMismatch classifies every value of the given columns against their
// declared profiler dtypes: the null marker counts as Missing, values the
// dtype's predicate accepts count as Match, everything else as Mismatch.
func CountMismatch(ctx context.Context, t colops.Table, columnTypes map[string]colops.ProfilerType) (map[string]MismatchCounts, error) {
	cols, preds := mismatchPredicates(columnTypes)
	result, err := Aggregate(ctx, t, cols, mismatchPartition(preds), mergeMismatch)
	if err != nil {
		return nil, err
	}
	return typedMismatch(result), nil
}

// DeferCountMismatch builds a Node which materializes to the CountMismatch
// result
func DeferCountMismatch(ctx context.Context, t colops.Table, columnTypes map[string]colops.ProfilerType) *deferred.Node {
	cols, preds := mismatchPredicates(columnTypes)
	counts := Defer(ctx, t, cols, mismatchPartition(preds), mergeMismatch)
	return deferred.NewNode("count_mismatch", func(deps []interface{}) (interface{}, error) {
		return typedMismatch(deps[0].(Result)), nil
	}, counts)
}

func mismatchPredicates(columnTypes map[string]colops.ProfilerType) ([]string, map[string]cast.Predicate) {
	cols := make([]string, 0, len(columnTypes))
	preds := make(map[string]cast.Predicate, len(columnTypes))
	for col, pt := range columnTypes {
		cols = append(cols, col)
		preds[col] = cast.PredicateFor(pt)
	}
	return cols, preds
}

func mismatchPartition(preds map[string]cast.Predicate) PartitionFunc {
	return func(p colops.Partition, colName string) (interface{}, error) {
		values, err := p.Column(colName)
		if err != nil {
			return nil, err
		}
		pred := preds[colName]
		var counts MismatchCounts
		for _, v := range values {
			switch {
			case colops.IsNull(v):
				counts.Missing++
			case pred(v):
				counts.Match++
			default:
				counts.Mismatch++
			}
		}
		return counts, nil
	}
}

func mergeMismatch(partials []interface{}) (interface{}, error) {
	var total MismatchCounts
	for _, partial := range partials {
		counts := partial.(MismatchCounts)
		total.Match += counts.Match
		total.Missing += counts.Missing
		total.Mismatch += counts.Mismatch
	}
	return total, nil
}

func typedMismatch(result Result) map[string]MismatchCounts {
	typed := make(map[string]MismatchCounts, len(result))
	for col, counts := range result {
		typed[col] = counts.(MismatchCounts)
	}
	return typed
}
