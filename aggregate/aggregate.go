// Package aggregate implements the partitioned map/reduce core: a
// per-partition function computes a partial result for each column of each
// partition, independently and in no particular order, and an associative,
// commutative merge function reassembles the partials into one final result
// per column. Concrete aggregations built on this core are CountMismatch,
// Frequency, Histogram and CountUniques, each available eagerly or as a
// deferred computation graph.
package aggregate

import (
	"context"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/deferred"
	"github.com/go-colops/colops/selector"
)

// PartitionFunc computes a partial result for one column of one Partition.
// It must not assume any ordering among partitions.
type PartitionFunc func(p colops.Partition, colName string) (interface{}, error)

// MergeFunc folds a sequence of partial results into a final result. It
// must be associative and commutative: the engine may merge in any grouping
// and partials arrive in no guaranteed order.
type MergeFunc func(partials []interface{}) (interface{}, error)

// Result maps column names to merged final results
type Result map[string]interface{}

// Aggregate eagerly runs pfn against every (partition, column) pair and
// merges the partials per column with mfn. Either every partition
// contributes, or the aggregation fails as a whole; partial results are
// never surfaced.
func Aggregate(ctx context.Context, t colops.Table, cols []string, pfn PartitionFunc, mfn MergeFunc) (Result, error) {
	resolved, err := selector.Select(t, selector.Names(cols...), nil)
	if err != nil {
		return nil, err
	}
	partials, err := t.Engine().MapPartitions(ctx, t, func(idx int, p colops.Partition) (interface{}, error) {
		colPartials := make(map[string]interface{}, len(resolved))
		for _, col := range resolved {
			partial, err := pfn(p, col)
			if err != nil {
				return nil, err
			}
			colPartials[col] = partial
		}
		return colPartials, nil
	})
	if err != nil {
		return nil, err
	}
	result := make(Result, len(resolved))
	for _, col := range resolved {
		colPartials := make([]interface{}, len(partials))
		for i, partial := range partials {
			colPartials[i] = partial.(map[string]interface{})[col]
		}
		merged, err := mfn(colPartials)
		if err != nil {
			return nil, err
		}
		result[col] = merged
	}
	return result, nil
}

// Defer returns a Node which runs the same aggregation when materialized.
// Building the node performs no partition work.
func Defer(ctx context.Context, t colops.Table, cols []string, pfn PartitionFunc, mfn MergeFunc) *deferred.Node {
	return deferred.NewNode("aggregate", func(deps []interface{}) (interface{}, error) {
		return Aggregate(ctx, t, cols, pfn, mfn)
	})
}
