package aggregate

import (
	"context"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/deferred"
)

// CountUniques counts the distinct non-null values of each column. Partials
// are per-partition value sets; the merge is set union, which is commutative
// and associative.
func CountUniques(ctx context.Context, t colops.Table, cols []string) (map[string]int64, error) {
	result, err := Aggregate(ctx, t, cols, uniquesPartition, mergeUniques)
	if err != nil {
		return nil, err
	}
	return typedUniques(result), nil
}

// DeferCountUniques builds a Node which materializes to the CountUniques
// result
func DeferCountUniques(ctx context.Context, t colops.Table, cols []string) *deferred.Node {
	sets := Defer(ctx, t, cols, uniquesPartition, mergeUniques)
	return deferred.NewNode("count_uniques", func(deps []interface{}) (interface{}, error) {
		return typedUniques(deps[0].(Result)), nil
	}, sets)
}

func uniquesPartition(p colops.Partition, colName string) (interface{}, error) {
	values, err := p.Column(colName)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, v := range values {
		if colops.IsNull(v) {
			continue
		}
		seen[cast.FormatValue(v)] = struct{}{}
	}
	return seen, nil
}

func mergeUniques(partials []interface{}) (interface{}, error) {
	merged := make(map[string]struct{})
	for _, partial := range partials {
		for value := range partial.(map[string]struct{}) {
			merged[value] = struct{}{}
		}
	}
	return merged, nil
}

func typedUniques(result Result) map[string]int64 {
	typed := make(map[string]int64, len(result))
	for col, seen := range result {
		typed[col] = int64(len(seen.(map[string]struct{})))
	}
	return typed
}
