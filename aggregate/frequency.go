package aggregate

import (
	"context"
	"math"
	"sort"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/deferred"
)

// MaxBuckets is the default number of top values returned by Frequency
const MaxBuckets = 33

// FrequencyEntry is one value of a column's top-N frequency table
type FrequencyEntry struct {
	Value      string
	Count      int64
	Percentage float64 // populated when FrequencyOptions.Percentage is set
}

// FrequencyTable is the top-N frequency result for one column
type FrequencyTable struct {
	Values  []FrequencyEntry
	Uniques int64 // populated when FrequencyOptions.CountUniques is set
}

// FrequencyOptions configures a Frequency aggregation
type FrequencyOptions struct {
	// N is the number of top values to return; MaxBuckets if unset
	N int
	// Percentage adds each entry's share of the total row count, rounded
	// to 2 decimal places
	Percentage bool
	// CountUniques adds the column's total distinct-value count
	CountUniques bool
}

// Frequency computes the N most frequent values per column. Counts are
// summed across partitions before selection, so the result is independent
// of partitioning. Equal counts are broken deterministically: descending
// count first, then ascending value. Null values are not counted.
func Frequency(ctx context.Context, t colops.Table, cols []string, opts *FrequencyOptions) (map[string]FrequencyTable, error) {
	conf := frequencyConf(opts)
	result, err := Aggregate(ctx, t, cols, frequencyPartition, mergeValueCounts)
	if err != nil {
		return nil, err
	}
	return typedFrequency(result, conf, int64(t.NumRows())), nil
}

// DeferFrequency builds a two-node graph: the merged value counts, and the
// top-N selection depending on them
func DeferFrequency(ctx context.Context, t colops.Table, cols []string, opts *FrequencyOptions) *deferred.Node {
	conf := frequencyConf(opts)
	counts := Defer(ctx, t, cols, frequencyPartition, mergeValueCounts)
	return deferred.NewNode("frequency_top", func(deps []interface{}) (interface{}, error) {
		return typedFrequency(deps[0].(Result), conf, int64(t.NumRows())), nil
	}, counts)
}

func frequencyConf(opts *FrequencyOptions) FrequencyOptions {
	conf := FrequencyOptions{N: MaxBuckets}
	if opts != nil {
		conf = *opts
		if conf.N < 1 {
			conf.N = MaxBuckets
		}
	}
	return conf
}

// frequencyPartition tallies value counts for one column of one partition
func frequencyPartition(p colops.Partition, colName string) (interface{}, error) {
	values, err := p.Column(colName)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	for _, v := range values {
		if colops.IsNull(v) {
			continue
		}
		counts[cast.FormatValue(v)]++
	}
	return counts, nil
}

// mergeValueCounts sums value counts across partitions. Addition is
// commutative and associative, so grouping does not matter.
func mergeValueCounts(partials []interface{}) (interface{}, error) {
	merged := make(map[string]int64)
	for _, partial := range partials {
		for value, count := range partial.(map[string]int64) {
			merged[value] += count
		}
	}
	return merged, nil
}

// topN selects the N largest counts. The tie-break is decided here, once:
// equal counts order by ascending value, never by partition-processing
// order.
func topN(counts map[string]int64, n int) []FrequencyEntry {
	entries := make([]FrequencyEntry, 0, len(counts))
	for value, count := range counts {
		entries = append(entries, FrequencyEntry{Value: value, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func typedFrequency(result Result, conf FrequencyOptions, totalRows int64) map[string]FrequencyTable {
	typed := make(map[string]FrequencyTable, len(result))
	for col, merged := range result {
		counts := merged.(map[string]int64)
		table := FrequencyTable{Values: topN(counts, conf.N)}
		if conf.Percentage && totalRows > 0 {
			for i := range table.Values {
				pct := float64(table.Values[i].Count) * 100 / float64(totalRows)
				table.Values[i].Percentage = math.Round(pct*100) / 100
			}
		}
		if conf.CountUniques {
			table.Uniques = int64(len(counts))
		}
		typed[col] = table
	}
	return typed
}
