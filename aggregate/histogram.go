package aggregate

import (
	"context"
	"math"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/deferred"
	"github.com/go-colops/colops/errors"
)

// DefaultBuckets is the default number of histogram bin edges
const DefaultBuckets = 20

// HistogramBin is one bin of a column histogram
type HistogramBin struct {
	Lower float64
	Upper float64
	Count int64
}

// HistogramResult is the binned distribution of one numeric column. The sum
// of all bin counts plus Excluded equals the column's row count.
type HistogramResult struct {
	Bins     []HistogramBin
	Excluded int64 // values which could not be coerced to a number, nulls included
}

// minmax is the partial result of the bounds pre-pass
type minmax struct {
	min  float64
	max  float64
	seen bool
}

// Histogram bins the given numeric columns into buckets evenly spaced bin
// edges between each column's global minimum and maximum. The bounds are
// computed first, as a reduction over all partitions, so every partition
// bins against the same edges. Non-numeric columns fail fast with
// UnsupportedDtypeError before any partition work begins.
func Histogram(ctx context.Context, t colops.Table, cols []string, buckets int) (map[string]HistogramResult, error) {
	if buckets < 2 {
		buckets = DefaultBuckets
	}
	if err := requireNumeric(t, cols); err != nil {
		return nil, err
	}
	bounds, err := Aggregate(ctx, t, cols, boundsPartition, mergeBounds)
	if err != nil {
		return nil, err
	}
	counts, err := Aggregate(ctx, t, cols, binsPartition(bounds, buckets), mergeBins)
	if err != nil {
		return nil, err
	}
	return typedHistogram(bounds, counts, buckets), nil
}

// DeferHistogram builds the histogram's two-stage graph without executing
// it: the bounds reduction, and the binned counts depending on it
func DeferHistogram(ctx context.Context, t colops.Table, cols []string, buckets int) (*deferred.Node, error) {
	if buckets < 2 {
		buckets = DefaultBuckets
	}
	if err := requireNumeric(t, cols); err != nil {
		return nil, err
	}
	bounds := Defer(ctx, t, cols, boundsPartition, mergeBounds)
	return deferred.NewNode("histogram", func(deps []interface{}) (interface{}, error) {
		merged := deps[0].(Result)
		counts, err := Aggregate(ctx, t, cols, binsPartition(merged, buckets), mergeBins)
		if err != nil {
			return nil, err
		}
		return typedHistogram(merged, counts, buckets), nil
	}, bounds), nil
}

// requireNumeric fails fast when any column's declared dtype cannot be
// binned
func requireNumeric(t colops.Table, cols []string) error {
	s := t.Schema()
	for _, col := range cols {
		dtype, err := s.ColumnType(col)
		if err != nil {
			return err
		}
		if !dtype.IsNumeric() {
			return errors.UnsupportedDtypeError{Name: col, Dtype: dtype.String()}
		}
	}
	return nil
}

func boundsPartition(p colops.Partition, colName string) (interface{}, error) {
	values, err := p.Column(colName)
	if err != nil {
		return nil, err
	}
	partial := minmax{}
	for _, v := range values {
		f := cast.ToFloat(v)
		if math.IsNaN(f) {
			continue
		}
		if !partial.seen {
			partial = minmax{min: f, max: f, seen: true}
			continue
		}
		if f < partial.min {
			partial.min = f
		}
		if f > partial.max {
			partial.max = f
		}
	}
	return partial, nil
}

func mergeBounds(partials []interface{}) (interface{}, error) {
	merged := minmax{}
	for _, partial := range partials {
		mm := partial.(minmax)
		if !mm.seen {
			continue
		}
		if !merged.seen {
			merged = mm
			continue
		}
		if mm.min < merged.min {
			merged.min = mm.min
		}
		if mm.max > merged.max {
			merged.max = mm.max
		}
	}
	return merged, nil
}

// binCounts is the partial result of the binning pass
type binCounts struct {
	counts   []int64
	excluded int64
}

// binsPartition bins one partition's values against the global edges. Values
// which coerce to NaN never register in any bin and count as excluded.
func binsPartition(bounds Result, buckets int) PartitionFunc {
	return func(p colops.Partition, colName string) (interface{}, error) {
		values, err := p.Column(colName)
		if err != nil {
			return nil, err
		}
		mm := bounds[colName].(minmax)
		partial := binCounts{counts: make([]int64, buckets-1)}
		width := (mm.max - mm.min) / float64(buckets-1)
		for _, v := range values {
			f := cast.ToFloat(v)
			switch {
			case math.IsNaN(f) || !mm.seen:
				partial.excluded++
			case width == 0:
				// degenerate single-value column: one bin holds everything
				partial.counts[0]++
			case f >= mm.max:
				partial.counts[buckets-2]++
			default:
				idx := int((f - mm.min) / width)
				// float division can round up to the edge count for values
				// one ULP below the global max
				if idx > buckets-2 {
					idx = buckets - 2
				}
				partial.counts[idx]++
			}
		}
		return partial, nil
	}
}

// mergeBins sums count arrays element-wise
func mergeBins(partials []interface{}) (interface{}, error) {
	var merged binCounts
	for _, partial := range partials {
		bc := partial.(binCounts)
		if merged.counts == nil {
			merged.counts = make([]int64, len(bc.counts))
		}
		for i, c := range bc.counts {
			merged.counts[i] += c
		}
		merged.excluded += bc.excluded
	}
	return merged, nil
}

func typedHistogram(bounds Result, counts Result, buckets int) map[string]HistogramResult {
	typed := make(map[string]HistogramResult, len(counts))
	for col, merged := range counts {
		bc := merged.(binCounts)
		mm := bounds[col].(minmax)
		result := HistogramResult{Excluded: bc.excluded}
		if mm.seen {
			width := (mm.max - mm.min) / float64(buckets-1)
			result.Bins = make([]HistogramBin, buckets-1)
			for i := range result.Bins {
				lower := mm.min + width*float64(i)
				upper := mm.min + width*float64(i+1)
				if i == buckets-2 {
					upper = mm.max // the last edge is exactly the global max
				}
				result.Bins[i] = HistogramBin{Lower: lower, Upper: upper, Count: bc.counts[i]}
			}
		}
		typed[col] = result
	}
	return typed
}
