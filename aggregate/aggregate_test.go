package aggregate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
	colopstest "github.com/go-colops/colops/testing"
)

func TestCountMismatchBucketsSumToRowCount(t *testing.T) {
	colopstest.RunAgainstEngines(t, func(t *testing.T, eng colops.StorageEngine) {
		table := colopstest.CreateTestTable(t, eng,
			colopstest.Col{Name: "n", Type: colops.StringType, Values: []interface{}{
				"1", "2", "x", nil, "4", "oops", nil, "7", "8", "9.5",
			}},
		)
		counts, err := CountMismatch(context.Background(), table, map[string]colops.ProfilerType{
			"n": colops.ProfilerInt,
		})
		require.Nil(t, err)
		got := counts["n"]
		require.Equal(t, int64(5), got.Match)
		require.Equal(t, int64(2), got.Missing)
		require.Equal(t, int64(3), got.Mismatch)
		require.Equal(t, int64(table.NumRows()), got.Match+got.Missing+got.Mismatch)
	})
}

func TestCountMismatchEmail(t *testing.T) {
	eng := colopstest.Engines()["memory"]
	table := colopstest.CreateTestTable(t, eng,
		colopstest.Col{Name: "e", Type: colops.StringType, Values: []interface{}{
			"ada@example.com", "not-an-email", nil,
		}},
	)
	counts, err := CountMismatch(context.Background(), table, map[string]colops.ProfilerType{
		"e": colops.ProfilerEmail,
	})
	require.Nil(t, err)
	require.Equal(t, MismatchCounts{Match: 1, Missing: 1, Mismatch: 1}, counts["e"])
}

func TestCountMismatchUnknownColumn(t *testing.T) {
	eng := colopstest.Engines()["memory"]
	table := colopstest.CreateTestTable(t, eng,
		colopstest.Col{Name: "a", Type: colops.IntType, Values: []interface{}{int64(1)}},
	)
	_, err := CountMismatch(context.Background(), table, map[string]colops.ProfilerType{
		"missing": colops.ProfilerInt,
	})
	require.IsType(t, errors.UnknownColumnError{}, err)
}

func TestFrequencyTopNWithTieBreak(t *testing.T) {
	colopstest.RunAgainstEngines(t, func(t *testing.T, eng colops.StorageEngine) {
		table := colopstest.CreateTestTable(t, eng,
			colopstest.Col{Name: "v", Type: colops.StringType, Values: []interface{}{
				"b", "a", "b", "c", "a", nil, "b", "c", "d", "a",
			}},
		)
		tables, err := Frequency(context.Background(), table, []string{"v"}, &FrequencyOptions{N: 3})
		require.Nil(t, err)
		entries := tables["v"].Values
		require.Len(t, entries, 3)
		// "a" and "b" tie at 3; ascending value breaks the tie
		require.Equal(t, FrequencyEntry{Value: "a", Count: 3}, entries[0])
		require.Equal(t, FrequencyEntry{Value: "b", Count: 3}, entries[1])
		require.Equal(t, FrequencyEntry{Value: "c", Count: 2}, entries[2])
	})
}

func TestFrequencyPercentages(t *testing.T) {
	colopstest.RunAgainstEngines(t, func(t *testing.T, eng colops.StorageEngine) {
		table := colopstest.CreateTestTable(t, eng,
			colopstest.Col{Name: "v", Type: colops.StringType, Values: []interface{}{
				"x", "x", "x", "y", nil, "z", "z", "y",
			}},
		)
		tables, err := Frequency(context.Background(), table, []string{"v"}, &FrequencyOptions{
			Percentage:   true,
			CountUniques: true,
		})
		require.Nil(t, err)
		ft := tables["v"]
		require.Equal(t, int64(3), ft.Uniques)
		total := 0.0
		for _, entry := range ft.Values {
			require.LessOrEqual(t, entry.Percentage, 100.0)
			total += entry.Percentage
		}
		// nulls are uncounted, so shares never exceed the whole
		require.LessOrEqual(t, total, 100.0)
		require.Equal(t, 37.5, ft.Values[0].Percentage)
	})
}

func TestHistogramCountsSumToRows(t *testing.T) {
	colopstest.RunAgainstEngines(t, func(t *testing.T, eng colops.StorageEngine) {
		values := []interface{}{
			int64(0), int64(1), int64(2), int64(3), int64(4),
			int64(5), int64(6), int64(7), nil, int64(10),
		}
		table := colopstest.CreateTestTable(t, eng,
			colopstest.Col{Name: "n", Type: colops.IntType, Values: values},
		)
		results, err := Histogram(context.Background(), table, []string{"n"}, 5)
		require.Nil(t, err)
		hist := results["n"]
		require.Len(t, hist.Bins, 4)
		require.Equal(t, 0.0, hist.Bins[0].Lower)
		require.Equal(t, 10.0, hist.Bins[len(hist.Bins)-1].Upper)
		var binned int64
		for _, bin := range hist.Bins {
			binned += bin.Count
		}
		require.Equal(t, int64(len(values)), binned+hist.Excluded)
		require.Equal(t, int64(1), hist.Excluded)
		// the global maximum lands in the last bin, not past it
		require.Equal(t, int64(1), hist.Bins[len(hist.Bins)-1].Count)
	})
}

func TestHistogramValueJustBelowMaxStaysInLastBin(t *testing.T) {
	colopstest.RunAgainstEngines(t, func(t *testing.T, eng colops.StorageEngine) {
		// the middle value sits one ULP below the maximum; its bin index
		// must clamp into the last bin rather than run past the edges
		table := colopstest.CreateTestTable(t, eng,
			colopstest.Col{Name: "n", Type: colops.DecimalType, Values: []interface{}{
				25.488289234971955, 103.05222285240036, 103.05222285240038,
			}},
		)
		results, err := Histogram(context.Background(), table, []string{"n"}, 20)
		require.Nil(t, err)
		hist := results["n"]
		var binned int64
		for _, bin := range hist.Bins {
			binned += bin.Count
		}
		require.Equal(t, int64(3), binned+hist.Excluded)
		require.Equal(t, int64(0), hist.Excluded)
		require.Equal(t, int64(2), hist.Bins[len(hist.Bins)-1].Count)
	})
}

func TestHistogramDegenerateRange(t *testing.T) {
	colopstest.RunAgainstEngines(t, func(t *testing.T, eng colops.StorageEngine) {
		table := colopstest.CreateTestTable(t, eng,
			colopstest.Col{Name: "n", Type: colops.DecimalType, Values: []interface{}{7.0, 7.0, nil, 7.0}},
		)
		results, err := Histogram(context.Background(), table, []string{"n"}, 5)
		require.Nil(t, err)
		hist := results["n"]
		require.Equal(t, int64(3), hist.Bins[0].Count)
		require.Equal(t, int64(1), hist.Excluded)
	})
}

func TestHistogramRejectsNonNumericColumn(t *testing.T) {
	eng := colopstest.Engines()["memory"]
	table := colopstest.CreateTestTable(t, eng,
		colopstest.Col{Name: "s", Type: colops.StringType, Values: []interface{}{"x"}},
	)
	_, err := Histogram(context.Background(), table, []string{"s"}, 5)
	require.IsType(t, errors.UnsupportedDtypeError{}, err)
}

func TestCountUniques(t *testing.T) {
	colopstest.RunAgainstEngines(t, func(t *testing.T, eng colops.StorageEngine) {
		table := colopstest.CreateTestTable(t, eng,
			colopstest.Col{Name: "v", Type: colops.StringType, Values: []interface{}{
				"a", "b", "a", nil, "c", "b", "a",
			}},
		)
		counts, err := CountUniques(context.Background(), table, []string{"v"})
		require.Nil(t, err)
		require.Equal(t, int64(3), counts["v"])
	})
}

func TestDeferredAggregationsMatchEager(t *testing.T) {
	colopstest.RunAgainstEngines(t, func(t *testing.T, eng colops.StorageEngine) {
		table := colopstest.CreateTestTable(t, eng,
			colopstest.Col{Name: "n", Type: colops.IntType, Values: []interface{}{
				int64(1), int64(2), int64(2), nil, int64(5), int64(5), int64(5),
			}},
		)
		ctx := context.Background()

		eager, err := Frequency(ctx, table, []string{"n"}, nil)
		require.Nil(t, err)
		node := DeferFrequency(ctx, table, []string{"n"}, nil)
		lazy, err := node.Materialize()
		require.Nil(t, err)
		require.Equal(t, eager, lazy)

		eagerHist, err := Histogram(ctx, table, []string{"n"}, 3)
		require.Nil(t, err)
		histNode, err := DeferHistogram(ctx, table, []string{"n"}, 3)
		require.Nil(t, err)
		lazyHist, err := histNode.Materialize()
		require.Nil(t, err)
		require.Equal(t, eagerHist, lazyHist)

		// materializing again returns the memoized result
		again, err := histNode.Materialize()
		require.Nil(t, err)
		require.Equal(t, lazyHist, again)
	})
}
