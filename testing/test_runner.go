// Package colopstest provides shared helpers for testing column operations
// against every StorageEngine implementation. Tests build tables with
// CreateTestTable and run their assertions once per engine configuration
// via RunAgainstEngines, covering the single-partition memory engine and
// the parallel engine at several partition counts.
package colopstest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/engine/memory"
	"github.com/go-colops/colops/engine/parallel"
	"github.com/go-colops/colops/schema"
)

// Col is one column of a test table, in declaration order
type Col struct {
	Name   string
	Type   colops.DataType
	Values []interface{}
}

// Engines returns one StorageEngine per configuration worth exercising.
// Keys name the configuration for use as subtest names.
func Engines() map[string]colops.StorageEngine {
	return map[string]colops.StorageEngine{
		"memory":          memory.CreateEngine(),
		"parallel-p1":     parallel.CreateEngine(&parallel.Options{NumPartitions: 1}),
		"parallel-p4":     parallel.CreateEngine(&parallel.Options{NumPartitions: 4}),
		"parallel-p7-w2":  parallel.CreateEngine(&parallel.Options{NumPartitions: 7, NumWorkers: 2}),
		"parallel-cached": parallel.CreateEngine(&parallel.Options{NumPartitions: 4, MaxResidentPartitions: 2}),
	}
}

// RunAgainstEngines runs test once per engine configuration, as a subtest
// named after the configuration
func RunAgainstEngines(t *testing.T, test func(t *testing.T, eng colops.StorageEngine)) {
	for name, eng := range Engines() {
		eng := eng
		t.Run(name, func(t *testing.T) {
			test(t, eng)
		})
	}
}

// CreateTestTable builds a table on eng from ordered column definitions,
// failing the test on any error
func CreateTestTable(t *testing.T, eng colops.StorageEngine, cols ...Col) colops.Table {
	s := schema.CreateSchema()
	columns := make(map[string][]interface{}, len(cols))
	numRows := -1
	for _, col := range cols {
		var err error
		s, err = s.CreateColumn(col.Name, col.Type)
		require.Nil(t, err)
		columns[col.Name] = col.Values
		if numRows == -1 {
			numRows = len(col.Values)
		} else {
			require.Equal(t, numRows, len(col.Values), "test columns must share one length")
		}
	}
	table, err := eng.CreateTable(s, columns)
	require.Nil(t, err)
	return table
}

// GatherColumn reassembles one column from every partition of a table, in
// row order
func GatherColumn(t *testing.T, table colops.Table, colName string) []interface{} {
	var values []interface{}
	for i := 0; i < table.NumPartitions(); i++ {
		colValues, err := table.Partition(i).Column(colName)
		require.Nil(t, err)
		values = append(values, colValues...)
	}
	return values
}
