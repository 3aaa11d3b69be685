// Package engine holds the table representation and helpers shared by the
// storage engine adapters under engine/. Each adapter translates the
// colops.StorageEngine capability contract to its own partition and compute
// primitives; the logical Table bookkeeping is identical across them and
// lives here.
package engine

import (
	"fmt"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/partition"
)

// table is the Table bookkeeping shared by engine adapters
type table struct {
	schema colops.Schema
	rec    meta.Record
	parts  []colops.Partition
	eng    colops.StorageEngine
}

// CreateTable assembles a Table handle from partitions
func CreateTable(eng colops.StorageEngine, s colops.Schema, rec meta.Record, parts []colops.Partition) colops.Table {
	if rec == nil {
		rec = meta.CreateRecord()
	}
	return &table{schema: s, rec: rec, parts: parts, eng: eng}
}

// Schema returns the Schema of this Table
func (t *table) Schema() colops.Schema {
	return t.schema
}

// Meta returns the lineage Record attached to this Table
func (t *table) Meta() meta.Record {
	return t.rec
}

// NumRows returns the total number of rows across all Partitions
func (t *table) NumRows() int {
	total := 0
	for _, p := range t.parts {
		total += p.NumRows()
	}
	return total
}

// NumPartitions returns the number of Partitions in this Table
func (t *table) NumPartitions() int {
	return len(t.parts)
}

// Partition retrieves a specific Partition of this Table
func (t *table) Partition(idx int) colops.Partition {
	return t.parts[idx]
}

// Engine returns the StorageEngine which holds this Table
func (t *table) Engine() colops.StorageEngine {
	return t.eng
}

// WithMeta returns a new Table handle carrying the given lineage Record.
// Partitions are shared by reference.
func (t *table) WithMeta(rec meta.Record) colops.Table {
	return &table{schema: t.schema, rec: rec, parts: t.parts, eng: t.eng}
}

// WithSchema returns a new Table handle carrying the given Schema
func (t *table) WithSchema(s colops.Schema) colops.Table {
	return &table{schema: s, rec: t.rec, parts: t.parts, eng: t.eng}
}

// ValidateColumns checks that column data covers the schema exactly, with
// consistent lengths, returning the row count
func ValidateColumns(s colops.Schema, columns map[string][]interface{}) (int, error) {
	numRows := -1
	err := s.ForEachColumn(func(name string, dtype colops.DataType) error {
		values, ok := columns[name]
		if !ok {
			return fmt.Errorf("no data supplied for column %s", name)
		}
		if numRows < 0 {
			numRows = len(values)
		} else if len(values) != numRows {
			return fmt.Errorf("column %s has %d values, expected %d", name, len(values), numRows)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if numRows < 0 {
		numRows = 0
	}
	return numRows, nil
}

// SplitColumns slices column data into numPartitions row ranges, preserving
// row order. Every partition receives at least one row when numRows permits;
// partition boundaries are never column-aware.
func SplitColumns(s colops.Schema, columns map[string][]interface{}, numRows int, numPartitions int) []colops.Partition {
	if numPartitions < 1 {
		numPartitions = 1
	}
	if numPartitions > numRows && numRows > 0 {
		numPartitions = numRows
	}
	if numRows == 0 {
		return []colops.Partition{partition.FromColumns(sliceColumns(s, columns, 0, 0), 0)}
	}
	parts := make([]colops.Partition, 0, numPartitions)
	chunk := numRows / numPartitions
	extra := numRows % numPartitions
	start := 0
	for i := 0; i < numPartitions; i++ {
		end := start + chunk
		if i < extra {
			end++
		}
		parts = append(parts, partition.FromColumns(sliceColumns(s, columns, start, end), end-start))
		start = end
	}
	return parts
}

func sliceColumns(s colops.Schema, columns map[string][]interface{}, start int, end int) map[string][]interface{} {
	sliced := make(map[string][]interface{}, s.NumColumns())
	for _, name := range s.ColumnNames() {
		sliced[name] = columns[name][start:end]
	}
	return sliced
}
