// Package partition provides colops' internal column-major Partition
// implementation, shared by the engine adapters. Partitions are immutable
// once constructed: operations build fresh partitions via CreateBuilder or
// FromColumns rather than mutating existing ones.
package partition

import (
	"log"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
	uuid "github.com/gofrs/uuid"
)

// partitionImpl is colops' internal implementation of Partition
type partitionImpl struct {
	id      string
	numRows int
	columns map[string][]interface{}
}

func newID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	return id.String()
}

// FromColumns creates a new Partition from column data. All column slices
// must have length numRows. The slices are retained, not copied; callers
// must not modify them afterwards.
func FromColumns(columns map[string][]interface{}, numRows int) colops.Partition {
	return &partitionImpl{
		id:      newID(),
		numRows: numRows,
		columns: columns,
	}
}

// Restore recreates a Partition under an existing ID, for deserialization.
// Used by partition caches; everywhere else FromColumns is the constructor.
func Restore(id string, columns map[string][]interface{}, numRows int) colops.Partition {
	return &partitionImpl{
		id:      id,
		numRows: numRows,
		columns: columns,
	}
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// NumRows retrieves the number of rows in this Partition
func (p *partitionImpl) NumRows() int {
	return p.numRows
}

// Column retrieves the values of one column within this Partition
func (p *partitionImpl) Column(colName string) ([]interface{}, error) {
	values, ok := p.columns[colName]
	if !ok {
		return nil, errors.UnknownColumnError{Name: colName}
	}
	return values, nil
}

// Value retrieves a single cell from this Partition
func (p *partitionImpl) Value(colName string, rowNum int) (interface{}, error) {
	values, err := p.Column(colName)
	if err != nil {
		return nil, err
	}
	return values[rowNum], nil
}

// A Builder assembles a new Partition column by column, typically starting
// from an existing Partition's data
type Builder struct {
	numRows int
	columns map[string][]interface{}
}

// CreateBuilder starts a Builder for a Partition with the given number of rows
func CreateBuilder(numRows int) *Builder {
	return &Builder{
		numRows: numRows,
		columns: make(map[string][]interface{}),
	}
}

// CreateBuilderFrom starts a Builder pre-populated with every column of an
// existing Partition restricted to the given schema. Column slices are
// shared by reference until overwritten with SetColumn, so untouched
// columns cost nothing.
func CreateBuilderFrom(p colops.Partition, s colops.Schema) (*Builder, error) {
	b := CreateBuilder(p.NumRows())
	err := s.ForEachColumn(func(name string, dtype colops.DataType) error {
		values, err := p.Column(name)
		if err != nil {
			// a column new to the schema starts out null
			values = make([]interface{}, p.NumRows())
		}
		b.columns[name] = values
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SetColumn replaces one column's values. values must have the Builder's
// row count.
func (b *Builder) SetColumn(colName string, values []interface{}) *Builder {
	if len(values) != b.numRows {
		log.Panicf("column %s has %d values, partition has %d rows", colName, len(values), b.numRows)
	}
	b.columns[colName] = values
	return b
}

// RenameColumn carries a column's values over under a new name
func (b *Builder) RenameColumn(oldName string, newName string) *Builder {
	if values, ok := b.columns[oldName]; ok {
		delete(b.columns, oldName)
		b.columns[newName] = values
	}
	return b
}

// RemoveColumn drops a column's values
func (b *Builder) RemoveColumn(colName string) *Builder {
	delete(b.columns, colName)
	return b
}

// Build finalizes the Builder into an immutable Partition
func (b *Builder) Build() colops.Partition {
	return FromColumns(b.columns, b.numRows)
}
