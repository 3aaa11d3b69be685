package colops

import (
	"context"

	"github.com/go-colops/colops/meta"
)

// Schema is an ordered mapping from column names to DataTypes. It allows one
// to look up types by name, define new columns, rename columns, etc.
// Column names are unique within a Schema.
type Schema interface {
	Clone() Schema                                              // Clone returns a copy of this Schema
	NumColumns() int                                            // NumColumns returns the number of columns in this Schema
	HasColumn(colName string) bool                              // HasColumn returns true iff this Schema contains a column with the given name
	ColumnType(colName string) (DataType, error)                // ColumnType returns the declared DataType of a column
	ColumnNames() []string                                      // ColumnNames returns the names in the schema, in column order
	ColumnTypes() []DataType                                    // ColumnTypes returns the types in the schema, in column order
	CreateColumn(colName string, dtype DataType) (Schema, error)// CreateColumn appends a new column to the Schema
	InsertColumnAfter(colName string, after string, dtype DataType) (Schema, error) // InsertColumnAfter defines a new column immediately after an existing one
	RenameColumn(oldName string, newName string) (Schema, error)// RenameColumn renames a column within the Schema
	RemoveColumn(colName string) (Schema, bool)                 // RemoveColumn removes a column from the Schema
	SetColumnType(colName string, dtype DataType) (Schema, error) // SetColumnType redeclares the DataType of an existing column
	ForEachColumn(fn func(name string, dtype DataType) error) error // ForEachColumn iterates over columns in column order
	Equals(other Schema) error                                  // Equals returns nil iff this and another Schema are equivalent
}

// A Partition is a disjoint, order-preserving slice of a Table's rows, and
// the unit of independent computation. Partitions are immutable once
// constructed; transforms produce fresh Partitions rather than mutating.
type Partition interface {
	ID() string                                      // ID retrieves the ID of this Partition
	NumRows() int                                    // NumRows retrieves the number of rows in this Partition
	Column(colName string) ([]interface{}, error)    // Column retrieves the values of one column within this Partition. Callers must not mutate the returned slice.
	Value(colName string, rowNum int) (interface{}, error) // Value retrieves a single cell
}

// A Table is a logical ordered collection of named columns, partitioned into
// an ordered sequence of Partitions. Tables are immutable: every transform
// returns a new Table, sharing untouched Partitions by reference with the
// original.
type Table interface {
	Schema() Schema                 // Schema returns the Schema of this Table
	Meta() meta.Record              // Meta returns the lineage Record attached to this Table
	NumRows() int                   // NumRows returns the total number of rows across all Partitions
	NumPartitions() int             // NumPartitions returns the number of Partitions in this Table
	Partition(idx int) Partition    // Partition retrieves a specific Partition of this Table
	Engine() StorageEngine          // Engine returns the StorageEngine which holds this Table
	WithMeta(rec meta.Record) Table // WithMeta returns a new Table handle carrying the given lineage Record
	WithSchema(s Schema) Table      // WithSchema returns a new Table handle carrying the given Schema (partition data is unchanged)
}

// PartitionMapFunc computes a partition-local result for one Partition.
// Implementations must not assume any ordering among partitions.
type PartitionMapFunc func(idx int, p Partition) (interface{}, error)

// PartitionTransformFunc produces a new Partition from an existing one.
type PartitionTransformFunc func(idx int, p Partition) (Partition, error)

// A StorageEngine stores Tables as Partitions and executes functions against
// them. It is the capability contract which makes the operations in this
// module engine-agnostic: one adapter exists per backend.
type StorageEngine interface {
	// CreateTable constructs a new Table from column data. Every column
	// named by the Schema must be present in columns, with equal lengths.
	CreateTable(s Schema, columns map[string][]interface{}) (Table, error)
	// MapPartitions applies fn to every Partition of t, returning one
	// partition-local result per Partition, indexed by partition position.
	// Partitions may be processed in parallel and in any order. Either all
	// partitions contribute a result, or an error is returned.
	MapPartitions(ctx context.Context, t Table, fn PartitionMapFunc) ([]interface{}, error)
	// TransformPartitions applies fn to every Partition of t, constructing
	// a new Table conforming to newSchema from the resulting Partitions.
	// The input Table is never modified.
	TransformPartitions(ctx context.Context, t Table, newSchema Schema, fn PartitionTransformFunc) (Table, error)
}
