// Package memory implements the StorageEngine adapter for a single-machine,
// single-partition columnar engine. Every Table holds exactly one Partition
// and per-partition functions run on the calling goroutine.
package memory

import (
	"context"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/engine"
	"github.com/go-colops/colops/errors"
)

// Engine is a single-partition, in-process StorageEngine
type Engine struct{}

// CreateEngine is a factory for memory Engines
func CreateEngine() *Engine {
	return &Engine{}
}

// CreateTable constructs a new single-partition Table from column data
func (e *Engine) CreateTable(s colops.Schema, columns map[string][]interface{}) (colops.Table, error) {
	numRows, err := engine.ValidateColumns(s, columns)
	if err != nil {
		return nil, err
	}
	parts := engine.SplitColumns(s, columns, numRows, 1)
	return engine.CreateTable(e, s, nil, parts), nil
}

// MapPartitions applies fn to the Table's single Partition
func (e *Engine) MapPartitions(ctx context.Context, t colops.Table, fn colops.PartitionMapFunc) ([]interface{}, error) {
	results := make([]interface{}, t.NumPartitions())
	for i := 0; i < t.NumPartitions(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := fn(i, t.Partition(i))
		if err != nil {
			return nil, errors.PartitionError{Partition: i, Cause: err}
		}
		results[i] = result
	}
	return results, nil
}

// TransformPartitions applies fn to the Table's single Partition,
// constructing a new Table. The input Table is unmodified.
func (e *Engine) TransformPartitions(ctx context.Context, t colops.Table, newSchema colops.Schema, fn colops.PartitionTransformFunc) (colops.Table, error) {
	parts := make([]colops.Partition, t.NumPartitions())
	for i := 0; i < t.NumPartitions(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := fn(i, t.Partition(i))
		if err != nil {
			return nil, errors.PartitionError{Partition: i, Cause: err}
		}
		parts[i] = next
	}
	return engine.CreateTable(e, newSchema, t.Meta(), parts), nil
}
