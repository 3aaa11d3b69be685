package transform

import (
	"context"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/partition"
)

// RowFunc computes one row's value for a derived column. It may read any
// column of the partition at the given row.
type RowFunc func(p colops.Partition, rowNum int) (interface{}, error)

// Set assigns a constant value to every row of outputCol, replacing the
// column if it exists and appending it at the end of the schema otherwise
func Set(ctx context.Context, t colops.Table, outputCol string, value interface{}, dtype colops.DataType) (colops.Table, error) {
	return set(ctx, t, outputCol, dtype, map[string]interface{}{
		"value": cast.FormatValue(value),
	}, func(p colops.Partition, rowNum int) (interface{}, error) {
		return value, nil
	})
}

// SetFunc assigns fn's per-row result to every row of outputCol, with the
// same column placement rules as Set
func SetFunc(ctx context.Context, t colops.Table, outputCol string, dtype colops.DataType, fn RowFunc) (colops.Table, error) {
	return set(ctx, t, outputCol, dtype, map[string]interface{}{
		"value": "computed",
	}, fn)
}

func set(ctx context.Context, t colops.Table, outputCol string, dtype colops.DataType, params map[string]interface{}, fn RowFunc) (colops.Table, error) {
	newSchema := t.Schema().Clone()
	if newSchema.HasColumn(outputCol) {
		if _, err := newSchema.SetColumnType(outputCol, dtype); err != nil {
			return nil, err
		}
	} else if _, err := newSchema.CreateColumn(outputCol, dtype); err != nil {
		return nil, err
	}
	transform := func(idx int, p colops.Partition) (colops.Partition, error) {
		b, err := partition.CreateBuilderFrom(p, newSchema)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, p.NumRows())
		for i := range values {
			values[i], err = fn(p, i)
			if err != nil {
				return nil, err
			}
		}
		b.SetColumn(outputCol, values)
		return b.Build(), nil
	}
	next, err := t.Engine().TransformPartitions(ctx, t, newSchema, transform)
	if err != nil {
		return nil, err
	}
	return colops.SetMeta(next, meta.ActionSet, params, outputCol), nil
}
