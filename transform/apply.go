// Package transform implements the column transform dispatcher: Apply runs
// a transformation function against selected columns of a Table, producing
// a new Table, and records lineage for every output column. The named
// operations in this package (Cast, Impute, Nest, DateFormat, ...) are all
// built on Apply or follow its conventions.
//
// The execution strategy is selected by which field of Op is set:
// Op.Vector receives a whole column and returns a whole column of equal
// length; Op.Element receives one value and returns one value, applied
// independently to every row; Op.PartitionNative receives a whole
// partition's native representation and is used when the partition itself
// must be manipulated directly.
package transform

import (
	"context"
	"fmt"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/partition"
	"github.com/go-colops/colops/selector"
)

// VectorFunc transforms a whole column, returning a column of equal length
type VectorFunc func(values []interface{}) ([]interface{}, error)

// ElementFunc transforms one value, applied independently to every row
type ElementFunc func(value interface{}) (interface{}, error)

// PartitionNativeFunc transforms a whole partition, returning a new
// partition covering newSchema with the same row count
type PartitionNativeFunc func(p colops.Partition, newSchema colops.Schema, inputCols []string, outputCols []string) (colops.Partition, error)

// Op is a tagged union selecting the execution strategy. Exactly one field
// must be set.
type Op struct {
	Vector          VectorFunc
	Element         ElementFunc
	PartitionNative PartitionNativeFunc
}

// Options configures an Apply call
type Options struct {
	// OutputCols names the output columns, pairing positionally with the
	// resolved input columns. When nil, results replace the input columns
	// in place; otherwise new columns are appended immediately after the
	// last input column.
	OutputCols []string
	// Action is the lineage kind recorded against each output column;
	// ActionApply if unset
	Action meta.ActionKind
	// Params describe the transform in the lineage entry
	Params map[string]interface{}
	// Types restricts the column selection by declared DataType
	Types []colops.DataType
	// OutputType declares the DataType of output columns; when nil each
	// output keeps its input column's type
	OutputType *colops.DataType
}

// Apply runs op against the columns selected by spec, returning a new
// Table. The input Table's columns and metadata are never modified.
func Apply(ctx context.Context, t colops.Table, spec selector.Spec, op Op, opts *Options) (colops.Table, error) {
	if opts == nil {
		opts = &Options{}
	}
	var selOpts *selector.Options
	if opts.Types != nil {
		selOpts = &selector.Options{Types: opts.Types}
	}
	cols, err := selector.Select(t, spec, selOpts)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return t, nil
	}
	outputs, newSchema, err := resolveOutputs(t, cols, opts)
	if err != nil {
		return nil, err
	}
	fn, err := partitionTransform(op, newSchema, cols, outputs)
	if err != nil {
		return nil, err
	}
	next, err := t.Engine().TransformPartitions(ctx, t, newSchema, fn)
	if err != nil {
		return nil, err
	}
	action := opts.Action
	if action == "" {
		action = meta.ActionApply
	}
	return colops.SetMeta(next, action, opts.Params, outputs...), nil
}

// resolveOutputs reconciles output column naming against the schema,
// producing the new schema up front so the transform fails before any
// partition work when the column lists disagree
func resolveOutputs(t colops.Table, cols []string, opts *Options) ([]string, colops.Schema, error) {
	newSchema := t.Schema().Clone()
	outputs := opts.OutputCols
	if outputs == nil {
		outputs = cols
	} else if len(outputs) != len(cols) {
		return nil, nil, errors.ColumnCountMismatchError{Inputs: len(cols), Outputs: len(outputs)}
	}
	anchor := cols[len(cols)-1]
	for i, out := range outputs {
		dtype, err := newSchema.ColumnType(cols[i])
		if err != nil {
			return nil, nil, err
		}
		if opts.OutputType != nil {
			dtype = *opts.OutputType
		}
		if newSchema.HasColumn(out) {
			if _, err := newSchema.SetColumnType(out, dtype); err != nil {
				return nil, nil, err
			}
			continue
		}
		if _, err := newSchema.InsertColumnAfter(out, anchor, dtype); err != nil {
			return nil, nil, err
		}
		anchor = out
	}
	return outputs, newSchema, nil
}

// partitionTransform compiles op into the per-partition transform shared by
// all execution strategies
func partitionTransform(op Op, newSchema colops.Schema, cols []string, outputs []string) (colops.PartitionTransformFunc, error) {
	switch {
	case op.PartitionNative != nil:
		return func(idx int, p colops.Partition) (colops.Partition, error) {
			next, err := op.PartitionNative(p, newSchema, cols, outputs)
			if err != nil {
				return nil, err
			}
			if next.NumRows() != p.NumRows() {
				return nil, fmt.Errorf("partition-native transform changed row count from %d to %d", p.NumRows(), next.NumRows())
			}
			return next, nil
		}, nil
	case op.Vector != nil:
		return columnTransform(newSchema, cols, outputs, op.Vector), nil
	case op.Element != nil:
		vector := func(values []interface{}) ([]interface{}, error) {
			out := make([]interface{}, len(values))
			for i, v := range values {
				result, err := op.Element(v)
				if err != nil {
					return nil, err
				}
				out[i] = result
			}
			return out, nil
		}
		return columnTransform(newSchema, cols, outputs, vector), nil
	default:
		return nil, fmt.Errorf("empty transform operation")
	}
}

func columnTransform(newSchema colops.Schema, cols []string, outputs []string, fn VectorFunc) colops.PartitionTransformFunc {
	return func(idx int, p colops.Partition) (colops.Partition, error) {
		b, err := partition.CreateBuilderFrom(p, newSchema)
		if err != nil {
			return nil, err
		}
		for i, col := range cols {
			values, err := p.Column(col)
			if err != nil {
				return nil, err
			}
			transformed, err := fn(values)
			if err != nil {
				return nil, err
			}
			if len(transformed) != len(values) {
				return nil, fmt.Errorf("vectorized transform of column %s changed length from %d to %d", col, len(values), len(transformed))
			}
			b.SetColumn(outputs[i], transformed)
		}
		return b.Build(), nil
	}
}
