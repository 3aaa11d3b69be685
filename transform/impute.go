package transform

import (
	"context"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/aggregate"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/ml"
	"github.com/go-colops/colops/partition"
	"github.com/go-colops/colops/selector"
)

// Impute fills missing values in the selected columns according to the
// imputer's strategy. The fill value is fitted once per column across every
// partition, so the result does not depend on how the table is partitioned.
// Mean and Median coerce the output column to decimal; the other strategies
// keep the input column's type.
func Impute(ctx context.Context, t colops.Table, spec selector.Spec, im *ml.Imputer, outputCols []string) (colops.Table, error) {
	cols, err := selector.Select(t, spec, nil)
	if err != nil {
		return nil, err
	}
	columns, err := gatherColumns(ctx, t, cols)
	if err != nil {
		return nil, err
	}
	imputers := make(map[string]*ml.Imputer, len(cols))
	for _, col := range cols {
		colImputer := &ml.Imputer{Strategy: im.Strategy, FillValue: im.FillValue}
		if err := colImputer.Fit(columns[col]); err != nil {
			return nil, err
		}
		imputers[col] = colImputer
	}
	opts := &Options{
		OutputCols: outputCols,
		Action:     meta.ActionImpute,
		Params: map[string]interface{}{
			"strategy": string(im.Strategy),
		},
	}
	if im.Strategy == ml.Mean || im.Strategy == ml.Median {
		decimal := colops.DecimalType
		opts.OutputType = &decimal
	}
	op := Op{PartitionNative: func(p colops.Partition, newSchema colops.Schema, inputCols []string, outputs []string) (colops.Partition, error) {
		b, err := partition.CreateBuilderFrom(p, newSchema)
		if err != nil {
			return nil, err
		}
		for i, col := range inputCols {
			values, err := p.Column(col)
			if err != nil {
				return nil, err
			}
			filled, err := imputers[col].ApplyFill(values)
			if err != nil {
				return nil, err
			}
			b.SetColumn(outputs[i], filled)
		}
		return b.Build(), nil
	}}
	return Apply(ctx, t, selector.Names(cols...), op, opts)
}

// gatherColumns reassembles whole columns from the table's partitions, in
// row order
func gatherColumns(ctx context.Context, t colops.Table, cols []string) (map[string][]interface{}, error) {
	result, err := aggregate.Aggregate(ctx, t, cols,
		func(p colops.Partition, colName string) (interface{}, error) {
			return p.Column(colName)
		},
		func(partials []interface{}) (interface{}, error) {
			var values []interface{}
			for _, partial := range partials {
				values = append(values, partial.([]interface{})...)
			}
			return values, nil
		})
	if err != nil {
		return nil, err
	}
	columns := make(map[string][]interface{}, len(cols))
	for _, col := range cols {
		columns[col] = result[col].([]interface{})
	}
	return columns, nil
}
