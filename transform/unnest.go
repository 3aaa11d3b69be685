package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/errors"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/partition"
)

// Unnest splits a string column on separator into splits new string
// columns, inserted immediately after the input column. Rows with fewer
// pieces than splits pad the remaining columns with null; extra pieces
// beyond splits stay joined in the last column. Output columns default to
// "<col>_0".."<col>_<splits-1>" when outputCols is nil.
func Unnest(ctx context.Context, t colops.Table, colName string, separator string, splits int, outputCols []string) (colops.Table, error) {
	if splits < 1 {
		return nil, fmt.Errorf("unnest requires at least one split, got %d", splits)
	}
	if !t.Schema().HasColumn(colName) {
		return nil, errors.UnknownColumnError{Name: colName}
	}
	if outputCols == nil {
		outputCols = make([]string, splits)
		for i := range outputCols {
			outputCols[i] = fmt.Sprintf("%s_%d", colName, i)
		}
	} else if len(outputCols) != splits {
		return nil, errors.ColumnCountMismatchError{Inputs: splits, Outputs: len(outputCols)}
	}
	newSchema := t.Schema().Clone()
	anchor := colName
	for _, out := range outputCols {
		if newSchema.HasColumn(out) {
			if _, err := newSchema.SetColumnType(out, colops.StringType); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := newSchema.InsertColumnAfter(out, anchor, colops.StringType); err != nil {
			return nil, err
		}
		anchor = out
	}
	fn := func(idx int, p colops.Partition) (colops.Partition, error) {
		b, err := partition.CreateBuilderFrom(p, newSchema)
		if err != nil {
			return nil, err
		}
		values, err := p.Column(colName)
		if err != nil {
			return nil, err
		}
		split := make([][]interface{}, splits)
		for i := range split {
			split[i] = make([]interface{}, len(values))
		}
		for row, v := range values {
			if colops.IsNull(v) {
				continue
			}
			pieces := strings.SplitN(cast.FormatValue(v), separator, splits)
			for i, piece := range pieces {
				split[i][row] = piece
			}
		}
		for i, out := range outputCols {
			b.SetColumn(out, split[i])
		}
		return b.Build(), nil
	}
	next, err := t.Engine().TransformPartitions(ctx, t, newSchema, fn)
	if err != nil {
		return nil, err
	}
	return colops.SetMeta(next, meta.ActionUnnest, map[string]interface{}{
		"column":    colName,
		"separator": separator,
		"splits":    splits,
	}, outputCols...), nil
}
