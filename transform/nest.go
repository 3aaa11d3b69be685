package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/partition"
	"github.com/go-colops/colops/selector"
)

// NestShape selects the textual form a nested column takes
type NestShape int

const (
	// NestString joins the input values with the separator
	NestString NestShape = iota
	// NestArray renders the input values as a bracketed list
	NestArray
)

// Nest combines the selected columns row-wise into one new string column,
// inserted immediately after the last input column. Values are joined by
// their natural string form; nulls join as the empty string.
func Nest(ctx context.Context, t colops.Table, spec selector.Spec, separator string, shape NestShape, outputCol string) (colops.Table, error) {
	if outputCol == "" {
		return nil, fmt.Errorf("nest requires an output column name")
	}
	cols, err := selector.Select(t, spec, nil)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return t, nil
	}
	newSchema := t.Schema().Clone()
	if !newSchema.HasColumn(outputCol) {
		if _, err := newSchema.InsertColumnAfter(outputCol, cols[len(cols)-1], colops.StringType); err != nil {
			return nil, err
		}
	} else if _, err := newSchema.SetColumnType(outputCol, colops.StringType); err != nil {
		return nil, err
	}
	fn := func(idx int, p colops.Partition) (colops.Partition, error) {
		b, err := partition.CreateBuilderFrom(p, newSchema)
		if err != nil {
			return nil, err
		}
		columns := make([][]interface{}, len(cols))
		for i, col := range cols {
			columns[i], err = p.Column(col)
			if err != nil {
				return nil, err
			}
		}
		nested := make([]interface{}, p.NumRows())
		parts := make([]string, len(cols))
		for row := 0; row < p.NumRows(); row++ {
			for i := range cols {
				parts[i] = cast.FormatValue(columns[i][row])
			}
			if shape == NestArray {
				nested[row] = "[" + strings.Join(parts, ", ") + "]"
			} else {
				nested[row] = strings.Join(parts, separator)
			}
		}
		b.SetColumn(outputCol, nested)
		return b.Build(), nil
	}
	next, err := t.Engine().TransformPartitions(ctx, t, newSchema, fn)
	if err != nil {
		return nil, err
	}
	return colops.SetMeta(next, meta.ActionNest, map[string]interface{}{
		"columns":   cols,
		"separator": separator,
	}, outputCol), nil
}
