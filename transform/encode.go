package transform

import (
	"context"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/aggregate"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/ml"
	"github.com/go-colops/colops/selector"
)

// StringToIndex fits le on the selected column's distinct labels across
// every partition, then replaces each value with its label index. Indices
// are assigned by sorted label order, so encoding does not depend on row
// order or partitioning. The fitted encoder is the caller's handle for
// decoding the indices back with IndexToString.
func StringToIndex(ctx context.Context, t colops.Table, colName string, le *ml.LabelEncoder, outputCols []string) (colops.Table, error) {
	labels, err := gatherLabels(ctx, t, colName)
	if err != nil {
		return nil, err
	}
	le.Fit(labels)
	intType := colops.IntType
	return Apply(ctx, t, selector.Name(colName), Op{Vector: le.Transform}, &Options{
		OutputCols: outputCols,
		Action:     meta.ActionStringToIndex,
		OutputType: &intType,
	})
}

// IndexToString maps the selected column's label indices back to the labels
// fitted on le. Indices outside the fitted range fail the operation.
func IndexToString(ctx context.Context, t colops.Table, colName string, le *ml.LabelEncoder, outputCols []string) (colops.Table, error) {
	stringType := colops.StringType
	return Apply(ctx, t, selector.Name(colName), Op{Vector: le.InverseTransform}, &Options{
		OutputCols: outputCols,
		Action:     meta.ActionIndexToString,
		OutputType: &stringType,
	})
}

// gatherLabels collects the distinct labels of one column across every
// partition
func gatherLabels(ctx context.Context, t colops.Table, colName string) ([]string, error) {
	result, err := aggregate.Aggregate(ctx, t, []string{colName},
		func(p colops.Partition, col string) (interface{}, error) {
			values, err := p.Column(col)
			if err != nil {
				return nil, err
			}
			distinct := make(map[string]struct{})
			for _, v := range values {
				if colops.IsNull(v) {
					continue
				}
				distinct[cast.FormatValue(v)] = struct{}{}
			}
			return distinct, nil
		},
		func(partials []interface{}) (interface{}, error) {
			distinct := make(map[string]struct{})
			for _, partial := range partials {
				for label := range partial.(map[string]struct{}) {
					distinct[label] = struct{}{}
				}
			}
			return distinct, nil
		})
	if err != nil {
		return nil, err
	}
	distinct := result[colName].(map[string]struct{})
	labels := make([]string, 0, len(distinct))
	for label := range distinct {
		labels = append(labels, label)
	}
	return labels, nil
}
