package transform

import (
	"context"
	"time"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/partition"
	"github.com/go-colops/colops/selector"
)

// DateFormat reformats the selected date-string columns from currentLayout
// to outputLayout, operating on whole partitions at a time. Values already
// parsed as dates reformat directly; strings that fail to parse under
// currentLayout become null.
func DateFormat(ctx context.Context, t colops.Table, spec selector.Spec, currentLayout string, outputLayout string, outputCols []string) (colops.Table, error) {
	stringType := colops.StringType
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
			formatted := make([]interface{}, len(values))
			for row, v := range values {
				switch d := v.(type) {
				case time.Time:
					formatted[row] = d.Format(outputLayout)
				case string:
					parsed, err := time.Parse(currentLayout, d)
					if err != nil {
						continue
					}
					formatted[row] = parsed.Format(outputLayout)
				}
			}
			b.SetColumn(outputs[i], formatted)
		}
		return b.Build(), nil
	}}
	return Apply(ctx, t, spec, op, &Options{
		OutputCols: outputCols,
		Action:     meta.ActionDateFormat,
		Params: map[string]interface{}{
			"current_format": currentLayout,
			"output_format":  outputLayout,
		},
		OutputType: &stringType,
	})
}
