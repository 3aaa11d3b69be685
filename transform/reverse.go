package transform

import (
	"context"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/selector"
)

// Reverse reverses the characters of the selected string columns. Output
// columns are string typed; nulls pass through.
func Reverse(ctx context.Context, t colops.Table, spec selector.Spec, outputCols []string) (colops.Table, error) {
	stringType := colops.StringType
	fn := func(v interface{}) (interface{}, error) {
		if colops.IsNull(v) {
			return nil, nil
		}
		runes := []rune(cast.FormatValue(v))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes), nil
	}
	return Apply(ctx, t, spec, Op{Element: fn}, &Options{
		OutputCols: outputCols,
		Action:     meta.ActionReverse,
		OutputType: &stringType,
	})
}
