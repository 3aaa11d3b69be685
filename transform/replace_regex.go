package transform

import (
	"context"
	"regexp"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/selector"
)

// ReplaceRegex replaces every match of pattern in the selected columns with
// replacement, operating on each value's natural string form. Output
// columns are string typed; nulls pass through.
func ReplaceRegex(ctx context.Context, t colops.Table, spec selector.Spec, pattern string, replacement string, outputCols []string) (colops.Table, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	stringType := colops.StringType
	fn := func(v interface{}) (interface{}, error) {
		if colops.IsNull(v) {
			return nil, nil
		}
		return re.ReplaceAllString(cast.FormatValue(v), replacement), nil
	}
	return Apply(ctx, t, spec, Op{Element: fn}, &Options{
		OutputCols: outputCols,
		Action:     meta.ActionReplaceRegex,
		Params: map[string]interface{}{
			"pattern":     pattern,
			"replacement": replacement,
		},
		OutputType: &stringType,
	})
}
