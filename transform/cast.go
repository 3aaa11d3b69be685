package transform

import (
	"context"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/selector"
)

// Cast converts the selected columns to params.Dtype. Values the target
// type cannot represent become null under cast.Nan, or fail the whole
// operation with a CastError under cast.Raise.
func Cast(ctx context.Context, t colops.Table, spec selector.Spec, params cast.Params, outputCols []string) (colops.Table, error) {
	fn := cast.Compile(params)
	dtype := params.Dtype
	return Apply(ctx, t, spec, Op{Element: ElementFunc(fn)}, &Options{
		OutputCols: outputCols,
		Action:     meta.ActionCast,
		Params: map[string]interface{}{
			"dtype":    dtype.String(),
			"on_error": params.OnError.String(),
		},
		OutputType: &dtype,
	})
}
