package transform

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/cast"
	"github.com/go-colops/colops/meta"
	"github.com/go-colops/colops/selector"
)

// RemoveAccents strips diacritical marks from the selected string columns,
// decomposing each value to NFKD form and dropping combining marks. Output
// columns are string typed; nulls pass through.
func RemoveAccents(ctx context.Context, t colops.Table, spec selector.Spec, outputCols []string) (colops.Table, error) {
	stringType := colops.StringType
	fn := func(v interface{}) (interface{}, error) {
		if colops.IsNull(v) {
			return nil, nil
		}
		return stripMarks(cast.FormatValue(v)), nil
	}
	return Apply(ctx, t, spec, Op{Element: fn}, &Options{
		OutputCols: outputCols,
		Action:     meta.ActionRemoveAccents,
		OutputType: &stringType,
	})
}

func stripMarks(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
