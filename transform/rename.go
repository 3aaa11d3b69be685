package transform

import (
	"context"
	"fmt"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
	"github.com/go-colops/colops/partition"
)

// RenameSpec describes a set of column renames. It is a tagged union with
// one constructor per accepted form; exactly one variant is set.
type RenameSpec struct {
	pairs [][2]string
	fn    func(string) string
}

// RenamePair renames one column
func RenamePair(oldName string, newName string) RenameSpec {
	return RenameSpec{pairs: [][2]string{{oldName, newName}}}
}

// RenamePairs renames several columns, each pair ordered old then new
func RenamePairs(pairs ...[2]string) RenameSpec {
	return RenameSpec{pairs: pairs}
}

// RenameFunc renames every column through fn; columns fn maps to
// themselves are left alone
func RenameFunc(fn func(string) string) RenameSpec {
	return RenameSpec{fn: fn}
}

// Rename renames columns across the schema, every partition and the
// lineage record, carrying each renamed column's lineage over under its new
// name. Renaming an absent column fails with UnknownColumnError.
func Rename(ctx context.Context, t colops.Table, spec RenameSpec) (colops.Table, error) {
	pairs := spec.pairs
	if spec.fn != nil {
		for _, name := range t.Schema().ColumnNames() {
			if renamed := spec.fn(name); renamed != name {
				pairs = append(pairs, [2]string{name, renamed})
			}
		}
	} else if pairs == nil {
		return nil, fmt.Errorf("empty rename specification")
	}
	if len(pairs) == 0 {
		return t, nil
	}
	newSchema := t.Schema().Clone()
	for _, pair := range pairs {
		if !newSchema.HasColumn(pair[0]) {
			return nil, errors.UnknownColumnError{Name: pair[0]}
		}
		if _, err := newSchema.RenameColumn(pair[0], pair[1]); err != nil {
			return nil, err
		}
	}
	fn := func(idx int, p colops.Partition) (colops.Partition, error) {
		b, err := partition.CreateBuilderFrom(p, t.Schema())
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			b.RenameColumn(pair[0], pair[1])
		}
		return b.Build(), nil
	}
	next, err := t.Engine().TransformPartitions(ctx, t, newSchema, fn)
	if err != nil {
		return nil, err
	}
	rec := next.Meta()
	for _, pair := range pairs {
		rec = rec.Rename(pair[0], pair[1])
	}
	return next.WithMeta(rec), nil
}
