package colops

import "github.com/go-colops/colops/meta"

// SetMeta records an applied action against each output column of t,
// returning a new Table handle carrying the updated lineage Record. The
// original Table's Record is never mutated.
func SetMeta(t Table, kind meta.ActionKind, params map[string]interface{}, outputCols ...string) Table {
	return t.WithMeta(t.Meta().With(kind, params, outputCols...))
}

// PreserveMeta copies lineage forward onto a derived Table, recording the
// given action with no parameters. Entries for untouched columns persist
// unchanged.
func PreserveMeta(t Table, kind meta.ActionKind, outputCols ...string) Table {
	return t.WithMeta(t.Meta().With(kind, nil, outputCols...))
}
