// Package selector resolves user-supplied column specifications against a
// Table's schema. A Spec is a tagged union: exactly one variant is set, and
// Select handles each with an explicit branch. Selection is a pure function
// of the schema and has no side effects.
package selector

import (
	"fmt"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
)

// Spec describes which columns an operation targets. Exactly one of the
// constructor variants below must be used.
type Spec struct {
	all   bool
	name  string
	names []string
	pred  func(colops.DataType) bool
}

// All selects every column in schema order (the wildcard)
func All() Spec {
	return Spec{all: true}
}

// Name selects a single named column
func Name(colName string) Spec {
	return Spec{name: colName}
}

// Names selects an ordered list of named columns
func Names(colNames ...string) Spec {
	return Spec{names: colNames}
}

// ByType selects columns whose declared DataType satisfies pred, in schema
// order
func ByType(pred func(colops.DataType) bool) Spec {
	return Spec{pred: pred}
}

// Options filters a selection after the Spec is resolved
type Options struct {
	// Types restricts the selection to columns of the given DataTypes
	Types []colops.DataType
	// Invert excludes, rather than includes, the columns matching Types
	Invert bool
}

// Select resolves spec into a concrete ordered list of existing column
// names. Named specs referencing absent columns fail with
// UnknownColumnError.
func Select(t colops.Table, spec Spec, opts *Options) ([]string, error) {
	s := t.Schema()
	var cols []string
	switch {
	case spec.all:
		cols = s.ColumnNames()
	case spec.name != "":
		if !s.HasColumn(spec.name) {
			return nil, errors.UnknownColumnError{Name: spec.name}
		}
		cols = []string{spec.name}
	case spec.names != nil:
		cols = make([]string, 0, len(spec.names))
		for _, name := range spec.names {
			if !s.HasColumn(name) {
				return nil, errors.UnknownColumnError{Name: name}
			}
			cols = append(cols, name)
		}
	case spec.pred != nil:
		for _, name := range s.ColumnNames() {
			dtype, err := s.ColumnType(name)
			if err != nil {
				return nil, err
			}
			if spec.pred(dtype) {
				cols = append(cols, name)
			}
		}
	default:
		return nil, fmt.Errorf("empty column specification")
	}
	if opts == nil || opts.Types == nil {
		return cols, nil
	}
	filter := make(map[colops.DataType]bool, len(opts.Types))
	for _, dtype := range opts.Types {
		filter[dtype] = true
	}
	filtered := make([]string, 0, len(cols))
	for _, name := range cols {
		dtype, err := s.ColumnType(name)
		if err != nil {
			return nil, err
		}
		if filter[dtype] != opts.Invert {
			filtered = append(filtered, name)
		}
	}
	return filtered, nil
}
