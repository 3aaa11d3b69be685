package schema

import (
	"fmt"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
)

// column records the position and declared type of a named column
type column struct {
	idx   int
	dtype colops.DataType
}

// schema is colops' internal implementation of Schema
type schema struct {
	columns map[string]*column
}

// CreateSchema is a factory for Schemas
func CreateSchema() colops.Schema {
	return &schema{columns: make(map[string]*column)}
}

// Clone returns a copy of this Schema
func (s *schema) Clone() colops.Schema {
	columns := make(map[string]*column, len(s.columns))
	for name, col := range s.columns {
		columns[name] = &column{idx: col.idx, dtype: col.dtype}
	}
	return &schema{columns: columns}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.columns)
}

// HasColumn returns true iff this Schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.columns[colName]
	return ok
}

// ColumnType returns the declared DataType of a column
func (s *schema) ColumnType(colName string) (colops.DataType, error) {
	col, ok := s.columns[colName]
	if !ok {
		return 0, errors.UnknownColumnError{Name: colName}
	}
	return col.dtype, nil
}

// ColumnNames returns the names in the schema, in column order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for name, col := range s.columns {
		names[col.idx] = name
	}
	return names
}

// ColumnTypes returns the types in the schema, in column order
func (s *schema) ColumnTypes() []colops.DataType {
	types := make([]colops.DataType, len(s.columns))
	for _, col := range s.columns {
		types[col.idx] = col.dtype
	}
	return types
}

// CreateColumn appends a new column to the end of the Schema
func (s *schema) CreateColumn(colName string, dtype colops.DataType) (colops.Schema, error) {
	if _, ok := s.columns[colName]; ok {
		return nil, fmt.Errorf("Schema already contains column with name %s", colName)
	}
	s.columns[colName] = &column{idx: len(s.columns), dtype: dtype}
	return s, nil
}

// InsertColumnAfter defines a new column immediately after an existing one,
// shifting the indices of later columns
func (s *schema) InsertColumnAfter(colName string, after string, dtype colops.DataType) (colops.Schema, error) {
	if _, ok := s.columns[colName]; ok {
		return nil, fmt.Errorf("Schema already contains column with name %s", colName)
	}
	anchor, ok := s.columns[after]
	if !ok {
		return nil, errors.UnknownColumnError{Name: after}
	}
	for _, col := range s.columns {
		if col.idx > anchor.idx {
			col.idx++
		}
	}
	s.columns[colName] = &column{idx: anchor.idx + 1, dtype: dtype}
	return s, nil
}

// RenameColumn renames a column within the Schema
func (s *schema) RenameColumn(oldName string, newName string) (colops.Schema, error) {
	col, ok := s.columns[oldName]
	if !ok {
		return nil, errors.UnknownColumnError{Name: oldName}
	}
	if _, exists := s.columns[newName]; exists {
		return nil, fmt.Errorf("Schema already contains column with name %s", newName)
	}
	delete(s.columns, oldName)
	s.columns[newName] = col
	return s, nil
}

// RemoveColumn removes a column from the Schema, closing the gap in indices
func (s *schema) RemoveColumn(colName string) (colops.Schema, bool) {
	col, ok := s.columns[colName]
	if !ok {
		return s, false
	}
	delete(s.columns, colName)
	for _, other := range s.columns {
		if other.idx > col.idx {
			other.idx--
		}
	}
	return s, true
}

// SetColumnType redeclares the DataType of an existing column
func (s *schema) SetColumnType(colName string, dtype colops.DataType) (colops.Schema, error) {
	col, ok := s.columns[colName]
	if !ok {
		return nil, errors.UnknownColumnError{Name: colName}
	}
	col.dtype = dtype
	return s, nil
}

// ForEachColumn iterates over the columns in this Schema, in column order
func (s *schema) ForEachColumn(fn func(name string, dtype colops.DataType) error) error {
	for _, name := range s.ColumnNames() {
		if err := fn(name, s.columns[name].dtype); err != nil {
			return err
		}
	}
	return nil
}

// Equals returns nil iff this and another Schema are equivalent
func (s *schema) Equals(other colops.Schema) error {
	if s.NumColumns() != other.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	names := s.ColumnNames()
	otherNames := other.ColumnNames()
	for i, name := range names {
		if otherNames[i] != name {
			return fmt.Errorf("Column %d is named %s, not %s", i, otherNames[i], name)
		}
		otherType, err := other.ColumnType(name)
		if err != nil {
			return err
		}
		if s.columns[name].dtype != otherType {
			return fmt.Errorf("Column %s types do not match", name)
		}
	}
	return nil
}
