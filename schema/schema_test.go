package schema

import (
	"testing"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
	"github.com/stretchr/testify/require"
)

func TestSchemaCreateColumn(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", colops.IntType)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", colops.StringType)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col3", colops.DecimalType)
	require.Nil(t, err)

	require.Equal(t, 3, schema1.NumColumns())
	require.Equal(t, []string{"col1", "col2", "col3"}, schema1.ColumnNames())
	require.Equal(t, []colops.DataType{colops.IntType, colops.StringType, colops.DecimalType}, schema1.ColumnTypes())

	_, err = schema1.CreateColumn("col1", colops.BoolType)
	require.NotNil(t, err)
}

func TestSchemaEquality(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", colops.IntType)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", colops.StringType)
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", colops.IntType)
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", colops.StringType)
	require.Nil(t, err)

	require.Nil(t, schema1.Equals(schema2))

	_, err = schema2.SetColumnType("col2", colops.BoolType)
	require.Nil(t, err)
	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaInsertColumnAfter(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", colops.IntType)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", colops.StringType)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col3", colops.DecimalType)
	require.Nil(t, err)

	_, err = schema1.InsertColumnAfter("col1b", "col1", colops.BoolType)
	require.Nil(t, err)
	require.Equal(t, []string{"col1", "col1b", "col2", "col3"}, schema1.ColumnNames())

	_, err = schema1.InsertColumnAfter("colx", "nope", colops.BoolType)
	require.NotNil(t, err)
	require.IsType(t, errors.UnknownColumnError{}, err)
}

func TestSchemaRenameColumn(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", colops.IntType)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", colops.StringType)
	require.Nil(t, err)

	_, err = schema1.RenameColumn("col1", "first")
	require.Nil(t, err)
	require.True(t, schema1.HasColumn("first"))
	require.False(t, schema1.HasColumn("col1"))
	require.Equal(t, []string{"first", "col2"}, schema1.ColumnNames())

	_, err = schema1.RenameColumn("missing", "anything")
	require.IsType(t, errors.UnknownColumnError{}, err)
	_, err = schema1.RenameColumn("first", "col2")
	require.NotNil(t, err)
}

func TestSchemaRemoveColumn(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", colops.IntType)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", colops.StringType)
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col3", colops.DecimalType)
	require.Nil(t, err)

	_, removed := schema1.RemoveColumn("col2")
	require.True(t, removed)
	require.Equal(t, []string{"col1", "col3"}, schema1.ColumnNames())

	_, removed = schema1.RemoveColumn("col2")
	require.False(t, removed)
}

func TestSchemaCloneIsIndependent(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", colops.IntType)
	require.Nil(t, err)

	schema2 := schema1.Clone()
	_, err = schema2.CreateColumn("col2", colops.StringType)
	require.Nil(t, err)

	require.Equal(t, 1, schema1.NumColumns())
	require.Equal(t, 2, schema2.NumColumns())
}
