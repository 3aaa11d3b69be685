package partition

import (
	"testing"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
	"github.com/go-colops/colops/schema"
	"github.com/stretchr/testify/require"
)

func TestPartitionFromColumns(t *testing.T) {
	part := FromColumns(map[string][]interface{}{
		"col1": {int64(1), int64(2), int64(3)},
		"col2": {"a", "b", nil},
	}, 3)

	require.Equal(t, 3, part.NumRows())
	require.NotEmpty(t, part.ID())

	values, err := part.Column("col1")
	require.Nil(t, err)
	require.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, values)

	v, err := part.Value("col2", 2)
	require.Nil(t, err)
	require.Nil(t, v)

	_, err = part.Column("missing")
	require.IsType(t, errors.UnknownColumnError{}, err)
}

func TestBuilderFromSharesUntouchedColumns(t *testing.T) {
	col1 := []interface{}{int64(1), int64(2)}
	part := FromColumns(map[string][]interface{}{
		"col1": col1,
		"col2": {"a", "b"},
	}, 2)

	s := schema.CreateSchema()
	_, err := s.CreateColumn("col1", colops.IntType)
	require.Nil(t, err)
	_, err = s.CreateColumn("col2", colops.StringType)
	require.Nil(t, err)

	b, err := CreateBuilderFrom(part, s)
	require.Nil(t, err)
	b.SetColumn("col2", []interface{}{"x", "y"})
	next := b.Build()

	shared, err := next.Column("col1")
	require.Nil(t, err)
	require.Equal(t, &col1[0], &shared[0])

	replaced, err := next.Column("col2")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"x", "y"}, replaced)

	// original partition is untouched
	orig, err := part.Column("col2")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"a", "b"}, orig)
}

func TestBuilderNewSchemaColumnStartsNull(t *testing.T) {
	part := FromColumns(map[string][]interface{}{
		"col1": {int64(1), int64(2)},
	}, 2)

	s := schema.CreateSchema()
	_, err := s.CreateColumn("col1", colops.IntType)
	require.Nil(t, err)
	_, err = s.CreateColumn("col2", colops.StringType)
	require.Nil(t, err)

	b, err := CreateBuilderFrom(part, s)
	require.Nil(t, err)
	next := b.Build()

	values, err := next.Column("col2")
	require.Nil(t, err)
	require.Equal(t, []interface{}{nil, nil}, values)
}
