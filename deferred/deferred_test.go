package deferred

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaterializeRunsDependenciesFirst(t *testing.T) {
	left := NewNode("left", func(deps []interface{}) (interface{}, error) {
		return int64(2), nil
	})
	right := NewNode("right", func(deps []interface{}) (interface{}, error) {
		return int64(3), nil
	})
	sum := NewNode("sum", func(deps []interface{}) (interface{}, error) {
		return deps[0].(int64) + deps[1].(int64), nil
	}, left, right)

	result, err := sum.Materialize()
	require.Nil(t, err)
	require.Equal(t, int64(5), result)
}

func TestMaterializeIsIdempotent(t *testing.T) {
	var runs int64
	leaf := NewNode("leaf", func(deps []interface{}) (interface{}, error) {
		atomic.AddInt64(&runs, 1)
		return []int64{1, 2, 3}, nil
	})
	root := NewNode("root", func(deps []interface{}) (interface{}, error) {
		atomic.AddInt64(&runs, 1)
		var total int64
		for _, v := range deps[0].([]int64) {
			total += v
		}
		return total, nil
	}, leaf)

	first, err := root.Materialize()
	require.Nil(t, err)
	second, err := root.Materialize()
	require.Nil(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int64(2), atomic.LoadInt64(&runs))
}

func TestSharedDependencyRunsOnce(t *testing.T) {
	var runs int64
	shared := NewNode("shared", func(deps []interface{}) (interface{}, error) {
		atomic.AddInt64(&runs, 1)
		return int64(10), nil
	})
	a := NewNode("a", func(deps []interface{}) (interface{}, error) {
		return deps[0].(int64) + 1, nil
	}, shared)
	b := NewNode("b", func(deps []interface{}) (interface{}, error) {
		return deps[0].(int64) + 2, nil
	}, shared)
	root := NewNode("root", func(deps []interface{}) (interface{}, error) {
		return deps[0].(int64) * deps[1].(int64), nil
	}, a, b)

	result, err := root.Materialize()
	require.Nil(t, err)
	require.Equal(t, int64(132), result)
	require.Equal(t, int64(1), atomic.LoadInt64(&runs))
}

func TestMaterializePropagatesErrors(t *testing.T) {
	leaf := NewNode("leaf", func(deps []interface{}) (interface{}, error) {
		return nil, fmt.Errorf("boom")
	})
	root := NewNode("root", func(deps []interface{}) (interface{}, error) {
		t.Fatal("dependent node must not run after a dependency fails")
		return nil, nil
	}, leaf)

	_, err := root.Materialize()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestDerivedNodeIDsAreStable(t *testing.T) {
	leaf := NewNode("leaf", func(deps []interface{}) (interface{}, error) { return nil, nil })
	a := NewNode("merge", func(deps []interface{}) (interface{}, error) { return nil, nil }, leaf)
	b := NewNode("merge", func(deps []interface{}) (interface{}, error) { return nil, nil }, leaf)
	require.Equal(t, a.ID(), b.ID())

	other := NewNode("leaf", func(deps []interface{}) (interface{}, error) { return nil, nil })
	require.NotEqual(t, leaf.ID(), other.ID())
}
