package pcache

import (
	"testing"
	"time"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
	"github.com/go-colops/colops/partition"
	"github.com/go-colops/colops/schema"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) colops.Schema {
	s := schema.CreateSchema()
	_, err := s.CreateColumn("num", colops.IntType)
	require.Nil(t, err)
	_, err = s.CreateColumn("label", colops.StringType)
	require.Nil(t, err)
	_, err = s.CreateColumn("when", colops.DateType)
	require.Nil(t, err)
	return s
}

func testPartition(i int) colops.Partition {
	return partition.FromColumns(map[string][]interface{}{
		"num":   {int64(i), nil, int64(i * 10)},
		"label": {"a", "b", nil},
		"when":  {time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), nil, nil},
	}, 3)
}

func TestCacheEvictsBeyondMaxResident(t *testing.T) {
	s := testSchema(t)
	cache := CreateCache(&Config{MaxResident: 2})

	parts := []colops.Partition{testPartition(1), testPartition(2), testPartition(3)}
	for _, p := range parts {
		require.Nil(t, cache.Put(s, p))
	}

	require.Equal(t, 2, cache.NumResident())
	require.Equal(t, 1, cache.NumCompressed())
}

func TestCacheGetRoundTripsCompressedPartition(t *testing.T) {
	s := testSchema(t)
	cache := CreateCache(&Config{MaxResident: 1})

	first := testPartition(1)
	second := testPartition(2)
	require.Nil(t, cache.Put(s, first))
	require.Nil(t, cache.Put(s, second))
	require.Equal(t, 1, cache.NumCompressed())

	// first was evicted and compressed; Get restores it intact
	restored, err := cache.Get(first.ID())
	require.Nil(t, err)
	require.Equal(t, first.ID(), restored.ID())
	require.Equal(t, 3, restored.NumRows())

	nums, err := restored.Column("num")
	require.Nil(t, err)
	require.Equal(t, []interface{}{int64(1), nil, int64(10)}, nums)

	whens, err := restored.Column("when")
	require.Nil(t, err)
	require.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), whens[0])
	require.Nil(t, whens[1])
}

func TestCacheGetUnknownPartition(t *testing.T) {
	cache := CreateCache(&Config{MaxResident: 1})
	_, err := cache.Get("nope")
	require.IsType(t, errors.UnknownPartitionError{}, err)
}

func TestCacheLRUOrdering(t *testing.T) {
	s := testSchema(t)
	cache := CreateCache(&Config{MaxResident: 2})

	first := testPartition(1)
	second := testPartition(2)
	third := testPartition(3)
	require.Nil(t, cache.Put(s, first))
	require.Nil(t, cache.Put(s, second))

	// touching first makes second the eviction candidate
	_, err := cache.Get(first.ID())
	require.Nil(t, err)
	require.Nil(t, cache.Put(s, third))

	cache.mu.Lock()
	_, secondResident := cache.entries[second.ID()]
	_, firstResident := cache.entries[first.ID()]
	cache.mu.Unlock()
	require.False(t, secondResident)
	require.True(t, firstResident)
}
