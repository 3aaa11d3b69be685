package parallel

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
	"github.com/go-colops/colops/schema"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func createTestTable(t *testing.T, eng *Engine, numRows int) colops.Table {
	s := schema.CreateSchema()
	s, err := s.CreateColumn("n", colops.IntType)
	require.Nil(t, err)
	values := make([]interface{}, numRows)
	for i := range values {
		values[i] = int64(i)
	}
	table, err := eng.CreateTable(s, map[string][]interface{}{"n": values})
	require.Nil(t, err)
	return table
}

func TestCreateTableSplitsRows(t *testing.T) {
	eng := CreateEngine(&Options{NumPartitions: 4})
	table := createTestTable(t, eng, 7)
	require.Equal(t, 4, table.NumPartitions())
	require.Equal(t, 7, table.NumRows())
	// the remainder spreads over the leading partitions
	require.Equal(t, 2, table.Partition(0).NumRows())
	require.Equal(t, 2, table.Partition(1).NumRows())
	require.Equal(t, 2, table.Partition(2).NumRows())
	require.Equal(t, 1, table.Partition(3).NumRows())
}

func TestCreateTableClampsPartitionsToRows(t *testing.T) {
	eng := CreateEngine(&Options{NumPartitions: 8})
	table := createTestTable(t, eng, 3)
	require.Equal(t, 3, table.NumPartitions())
}

func TestCreateTableEmpty(t *testing.T) {
	eng := CreateEngine(&Options{NumPartitions: 4})
	table := createTestTable(t, eng, 0)
	require.Equal(t, 1, table.NumPartitions())
	require.Equal(t, 0, table.NumRows())
}

func TestMapPartitionsVisitsEveryPartitionOnce(t *testing.T) {
	eng := CreateEngine(&Options{NumPartitions: 4, NumWorkers: 2})
	table := createTestTable(t, eng, 8)
	var visits int32
	results, err := eng.MapPartitions(context.Background(), table, func(idx int, p colops.Partition) (interface{}, error) {
		atomic.AddInt32(&visits, 1)
		return int64(p.NumRows()), nil
	})
	require.Nil(t, err)
	require.Equal(t, int32(4), atomic.LoadInt32(&visits))
	var total int64
	for _, r := range results {
		total += r.(int64)
	}
	require.Equal(t, int64(8), total)
}

func TestMapPartitionsSurfacesEveryFailure(t *testing.T) {
	eng := CreateEngine(&Options{NumPartitions: 4})
	table := createTestTable(t, eng, 8)
	_, err := eng.MapPartitions(context.Background(), table, func(idx int, p colops.Partition) (interface{}, error) {
		if idx%2 == 0 {
			return nil, fmt.Errorf("partition %d boom", idx)
		}
		return nil, nil
	})
	require.NotNil(t, err)
	var perr errors.PartitionError
	require.ErrorAs(t, err, &perr)
}

func TestMapPartitionsHonorsContext(t *testing.T) {
	eng := CreateEngine(&Options{NumPartitions: 4})
	table := createTestTable(t, eng, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := eng.MapPartitions(ctx, table, func(idx int, p colops.Partition) (interface{}, error) {
		return nil, nil
	})
	require.NotNil(t, err)
}

func TestTransformPartitionsPreservesRowOrder(t *testing.T) {
	eng := CreateEngine(&Options{NumPartitions: 4, NumWorkers: 2})
	table := createTestTable(t, eng, 10)
	next, err := eng.TransformPartitions(context.Background(), table, table.Schema(), func(idx int, p colops.Partition) (colops.Partition, error) {
		return p, nil
	})
	require.Nil(t, err)
	var gathered []interface{}
	for i := 0; i < next.NumPartitions(); i++ {
		values, err := next.Partition(i).Column("n")
		require.Nil(t, err)
		gathered = append(gathered, values...)
	}
	for i, v := range gathered {
		require.Equal(t, int64(i), v)
	}
}

func TestCachedEngineRoundTripsPartitions(t *testing.T) {
	eng := CreateEngine(&Options{NumPartitions: 6, MaxResidentPartitions: 2})
	table := createTestTable(t, eng, 12)
	require.Equal(t, 6, table.NumPartitions())
	// most partitions were evicted and compressed; reading them back
	// must decompress intact values
	var gathered []interface{}
	for i := 0; i < table.NumPartitions(); i++ {
		values, err := table.Partition(i).Column("n")
		require.Nil(t, err)
		gathered = append(gathered, values...)
	}
	require.Len(t, gathered, 12)
	for i, v := range gathered {
		require.Equal(t, int64(i), v)
	}
}

func TestStatsRecordWork(t *testing.T) {
	eng := CreateEngine(&Options{NumPartitions: 2})
	table := createTestTable(t, eng, 6)
	_, err := eng.MapPartitions(context.Background(), table, func(idx int, p colops.Partition) (interface{}, error) {
		return nil, nil
	})
	require.Nil(t, err)
	require.Equal(t, int64(6), eng.Stats().GetNumRowsProcessed())
	require.Equal(t, int64(2), eng.Stats().GetNumPartitionsProcessed())
}
