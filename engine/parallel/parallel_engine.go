// Package parallel implements the StorageEngine adapter for a local
// partitioned engine: tables are split into partitions and per-partition
// functions run concurrently on a bounded worker pool. The merge stage never
// observes completion order, so results are deterministic regardless of
// scheduling. Optionally the engine bounds resident partitions with an
// lz4-compressed LRU cache.
package parallel

import (
	"context"
	"io"
	"log"
	"runtime"

	"log/slog"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/engine"
	"github.com/go-colops/colops/engine/pcache"
	"github.com/go-colops/colops/errors"
	"github.com/go-colops/colops/logging"
	"github.com/go-colops/colops/meta"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Options configures a parallel Engine
type Options struct {
	// NumPartitions is the number of partitions new Tables are split into
	NumPartitions int
	// NumWorkers bounds concurrent per-partition work; defaults to NumCPU
	NumWorkers int
	// MaxResidentPartitions bounds uncompressed partitions held in memory;
	// 0 disables the partition cache and holds all partitions directly
	MaxResidentPartitions int
	// Logger receives partition lifecycle events at debug level
	Logger *slog.Logger
}

// Engine is a multi-partition, worker-pool StorageEngine
type Engine struct {
	opts   Options
	cache  *pcache.Cache
	logger *slog.Logger
	stats  *RunStatistics
}

// CreateEngine is a factory for parallel Engines
func CreateEngine(opts *Options) *Engine {
	if opts == nil {
		opts = &Options{}
	}
	conf := *opts
	if conf.NumPartitions < 1 {
		conf.NumPartitions = 4
	}
	if conf.NumWorkers < 1 {
		conf.NumWorkers = runtime.NumCPU()
	}
	if conf.Logger == nil {
		conf.Logger = logging.CreateLogger(io.Discard, logging.ErrorLevel)
	}
	e := &Engine{
		opts:   conf,
		logger: conf.Logger,
		stats:  createRunStatistics(),
	}
	if conf.MaxResidentPartitions > 0 {
		e.cache = pcache.CreateCache(&pcache.Config{MaxResident: conf.MaxResidentPartitions})
	}
	return e
}

// Stats returns runtime statistics for work executed by this Engine
func (e *Engine) Stats() *RunStatistics {
	return e.stats
}

// CreateTable constructs a new Table from column data, split into the
// Engine's configured number of partitions
func (e *Engine) CreateTable(s colops.Schema, columns map[string][]interface{}) (colops.Table, error) {
	numRows, err := engine.ValidateColumns(s, columns)
	if err != nil {
		return nil, err
	}
	parts := engine.SplitColumns(s, columns, numRows, e.opts.NumPartitions)
	return e.assembleTable(s, nil, parts)
}

// assembleTable builds a Table handle, registering partitions with the
// cache when one is configured
func (e *Engine) assembleTable(s colops.Schema, rec meta.Record, parts []colops.Partition) (colops.Table, error) {
	if e.cache == nil {
		return engine.CreateTable(e, s, rec, parts), nil
	}
	ids := make([]string, len(parts))
	counts := make([]int, len(parts))
	for i, p := range parts {
		if err := e.cache.Put(s, p); err != nil {
			return nil, err
		}
		ids[i] = p.ID()
		counts[i] = p.NumRows()
	}
	if rec == nil {
		rec = meta.CreateRecord()
	}
	return &cachedTable{schema: s, rec: rec, ids: ids, counts: counts, eng: e}, nil
}

// MapPartitions applies fn to every Partition of t on the worker pool.
// Either all partitions contribute a result, or every partition failure is
// returned, wrapped with its partition index.
func (e *Engine) MapPartitions(ctx context.Context, t colops.Table, fn colops.PartitionMapFunc) ([]interface{}, error) {
	numPartitions := t.NumPartitions()
	results := make([]interface{}, numPartitions)
	partitionErrs := make([]error, numPartitions)
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, e.opts.NumWorkers)
	for i := 0; i < numPartitions; i++ {
		i := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			part := t.Partition(i)
			result, err := fn(i, part)
			if err != nil {
				partitionErrs[i] = errors.PartitionError{Partition: i, Cause: err}
				return partitionErrs[i]
			}
			results[i] = result
			e.stats.recordPartition(part.NumRows())
			e.logger.Debug("partition map complete", "partition", i, "rows", part.NumRows())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var combined *multierror.Error
		for _, perr := range partitionErrs {
			if perr != nil {
				combined = multierror.Append(combined, perr)
			}
		}
		if combined != nil {
			return nil, combined.ErrorOrNil()
		}
		return nil, err
	}
	return results, nil
}

// TransformPartitions applies fn to every Partition of t on the worker
// pool, constructing a new Table. The input Table is unmodified.
func (e *Engine) TransformPartitions(ctx context.Context, t colops.Table, newSchema colops.Schema, fn colops.PartitionTransformFunc) (colops.Table, error) {
	transformed, err := e.MapPartitions(ctx, t, func(idx int, p colops.Partition) (interface{}, error) {
		return fn(idx, p)
	})
	if err != nil {
		return nil, err
	}
	parts := make([]colops.Partition, len(transformed))
	for i, p := range transformed {
		next, ok := p.(colops.Partition)
		if !ok {
			log.Panicf("partition transform %d produced %T, not a Partition", i, p)
		}
		parts[i] = next
	}
	return e.assembleTable(newSchema, t.Meta(), parts)
}
