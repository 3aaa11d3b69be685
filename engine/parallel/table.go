package parallel

import (
	"log"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/meta"
)

// cachedTable is a Table whose partitions live in the Engine's partition
// cache rather than being held directly. Partition access promotes evicted
// partitions back to the resident tier transparently.
type cachedTable struct {
	schema colops.Schema
	rec    meta.Record
	ids    []string
	counts []int
	eng    *Engine
}

// Schema returns the Schema of this Table
func (t *cachedTable) Schema() colops.Schema {
	return t.schema
}

// Meta returns the lineage Record attached to this Table
func (t *cachedTable) Meta() meta.Record {
	return t.rec
}

// NumRows returns the total number of rows across all Partitions
func (t *cachedTable) NumRows() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// NumPartitions returns the number of Partitions in this Table
func (t *cachedTable) NumPartitions() int {
	return len(t.ids)
}

// Partition retrieves a specific Partition of this Table from the cache
func (t *cachedTable) Partition(idx int) colops.Partition {
	part, err := t.eng.cache.Get(t.ids[idx])
	if err != nil {
		log.Panicf("Unable to load partition %d: %v", idx, err)
	}
	return part
}

// Engine returns the StorageEngine which holds this Table
func (t *cachedTable) Engine() colops.StorageEngine {
	return t.eng
}

// WithMeta returns a new Table handle carrying the given lineage Record
func (t *cachedTable) WithMeta(rec meta.Record) colops.Table {
	return &cachedTable{schema: t.schema, rec: rec, ids: t.ids, counts: t.counts, eng: t.eng}
}

// WithSchema returns a new Table handle carrying the given Schema
func (t *cachedTable) WithSchema(s colops.Schema) colops.Table {
	return &cachedTable{schema: s, rec: t.rec, ids: t.ids, counts: t.counts, eng: t.eng}
}
