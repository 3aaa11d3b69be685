// Package pcache provides an LRU cache bounding the number of uncompressed
// Partitions resident in memory. Partitions evicted from the resident tier
// are serialized and lz4-compressed in place rather than discarded, so a
// Get never loses data: it decompresses the entry and promotes it back to
// the resident tier.
package pcache

import (
	"container/list"
	"log"
	"sync"

	"github.com/go-colops/colops"
	"github.com/go-colops/colops/errors"
)

// Config configures an LRU partition cache
type Config struct {
	// MaxResident is the maximum number of uncompressed Partitions held at
	// once. Further insertions compress the least recently used entry.
	MaxResident int
}

// Cache is an LRU cache for Partitions with a compressed eviction tier
type Cache struct {
	mu          sync.Mutex
	maxResident int
	entries     map[string]*list.Element
	recent      *list.List // front is newest resident entry, back is oldest
	compressed  map[string]*compressedEntry
}

type cachedPartition struct {
	key   string
	value colops.Partition
}

type compressedEntry struct {
	schema colops.Schema
	data   []byte
}

// CreateCache produces an LRU partition Cache
func CreateCache(config *Config) *Cache {
	if config.MaxResident < 1 {
		log.Panicf("Config.MaxResident %d must be at least 1", config.MaxResident)
	}
	return &Cache{
		maxResident: config.MaxResident,
		entries:     make(map[string]*list.Element),
		recent:      list.New(),
		compressed:  make(map[string]*compressedEntry),
	}
}

// Put adds a Partition to the resident tier, compressing the least recently
// used entry if the tier is full. The schema describes the partition's
// columns and is needed to serialize it.
func (c *Cache) Put(s colops.Schema, part colops.Partition) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[part.ID()]; ok {
		c.recent.MoveToFront(e)
		return nil
	}
	delete(c.compressed, part.ID())
	e := c.recent.PushFront(&cachedPartition{key: part.ID(), value: part})
	c.entries[part.ID()] = e
	return c.evictLocked(s)
}

// Get returns the Partition stored under key, decompressing and promoting
// it back to the resident tier if it had been evicted
func (c *Cache) Get(key string) (colops.Partition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		c.recent.MoveToFront(e)
		return e.Value.(*cachedPartition).value, nil
	}
	ce, ok := c.compressed[key]
	if !ok {
		return nil, errors.UnknownPartitionError{ID: key}
	}
	part, err := decompressPartition(key, ce.schema, ce.data)
	if err != nil {
		return nil, err
	}
	delete(c.compressed, key)
	e := c.recent.PushFront(&cachedPartition{key: key, value: part})
	c.entries[key] = e
	if err := c.evictLocked(ce.schema); err != nil {
		return nil, err
	}
	return part, nil
}

// evictLocked compresses resident entries beyond MaxResident, oldest first
func (c *Cache) evictLocked(s colops.Schema) error {
	for c.recent.Len() > c.maxResident {
		oldest := c.recent.Back()
		cached := oldest.Value.(*cachedPartition)
		data, err := compressPartition(s, cached.value)
		if err != nil {
			return err
		}
		c.recent.Remove(oldest)
		delete(c.entries, cached.key)
		c.compressed[cached.key] = &compressedEntry{schema: s, data: data}
	}
	return nil
}

// NumResident returns the number of uncompressed Partitions held
func (c *Cache) NumResident() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recent.Len()
}

// NumCompressed returns the number of compressed Partitions held
func (c *Cache) NumCompressed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.compressed)
}
