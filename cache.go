package mfasm

import (
	"container/list"
	"crypto/sha256"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// AssemblyCache caches assembled fonts by the content of their source, for
// tools that assemble the same sources repeatedly. Least recently used
// fonts are evicted once the cache holds maxSize fonts.
//
// Keys are the SHA-256 of the source bytes, so a file edited in place
// misses and an identical source under another name hits. Failed
// assemblies are not cached. A hit returns the same immutable *Font and
// does not re-issue diagnostics to a reporter; the warnings remain in
// Font.Warnings.
type AssemblyCache struct {
	mu      sync.Mutex
	entries map[[sha256.Size]byte]*list.Element
	order   *list.List // front is most recently used
	bytes   int64
	maxSize int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key  [sha256.Size]byte
	font *Font
	size int64
}

var (
	defaultMu    sync.RWMutex
	defaultCache = NewAssemblyCache(100)
)

// NewAssemblyCache creates a cache holding at most maxSize fonts.
// A maxSize of 0 or negative means unlimited.
func NewAssemblyCache(maxSize int) *AssemblyCache {
	return &AssemblyCache{
		entries: make(map[[sha256.Size]byte]*list.Element),
		order:   list.New(),
		maxSize: maxSize,
	}
}

// Assemble returns the cached font for data, assembling it on a miss.
// Concurrent misses on the same source may both assemble; the first result
// stored wins.
func (c *AssemblyCache) Assemble(data []byte, opts ...Option) (*Font, error) {
	key := sha256.Sum256(data)
	if font := c.get(key); font != nil {
		return font, nil
	}

	font, err := AssembleBytes(data, opts...)
	if err != nil {
		return nil, err
	}
	return c.put(key, font), nil
}

// AssembleFile reads path and assembles it through the cache.
func (c *AssemblyCache) AssembleFile(path string, opts ...Option) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return c.Assemble(data, append([]Option{WithSource(path)}, opts...)...)
}

func (c *AssemblyCache) get(key [sha256.Size]byte) *Font {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil
	}
	c.order.MoveToFront(el)
	c.hits.Add(1)
	return el.Value.(*cacheEntry).font
}

// put stores font under key and returns the font now cached for it.
func (c *AssemblyCache) put(key [sha256.Size]byte, font *Font) *Font {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*cacheEntry).font
	}

	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		c.evictOldest()
	}

	entry := &cacheEntry{key: key, font: font, size: estimateFontSize(font)}
	c.entries[key] = c.order.PushFront(entry)
	c.bytes += entry.size
	return font
}

func (c *AssemblyCache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	entry := c.order.Remove(el).(*cacheEntry)
	delete(c.entries, entry.key)
	c.bytes -= entry.size
	c.evictions.Add(1)
}

// Clear removes all fonts from the cache. Counters are kept.
func (c *AssemblyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[[sha256.Size]byte]*list.Element)
	c.order.Init()
	c.bytes = 0
}

// Stats returns a snapshot of the cache counters.
func (c *AssemblyCache) Stats() CacheStats {
	c.mu.Lock()
	size, bytes := c.order.Len(), c.bytes
	c.mu.Unlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Bytes:     bytes,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // fonts currently cached
	MaxSize   int    // 0 when unlimited
	Bytes     int64  // approximate memory held by cached fonts
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// estimateFontSize approximates the memory a font holds: glyph buffers with
// their slice headers, plus warning messages.
func estimateFontSize(f *Font) int64 {
	size := int64(len(f.Name)+len(f.Language)) + 128
	for _, g := range f.glyphs {
		size += int64(len(g.Data)) + 32
	}
	for _, w := range f.Warnings {
		size += int64(len(w.Message)) + 64
	}
	return size
}

// AssembleCached assembles data through the default cache.
func AssembleCached(data []byte, opts ...Option) (*Font, error) {
	defaultMu.RLock()
	c := defaultCache
	defaultMu.RUnlock()
	return c.Assemble(data, opts...)
}

// SetDefaultCacheSize replaces the default cache with an empty one holding
// at most maxSize fonts.
func SetDefaultCacheSize(maxSize int) {
	defaultMu.Lock()
	defaultCache = NewAssemblyCache(maxSize)
	defaultMu.Unlock()
}

// ClearDefaultCache empties the default cache.
func ClearDefaultCache() {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	defaultCache.Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCache.Stats()
}
