package mfasm

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(width int) []byte {
	return []byte(fmt.Sprintf("MAX_FONT_SIZE %dx1\nDRAW ON\n1\nDRAW OFF\n", width))
}

func TestAssemblyCache(t *testing.T) {
	c := NewAssemblyCache(2)

	a1, err := c.Assemble(source(1))
	require.NoError(t, err)
	a2, err := c.Assemble(source(1))
	require.NoError(t, err)
	assert.Same(t, a1, a2)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 50.0, stats.HitRate())
	assert.Positive(t, stats.Bytes)
}

func TestAssemblyCacheEviction(t *testing.T) {
	c := NewAssemblyCache(2)

	_, err := c.Assemble(source(1))
	require.NoError(t, err)
	_, err = c.Assemble(source(2))
	require.NoError(t, err)
	// touch 1 so that 2 is the least recently used
	_, err = c.Assemble(source(1))
	require.NoError(t, err)
	_, err = c.Assemble(source(3))
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, uint64(1), stats.Evictions)

	before := c.Stats().Hits
	_, err = c.Assemble(source(1))
	require.NoError(t, err)
	assert.Equal(t, before+1, c.Stats().Hits, "source 1 should still be cached")

	before = c.Stats().Misses
	_, err = c.Assemble(source(2))
	require.NoError(t, err)
	assert.Equal(t, before+1, c.Stats().Misses, "source 2 should have been evicted")
}

func TestAssemblyCacheSkipsFailures(t *testing.T) {
	c := NewAssemblyCache(0)

	for i := 0; i < 2; i++ {
		_, err := c.Assemble([]byte("BOGUS\n"))
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, uint64(2), stats.Misses)
}

func TestAssemblyCacheFile(t *testing.T) {
	c := NewAssemblyCache(0)
	path := filepath.Join(t.TempDir(), "font.mfs")

	require.NoError(t, os.WriteFile(path, source(1), 0o600))
	first, err := c.AssembleFile(path)
	require.NoError(t, err)

	// content changed under the same name
	require.NoError(t, os.WriteFile(path, source(2), 0o600))
	second, err := c.AssembleFile(path)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, second.MaxWidth)

	_, err = c.AssembleFile(filepath.Join(t.TempDir(), "missing.mfs"))
	assert.Error(t, err)
}

func TestAssemblyCacheClear(t *testing.T) {
	c := NewAssemblyCache(0)
	_, err := c.Assemble(source(1))
	require.NoError(t, err)

	c.Clear()
	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Zero(t, stats.Bytes)
	assert.Equal(t, uint64(1), stats.Misses, "counters survive Clear")
}

func TestAssemblyCacheConcurrent(t *testing.T) {
	c := NewAssemblyCache(4)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			font, err := c.Assemble(source(i%8 + 1))
			if assert.NoError(t, err) {
				assert.Equal(t, i%8+1, font.MaxWidth)
			}
		}(i)
	}
	wg.Wait()

	stats := c.Stats()
	assert.LessOrEqual(t, stats.Size, 4)
	assert.Equal(t, uint64(32), stats.Hits+stats.Misses)
}

func TestDefaultCache(t *testing.T) {
	SetDefaultCacheSize(10)
	defer SetDefaultCacheSize(100)

	_, err := AssembleCached(source(1))
	require.NoError(t, err)
	_, err = AssembleCached(source(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), DefaultCacheStats().Hits)

	ClearDefaultCache()
	assert.Equal(t, 0, DefaultCacheStats().Size)
}

func BenchmarkAssemblyCache(b *testing.B) {
	c := NewAssemblyCache(0)
	src := source(8)
	if _, err := c.Assemble(src); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Assemble(src); err != nil {
			b.Fatal(err)
		}
	}
}
