// Package fscache implements a per-build, concurrency-safe cache of file
// contents keyed by (path, size, mtime), so that multiple tasks sharing an
// overlapping source tree (spec §4.4's permitted outputExt overlap) do not
// each re-read the same bytes. Only contents are cached; each task still
// hashes the bytes it gets back itself.
package fscache

import (
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"

	"go.bud.dev/bud/internal/core/domain"
)

// Cache caches file contents for the lifetime of a single Execute call. It
// has no bearing on correctness: a cache miss or an empty Cache falls back
// to reading the file directly, and the value returned is always the real
// file bytes.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]entry
}

type entry struct {
	key      string // path, kept to detect the (very unlikely) hash collision
	size     int64
	modTime  int64
	contents []byte
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[uint64]entry)}
}

// ReadFile returns path's contents, using the cache when the file's size
// and modification time have not changed since it was last read through
// this Cache.
func (c *Cache) ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewIOFailureError("stating file for content cache", err)
	}

	statKey := statHash(path, info.Size(), info.ModTime().UnixNano())

	c.mu.Lock()
	if e, ok := c.entries[statKey]; ok && e.key == path && e.size == info.Size() && e.modTime == info.ModTime().UnixNano() {
		c.mu.Unlock()
		return e.contents, nil
	}
	c.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewIOFailureError("reading file for content cache", err)
	}

	c.mu.Lock()
	c.entries[statKey] = entry{key: path, size: info.Size(), modTime: info.ModTime().UnixNano(), contents: data}
	c.mu.Unlock()

	return data, nil
}

func statHash(path string, size, modTime int64) uint64 {
	h := xxhash.New()
	h.WriteString(path) //nolint:errcheck // xxhash.Digest.Write never errors
	h.Write([]byte{0})
	writeInt64(h, size)
	writeInt64(h, modTime)
	return h.Sum64()
}

func writeInt64(h *xxhash.Digest, v int64) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	h.Write(buf[:]) //nolint:errcheck // xxhash.Digest.Write never errors
}
