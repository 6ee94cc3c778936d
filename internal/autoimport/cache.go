package autoimport

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of scanned files kept in memory.
const DefaultCacheSize = 1024

// Cache memoizes per-file export scans. Entries are keyed by path,
// modification time and size, so edited files are rescanned. It is safe for
// concurrent use and may be shared across runs.
type Cache struct {
	files *lru.Cache[string, []Import]
}

// NewCache creates a cache holding up to size files.
func NewCache(size int) (*Cache, error) {
	files, err := lru.New[string, []Import](size)
	if err != nil {
		return nil, fmt.Errorf("creating scan cache: %w", err)
	}
	return &Cache{files: files}, nil
}

func cacheKey(path string, info os.FileInfo) string {
	return fmt.Sprintf("%s:%d:%d", path, info.ModTime().UnixNano(), info.Size())
}

// Get returns the cached exports for the file described by info.
func (c *Cache) Get(path string, info os.FileInfo) ([]Import, bool) {
	if c == nil {
		return nil, false
	}
	return c.files.Get(cacheKey(path, info))
}

// Add records the exports of the file described by info.
func (c *Cache) Add(path string, info os.FileInfo, imports []Import) {
	if c == nil {
		return
	}
	c.files.Add(cacheKey(path, info), imports)
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.files.Len()
}
