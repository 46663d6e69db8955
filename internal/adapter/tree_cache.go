package adapter

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

// DefaultTreeCacheSize is the number of parsed documents kept in memory.
const DefaultTreeCacheSize = 256

// TreeCache keeps recently parsed snapshots keyed by content hash. It is safe
// for concurrent use; a nil *TreeCache never hits.
type TreeCache struct {
	docs *lru.ARCCache
}

// NewTreeCache creates a cache holding up to size documents.
func NewTreeCache(size int) (*TreeCache, error) {
	if size <= 0 {
		size = DefaultTreeCacheSize
	}

	docs, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("create tree cache: %w", err)
	}

	return &TreeCache{docs: docs}, nil
}

// Get returns the snapshot parsed from content with the given hash.
func (c *TreeCache) Get(hash string) (m.Document, bool) {
	if c == nil {
		return m.Document{}, false
	}

	v, ok := c.docs.Get(hash)
	if !ok {
		return m.Document{}, false
	}

	doc, ok := v.(m.Document)

	return doc, ok
}

// Add stores doc under hash.
func (c *TreeCache) Add(hash string, doc m.Document) {
	if c == nil || hash == "" {
		return
	}

	c.docs.Add(hash, doc)
}

// Len returns the number of cached documents.
func (c *TreeCache) Len() int {
	if c == nil {
		return 0
	}

	return c.docs.Len()
}
