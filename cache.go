package slide

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/groupcache/lru"
)

type queryKind uint8

const (
	queryCollide queryKind = iota
	queryCollideAndSlide
	queryRepel
	queryRepelAndSlide
)

// cacheKey is the exact input tuple of a query
type cacheKey struct {
	kind   queryKind
	prev   mgl64.Vec3
	pos    mgl64.Vec3
	radius float64
}

// Cache memoizes mesh queries by their exact inputs, for bodies that repeat the same query every
// tick (e.g. resting or static objects). Results are identical to the uncached mesh.
// A Cache is safe for concurrent use.
type Cache struct {
	mesh *Mesh

	mu      sync.Mutex
	entries *lru.Cache
	hits    uint64
	misses  uint64
}

// NewCache keeps at most size results; a size of 0 means no limit
func NewCache(mesh *Mesh, size int) *Cache {
	return &Cache{
		mesh:    mesh,
		entries: lru.New(size),
	}
}

// Collide is Mesh.Collide, memoized
func (c *Cache) Collide(prev, pos mgl64.Vec3, radius float64) Resolution {
	return c.get(cacheKey{queryCollide, prev, pos, radius}, c.mesh.Collide)
}

// CollideAndSlide is Mesh.CollideAndSlide, memoized
func (c *Cache) CollideAndSlide(prev, pos mgl64.Vec3, radius float64) Resolution {
	return c.get(cacheKey{queryCollideAndSlide, prev, pos, radius}, c.mesh.CollideAndSlide)
}

// Repel is Mesh.Repel, memoized
func (c *Cache) Repel(prev, pos mgl64.Vec3, radius float64) Resolution {
	return c.get(cacheKey{queryRepel, prev, pos, radius}, c.mesh.Repel)
}

// RepelAndSlide is Mesh.RepelAndSlide, memoized
func (c *Cache) RepelAndSlide(prev, pos mgl64.Vec3, radius float64) Resolution {
	return c.get(cacheKey{queryRepelAndSlide, prev, pos, radius}, c.mesh.RepelAndSlide)
}

// Grounded runs the ground probe through the cached Repel
func (c *Cache) Grounded(pos mgl64.Vec3, radius float64, down mgl64.Vec3, distance float64) bool {
	return grounded(c.Repel, pos, radius, down, distance)
}

// Stats returns the number of cache hits and misses so far
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hits, c.misses
}

// Len returns the number of memoized results
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries.Len()
}

// Clear drops every memoized result, keeping the hit and miss counters
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Clear()
}

func (c *Cache) get(key cacheKey, compute query) Resolution {
	c.mu.Lock()
	if value, ok := c.entries.Get(key); ok {
		c.hits++
		c.mu.Unlock()
		return value.(Resolution)
	}
	c.misses++
	c.mu.Unlock()

	// computed outside the lock: the mesh is read-only, two callers may compute the same key
	res := compute(key.prev, key.pos, key.radius)

	c.mu.Lock()
	c.entries.Add(key, res)
	c.mu.Unlock()

	return res
}
