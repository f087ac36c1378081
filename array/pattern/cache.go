package pattern

import (
	"sync"

	"github.com/cwbudde/algo-beam/array/steer"
	"github.com/cwbudde/algo-beam/array/taper"
)

// Request identifies one pattern computation by its scalar inputs. It is
// comparable and serves as the memoization key: two equal Requests
// describe bit-identical computations.
type Request struct {
	N, M       int
	Spacing    float64 // wavelengths
	Wavelength float64 // meters

	Taper      taper.Kind
	SidelobeDB float64

	Steering      steer.Direction
	Sweep         Sweep
	CrossAngleDeg float64
	Mode          Mode
}

// Cache memoizes computed patterns by Request. It is owned by whichever
// caller drives recomputation (typically a parameter-sweep layer); there
// is no package-level cache. Cached patterns are shared pointers and
// must be treated as read-only, which Pattern already requires.
type Cache struct {
	mu      sync.Mutex
	entries map[Request]*Pattern
}

// NewCache returns an empty pattern cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Request]*Pattern)}
}

// Get returns the cached pattern for req, if present.
func (c *Cache) Get(req Request) (*Pattern, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[req]
	return p, ok
}

// GetOrCompute returns the cached pattern for req, computing and storing
// it via compute on a miss. Errors are not cached.
func (c *Cache) GetOrCompute(req Request, compute func() (*Pattern, error)) (*Pattern, error) {
	if p, ok := c.Get(req); ok {
		return p, nil
	}

	p, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[req] = p
	c.mu.Unlock()
	return p, nil
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops all cached patterns.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Request]*Pattern)
}
