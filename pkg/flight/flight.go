// Package flight memoizes expensive computations with single-flight
// semantics: concurrent requests for the same key share one in-progress
// computation instead of racing to repeat it.
package flight

import "sync"

type Cache[K comparable, V any] struct {
	finished map[K]result[V]
	pending  map[K]*job[V]
	mu       sync.Mutex

	work func(K) (V, error)
}

type result[V any] struct {
	val V
	err error
}

type job[V any] struct {
	result[V]
	done chan struct{}
}

// NewCache builds a cache around work. Errors are not memoized; a failed
// key is recomputed on its next request.
func NewCache[K comparable, V any](work func(K) (V, error)) *Cache[K, V] {
	return &Cache[K, V]{
		finished: make(map[K]result[V]),
		pending:  make(map[K]*job[V]),
		work:     work,
	}
}

// Do returns the memoized value for key, computing it at most once no
// matter how many goroutines ask at the same time.
func (c *Cache[K, V]) Do(key K) (V, error) {
	c.mu.Lock()
	if r, ok := c.finished[key]; ok {
		c.mu.Unlock()
		return r.val, r.err
	}
	if j, ok := c.pending[key]; ok {
		c.mu.Unlock()
		<-j.done
		return j.val, j.err
	}

	j := &job[V]{done: make(chan struct{})}
	c.pending[key] = j
	c.mu.Unlock()

	j.val, j.err = c.work(key)

	c.mu.Lock()
	delete(c.pending, key)
	if j.err == nil {
		c.finished[key] = j.result
	}
	c.mu.Unlock()

	close(j.done)
	return j.val, j.err
}

// Invalidate drops the memoized value for key. A computation already in
// flight is unaffected and stores its result when it completes.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.finished, key)
	c.mu.Unlock()
}
