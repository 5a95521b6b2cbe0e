package memory

import "sync"

// table is an insertion-ordered keyed map guarded by a RWMutex.
type table[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{items: make(map[K]V)}
}

func (t *table[K, V]) upsert(key K, fn func(existing V, ok bool) V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.items[key]
	if !ok {
		t.order = append(t.order, key)
	}
	t.items[key] = fn(existing, ok)
}

func (t *table[K, V]) get(key K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.items[key]
	return v, ok
}

func (t *table[K, V]) list() []V {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]V, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.items[k])
	}
	return out
}

func (t *table[K, V]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}
