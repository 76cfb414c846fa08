package engine

// collection is a keyed set that preserves insertion order. It is the only
// structure change events are applied to; callers hold the engine lock.
type collection[T any] struct {
	order []int64
	items map[int64]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[int64]T)}
}

// insert appends the item unless the key is already present. It reports
// whether the item was added.
func (c *collection[T]) insert(key int64, item T) bool {
	if _, ok := c.items[key]; ok {
		return false
	}
	c.items[key] = item
	c.order = append(c.order, key)
	return true
}

// replace swaps the item for an existing key, keeping its position. A missing
// key is appended instead.
func (c *collection[T]) replace(key int64, item T) {
	if _, ok := c.items[key]; ok {
		c.items[key] = item
		return
	}
	c.insert(key, item)
}

// remove drops the key. Removing a missing key is a no-op.
func (c *collection[T]) remove(key int64) {
	if _, ok := c.items[key]; !ok {
		return
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *collection[T]) get(key int64) (T, bool) {
	item, ok := c.items[key]
	return item, ok
}

// values returns the items in insertion order.
func (c *collection[T]) values() []T {
	out := make([]T, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key])
	}
	return out
}

func (c *collection[T]) len() int {
	return len(c.order)
}

func (c *collection[T]) reset() {
	c.order = nil
	c.items = make(map[int64]T)
}
