package observable

import (
	"maps"
	"slices"
)

// Map is an observable key/value collection that remembers insertion order.
type Map[K comparable, V any] struct {
	Subject
	values map[K]V
	keys   []K
}

// NewMap creates an empty observable map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Snapshot returns a copy of the entries.
func (m *Map[K, V]) Snapshot() map[K]V {
	return maps.Clone(m.values)
}

// Set stores value under key.
func (m *Map[K, V]) Set(key K, value V) {
	m.set(key, value)
	m.Notify()
}

// Delete removes key. It notifies only when the key was present.
func (m *Map[K, V]) Delete(key K) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k K) bool { return k == key })
	m.Notify()
	return true
}

// Update rewrites the value under key through fn. fn receives the zero value
// and false when the key is missing.
func (m *Map[K, V]) Update(key K, fn func(current V, ok bool) V) {
	current, ok := m.values[key]
	m.set(key, fn(current, ok))
	m.Notify()
}

// Replace swaps the whole content. keys gives the iteration order; entries of
// values missing from keys are appended in unspecified order.
func (m *Map[K, V]) Replace(values map[K]V, keys ...K) {
	m.values = make(map[K]V, len(values))
	m.keys = m.keys[:0]
	for _, k := range keys {
		if v, ok := values[k]; ok {
			m.set(k, v)
		}
	}
	for k, v := range values {
		m.set(k, v)
	}
	m.Notify()
}

func (m *Map[K, V]) set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}
