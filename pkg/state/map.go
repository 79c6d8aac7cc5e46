package state

import "reflect"

// mapNamespace is the shared core of map-shaped namespaces: string keys
// to values, with per-key change coalescing. Only a key's final state
// since the last drain is reported.
type mapNamespace struct {
	baseNamespace
	values   map[string]any
	keyOrder []string

	touched    map[string]bool
	touchOrder []string
}

func newMapNamespace(base baseNamespace) mapNamespace {
	return mapNamespace{
		baseNamespace: base,
		values:        make(map[string]any),
		touched:       make(map[string]bool),
	}
}

// Put stores a value under key. Storing a value equal to the current one
// is a no-op and does not dirty the node.
func (m *mapNamespace) Put(key string, value any) {
	if old, ok := m.values[key]; ok {
		if sameValue(old, value) {
			return
		}
	} else {
		m.keyOrder = append(m.keyOrder, key)
	}
	m.values[key] = value
	m.touch(key)
	m.markDirty()
}

// Get returns the value stored under key.
func (m *mapNamespace) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Contains reports whether key is present.
func (m *mapNamespace) Contains(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Remove deletes key, reporting whether it was present.
func (m *mapNamespace) Remove(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keyOrder {
		if k == key {
			m.keyOrder = append(m.keyOrder[:i], m.keyOrder[i+1:]...)
			break
		}
	}
	m.touch(key)
	m.markDirty()
	return true
}

// Keys returns the present keys in insertion order.
func (m *mapNamespace) Keys() []string {
	out := make([]string, len(m.keyOrder))
	copy(out, m.keyOrder)
	return out
}

// Len returns the number of present keys.
func (m *mapNamespace) Len() int { return len(m.values) }

func (m *mapNamespace) touch(key string) {
	if !m.recording() {
		return
	}
	if m.touched[key] {
		return
	}
	m.touched[key] = true
	m.touchOrder = append(m.touchOrder, key)
}

func (m *mapNamespace) collectChanges(fn func(Change)) {
	for _, key := range m.touchOrder {
		if value, ok := m.values[key]; ok {
			fn(Change{Op: ChangePut, Node: m.node.id, NS: m.typ, Key: key, Value: value})
		} else {
			fn(Change{Op: ChangeRemove, Node: m.node.id, NS: m.typ, Key: key})
		}
	}
	m.clearPending()
}

func (m *mapNamespace) generateInitialChanges(fn func(Change)) {
	for _, key := range m.keyOrder {
		fn(Change{Op: ChangePut, Node: m.node.id, NS: m.typ, Key: key, Value: m.values[key]})
	}
}

func (m *mapNamespace) clearPending() {
	for k := range m.touched {
		delete(m.touched, k)
	}
	m.touchOrder = nil
}

// sameValue compares two stored values, tolerating uncomparable types.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
