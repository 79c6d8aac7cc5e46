package state

// listSplice is one recorded list mutation.
type listSplice[T comparable] struct {
	index   int
	removed int
	added   []T
}

// listNamespace is the shared core of list-shaped namespaces: an ordered
// slice of items plus the splice records accumulated since the last
// drain. Mutators validate first and leave the list untouched on error.
type listNamespace[T comparable] struct {
	baseNamespace
	items   []T
	pending []listSplice[T]
}

// Len returns the number of items.
func (l *listNamespace[T]) Len() int { return len(l.items) }

// Get returns the item at index.
func (l *listNamespace[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= len(l.items) {
		return zero, &IndexError{Op: "get", Index: index, Len: len(l.items)}
	}
	return l.items[index], nil
}

// add appends an item.
func (l *listNamespace[T]) add(item T) {
	l.items = append(l.items, item)
	l.record(len(l.items)-1, 0, item)
	l.markDirty()
}

// insert places an item at index, shifting later items up.
func (l *listNamespace[T]) insert(index int, item T) error {
	if index < 0 || index > len(l.items) {
		return &IndexError{Op: "insert", Index: index, Len: len(l.items)}
	}
	l.items = append(l.items, item)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = item
	l.record(index, 0, item)
	l.markDirty()
	return nil
}

// removeIndex removes and returns the item at index, shifting later
// items down.
func (l *listNamespace[T]) removeIndex(index int) (T, error) {
	var zero T
	if index < 0 || index >= len(l.items) {
		return zero, &IndexError{Op: "remove", Index: index, Len: len(l.items)}
	}
	item := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	l.record(index, 1)
	l.markDirty()
	return item, nil
}

// IndexOf returns the position of the first equal item, or -1.
func (l *listNamespace[T]) IndexOf(item T) int {
	for i, cur := range l.items {
		if cur == item {
			return i
		}
	}
	return -1
}

// Items returns a copy of the list in order.
func (l *listNamespace[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// clear removes all items.
func (l *listNamespace[T]) clear() {
	if len(l.items) == 0 {
		return
	}
	removed := len(l.items)
	l.items = nil
	l.record(0, removed)
	l.markDirty()
}

// record keeps a splice for the next drain. Detached nodes skip this;
// their state ships whole when they attach.
func (l *listNamespace[T]) record(index, removed int, added ...T) {
	if !l.recording() {
		return
	}
	l.pending = append(l.pending, listSplice[T]{index: index, removed: removed, added: added})
}

func (l *listNamespace[T]) collectChanges(fn func(Change)) {
	for _, s := range l.coalesced() {
		fn(l.spliceChange(s))
	}
	l.pending = nil
}

// coalesced returns the pending splices with insert/remove pairs for
// nodes that attached and detached between drains cancelled out. Such
// a node's id is already cleared by the detach, so shipping its insert
// splice would reference id 0; the client never saw the node, and the
// pair must vanish from the log. Surviving splices are re-indexed as
// if the cancelled inserts never happened.
func (l *listNamespace[T]) coalesced() []listSplice[T] {
	lost := false
	for _, s := range l.pending {
		for _, item := range s.added {
			if child, ok := any(item).(*StateNode); ok && child.id == 0 {
				lost = true
			}
		}
	}
	if !lost {
		return l.pending
	}

	// Replay the log over the list as the client last saw it, tracking
	// which positions are visible to the client. Recorded inserts carry
	// exactly one item, so a splice is either insert-one or remove-only.
	start := len(l.items)
	for _, s := range l.pending {
		start += s.removed - len(s.added)
	}
	visible := make([]bool, start)
	for i := range visible {
		visible[i] = true
	}
	visibleBefore := func(index int) int {
		n := 0
		for _, v := range visible[:index] {
			if v {
				n++
			}
		}
		return n
	}

	var out []listSplice[T]
	for _, s := range l.pending {
		if s.removed == 0 {
			child, isNode := any(s.added[0]).(*StateNode)
			dead := isNode && child.id == 0
			if !dead {
				out = append(out, listSplice[T]{index: visibleBefore(s.index), added: s.added})
			}
			visible = append(visible, false)
			copy(visible[s.index+1:], visible[s.index:])
			visible[s.index] = !dead
			continue
		}
		kept := 0
		for _, v := range visible[s.index : s.index+s.removed] {
			if v {
				kept++
			}
		}
		if kept > 0 {
			out = append(out, listSplice[T]{index: visibleBefore(s.index), removed: kept})
		}
		visible = append(visible[:s.index], visible[s.index+s.removed:]...)
	}
	return out
}

func (l *listNamespace[T]) generateInitialChanges(fn func(Change)) {
	if len(l.items) == 0 {
		return
	}
	fn(l.spliceChange(listSplice[T]{index: 0, added: l.items}))
}

func (l *listNamespace[T]) clearPending() { l.pending = nil }

// spliceChange converts a recorded splice to a wire change. Node-valued
// lists report ids; everything else reports plain values.
func (l *listNamespace[T]) spliceChange(s listSplice[T]) Change {
	c := Change{
		Op:      ChangeSplice,
		Node:    l.node.id,
		NS:      l.typ,
		Index:   s.index,
		Removed: s.removed,
	}
	for _, item := range s.added {
		if child, ok := any(item).(*StateNode); ok {
			c.AddedNodes = append(c.AddedNodes, child.id)
		} else {
			c.Added = append(c.Added, item)
		}
	}
	return c
}

// setView lays set semantics over a list namespace: no duplicates,
// insertion order preserved, an optional validator run before any
// mutation so a rejected item changes nothing.
type setView[T comparable] struct {
	list     *listNamespace[T]
	validate func(T) error
}

// Len returns the number of items in the set.
func (s *setView[T]) Len() int { return s.list.Len() }

// Contains reports whether the set holds the item.
func (s *setView[T]) Contains(item T) bool { return s.list.IndexOf(item) >= 0 }

// Items returns the set's items in insertion order.
func (s *setView[T]) Items() []T { return s.list.Items() }

// Add puts the item in the set. It reports whether the set changed; an
// item failing validation is rejected without touching the set.
func (s *setView[T]) Add(item T) (bool, error) {
	if s.validate != nil {
		if err := s.validate(item); err != nil {
			return false, err
		}
	}
	if s.Contains(item) {
		return false, nil
	}
	s.list.add(item)
	return true, nil
}

// Remove drops the item, reporting whether it was present.
func (s *setView[T]) Remove(item T) bool {
	i := s.list.IndexOf(item)
	if i < 0 {
		return false
	}
	if _, err := s.list.removeIndex(i); err != nil {
		return false
	}
	return true
}

// Set routes to Add or Remove and reports whether the set changed.
func (s *setView[T]) Set(item T, include bool) (bool, error) {
	if include {
		return s.Add(item)
	}
	return s.Remove(item), nil
}
