package state

// EventListener receives the decoded payload of a fired event. The dom
// layer wraps these to hand its listeners a full event value.
type EventListener func(data map[string]any)

// Registration is the handle returned when adding a listener. Remove
// unregisters the listener; calling it again is a no-op.
type Registration interface {
	Remove()
}

// listenerEntry keeps one registered listener with its removal state.
type listenerEntry struct {
	fn      EventListener
	removed bool
}

// ListenersNamespace tracks event listeners per event type. The set of
// types with at least one listener is synced to the client so it knows
// which DOM events to forward; the listener functions themselves stay on
// the server.
type ListenersNamespace struct {
	baseNamespace
	listeners map[string][]*listenerEntry
	typeOrder []string

	touched    map[string]bool
	touchOrder []string
}

func newListenersNamespace(base baseNamespace) *ListenersNamespace {
	return &ListenersNamespace{
		baseNamespace: base,
		listeners:     make(map[string][]*listenerEntry),
		touched:       make(map[string]bool),
	}
}

// Add registers a listener for the event type and returns its removal
// handle. Adding the first listener of a type marks the type for client
// forwarding.
func (l *ListenersNamespace) Add(eventType string, fn EventListener) Registration {
	entry := &listenerEntry{fn: fn}
	if len(l.listeners[eventType]) == 0 {
		l.typeOrder = append(l.typeOrder, eventType)
		l.touch(eventType)
		l.markDirty()
	}
	l.listeners[eventType] = append(l.listeners[eventType], entry)
	return &listenerRegistration{ns: l, eventType: eventType, entry: entry}
}

// Fire calls the listeners registered for the event type in registration
// order. The listener set is snapshotted first, so listeners added or
// removed during dispatch take effect from the next firing.
func (l *ListenersNamespace) Fire(eventType string, data map[string]any) {
	entries := l.listeners[eventType]
	snapshot := make([]*listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, entry := range snapshot {
		entry.fn(data)
	}
}

// Has reports whether the event type has at least one listener.
func (l *ListenersNamespace) Has(eventType string) bool {
	return len(l.listeners[eventType]) > 0
}

// Types returns the event types with listeners, oldest first.
func (l *ListenersNamespace) Types() []string {
	out := make([]string, len(l.typeOrder))
	copy(out, l.typeOrder)
	return out
}

// remove drops an entry. Removing the last listener of a type clears the
// client forwarding flag for it.
func (l *ListenersNamespace) remove(eventType string, entry *listenerEntry) {
	if entry.removed {
		return
	}
	entry.removed = true
	entries := l.listeners[eventType]
	for i, cur := range entries {
		if cur == entry {
			l.listeners[eventType] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(l.listeners[eventType]) == 0 {
		delete(l.listeners, eventType)
		for i, t := range l.typeOrder {
			if t == eventType {
				l.typeOrder = append(l.typeOrder[:i], l.typeOrder[i+1:]...)
				break
			}
		}
		l.touch(eventType)
		l.markDirty()
	}
}

func (l *ListenersNamespace) touch(eventType string) {
	if !l.recording() {
		return
	}
	if l.touched[eventType] {
		return
	}
	l.touched[eventType] = true
	l.touchOrder = append(l.touchOrder, eventType)
}

func (l *ListenersNamespace) collectChanges(fn func(Change)) {
	for _, eventType := range l.touchOrder {
		if len(l.listeners[eventType]) > 0 {
			fn(Change{Op: ChangePut, Node: l.node.id, NS: l.typ, Key: eventType, Value: true})
		} else {
			fn(Change{Op: ChangeRemove, Node: l.node.id, NS: l.typ, Key: eventType})
		}
	}
	l.clearPending()
}

func (l *ListenersNamespace) generateInitialChanges(fn func(Change)) {
	for _, eventType := range l.typeOrder {
		fn(Change{Op: ChangePut, Node: l.node.id, NS: l.typ, Key: eventType, Value: true})
	}
}

func (l *ListenersNamespace) clearPending() {
	for t := range l.touched {
		delete(l.touched, t)
	}
	l.touchOrder = nil
}

// listenerRegistration implements Registration for one added listener.
type listenerRegistration struct {
	ns        *ListenersNamespace
	eventType string
	entry     *listenerEntry
}

func (r *listenerRegistration) Remove() {
	r.ns.remove(r.eventType, r.entry)
}
