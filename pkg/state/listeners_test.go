package state

import "testing"

func TestListenersFireInRegistrationOrder(t *testing.T) {
	n := newElementNode("button")
	listeners := listenersOf(n)

	var order []string
	listeners.Add("click", func(map[string]any) { order = append(order, "first") })
	listeners.Add("click", func(map[string]any) { order = append(order, "second") })

	listeners.Fire("click", nil)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("fire order = %v", order)
	}
}

func TestListenersRemoveIsIdempotent(t *testing.T) {
	n := newElementNode("button")
	listeners := listenersOf(n)

	var calls int
	reg := listeners.Add("click", func(map[string]any) { calls++ })
	keep := listeners.Add("click", func(map[string]any) { calls++ })

	reg.Remove()
	reg.Remove()

	listeners.Fire("click", nil)
	if calls != 1 {
		t.Fatalf("calls = %d after double remove, want 1", calls)
	}
	_ = keep
}

func TestListenersSnapshotDuringDispatch(t *testing.T) {
	n := newElementNode("button")
	listeners := listenersOf(n)

	var calls []string
	var reg2 Registration
	listeners.Add("click", func(map[string]any) {
		calls = append(calls, "first")
		reg2.Remove()
		listeners.Add("click", func(map[string]any) { calls = append(calls, "late") })
	})
	reg2 = listeners.Add("click", func(map[string]any) { calls = append(calls, "second") })

	listeners.Fire("click", nil)

	// The snapshot taken at fire time still includes the listener that
	// was removed mid-dispatch, and not the one added mid-dispatch.
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("first fire calls = %v", calls)
	}

	calls = nil
	listeners.Fire("click", nil)
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "late" {
		t.Fatalf("second fire calls = %v", calls)
	}
}

func TestListenersEventDataPassedThrough(t *testing.T) {
	n := newElementNode("input")
	listeners := listenersOf(n)

	var got map[string]any
	listeners.Add("input", func(data map[string]any) { got = data })

	listeners.Fire("input", map[string]any{"value": "abc"})

	if got == nil || got["value"] != "abc" {
		t.Fatalf("listener data = %v", got)
	}
}

func TestListenersForwardingChanges(t *testing.T) {
	tree := NewTree()
	drain(tree)
	listeners := listenersOf(tree.Root())

	first := listeners.Add("click", func(map[string]any) {})
	changes := drain(tree)
	if len(changes) != 1 || changes[0].Op != ChangePut || changes[0].Key != "click" {
		t.Fatalf("first listener changes = %+v, want put click", changes)
	}
	if changes[0].NS != NamespaceListeners {
		t.Fatalf("change namespace = %v", changes[0].NS)
	}

	second := listeners.Add("click", func(map[string]any) {})
	if tree.HasChanges() {
		t.Fatal("second listener of the same type dirtied the tree")
	}

	first.Remove()
	if tree.HasChanges() {
		t.Fatal("removing one of two listeners dirtied the tree")
	}

	second.Remove()
	changes = drain(tree)
	if len(changes) != 1 || changes[0].Op != ChangeRemove || changes[0].Key != "click" {
		t.Fatalf("last listener changes = %+v, want remove click", changes)
	}
	if listeners.Has("click") {
		t.Fatal("type still reported after last removal")
	}
}

func TestListenersTypes(t *testing.T) {
	n := newElementNode("input")
	listeners := listenersOf(n)

	listeners.Add("focus", func(map[string]any) {})
	listeners.Add("blur", func(map[string]any) {})
	listeners.Add("focus", func(map[string]any) {})

	types := listeners.Types()
	if len(types) != 2 || types[0] != "focus" || types[1] != "blur" {
		t.Fatalf("types = %v, want [focus blur]", types)
	}
}
