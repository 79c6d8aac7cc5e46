package dom

import (
	"errors"
	"testing"

	"github.com/loom-ui/loom/pkg/state"
)

func TestAddEventListenerAndFire(t *testing.T) {
	el := mustElement(t, "button")

	var got Event
	if _, err := el.AddEventListener("click", func(e Event) { got = e }); err != nil {
		t.Fatalf("add listener: %v", err)
	}

	if err := el.FireEvent("click", map[string]any{"x": 10}); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if got.Element != el || got.Type != "click" {
		t.Fatalf("event = %+v", got)
	}
	if got.Data["x"] != 10 {
		t.Fatalf("event data = %v", got.Data)
	}
}

func TestListenerRemovalStopsDelivery(t *testing.T) {
	el := mustElement(t, "button")

	calls := 0
	reg, err := el.AddEventListener("click", func(Event) { calls++ })
	if err != nil {
		t.Fatalf("add listener: %v", err)
	}

	if err := el.FireEvent("click", nil); err != nil {
		t.Fatalf("fire: %v", err)
	}
	reg.Remove()
	if err := el.FireEvent("click", nil); err != nil {
		t.Fatalf("fire: %v", err)
	}

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDispatchEventByNodeID(t *testing.T) {
	tree := state.NewTree()
	button := mustElement(t, "button")
	if err := Body(tree).AppendChild(button); err != nil {
		t.Fatalf("append: %v", err)
	}

	var got Event
	if _, err := button.AddEventListener("click", func(e Event) { got = e }); err != nil {
		t.Fatalf("add listener: %v", err)
	}

	if err := DispatchEvent(tree, button.Node().ID(), "click", map[string]any{"button": float64(0)}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got.Element != button || got.Type != "click" {
		t.Fatalf("event = %+v", got)
	}
}

func TestDispatchEventUnknownNode(t *testing.T) {
	tree := state.NewTree()

	err := DispatchEvent(tree, 424242, "click", nil)
	if !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("got %v, want ErrNodeNotFound", err)
	}
}

func TestFireEventOnTextNode(t *testing.T) {
	text := NewTextNode("x")

	if err := text.FireEvent("click", nil); !errors.Is(err, ErrTextListeners) {
		t.Fatalf("got %v, want ErrTextListeners", err)
	}
}

func TestListenerChangesReachTree(t *testing.T) {
	tree := state.NewTree()
	button := mustElement(t, "button")
	if err := Body(tree).AppendChild(button); err != nil {
		t.Fatalf("append: %v", err)
	}
	tree.CollectChanges(func(state.Change) {})

	reg, err := button.AddEventListener("click", func(Event) {})
	if err != nil {
		t.Fatalf("add listener: %v", err)
	}

	var put bool
	tree.CollectChanges(func(c state.Change) {
		if c.Op == state.ChangePut && c.NS == state.NamespaceListeners && c.Key == "click" {
			put = true
		}
	})
	if !put {
		t.Fatal("listener registration did not sync a forwarding flag")
	}

	reg.Remove()
	var removed bool
	tree.CollectChanges(func(c state.Change) {
		if c.Op == state.ChangeRemove && c.NS == state.NamespaceListeners && c.Key == "click" {
			removed = true
		}
	})
	if !removed {
		t.Fatal("listener removal did not clear the forwarding flag")
	}
}
