package dom

import (
	"errors"
	"fmt"

	"github.com/loom-ui/loom/pkg/state"
)

// ErrNodeNotFound is returned when dispatching an event to an id that
// is not attached to the tree.
var ErrNodeNotFound = errors.New("dom: node not found")

// Event is a DOM event delivered to server-side listeners.
type Event struct {
	// Element is the element the event fired on.
	Element Element

	// Type is the DOM event type, such as "click".
	Type string

	// Data holds the decoded event payload sent by the client. May be
	// nil for events without payload.
	Data map[string]any
}

// EventListener handles a dispatched event.
type EventListener func(Event)

// FireEvent dispatches an event on this element's listeners, in
// registration order. Elements without a listeners namespace (text
// nodes) cannot fire events.
func (e Element) FireEvent(eventType string, data map[string]any) error {
	if !e.node.Declares(state.NamespaceListeners) {
		return ErrTextListeners
	}
	listeners(e.node).Fire(eventType, data)
	return nil
}

// DispatchEvent routes a client event to the node it targets. Unknown
// ids are reported as ErrNodeNotFound; a stale id after a detach is a
// normal race, not a protocol violation.
func DispatchEvent(tree *state.Tree, nodeID uint64, eventType string, data map[string]any) error {
	node, ok := tree.NodeByID(nodeID)
	if !ok {
		return fmt.Errorf("dispatch %q to node %d: %w", eventType, nodeID, ErrNodeNotFound)
	}
	el, err := FromNode(node)
	if err != nil {
		return err
	}
	return el.FireEvent(eventType, data)
}
