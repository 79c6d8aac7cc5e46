package dom

import (
	"errors"
	"fmt"

	"github.com/loom-ui/loom/pkg/state"
)

// Errors returned by provider operations.
var (
	// ErrUnsupportedNode is returned when no provider can handle a
	// node's namespace composition.
	ErrUnsupportedNode = errors.New("dom: no provider supports this node")

	// ErrTemplateStructure is returned for child mutations on a
	// template-backed element, whose structure is owned by its template.
	ErrTemplateStructure = errors.New("dom: template-backed element children are fixed")

	// ErrTextAttributes is returned for attribute and property
	// operations on text nodes.
	ErrTextAttributes = errors.New("dom: text nodes do not support attributes")

	// ErrTextChildren is returned for child operations on text nodes.
	ErrTextChildren = errors.New("dom: text nodes do not support children")

	// ErrTextListeners is returned when adding an event listener to a
	// text node.
	ErrTextListeners = errors.New("dom: text nodes do not support event listeners")

	// ErrNotText is returned when reading text content from a node that
	// is not a text node.
	ErrNotText = errors.New("dom: node is not a text node")
)

// InvalidTagError reports a rejected element tag.
type InvalidTagError struct {
	Tag string
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("dom: invalid element tag %q", e.Tag)
}

// InvalidAttributeError reports a rejected attribute name.
type InvalidAttributeError struct {
	Name string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("dom: invalid attribute name %q", e.Name)
}

// ElementStateProvider defines how element operations map onto a state
// node. A provider is stateless and shared; all data lives in the node's
// namespaces. Different node kinds (standard elements, template-backed
// elements, text nodes) get different providers, chosen by capability.
type ElementStateProvider interface {
	// Supports reports whether this provider can handle the node's
	// namespace composition and current kind.
	Supports(node *state.StateNode) bool

	// Tag returns the element tag.
	Tag(node *state.StateNode) string

	SetAttribute(node *state.StateNode, name, value string) error
	Attribute(node *state.StateNode, name string) (string, bool)
	HasAttribute(node *state.StateNode, name string) bool
	RemoveAttribute(node *state.StateNode, name string) error
	AttributeNames(node *state.StateNode) []string

	SetProperty(node *state.StateNode, name string, value any) error
	Property(node *state.StateNode, name string) (any, bool)
	RemoveProperty(node *state.StateNode, name string) error
	PropertyNames(node *state.StateNode) []string

	ClassList(node *state.StateNode) (*state.ClassList, error)

	Parent(node *state.StateNode) *state.StateNode
	ChildCount(node *state.StateNode) int
	Child(node *state.StateNode, index int) (*state.StateNode, error)
	InsertChild(node *state.StateNode, index int, child *state.StateNode) error
	RemoveChild(node *state.StateNode, index int) error
	RemoveChildNode(node, child *state.StateNode) error
	RemoveAllChildren(node *state.StateNode) error

	AddEventListener(node *state.StateNode, eventType string, fn state.EventListener) (state.Registration, error)
}

// Provider singletons in resolution order. The first provider whose
// Supports accepts a node wins; a bound template claims the node before
// the standard element provider sees it.
var providers = []ElementStateProvider{
	textProvider{},
	templateProvider{},
	elementProvider{},
}

// ProviderFor resolves the provider responsible for a node.
func ProviderFor(node *state.StateNode) (ElementStateProvider, bool) {
	for _, p := range providers {
		if p.Supports(node) {
			return p, true
		}
	}
	return nil, false
}
