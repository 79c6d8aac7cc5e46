// Package dom exposes the element API over the state tree. An Element
// is a cheap value handle around a StateNode; all behavior is routed
// through an ElementStateProvider chosen by the node's namespace
// composition, so standard elements, template-backed elements and text
// nodes share one API with different capabilities.
package dom

import (
	"regexp"
	"strings"

	"github.com/loom-ui/loom/pkg/state"
)

var (
	tagPattern  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9\-._]*$`)
	attrPattern = regexp.MustCompile(`^[a-z][a-z0-9\-_:.]*$`)
)

// Element is a handle on one state node. Elements are values: copying
// one is free, and two Elements are equal when they wrap the same node.
// The zero Element is not usable; obtain Elements from NewElement,
// NewTextNode, FromTemplate or Wrap.
//
// The provider is resolved from the node on every operation, so a node
// whose kind changes (a template being unbound) switches behavior
// without invalidating existing handles.
type Element struct {
	node *state.StateNode
}

// NewElement creates a detached standard element with the given tag.
func NewElement(tag string) (Element, error) {
	if !tagPattern.MatchString(tag) {
		return Element{}, &InvalidTagError{Tag: tag}
	}
	node := state.NewNode(elementNamespaces...)
	_ = elementData(node).SetTag(tag)
	return Element{node: node}, nil
}

// NewTextNode creates a detached text node.
func NewTextNode(text string) Element {
	node := state.NewNode(state.NamespaceText)
	textData(node).SetText(text)
	return Element{node: node}
}

// Wrap returns the Element handle for a node. It panics when no
// provider supports the node's composition; use FromNode when the
// composition is not known to be valid.
func Wrap(node *state.StateNode) Element {
	if _, ok := ProviderFor(node); !ok {
		panic(ErrUnsupportedNode)
	}
	return Element{node: node}
}

// FromNode returns the Element handle for a node, or an error when no
// provider supports it.
func FromNode(node *state.StateNode) (Element, error) {
	if _, ok := ProviderFor(node); !ok {
		return Element{}, ErrUnsupportedNode
	}
	return Element{node: node}, nil
}

// Body returns the root element of a tree.
func Body(tree *state.Tree) Element {
	return Wrap(tree.Root())
}

// Node returns the underlying state node.
func (e Element) Node() *state.StateNode { return e.node }

func (e Element) provider() ElementStateProvider {
	p, ok := ProviderFor(e.node)
	if !ok {
		panic(ErrUnsupportedNode)
	}
	return p
}

// Tag returns the element's tag, or "#text" for text nodes.
func (e Element) Tag() string { return e.provider().Tag(e.node) }

// IsText reports whether the element is a text node.
func (e Element) IsText() bool { return e.node.Declares(state.NamespaceText) }

// IsTemplateBacked reports whether the element's structure is currently
// owned by a bound template.
func (e Element) IsTemplateBacked() bool {
	return e.node.Declares(state.NamespaceTemplate) && templateData(e.node).Bound()
}

// UnbindTemplate releases a bound template, turning the element back
// into a standard mutable element. The seeded children stay. Calling it
// on anything else is a no-op.
func (e Element) UnbindTemplate() {
	if e.node.Declares(state.NamespaceTemplate) {
		templateData(e.node).Unbind()
	}
}

// SetAttribute sets an attribute. Names are normalized to lowercase; the
// class attribute is routed to the class list.
func (e Element) SetAttribute(name, value string) error {
	return e.provider().SetAttribute(e.node, name, value)
}

// Attribute returns an attribute value, with ok reporting presence.
func (e Element) Attribute(name string) (string, bool) {
	return e.provider().Attribute(e.node, name)
}

// HasAttribute reports whether the attribute is set.
func (e Element) HasAttribute(name string) bool {
	return e.provider().HasAttribute(e.node, name)
}

// RemoveAttribute removes an attribute. Removing an absent attribute is
// a no-op.
func (e Element) RemoveAttribute(name string) error {
	return e.provider().RemoveAttribute(e.node, name)
}

// AttributeNames returns the set attribute names.
func (e Element) AttributeNames() []string {
	return e.provider().AttributeNames(e.node)
}

// SetProperty sets an element property.
func (e Element) SetProperty(name string, value any) error {
	return e.provider().SetProperty(e.node, name, value)
}

// Property returns a property value, with ok reporting presence.
func (e Element) Property(name string) (any, bool) {
	return e.provider().Property(e.node, name)
}

// RemoveProperty removes a property.
func (e Element) RemoveProperty(name string) error {
	return e.provider().RemoveProperty(e.node, name)
}

// PropertyNames returns the set property names.
func (e Element) PropertyNames() []string {
	return e.provider().PropertyNames(e.node)
}

// ClassList returns the element's class token set.
func (e Element) ClassList() (*state.ClassList, error) {
	return e.provider().ClassList(e.node)
}

// AppendChild adds children after the existing ones.
func (e Element) AppendChild(children ...Element) error {
	p := e.provider()
	for _, child := range children {
		if err := p.InsertChild(e.node, p.ChildCount(e.node), child.node); err != nil {
			return err
		}
	}
	return nil
}

// InsertChild places a child at index, shifting later children up.
func (e Element) InsertChild(index int, child Element) error {
	return e.provider().InsertChild(e.node, index, child.node)
}

// RemoveChild removes the child at index.
func (e Element) RemoveChild(index int) error {
	return e.provider().RemoveChild(e.node, index)
}

// RemoveChildElement removes the given child, which must be a direct
// child of this element.
func (e Element) RemoveChildElement(child Element) error {
	return e.provider().RemoveChildNode(e.node, child.node)
}

// RemoveAllChildren removes every child.
func (e Element) RemoveAllChildren() error {
	return e.provider().RemoveAllChildren(e.node)
}

// Child returns the child at index.
func (e Element) Child(index int) (Element, error) {
	node, err := e.provider().Child(e.node, index)
	if err != nil {
		return Element{}, err
	}
	return Wrap(node), nil
}

// ChildCount returns the number of children.
func (e Element) ChildCount() int { return e.provider().ChildCount(e.node) }

// Children returns the element's children in order.
func (e Element) Children() []Element {
	p := e.provider()
	count := p.ChildCount(e.node)
	out := make([]Element, 0, count)
	for i := 0; i < count; i++ {
		node, err := p.Child(e.node, i)
		if err != nil {
			break
		}
		out = append(out, Wrap(node))
	}
	return out
}

// Parent returns the parent element, with ok false for detached roots
// and the tree root.
func (e Element) Parent() (Element, bool) {
	parent := e.provider().Parent(e.node)
	if parent == nil {
		return Element{}, false
	}
	return Wrap(parent), true
}

// RemoveFromParent detaches the element from its parent. An element
// without a parent is left as is.
func (e Element) RemoveFromParent() error {
	parent := e.provider().Parent(e.node)
	if parent == nil {
		return nil
	}
	p, ok := ProviderFor(parent)
	if !ok {
		return ErrUnsupportedNode
	}
	return p.RemoveChildNode(parent, e.node)
}

// SetText replaces the element's content with a single text node. On a
// text node it replaces the content directly.
func (e Element) SetText(text string) error {
	if e.IsText() {
		textData(e.node).SetText(text)
		return nil
	}
	if err := e.RemoveAllChildren(); err != nil {
		return err
	}
	return e.AppendChild(NewTextNode(text))
}

// Text returns the element's text content: for text nodes the content
// itself, otherwise the concatenated text of the subtree in document
// order.
func (e Element) Text() string {
	if e.IsText() {
		return textData(e.node).Text()
	}
	var b strings.Builder
	for _, child := range e.Children() {
		b.WriteString(child.Text())
	}
	return b.String()
}

// AddEventListener registers a listener for a DOM event type and
// returns its removal handle. The client forwards an event type while
// at least one listener is registered for it.
func (e Element) AddEventListener(eventType string, fn EventListener) (state.Registration, error) {
	el := e
	return e.provider().AddEventListener(e.node, eventType, func(data map[string]any) {
		fn(Event{Element: el, Type: eventType, Data: data})
	})
}

// normalizeAttributeName lowercases and validates an attribute name.
func normalizeAttributeName(name string) (string, error) {
	name = strings.ToLower(name)
	if !attrPattern.MatchString(name) {
		return "", &InvalidAttributeError{Name: name}
	}
	return name, nil
}
