package dom

import "github.com/loom-ui/loom/pkg/state"

// textTag is the pseudo-tag text nodes report.
const textTag = "#text"

// textProvider handles text nodes, which carry content and nothing else.
type textProvider struct{}

func (textProvider) Supports(node *state.StateNode) bool {
	return node.Declares(state.NamespaceText)
}

func (textProvider) Tag(node *state.StateNode) string { return textTag }

func (textProvider) SetAttribute(node *state.StateNode, name, value string) error {
	return ErrTextAttributes
}

func (textProvider) Attribute(node *state.StateNode, name string) (string, bool) {
	return "", false
}

func (textProvider) HasAttribute(node *state.StateNode, name string) bool { return false }

func (textProvider) RemoveAttribute(node *state.StateNode, name string) error {
	return ErrTextAttributes
}

func (textProvider) AttributeNames(node *state.StateNode) []string { return nil }

func (textProvider) SetProperty(node *state.StateNode, name string, value any) error {
	return ErrTextAttributes
}

func (textProvider) Property(node *state.StateNode, name string) (any, bool) {
	return nil, false
}

func (textProvider) RemoveProperty(node *state.StateNode, name string) error {
	return ErrTextAttributes
}

func (textProvider) PropertyNames(node *state.StateNode) []string { return nil }

func (textProvider) ClassList(node *state.StateNode) (*state.ClassList, error) {
	return nil, ErrTextAttributes
}

func (textProvider) Parent(node *state.StateNode) *state.StateNode { return node.Parent() }

func (textProvider) ChildCount(node *state.StateNode) int { return 0 }

func (textProvider) Child(node *state.StateNode, index int) (*state.StateNode, error) {
	return nil, ErrTextChildren
}

func (textProvider) InsertChild(node *state.StateNode, index int, child *state.StateNode) error {
	return ErrTextChildren
}

func (textProvider) RemoveChild(node *state.StateNode, index int) error {
	return ErrTextChildren
}

func (textProvider) RemoveChildNode(node, child *state.StateNode) error {
	return ErrTextChildren
}

func (textProvider) RemoveAllChildren(node *state.StateNode) error {
	return ErrTextChildren
}

func (textProvider) AddEventListener(node *state.StateNode, eventType string, fn state.EventListener) (state.Registration, error) {
	return nil, ErrTextListeners
}
