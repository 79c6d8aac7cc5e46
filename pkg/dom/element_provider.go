package dom

import (
	"strings"

	"github.com/loom-ui/loom/pkg/state"
)

// elementProvider handles standard mutable elements. It requires the
// full element composition and steps aside while a template namespace is
// bound.
type elementProvider struct{}

// elementNamespaces is the composition NewElement declares.
var elementNamespaces = []state.NamespaceType{
	state.NamespaceElementData,
	state.NamespaceAttributes,
	state.NamespaceProperties,
	state.NamespaceChildren,
	state.NamespaceClassList,
	state.NamespaceListeners,
}

func (elementProvider) Supports(node *state.StateNode) bool {
	for _, t := range elementNamespaces {
		if !node.Declares(t) {
			return false
		}
	}
	if node.Declares(state.NamespaceTemplate) {
		return !templateData(node).Bound()
	}
	return true
}

func (elementProvider) Tag(node *state.StateNode) string {
	return elementData(node).Tag()
}

func (elementProvider) SetAttribute(node *state.StateNode, name, value string) error {
	name, err := normalizeAttributeName(name)
	if err != nil {
		return err
	}
	if name == "class" {
		return setClassAttribute(node, value)
	}
	attributes(node).Set(name, value)
	return nil
}

func (elementProvider) Attribute(node *state.StateNode, name string) (string, bool) {
	name = strings.ToLower(name)
	if name == "class" {
		cl := classList(node)
		if cl.Len() == 0 {
			return "", false
		}
		return cl.String(), true
	}
	return attributes(node).Get(name)
}

func (elementProvider) HasAttribute(node *state.StateNode, name string) bool {
	name = strings.ToLower(name)
	if name == "class" {
		return classList(node).Len() > 0
	}
	return attributes(node).Has(name)
}

func (elementProvider) RemoveAttribute(node *state.StateNode, name string) error {
	name, err := normalizeAttributeName(name)
	if err != nil {
		return err
	}
	if name == "class" {
		clearClassList(node)
		return nil
	}
	attributes(node).Remove(name)
	return nil
}

func (elementProvider) AttributeNames(node *state.StateNode) []string {
	names := attributes(node).Names()
	if classList(node).Len() > 0 {
		names = append(names, "class")
	}
	return names
}

func (elementProvider) SetProperty(node *state.StateNode, name string, value any) error {
	properties(node).Set(name, value)
	return nil
}

func (elementProvider) Property(node *state.StateNode, name string) (any, bool) {
	return properties(node).Get(name)
}

func (elementProvider) RemoveProperty(node *state.StateNode, name string) error {
	properties(node).Remove(name)
	return nil
}

func (elementProvider) PropertyNames(node *state.StateNode) []string {
	return properties(node).Names()
}

func (elementProvider) ClassList(node *state.StateNode) (*state.ClassList, error) {
	return classList(node), nil
}

func (elementProvider) Parent(node *state.StateNode) *state.StateNode {
	return node.Parent()
}

func (elementProvider) ChildCount(node *state.StateNode) int {
	return children(node).Len()
}

func (elementProvider) Child(node *state.StateNode, index int) (*state.StateNode, error) {
	return children(node).Get(index)
}

func (elementProvider) InsertChild(node *state.StateNode, index int, child *state.StateNode) error {
	return children(node).Insert(index, child)
}

func (elementProvider) RemoveChild(node *state.StateNode, index int) error {
	_, err := children(node).RemoveIndex(index)
	return err
}

func (elementProvider) RemoveChildNode(node, child *state.StateNode) error {
	return children(node).Remove(child)
}

func (elementProvider) RemoveAllChildren(node *state.StateNode) error {
	children(node).Clear()
	return nil
}

func (elementProvider) AddEventListener(node *state.StateNode, eventType string, fn state.EventListener) (state.Registration, error) {
	return listeners(node).Add(eventType, fn), nil
}

// Namespace accessors shared by the element and template providers.

func elementData(node *state.StateNode) *state.ElementDataNamespace {
	return node.Namespace(state.NamespaceElementData).(*state.ElementDataNamespace)
}

func attributes(node *state.StateNode) *state.AttributesNamespace {
	return node.Namespace(state.NamespaceAttributes).(*state.AttributesNamespace)
}

func properties(node *state.StateNode) *state.PropertiesNamespace {
	return node.Namespace(state.NamespaceProperties).(*state.PropertiesNamespace)
}

func children(node *state.StateNode) *state.ChildrenNamespace {
	return node.Namespace(state.NamespaceChildren).(*state.ChildrenNamespace)
}

func classList(node *state.StateNode) *state.ClassList {
	return node.Namespace(state.NamespaceClassList).(*state.ClassListNamespace).ClassList()
}

func listeners(node *state.StateNode) *state.ListenersNamespace {
	return node.Namespace(state.NamespaceListeners).(*state.ListenersNamespace)
}

func templateData(node *state.StateNode) *state.TemplateDataNamespace {
	return node.Namespace(state.NamespaceTemplate).(*state.TemplateDataNamespace)
}

func textData(node *state.StateNode) *state.TextNamespace {
	return node.Namespace(state.NamespaceText).(*state.TextNamespace)
}

// setClassAttribute replaces the class list with the attribute value's
// whitespace-separated tokens.
func setClassAttribute(node *state.StateNode, value string) error {
	clearClassList(node)
	cl := classList(node)
	for _, token := range strings.Fields(value) {
		if _, err := cl.Add(token); err != nil {
			return err
		}
	}
	return nil
}

func clearClassList(node *state.StateNode) {
	cl := classList(node)
	for _, token := range cl.Items() {
		cl.Remove(token)
	}
}
