package dom

import "github.com/loom-ui/loom/pkg/state"

// templateProvider handles elements whose structure was seeded from a
// parsed template. Attributes, properties, classes and listeners behave
// as on a standard element; the child structure belongs to the template
// and refuses mutation. Unbinding the template namespace hands the node
// back to the standard element provider.
type templateProvider struct {
	elementProvider
}

func (templateProvider) Supports(node *state.StateNode) bool {
	if !node.Declares(state.NamespaceTemplate) {
		return false
	}
	for _, t := range elementNamespaces {
		if !node.Declares(t) {
			return false
		}
	}
	return templateData(node).Bound()
}

func (templateProvider) InsertChild(node *state.StateNode, index int, child *state.StateNode) error {
	return ErrTemplateStructure
}

func (templateProvider) RemoveChild(node *state.StateNode, index int) error {
	return ErrTemplateStructure
}

func (templateProvider) RemoveChildNode(node, child *state.StateNode) error {
	return ErrTemplateStructure
}

func (templateProvider) RemoveAllChildren(node *state.StateNode) error {
	return ErrTemplateStructure
}
