// Package state implements the server-held element state tree.
//
// A Tree owns a set of StateNodes arranged parent to child. Each node
// carries its data in typed namespaces declared when the node is created.
// Mutating a namespace marks the owning node dirty; Tree.CollectChanges
// drains the accumulated changes in the order the nodes were first
// dirtied, producing the delta a connected client needs to catch up.
//
// A Tree is not safe for concurrent use. The push layer serializes all
// access to a session's tree; anything else touching a tree must do the
// same.
package state

// NamespaceType identifies a kind of namespace a node can declare.
type NamespaceType uint8

// Namespace types. A node declares a fixed subset of these at creation.
const (
	NamespaceElementData NamespaceType = iota
	NamespaceAttributes
	NamespaceProperties
	NamespaceChildren
	NamespaceClassList
	NamespaceListeners
	NamespaceText
	NamespaceTemplate
)

// String returns a human-readable name for the namespace type.
func (t NamespaceType) String() string {
	switch t {
	case NamespaceElementData:
		return "elementData"
	case NamespaceAttributes:
		return "attributes"
	case NamespaceProperties:
		return "properties"
	case NamespaceChildren:
		return "children"
	case NamespaceClassList:
		return "classList"
	case NamespaceListeners:
		return "listeners"
	case NamespaceText:
		return "text"
	case NamespaceTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// Namespace is one typed slice of a node's state. Concrete namespaces
// record their own pending changes and hand them to the tree when the
// node is drained.
type Namespace interface {
	// Type returns the namespace type tag.
	Type() NamespaceType

	// Node returns the node this namespace belongs to.
	Node() *StateNode

	// collectChanges emits the changes recorded since the last drain.
	collectChanges(fn func(Change))

	// generateInitialChanges emits the namespace's full current state as
	// changes, as if it had been built up from empty. Used when the
	// owning node attaches.
	generateInitialChanges(fn func(Change))

	// clearPending drops recorded changes without emitting them.
	clearPending()

	// forEachChild visits any child nodes held by this namespace.
	forEachChild(fn func(*StateNode))
}

// baseNamespace carries the node back-reference shared by every
// namespace implementation.
type baseNamespace struct {
	typ  NamespaceType
	node *StateNode
}

func (b *baseNamespace) Type() NamespaceType { return b.typ }

func (b *baseNamespace) Node() *StateNode { return b.node }

// markDirty registers the owning node with its tree's dirty set.
func (b *baseNamespace) markDirty() {
	b.node.markDirty(b.typ)
}

// recording reports whether incremental changes are worth keeping.
// Detached nodes skip recording; their full state is emitted when they
// attach.
func (b *baseNamespace) recording() bool {
	return b.node.Attached()
}

func (b *baseNamespace) forEachChild(fn func(*StateNode)) {}

// newNamespace instantiates the concrete namespace for a type tag.
func newNamespace(t NamespaceType, node *StateNode) Namespace {
	base := baseNamespace{typ: t, node: node}
	switch t {
	case NamespaceElementData:
		return &ElementDataNamespace{baseNamespace: base}
	case NamespaceAttributes:
		return newAttributesNamespace(base)
	case NamespaceProperties:
		return newPropertiesNamespace(base)
	case NamespaceChildren:
		return newChildrenNamespace(base)
	case NamespaceClassList:
		return newClassListNamespace(base)
	case NamespaceListeners:
		return newListenersNamespace(base)
	case NamespaceText:
		return &TextNamespace{baseNamespace: base}
	case NamespaceTemplate:
		return &TemplateDataNamespace{baseNamespace: base}
	default:
		panic("state: unknown namespace type")
	}
}
