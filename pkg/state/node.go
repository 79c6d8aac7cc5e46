package state

import "fmt"

// StateNode is one node of a state tree. It has identity, a fixed set of
// declared namespace types, and lazily created namespace instances
// holding the actual data.
//
// A node is detached until inserted under an attached node (or created
// as a tree root). Only attached nodes have ids and report changes;
// mutations on a detached subtree accumulate silently and surface as
// initial changes when the subtree attaches.
type StateNode struct {
	tree   *Tree
	parent *StateNode
	id     uint64

	declared   []NamespaceType
	namespaces map[NamespaceType]Namespace

	// dirty namespace set since the last drain.
	dirty map[NamespaceType]bool

	// attachPending is set between attach and the next drain; the drain
	// emits an attach change plus full namespace state instead of the
	// recorded increments.
	attachPending bool

	// detachPending with detachedID preserve what the detach change must
	// report after the node's id is cleared.
	detachPending bool
	detachedID    uint64
}

// NewNode creates a detached node declaring the given namespace
// composition. The composition is fixed for the node's lifetime.
// Declaring a type twice is a programming error.
func NewNode(types ...NamespaceType) *StateNode {
	n := &StateNode{
		declared:   make([]NamespaceType, 0, len(types)),
		namespaces: make(map[NamespaceType]Namespace, len(types)),
		dirty:      make(map[NamespaceType]bool),
	}
	for _, t := range types {
		if n.Declares(t) {
			panic(fmt.Sprintf("state: namespace %v declared twice", t))
		}
		n.declared = append(n.declared, t)
	}
	return n
}

// Declares reports whether the node's composition includes the given
// namespace type, without instantiating it.
func (n *StateNode) Declares(t NamespaceType) bool {
	for _, d := range n.declared {
		if d == t {
			return true
		}
	}
	return false
}

// Namespace returns the node's instance of the given namespace type,
// creating it on first access. At most one instance exists per type.
// Asking for an undeclared type is a programming error.
func (n *StateNode) Namespace(t NamespaceType) Namespace {
	if ns, ok := n.namespaces[t]; ok {
		return ns
	}
	if !n.Declares(t) {
		panic(fmt.Sprintf("state: namespace %v not declared for this node", t))
	}
	ns := newNamespace(t, n)
	n.namespaces[t] = ns
	return ns
}

// ID returns the node's tree-assigned id, or zero while detached.
func (n *StateNode) ID() uint64 { return n.id }

// Parent returns the node's parent, or nil for detached roots and the
// tree root.
func (n *StateNode) Parent() *StateNode { return n.parent }

// Tree returns the tree the node is attached to, or nil.
func (n *StateNode) Tree() *Tree { return n.tree }

// Attached reports whether the node is part of a tree.
func (n *StateNode) Attached() bool { return n.tree != nil }

// markDirty flags one namespace as changed and registers the node with
// the tree when attached. Called by namespaces after every successful
// mutation.
func (n *StateNode) markDirty(t NamespaceType) {
	n.dirty[t] = true
	if n.tree != nil {
		n.tree.registerDirty(n)
	}
}

// attach joins the node and its subtree to a tree. The parent's id is
// recorded before this call by the children splice; here each node gets
// an id, is indexed, and is queued for an attach change.
func (n *StateNode) attach(tree *Tree, parent *StateNode) {
	n.tree = tree
	n.parent = parent
	n.id = tree.register(n)
	n.attachPending = true
	tree.registerDirty(n)
	n.forEachChild(func(child *StateNode) {
		child.attach(tree, n)
	})
}

// detach removes the node and its subtree from the tree. Only the
// subtree root is queued for a detach change; the client drops
// descendants with it. A node whose attach was never drained vanishes
// silently, since the client never learned about it.
func (n *StateNode) detach() {
	if !n.attachPending {
		n.detachPending = true
		n.detachedID = n.id
		n.tree.registerDirty(n)
	}
	n.clearOwner()
}

// clearOwner strips tree membership from the node and its subtree.
func (n *StateNode) clearOwner() {
	n.tree.unregister(n)
	n.tree = nil
	n.id = 0
	n.parent = nil
	n.attachPending = false
	n.forEachChild(func(child *StateNode) {
		child.clearOwner()
	})
}

// forEachChild visits the node's direct children across all namespaces.
func (n *StateNode) forEachChild(fn func(*StateNode)) {
	for _, t := range n.declared {
		if ns, ok := n.namespaces[t]; ok {
			ns.forEachChild(fn)
		}
	}
}

// isDescendantOf reports whether the node sits in other's subtree,
// including being other itself.
func (n *StateNode) isDescendantOf(other *StateNode) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// collect emits the node's pending changes. A freshly attached node
// emits its full state; a detached node emits only the detach marker.
func (n *StateNode) collect(fn func(Change)) {
	if n.detachPending {
		fn(Change{Op: ChangeDetach, Node: n.detachedID})
		n.detachPending = false
		n.detachedID = 0
		n.clearDirtyState()
		// Fall through in case the node was reattached before the drain.
	}
	if n.tree == nil {
		n.clearDirtyState()
		return
	}
	if n.attachPending {
		var parentID uint64
		if n.parent != nil {
			parentID = n.parent.id
		}
		fn(Change{Op: ChangeAttach, Node: n.id, Parent: parentID})
		for _, t := range n.declared {
			if ns, ok := n.namespaces[t]; ok {
				ns.generateInitialChanges(fn)
			}
		}
		n.attachPending = false
		n.clearDirtyState()
		return
	}
	for _, t := range n.declared {
		if !n.dirty[t] {
			continue
		}
		n.Namespace(t).collectChanges(fn)
	}
	n.clearDirtyState()
}

// clearDirtyState resets dirty flags and drops recorded increments.
func (n *StateNode) clearDirtyState() {
	for t := range n.dirty {
		delete(n.dirty, t)
	}
	for _, ns := range n.namespaces {
		ns.clearPending()
	}
}
