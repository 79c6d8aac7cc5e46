package state

// Tree owns a state node hierarchy: the id sequence, the node index and
// the ordered dirty set drained by CollectChanges.
type Tree struct {
	nextID uint64
	nodes  map[uint64]*StateNode
	root   *StateNode

	dirtyOrder []*StateNode
	dirtySet   map[*StateNode]struct{}
}

// NewTree creates a tree whose root is a body element. The root is
// attached from the start and cannot be detached; its attach change is
// part of the first drain so a fresh client can bootstrap from it.
func NewTree() *Tree {
	t := &Tree{
		nodes:    make(map[uint64]*StateNode),
		dirtySet: make(map[*StateNode]struct{}),
	}
	root := NewNode(
		NamespaceElementData,
		NamespaceAttributes,
		NamespaceProperties,
		NamespaceChildren,
		NamespaceClassList,
		NamespaceListeners,
	)
	root.attach(t, nil)
	data := root.Namespace(NamespaceElementData).(*ElementDataNamespace)
	_ = data.SetTag("body")
	t.root = root
	return t
}

// Root returns the tree's root node.
func (t *Tree) Root() *StateNode { return t.root }

// NodeByID resolves an attached node by id.
func (t *Tree) NodeByID(id uint64) (*StateNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Size returns the number of attached nodes.
func (t *Tree) Size() int { return len(t.nodes) }

// HasChanges reports whether a drain would produce changes.
func (t *Tree) HasChanges() bool { return len(t.dirtyOrder) > 0 }

// CollectChanges drains every pending change in the order the owning
// nodes were first dirtied, then leaves the tree clean. The callback
// sees attach and detach markers interleaved with namespace content
// changes; within one node, namespaces drain in declaration order.
func (t *Tree) CollectChanges(fn func(Change)) {
	// Nodes can be dirtied again while draining (listener side effects);
	// keep going until the set is empty.
	for len(t.dirtyOrder) > 0 {
		batch := t.dirtyOrder
		t.dirtyOrder = nil
		t.dirtySet = make(map[*StateNode]struct{})
		for _, n := range batch {
			n.collect(fn)
		}
	}
}

// registerDirty queues a node for the next drain. Repeat registrations
// keep the node's original position.
func (t *Tree) registerDirty(n *StateNode) {
	if _, ok := t.dirtySet[n]; ok {
		return
	}
	t.dirtySet[n] = struct{}{}
	t.dirtyOrder = append(t.dirtyOrder, n)
}

// register assigns the next id to a node joining the tree.
func (t *Tree) register(n *StateNode) uint64 {
	t.nextID++
	t.nodes[t.nextID] = n
	return t.nextID
}

// registerWithID indexes a node under a caller-chosen id, keeping the
// sequence ahead of it. Used when restoring a snapshot.
func (t *Tree) registerWithID(n *StateNode, id uint64) {
	if id > t.nextID {
		t.nextID = id
	}
	t.nodes[id] = n
}

// unregister drops a node from the id index.
func (t *Tree) unregister(n *StateNode) {
	delete(t.nodes, n.id)
}
