package state

// ChildrenNamespace holds a node's child nodes in document order. It
// maintains parent pointers and drives attach and detach as children
// enter and leave an attached subtree.
type ChildrenNamespace struct {
	listNamespace[*StateNode]
}

func newChildrenNamespace(base baseNamespace) *ChildrenNamespace {
	ns := &ChildrenNamespace{}
	ns.baseNamespace = base
	return ns
}

// Append adds a child after the existing children.
func (c *ChildrenNamespace) Append(child *StateNode) error {
	return c.Insert(c.Len(), child)
}

// Insert places a child at index, shifting later children up. The child
// must not already have a parent and must not contain this node.
func (c *ChildrenNamespace) Insert(index int, child *StateNode) error {
	if child == nil {
		return ErrNilChild
	}
	if child.parent != nil || child.Attached() {
		return ErrHasParent
	}
	if c.node.isDescendantOf(child) {
		return ErrOwnDescendant
	}
	if err := c.listNamespace.insert(index, child); err != nil {
		return err
	}
	child.parent = c.node
	if c.node.Attached() {
		child.attach(c.node.tree, c.node)
	}
	return nil
}

// RemoveIndex removes and returns the child at index.
func (c *ChildrenNamespace) RemoveIndex(index int) (*StateNode, error) {
	child, err := c.listNamespace.removeIndex(index)
	if err != nil {
		return nil, err
	}
	c.release(child)
	return child, nil
}

// Remove removes the given node, which must be a direct child.
func (c *ChildrenNamespace) Remove(child *StateNode) error {
	if child == nil {
		return ErrNilChild
	}
	i := c.IndexOf(child)
	if i < 0 {
		return ErrNotChild
	}
	_, err := c.listNamespace.removeIndex(i)
	if err != nil {
		return err
	}
	c.release(child)
	return nil
}

// Clear removes every child.
func (c *ChildrenNamespace) Clear() {
	children := c.Items()
	c.listNamespace.clear()
	for _, child := range children {
		c.release(child)
	}
}

// release severs a removed child from its parent and tree.
func (c *ChildrenNamespace) release(child *StateNode) {
	if child.Attached() {
		child.detach()
		return
	}
	child.parent = nil
}

func (c *ChildrenNamespace) forEachChild(fn func(*StateNode)) {
	for _, child := range c.items {
		fn(child)
	}
}
