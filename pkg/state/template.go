package state

// TemplateDataNamespace marks a node as template-backed. While bound,
// the node's child structure is owned by the template and the dom layer
// routes the node through the template provider. Unbinding reverts the
// node to a standard element without touching its composition.
type TemplateDataNamespace struct {
	baseNamespace
	name  string
	bound bool
	dirty bool
}

// Bound reports whether the node is currently template-backed.
func (t *TemplateDataNamespace) Bound() bool { return t.bound }

// Name returns the template name the node was bound with.
func (t *TemplateDataNamespace) Name() string { return t.name }

// Bind marks the node as backed by the named template.
func (t *TemplateDataNamespace) Bind(name string) {
	if t.bound && t.name == name {
		return
	}
	t.name = name
	t.bound = true
	if t.recording() {
		t.dirty = true
	}
	t.markDirty()
}

// Unbind releases the template. The node keeps its seeded children but
// behaves as a standard element from here on.
func (t *TemplateDataNamespace) Unbind() {
	if !t.bound {
		return
	}
	t.bound = false
	if t.recording() {
		t.dirty = true
	}
	t.markDirty()
}

func (t *TemplateDataNamespace) collectChanges(fn func(Change)) {
	if !t.dirty {
		return
	}
	if t.bound {
		fn(Change{Op: ChangePut, Node: t.node.id, NS: t.typ, Key: "template", Value: t.name})
	} else {
		fn(Change{Op: ChangeRemove, Node: t.node.id, NS: t.typ, Key: "template"})
	}
	t.dirty = false
}

func (t *TemplateDataNamespace) generateInitialChanges(fn func(Change)) {
	if !t.bound {
		return
	}
	fn(Change{Op: ChangePut, Node: t.node.id, NS: t.typ, Key: "template", Value: t.name})
}

func (t *TemplateDataNamespace) clearPending() { t.dirty = false }
