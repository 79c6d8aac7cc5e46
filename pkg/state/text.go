package state

// TextNamespace holds the content of a text node.
type TextNamespace struct {
	baseNamespace
	text  string
	dirty bool
}

// Text returns the node's text content.
func (t *TextNamespace) Text() string { return t.text }

// SetText replaces the text content. Setting the current value is a
// no-op.
func (t *TextNamespace) SetText(text string) {
	if t.text == text {
		return
	}
	t.text = text
	if t.recording() {
		t.dirty = true
	}
	t.markDirty()
}

func (t *TextNamespace) collectChanges(fn func(Change)) {
	if !t.dirty {
		return
	}
	fn(Change{Op: ChangePut, Node: t.node.id, NS: t.typ, Key: "text", Value: t.text})
	t.dirty = false
}

func (t *TextNamespace) generateInitialChanges(fn func(Change)) {
	fn(Change{Op: ChangePut, Node: t.node.id, NS: t.typ, Key: "text", Value: t.text})
}

func (t *TextNamespace) clearPending() { t.dirty = false }
