package state

// ElementDataNamespace holds the element's tag. The tag is assigned once
// when the element is created and fixed afterwards.
type ElementDataNamespace struct {
	baseNamespace
	tag      string
	tagDirty bool
}

// Tag returns the element tag, or the empty string before assignment.
func (d *ElementDataNamespace) Tag() string { return d.tag }

// SetTag assigns the element tag. Reassigning a different tag is an
// error; reassigning the same tag is a no-op.
func (d *ElementDataNamespace) SetTag(tag string) error {
	if d.tag == tag {
		return nil
	}
	if d.tag != "" {
		return ErrTagSet
	}
	d.tag = tag
	if d.recording() {
		d.tagDirty = true
	}
	d.markDirty()
	return nil
}

func (d *ElementDataNamespace) collectChanges(fn func(Change)) {
	if !d.tagDirty {
		return
	}
	fn(Change{Op: ChangePut, Node: d.node.id, NS: d.typ, Key: "tag", Value: d.tag})
	d.tagDirty = false
}

func (d *ElementDataNamespace) generateInitialChanges(fn func(Change)) {
	if d.tag == "" {
		return
	}
	fn(Change{Op: ChangePut, Node: d.node.id, NS: d.typ, Key: "tag", Value: d.tag})
}

func (d *ElementDataNamespace) clearPending() { d.tagDirty = false }
