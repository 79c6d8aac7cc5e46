package state

import (
	"fmt"
	"sort"
)

// SnapshotVersion is bumped when the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is a point-in-time copy of a tree's data, suitable for
// persisting a session and rebuilding its tree later. Listener functions
// cannot be captured; a snapshot records only which event types were
// forwarded, and the application re-registers its listeners after a
// restore.
type Snapshot struct {
	Version int          `msgpack:"version" json:"version"`
	NextID  uint64       `msgpack:"nextId" json:"nextId"`
	Root    NodeSnapshot `msgpack:"root" json:"root"`
}

// NodeSnapshot is the persisted form of one node and its subtree.
type NodeSnapshot struct {
	ID         uint64          `msgpack:"id" json:"id"`
	Namespaces []NamespaceType `msgpack:"ns" json:"ns"`

	Tag           string            `msgpack:"tag,omitempty" json:"tag,omitempty"`
	Text          string            `msgpack:"text,omitempty" json:"text,omitempty"`
	Attributes    map[string]string `msgpack:"attrs,omitempty" json:"attrs,omitempty"`
	AttrOrder     []string          `msgpack:"attrOrder,omitempty" json:"attrOrder,omitempty"`
	Properties    map[string]any    `msgpack:"props,omitempty" json:"props,omitempty"`
	PropOrder     []string          `msgpack:"propOrder,omitempty" json:"propOrder,omitempty"`
	Classes       []string          `msgpack:"classes,omitempty" json:"classes,omitempty"`
	ListenerTypes []string          `msgpack:"listeners,omitempty" json:"listeners,omitempty"`
	TemplateName  string            `msgpack:"template,omitempty" json:"template,omitempty"`
	TemplateBound bool              `msgpack:"bound,omitempty" json:"bound,omitempty"`

	Children []NodeSnapshot `msgpack:"children,omitempty" json:"children,omitempty"`
}

// TakeSnapshot captures the tree's attached state. Pending changes are
// not part of a snapshot; drain the tree first if they matter.
func (t *Tree) TakeSnapshot() Snapshot {
	return Snapshot{
		Version: SnapshotVersion,
		NextID:  t.nextID,
		Root:    snapshotNode(t.root),
	}
}

func snapshotNode(n *StateNode) NodeSnapshot {
	snap := NodeSnapshot{ID: n.id}
	snap.Namespaces = append(snap.Namespaces, n.declared...)
	for _, typ := range n.declared {
		ns, ok := n.namespaces[typ]
		if !ok {
			continue
		}
		switch ns := ns.(type) {
		case *ElementDataNamespace:
			snap.Tag = ns.Tag()
		case *TextNamespace:
			snap.Text = ns.Text()
		case *AttributesNamespace:
			if len(ns.Names()) > 0 {
				snap.Attributes = make(map[string]string)
				for _, name := range ns.Names() {
					v, _ := ns.Get(name)
					snap.Attributes[name] = v
					snap.AttrOrder = append(snap.AttrOrder, name)
				}
			}
		case *PropertiesNamespace:
			if len(ns.Names()) > 0 {
				snap.Properties = make(map[string]any)
				for _, name := range ns.Names() {
					v, _ := ns.Get(name)
					snap.Properties[name] = v
					snap.PropOrder = append(snap.PropOrder, name)
				}
			}
		case *ClassListNamespace:
			snap.Classes = ns.ClassList().Items()
		case *ListenersNamespace:
			snap.ListenerTypes = ns.Types()
		case *TemplateDataNamespace:
			snap.TemplateName = ns.Name()
			snap.TemplateBound = ns.Bound()
		case *ChildrenNamespace:
			for _, child := range ns.Items() {
				snap.Children = append(snap.Children, snapshotNode(child))
			}
		}
	}
	return snap
}

// RestoreTree rebuilds a tree from a snapshot, preserving node ids so a
// resumed client's references stay valid. The restored tree starts
// clean: nothing is pending for the next drain.
func RestoreTree(snap Snapshot) (*Tree, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("state: unsupported snapshot version %d", snap.Version)
	}
	t := &Tree{
		nodes:    make(map[uint64]*StateNode),
		dirtySet: make(map[*StateNode]struct{}),
	}
	root, err := restoreNode(t, nil, snap.Root)
	if err != nil {
		return nil, err
	}
	t.root = root
	if snap.NextID > t.nextID {
		t.nextID = snap.NextID
	}
	// The client this snapshot came from already holds this state.
	t.CollectChanges(func(Change) {})
	return t, nil
}

func restoreNode(t *Tree, parent *StateNode, snap NodeSnapshot) (*StateNode, error) {
	if snap.ID == 0 {
		return nil, fmt.Errorf("state: snapshot node without id")
	}
	n := NewNode(snap.Namespaces...)
	n.tree = t
	n.parent = parent
	n.id = snap.ID
	t.registerWithID(n, snap.ID)

	if snap.Tag != "" {
		if err := n.Namespace(NamespaceElementData).(*ElementDataNamespace).SetTag(snap.Tag); err != nil {
			return nil, err
		}
	}
	if n.Declares(NamespaceText) {
		n.Namespace(NamespaceText).(*TextNamespace).SetText(snap.Text)
	}
	for _, name := range attrRestoreOrder(snap) {
		n.Namespace(NamespaceAttributes).(*AttributesNamespace).Set(name, snap.Attributes[name])
	}
	for _, name := range propRestoreOrder(snap) {
		n.Namespace(NamespaceProperties).(*PropertiesNamespace).Set(name, snap.Properties[name])
	}
	for _, class := range snap.Classes {
		if _, err := n.Namespace(NamespaceClassList).(*ClassListNamespace).ClassList().Add(class); err != nil {
			return nil, err
		}
	}
	if snap.TemplateBound {
		n.Namespace(NamespaceTemplate).(*TemplateDataNamespace).Bind(snap.TemplateName)
	}
	for _, childSnap := range snap.Children {
		child, err := restoreNode(t, n, childSnap)
		if err != nil {
			return nil, err
		}
		children := n.Namespace(NamespaceChildren).(*ChildrenNamespace)
		children.items = append(children.items, child)
	}
	return n, nil
}

func attrRestoreOrder(snap NodeSnapshot) []string {
	if len(snap.AttrOrder) > 0 {
		return snap.AttrOrder
	}
	return mapKeysSorted(snap.Attributes)
}

func propRestoreOrder(snap NodeSnapshot) []string {
	if len(snap.PropOrder) > 0 {
		return snap.PropOrder
	}
	return mapKeysSorted(snap.Properties)
}

// mapKeysSorted is the fallback ordering for snapshots written without
// explicit key order.
func mapKeysSorted[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
