package state

// ChangeOp identifies the kind of mutation a Change describes.
type ChangeOp uint8

// Change operations. Attach and detach frame a node's lifecycle; put,
// remove and splice carry namespace content.
const (
	// ChangeAttach announces a node that joined the tree. The node's
	// namespace state follows as separate changes.
	ChangeAttach ChangeOp = 0x01

	// ChangeDetach announces a node that left the tree. The client drops
	// the node and its whole subtree.
	ChangeDetach ChangeOp = 0x02

	// ChangePut sets a keyed value in a map-shaped namespace.
	ChangePut ChangeOp = 0x03

	// ChangeRemove deletes a keyed value from a map-shaped namespace.
	ChangeRemove ChangeOp = 0x04

	// ChangeSplice replaces a range in a list-shaped namespace.
	ChangeSplice ChangeOp = 0x05
)

// String returns a human-readable name for the change operation.
func (op ChangeOp) String() string {
	switch op {
	case ChangeAttach:
		return "attach"
	case ChangeDetach:
		return "detach"
	case ChangePut:
		return "put"
	case ChangeRemove:
		return "remove"
	case ChangeSplice:
		return "splice"
	default:
		return "unknown"
	}
}

// Change describes one observed mutation of a node. Only the fields
// relevant to Op are populated.
//
// Changes referencing a node id may precede that node's attach change
// within one drain; a consumer allocates a node record the first time an
// id appears.
type Change struct {
	// Op is the change operation.
	Op ChangeOp

	// Node is the id of the changed node. For detach changes this is the
	// id the node had while attached.
	Node uint64

	// NS tags the namespace the change belongs to. Unset for attach and
	// detach.
	NS NamespaceType

	// Parent is the id of the parent node. Attach only; zero for the
	// tree root.
	Parent uint64

	// Key is the map key. Put and remove only.
	Key string

	// Value is the new value. Put only.
	Value any

	// Index is the start of the replaced range. Splice only.
	Index int

	// Removed is the number of items dropped at Index. Splice only.
	Removed int

	// Added holds inserted plain values. Splice on value lists only.
	Added []any

	// AddedNodes holds ids of inserted child nodes. Splice on the
	// children namespace only.
	AddedNodes []uint64
}
