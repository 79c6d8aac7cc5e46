package state

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by tree and namespace operations.
var (
	// ErrNilChild is returned when a nil node is offered as a child.
	ErrNilChild = errors.New("state: child node is nil")

	// ErrHasParent is returned when inserting a node that already has a
	// parent. The node must be removed from its current parent first.
	ErrHasParent = errors.New("state: node already has a parent")

	// ErrNotChild is returned when removing a node that is not a child
	// of the target node.
	ErrNotChild = errors.New("state: node is not a child of this node")

	// ErrOwnDescendant is returned when inserting a node into its own
	// subtree.
	ErrOwnDescendant = errors.New("state: node cannot contain itself")

	// ErrEmptyClassName is returned for an empty class list token.
	ErrEmptyClassName = errors.New("state: class name must not be empty")

	// ErrTagSet is returned when changing an element tag that was
	// already assigned.
	ErrTagSet = errors.New("state: element tag already set")
)

// IndexError reports a list operation with an out-of-range index.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("state: %s index %d out of range with length %d", e.Op, e.Index, e.Len)
}

// InvalidClassError reports a rejected class list token.
type InvalidClassError struct {
	Name string
}

func (e *InvalidClassError) Error() string {
	return fmt.Sprintf("state: class name %q must not contain whitespace", e.Name)
}
