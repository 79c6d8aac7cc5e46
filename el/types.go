package el

import (
	"fmt"

	"github.com/loom-ui/loom/pkg/dom"
)

// Arg configures an element under construction. Attribute, property and
// event helpers all produce Args; applying one mutates the element it
// is passed to.
type Arg interface {
	applyTo(dom.Element)
}

type argFunc func(dom.Element)

func (f argFunc) applyTo(e dom.Element) { f(e) }

// New builds an element with the given tag and applies the arguments in
// order. Accepted argument types:
//
//   - Arg: attribute, property, class or event helper
//   - dom.Element: appended as a child
//   - string: appended as a text node
//   - []dom.Element: each appended as a child
//   - nil: skipped
//
// Any other type panics; argument types are fixed at the call site, so
// a mismatch is a programmer error.
func New(tag string, args ...any) dom.Element {
	e, err := dom.NewElement(tag)
	if err != nil {
		panic(err)
	}
	apply(e, args)
	return e
}

func apply(e dom.Element, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// explicitly allowed, produced by conditional helpers
		case Arg:
			v.applyTo(e)
		case dom.Element:
			mustAppend(e, v)
		case string:
			mustAppend(e, dom.NewTextNode(v))
		case []dom.Element:
			for _, child := range v {
				mustAppend(e, child)
			}
		default:
			panic(fmt.Sprintf("el: unsupported argument type %T", arg))
		}
	}
}

func mustAppend(parent, child dom.Element) {
	if err := parent.AppendChild(child); err != nil {
		panic(err)
	}
}
