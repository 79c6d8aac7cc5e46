package el

import (
	"fmt"

	"github.com/loom-ui/loom/pkg/dom"
)

// Text creates a detached text node.
func Text(content string) dom.Element {
	return dom.NewTextNode(content)
}

// Textf creates a text node from a format string.
func Textf(format string, args ...any) dom.Element {
	return dom.NewTextNode(fmt.Sprintf(format, args...))
}

// Group bundles several arguments into one, useful for components that
// return a fixed set of attributes or children.
func Group(args ...any) Arg {
	return argFunc(func(e dom.Element) {
		apply(e, args)
	})
}

// If applies the arguments only when condition holds.
func If(condition bool, args ...any) Arg {
	if !condition {
		return argFunc(func(dom.Element) {})
	}
	return Group(args...)
}

// Unless applies the arguments only when condition does not hold.
func Unless(condition bool, args ...any) Arg {
	return If(!condition, args...)
}

// When lazily builds and applies arguments only when condition holds;
// the callback is not invoked otherwise.
func When(condition bool, fn func() Arg) Arg {
	if !condition {
		return argFunc(func(dom.Element) {})
	}
	return fn()
}

// Range builds one element per item.
func Range[T any](items []T, fn func(item T, index int) dom.Element) []dom.Element {
	out := make([]dom.Element, len(items))
	for i, item := range items {
		out[i] = fn(item, i)
	}
	return out
}

// Repeat builds n elements by index.
func Repeat(n int, fn func(i int) dom.Element) []dom.Element {
	out := make([]dom.Element, n)
	for i := range out {
		out[i] = fn(i)
	}
	return out
}

// Ref captures the element being built, so a handle survives the
// construction expression:
//
//	var counter dom.Element
//	Div(Span(Ref(&counter), Text("0")))
func Ref(target *dom.Element) Arg {
	return argFunc(func(e dom.Element) {
		*target = e
	})
}
