// Package el provides the UI builder DSL for loom.
//
// Element constructors build detached dom.Element trees from variadic
// arguments: attribute and event helpers, child elements, and plain
// strings (which become text nodes). Attach the result under a session
// document with AppendChild.
//
// Typical usage:
//
//	import (
//	    "github.com/loom-ui/loom/pkg/dom"
//	    . "github.com/loom-ui/loom/el"
//	)
//
//	card := Div(Class("card"),
//	    H2(Text("Welcome")),
//	    Button(ID("go"), Text("Start"), OnClick(func(e dom.Event) {
//	        // handle the click
//	    })),
//	)
//
// The constructors panic on programmer errors such as an invalid tag or
// attribute name; dynamic values go through dom.Element directly.
package el
