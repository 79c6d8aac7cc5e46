package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/loom-ui/loom/pkg/state"
)

// FromTemplate creates a template-backed element with the given tag and
// seeds its children from the parsed template fragment, in document
// order. Element nodes become elements with their attributes (the class
// attribute feeds the class list), text nodes keep their content, and
// whitespace-only text between tags is dropped. Comments and other node
// kinds are skipped.
//
// The returned element reads like a standard element but refuses child
// mutations until UnbindTemplate is called.
func FromTemplate(tag string, tmpl *html.Node) (Element, error) {
	if !tagPattern.MatchString(tag) {
		return Element{}, &InvalidTagError{Tag: tag}
	}
	types := append([]state.NamespaceType{}, elementNamespaces...)
	types = append(types, state.NamespaceTemplate)
	node := state.NewNode(types...)
	_ = elementData(node).SetTag(tag)
	el := Element{node: node}

	if tmpl != nil {
		for hn := tmpl.FirstChild; hn != nil; hn = hn.NextSibling {
			child, ok, err := materializeNode(hn)
			if err != nil {
				return Element{}, err
			}
			if !ok {
				continue
			}
			if err := el.AppendChild(child); err != nil {
				return Element{}, err
			}
		}
	}

	// Bind last: the template provider takes over only after the
	// structure is in place.
	templateData(node).Bind(tag)
	return el, nil
}

// materializeNode converts one parsed HTML node. ok is false for nodes
// that do not materialize (whitespace runs, comments, doctypes).
func materializeNode(hn *html.Node) (Element, bool, error) {
	switch hn.Type {
	case html.TextNode:
		if strings.TrimSpace(hn.Data) == "" {
			return Element{}, false, nil
		}
		return NewTextNode(hn.Data), true, nil
	case html.ElementNode:
		el, err := NewElement(hn.Data)
		if err != nil {
			return Element{}, false, err
		}
		for _, attr := range hn.Attr {
			if attr.Key == "class" {
				if err := setClassAttribute(el.node, attr.Val); err != nil {
					return Element{}, false, err
				}
				continue
			}
			// Template markup can carry binding syntax in attribute
			// names; store them verbatim instead of validating.
			attributes(el.node).Set(attr.Key, attr.Val)
		}
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			child, ok, err := materializeNode(c)
			if err != nil {
				return Element{}, false, err
			}
			if !ok {
				continue
			}
			if err := el.AppendChild(child); err != nil {
				return Element{}, false, err
			}
		}
		return el, true, nil
	default:
		return Element{}, false, nil
	}
}
