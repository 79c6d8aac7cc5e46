package state

import (
	"strings"
	"unicode"
)

// ClassListNamespace stores an element's class tokens as an ordered list
// with set semantics exposed through ClassList.
type ClassListNamespace struct {
	listNamespace[string]
	view ClassList
}

func newClassListNamespace(base baseNamespace) *ClassListNamespace {
	ns := &ClassListNamespace{}
	ns.baseNamespace = base
	ns.view = ClassList{setView[string]{list: &ns.listNamespace, validate: validateClassName}}
	return ns
}

// ClassList returns the set view over the class tokens.
func (c *ClassListNamespace) ClassList() *ClassList { return &c.view }

// ClassList is a set of class name tokens. Tokens keep insertion order,
// duplicates collapse, and an invalid token is rejected before any state
// changes.
type ClassList struct {
	setView[string]
}

// String joins the tokens with single spaces, matching the class
// attribute form.
func (c *ClassList) String() string {
	return strings.Join(c.Items(), " ")
}

// validateClassName rejects tokens that cannot appear in a class
// attribute: empty strings and anything containing whitespace.
func validateClassName(name string) error {
	if name == "" {
		return ErrEmptyClassName
	}
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return &InvalidClassError{Name: name}
	}
	return nil
}
