package state

// AttributesNamespace holds element attributes. Keys are stored
// verbatim; the DOM layer normalizes names before they get here.
type AttributesNamespace struct {
	mapNamespace
}

func newAttributesNamespace(base baseNamespace) *AttributesNamespace {
	return &AttributesNamespace{mapNamespace: newMapNamespace(base)}
}

// Set stores an attribute value.
func (a *AttributesNamespace) Set(name, value string) {
	a.Put(name, value)
}

// Get returns an attribute value, with ok reporting presence.
func (a *AttributesNamespace) Get(name string) (string, bool) {
	v, ok := a.mapNamespace.Get(name)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

// Has reports whether the attribute is set.
func (a *AttributesNamespace) Has(name string) bool { return a.Contains(name) }

// Names returns the set attribute names in insertion order.
func (a *AttributesNamespace) Names() []string { return a.Keys() }
