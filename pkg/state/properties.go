package state

// PropertiesNamespace holds element properties. Unlike attributes,
// property values keep their JSON-compatible Go types.
type PropertiesNamespace struct {
	mapNamespace
}

func newPropertiesNamespace(base baseNamespace) *PropertiesNamespace {
	return &PropertiesNamespace{mapNamespace: newMapNamespace(base)}
}

// Set stores a property value.
func (p *PropertiesNamespace) Set(name string, value any) {
	p.Put(name, value)
}

// Names returns the set property names in insertion order.
func (p *PropertiesNamespace) Names() []string { return p.Keys() }
