package dom

import "strings"

// Attr is a single attribute of an Element.
type Attr struct {
	namespaceURI string
	name         string // local name, lower-cased
	value        string
}

func (a *Attr) Name() string         { return a.name }
func (a *Attr) NamespaceURI() string { return a.namespaceURI }
func (a *Attr) Value() string        { return a.value }

// NamedNodeMap is an element's ordered set of attributes.
type NamedNodeMap struct {
	attrs []*Attr
}

func newNamedNodeMap() *NamedNodeMap {
	return &NamedNodeMap{}
}

func (m *NamedNodeMap) Length() int { return len(m.attrs) }

func (m *NamedNodeMap) Item(i int) *Attr {
	if i < 0 || i >= len(m.attrs) {
		return nil
	}
	return m.attrs[i]
}

func (m *NamedNodeMap) getByName(name string) *Attr {
	name = strings.ToLower(name)
	for _, a := range m.attrs {
		if a.namespaceURI == "" && a.name == name {
			return a
		}
	}
	return nil
}

func (m *NamedNodeMap) getByNS(namespaceURI, localName string) *Attr {
	localName = strings.ToLower(localName)
	for _, a := range m.attrs {
		if a.namespaceURI == namespaceURI && a.name == localName {
			return a
		}
	}
	return nil
}

func (m *NamedNodeMap) set(a *Attr) {
	a.name = strings.ToLower(a.name)
	m.attrs = append(m.attrs, a)
}

func (m *NamedNodeMap) remove(namespaceURI, localName string) {
	localName = strings.ToLower(localName)
	for i, a := range m.attrs {
		if a.namespaceURI == namespaceURI && a.name == localName {
			m.attrs = append(m.attrs[:i], m.attrs[i+1:]...)
			return
		}
	}
}
