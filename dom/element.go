package dom

import "strings"

// Element is a Node known to be of ElementNode type. Casting is a plain
// type conversion, matching the teacher's Node/Element relationship.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node { return (*Node)(e) }

func (e *Element) LocalName() string    { return e.element.localName }
func (e *Element) NamespaceURI() string { return e.element.namespaceURI }

func (e *Element) OwnerDocument() *Document { return e.ownerDoc }
func (e *Element) ParentElement() *Element  { return e.AsNode().ParentElement() }

// Attributes returns the element's live attribute map.
func (e *Element) Attributes() *NamedNodeMap { return e.element.attrs }

// GetAttribute returns the attribute's value, or "" if absent.
func (e *Element) GetAttribute(name string) string {
	if a := e.element.attrs.getByName(name); a != nil {
		return a.value
	}
	return ""
}

// GetAttributeNS returns the attribute's value in a namespace, or "" if
// absent.
func (e *Element) GetAttributeNS(namespaceURI, localName string) string {
	if a := e.element.attrs.getByNS(namespaceURI, localName); a != nil {
		return a.value
	}
	return ""
}

// HasAttribute reports whether the unqualified attribute name is present.
func (e *Element) HasAttribute(name string) bool {
	return e.element.attrs.getByName(name) != nil
}

// SetAttribute sets (creating or updating) an unnamespaced attribute and
// fires the corresponding ADDITION/MODIFICATION mutation.
func (e *Element) SetAttribute(name, value string) {
	e.setAttributeNS("", name, value)
}

// SetAttributeNS sets a namespaced attribute.
func (e *Element) SetAttributeNS(namespaceURI, localName, value string) {
	e.setAttributeNS(namespaceURI, localName, value)
}

func (e *Element) setAttributeNS(namespaceURI, name, value string) {
	existing := e.element.attrs.getByNS(namespaceURI, name)
	if existing == nil {
		e.element.attrs.set(&Attr{namespaceURI: namespaceURI, name: strings.ToLower(name), value: value})
		if e.ownerDoc != nil {
			e.ownerDoc.notifyAttribute(e, name, namespaceURI, MutationAddition, "", value)
		}
		return
	}
	old := existing.value
	if old == value {
		return
	}
	existing.value = value
	if e.ownerDoc != nil {
		e.ownerDoc.notifyAttribute(e, name, namespaceURI, MutationModification, old, value)
	}
}

// RemoveAttribute removes an unnamespaced attribute, firing a REMOVAL
// mutation if it was present.
func (e *Element) RemoveAttribute(name string) {
	e.removeAttributeNS("", name)
}

// RemoveAttributeNS removes a namespaced attribute.
func (e *Element) RemoveAttributeNS(namespaceURI, name string) {
	e.removeAttributeNS(namespaceURI, name)
}

func (e *Element) removeAttributeNS(namespaceURI, name string) {
	existing := e.element.attrs.getByNS(namespaceURI, name)
	if existing == nil {
		return
	}
	old := existing.value
	e.element.attrs.remove(namespaceURI, name)
	if e.ownerDoc != nil {
		e.ownerDoc.notifyAttribute(e, name, namespaceURI, MutationRemoval, old, "")
	}
}

// HasClass reports whether class is present in the whitespace-separated
// "class" attribute.
func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.GetAttribute("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// Style returns the element's inline style declaration (the "style"
// attribute, kept parsed).
func (e *Element) Style() *CSSStyleDeclaration { return e.element.style }

// FirstElementChild returns the first child that is an element.
func (e *Element) FirstElementChild() *Element {
	for c := e.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// NextElementSibling returns the next sibling that is an element.
func (e *Element) NextElementSibling() *Element {
	for s := e.nextSibling; s != nil; s = s.nextSibling {
		if s.nodeType == ElementNode {
			return (*Element)(s)
		}
	}
	return nil
}

// PreviousElementSibling returns the previous sibling that is an element.
func (e *Element) PreviousElementSibling() *Element {
	for s := e.prevSibling; s != nil; s = s.prevSibling {
		if s.nodeType == ElementNode {
			return (*Element)(s)
		}
	}
	return nil
}
