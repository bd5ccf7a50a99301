package dom

import "strings"

// CSSStyleDeclaration is a thin, ordered view over an element's "style"
// attribute text. It is CSSOM-level only (raw property/value/priority
// triples as strings) — turning those strings into cascade Values is
// the cascade engine's job via its own declaration parser, exactly as
// spec.md's inline-author step (§4.4 step 5) describes.
type CSSStyleDeclaration struct {
	element *Element
}

func newCSSStyleDeclaration(el *Element) *CSSStyleDeclaration {
	return &CSSStyleDeclaration{element: el}
}

// CSSText returns the raw "style" attribute text.
func (sd *CSSStyleDeclaration) CSSText() string {
	return sd.element.GetAttribute("style")
}

// SetCSSText replaces the "style" attribute text, firing the same
// attribute mutation a direct SetAttribute("style", ...) would.
func (sd *CSSStyleDeclaration) SetCSSText(text string) {
	sd.element.SetAttribute("style", text)
}

// GetPropertyValue returns the raw textual value of property within the
// inline declaration, ignoring "!important", or "" if absent.
func (sd *CSSStyleDeclaration) GetPropertyValue(property string) string {
	for _, decl := range sd.splitDeclarations() {
		name, value, _ := splitDeclaration(decl)
		if strings.EqualFold(name, property) {
			return value
		}
	}
	return ""
}

func (sd *CSSStyleDeclaration) splitDeclarations() []string {
	text := sd.CSSText()
	var parts []string
	for _, p := range strings.Split(text, ";") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func splitDeclaration(decl string) (name, value string, important bool) {
	idx := strings.Index(decl, ":")
	if idx < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(decl[:idx])
	value = strings.TrimSpace(decl[idx+1:])
	if strings.HasSuffix(strings.ToLower(value), "!important") {
		important = true
		value = strings.TrimSpace(value[:len(value)-len("!important")])
	}
	return name, value, important
}
