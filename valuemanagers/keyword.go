// Package valuemanagers provides concrete cascade.ValueManager and
// cascade.ShorthandManager implementations for a representative set of
// CSS properties: generic keyword-valued properties, color, font-size,
// line-height, and the font shorthand.
package valuemanagers

import (
	"strings"

	"github.com/keskinen/cascade/cascade"
	"github.com/keskinen/cascade/dom"
)

// Keyword is the Value for any property whose cascaded/computed form is
// just its lowercased, trimmed textual value (display, position, float,
// text-align, font-style, font-weight, white-space, visibility, and
// most other non-numeric, non-color longhands).
type Keyword string

// keywordManager is a ValueManager for properties with no arithmetic:
// the computed value is always identical to the cascaded one.
type keywordManager struct {
	name      string
	inherited bool
	initial   Keyword
}

// NewKeywordManager builds a ValueManager for a plain keyword-valued
// longhand property.
func NewKeywordManager(name string, inherited bool, initial string) cascade.ValueManager {
	return &keywordManager{name: name, inherited: inherited, initial: Keyword(initial)}
}

func (m *keywordManager) PropertyName() string       { return m.name }
func (m *keywordManager) IsInheritedProperty() bool  { return m.inherited }
func (m *keywordManager) DefaultValue() cascade.Value { return m.initial }

func (m *keywordManager) CreateValue(lexicalUnit string, engine *cascade.Engine) (cascade.Value, error) {
	return Keyword(strings.ToLower(strings.TrimSpace(lexicalUnit))), nil
}

func (m *keywordManager) ComputeValue(element *dom.Element, pseudo string, engine *cascade.Engine, idx cascade.PropertyIndex, styleMap *cascade.StyleMap, cascaded cascade.Value) cascade.Value {
	return cascaded
}

// StandardKeywordProperties is the set of common longhand properties
// that need no arithmetic, each wired to a plain keywordManager. It
// gives the registry broad coverage without every property needing a
// bespoke manager.
var StandardKeywordProperties = []struct {
	Name      string
	Inherited bool
	Initial   string
}{
	{"display", false, "inline"},
	{"position", false, "static"},
	{"float", false, "none"},
	{"clear", false, "none"},
	{"overflow", false, "visible"},
	{"visibility", true, "visible"},
	{"box-sizing", false, "content-box"},
	{"font-family", true, "sans-serif"},
	{"font-style", true, "normal"},
	{"font-weight", true, "normal"},
	{"font-variant", true, "normal"},
	{"text-align", true, "start"},
	{"text-decoration", false, "none"},
	{"text-transform", true, "none"},
	{"white-space", true, "normal"},
	{"vertical-align", false, "baseline"},
	{"direction", true, "ltr"},
	{"list-style-type", true, "disc"},
	{"list-style-position", true, "outside"},
	{"cursor", true, "auto"},
	{"border-style", false, "none"},
	{"background-repeat", false, "repeat"},
	{"table-layout", false, "auto"},
}

// NewStandardKeywordManagers builds one keywordManager per entry in
// StandardKeywordProperties.
func NewStandardKeywordManagers() []cascade.ValueManager {
	out := make([]cascade.ValueManager, 0, len(StandardKeywordProperties))
	for _, p := range StandardKeywordProperties {
		out = append(out, NewKeywordManager(p.Name, p.Inherited, p.Initial))
	}
	return out
}
