package valuemanagers

import (
	"fmt"
	"strings"

	"github.com/keskinen/cascade/cascade"
	"github.com/keskinen/cascade/cssom"
	"github.com/keskinen/cascade/dom"
)

// ColorValue is the Value for any color-valued property. CurrentColor
// marks a "currentcolor" cascaded value, whose resolution is deferred
// to compute time rather than baked in at parse time.
type ColorValue struct {
	Color        cssom.Color
	CurrentColor bool
}

type colorManager struct {
	name      string
	inherited bool
	initial   ColorValue
}

// NewColorManager builds a ValueManager for a color-valued property.
// initial is parsed with cssom.ParseColor at registration time and must
// be a valid color keyword.
func NewColorManager(name string, inherited bool, initial string) cascade.ValueManager {
	if strings.EqualFold(initial, "currentcolor") {
		return &colorManager{name: name, inherited: inherited, initial: ColorValue{CurrentColor: true}}
	}
	c, ok := cssom.ParseColor(initial)
	if !ok {
		panic(fmt.Sprintf("valuemanagers: invalid initial color %q for %s", initial, name))
	}
	return &colorManager{name: name, inherited: inherited, initial: ColorValue{Color: c}}
}

func (m *colorManager) PropertyName() string        { return m.name }
func (m *colorManager) IsInheritedProperty() bool    { return m.inherited }
func (m *colorManager) DefaultValue() cascade.Value  { return m.initial }

func (m *colorManager) CreateValue(lexicalUnit string, engine *cascade.Engine) (cascade.Value, error) {
	text := strings.TrimSpace(lexicalUnit)
	if strings.EqualFold(text, "currentcolor") {
		return ColorValue{CurrentColor: true}, nil
	}
	c, ok := cssom.ParseColor(text)
	if !ok {
		return nil, &cascade.SyntaxError{Context: m.name, Snippet: lexicalUnit, Err: fmt.Errorf("invalid color")}
	}
	return ColorValue{Color: c}, nil
}

// ComputeValue resolves "currentcolor": on the color property itself it
// behaves like inheriting the parent's computed color (ParentRelative);
// on any other color-valued property it resolves to the element's own
// computed color (ColorRelative). Ordinary color values pass through
// unchanged.
func (m *colorManager) ComputeValue(element *dom.Element, pseudo string, engine *cascade.Engine, idx cascade.PropertyIndex, styleMap *cascade.StyleMap, cascaded cascade.Value) cascade.Value {
	cv, ok := cascaded.(ColorValue)
	if !ok || !cv.CurrentColor {
		return cascaded
	}

	registry := engine.Registry()
	colorIdx := registry.ColorIndex()

	if idx == colorIdx {
		if parent := engine.NearestStylableAncestor(element); parent != nil {
			styleMap.Slot(idx).ParentRelative = true
			return engine.GetComputedStyle(parent, "", colorIdx)
		}
		return registry.ValueManagerAt(colorIdx).DefaultValue()
	}

	styleMap.Slot(idx).ColorRelative = true
	return engine.GetComputedStyle(element, pseudo, colorIdx)
}
