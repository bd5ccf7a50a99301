package valuemanagers

import (
	"fmt"

	"github.com/keskinen/cascade/cascade"
	"github.com/keskinen/cascade/dom"
)

// LineHeightValue is line-height's cascaded Value: "normal", an
// already-absolute px length, or a unitless multiplier/percentage that
// must be resolved against the element's own computed font-size.
type LineHeightValue struct {
	Normal bool
	Raw    parsedLength
}

type lineHeightManager struct{}

// NewLineHeightManager builds the line-height ValueManager.
func NewLineHeightManager() cascade.ValueManager {
	return &lineHeightManager{}
}

func (m *lineHeightManager) PropertyName() string       { return "line-height" }
func (m *lineHeightManager) IsInheritedProperty() bool   { return true }
func (m *lineHeightManager) DefaultValue() cascade.Value { return LineHeightValue{Normal: true} }

func (m *lineHeightManager) CreateValue(lexicalUnit string, engine *cascade.Engine) (cascade.Value, error) {
	pl, ok := parseLengthToken(lexicalUnit)
	if !ok {
		return nil, &cascade.SyntaxError{Context: "line-height", Snippet: lexicalUnit, Err: fmt.Errorf("invalid line-height")}
	}
	if pl.keyword == "normal" {
		return LineHeightValue{Normal: true}, nil
	}
	if pl.keyword != "" {
		return nil, &cascade.SyntaxError{Context: "line-height", Snippet: lexicalUnit, Err: fmt.Errorf("unknown keyword")}
	}
	return LineHeightValue{Raw: pl}, nil
}

// ComputeValue resolves "normal" to 1.2x the element's own computed
// font-size, a unitless number or percentage to that multiple of its
// own font-size (both FontSizeRelative: a change to this element's own
// font-size must re-resolve this slot), and an absolute px length
// unchanged.
func (m *lineHeightManager) ComputeValue(element *dom.Element, pseudo string, engine *cascade.Engine, idx cascade.PropertyIndex, styleMap *cascade.StyleMap, cascaded cascade.Value) cascade.Value {
	lv, ok := cascaded.(LineHeightValue)
	if !ok {
		return cascaded
	}

	if lv.Raw.unit == "px" {
		return PxValue(lv.Raw.value)
	}

	ownFontSize := 16.0
	if v := engine.GetComputedStyle(element, pseudo, engine.Registry().FontSizeIndex()); v != nil {
		if px, ok := v.(PxValue); ok {
			ownFontSize = float64(px)
		}
	}
	styleMap.Slot(idx).FontSizeRelative = true

	if lv.Normal {
		return PxValue(ownFontSize * 1.2)
	}
	switch lv.Raw.unit {
	case "%":
		return PxValue(lv.Raw.value / 100 * ownFontSize)
	default: // unitless number multiplier
		return PxValue(lv.Raw.value * ownFontSize)
	}
}
