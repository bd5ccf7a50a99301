package valuemanagers

import (
	"fmt"

	"github.com/keskinen/cascade/cascade"
	"github.com/keskinen/cascade/dom"
)

// PxValue is the Value for font-size's computed form: a resolved
// absolute length in pixels. The cascaded form is FontSizeValue.
type PxValue float64

// FontSizeValue is font-size's cascaded Value: either an already
// absolute keyword/length, or one still relative to the ancestor chain
// (em, %, smaller/larger), which ComputeValue resolves against the
// nearest stylable ancestor's computed font-size.
type FontSizeValue struct {
	Absolute Keyword      // one of the absolute/keyword forms, or ""
	Raw      parsedLength // set when the token needs ancestor resolution
}

var absoluteFontSizeKeywords = map[string]float64{
	"xx-small": 9, "x-small": 10, "small": 13, "medium": 16,
	"large": 18, "x-large": 24, "xx-large": 32,
}

type fontSizeManager struct{}

// NewFontSizeManager builds the font-size ValueManager. rem units and
// dynamic re-propagation across generations of em/percentage chains are
// out of scope: only the nearest ancestor's own computed value is
// consulted, resolved once at compute time.
func NewFontSizeManager() cascade.ValueManager {
	return &fontSizeManager{}
}

func (m *fontSizeManager) PropertyName() string      { return "font-size" }
func (m *fontSizeManager) IsInheritedProperty() bool  { return true }
func (m *fontSizeManager) DefaultValue() cascade.Value { return PxValue(16) }

func (m *fontSizeManager) CreateValue(lexicalUnit string, engine *cascade.Engine) (cascade.Value, error) {
	pl, ok := parseLengthToken(lexicalUnit)
	if !ok {
		return nil, &cascade.SyntaxError{Context: "font-size", Snippet: lexicalUnit, Err: fmt.Errorf("invalid font-size")}
	}
	if pl.keyword != "" {
		switch pl.keyword {
		case "smaller", "larger":
			return FontSizeValue{Raw: pl}, nil
		default:
			if _, ok := absoluteFontSizeKeywords[pl.keyword]; !ok {
				return nil, &cascade.SyntaxError{Context: "font-size", Snippet: lexicalUnit, Err: fmt.Errorf("unknown keyword")}
			}
			return FontSizeValue{Absolute: Keyword(pl.keyword)}, nil
		}
	}
	if pl.unit == "px" {
		return FontSizeValue{Raw: pl}, nil
	}
	if pl.unit == "em" || pl.unit == "%" {
		return FontSizeValue{Raw: pl}, nil
	}
	return nil, &cascade.SyntaxError{Context: "font-size", Snippet: lexicalUnit, Err: fmt.Errorf("unsupported unit")}
}

// ComputeValue resolves keywords to their pixel table entry, px lengths
// directly, and em/%/smaller/larger against the nearest stylable
// ancestor's computed font-size (spec's relative-dependence model does
// not track this as ParentRelative/FontSizeRelative since it crosses a
// generation and is resolved once here rather than re-propagated).
func (m *fontSizeManager) ComputeValue(element *dom.Element, pseudo string, engine *cascade.Engine, idx cascade.PropertyIndex, styleMap *cascade.StyleMap, cascaded cascade.Value) cascade.Value {
	fv, ok := cascaded.(FontSizeValue)
	if !ok {
		return cascaded
	}

	if fv.Absolute != "" {
		return PxValue(absoluteFontSizeKeywords[string(fv.Absolute)])
	}

	parentPx := 16.0
	if parent := engine.NearestStylableAncestor(element); parent != nil {
		if v := engine.GetComputedStyle(parent, "", engine.Registry().FontSizeIndex()); v != nil {
			if px, ok := v.(PxValue); ok {
				parentPx = float64(px)
			}
		}
	}

	switch fv.Raw.unit {
	case "px":
		return PxValue(fv.Raw.value)
	case "em":
		return PxValue(fv.Raw.value * parentPx)
	case "%":
		return PxValue(fv.Raw.value / 100 * parentPx)
	}
	switch fv.Raw.keyword {
	case "smaller":
		return PxValue(parentPx / 1.2)
	case "larger":
		return PxValue(parentPx * 1.2)
	}
	return PxValue(parentPx)
}
