package cascade

import "github.com/keskinen/cascade/dom"

// Value is an opaque tagged variant. Value managers define their own
// concrete types (a parsed length, a color, a keyword) and the engine
// never inspects them except for the two variants it distinguishes
// itself: inheritValue and Computed.
type Value interface{}

type inheritValue struct{}

// Inherit is the CSS "inherit" keyword, recognised by the cascade
// assembler and the computed-value resolver regardless of property.
var Inherit Value = inheritValue{}

// IsInherit reports whether v is the "inherit" keyword value.
func IsInherit(v Value) bool {
	_, ok := v.(inheritValue)
	return ok
}

// Computed wraps a cascaded value together with the resolved computed
// value derived from it. It exists so re-computation after invalidation
// can restart from the original cascaded value (spec's rationale for
// keeping both forms around once they diverge).
type Computed struct {
	Cascaded Value
	Resolved Value
}

// AsComputed unwraps v if it is a Computed wrapper, otherwise reports v
// itself as both the cascaded and resolved form.
func AsComputed(v Value) Computed {
	if c, ok := v.(Computed); ok {
		return c
	}
	return Computed{Cascaded: v, Resolved: v}
}

// ValueManager is the external, per-property collaborator the engine
// requires for every longhand it knows about.
type ValueManager interface {
	// PropertyName is the canonical (lowercase) CSS property name.
	PropertyName() string

	// IsInheritedProperty reports whether the property inherits from
	// the parent's computed value by default.
	IsInheritedProperty() bool

	// DefaultValue is the property's initial value.
	DefaultValue() Value

	// CreateValue parses a cascaded value out of lexicalUnit (already
	// lexically tokenized/normalized CSS text for this property).
	CreateValue(lexicalUnit string, engine *Engine) (Value, error)

	// ComputeValue produces element's computed value for this property
	// from its cascaded value. It may call engine.GetComputedStyle for
	// other properties on the same element (font-size, color,
	// line-height) to resolve relative values; when it does, it records
	// that dependence itself by setting the corresponding *Relative flag
	// on styleMap's slot for idx.
	ComputeValue(element *dom.Element, pseudo string, engine *Engine, idx PropertyIndex, styleMap *StyleMap, cascaded Value) Value
}

// ShorthandManager expands one shorthand property into its longhands.
type ShorthandManager interface {
	// PropertyName is the canonical shorthand name (e.g. "font").
	PropertyName() string

	// SetValues parses lexicalUnit and emits each resulting longhand
	// through handler as (propertyName, value, important).
	SetValues(engine *Engine, handler func(name string, value Value, important bool), lexicalUnit string, important bool) error
}
