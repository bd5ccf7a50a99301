package cascade

import "github.com/keskinen/cascade/dom"

// GetComputedStyle returns element's computed value for property idx
// under pseudo, building the cascaded style map first if necessary
// (spec §4.7). Pseudo-elements never inherit through the pseudo axis:
// parent lookups always pass pseudo="".
func (e *Engine) GetComputedStyle(element *dom.Element, pseudo string, idx PropertyIndex) Value {
	m := e.GetCascadedStyleMap(element, pseudo)
	return e.computeSlot(element, pseudo, idx, m)
}

func (e *Engine) computeSlot(element *dom.Element, pseudo string, idx PropertyIndex, m *StyleMap) Value {
	slot := m.Slot(idx)
	if slot.Computed {
		return AsComputed(slot.Value).Resolved
	}

	cascaded := slot.Value
	vm := e.registry.ValueManagerAt(idx)
	parent := nearestStylableAncestor(element)

	var result Value
	switch {
	case cascaded == nil && (!vm.IsInheritedProperty() || parent == nil):
		// Case A
		result = vm.DefaultValue()
	case IsInherit(cascaded) && parent != nil:
		// Case B
		result = e.GetComputedStyle(parent, "", idx)
		slot.ParentRelative = true
	case cascaded == nil && vm.IsInheritedProperty() && parent != nil:
		// Case C
		result = e.GetComputedStyle(parent, "", idx)
		slot.ParentRelative = true
	default:
		// Case D
		result = vm.ComputeValue(element, pseudo, e, idx, m, cascaded)
	}

	if cascaded == nil {
		slot.Value = result
		slot.NullCascaded = true
	} else if !valueEqual(result, cascaded) {
		slot.Value = Computed{Cascaded: cascaded, Resolved: result}
	}
	slot.Computed = true
	return result
}

// valueEqual compares cascaded and resolved forms for the writeback
// decision in spec §4.7. Value is opaque to the engine, so only the
// identity/interface-equality case is checked here; value managers
// that want exact-equality suppression for custom types should return
// the same cascaded value back from ComputeValue when nothing changed.
func valueEqual(a, b Value) bool {
	return a == b
}
