package cascade

import "strings"

// PropertyIndex is a dense nonnegative slot number assigned at engine
// construction. NoProperty means "not a known property".
type PropertyIndex int

// NoProperty is the sentinel PropertyIndex for an unrecognised name.
const NoProperty PropertyIndex = -1

// Registry is the engine's immutable property table: an ordered list of
// value managers (one per longhand) and shorthand managers, plus the
// name lookups and cached indices the rest of the engine leans on.
type Registry struct {
	valueManagers     []ValueManager
	shorthandManagers []ShorthandManager

	nameToIndex    map[string]PropertyIndex
	shorthandIndex map[string]int

	fontSizeIndex   PropertyIndex
	lineHeightIndex PropertyIndex
	colorIndex      PropertyIndex

	allProperties []PropertyIndex
}

// NewRegistry builds a Registry from the caller-supplied value and
// shorthand managers, in the order given. Duplicate property names keep
// the first manager registered for that name.
func NewRegistry(valueManagers []ValueManager, shorthandManagers []ShorthandManager) *Registry {
	r := &Registry{
		valueManagers:     valueManagers,
		shorthandManagers: shorthandManagers,
		nameToIndex:       make(map[string]PropertyIndex, len(valueManagers)),
		shorthandIndex:    make(map[string]int, len(shorthandManagers)),
		fontSizeIndex:     NoProperty,
		lineHeightIndex:   NoProperty,
		colorIndex:        NoProperty,
	}

	for i, vm := range valueManagers {
		name := strings.ToLower(vm.PropertyName())
		if _, exists := r.nameToIndex[name]; exists {
			continue
		}
		idx := PropertyIndex(i)
		r.nameToIndex[name] = idx
		r.allProperties = append(r.allProperties, idx)
		switch name {
		case "font-size":
			r.fontSizeIndex = idx
		case "line-height":
			r.lineHeightIndex = idx
		case "color":
			r.colorIndex = idx
		}
	}

	for i, sm := range shorthandManagers {
		name := strings.ToLower(sm.PropertyName())
		if _, exists := r.shorthandIndex[name]; exists {
			continue
		}
		r.shorthandIndex[name] = i
	}

	return r
}

// PropertyCount returns the number of known longhand properties.
func (r *Registry) PropertyCount() int { return len(r.valueManagers) }

// IndexOf returns the property index for name, or NoProperty.
func (r *Registry) IndexOf(name string) PropertyIndex {
	if idx, ok := r.nameToIndex[strings.ToLower(name)]; ok {
		return idx
	}
	return NoProperty
}

// ValueManagerAt returns the value manager registered at idx, or nil if
// idx is out of range.
func (r *Registry) ValueManagerAt(idx PropertyIndex) ValueManager {
	if idx < 0 || int(idx) >= len(r.valueManagers) {
		return nil
	}
	return r.valueManagers[idx]
}

// ShorthandByName returns the shorthand manager registered for name, if
// any.
func (r *Registry) ShorthandByName(name string) (ShorthandManager, bool) {
	i, ok := r.shorthandIndex[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return r.shorthandManagers[i], true
}

// AllProperties returns the full index vector, used for bulk
// ("every property may have changed") notifications.
func (r *Registry) AllProperties() []PropertyIndex {
	return r.allProperties
}

func (r *Registry) FontSizeIndex() PropertyIndex   { return r.fontSizeIndex }
func (r *Registry) LineHeightIndex() PropertyIndex { return r.lineHeightIndex }
func (r *Registry) ColorIndex() PropertyIndex      { return r.colorIndex }
