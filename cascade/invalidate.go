package cascade

import (
	"github.com/keskinen/cascade/cssom"
	"github.com/keskinen/cascade/dom"
)

// Engine implements dom.MutationListener: it is the sole invalidator
// subscribed to its document (spec §4.8).
var _ dom.MutationListener = (*Engine)(nil)

// invalidateTree clears the computed map of node (if stylable) and
// every descendant reachable through logical traversal, firing
// ALL_PROPERTIES on each.
func (e *Engine) invalidateTree(node *dom.Node) {
	if node.IsStylable() {
		el := (*dom.Element)(node)
		e.clearStyleMaps(el)
		e.fireAll(el)
	}
	for _, c := range logicalChildren(node) {
		e.invalidateTree(c)
	}
}

// invalidateNode clears node's own computed map, fires ALL_PROPERTIES,
// then propagates ALL_PROPERTIES to every logical descendant.
func (e *Engine) invalidateNode(node *dom.Node) {
	if node.IsStylable() {
		el := (*dom.Element)(node)
		e.clearStyleMaps(el)
		e.fireAll(el)
	}
	for _, c := range logicalChildren(node) {
		e.propagate(c, e.registry.AllProperties())
	}
}

// propagate re-resolves exactly the touched relative dependents of
// node (spec §4.8's "propagate"): the subset of props that are
// ParentRelative on node, extended by same-element font-size /
// line-height / color dependents, clearing and firing only those, then
// recursing into logical children with the resulting set (stopping
// once it is empty).
func (e *Engine) propagate(node *dom.Node, props []PropertyIndex) {
	if !node.IsStylable() {
		for _, c := range logicalChildren(node) {
			e.propagate(c, props)
		}
		return
	}

	el := (*dom.Element)(node)
	m := e.lookupStyleMap(el, "")
	if m == nil {
		return
	}

	touched := map[PropertyIndex]bool{}
	for _, idx := range props {
		if m.Slot(idx).ParentRelative {
			touched[idx] = true
		}
	}
	e.extendLocalRelatives(m, touched)

	if len(touched) == 0 {
		return
	}

	u := make([]PropertyIndex, 0, len(touched))
	for idx := range touched {
		restoreCascaded(m.Slot(idx))
		u = append(u, idx)
	}
	e.fire(el, u)

	for _, c := range logicalChildren(node) {
		e.propagate(c, u)
	}
}

// restoreCascaded returns a computed slot to the cascaded value it was
// computed from (nil when there was none), so the next query recomputes
// it; origin and importance are kept.
func restoreCascaded(s *Slot) {
	if !s.Computed {
		return
	}
	if s.NullCascaded {
		s.Value = nil
	} else {
		s.Value = AsComputed(s.Value).Cascaded
	}
	s.Computed = false
	s.NullCascaded = false
	s.clearFlags()
}

// extendLocalRelatives adds, to touched, every slot on m flagged
// dependent on the element's own font-size/line-height/color whenever
// that base property's index is already in touched (spec §4.8).
func (e *Engine) extendLocalRelatives(m *StyleMap, touched map[PropertyIndex]bool) {
	fsIdx, lhIdx, cIdx := e.registry.FontSizeIndex(), e.registry.LineHeightIndex(), e.registry.ColorIndex()
	fs, lh, c := touched[fsIdx], touched[lhIdx], touched[cIdx]
	if !fs && !lh && !c {
		return
	}
	for i := range m.slots {
		idx := PropertyIndex(i)
		slot := &m.slots[i]
		if (fs && slot.FontSizeRelative) || (lh && slot.LineHeightRelative) || (c && slot.ColorRelative) {
			touched[idx] = true
		}
	}
}

func (e *Engine) fireAll(el *dom.Element) {
	e.fire(el, e.registry.AllProperties())
}

func (e *Engine) fire(el *dom.Element, props []PropertyIndex) {
	e.bus.fire(StyleChangeEvent{Engine: e, Element: el, Properties: props})
}

func (e *Engine) invalidateSubtreeFrom(node *dom.Node) {
	e.clearStyleMaps((*dom.Element)(node))
	e.fireAll((*dom.Element)(node))
	for _, c := range logicalChildren(node) {
		e.propagate(c, e.registry.AllProperties())
	}
}

// AttributeChanged dispatches an attribute mutation per spec §4.8.
func (e *Engine) AttributeChanged(ev dom.AttrMutation) {
	el := ev.Target
	m := e.lookupStyleMap(el, "")
	if m == nil {
		return
	}

	switch {
	case ev.Name == e.styleAttrLocal && ev.Namespace == e.styleAttrNS:
		e.inlineStyleUpdate(el, m, ev)
	case e.wantsHints && ev.Namespace == e.hintsNS && e.registry.IndexOf(ev.Name) != NoProperty:
		e.hintUpdate(el, m, ev)
	case e.selectorAttributes()[ev.Name]:
		e.invalidateSubtreeFrom(el.AsNode())
	default:
		// ignore: minimality guarantee (spec §8)
	}
}

// inlineStyleUpdate implements spec §4.8's inline-style update and
// §4.8a's inline-write semantics. touched collects every longhand index
// named by the new declaration (empty for a removal), so
// settleInlineStyleState can tell a property that is merely absent from
// this update apart from one the update never had in the first place.
func (e *Engine) inlineStyleUpdate(el *dom.Element, m *StyleMap, ev dom.AttrMutation) {
	touched := map[PropertyIndex]bool{}
	if ev.Kind != dom.MutationRemoval {
		for _, decl := range cssom.ParseStyleDeclaration(ev.NewValue) {
			e.applyInlineDeclaration(m, decl, touched)
		}
	}

	e.settleInlineStyleState(el, m, touched)
}

func (e *Engine) applyInlineDeclaration(m *StyleMap, decl cssom.Declaration, touched map[PropertyIndex]bool) {
	if idx := e.registry.IndexOf(decl.Property); idx != NoProperty {
		v, err := e.createValue(e.registry.ValueManagerAt(idx), decl.Value)
		if err != nil {
			return
		}
		e.inlineWrite(m, idx, v, decl.Important)
		touched[idx] = true
		return
	}
	if sh, ok := e.registry.ShorthandByName(decl.Property); ok {
		_ = sh.SetValues(e, func(name string, v Value, important bool) {
			if li := e.registry.IndexOf(name); li != NoProperty {
				e.inlineWrite(m, li, v, important)
				touched[li] = true
			}
		}, decl.Value, decl.Important)
	}
}

// inlineWrite applies one longhand from the parsed inline style per the
// inline-write rule (spec §4.8a): dropped if the slot is already
// !important (inline can never override that), written at
// INLINE_AUTHOR otherwise.
func (e *Engine) inlineWrite(m *StyleMap, idx PropertyIndex, v Value, important bool) {
	slot := m.Slot(idx)
	if slot.Important {
		return
	}
	m.write(idx, v, OriginInlineAuthor, important)
}

// settleInlineStyleState inspects m for any slot that was already
// computed at INLINE_AUTHOR origin before this update but is not among
// touched: that slot's cascaded/computed value came from an inline
// declaration this update no longer supplies (the whole style attribute
// was removed, or just that one property was dropped from it), so the
// per-slot writes inlineWrite already performed for the surviving
// properties cannot fix it up — the element is fully reinvalidated
// instead (spec §4.8). Otherwise touched is extended by the element's
// own font-size/line-height/color dependents, those slots are reset to
// their cascaded values, and that set is fired and propagated to the
// logical children.
func (e *Engine) settleInlineStyleState(el *dom.Element, m *StyleMap, touched map[PropertyIndex]bool) {
	for i := range m.slots {
		s := &m.slots[i]
		if s.Computed && s.Origin == OriginInlineAuthor && !touched[PropertyIndex(i)] {
			e.invalidateSubtreeFrom(el.AsNode())
			return
		}
	}

	e.extendLocalRelatives(m, touched)
	u := make([]PropertyIndex, 0, len(touched))
	for idx := range touched {
		restoreCascaded(m.Slot(idx))
		u = append(u, idx)
	}
	e.fire(el, u)
	for _, c := range logicalChildren(el.AsNode()) {
		e.propagate(c, u)
	}
}

// hintUpdate implements spec §4.8's "Hint update".
func (e *Engine) hintUpdate(el *dom.Element, m *StyleMap, ev dom.AttrMutation) {
	idx := e.registry.IndexOf(ev.Name)
	slot := m.Slot(idx)
	if slot.Important {
		return
	}
	if slot.Origin == OriginAuthor || slot.Origin == OriginInlineAuthor {
		return
	}

	if ev.Kind == dom.MutationRemoval {
		e.invalidateSubtreeFrom(el.AsNode())
		return
	}

	vm := e.registry.ValueManagerAt(idx)
	v, err := vm.CreateValue(ev.NewValue, e)
	if err != nil {
		return
	}
	wasComputed := slot.Computed
	m.write(idx, v, OriginNonCSS, false)

	if !wasComputed {
		return
	}
	touched := map[PropertyIndex]bool{idx: true}
	e.extendLocalRelatives(m, touched)
	u := make([]PropertyIndex, 0, len(touched))
	for i := range touched {
		u = append(u, i)
	}
	e.fire(el, u)
	for _, c := range logicalChildren(el.AsNode()) {
		e.propagate(c, u)
	}
}

// NodeInserted handles stylesheet-carrier insertion (global
// reinvalidation) and stylable-element insertion (sibling adjacency
// invalidation), per spec §4.8.
func (e *Engine) NodeInserted(ev dom.NodeMutation) {
	if ev.Target.IsStylesheetCarrier() {
		e.sheetCacheValid = false
		e.selAttrsValid = false
		e.invalidateTree(e.doc.Root())
		return
	}
	if ev.Target.IsStylable() {
		for sib := ev.Target.NextSibling(); sib != nil; sib = sib.NextSibling() {
			e.invalidateNode(sib)
		}
	}
}

// NodeRemoved clears the removed subtree's computed maps immediately
// and defers the rest of the response to SubtreeModified, since the
// node is still attached at removal time (spec §4.8).
func (e *Engine) NodeRemoved(ev dom.NodeMutation) {
	if ev.Target.IsStylesheetCarrier() {
		e.styleSheetRemoved = true
	} else if ev.Target.IsStylable() {
		e.removedStylableSibling = ev.Target.NextSibling()
	}
	e.clearSubtreeStyleMaps(ev.Target)
}

func (e *Engine) clearSubtreeStyleMaps(n *dom.Node) {
	if n.IsStylable() {
		e.clearStyleMaps((*dom.Element)(n))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		e.clearSubtreeStyleMaps(c)
	}
}

// SubtreeModified resolves the invalidator's deferred state (spec
// §4.8).
func (e *Engine) SubtreeModified(parent *dom.Node) {
	_ = parent
	if e.styleSheetRemoved {
		e.sheetCacheValid = false
		e.selAttrsValid = false
		e.invalidateTree(e.doc.Root())
		e.styleSheetRemoved = false
	}
	if e.removedStylableSibling != nil {
		for sib := e.removedStylableSibling; sib != nil; sib = sib.NextSibling() {
			e.invalidateNode(sib)
		}
		e.removedStylableSibling = nil
	}
}

// CharacterDataChanged reinvalidates the whole document when a
// stylesheet carrier's text content changes (spec §4.8).
func (e *Engine) CharacterDataChanged(ev dom.CharacterDataMutation) {
	parent := ev.Target.ParentNode()
	if parent != nil && parent.IsStylesheetCarrier() {
		e.sheetCacheValid = false
		e.selAttrsValid = false
		e.invalidateTree(e.doc.Root())
	}
}
