package cascade

import (
	"sort"
	"strings"

	"github.com/keskinen/cascade/cssom"
	"github.com/keskinen/cascade/dom"
)

// matchedDeclaration is one declaration from a rule matched against an
// element, tagged with enough to sort by specificity within an origin.
type matchedDeclaration struct {
	decl        cssom.Declaration
	specificity cssom.Specificity
	order       int
}

// GetCascadedStyleMap produces (or returns the cached) cascaded style
// map for element under pseudo ("" for the element itself), per spec
// §4.4. Sources are applied UA < USER < NON_CSS < AUTHOR < INLINE_AUTHOR.
func (e *Engine) GetCascadedStyleMap(element *dom.Element, pseudo string) *StyleMap {
	if m := e.lookupStyleMap(element, pseudo); m != nil {
		return m
	}

	m := NewStyleMap(e.registry.PropertyCount())
	e.cascade(element, pseudo, m)
	e.storeStyleMap(element, pseudo, m)
	return m
}

func (e *Engine) cascade(element *dom.Element, pseudo string, m *StyleMap) {
	ctx := &cssom.MatchContext{}

	// 1. User-agent sheet.
	if e.userAgentSheet != nil {
		e.applySheetUnconditional(m, e.userAgentSheet, element, pseudo, OriginUserAgent, ctx)
	}
	// 2. User sheet.
	if e.userSheet != nil {
		e.applySheetUnconditional(m, e.userSheet, element, pseudo, OriginUser, ctx)
	}
	// 3. Non-CSS presentational hints.
	if e.wantsHints {
		e.applyPresentationalHints(m, element)
	}
	// 4. Document (author) sheets.
	e.applyDocumentSheets(m, element, pseudo, ctx)
	// 5. Inline author declarations.
	e.applyInlineStyle(m, element)
}

// applySheetUnconditional matches and collects rules from sheet (ignoring
// @import contents, which are merged into the caller's sheet list
// separately), sorts them ascending by specificity, then writes each
// declaration unconditionally in that order (spec §4.4 step 1/2).
func (e *Engine) applySheetUnconditional(m *StyleMap, sheet *cssom.Stylesheet, element *dom.Element, pseudo string, origin Origin, ctx *cssom.MatchContext) {
	matched := e.collectMatchedDeclarations(sheet, element, pseudo, ctx)
	sortBySpecificity(matched)
	for _, md := range matched {
		idx := e.resolveDeclaration(m, md.decl, origin, false)
		_ = idx
	}
}

// applyDocumentSheets collects matching rules across every currently
// active document stylesheet node (author origin), honoring alternate-
// sheet selection, sorts by specificity, then writes with the author
// rule (spec §4.4 step 4).
func (e *Engine) applyDocumentSheets(m *StyleMap, element *dom.Element, pseudo string, ctx *cssom.MatchContext) {
	var all []matchedDeclaration
	for _, cs := range e.documentSheets() {
		// Alternate-sheet selection (spec §9): a non-alternate sheet
		// always applies; an alternate sheet applies only when it has
		// a title and that title is the active selection.
		applies := !cs.isAlternate || (cs.title != "" && cs.title == e.alternateTitle)
		if !applies {
			continue
		}
		matched := e.collectMatchedDeclarations(cs.sheet, element, pseudo, ctx)
		all = append(all, matched...)
	}
	sortBySpecificity(all)
	for _, md := range all {
		e.resolveDeclaration(m, md.decl, OriginAuthor, true)
	}
}

// applyInlineStyle parses the element's inline style attribute (if
// present) and writes it with the author rule at INLINE_AUTHOR origin
// (spec §4.4 step 5).
func (e *Engine) applyInlineStyle(m *StyleMap, element *dom.Element) {
	text := element.GetAttribute(e.styleAttrLocal)
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, decl := range cssom.ParseStyleDeclaration(text) {
		e.resolveDeclaration(m, decl, OriginInlineAuthor, true)
	}
}

// applyPresentationalHints iterates element's attributes in the
// configured hints namespace and installs any whose local name is a
// known property at NON_CSS origin via the author write rule (spec §4.4
// step 3).
func (e *Engine) applyPresentationalHints(m *StyleMap, element *dom.Element) {
	attrs := element.Attributes()
	for i := 0; i < attrs.Length(); i++ {
		a := attrs.Item(i)
		if a.NamespaceURI() != e.hintsNS {
			continue
		}
		idx := e.registry.IndexOf(a.Name())
		if idx == NoProperty {
			continue
		}
		vm := e.registry.ValueManagerAt(idx)
		v, err := vm.CreateValue(a.Value(), e)
		if err != nil {
			continue
		}
		m.authorWrite(idx, v, OriginNonCSS, false)
	}
}

// collectMatchedDeclarations walks sheet's style rules (recursing into
// matching @media blocks) and returns every declaration of every rule
// whose selector list matches element, tagged with that rule's maximum
// matching specificity (spec §4.5).
func (e *Engine) collectMatchedDeclarations(sheet *cssom.Stylesheet, element *dom.Element, pseudo string, ctx *cssom.MatchContext) []matchedDeclaration {
	var out []matchedDeclaration
	order := 0
	for _, rule := range sheet.StyleRules {
		spec, ok := maxMatchingSpecificity(rule.Selector, element, ctx)
		if !ok {
			continue
		}
		for _, decl := range rule.Declarations {
			out = append(out, matchedDeclaration{decl: decl, specificity: spec, order: order})
			order++
		}
	}
	for _, mr := range sheet.MediaRules {
		if !mr.Media.Matches(e.media) {
			continue
		}
		for _, rule := range mr.Rules {
			spec, ok := maxMatchingSpecificity(rule.Selector, element, ctx)
			if !ok {
				continue
			}
			for _, decl := range rule.Declarations {
				out = append(out, matchedDeclaration{decl: decl, specificity: spec, order: order})
				order++
			}
		}
	}
	return out
}

// maxMatchingSpecificity reports whether any complex selector in sel
// matches element, and if so the largest specificity among those that
// do (spec §4.4 "Specificity sort").
func maxMatchingSpecificity(sel *cssom.Selector, element *dom.Element, ctx *cssom.MatchContext) (cssom.Specificity, bool) {
	var best cssom.Specificity
	matched := false
	for _, cs := range sel.ComplexSelectors {
		if !cs.Match(element, ctx) {
			continue
		}
		spec := cs.Specificity()
		if !matched || best.Less(spec) {
			best = spec
		}
		matched = true
	}
	return best, matched
}

// sortBySpecificity performs the stable selection sort spec §4.4 calls
// for, ascending by specificity with ties broken by source order.
// Go's sort.SliceStable is a stable comparison sort and satisfies the
// same contract (stability w.r.t. source order is what matters, not
// the specific algorithm).
func sortBySpecificity(decls []matchedDeclaration) {
	sort.SliceStable(decls, func(i, j int) bool {
		cmp := decls[i].specificity.Compare(decls[j].specificity)
		if cmp != 0 {
			return cmp < 0
		}
		return decls[i].order < decls[j].order
	})
}

// resolveDeclaration looks up decl's property (longhand or shorthand),
// builds its Value(s), and installs them into m at origin. Unknown
// longhand-or-shorthand names are silently dropped (spec §7
// UnknownProperty). Returns the number of slots touched.
func (e *Engine) resolveDeclaration(m *StyleMap, decl cssom.Declaration, origin Origin, useAuthorRule bool) int {
	write := m.write
	if useAuthorRule {
		write = m.authorWrite
	}

	if idx := e.registry.IndexOf(decl.Property); idx != NoProperty {
		vm := e.registry.ValueManagerAt(idx)
		v, err := e.createValue(vm, decl.Value)
		if err != nil {
			return 0
		}
		write(idx, v, origin, decl.Important)
		return 1
	}

	if sh, ok := e.registry.ShorthandByName(decl.Property); ok {
		touched := 0
		err := sh.SetValues(e, func(name string, v Value, important bool) {
			idx := e.registry.IndexOf(name)
			if idx == NoProperty {
				return
			}
			write(idx, v, origin, important)
			touched++
		}, decl.Value, decl.Important)
		if err != nil {
			return touched
		}
		return touched
	}

	return 0
}

// createValue parses lexicalUnit for vm, recognising the CSS-wide
// "inherit" keyword uniformly across every property before delegating
// to the value manager.
func (e *Engine) createValue(vm ValueManager, lexicalUnit string) (Value, error) {
	if strings.EqualFold(strings.TrimSpace(lexicalUnit), "inherit") {
		return Inherit, nil
	}
	return vm.CreateValue(lexicalUnit, e)
}
