package cascade

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/keskinen/cascade/cssom"
	"github.com/keskinen/cascade/dom"
)

// ImportLoader fetches the CSS text an @import rule refers to, given the
// already-resolved absolute URL. The default engine ships no loader;
// callers that never use @import can leave it nil.
type ImportLoader interface {
	Load(resolvedURL string) (string, error)
}

// SecurityChecker is invoked before fetching any @import target. A
// non-nil error rejects the load: that import then contributes no
// rules, and the error is neither wrapped nor returned to the caller.
type SecurityChecker func(targetURL, documentURL string) error

// Config holds the construction-time parameters spec §6 lists for the
// engine: the property tables, the style/class attribute identity, the
// presentational-hints switch, and the external loading hooks.
type Config struct {
	DocumentURI string

	ValueManagers      []ValueManager
	ShorthandManagers  []ShorthandManager
	PseudoElementNames []string

	StyleAttrNS    string
	StyleAttrLocal string
	ClassAttrNS    string
	ClassAttrLocal string

	WantsHints bool
	HintsNS    string

	ImportLoader              ImportLoader
	CheckLoadExternalResource SecurityChecker
}

// docSheetEntry is one stylesheet-carrying node's parsed contents, plus
// the alternate-sheet selection metadata read off the node itself.
type docSheetEntry struct {
	node        *dom.Element
	sheet       *cssom.Stylesheet
	isAlternate bool
	title       string
}

// Engine is the public cascade/compute/invalidation engine: one per
// document. It is NOT safe for concurrent use (spec §5) beyond the
// listener list, which tolerates concurrent add/remove.
type Engine struct {
	registry *Registry
	doc      *dom.Document

	documentURI    string
	styleAttrNS    string
	styleAttrLocal string
	classAttrNS    string
	classAttrLocal string
	wantsHints     bool
	hintsNS        string

	pseudoElementNames []string

	importLoader ImportLoader
	checkLoad    SecurityChecker

	userAgentSheet *cssom.Stylesheet
	userSheet      *cssom.Stylesheet

	media          map[string]bool
	alternateTitle string

	computedMaps map[*dom.Element]map[string]*StyleMap

	bus notifyBus

	// documentSheets cache, invalidated by the invalidator whenever a
	// stylesheet-carrying node is inserted, removed, or its character
	// data changes (spec §4.8).
	sheetCacheValid bool
	sheetCache      []docSheetEntry
	selAttrsValid   bool
	selectorAttrs   map[string]bool

	// Deferred invalidator state (spec §4.8).
	styleSheetRemoved      bool
	removedStylableSibling *dom.Node

	// Scratch state shared across one cascade/parse call (spec §5);
	// reset on every exit path including error paths.
	cssBaseURI     string
	scratchElement *dom.Element
}

// NewEngine constructs an engine bound to doc. It subscribes to doc's
// mutation stream immediately so invalidation tracks every subsequent
// change.
func NewEngine(doc *dom.Document, cfg Config) *Engine {
	styleAttrLocal := cfg.StyleAttrLocal
	if styleAttrLocal == "" {
		styleAttrLocal = "style"
	}
	classAttrLocal := cfg.ClassAttrLocal
	if classAttrLocal == "" {
		classAttrLocal = "class"
	}

	e := &Engine{
		registry:           NewRegistry(cfg.ValueManagers, cfg.ShorthandManagers),
		doc:                doc,
		documentURI:        cfg.DocumentURI,
		styleAttrNS:        cfg.StyleAttrNS,
		styleAttrLocal:     styleAttrLocal,
		classAttrNS:        cfg.ClassAttrNS,
		classAttrLocal:     classAttrLocal,
		wantsHints:         cfg.WantsHints,
		hintsNS:            cfg.HintsNS,
		pseudoElementNames: cfg.PseudoElementNames,
		importLoader:       cfg.ImportLoader,
		checkLoad:          cfg.CheckLoadExternalResource,
		media:              make(map[string]bool),
		computedMaps:       make(map[*dom.Element]map[string]*StyleMap),
	}
	doc.AddMutationListener(e)
	return e
}

// Registry exposes the engine's property registry (needed by value
// managers that want to look up another property's index).
func (e *Engine) Registry() *Registry { return e.registry }

// SetUserAgentStyleSheet parses cssText as the engine's user-agent
// stylesheet (origin USER_AGENT).
func (e *Engine) SetUserAgentStyleSheet(cssText string) error {
	sheet, err := e.ParseStyleSheet(cssText)
	if err != nil {
		return err
	}
	e.userAgentSheet = sheet
	e.invalidateEverything()
	return nil
}

// SetUserStyleSheet parses cssText as the engine's user stylesheet
// (origin USER).
func (e *Engine) SetUserStyleSheet(cssText string) error {
	sheet, err := e.ParseStyleSheet(cssText)
	if err != nil {
		return err
	}
	e.userSheet = sheet
	e.invalidateEverything()
	return nil
}

// SetMedia sets the engine's current media list from a comma-separated
// medium-name string (e.g. "screen, print").
func (e *Engine) SetMedia(mediaString string) {
	e.media = make(map[string]bool)
	for _, m := range strings.Split(mediaString, ",") {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			e.media[m] = true
		}
	}
	e.invalidateEverything()
}

// SetAlternateStyleSheet selects the active alternate stylesheet title
// (spec's alternate-sheet selection, §4.4/§9); "" deselects all
// alternates.
func (e *Engine) SetAlternateStyleSheet(title string) {
	e.alternateTitle = title
	e.invalidateEverything()
}

// ParseStyleSheet parses cssText into a Stylesheet, resolving @import
// rules against e.documentURI via the configured ImportLoader. This is
// one of the standalone parser entry points spec §6 names.
func (e *Engine) ParseStyleSheet(cssText string) (*cssom.Stylesheet, error) {
	return e.parseAndResolve(cssText, e.documentURI)
}

func (e *Engine) parseAndResolve(cssText, baseURI string) (*cssom.Stylesheet, error) {
	e.cssBaseURI = baseURI
	defer func() { e.cssBaseURI = "" }()

	sheet, err := cssom.ParseStylesheet(cssText)
	if err != nil {
		return nil, &SyntaxError{URI: baseURI, Err: err, Snippet: snippet(cssText)}
	}
	e.resolveImports(sheet, baseURI)
	return sheet, nil
}

// resolveImports loads and parses every @import in sheet (in source
// order, each preceding any non-import rule per spec §4.3) and splices
// the loaded rules in ahead of sheet's own rules, so they behave as if
// textually included at the top of the sheet.
func (e *Engine) resolveImports(sheet *cssom.Stylesheet, baseURI string) {
	if len(sheet.ImportRules) == 0 || e.importLoader == nil {
		return
	}
	var importedStyleRules []*cssom.StyleRule
	var importedMediaRules []*cssom.MediaRule

	for _, imp := range sheet.ImportRules {
		if imp.Href == "" {
			continue // ImportResolutionError: malformed URI, silently dropped
		}
		target := resolveURL(baseURI, imp.Href)
		if e.checkLoad != nil {
			if err := e.checkLoad(target, baseURI); err != nil {
				continue // SecurityError: propagated to caller is not possible
				// from here since resolution happens deep in parsing; the
				// import simply contributes nothing, matching a rejected
				// load's observable effect.
			}
		}
		text, err := e.importLoader.Load(target)
		if err != nil {
			continue // ImportResolutionError-equivalent: dropped
		}
		nested, err := e.parseAndResolve(text, target)
		if err != nil {
			continue
		}
		if imp.Media != nil && imp.Media.MediaText() != "" {
			importedMediaRules = append(importedMediaRules, &cssom.MediaRule{Media: imp.Media, Rules: nested.StyleRules})
			importedMediaRules = append(importedMediaRules, nested.MediaRules...)
		} else {
			importedStyleRules = append(importedStyleRules, nested.StyleRules...)
			importedMediaRules = append(importedMediaRules, nested.MediaRules...)
		}
	}

	sheet.StyleRules = append(importedStyleRules, sheet.StyleRules...)
	sheet.MediaRules = append(importedMediaRules, sheet.MediaRules...)
}

func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	r, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(r).String()
}

func snippet(text string) string {
	const max = 60
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

// ParseStyleDeclaration parses text (e.g. an inline "style" attribute's
// contents) into raw declarations, without installing them anywhere.
func (e *Engine) ParseStyleDeclaration(text string) []cssom.Declaration {
	return cssom.ParseStyleDeclaration(text)
}

// ParsePropertyValue parses a single property's value text into a
// Value, looking up its value manager by name. Returns a *SyntaxError
// if name is unknown or the manager rejects the text.
func (e *Engine) ParsePropertyValue(name, text string) (Value, error) {
	idx := e.registry.IndexOf(name)
	if idx == NoProperty {
		return nil, &SyntaxError{Context: name, Snippet: snippet(text), Err: fmt.Errorf("unknown property")}
	}
	e.scratchElement = nil
	defer func() { e.scratchElement = nil }()
	v, err := e.createValue(e.registry.ValueManagerAt(idx), text)
	if err != nil {
		return nil, &SyntaxError{Context: name, Snippet: snippet(text), Err: err}
	}
	return v, nil
}

// ParseMediaQuery parses a media-query list's text into a MediaList,
// the third standalone parser entry point spec §6 names.
func (e *Engine) ParseMediaQuery(text string) *cssom.MediaList {
	return cssom.NewMediaList(text)
}

// documentSheets returns the cached, parsed list of the document's
// active stylesheet-carrying elements, rebuilding it if the cache was
// invalidated (spec §4.8's "cached stylesheet-node list").
func (e *Engine) documentSheets() []docSheetEntry {
	if e.sheetCacheValid {
		return e.sheetCache
	}
	var out []docSheetEntry
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		if n.IsStylesheetCarrier() {
			el := (*dom.Element)(n)
			if sheet, err := e.ParseStyleSheet(n.TextContent()); err == nil {
				out = append(out, docSheetEntry{
					node:        el,
					sheet:       sheet,
					isAlternate: strings.EqualFold(el.GetAttribute("rel"), "alternate stylesheet") || el.HasAttribute("alternate"),
					title:       el.GetAttribute("title"),
				})
			}
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(e.doc.Root())
	e.sheetCache = out
	e.sheetCacheValid = true
	e.selAttrsValid = false
	return out
}

// selectorAttributes returns the set of attribute names referenced by
// any selector in any currently active stylesheet (UA, user, and every
// document sheet), rebuilding it when the stylesheet cache was rebuilt.
func (e *Engine) selectorAttributes() map[string]bool {
	if e.selAttrsValid {
		return e.selectorAttrs
	}
	set := make(map[string]bool)
	fill := func(sheet *cssom.Stylesheet) {
		for _, r := range sheet.StyleRules {
			r.Selector.FillAttributeSet(set)
		}
		for _, mr := range sheet.MediaRules {
			for _, r := range mr.Rules {
				r.Selector.FillAttributeSet(set)
			}
		}
	}
	if e.userAgentSheet != nil {
		fill(e.userAgentSheet)
	}
	if e.userSheet != nil {
		fill(e.userSheet)
	}
	for _, entry := range e.documentSheets() {
		fill(entry.sheet)
	}
	e.selectorAttrs = set
	e.selAttrsValid = true
	return set
}

// invalidateEverything clears every computed map in the document. Used
// when a global input (UA sheet, user sheet, media, alternate title)
// changes.
func (e *Engine) invalidateEverything() {
	e.sheetCacheValid = false
	e.selAttrsValid = false
	e.invalidateTree(e.doc.Root())
}

func (e *Engine) lookupStyleMap(element *dom.Element, pseudo string) *StyleMap {
	byPseudo, ok := e.computedMaps[element]
	if !ok {
		return nil
	}
	return byPseudo[pseudo]
}

func (e *Engine) storeStyleMap(element *dom.Element, pseudo string, m *StyleMap) {
	byPseudo, ok := e.computedMaps[element]
	if !ok {
		byPseudo = make(map[string]*StyleMap)
		e.computedMaps[element] = byPseudo
	}
	byPseudo[pseudo] = m
}

func (e *Engine) clearStyleMaps(element *dom.Element) {
	delete(e.computedMaps, element)
}

// ImportCascadedStyleMaps recursively installs srcEngine's cascaded
// style maps from the subtree rooted at srcRoot onto dstRoot, which
// must be structurally parallel. Destination maps are marked
// FixedCascadedStyle so cascade never re-runs on them (spec §6).
func (e *Engine) ImportCascadedStyleMaps(srcRoot *dom.Node, srcEngine *Engine, dstRoot *dom.Node) {
	var walk func(src, dst *dom.Node)
	walk = func(src, dst *dom.Node) {
		if src.IsStylable() && dst.IsStylable() {
			srcEl := (*dom.Element)(src)
			dstEl := (*dom.Element)(dst)
			srcMap := srcEngine.GetCascadedStyleMap(srcEl, "")
			dstMap := NewStyleMap(e.registry.PropertyCount())
			for i := 0; i < len(dstMap.slots) && i < len(srcMap.slots); i++ {
				dstMap.slots[i] = srcMap.slots[i]
			}
			dstMap.FixedCascadedStyle = true
			e.storeStyleMap(dstEl, "", dstMap)
		}
		sc, dc := src.FirstChild(), dst.FirstChild()
		for sc != nil && dc != nil {
			walk(sc, dc)
			sc = sc.NextSibling()
			dc = dc.NextSibling()
		}
	}
	walk(srcRoot, dstRoot)
}

// AddStyleChangeListener registers l for change notifications.
func (e *Engine) AddStyleChangeListener(l StyleChangeListener) { e.bus.add(l) }

// RemoveStyleChangeListener unregisters l.
func (e *Engine) RemoveStyleChangeListener(l StyleChangeListener) { e.bus.remove(l) }

// Dispose detaches the engine from its document's mutation stream and
// clears every computed map.
func (e *Engine) Dispose() {
	e.doc.RemoveMutationListener(e)
	e.computedMaps = make(map[*dom.Element]map[string]*StyleMap)
}
