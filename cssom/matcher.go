package cssom

import (
	"strconv"
	"strings"

	"github.com/keskinen/cascade/dom"
)

// MatchContext carries the :scope anchor for relative-selector matching
// (e.g. scoped stylesheets). A nil context matches :scope against the
// document root, per Selectors Level 4 §4.3.1.
type MatchContext struct {
	ScopeElement *dom.Element
}

// Match reports whether the selector list matches el under ctx (which may
// be nil).
func (s *Selector) Match(el *dom.Element, ctx *MatchContext) bool {
	for _, cs := range s.ComplexSelectors {
		if cs.Match(el, ctx) {
			return true
		}
	}
	return false
}

// Match reports whether the complex selector matches el, working from the
// rightmost (subject) compound backwards through its combinators.
func (cs *ComplexSelector) Match(el *dom.Element, ctx *MatchContext) bool {
	if len(cs.Compounds) == 0 {
		return false
	}

	i := len(cs.Compounds) - 1
	current := el
	if !cs.Compounds[i].Match(current, ctx) {
		return false
	}

	for i > 0 {
		combinator := cs.Compounds[i-1].Combinator
		i--

		switch combinator {
		case CombinatorDescendant:
			matched := false
			for ancestor := current.AsNode().ParentElement(); ancestor != nil; ancestor = ancestor.AsNode().ParentElement() {
				if cs.Compounds[i].Match(ancestor, ctx) {
					current = ancestor
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		case CombinatorChild:
			parent := current.AsNode().ParentElement()
			if parent == nil || !cs.Compounds[i].Match(parent, ctx) {
				return false
			}
			current = parent

		case CombinatorNextSibling:
			prev := current.PreviousElementSibling()
			if prev == nil || !cs.Compounds[i].Match(prev, ctx) {
				return false
			}
			current = prev

		case CombinatorSubsequentSibling:
			matched := false
			for prev := current.PreviousElementSibling(); prev != nil; prev = prev.PreviousElementSibling() {
				if cs.Compounds[i].Match(prev, ctx) {
					current = prev
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		default:
			return false
		}
	}

	return true
}

// Match reports whether the compound selector's simple selectors all
// match el.
func (c *CompoundSelector) Match(el *dom.Element, ctx *MatchContext) bool {
	if c.TypeSelector != nil && !matchTypeSelector(c.TypeSelector, el) {
		return false
	}
	for _, id := range c.IDSelectors {
		if el.GetAttribute("id") != id {
			return false
		}
	}
	for _, class := range c.ClassSelectors {
		if !el.HasClass(class) {
			return false
		}
	}
	for _, attr := range c.AttributeMatchers {
		if !matchAttributeSelector(attr, el) {
			return false
		}
	}
	for _, pc := range c.PseudoClasses {
		if !matchPseudoClass(pc, el, ctx) {
			return false
		}
	}
	return true
}

func matchTypeSelector(ts *TypeSelector, el *dom.Element) bool {
	if ts.Name == "*" {
		return true
	}
	return strings.EqualFold(el.LocalName(), ts.Name)
}

func isHTMLNamespace(el *dom.Element) bool {
	return el.NamespaceURI() == "" || el.NamespaceURI() == "http://www.w3.org/1999/xhtml"
}

func matchAttributeSelector(attr *AttributeMatcher, el *dom.Element) bool {
	html := isHTMLNamespace(el)

	var value string
	var found bool

	switch attr.Namespace {
	case "*":
		attrs := el.Attributes()
		for i := 0; i < attrs.Length(); i++ {
			a := attrs.Item(i)
			if html && strings.EqualFold(a.Name(), attr.Name) || (!html && a.Name() == attr.Name) {
				value, found = a.Value(), true
				break
			}
		}
	default:
		name := attr.Name
		if html {
			name = strings.ToLower(name)
		}
		if el.HasAttribute(name) {
			value, found = el.GetAttribute(name), true
		}
	}

	if !found {
		return false
	}
	if attr.Operator == AttrExists {
		return true
	}

	want := attr.Value
	if attr.CaseInsensitive {
		value = strings.ToLower(value)
		want = strings.ToLower(want)
	}

	switch attr.Operator {
	case AttrEquals:
		return value == want
	case AttrIncludes:
		for _, word := range strings.Fields(value) {
			if attr.CaseInsensitive {
				word = strings.ToLower(word)
			}
			if word == want {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return value == want || strings.HasPrefix(value, want+"-")
	case AttrPrefix:
		return want != "" && strings.HasPrefix(value, want)
	case AttrSuffix:
		return want != "" && strings.HasSuffix(value, want)
	case AttrSubstring:
		return want != "" && strings.Contains(value, want)
	}
	return false
}

func matchPseudoClass(pc *PseudoClassSelector, el *dom.Element, ctx *MatchContext) bool {
	switch pc.Name {
	case "root":
		parent := el.AsNode().ParentNode()
		return parent != nil && parent.NodeType() == dom.DocumentNode

	case "empty":
		return el.AsNode().FirstChild() == nil

	case "first-child":
		return el.PreviousElementSibling() == nil

	case "last-child":
		return el.NextElementSibling() == nil

	case "only-child":
		return el.PreviousElementSibling() == nil && el.NextElementSibling() == nil

	case "first-of-type":
		tag := el.LocalName()
		for prev := el.PreviousElementSibling(); prev != nil; prev = prev.PreviousElementSibling() {
			if prev.LocalName() == tag {
				return false
			}
		}
		return true

	case "last-of-type":
		tag := el.LocalName()
		for next := el.NextElementSibling(); next != nil; next = next.NextElementSibling() {
			if next.LocalName() == tag {
				return false
			}
		}
		return true

	case "only-of-type":
		return matchPseudoClass(&PseudoClassSelector{Name: "first-of-type"}, el, ctx) &&
			matchPseudoClass(&PseudoClassSelector{Name: "last-of-type"}, el, ctx)

	case "nth-child":
		return matchNth(pc.Argument, el, false, false)
	case "nth-last-child":
		return matchNth(pc.Argument, el, true, false)
	case "nth-of-type":
		return matchNth(pc.Argument, el, false, true)
	case "nth-last-of-type":
		return matchNth(pc.Argument, el, true, true)

	case "not":
		return pc.Selector == nil || !pc.Selector.Match(el, ctx)

	case "is", "where", "matches":
		return pc.Selector != nil && pc.Selector.Match(el, ctx)

	case "lang":
		return matchLang(pc.Argument, el)

	case "dir":
		return matchDir(pc.Argument, el)

	case "scope":
		if ctx != nil && ctx.ScopeElement != nil {
			return el == ctx.ScopeElement
		}
		parent := el.AsNode().ParentNode()
		return parent != nil && parent.NodeType() == dom.DocumentNode

	default:
		// Dynamic UI states (:hover, :focus, :visited, ...) and
		// form-validity states (:checked, :disabled, :invalid, ...)
		// have no meaning without a layout/interaction or form-control
		// model; this engine has neither, so they never match.
		return false
	}
}

func matchNth(arg string, el *dom.Element, fromLast, ofType bool) bool {
	a, b := parseAnPlusB(arg)

	pos := 1
	tag := el.LocalName()
	if fromLast {
		for next := el.NextElementSibling(); next != nil; next = next.NextElementSibling() {
			if !ofType || next.LocalName() == tag {
				pos++
			}
		}
	} else {
		for prev := el.PreviousElementSibling(); prev != nil; prev = prev.PreviousElementSibling() {
			if !ofType || prev.LocalName() == tag {
				pos++
			}
		}
	}

	if a == 0 {
		return pos == b
	}
	diff := pos - b
	if a > 0 {
		return diff >= 0 && diff%a == 0
	}
	return diff <= 0 && diff%a == 0
}

func parseAnPlusB(s string) (int, int) {
	s = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), " ", "")
	switch s {
	case "odd":
		return 2, 1
	case "even":
		return 2, 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return 0, n
	}

	nIdx := strings.Index(s, "n")
	if nIdx == -1 {
		return 0, 0
	}

	aStr := s[:nIdx]
	var a int
	switch aStr {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		a, _ = strconv.Atoi(aStr)
	}

	bStr := s[nIdx+1:]
	var b int
	if bStr != "" {
		b, _ = strconv.Atoi(bStr)
	}
	return a, b
}

func matchLang(lang string, el *dom.Element) bool {
	lang = strings.ToLower(lang)
	for cur := el; cur != nil; cur = cur.AsNode().ParentElement() {
		if cur.HasAttribute("lang") {
			elLang := strings.ToLower(cur.GetAttribute("lang"))
			return elLang == lang || strings.HasPrefix(elLang, lang+"-")
		}
	}
	return false
}

func matchDir(dir string, el *dom.Element) bool {
	dir = strings.ToLower(dir)
	for cur := el; cur != nil; cur = cur.AsNode().ParentElement() {
		if cur.HasAttribute("dir") {
			return strings.ToLower(cur.GetAttribute("dir")) == dir
		}
	}
	return dir == "ltr"
}

// QuerySelectorAll returns every descendant of root matching selectorStr,
// in document order. The cascade engine does not call it; it matches selectors directly via Selector.Match during cascade
// assembly rather than through querying.
func QuerySelectorAll(root *dom.Node, selectorStr string) ([]*dom.Element, error) {
	sel, err := ParseSelector(selectorStr)
	if err != nil {
		return nil, err
	}
	var results []*dom.Element
	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if c.NodeType() == dom.ElementNode {
				el := (*dom.Element)(c)
				if sel.Match(el, nil) {
					results = append(results, el)
				}
			}
			walk(c)
		}
	}
	walk(root)
	return results, nil
}
