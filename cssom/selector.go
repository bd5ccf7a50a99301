package cssom

import "strings"

// Selector is a comma-separated selector list, parsed into its complex
// selectors.
type Selector struct {
	ComplexSelectors []*ComplexSelector
}

// ComplexSelector is a chain of compound selectors joined by combinators.
type ComplexSelector struct {
	Compounds []*CompoundSelector
}

// CompoundSelector is a sequence of simple selectors applying to one
// element, plus the combinator that follows it on the way to the next
// compound (CombinatorNone on the rightmost compound).
type CompoundSelector struct {
	TypeSelector      *TypeSelector
	IDSelectors       []string
	ClassSelectors    []string
	AttributeMatchers []*AttributeMatcher
	PseudoClasses     []*PseudoClassSelector
	PseudoElement     *PseudoElementSelector
	Combinator        CombinatorType
}

// CombinatorType names the five combinators of Selectors Level 4.
type CombinatorType int

const (
	CombinatorNone CombinatorType = iota
	CombinatorDescendant
	CombinatorChild
	CombinatorNextSibling
	CombinatorSubsequentSibling
	CombinatorColumn
)

// TypeSelector matches an element's namespace and local name, "*" standing
// for "any".
type TypeSelector struct {
	Namespace string
	Name      string
}

// AttributeMatcher is one `[name op value]` clause.
type AttributeMatcher struct {
	Namespace       string
	Name            string
	Operator        AttributeOperator
	Value           string
	CaseInsensitive bool
}

// AttributeOperator is one of the six attribute-match operators.
type AttributeOperator int

const (
	AttrExists AttributeOperator = iota
	AttrEquals
	AttrIncludes
	AttrDashMatch
	AttrPrefix
	AttrSuffix
	AttrSubstring
)

// PseudoClassSelector is a pseudo-class, with Argument holding a raw
// functional argument (e.g. nth-child's "2n+1") and Selector holding a
// parsed sub-selector for :not/:is/:where/:has.
type PseudoClassSelector struct {
	Name     string
	Argument string
	Selector *Selector
}

// PseudoElementSelector is a `::name` or `::name(arg)` pseudo-element.
type PseudoElementSelector struct {
	Name     string
	Argument string
}

type selectorParser struct {
	tokens []Token
	pos    int
}

// ParseSelector parses a CSS selector list.
func ParseSelector(input string) (*Selector, error) {
	return parseSelectorTokens(NewTokenizer(input).TokenizeAll())
}

func parseSelectorTokens(tokens []Token) (*Selector, error) {
	p := &selectorParser{tokens: tokens}
	return p.parseSelectorList()
}

func (p *selectorParser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *selectorParser) peek(offset int) Token {
	pos := p.pos + offset
	if pos >= len(p.tokens) || pos < 0 {
		return Token{Type: TokenEOF}
	}
	return p.tokens[pos]
}

func (p *selectorParser) consume() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *selectorParser) skipWhitespace() bool {
	skipped := false
	for p.current().Type == TokenWhitespace {
		p.consume()
		skipped = true
	}
	return skipped
}

func (p *selectorParser) parseSelectorList() (*Selector, error) {
	sel := &Selector{}
	p.skipWhitespace()
	for {
		cs, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		if cs != nil {
			sel.ComplexSelectors = append(sel.ComplexSelectors, cs)
		}
		p.skipWhitespace()
		if p.current().Type == TokenComma {
			p.consume()
			p.skipWhitespace()
			continue
		}
		break
	}
	return sel, nil
}

func (p *selectorParser) parseComplexSelector() (*ComplexSelector, error) {
	cs := &ComplexSelector{}

	for {
		compound, err := p.parseCompoundSelector()
		if err != nil {
			return nil, err
		}
		if compound == nil {
			break
		}
		cs.Compounds = append(cs.Compounds, compound)

		hadSpace := p.skipWhitespace()
		tok := p.current()

		switch {
		case tok.Type == TokenDelim && tok.Delim == '>':
			p.consume()
			compound.Combinator = CombinatorChild
			p.skipWhitespace()
		case tok.Type == TokenDelim && tok.Delim == '+':
			p.consume()
			compound.Combinator = CombinatorNextSibling
			p.skipWhitespace()
		case tok.Type == TokenDelim && tok.Delim == '~':
			p.consume()
			compound.Combinator = CombinatorSubsequentSibling
			p.skipWhitespace()
		case tok.Type == TokenDelim && tok.Delim == '|' && p.peek(1).Type == TokenDelim && p.peek(1).Delim == '|':
			p.consume()
			p.consume()
			compound.Combinator = CombinatorColumn
			p.skipWhitespace()
		case tok.Type == TokenEOF || tok.Type == TokenComma || tok.Type == TokenOpenCurly:
			return cs, nil
		default:
			if hadSpace {
				compound.Combinator = CombinatorDescendant
				continue
			}
			return cs, nil
		}
	}

	if len(cs.Compounds) == 0 {
		return nil, nil
	}
	return cs, nil
}

func (p *selectorParser) parseCompoundSelector() (*CompoundSelector, error) {
	compound := &CompoundSelector{}
	hasContent := false

	if p.isTypeSelector() {
		ts, err := p.parseTypeSelector()
		if err != nil {
			return nil, err
		}
		compound.TypeSelector = ts
		hasContent = true
	}

	for {
		tok := p.current()
		switch {
		case tok.Type == TokenHash && tok.HashType == HashID:
			p.consume()
			compound.IDSelectors = append(compound.IDSelectors, tok.Value)
			hasContent = true

		case tok.Type == TokenDelim && tok.Delim == '.':
			p.consume()
			if p.current().Type == TokenIdent {
				compound.ClassSelectors = append(compound.ClassSelectors, p.consume().Value)
				hasContent = true
			}

		case tok.Type == TokenDelim && tok.Delim == '*' && compound.TypeSelector == nil && !hasContent:
			p.consume()
			compound.TypeSelector = &TypeSelector{Name: "*"}
			hasContent = true

		case tok.Type == TokenColon:
			p.consume()
			if p.current().Type == TokenColon {
				p.consume()
				pe, err := p.parsePseudoElement()
				if err != nil {
					return nil, err
				}
				compound.PseudoElement = pe
			} else {
				pc, err := p.parsePseudoClass()
				if err != nil {
					return nil, err
				}
				compound.PseudoClasses = append(compound.PseudoClasses, pc)
			}
			hasContent = true

		case tok.Type == TokenOpenSquare:
			attr, err := p.parseAttributeSelector()
			if err != nil {
				return nil, err
			}
			compound.AttributeMatchers = append(compound.AttributeMatchers, attr)
			hasContent = true

		default:
			if !hasContent {
				return nil, nil
			}
			return compound, nil
		}
	}
}

func (p *selectorParser) isTypeSelector() bool {
	tok := p.current()
	if tok.Type == TokenIdent {
		return true
	}
	return tok.Type == TokenDelim && (tok.Delim == '*' || tok.Delim == '|')
}

func (p *selectorParser) parseTypeSelector() (*TypeSelector, error) {
	ts := &TypeSelector{}
	tok := p.current()

	switch {
	case tok.Type == TokenDelim && tok.Delim == '*':
		p.consume()
		if p.current().Type == TokenDelim && p.current().Delim == '|' {
			p.consume()
			ts.Namespace = "*"
			tok = p.current()
		} else {
			ts.Name = "*"
			return ts, nil
		}
	case tok.Type == TokenDelim && tok.Delim == '|':
		p.consume()
		tok = p.current()
	case tok.Type == TokenIdent:
		if next := p.peek(1); next.Type == TokenDelim && next.Delim == '|' {
			ts.Namespace = tok.Value
			p.consume()
			p.consume()
			tok = p.current()
		}
	}

	switch {
	case tok.Type == TokenIdent:
		ts.Name = strings.ToLower(p.consume().Value)
	case tok.Type == TokenDelim && tok.Delim == '*':
		p.consume()
		ts.Name = "*"
	case ts.Namespace != "":
		ts.Name = "*"
	}
	return ts, nil
}

func (p *selectorParser) parseAttributeSelector() (*AttributeMatcher, error) {
	p.consume() // [
	attr := &AttributeMatcher{}
	p.skipWhitespace()

	tok := p.current()
	switch {
	case tok.Type == TokenDelim && tok.Delim == '*':
		p.consume()
		if p.current().Type == TokenDelim && p.current().Delim == '|' {
			p.consume()
			attr.Namespace = "*"
		}
	case tok.Type == TokenDelim && tok.Delim == '|':
		p.consume()
	case tok.Type == TokenIdent:
		next, nextNext := p.peek(1), p.peek(2)
		if next.Type == TokenDelim && next.Delim == '|' && nextNext.Type == TokenIdent {
			attr.Namespace = tok.Value
			p.consume()
			p.consume()
		}
	}

	if p.current().Type == TokenIdent {
		attr.Name = strings.ToLower(p.consume().Value)
	}
	p.skipWhitespace()

	tok = p.current()
	if tok.Type == TokenCloseSquare {
		p.consume()
		attr.Operator = AttrExists
		return attr, nil
	}

	if tok.Type == TokenDelim {
		switch tok.Delim {
		case '=':
			p.consume()
			attr.Operator = AttrEquals
		case '~':
			p.consume()
			if p.current().Type == TokenDelim && p.current().Delim == '=' {
				p.consume()
				attr.Operator = AttrIncludes
			}
		case '|':
			p.consume()
			if p.current().Type == TokenDelim && p.current().Delim == '=' {
				p.consume()
				attr.Operator = AttrDashMatch
			}
		case '^':
			p.consume()
			if p.current().Type == TokenDelim && p.current().Delim == '=' {
				p.consume()
				attr.Operator = AttrPrefix
			}
		case '$':
			p.consume()
			if p.current().Type == TokenDelim && p.current().Delim == '=' {
				p.consume()
				attr.Operator = AttrSuffix
			}
		case '*':
			p.consume()
			if p.current().Type == TokenDelim && p.current().Delim == '=' {
				p.consume()
				attr.Operator = AttrSubstring
			}
		}
	}

	p.skipWhitespace()
	tok = p.current()
	if tok.Type == TokenString || tok.Type == TokenIdent {
		attr.Value = p.consume().Value
	}
	p.skipWhitespace()

	tok = p.current()
	if tok.Type == TokenIdent && len(tok.Value) == 1 && (tok.Value == "i" || tok.Value == "I") {
		attr.CaseInsensitive = true
		p.consume()
		p.skipWhitespace()
	}

	if p.current().Type == TokenCloseSquare {
		p.consume()
	}
	return attr, nil
}

func (p *selectorParser) parsePseudoClass() (*PseudoClassSelector, error) {
	pc := &PseudoClassSelector{}
	tok := p.current()

	switch tok.Type {
	case TokenIdent:
		pc.Name = strings.ToLower(p.consume().Value)
	case TokenFunction:
		pc.Name = strings.ToLower(p.consume().Value)
		p.skipWhitespace()

		switch pc.Name {
		case "not", "is", "where", "has":
			var inner []Token
			depth := 1
			for {
				t := p.current()
				if t.Type == TokenEOF {
					break
				}
				if t.Type == TokenOpenParen {
					depth++
				} else if t.Type == TokenCloseParen {
					depth--
					if depth == 0 {
						p.consume()
						break
					}
				}
				inner = append(inner, p.consume())
			}
			sub, _ := parseSelectorTokens(inner)
			pc.Selector = sub
		default:
			var arg strings.Builder
			depth := 1
			for {
				t := p.current()
				if t.Type == TokenEOF {
					break
				}
				switch t.Type {
				case TokenOpenParen:
					depth++
					arg.WriteString("(")
				case TokenCloseParen:
					depth--
					if depth == 0 {
						p.consume()
						goto doneArg
					}
					arg.WriteString(")")
				case TokenWhitespace:
					arg.WriteString(" ")
				case TokenIdent, TokenNumber:
					arg.WriteString(t.Value)
				case TokenDimension:
					arg.WriteString(t.Value)
					arg.WriteString(t.Unit)
				case TokenDelim:
					arg.WriteRune(t.Delim)
				}
				p.consume()
			}
		doneArg:
			pc.Argument = strings.TrimSpace(arg.String())
		}
	}
	return pc, nil
}

func (p *selectorParser) parsePseudoElement() (*PseudoElementSelector, error) {
	pe := &PseudoElementSelector{}
	tok := p.current()

	switch tok.Type {
	case TokenIdent:
		pe.Name = strings.ToLower(p.consume().Value)
	case TokenFunction:
		pe.Name = strings.ToLower(p.consume().Value)
		var arg strings.Builder
		depth := 1
		for {
			t := p.current()
			if t.Type == TokenEOF {
				break
			}
			if t.Type == TokenOpenParen {
				depth++
			} else if t.Type == TokenCloseParen {
				depth--
				if depth == 0 {
					p.consume()
					break
				}
			}
			arg.WriteString(t.Value)
			p.consume()
		}
		pe.Argument = arg.String()
	}
	return pe, nil
}

// Specificity is the (A, B, C) triple of Selectors Level 4 §17.
type Specificity struct {
	A int // ID selectors
	B int // classes, attribute selectors, pseudo-classes
	C int // type selectors, pseudo-elements
}

// Compare returns -1, 0, or 1 as s is less than, equal to, or greater
// than other, comparing A then B then C.
func (s Specificity) Compare(other Specificity) int {
	if s.A != other.A {
		if s.A > other.A {
			return 1
		}
		return -1
	}
	if s.B != other.B {
		if s.B > other.B {
			return 1
		}
		return -1
	}
	if s.C != other.C {
		if s.C > other.C {
			return 1
		}
		return -1
	}
	return 0
}

// Less reports whether s sorts before other.
func (s Specificity) Less(other Specificity) bool { return s.Compare(other) < 0 }

// Specificity computes this complex selector's (A, B, C) triple.
func (cs *ComplexSelector) Specificity() Specificity {
	var spec Specificity
	for _, compound := range cs.Compounds {
		spec.A += len(compound.IDSelectors)
		spec.B += len(compound.ClassSelectors) + len(compound.AttributeMatchers) + len(compound.PseudoClasses)
		if compound.TypeSelector != nil && compound.TypeSelector.Name != "*" {
			spec.C++
		}
		if compound.PseudoElement != nil {
			spec.C++
		}
	}
	return spec
}

// Specificity returns the highest specificity among the selector list's
// complex selectors, per the "most specific alternative wins" rule for
// selector lists such as :is().
func (s *Selector) Specificity() Specificity {
	var max Specificity
	for _, cs := range s.ComplexSelectors {
		if sp := cs.Specificity(); max.Less(sp) {
			max = sp
		}
	}
	return max
}

// FillAttributeSet adds the lowercase name of every attribute this
// selector list references (in any [attr...] clause, at any combinator
// position, including inside :not()/:is()/:where() arguments) into set.
// The cascade invalidator uses this to build its selectorAttributes set
// (spec §4.8): attribute mutations outside that set never need to
// re-run the selector engine.
func (s *Selector) FillAttributeSet(set map[string]bool) {
	for _, cs := range s.ComplexSelectors {
		cs.fillAttributeSet(set)
	}
}

func (cs *ComplexSelector) fillAttributeSet(set map[string]bool) {
	for _, compound := range cs.Compounds {
		for _, am := range compound.AttributeMatchers {
			set[strings.ToLower(am.Name)] = true
		}
		for _, pc := range compound.PseudoClasses {
			if pc.Selector != nil {
				pc.Selector.FillAttributeSet(set)
			}
		}
	}
}
