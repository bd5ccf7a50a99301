package cssom

import "strings"

// Declaration is one `property: value [!important]` pair inside a style
// rule's block or an inline "style" attribute.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// StyleRule is a selector list plus its declaration block.
type StyleRule struct {
	Selector     *Selector
	Declarations []Declaration
}

// MediaRule is an @media block: a media query list guarding a nested set
// of style rules. Nested @media/@import are not supported — the pack this
// engine is built against has no component that evaluates nested
// conditional groups, so @media blocks hold StyleRules only.
type MediaRule struct {
	Media *MediaList
	Rules []*StyleRule
}

// ImportRule is an @import at-rule: a stylesheet reference plus the media
// it applies under. Fetching and parsing the referenced sheet is the
// engine's job (via ImportLoader), not the parser's.
type ImportRule struct {
	Href  string
	Media *MediaList
}

// Stylesheet is the parsed, structural result of parsing one CSS text:
// its style rules, media rules and import rules, in source order.
// @keyframes, @font-face, @namespace, @supports and any other at-rule are
// recognized by name (so the parser can skip their prelude/block without
// getting confused by nested braces) but otherwise dropped, matching
// spec's treatment of cascade-irrelevant at-rules as inert.
type Stylesheet struct {
	StyleRules  []*StyleRule
	MediaRules  []*MediaRule
	ImportRules []*ImportRule
}

// MediaList is a comma-separated list of media queries. Query evaluation
// in this engine is limited to per-Engine "current media" set via
// SetMedia and a MediaList.Matches check against it (see cascade.Engine);
// full media-feature syntax (width ranges, boolean logic) is out of
// scope, matching the teacher's own MediaList which never evaluated
// queries either.
type MediaList struct {
	text    string
	queries []string
}

// NewMediaList builds a MediaList from raw media-query text (e.g. from an
// @media prelude or a <link media="..."> attribute).
func NewMediaList(text string) *MediaList {
	ml := &MediaList{text: strings.TrimSpace(text)}
	if ml.text != "" {
		for _, q := range strings.Split(ml.text, ",") {
			ml.queries = append(ml.queries, strings.TrimSpace(q))
		}
	}
	return ml
}

// MediaText returns the raw media query list text.
func (ml *MediaList) MediaText() string { return ml.text }

// Matches reports whether any query in the list equals one of the active
// medium names (case-insensitively), or the list is empty (applies
// unconditionally). This is the coarse media-type match described in
// spec's "media" component — not full Media Queries Level 4 evaluation.
func (ml *MediaList) Matches(active map[string]bool) bool {
	if len(ml.queries) == 0 {
		return true
	}
	for _, q := range ml.queries {
		if q == "" || strings.EqualFold(q, "all") {
			return true
		}
		if active[strings.ToLower(q)] {
			return true
		}
	}
	return false
}

type ssParser struct {
	toks []Token
	pos  int
}

// ParseStylesheet parses a top-level CSS stylesheet per the "consume a
// list of rules" algorithm of CSS Syntax Module Level 3 §5.4.1, running
// in top-level mode (CDO/CDC tokens are ignored rather than terminating a
// qualified rule).
func ParseStylesheet(cssText string) (*Stylesheet, error) {
	p := &ssParser{toks: NewTokenizer(cssText).TokenizeAll()}
	sheet := &Stylesheet{}
	p.consumeRuleList(sheet, true)
	return sheet, nil
}

// ParseStyleDeclaration parses a bare declaration list (the contents of a
// "style" attribute, or of a rule's block with the braces stripped).
func ParseStyleDeclaration(text string) []Declaration {
	p := &ssParser{toks: NewTokenizer(text).TokenizeAll()}
	return p.consumeDeclarationList()
}

func (p *ssParser) current() Token {
	if p.pos >= len(p.toks) {
		return Token{Type: TokenEOF}
	}
	return p.toks[p.pos]
}

func (p *ssParser) consume() Token {
	t := p.current()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *ssParser) skipWS() {
	for p.current().Type == TokenWhitespace {
		p.consume()
	}
}

func (p *ssParser) consumeRuleList(sheet *Stylesheet, topLevel bool) {
	for {
		p.skipWS()
		switch p.current().Type {
		case TokenEOF:
			return
		case TokenCDO, TokenCDC:
			if topLevel {
				p.consume()
				continue
			}
			p.consumeQualifiedRule(sheet)
		case TokenAtKeyword:
			p.consumeAtRule(sheet)
		default:
			p.consumeQualifiedRule(sheet)
		}
	}
}

// consumeQualifiedRule reads a prelude up to the next top-level `{`,
// parses it as a selector list, then reads the balanced `{...}` block as
// a declaration list, and appends the resulting StyleRule to sheet. A
// prelude that runs into EOF without a block, or a malformed selector, is
// a parse error — the rule is dropped, matching "invalid rules are
// ignored" (CSS Syntax §4, "Error handling").
func (p *ssParser) consumeQualifiedRule(sheet *Stylesheet) {
	var prelude []Token
	depth := 0
	for {
		tok := p.current()
		switch {
		case tok.Type == TokenEOF:
			return // parse error: no block, drop the rule
		case tok.Type == TokenOpenCurly && depth == 0:
			goto gotBlock
		case tok.Type == TokenOpenParen || tok.Type == TokenOpenSquare || tok.Type == TokenOpenCurly:
			depth++
			prelude = append(prelude, p.consume())
			continue
		case tok.Type == TokenCloseParen || tok.Type == TokenCloseSquare || tok.Type == TokenCloseCurly:
			if depth > 0 {
				depth--
			}
			prelude = append(prelude, p.consume())
			continue
		default:
			prelude = append(prelude, p.consume())
			continue
		}
	}

gotBlock:
	p.consume() // {
	decls := p.consumeDeclarationListUntilCloseCurly()

	sel, err := parseSelectorTokens(prelude)
	if err != nil || sel == nil || len(sel.ComplexSelectors) == 0 {
		return
	}
	sheet.StyleRules = append(sheet.StyleRules, &StyleRule{Selector: sel, Declarations: decls})
}

// consumeAtRule reads an at-keyword's prelude up to a top-level `;` or
// `{...}` block and dispatches on the at-keyword name.
func (p *ssParser) consumeAtRule(sheet *Stylesheet) {
	atTok := p.consume() // @keyword
	name := strings.ToLower(atTok.Value)

	var prelude []Token
	depth := 0
	hasBlock := false
	for {
		tok := p.current()
		switch {
		case tok.Type == TokenEOF:
			goto dispatch
		case tok.Type == TokenSemicolon && depth == 0:
			p.consume()
			goto dispatch
		case tok.Type == TokenOpenCurly && depth == 0:
			hasBlock = true
			goto dispatch
		case tok.Type == TokenOpenParen || tok.Type == TokenOpenSquare || tok.Type == TokenOpenCurly:
			depth++
			prelude = append(prelude, p.consume())
		case tok.Type == TokenCloseParen || tok.Type == TokenCloseSquare || tok.Type == TokenCloseCurly:
			if depth > 0 {
				depth--
			}
			prelude = append(prelude, p.consume())
		default:
			prelude = append(prelude, p.consume())
		}
	}

dispatch:
	switch name {
	case "import":
		sheet.ImportRules = append(sheet.ImportRules, parseImportPrelude(prelude))
		if hasBlock {
			p.skipBlock() // malformed but tolerate it
		}
	case "media":
		mediaText := renderTokens(prelude)
		media := NewMediaList(mediaText)
		rule := &MediaRule{Media: media}
		if hasBlock {
			p.consume() // {
			inner := p.consumeBalancedBlockTokensAlreadyOpen()
			innerParser := &ssParser{toks: inner}
			innerSheet := &Stylesheet{}
			innerParser.consumeRuleList(innerSheet, false)
			rule.Rules = innerSheet.StyleRules
		}
		sheet.MediaRules = append(sheet.MediaRules, rule)
	default:
		// keyframes, font-face, namespace, supports, and anything
		// unrecognized: skip the block, contribute nothing. These
		// never reach the cascade, per spec's non-goals for
		// non-cascade-affecting at-rules.
		if hasBlock {
			p.skipBlock()
		}
	}
}

// skipBlock consumes a balanced {...} block (the opening brace must be
// the current token) and discards its contents.
func (p *ssParser) skipBlock() {
	p.consumeBalancedBlockTokens()
}

// consumeBalancedBlockTokens consumes the current `{`, every token up to
// its matching `}` (inclusive of nested braces), and the matching `}`
// itself, returning the tokens strictly between the outer braces.
func (p *ssParser) consumeBalancedBlockTokens() []Token {
	if p.current().Type != TokenOpenCurly {
		return nil
	}
	p.consume() // {
	var inner []Token
	depth := 1
	for {
		tok := p.current()
		if tok.Type == TokenEOF {
			break
		}
		if tok.Type == TokenOpenCurly {
			depth++
		} else if tok.Type == TokenCloseCurly {
			depth--
			if depth == 0 {
				p.consume()
				break
			}
		}
		inner = append(inner, p.consume())
	}
	return inner
}

func (p *ssParser) consumeDeclarationListUntilCloseCurly() []Declaration {
	toks := p.consumeBalancedBlockTokensAlreadyOpen()
	dp := &ssParser{toks: toks}
	return dp.consumeDeclarationList()
}

// consumeBalancedBlockTokensAlreadyOpen is consumeBalancedBlockTokens for
// the case the caller already consumed the opening `{`.
func (p *ssParser) consumeBalancedBlockTokensAlreadyOpen() []Token {
	var inner []Token
	depth := 1
	for {
		tok := p.current()
		if tok.Type == TokenEOF {
			break
		}
		if tok.Type == TokenOpenCurly {
			depth++
		} else if tok.Type == TokenCloseCurly {
			depth--
			if depth == 0 {
				p.consume()
				break
			}
		}
		inner = append(inner, p.consume())
	}
	return inner
}

// consumeDeclarationList parses `;`-separated declarations, dropping any
// that aren't well-formed `ident : value` pairs (parse errors are
// recoverable at declaration granularity per CSS Syntax §5.4.2).
func (p *ssParser) consumeDeclarationList() []Declaration {
	var decls []Declaration
	for {
		p.skipWS()
		for p.current().Type == TokenSemicolon {
			p.consume()
			p.skipWS()
		}
		if p.current().Type == TokenEOF {
			return decls
		}
		if p.current().Type != TokenIdent {
			p.skipToSemicolonOrEOF()
			continue
		}

		name := p.consume().Value
		p.skipWS()
		if p.current().Type != TokenColon {
			p.skipToSemicolonOrEOF()
			continue
		}
		p.consume() // :
		p.skipWS()

		var valueToks []Token
		depth := 0
		for {
			tok := p.current()
			if tok.Type == TokenEOF || (tok.Type == TokenSemicolon && depth == 0) {
				break
			}
			if tok.Type == TokenOpenParen {
				depth++
			} else if tok.Type == TokenCloseParen {
				if depth > 0 {
					depth--
				}
			}
			valueToks = append(valueToks, p.consume())
		}

		important := false
		valueToks = trimTrailingWhitespace(valueToks)
		if n := len(valueToks); n >= 2 {
			last := valueToks[n-1]
			if last.Type == TokenIdent && strings.EqualFold(last.Value, "important") {
				prior := trimTrailingWhitespace(valueToks[:n-1])
				if m := len(prior); m > 0 && prior[m-1].Type == TokenDelim && prior[m-1].Delim == '!' {
					important = true
					valueToks = trimTrailingWhitespace(prior[:m-1])
				}
			}
		}

		value := strings.TrimSpace(renderTokens(valueToks))
		if value != "" {
			decls = append(decls, Declaration{Property: strings.ToLower(strings.TrimSpace(name)), Value: value, Important: important})
		}
	}
}

func trimTrailingWhitespace(toks []Token) []Token {
	for len(toks) > 0 && toks[len(toks)-1].Type == TokenWhitespace {
		toks = toks[:len(toks)-1]
	}
	return toks
}

func (p *ssParser) skipToSemicolonOrEOF() {
	for {
		tok := p.current()
		if tok.Type == TokenEOF {
			return
		}
		if tok.Type == TokenSemicolon {
			p.consume()
			return
		}
		p.consume()
	}
}

func parseImportPrelude(toks []Token) *ImportRule {
	rule := &ImportRule{}
	rest := toks
	for i, tok := range toks {
		if tok.Type == TokenString || tok.Type == TokenURL {
			rule.Href = tok.Value
			rest = toks[i+1:]
			break
		}
		if tok.Type == TokenFunction && strings.EqualFold(tok.Value, "url") {
			// followed by a string token, then a close-paren
			for j := i + 1; j < len(toks); j++ {
				if toks[j].Type == TokenString {
					rule.Href = toks[j].Value
					rest = toks[j+1:]
					break
				}
			}
			break
		}
	}
	rule.Media = NewMediaList(strings.TrimSpace(renderTokens(rest)))
	return rule
}

// renderTokens reconstructs a readable source approximation of a token
// run, good enough for property values and media-query text (exact
// round-tripping of whitespace/escapes is not preserved).
func renderTokens(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		switch t.Type {
		case TokenWhitespace:
			sb.WriteByte(' ')
		case TokenIdent, TokenFunction, TokenAtKeyword:
			sb.WriteString(t.Value)
			if t.Type == TokenFunction {
				sb.WriteByte('(')
			}
		case TokenString:
			sb.WriteByte('"')
			sb.WriteString(t.Value)
			sb.WriteByte('"')
		case TokenURL:
			sb.WriteString("url(")
			sb.WriteString(t.Value)
			sb.WriteByte(')')
		case TokenHash:
			sb.WriteByte('#')
			sb.WriteString(t.Value)
		case TokenNumber:
			sb.WriteString(t.Value)
		case TokenPercentage:
			sb.WriteString(t.Value)
			sb.WriteByte('%')
		case TokenDimension:
			sb.WriteString(t.Value)
			sb.WriteString(t.Unit)
		case TokenColon:
			sb.WriteByte(':')
		case TokenComma:
			sb.WriteByte(',')
		case TokenDelim:
			sb.WriteRune(t.Delim)
		case TokenOpenParen:
			sb.WriteByte('(')
		case TokenCloseParen:
			sb.WriteByte(')')
		}
	}
	return strings.TrimSpace(sb.String())
}
