package valuemanagers

import (
	"strings"

	"github.com/keskinen/cascade/cascade"
)

var fontStyleKeywords = map[string]bool{"italic": true, "oblique": true}
var fontWeightKeywords = map[string]bool{
	"bold": true, "bolder": true, "lighter": true,
	"100": true, "200": true, "300": true, "400": true, "500": true,
	"600": true, "700": true, "800": true, "900": true,
}

// fontShorthandManager expands the "font" shorthand into font-style,
// font-weight, font-size, line-height, and font-family, by splitting on
// the optional "/" between size and line-height and treating every
// other whitespace-separated leading token as an optional style/weight
// keyword (spec §4.1's shorthand collaborator).
type fontShorthandManager struct{}

// NewFontShorthandManager builds the "font" ShorthandManager.
func NewFontShorthandManager() cascade.ShorthandManager {
	return &fontShorthandManager{}
}

func (m *fontShorthandManager) PropertyName() string { return "font" }

func (m *fontShorthandManager) SetValues(engine *cascade.Engine, handler func(name string, value cascade.Value, important bool), lexicalUnit string, important bool) error {
	text := strings.TrimSpace(lexicalUnit)
	if text == "" {
		return &cascade.SyntaxError{Context: "font", Snippet: lexicalUnit, Err: errEmptyFont}
	}

	fields := strings.Fields(text)
	idx := 0
	style := "normal"
	weight := "normal"

	for idx < len(fields) {
		lower := strings.ToLower(fields[idx])
		if fontStyleKeywords[lower] {
			style = lower
			idx++
			continue
		}
		if fontWeightKeywords[lower] {
			weight = lower
			idx++
			continue
		}
		break
	}
	if idx >= len(fields) {
		return &cascade.SyntaxError{Context: "font", Snippet: lexicalUnit, Err: errMissingFontSize}
	}

	sizePart := fields[idx]
	idx++
	familyFields := fields[idx:]
	if len(familyFields) == 0 {
		return &cascade.SyntaxError{Context: "font", Snippet: lexicalUnit, Err: errMissingFontFamily}
	}
	familyText := strings.Join(familyFields, " ")

	sizeToken, lineHeightToken, hasLineHeight := strings.Cut(sizePart, "/")

	fsVM := NewFontSizeManager()
	sizeValue, err := fsVM.CreateValue(sizeToken, engine)
	if err != nil {
		return err
	}
	handler("font-size", sizeValue, important)

	if hasLineHeight {
		lhVM := NewLineHeightManager()
		lhValue, err := lhVM.CreateValue(lineHeightToken, engine)
		if err != nil {
			return err
		}
		handler("line-height", lhValue, important)
	}

	handler("font-style", Keyword(style), important)
	handler("font-weight", Keyword(weight), important)
	handler("font-family", Keyword(strings.ToLower(familyText)), important)
	return nil
}

var errEmptyFont = fontShorthandErr("empty font shorthand")
var errMissingFontSize = fontShorthandErr("missing font-size")
var errMissingFontFamily = fontShorthandErr("missing font-family")

type fontShorthandErr string

func (e fontShorthandErr) Error() string { return string(e) }
