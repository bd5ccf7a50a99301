package cssom

import "testing"

func TestParseStylesheetBasicRule(t *testing.T) {
	sheet, err := ParseStylesheet(`div.box { color: red; font-size: 12px; }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.StyleRules) != 1 {
		t.Fatalf("got %d style rules, want 1", len(sheet.StyleRules))
	}
	rule := sheet.StyleRules[0]
	if len(rule.Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2", len(rule.Declarations))
	}
	if rule.Declarations[0].Property != "color" || rule.Declarations[0].Value != "red" {
		t.Errorf("first declaration = %+v", rule.Declarations[0])
	}
}

func TestParseStylesheetImportant(t *testing.T) {
	sheet, err := ParseStylesheet(`p { color: blue !important; }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl := sheet.StyleRules[0].Declarations[0]
	if !decl.Important {
		t.Errorf("expected color declaration to be marked important")
	}
	if decl.Value != "blue" {
		t.Errorf("value = %q, want %q (without !important)", decl.Value, "blue")
	}
}

func TestParseStylesheetMultipleRulesAndSelectors(t *testing.T) {
	sheet, err := ParseStylesheet(`
		h1, h2 { font-weight: bold; }
		.note { color: gray; }
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.StyleRules) != 2 {
		t.Fatalf("got %d style rules, want 2", len(sheet.StyleRules))
	}
	if len(sheet.StyleRules[0].Selector.ComplexSelectors) != 2 {
		t.Errorf("expected first rule's selector list to have 2 alternatives")
	}
}

func TestParseStylesheetMediaRule(t *testing.T) {
	sheet, err := ParseStylesheet(`
		@media print {
			body { color: black; }
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.MediaRules) != 1 {
		t.Fatalf("got %d media rules, want 1", len(sheet.MediaRules))
	}
	mr := sheet.MediaRules[0]
	if len(mr.Rules) != 1 {
		t.Fatalf("got %d nested rules, want 1", len(mr.Rules))
	}
	if !mr.Media.Matches(map[string]bool{"print": true}) {
		t.Errorf("expected @media print to match active medium \"print\"")
	}
	if mr.Media.Matches(map[string]bool{"screen": true}) {
		t.Errorf("expected @media print to not match active medium \"screen\"")
	}
}

func TestParseStylesheetImportRule(t *testing.T) {
	sheet, err := ParseStylesheet(`@import url("theme.css") screen;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.ImportRules) != 1 {
		t.Fatalf("got %d import rules, want 1", len(sheet.ImportRules))
	}
	if sheet.ImportRules[0].Href != "theme.css" {
		t.Errorf("href = %q, want %q", sheet.ImportRules[0].Href, "theme.css")
	}
}

func TestParseStylesheetSkipsUnknownAtRules(t *testing.T) {
	sheet, err := ParseStylesheet(`
		@font-face { font-family: "Foo"; src: url("foo.woff"); }
		@keyframes spin { from { } to { } }
		p { color: green; }
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.StyleRules) != 1 {
		t.Fatalf("got %d style rules, want 1 (at-rules should be skipped, not break parsing)", len(sheet.StyleRules))
	}
}

func TestParseStyleDeclaration(t *testing.T) {
	decls := ParseStyleDeclaration(`color: red; font-size: 14px`)
	if len(decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(decls))
	}
}
