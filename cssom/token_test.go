package cssom

import "testing"

func TestTokenizeBasicTypes(t *testing.T) {
	toks := NewTokenizer(`div { color: #ff0000; width: 12.5px; opacity: 50%; }`).TokenizeAllSkipWS()
	want := []TokenType{
		TokenIdent, TokenOpenCurly,
		TokenIdent, TokenColon, TokenHash, TokenSemicolon,
		TokenIdent, TokenColon, TokenDimension, TokenSemicolon,
		TokenIdent, TokenColon, TokenPercentage, TokenSemicolon,
		TokenCloseCurly, TokenEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, tt)
		}
	}
}

func TestTokenizeString(t *testing.T) {
	toks := NewTokenizer(`"hello world"`).TokenizeAllSkipWS()
	if len(toks) != 2 || toks[0].Type != TokenString || toks[0].Value != "hello world" {
		t.Fatalf("got %+v", toks)
	}
}

func TestTokenizeFunctionAndURL(t *testing.T) {
	toks := NewTokenizer(`rgb(1,2,3) url(foo.png)`).TokenizeAllSkipWS()
	if toks[0].Type != TokenFunction || toks[0].Value != "rgb" {
		t.Fatalf("expected function token, got %+v", toks[0])
	}
	var foundURL bool
	for _, tok := range toks {
		if tok.Type == TokenURL && tok.Value == "foo.png" {
			foundURL = true
		}
	}
	if !foundURL {
		t.Fatalf("expected a URL token for foo.png, got %+v", toks)
	}
}

func TestTokenizeCommentsIgnored(t *testing.T) {
	toks := NewTokenizer(`/* comment */ div`).TokenizeAllSkipWS()
	if len(toks) != 2 || toks[0].Type != TokenIdent || toks[0].Value != "div" {
		t.Fatalf("expected comment to be skipped, got %+v", toks)
	}
}

func TestTokenizeAtKeyword(t *testing.T) {
	toks := NewTokenizer(`@media screen`).TokenizeAllSkipWS()
	if toks[0].Type != TokenAtKeyword || toks[0].Value != "media" {
		t.Fatalf("got %+v", toks[0])
	}
}
