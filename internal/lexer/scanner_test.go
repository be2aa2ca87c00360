package lexer

import (
	"testing"

	"leoscript/internal/token"
)

func scanKinds(t *testing.T, source string) []token.Kind {
	t.Helper()
	toks, err := NewScanner(source).ScanTokens()
	if err != nil {
		t.Fatalf("ScanTokens(%q): unexpected error: %v", source, err)
	}
	kinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestScanTokensPunctuationAndOperators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"equal vs equalequal", "= ==", []token.Kind{token.Equal, token.EqualEqual, token.EOF}},
		{"colon vs doublecolon", ": ::", []token.Kind{token.Colon, token.DoubleColon, token.EOF}},
		{"not equal", "!=", []token.Kind{token.NotEqual, token.EOF}},
		{"comparisons", "< <= > >=", []token.Kind{token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.EOF}},
		{"comment stripped", "1 -- this is a comment\n2", []token.Kind{token.Integer, token.Integer, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanKinds(t, tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %s, want %s (full: %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestScanTokensKeywordsBeforeIdentifiers(t *testing.T) {
	got := scanKinds(t, "function forest")
	want := []token.Kind{token.Function, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanTokensLiterals(t *testing.T) {
	toks, err := NewScanner(`"hi" 42 3.14`).ScanTokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.String || toks[0].Lexeme != "hi" {
		t.Fatalf("string literal: got %+v", toks[0])
	}
	if toks[1].Kind != token.Integer || toks[1].Lexeme != "42" {
		t.Fatalf("integer literal: got %+v", toks[1])
	}
	if toks[2].Kind != token.Float || toks[2].Lexeme != "3.14" {
		t.Fatalf("float literal: got %+v", toks[2])
	}
}

func TestScanTokensUnterminatedString(t *testing.T) {
	if _, err := NewScanner(`"oops`).ScanTokens(); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestScanTokensNoMatch(t *testing.T) {
	if _, err := NewScanner("@").ScanTokens(); err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
}

func TestScanTokensCRLFNormalized(t *testing.T) {
	toks, err := NewScanner("var x = 1\r\nvar y = 2").ScanTokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := toks[len(toks)-1]
	if last.Pos.Line != 2 {
		t.Fatalf("expected the second declaration to be on line 2, got line %d", last.Pos.Line)
	}
}
