package lexer

import (
	"testing"

	"leoscript/internal/token"
)

func TestStreamPeekNextDoesNotOverrun(t *testing.T) {
	toks, err := NewScanner("1 2").ScanTokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := NewStream(toks)

	if got := s.Peek().Kind; got != token.Integer {
		t.Fatalf("Peek: got %s, want %s", got, token.Integer)
	}
	if got := s.Next().Lexeme; got != "1" {
		t.Fatalf("Next: got %q, want %q", got, "1")
	}
	if got := s.PeekAt(1).Kind; got != token.EOF {
		t.Fatalf("PeekAt(1): got %s, want %s", got, token.EOF)
	}
	s.Next() // consume "2"
	if !s.AtEOF() {
		t.Fatal("expected AtEOF after consuming every token")
	}
	// Next past EOF must keep returning EOF, not panic or advance further.
	if got := s.Next().Kind; got != token.EOF {
		t.Fatalf("Next at EOF: got %s, want %s", got, token.EOF)
	}
	if got := s.Next().Kind; got != token.EOF {
		t.Fatalf("Next past EOF: got %s, want %s", got, token.EOF)
	}
}
