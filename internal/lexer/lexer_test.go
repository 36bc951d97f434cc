package lexer

import (
	"testing"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.EOF {
			continue
		}
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeMagnitudeSuffixesAndCurrency(t *testing.T) {
	// spec.md §8 end-to-end scenario #6 / §4.1 step 2's worked example:
	// "5B EUR" is a currency literal, "1.5M" and "65B" are bare numbers
	// with their magnitude suffix folded into the value.
	toks, diags := Tokenize(`5B EUR 1.5M 65B`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	got := kinds(toks)
	want := []token.Kind{token.CURRENCY, token.NUMBER, token.NUMBER}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if toks[0].Lexeme != "5B EUR" {
		t.Errorf("expected currency lexeme %q, got %q", "5B EUR", toks[0].Lexeme)
	}
	if toks[1].Lexeme != "1500000" {
		t.Errorf("expected 1.5M to fold to %q, got %q", "1500000", toks[1].Lexeme)
	}
	if toks[2].Lexeme != "65000000000" {
		t.Errorf("expected 65B to fold to %q, got %q", "65000000000", toks[2].Lexeme)
	}
}

func TestTokenizeMagnitudeSuffixBacktracksOnIdentifierContinuation(t *testing.T) {
	// A magnitude letter directly followed by more identifier characters
	// (no space, no currency code) is not a magnitude suffix at all — it
	// must backtrack to a bare number followed by its own identifier.
	toks, _ := Tokenize(`5Bx`)
	got := kinds(toks)
	want := []token.Kind{token.NUMBER, token.IDENT}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected [NUMBER IDENT], got %v", got)
	}
	if toks[0].Lexeme != "5" || toks[1].Lexeme != "Bx" {
		t.Fatalf("expected lexemes [5 Bx], got [%s %s]", toks[0].Lexeme, toks[1].Lexeme)
	}
}

func TestTokenizeDurationLiteral(t *testing.T) {
	toks, diags := Tokenize(`60s 5y`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	got := kinds(toks)
	want := []token.Kind{token.DURATION, token.DURATION}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected two DURATION tokens, got %v", got)
	}
	if toks[0].Lexeme != "60s" || toks[1].Lexeme != "5y" {
		t.Fatalf("expected lexemes [60s 5y], got [%s %s]", toks[0].Lexeme, toks[1].Lexeme)
	}
}

func TestTokenizePercentageAndDate(t *testing.T) {
	toks, diags := Tokenize(`12.5% 2025-06-01`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	got := kinds(toks)
	want := []token.Kind{token.PERCENTAGE, token.DATE}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected [PERCENTAGE DATE], got %v", got)
	}
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	toks, _ := Tokenize(`scenario revenue_growth true false`)
	got := kinds(toks)
	want := []token.Kind{token.SCENARIO, token.IDENT, token.BOOLEAN, token.BOOLEAN}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}
