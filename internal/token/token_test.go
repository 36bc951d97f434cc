package token

import "testing"

func TestLookupResolvesKeywords(t *testing.T) {
	cases := map[string]Kind{
		"scenario":   SCENARIO,
		"variable":   VARIABLE,
		"assumption": ASSUMPTION,
		"depends_on": DEPENDS_ON,
		"growth":     GROWTH,
	}
	for word, want := range cases {
		got, ok := Lookup(word)
		if !ok {
			t.Fatalf("expected %q to resolve as a keyword", word)
		}
		if got != want {
			t.Fatalf("Lookup(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestLookupRejectsNonKeywords(t *testing.T) {
	if _, ok := Lookup("revenue_growth"); ok {
		t.Fatalf("expected %q to not resolve as a keyword", "revenue_growth")
	}
	if _, ok := Lookup(""); ok {
		t.Fatalf("expected empty string to not resolve as a keyword")
	}
}

func TestKindStringFallsBackToUnknown(t *testing.T) {
	if got := SCENARIO.String(); got != "scenario" {
		t.Fatalf("SCENARIO.String() = %q, want %q", got, "scenario")
	}
	if got := Kind(-1).String(); got != "UNKNOWN" {
		t.Fatalf("Kind(-1).String() = %q, want %q", got, "UNKNOWN")
	}
}

func TestIdentLexemeAllowsFieldLikeKeywords(t *testing.T) {
	if !IdentLexeme(VALUE) {
		t.Fatalf("expected VALUE to be usable as a free identifier")
	}
	if IdentLexeme(SCENARIO) {
		t.Fatalf("expected SCENARIO to not be usable as a free identifier")
	}
}
