package diag

import "testing"

func TestBagAccumulatesInInsertionOrder(t *testing.T) {
	var b Bag
	b.Errorf(CodeSyntax, Span{}, "first %s", "error")
	b.Warnf(CodeMissingMetadata, Span{}, "second")
	b.Add(Diagnostic{Code: CodeDuplicateName, Severity: SeverityError, Message: "third"})

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(items))
	}
	if items[0].Message != "first error" || items[0].Severity != SeverityError {
		t.Fatalf("unexpected first diagnostic: %+v", items[0])
	}
	if items[1].Message != "second" || items[1].Severity != SeverityWarning {
		t.Fatalf("unexpected second diagnostic: %+v", items[1])
	}
	if items[2].Code != CodeDuplicateName {
		t.Fatalf("unexpected third diagnostic: %+v", items[2])
	}
}

func TestBagHasErrorsOnlyCountsErrorSeverity(t *testing.T) {
	var b Bag
	b.Warnf(CodeMissingMetadata, Span{}, "just a warning")
	if b.HasErrors() {
		t.Fatalf("expected HasErrors to be false with only a warning")
	}
	b.Errorf(CodeSyntax, Span{}, "now an error")
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors to be true once an error is added")
	}
}

func TestBagExtendAppendsAnotherSlice(t *testing.T) {
	var b Bag
	b.Errorf(CodeSyntax, Span{}, "local")
	other := []Diagnostic{{Code: CodeTimeOrder, Severity: SeverityError, Message: "remote"}}
	b.Extend(other)
	if len(b.Items()) != 2 {
		t.Fatalf("expected 2 diagnostics after Extend, got %d", len(b.Items()))
	}
	if b.Items()[1].Message != "remote" {
		t.Fatalf("expected the extended diagnostic to preserve its message, got %q", b.Items()[1].Message)
	}
}

func TestDiagnosticErrorIncludesHintWhenPresent(t *testing.T) {
	d := Diagnostic{Code: CodeSyntax, Severity: SeverityError, Message: "bad token", Hint: "try quoting it"}
	if got := d.Error(); got == "" {
		t.Fatalf("expected a non-empty error string")
	}
	withoutHint := Diagnostic{Code: CodeSyntax, Severity: SeverityError, Message: "bad token"}
	if d.Error() == withoutHint.Error() {
		t.Fatalf("expected the hint to change the rendered error string")
	}
}

func TestHasErrorsFreeFunction(t *testing.T) {
	ds := []Diagnostic{
		{Code: CodeMissingMetadata, Severity: SeverityWarning},
		{Code: CodeMissingUncertainty, Severity: SeverityWarning},
	}
	if HasErrors(ds) {
		t.Fatalf("expected HasErrors to be false for all-warning input")
	}
	ds = append(ds, Diagnostic{Code: CodeSyntax, Severity: SeverityError})
	if !HasErrors(ds) {
		t.Fatalf("expected HasErrors to be true once an error is present")
	}
}
