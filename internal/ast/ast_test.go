package ast

import "testing"

func TestDeclarationNameDispatchesByKind(t *testing.T) {
	cases := []struct {
		decl Declaration
		want string
	}{
		{Declaration{Kind: DeclVariable, Variable: &Variable{Name: "v"}}, "v"},
		{Declaration{Kind: DeclAssumption, Assumption: &Assumption{Name: "a"}}, "a"},
		{Declaration{Kind: DeclParameter, Parameter: &Parameter{Name: "p"}}, "p"},
		{Declaration{Kind: DeclBranch, Branch: &Branch{Name: "b"}}, "b"},
		{Declaration{Kind: DeclImpact, Impact: &Impact{Name: "i"}}, "i"},
		{Declaration{Kind: DeclCalibrate, Calibrate: &Calibrate{Name: "c"}}, "c"},
		{Declaration{Kind: DeclImport, Import: &Import{Alias: "m"}}, "m"},
		{Declaration{Kind: DeclSimulate, Simulate: &Simulate{}}, ""},
		{Declaration{Kind: DeclWatch, Watch: &Watch{}}, ""},
		{Declaration{Kind: DeclBind, Bind: &Bind{}}, ""},
	}
	for _, c := range cases {
		if got := c.decl.Name(); got != c.want {
			t.Errorf("Declaration{Kind: %d}.Name() = %q, want %q", c.decl.Kind, got, c.want)
		}
	}
}

func TestDependencyBaseStripsFirstDotSegment(t *testing.T) {
	cases := map[string]string{
		"a.b.c":  "a",
		"output": "output",
		"x.y":    "x",
	}
	for in, want := range cases {
		if got := DependencyBase(in); got != want {
			t.Errorf("DependencyBase(%q) = %q, want %q", in, got, want)
		}
	}
}
