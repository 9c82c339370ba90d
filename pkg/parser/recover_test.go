package parser

import (
	"testing"

	"github.com/jcrawley/hazel-cc/pkg/arena"
	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/diag"
	"github.com/jcrawley/hazel-cc/pkg/lexer"
)

func TestBlockClosesEarlyOnMissingSemicolon(t *testing.T) {
	res := parseAny(t, "int f(void) { return 1 }")

	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(res.Diagnostics), res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Kind != diag.ExpectedToken || d.Expected != ";" || d.Found != "}" {
		t.Errorf("wrong diagnostic: %v", d)
	}
	if d.Pos != 8 || d.Line != 1 || d.Col != 24 {
		t.Errorf("wrong position: pos=%d line=%d col=%d", d.Pos, d.Line, d.Col)
	}

	// The function survives with the failed statement dropped.
	if len(res.Program.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(res.Program.Definitions))
	}
	funDef, ok := res.Program.Definitions[0].(*ast.FunDef)
	if !ok {
		t.Fatalf("expected FunDef, got %T", res.Program.Definitions[0])
	}
	if len(funDef.Body.Items) != 0 {
		t.Errorf("expected an empty body, got %d items", len(funDef.Body.Items))
	}
}

func TestBlockFailureAwayFromBracePropagates(t *testing.T) {
	res := parseAny(t, "int f(void) { void void x; return 0; }")

	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(res.Diagnostics), res.Diagnostics)
	}
	if res.Diagnostics[0].Kind != diag.InvalidTypeSpecifier {
		t.Errorf("expected InvalidTypeSpecifier, got %v", res.Diagnostics[0].Kind)
	}
	if len(res.Program.Definitions) != 0 {
		t.Errorf("expected no definitions, got %d", len(res.Program.Definitions))
	}
}

func TestStopsAtFirstBadDeclaration(t *testing.T) {
	res := parseAny(t, "void void x; int y;")

	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(res.Diagnostics), res.Diagnostics)
	}
	if res.Diagnostics[0].Kind != diag.InvalidTypeSpecifier {
		t.Errorf("expected InvalidTypeSpecifier, got %v", res.Diagnostics[0].Kind)
	}
	// Nothing after the failure is collected, including the good
	// declaration of y.
	if len(res.Program.Definitions) != 0 {
		t.Errorf("expected no definitions, got %d", len(res.Program.Definitions))
	}
}

func TestKeepsDefinitionsBeforeFailure(t *testing.T) {
	res := parseAny(t, "int x = 1; @ int y;")

	if len(res.Program.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(res.Program.Definitions))
	}
	decl := res.Program.Definitions[0].(*ast.Declaration)
	if decl.Decls[0].Decl.DeclaredName() != "x" {
		t.Errorf("expected 'x' to survive, got %q", decl.Decls[0].Decl.DeclaredName())
	}

	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(res.Diagnostics), res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Kind != diag.ExpectedDecl || d.Found != "ILLEGAL" {
		t.Errorf("wrong diagnostic: %v", d)
	}
	if d.Pos != 5 {
		t.Errorf("expected diagnostic at token 5, got %d", d.Pos)
	}
}

func TestStrayTokenAtTopLevel(t *testing.T) {
	tests := []struct {
		input string
		found string
	}{
		{"42;", "INT"},
		{"x = 1;", "IDENT"},
		{"}", "}"},
	}
	for i, tt := range tests {
		res := parseAny(t, tt.input)
		if len(res.Program.Definitions) != 0 {
			t.Errorf("tests[%d] - expected no definitions, got %d", i, len(res.Program.Definitions))
		}
		if len(res.Diagnostics) != 1 {
			t.Fatalf("tests[%d] - expected 1 diagnostic, got %d: %v", i, len(res.Diagnostics), res.Diagnostics)
		}
		d := res.Diagnostics[0]
		if d.Kind != diag.ExpectedDecl || d.Found != tt.found {
			t.Errorf("tests[%d] - wrong diagnostic: %v", i, d)
		}
	}
}

func TestNoDuplicateDiagnosticAtSamePosition(t *testing.T) {
	// The failing parameter rule diagnoses the closing paren; the
	// driver must not add a second diagnostic there.
	res := parseAny(t, "int f(int,);")

	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(res.Diagnostics), res.Diagnostics)
	}
	if res.Diagnostics[0].Kind != diag.ExpectedDecl {
		t.Errorf("expected ExpectedDecl, got %v", res.Diagnostics[0].Kind)
	}
}

func TestParseWithLimit(t *testing.T) {
	toks := lexer.Tokenize("int x = 1; int y = 2;")
	res, err := ParseWithLimit(toks, 1)
	if err != arena.ErrExhausted {
		t.Fatalf("expected arena.ErrExhausted, got %v", err)
	}
	if res != nil {
		t.Errorf("expected no result, got %v", res)
	}
}

func TestReleaseTwicePanics(t *testing.T) {
	res, err := ParseSource("int x;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res.Release()

	defer func() {
		if recover() == nil {
			t.Error("expected the second Release to panic")
		}
	}()
	res.Release()
}

func TestCommentsAreTransparent(t *testing.T) {
	res := parseClean(t, "int /* note */ x = /* two */ 1; // done")

	decl := res.Program.Definitions[0].(*ast.Declaration)
	d := decl.Decls[0].Decl
	if d.DeclaredName() != "x" {
		t.Errorf("expected 'x', got %q", d.DeclaredName())
	}
	if got := res.Tokens[d.NamePos].Literal; got != "x" {
		t.Errorf("name position points at %q", got)
	}

	comments := 0
	for _, tok := range res.Tokens {
		if tok.Type.IsComment() {
			comments++
		}
	}
	if comments != 3 {
		t.Errorf("expected 3 comment tokens in the sequence, got %d", comments)
	}
}

func TestMissingEOFAppended(t *testing.T) {
	toks := lexer.Tokenize("int x;")
	toks = toks[:len(toks)-1]

	res, err := Parse(toks)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	defer res.Release()

	if len(res.Diagnostics) != 0 {
		t.Fatalf("parser errors: %v", res.Diagnostics)
	}
	if len(res.Program.Definitions) != 1 {
		t.Errorf("expected 1 definition, got %d", len(res.Program.Definitions))
	}
	last := res.Tokens[len(res.Tokens)-1]
	if last.Type != lexer.TokenEOF {
		t.Errorf("expected a trailing EOF token, got %v", last.Type)
	}
}

func TestEmptyInput(t *testing.T) {
	res, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	defer res.Release()

	if len(res.Program.Definitions) != 0 || len(res.Diagnostics) != 0 {
		t.Errorf("expected an empty result, got %d definitions, %v",
			len(res.Program.Definitions), res.Diagnostics)
	}
	if len(res.Tokens) != 1 || res.Tokens[0].Type != lexer.TokenEOF {
		t.Errorf("expected a lone EOF token, got %v", res.Tokens)
	}
	if res.Program.End != 0 {
		t.Errorf("expected End at token 0, got %d", res.Program.End)
	}
}

func TestRepeatedParsesAgree(t *testing.T) {
	const src = "int f(int n) { while (n > 1) n = n / 2; return n; }"
	a := parseClean(t, src)
	b := parseClean(t, src)

	fa := a.Program.Definitions[0].(*ast.FunDef)
	fb := b.Program.Definitions[0].(*ast.FunDef)
	if len(fa.Body.Items) != len(fb.Body.Items) {
		t.Fatalf("item counts differ: %d vs %d", len(fa.Body.Items), len(fb.Body.Items))
	}
	ea := fa.Body.Items[1].(*ast.Return).Expr
	eb := fb.Body.Items[1].(*ast.Return).Expr
	if exprString(ea) != exprString(eb) {
		t.Errorf("trees differ: %s vs %s", exprString(ea), exprString(eb))
	}

	const bad = "short long x;"
	c := parseAny(t, bad)
	d := parseAny(t, bad)
	if len(c.Diagnostics) != len(d.Diagnostics) {
		t.Fatalf("diagnostic counts differ: %d vs %d", len(c.Diagnostics), len(d.Diagnostics))
	}
	for i := range c.Diagnostics {
		if c.Diagnostics[i].String() != d.Diagnostics[i].String() {
			t.Errorf("diagnostics[%d] differ: %s vs %s",
				i, c.Diagnostics[i].String(), d.Diagnostics[i].String())
		}
	}
}
