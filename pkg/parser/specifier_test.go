package parser

import (
	"strings"
	"testing"

	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/diag"
)

// declSpecs parses a single clean declaration and returns its
// specifier bundle.
func declSpecs(t *testing.T, input string) *ast.DeclSpecs {
	t.Helper()
	res := parseClean(t, input)
	if len(res.Program.Definitions) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(res.Program.Definitions))
	}
	decl, ok := res.Program.Definitions[0].(*ast.Declaration)
	if !ok {
		t.Fatalf("expected Declaration, got %T", res.Program.Definitions[0])
	}
	return decl.Spec
}

func signPrefix(sign ast.Pos, unsigned bool) string {
	if !sign.IsValid() {
		return ""
	}
	if unsigned {
		return "unsigned "
	}
	return "signed "
}

// typeKey flattens an accumulated type into one canonical spelling so
// differently ordered keyword runs can be compared.
func typeKey(ts ast.TypeSpec) string {
	switch ts := ts.(type) {
	case nil:
		return ""
	case *ast.VoidType:
		return "void"
	case *ast.BoolType:
		return "_Bool"
	case *ast.CharType:
		return signPrefix(ts.Sign, ts.Unsigned) + "char"
	case *ast.ShortType:
		s := signPrefix(ts.Sign, ts.Unsigned) + "short"
		if ts.Int.IsValid() {
			s += " int"
		}
		return s
	case *ast.IntType:
		s := signPrefix(ts.Sign, ts.Unsigned)
		if ts.IntPos.IsValid() {
			return s + "int"
		}
		return strings.TrimSpace(s)
	case *ast.LongType:
		s := signPrefix(ts.Sign, ts.Unsigned) + "long"
		if ts.LongLong.IsValid() {
			s += " long"
		}
		if ts.Int.IsValid() {
			s += " int"
		}
		return s
	case *ast.FloatType:
		s := "float"
		if ts.Complex.IsValid() {
			s += " _Complex"
		}
		return s
	case *ast.DoubleType:
		s := "double"
		if ts.Long.IsValid() {
			s = "long double"
		}
		if ts.Complex.IsValid() {
			s += " _Complex"
		}
		return s
	}
	return "?"
}

func TestTypeSpecifierCombinations(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"int x;", "int"},
		{"signed x;", "signed"},
		{"unsigned x;", "unsigned"},
		{"signed int x;", "signed int"},
		{"unsigned int x;", "unsigned int"},
		{"int unsigned x;", "unsigned int"},
		{"char x;", "char"},
		{"signed char x;", "signed char"},
		{"unsigned char x;", "unsigned char"},
		{"char unsigned x;", "unsigned char"},
		{"short x;", "short"},
		{"short int x;", "short int"},
		{"int short x;", "short int"},
		{"unsigned short int x;", "unsigned short int"},
		{"long x;", "long"},
		{"long int x;", "long int"},
		{"int long x;", "long int"},
		{"long unsigned x;", "unsigned long"},
		{"long long x;", "long long"},
		{"long long int x;", "long long int"},
		{"int long long x;", "long long int"},
		{"long int long x;", "long long int"},
		{"unsigned long long int x;", "unsigned long long int"},
		{"float x;", "float"},
		{"double x;", "double"},
		{"long double x;", "long double"},
		{"double long x;", "long double"},
		{"float _Complex x;", "float _Complex"},
		{"double _Complex x;", "double _Complex"},
		{"long double _Complex x;", "long double _Complex"},
		{"double _Complex long x;", "long double _Complex"},
		{"void x;", "void"},
		{"_Bool x;", "_Bool"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			specs := declSpecs(t, tt.input)
			if got := typeKey(specs.Type); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestInvalidTypeCombination(t *testing.T) {
	tests := []string{
		"void void x;",
		"void int x;",
		"int char x;",
		"char int x;",
		"char short x;",
		"short long x;",
		"long short x;",
		"long long long x;",
		"float double x;",
		"double float x;",
		"float int x;",
		"signed unsigned x;",
		"unsigned signed x;",
		"signed signed x;",
		"_Bool int x;",
		"_Complex float x;",
		"struct s int x;",
		"int struct s x;",
		"int enum e x;",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			res := parseAny(t, input)
			if len(res.Diagnostics) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d: %v", len(res.Diagnostics), res.Diagnostics)
			}
			d := res.Diagnostics[0]
			if d.Kind != diag.InvalidTypeSpecifier {
				t.Errorf("wrong kind: expected %v, got %v", diag.InvalidTypeSpecifier, d.Kind)
			}
			if d.Severity != diag.Error {
				t.Errorf("wrong severity: expected %v, got %v", diag.Error, d.Severity)
			}
			if len(res.Program.Definitions) != 0 {
				t.Errorf("expected no definitions, got %d", len(res.Program.Definitions))
			}
		})
	}
}

func TestInvalidTypeDiagnosedAtKeyword(t *testing.T) {
	// The diagnostic lands on the keyword that broke the combination,
	// which stays unconsumed.
	res := parseAny(t, "void void x;")
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(res.Diagnostics))
	}
	d := res.Diagnostics[0]
	if d.Pos != 1 {
		t.Errorf("expected pos 1, got %d", d.Pos)
	}
	if d.Line != 1 || d.Col != 6 {
		t.Errorf("expected line 1 col 6, got line %d col %d", d.Line, d.Col)
	}
	if res.Tokens[d.Pos].Literal != "void" {
		t.Errorf("expected diagnostic on 'void', got %q", res.Tokens[d.Pos].Literal)
	}
}

func TestDuplicateQualifierWarning(t *testing.T) {
	tests := []struct {
		input string
		found string
	}{
		{"const const int x;", "const"},
		{"volatile int volatile x;", "volatile"},
		{"static static int x;", "static"},
		{"extern int extern x;", "extern"},
		{"typedef typedef int T;", "typedef"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := parseAny(t, tt.input)
			if len(res.Diagnostics) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d: %v", len(res.Diagnostics), res.Diagnostics)
			}
			d := res.Diagnostics[0]
			if d.Severity != diag.Warning {
				t.Errorf("wrong severity: expected %v, got %v", diag.Warning, d.Severity)
			}
			if d.Kind != diag.DuplicateQualifier {
				t.Errorf("wrong kind: expected %v, got %v", diag.DuplicateQualifier, d.Kind)
			}
			if d.Found != tt.found {
				t.Errorf("wrong token: expected %q, got %q", tt.found, d.Found)
			}
			// A warning never abandons the declaration.
			if len(res.Program.Definitions) != 1 {
				t.Errorf("expected 1 definition, got %d", len(res.Program.Definitions))
			}
		})
	}
}

func TestDuplicateKeepsFirstPosition(t *testing.T) {
	res := parseAny(t, "const int const x;")
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(res.Diagnostics))
	}
	decl := res.Program.Definitions[0].(*ast.Declaration)
	if decl.Spec.Quals.Const != 0 {
		t.Errorf("expected const recorded at token 0, got %d", decl.Spec.Quals.Const)
	}
}

func TestFunctionSpecifiersMayRepeat(t *testing.T) {
	res := parseClean(t, "inline inline _Noreturn _Noreturn void f() {}")
	funDef := res.Program.Definitions[0].(*ast.FunDef)
	if !funDef.Spec.Inline.IsValid() {
		t.Error("expected inline to be recorded")
	}
	if !funDef.Spec.Noreturn.IsValid() {
		t.Error("expected _Noreturn to be recorded")
	}
}

func TestStorageClassSlots(t *testing.T) {
	specs := declSpecs(t, "extern const volatile int x;")
	if !specs.Extern.IsValid() {
		t.Error("expected extern to be recorded")
	}
	if !specs.Quals.Const.IsValid() || !specs.Quals.Volatile.IsValid() {
		t.Error("expected const and volatile to be recorded")
	}
	if specs.Static.IsValid() || specs.Typedef.IsValid() {
		t.Error("unexpected storage class slots set")
	}

	specs = declSpecs(t, "_Thread_local static int y;")
	if !specs.ThreadLocal.IsValid() || !specs.Static.IsValid() {
		t.Error("expected _Thread_local and static to be recorded")
	}
}

func TestQualifierOnlyDeclaration(t *testing.T) {
	// No type keyword at all still reads as a declaration; the type
	// slot stays empty.
	specs := declSpecs(t, "const x;")
	if specs.Type != nil {
		t.Errorf("expected nil type, got %T", specs.Type)
	}
	if !specs.Quals.Const.IsValid() {
		t.Error("expected const to be recorded")
	}
}

func TestStructSpecifier(t *testing.T) {
	res := parseClean(t, "struct point { int x; int y; } p;")
	decl := res.Program.Definitions[0].(*ast.Declaration)

	record, ok := decl.Spec.Type.(*ast.RecordType)
	if !ok {
		t.Fatalf("expected RecordType, got %T", decl.Spec.Type)
	}
	if record.Union {
		t.Error("expected struct, got union")
	}
	if record.Name != "point" {
		t.Errorf("expected tag 'point', got %q", record.Name)
	}
	if !record.HasBody {
		t.Error("expected a body")
	}
	if len(record.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(record.Members))
	}

	first := record.Members[0].(*ast.Field)
	if len(first.Decls) != 1 || first.Decls[0].Decl.DeclaredName() != "x" {
		t.Errorf("expected first member 'x', got %v", first.Decls)
	}
	if _, ok := first.Spec.Type.(*ast.IntType); !ok {
		t.Errorf("expected int member, got %T", first.Spec.Type)
	}

	if decl.Decls[0].Decl.DeclaredName() != "p" {
		t.Errorf("expected declarator 'p', got %q", decl.Decls[0].Decl.DeclaredName())
	}
}

func TestStructTagOnly(t *testing.T) {
	res := parseClean(t, "struct node *next;")
	decl := res.Program.Definitions[0].(*ast.Declaration)

	record := decl.Spec.Type.(*ast.RecordType)
	if record.Name != "node" || record.HasBody {
		t.Errorf("expected bodiless tag 'node', got %q hasBody=%v", record.Name, record.HasBody)
	}
	d := decl.Decls[0].Decl
	if len(d.Pointers) != 1 || d.DeclaredName() != "next" {
		t.Errorf("expected pointer declarator 'next', got %v", d)
	}
}

func TestAnonymousStruct(t *testing.T) {
	res := parseClean(t, "struct { int a; } s;")
	decl := res.Program.Definitions[0].(*ast.Declaration)

	record := decl.Spec.Type.(*ast.RecordType)
	if record.Name != "" {
		t.Errorf("expected anonymous struct, got tag %q", record.Name)
	}
	if !record.HasBody || len(record.Members) != 1 {
		t.Errorf("expected 1-member body, got hasBody=%v members=%d", record.HasBody, len(record.Members))
	}
}

func TestNestedStruct(t *testing.T) {
	res := parseClean(t, "struct outer { struct inner { int i; } in; } o;")
	decl := res.Program.Definitions[0].(*ast.Declaration)

	outer := decl.Spec.Type.(*ast.RecordType)
	if len(outer.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(outer.Members))
	}
	field := outer.Members[0].(*ast.Field)
	inner, ok := field.Spec.Type.(*ast.RecordType)
	if !ok {
		t.Fatalf("expected nested RecordType, got %T", field.Spec.Type)
	}
	if inner.Name != "inner" || !inner.HasBody {
		t.Errorf("expected inner body, got %q hasBody=%v", inner.Name, inner.HasBody)
	}
	if field.Decls[0].Decl.DeclaredName() != "in" {
		t.Errorf("expected member 'in', got %q", field.Decls[0].Decl.DeclaredName())
	}
}

func TestUnionSpecifier(t *testing.T) {
	res := parseClean(t, "union value { int i; float f; } v;")
	decl := res.Program.Definitions[0].(*ast.Declaration)

	record := decl.Spec.Type.(*ast.RecordType)
	if !record.Union {
		t.Error("expected union")
	}
	if len(record.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(record.Members))
	}
}

func TestBitfields(t *testing.T) {
	res := parseClean(t, "struct flags { unsigned a : 1; unsigned : 0; int b : 2 + 1; };")
	decl := res.Program.Definitions[0].(*ast.Declaration)
	record := decl.Spec.Type.(*ast.RecordType)
	if len(record.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(record.Members))
	}

	named := record.Members[0].(*ast.Field).Decls[0]
	if named.Decl.DeclaredName() != "a" {
		t.Errorf("expected bitfield 'a', got %q", named.Decl.DeclaredName())
	}
	width := named.Bits.(*ast.Constant)
	if width.Value != 1 {
		t.Errorf("expected width 1, got %d", width.Value)
	}

	anon := record.Members[1].(*ast.Field).Decls[0]
	if anon.Decl != nil {
		t.Errorf("expected anonymous bitfield, got %v", anon.Decl)
	}
	zero := anon.Bits.(*ast.Constant)
	if zero.Value != 0 {
		t.Errorf("expected width 0, got %d", zero.Value)
	}

	exprWidth := record.Members[2].(*ast.Field).Decls[0]
	if _, ok := exprWidth.Bits.(*ast.Binary); !ok {
		t.Errorf("expected expression width, got %T", exprWidth.Bits)
	}
}

func TestStructMemberStaticAssert(t *testing.T) {
	res := parseClean(t, `struct s { int a; _Static_assert(1, "ok"); };`)
	decl := res.Program.Definitions[0].(*ast.Declaration)
	record := decl.Spec.Type.(*ast.RecordType)
	if len(record.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(record.Members))
	}
	sa, ok := record.Members[1].(*ast.StaticAssert)
	if !ok {
		t.Fatalf("expected StaticAssert, got %T", record.Members[1])
	}
	if sa.Msg != "ok" {
		t.Errorf("expected message 'ok', got %q", sa.Msg)
	}
}

func TestStructWithoutTagOrBody(t *testing.T) {
	res := parseAny(t, "struct;")
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(res.Diagnostics), res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Kind != diag.ExpectedToken || d.Expected != "IDENT" {
		t.Errorf("expected missing-identifier diagnostic, got %v", d)
	}
}

func TestEnumSpecifier(t *testing.T) {
	res := parseClean(t, "enum color { RED, GREEN = 5, BLUE } c;")
	decl := res.Program.Definitions[0].(*ast.Declaration)

	enum, ok := decl.Spec.Type.(*ast.EnumType)
	if !ok {
		t.Fatalf("expected EnumType, got %T", decl.Spec.Type)
	}
	if enum.Name != "color" || !enum.HasBody {
		t.Errorf("expected enum color with body, got %q hasBody=%v", enum.Name, enum.HasBody)
	}
	if len(enum.Items) != 3 {
		t.Fatalf("expected 3 enumerators, got %d", len(enum.Items))
	}
	if enum.Items[0].Name != "RED" || enum.Items[0].Value != nil {
		t.Errorf("expected bare RED, got %v", enum.Items[0])
	}
	if enum.Items[1].Name != "GREEN" {
		t.Errorf("expected GREEN, got %q", enum.Items[1].Name)
	}
	val := enum.Items[1].Value.(*ast.Constant)
	if val.Value != 5 {
		t.Errorf("expected GREEN = 5, got %d", val.Value)
	}
	if enum.Items[2].Name != "BLUE" || enum.Items[2].Value != nil {
		t.Errorf("expected bare BLUE, got %v", enum.Items[2])
	}
}

func TestEnumTrailingComma(t *testing.T) {
	res := parseClean(t, "enum e { A, B, } x;")
	decl := res.Program.Definitions[0].(*ast.Declaration)
	enum := decl.Spec.Type.(*ast.EnumType)
	if len(enum.Items) != 2 {
		t.Errorf("expected 2 enumerators, got %d", len(enum.Items))
	}
}

func TestEnumTagOnly(t *testing.T) {
	specs := declSpecs(t, "enum tag e;")
	enum := specs.Type.(*ast.EnumType)
	if enum.Name != "tag" || enum.HasBody {
		t.Errorf("expected bodiless tag, got %q hasBody=%v", enum.Name, enum.HasBody)
	}
}

func TestAtomicTypeSpecifier(t *testing.T) {
	specs := declSpecs(t, "_Atomic(int) a;")
	atomic, ok := specs.Type.(*ast.AtomicType)
	if !ok {
		t.Fatalf("expected AtomicType, got %T", specs.Type)
	}
	if _, ok := atomic.Name.Spec.Type.(*ast.IntType); !ok {
		t.Errorf("expected atomic int, got %T", atomic.Name.Spec.Type)
	}
	if specs.Quals.Atomic.IsValid() {
		t.Error("specifier form must not set the qualifier slot")
	}
}

func TestAtomicQualifier(t *testing.T) {
	// Without a following parenthesis _Atomic is a qualifier, before
	// or after the type keywords.
	specs := declSpecs(t, "_Atomic int a;")
	if !specs.Quals.Atomic.IsValid() {
		t.Error("expected atomic qualifier")
	}
	if _, ok := specs.Type.(*ast.IntType); !ok {
		t.Errorf("expected IntType, got %T", specs.Type)
	}

	specs = declSpecs(t, "int _Atomic a;")
	if !specs.Quals.Atomic.IsValid() {
		t.Error("expected atomic qualifier")
	}
}

func TestAtomicPointerTypeName(t *testing.T) {
	specs := declSpecs(t, "_Atomic(int*) p;")
	atomic := specs.Type.(*ast.AtomicType)
	if atomic.Name.Decl == nil || len(atomic.Name.Decl.Pointers) != 1 {
		t.Errorf("expected pointer type name, got %v", atomic.Name.Decl)
	}
}

func TestTypedefNameResolution(t *testing.T) {
	res := parseClean(t, "typedef int myint; myint x;")
	if len(res.Program.Definitions) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(res.Program.Definitions))
	}

	second := res.Program.Definitions[1].(*ast.Declaration)
	name, ok := second.Spec.Type.(*ast.TypedefName)
	if !ok {
		t.Fatalf("expected TypedefName, got %T", second.Spec.Type)
	}
	if name.Name != "myint" {
		t.Errorf("expected 'myint', got %q", name.Name)
	}
	if second.Decls[0].Decl.DeclaredName() != "x" {
		t.Errorf("expected declarator 'x', got %q", second.Decls[0].Decl.DeclaredName())
	}
}

func TestTypedefChain(t *testing.T) {
	res := parseClean(t, "typedef int A; typedef A B; B b;")
	if len(res.Program.Definitions) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(res.Program.Definitions))
	}
	third := res.Program.Definitions[2].(*ast.Declaration)
	name := third.Spec.Type.(*ast.TypedefName)
	if name.Name != "B" {
		t.Errorf("expected 'B', got %q", name.Name)
	}
}

func TestTypedefNameYieldsToDeclarator(t *testing.T) {
	// Once a type is present, an identifier ends the specifier run and
	// names the declarator, even when it is a known typedef.
	res := parseClean(t, "typedef int T; unsigned T;")
	second := res.Program.Definitions[1].(*ast.Declaration)

	ty, ok := second.Spec.Type.(*ast.IntType)
	if !ok {
		t.Fatalf("expected IntType, got %T", second.Spec.Type)
	}
	if !ty.Unsigned {
		t.Error("expected unsigned")
	}
	if second.Decls[0].Decl.DeclaredName() != "T" {
		t.Errorf("expected declarator 'T', got %q", second.Decls[0].Decl.DeclaredName())
	}
}

func TestUnknownIdentIsNotAType(t *testing.T) {
	res := parseAny(t, "Foo x;")
	if len(res.Program.Definitions) != 0 {
		t.Fatalf("expected no definitions, got %d", len(res.Program.Definitions))
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(res.Diagnostics))
	}
	if res.Diagnostics[0].Kind != diag.ExpectedDecl {
		t.Errorf("expected missing-declaration diagnostic, got %v", res.Diagnostics[0])
	}
}
