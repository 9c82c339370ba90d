package parser

import (
	"testing"

	"github.com/jcrawley/hazel-cc/pkg/ast"
)

func TestSizeofExpression(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unparenthesized operand", "int f() { return sizeof x; }"},
		{"parenthesized expression", "int f() { return sizeof(x); }"},
		{"call operand", "int f() { return sizeof g(); }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := returnExpr(t, tt.input)
			if _, ok := expr.(*ast.SizeofExpr); !ok {
				t.Fatalf("expected SizeofExpr, got %T", expr)
			}
		})
	}
}

func TestSizeofTypeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, tn *ast.TypeName)
	}{
		{
			"plain int", "int f() { return sizeof(int); }",
			func(t *testing.T, tn *ast.TypeName) {
				if _, ok := tn.Spec.Type.(*ast.IntType); !ok {
					t.Errorf("expected IntType, got %T", tn.Spec.Type)
				}
				if tn.Decl != nil {
					t.Errorf("expected no abstract declarator, got %v", tn.Decl)
				}
			},
		},
		{
			"unsigned long", "int f() { return sizeof(unsigned long); }",
			func(t *testing.T, tn *ast.TypeName) {
				long, ok := tn.Spec.Type.(*ast.LongType)
				if !ok {
					t.Fatalf("expected LongType, got %T", tn.Spec.Type)
				}
				if !long.Unsigned {
					t.Error("expected unsigned long")
				}
			},
		},
		{
			"pointer to int", "int f() { return sizeof(int*); }",
			func(t *testing.T, tn *ast.TypeName) {
				if tn.Decl == nil || len(tn.Decl.Pointers) != 1 {
					t.Fatalf("expected abstract declarator with 1 pointer, got %v", tn.Decl)
				}
				if tn.Decl.Name != "" {
					t.Errorf("expected abstract declarator, got name %q", tn.Decl.Name)
				}
			},
		},
		{
			"array of int", "int f() { return sizeof(int[4]); }",
			func(t *testing.T, tn *ast.TypeName) {
				if tn.Decl == nil || len(tn.Decl.Suffixes) != 1 {
					t.Fatalf("expected abstract declarator with 1 suffix, got %v", tn.Decl)
				}
				arr, ok := tn.Decl.Suffixes[0].(*ast.ArraySuffix)
				if !ok {
					t.Fatalf("expected ArraySuffix, got %T", tn.Decl.Suffixes[0])
				}
				size := arr.Size.(*ast.Constant)
				if size.Value != 4 {
					t.Errorf("expected size 4, got %d", size.Value)
				}
			},
		},
		{
			"qualified type", "int f() { return sizeof(const char); }",
			func(t *testing.T, tn *ast.TypeName) {
				if !tn.Spec.Quals.Const.IsValid() {
					t.Error("expected const qualifier")
				}
				if _, ok := tn.Spec.Type.(*ast.CharType); !ok {
					t.Errorf("expected CharType, got %T", tn.Spec.Type)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := returnExpr(t, tt.input)
			sz, ok := expr.(*ast.SizeofType)
			if !ok {
				t.Fatalf("expected SizeofType, got %T", expr)
			}
			tt.check(t, sz.Type)
		})
	}
}

func TestSizeofBindsTighterThanBinary(t *testing.T) {
	expr := returnExpr(t, `int f() { return sizeof x + 2; }`)

	binary, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected Binary, got %T", expr)
	}
	if binary.Op != ast.OpAdd {
		t.Errorf("wrong op: expected %v, got %v", ast.OpAdd, binary.Op)
	}
	if _, ok := binary.Left.(*ast.SizeofExpr); !ok {
		t.Errorf("expected left to be SizeofExpr, got %T", binary.Left)
	}
}

func TestSizeofCompoundLiteral(t *testing.T) {
	// A brace after the parenthesized type name turns the operand into
	// a compound literal, so sizeof measures that object.
	expr := returnExpr(t, `int f() { return sizeof (int){0}; }`)

	sz, ok := expr.(*ast.SizeofExpr)
	if !ok {
		t.Fatalf("expected SizeofExpr, got %T", expr)
	}
	lit, ok := sz.Expr.(*ast.CompoundLit)
	if !ok {
		t.Fatalf("expected CompoundLit, got %T", sz.Expr)
	}
	if _, ok := lit.Type.Spec.Type.(*ast.IntType); !ok {
		t.Errorf("expected IntType, got %T", lit.Type.Spec.Type)
	}
	if len(lit.Init.Items) != 1 {
		t.Errorf("expected 1 initializer item, got %d", len(lit.Init.Items))
	}
}

func TestAlignofForms(t *testing.T) {
	expr := returnExpr(t, `int f() { return _Alignof(double); }`)
	if _, ok := expr.(*ast.AlignofType); !ok {
		t.Fatalf("expected AlignofType, got %T", expr)
	}

	expr = returnExpr(t, `int f() { return _Alignof x; }`)
	if _, ok := expr.(*ast.AlignofExpr); !ok {
		t.Fatalf("expected AlignofExpr, got %T", expr)
	}
}

func TestCastExpression(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"int cast", "int f() { return (int)x; }"},
		{"unsigned char cast", "int f() { return (unsigned char)c; }"},
		{"long long cast", "int f() { return (long long)n; }"},
		{"pointer cast", "int f() { return (int*)p; }"},
		{"cast of unary", "int f() { return (int)-x; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := returnExpr(t, tt.input)
			if _, ok := expr.(*ast.Cast); !ok {
				t.Fatalf("expected Cast, got %T", expr)
			}
		})
	}
}

func TestCastChain(t *testing.T) {
	expr := returnExpr(t, `int f() { return (int)(long)x; }`)

	outer, ok := expr.(*ast.Cast)
	if !ok {
		t.Fatalf("expected Cast, got %T", expr)
	}
	if _, ok := outer.Type.Spec.Type.(*ast.IntType); !ok {
		t.Errorf("expected outer IntType, got %T", outer.Type.Spec.Type)
	}
	inner, ok := outer.Expr.(*ast.Cast)
	if !ok {
		t.Fatalf("expected inner Cast, got %T", outer.Expr)
	}
	if _, ok := inner.Type.Spec.Type.(*ast.LongType); !ok {
		t.Errorf("expected inner LongType, got %T", inner.Type.Spec.Type)
	}
}

func TestCastOfTypedefName(t *testing.T) {
	res := parseClean(t, `typedef int T; int f() { return (T)x; }`)
	if len(res.Program.Definitions) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(res.Program.Definitions))
	}

	funDef := res.Program.Definitions[1].(*ast.FunDef)
	ret := funDef.Body.Items[0].(*ast.Return)
	cast, ok := ret.Expr.(*ast.Cast)
	if !ok {
		t.Fatalf("expected Cast, got %T", ret.Expr)
	}
	name, ok := cast.Type.Spec.Type.(*ast.TypedefName)
	if !ok {
		t.Fatalf("expected TypedefName, got %T", cast.Type.Spec.Type)
	}
	if name.Name != "T" {
		t.Errorf("expected typedef name 'T', got %q", name.Name)
	}
}

func TestParenIdentIsCallNotCast(t *testing.T) {
	// Without a typedef in scope, (x)(y) is a call through a
	// parenthesized function expression.
	expr := returnExpr(t, `int f() { return (x)(y); }`)

	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", expr)
	}
	paren, ok := call.Func.(*ast.Paren)
	if !ok {
		t.Fatalf("expected Paren, got %T", call.Func)
	}
	fn := paren.Expr.(*ast.Variable)
	if fn.Name != "x" {
		t.Errorf("expected function 'x', got %q", fn.Name)
	}
	if len(call.Args) != 1 {
		t.Errorf("expected 1 arg, got %d", len(call.Args))
	}
}

func TestCompoundLiteral(t *testing.T) {
	expr := returnExpr(t, `int f() { return (struct point){1, 2}.x; }`)

	member, ok := expr.(*ast.Member)
	if !ok {
		t.Fatalf("expected Member, got %T", expr)
	}
	if member.Name != "x" || member.IsArrow {
		t.Errorf("expected dot member 'x', got %q isArrow=%v", member.Name, member.IsArrow)
	}

	lit, ok := member.Expr.(*ast.CompoundLit)
	if !ok {
		t.Fatalf("expected CompoundLit, got %T", member.Expr)
	}
	record, ok := lit.Type.Spec.Type.(*ast.RecordType)
	if !ok {
		t.Fatalf("expected RecordType, got %T", lit.Type.Spec.Type)
	}
	if record.Name != "point" || record.Union {
		t.Errorf("expected struct point, got %q union=%v", record.Name, record.Union)
	}
	if len(lit.Init.Items) != 2 {
		t.Errorf("expected 2 initializer items, got %d", len(lit.Init.Items))
	}
}

func TestCompoundLiteralArray(t *testing.T) {
	expr := returnExpr(t, `int f() { return (int[]){1, 2, 3}[1]; }`)

	idx, ok := expr.(*ast.Index)
	if !ok {
		t.Fatalf("expected Index, got %T", expr)
	}
	lit, ok := idx.Array.(*ast.CompoundLit)
	if !ok {
		t.Fatalf("expected CompoundLit, got %T", idx.Array)
	}
	if len(lit.Init.Items) != 3 {
		t.Errorf("expected 3 initializer items, got %d", len(lit.Init.Items))
	}
}

func TestStringLiterals(t *testing.T) {
	expr := returnExpr(t, `int f() { return "hi"; }`)
	str, ok := expr.(*ast.StringLit)
	if !ok {
		t.Fatalf("expected StringLit, got %T", expr)
	}
	if str.Value != "hi" {
		t.Errorf("expected %q, got %q", "hi", str.Value)
	}
}

func TestStringConcatenation(t *testing.T) {
	// Adjacent string literals fuse into a single node.
	expr := returnExpr(t, `int f() { return "abc" "def" "g"; }`)

	str, ok := expr.(*ast.StringLit)
	if !ok {
		t.Fatalf("expected StringLit, got %T", expr)
	}
	if str.Value != "abcdefg" {
		t.Errorf("expected %q, got %q", "abcdefg", str.Value)
	}
}

func TestCharLiteral(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`int f() { return 'a'; }`, "a"},
		{`int f() { return '\n'; }`, `\n`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := returnExpr(t, tt.input)
			ch, ok := expr.(*ast.CharLit)
			if !ok {
				t.Fatalf("expected CharLit, got %T", expr)
			}
			if ch.Value != tt.value {
				t.Errorf("expected %q, got %q", tt.value, ch.Value)
			}
		})
	}
}

func TestFloatLiteral(t *testing.T) {
	expr := returnExpr(t, `int f() { return 3.14; }`)

	fl, ok := expr.(*ast.FloatLit)
	if !ok {
		t.Fatalf("expected FloatLit, got %T", expr)
	}
	if fl.Text != "3.14" {
		t.Errorf("expected text %q, got %q", "3.14", fl.Text)
	}
}

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		text     string
		expected int64
	}{
		{"0", 0},
		{"42", 42},
		{"0x2a", 42},
		{"0X2A", 42},
		{"052", 42},
		{"42u", 42},
		{"42UL", 42},
		{"7ll", 7},
		{"0xFFull", 255},
		{"9223372036854775807", 9223372036854775807},
		// Past the int64 range, values decode through uint64 and wrap.
		{"18446744073709551615", -1},
		// Past 64 bits entirely, the decoded value is zero.
		{"99999999999999999999", 0},
	}

	for i, tt := range tests {
		got := decodeInt(tt.text)
		if got != tt.expected {
			t.Errorf("tests[%d] - decodeInt(%q) wrong. expected=%d, got=%d", i, tt.text, tt.expected, got)
		}
	}
}
