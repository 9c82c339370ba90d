package ast

// BinaryOp represents binary operators
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd // &&
	OpOr  // ||
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl // <<
	OpShr // >>
)

func (op BinaryOp) String() string {
	names := []string{"+", "-", "*", "/", "%", "<", "<=", ">", ">=", "==", "!=", "&&", "||", "&", "|", "^", "<<", ">>"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// UnaryOp represents unary operators
type UnaryOp int

const (
	OpNeg    UnaryOp = iota // -
	OpNot                   // !
	OpBitNot                // ~
	OpPlus                  // +
	OpAddrOf                // &
	OpDeref                 // *
	OpPreInc                // ++x
	OpPreDec                // --x
	OpPostInc               // x++
	OpPostDec               // x--
)

func (op UnaryOp) String() string {
	names := []string{"-", "!", "~", "+", "&", "*", "++", "--", "++", "--"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Postfix reports whether the operator follows its operand.
func (op UnaryOp) Postfix() bool {
	return op == OpPostInc || op == OpPostDec
}

// AssignOp represents assignment operators
type AssignOp int

const (
	OpAssign    AssignOp = iota // =
	OpAddAssign                 // +=
	OpSubAssign                 // -=
	OpMulAssign                 // *=
	OpDivAssign                 // /=
	OpModAssign                 // %=
	OpAndAssign                 // &=
	OpOrAssign                  // |=
	OpXorAssign                 // ^=
	OpShlAssign                 // <<=
	OpShrAssign                 // >>=
)

func (op AssignOp) String() string {
	names := []string{"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>="}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Constant represents an integer constant. Text preserves the source
// spelling; Value is its decoded value.
type Constant struct {
	Start Pos
	Value int64
	Text  string
}

// FloatLit represents a floating constant, kept as source text
type FloatLit struct {
	Start Pos
	Text  string
}

// StringLit represents a string literal (without quotes)
type StringLit struct {
	Start Pos
	Value string
}

// CharLit represents a character constant (without quotes)
type CharLit struct {
	Start Pos
	Value string
}

// Variable represents an identifier expression
type Variable struct {
	Start Pos
	Name  string
}

// Unary represents a unary expression
type Unary struct {
	Start Pos
	Op    UnaryOp
	Expr  Expr
}

// Binary represents a binary expression
type Binary struct {
	Start Pos
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Assign represents an assignment expression, simple or compound
type Assign struct {
	Start Pos
	Op    AssignOp
	Left  Expr
	Right Expr
}

// Comma represents the comma operator
type Comma struct {
	Start Pos
	Left  Expr
	Right Expr
}

// Paren represents a parenthesized expression
type Paren struct {
	Start Pos
	Expr  Expr
}

// Conditional represents the ternary operator: cond ? then : else
type Conditional struct {
	Start Pos
	Cond  Expr
	Then  Expr
	Else  Expr
}

// Call represents a function call
type Call struct {
	Start Pos
	Func  Expr
	Args  []Expr
}

// Index represents array subscript access: arr[idx]
type Index struct {
	Start Pos
	Array Expr
	Index Expr
}

// Member represents member access: expr.name or expr->name
type Member struct {
	Start   Pos
	Expr    Expr
	Name    string
	IsArrow bool
}

// SizeofExpr represents sizeof applied to an expression
type SizeofExpr struct {
	Start Pos
	Expr  Expr
}

// SizeofType represents sizeof applied to a parenthesized type name
type SizeofType struct {
	Start Pos
	Type  *TypeName
}

// AlignofExpr represents _Alignof applied to an expression
type AlignofExpr struct {
	Start Pos
	Expr  Expr
}

// AlignofType represents _Alignof applied to a parenthesized type name
type AlignofType struct {
	Start Pos
	Type  *TypeName
}

// Cast represents a cast expression: (type-name) expr
type Cast struct {
	Start Pos
	Type  *TypeName
	Expr  Expr
}

// CompoundLit represents a compound literal: (type-name){ ... }
type CompoundLit struct {
	Start Pos
	Type  *TypeName
	Init  *InitList
}

// InitList represents a braced initializer list; items are assignment
// expressions or nested lists
type InitList struct {
	Start Pos
	Items []Expr
}

// Marker methods for interface implementation
func (e *Constant) Pos() Pos   { return e.Start }
func (*Constant) implAstNode() {}
func (*Constant) implAstExpr() {}

func (e *FloatLit) Pos() Pos   { return e.Start }
func (*FloatLit) implAstNode() {}
func (*FloatLit) implAstExpr() {}

func (e *StringLit) Pos() Pos   { return e.Start }
func (*StringLit) implAstNode() {}
func (*StringLit) implAstExpr() {}

func (e *CharLit) Pos() Pos   { return e.Start }
func (*CharLit) implAstNode() {}
func (*CharLit) implAstExpr() {}

func (e *Variable) Pos() Pos   { return e.Start }
func (*Variable) implAstNode() {}
func (*Variable) implAstExpr() {}

func (e *Unary) Pos() Pos   { return e.Start }
func (*Unary) implAstNode() {}
func (*Unary) implAstExpr() {}

func (e *Binary) Pos() Pos   { return e.Start }
func (*Binary) implAstNode() {}
func (*Binary) implAstExpr() {}

func (e *Assign) Pos() Pos   { return e.Start }
func (*Assign) implAstNode() {}
func (*Assign) implAstExpr() {}

func (e *Comma) Pos() Pos   { return e.Start }
func (*Comma) implAstNode() {}
func (*Comma) implAstExpr() {}

func (e *Paren) Pos() Pos   { return e.Start }
func (*Paren) implAstNode() {}
func (*Paren) implAstExpr() {}

func (e *Conditional) Pos() Pos   { return e.Start }
func (*Conditional) implAstNode() {}
func (*Conditional) implAstExpr() {}

func (e *Call) Pos() Pos   { return e.Start }
func (*Call) implAstNode() {}
func (*Call) implAstExpr() {}

func (e *Index) Pos() Pos   { return e.Start }
func (*Index) implAstNode() {}
func (*Index) implAstExpr() {}

func (e *Member) Pos() Pos   { return e.Start }
func (*Member) implAstNode() {}
func (*Member) implAstExpr() {}

func (e *SizeofExpr) Pos() Pos   { return e.Start }
func (*SizeofExpr) implAstNode() {}
func (*SizeofExpr) implAstExpr() {}

func (e *SizeofType) Pos() Pos   { return e.Start }
func (*SizeofType) implAstNode() {}
func (*SizeofType) implAstExpr() {}

func (e *AlignofExpr) Pos() Pos   { return e.Start }
func (*AlignofExpr) implAstNode() {}
func (*AlignofExpr) implAstExpr() {}

func (e *AlignofType) Pos() Pos   { return e.Start }
func (*AlignofType) implAstNode() {}
func (*AlignofType) implAstExpr() {}

func (e *Cast) Pos() Pos   { return e.Start }
func (*Cast) implAstNode() {}
func (*Cast) implAstExpr() {}

func (e *CompoundLit) Pos() Pos   { return e.Start }
func (*CompoundLit) implAstNode() {}
func (*CompoundLit) implAstExpr() {}

func (e *InitList) Pos() Pos   { return e.Start }
func (*InitList) implAstNode() {}
func (*InitList) implAstExpr() {}
