// Package ast defines the abstract syntax tree for C source files.
//
// Nodes reference the token sequence they were parsed from by position
// only: a Pos is an index into that shared token slice. Identifier and
// literal text is copied into the nodes, so a tree can be rendered
// without consulting the tokens again.
package ast

// Pos is an index into the token sequence a tree was parsed from.
type Pos int

// NoPos marks an absent optional token slot.
const NoPos Pos = -1

// IsValid reports whether p refers to an actual token.
func (p Pos) IsValid() bool { return p >= 0 }

// Node is the base interface for all AST nodes
type Node interface {
	Pos() Pos
	implAstNode()
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implAstExpr()
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	implAstStmt()
}

// Definition is the interface for top-level definitions
type Definition interface {
	Node
	implDefinition()
}

// TypeSpec is the closed variant of C type specifiers
type TypeSpec interface {
	Node
	implTypeSpec()
}

// RecordMember is one entry in a struct or union body
type RecordMember interface {
	Node
	implRecordMember()
}

// DeclSuffix is an array or function decoration on a declarator
type DeclSuffix interface {
	Node
	implDeclSuffix()
}

// Program is the root node: the ordered top-level definitions of a
// translation unit. End records the position of the EOF token.
type Program struct {
	Definitions []Definition
	End         Pos
}

// FunDef represents a function definition
type FunDef struct {
	Start   Pos
	Spec    *DeclSpecs
	Decl    *Declarator
	KRDecls []*Declaration // K&R parameter declarations before the body
	Body    *Block
}

// Declaration represents a declaration: a specifier run plus zero or
// more init-declarators
type Declaration struct {
	Start Pos
	Spec  *DeclSpecs
	Decls []InitDeclarator
}

// InitDeclarator pairs a declarator with an optional initializer
type InitDeclarator struct {
	Decl *Declarator
	Init Expr // nil when uninitialized
}

// StaticAssert represents a _Static_assert declaration. It can appear
// at file scope, in a block, or among struct members.
type StaticAssert struct {
	Start Pos
	Cond  Expr
	Msg   string // message literal without quotes
}

// DeclSpecs is the declaration-specifier bundle for one declaration.
// Storage-class and function-specifier fields hold the position of the
// token that set them, or NoPos.
type DeclSpecs struct {
	Start Pos

	Typedef     Pos
	Extern      Pos
	Static      Pos
	ThreadLocal Pos
	Auto        Pos
	Register    Pos

	Inline   Pos
	Noreturn Pos

	Quals Qualifiers

	Type TypeSpec // nil when the run named no type
}

// NewDeclSpecs returns a DeclSpecs value with every optional slot
// unset. The zero value is unusable because Pos 0 is a real token.
func NewDeclSpecs(start Pos) DeclSpecs {
	return DeclSpecs{
		Start:       start,
		Typedef:     NoPos,
		Extern:      NoPos,
		Static:      NoPos,
		ThreadLocal: NoPos,
		Auto:        NoPos,
		Register:    NoPos,
		Inline:      NoPos,
		Noreturn:    NoPos,
		Quals:       NewQualifiers(),
	}
}

// IsTypedef reports whether the typedef storage class is present.
func (d *DeclSpecs) IsTypedef() bool { return d.Typedef.IsValid() }

// Empty reports whether no specifier of any kind is present.
func (d *DeclSpecs) Empty() bool {
	return d == nil || (d.Type == nil &&
		!d.Typedef.IsValid() && !d.Extern.IsValid() && !d.Static.IsValid() &&
		!d.ThreadLocal.IsValid() && !d.Auto.IsValid() && !d.Register.IsValid() &&
		!d.Inline.IsValid() && !d.Noreturn.IsValid() && !d.Quals.Any())
}

// Qualifiers holds the four single-occurrence type qualifiers, each
// either NoPos or the position of the token that set it
type Qualifiers struct {
	Const    Pos
	Volatile Pos
	Restrict Pos
	Atomic   Pos
}

// NewQualifiers returns a Qualifiers value with every slot unset.
func NewQualifiers() Qualifiers {
	return Qualifiers{Const: NoPos, Volatile: NoPos, Restrict: NoPos, Atomic: NoPos}
}

// Any reports whether at least one qualifier is set.
func (q Qualifiers) Any() bool {
	return q.Const.IsValid() || q.Volatile.IsValid() || q.Restrict.IsValid() || q.Atomic.IsValid()
}

// VoidType is the void specifier
type VoidType struct {
	VoidPos Pos
}

// BoolType is the _Bool specifier
type BoolType struct {
	BoolPos Pos
}

// CharType is char with an optional sign slot
type CharType struct {
	CharPos  Pos
	Sign     Pos // signed/unsigned token, NoPos when bare
	Unsigned bool
}

// ShortType is short with optional sign and int slots
type ShortType struct {
	ShortPos Pos
	Sign     Pos
	Unsigned bool
	Int      Pos // trailing int token, NoPos when bare
}

// IntType is int with an optional sign slot. A bare signed/unsigned
// run resolves here with IntPos unset.
type IntType struct {
	IntPos   Pos
	Sign     Pos
	Unsigned bool
}

// LongType is long with optional sign, int and second-long slots
type LongType struct {
	LongPos  Pos
	Sign     Pos
	Unsigned bool
	Int      Pos
	LongLong Pos // second long token, NoPos for plain long
}

// FloatType is float with an optional _Complex slot
type FloatType struct {
	FloatPos Pos
	Complex  Pos
}

// DoubleType is double with optional _Complex and long slots
type DoubleType struct {
	DoublePos Pos
	Complex   Pos
	Long      Pos // long double
}

// AtomicType is _Atomic ( type-name )
type AtomicType struct {
	AtomicPos Pos
	Name      *TypeName
}

// RecordType is a struct or union specifier: a tag, a braced member
// list, or both
type RecordType struct {
	KeywordPos Pos
	Union      bool
	Name       string // "" for anonymous
	NamePos    Pos
	HasBody    bool
	Members    []RecordMember
}

// EnumType is an enum specifier
type EnumType struct {
	KeywordPos Pos
	Name       string // "" for anonymous
	NamePos    Pos
	HasBody    bool
	Items      []*Enumerator
}

// TypedefName is a typedef-name used as a type specifier
type TypedefName struct {
	NamePos Pos
	Name    string
}

// Field is one struct-declaration: a specifier run plus its
// declarators, each optionally a bitfield
type Field struct {
	Start Pos
	Spec  *DeclSpecs
	Decls []FieldDecl
}

// FieldDecl is a single declarator within a Field
type FieldDecl struct {
	Decl *Declarator // nil for an anonymous bitfield
	Bits Expr        // nil unless a bitfield
}

// Enumerator is one name in an enum body
type Enumerator struct {
	Start Pos
	Name  string
	Value Expr // nil unless explicit
}

// TypeName is a type in expression position: specifier-qualifiers plus
// an optional abstract declarator
type TypeName struct {
	Start Pos
	Spec  *DeclSpecs
	Decl  *Declarator // abstract, nil when bare
}

// Declarator is a pointer chain applied to a base form (an identifier
// or a parenthesized inner declarator) decorated with array and
// function suffixes, innermost first. Abstract declarators carry an
// empty Name and nil Inner.
type Declarator struct {
	Start    Pos
	Pointers []Pointer
	Name     string
	NamePos  Pos
	Inner    *Declarator
	Suffixes []DeclSuffix
}

// DeclaredName returns the identifier a declarator declares, walking
// into parenthesized inner declarators. Abstract declarators return "".
func (d *Declarator) DeclaredName() string {
	for d != nil {
		if d.Name != "" {
			return d.Name
		}
		d = d.Inner
	}
	return ""
}

// Pointer is one * of a pointer chain with its trailing qualifiers
type Pointer struct {
	Star  Pos
	Quals Qualifiers
}

// ArraySuffix is an array decoration: [ static? qualifiers? size-or-* ]
type ArraySuffix struct {
	Start  Pos
	Static Pos // static inside the brackets, NoPos if absent
	Star   Pos // lone * form, NoPos if absent
	Quals  Qualifiers
	Size   Expr // nil for the empty and * forms
}

// FuncSuffix is a function decoration: a prototyped parameter list or
// a K&R identifier list
type FuncSuffix struct {
	Start    Pos
	Params   []*ParamDecl
	Variadic bool
	Idents   []string // K&R identifier list; empty when prototyped
}

// ParamDecl is one parameter declaration
type ParamDecl struct {
	Start Pos
	Spec  *DeclSpecs
	Decl  *Declarator // possibly abstract, nil when absent
}

// Return represents a return statement
type Return struct {
	Start Pos
	Expr  Expr // nil for bare return
}

// Computation represents an expression statement
type Computation struct {
	Start Pos
	Expr  Expr // nil for a null statement
}

// If represents an if statement with an optional else branch
type If struct {
	Start Pos
	Cond  Expr
	Then  Stmt
	Else  Stmt // nil when absent
}

// While represents a while loop
type While struct {
	Start Pos
	Cond  Expr
	Body  Stmt
}

// DoWhile represents a do-while loop
type DoWhile struct {
	Start Pos
	Body  Stmt
	Cond  Expr
}

// For represents a for loop. InitDecl is set for the C99 declaration
// form, Init for the expression form; both may be nil.
type For struct {
	Start    Pos
	InitDecl *Declaration
	Init     Expr
	Cond     Expr
	Step     Expr
	Body     Stmt
}

// Break represents a break statement
type Break struct {
	Start Pos
}

// Continue represents a continue statement
type Continue struct {
	Start Pos
}

// Switch represents a switch statement
type Switch struct {
	Start Pos
	Cond  Expr
	Body  Stmt
}

// Goto represents a goto statement
type Goto struct {
	Start    Pos
	Label    string
	LabelPos Pos
}

// Label represents a labeled statement: an identifier label, a case
// label, or default
type Label struct {
	Start   Pos
	Name    string // identifier labels
	Case    Expr   // case labels
	Default bool
	Stmt    Stmt
}

// Block represents a compound statement (block)
type Block struct {
	Lbrace Pos
	Items  []Stmt
	Rbrace Pos
}

// DeclStmt wraps a declaration appearing in statement position
type DeclStmt struct {
	Decl *Declaration
}

// Marker methods for interface implementation
func (p *Program) Pos() Pos {
	if len(p.Definitions) > 0 {
		return p.Definitions[0].Pos()
	}
	return p.End
}
func (*Program) implAstNode() {}

func (d *FunDef) Pos() Pos       { return d.Start }
func (*FunDef) implAstNode() {}
func (*FunDef) implDefinition() {}

func (d *Declaration) Pos() Pos      { return d.Start }
func (*Declaration) implAstNode() {}
func (*Declaration) implDefinition() {}

func (s *StaticAssert) Pos() Pos        { return s.Start }
func (*StaticAssert) implAstNode() {}
func (*StaticAssert) implDefinition() {}
func (*StaticAssert) implAstStmt() {}
func (*StaticAssert) implRecordMember() {}

func (d *DeclSpecs) Pos() Pos   { return d.Start }
func (*DeclSpecs) implAstNode() {}

func (t *VoidType) Pos() Pos     { return t.VoidPos }
func (*VoidType) implAstNode() {}
func (*VoidType) implTypeSpec() {}

func (t *BoolType) Pos() Pos    { return t.BoolPos }
func (*BoolType) implAstNode() {}
func (*BoolType) implTypeSpec() {}

func (t *CharType) Pos() Pos {
	if t.CharPos.IsValid() {
		return t.CharPos
	}
	return t.Sign
}
func (*CharType) implAstNode() {}
func (*CharType) implTypeSpec() {}

func (t *ShortType) Pos() Pos {
	if t.ShortPos.IsValid() {
		return t.ShortPos
	}
	return t.Sign
}
func (*ShortType) implAstNode() {}
func (*ShortType) implTypeSpec() {}

func (t *IntType) Pos() Pos {
	if t.IntPos.IsValid() {
		return t.IntPos
	}
	return t.Sign
}
func (*IntType) implAstNode() {}
func (*IntType) implTypeSpec() {}

func (t *LongType) Pos() Pos {
	if t.LongPos.IsValid() {
		return t.LongPos
	}
	return t.Sign
}
func (*LongType) implAstNode() {}
func (*LongType) implTypeSpec() {}

func (t *FloatType) Pos() Pos    { return t.FloatPos }
func (*FloatType) implAstNode() {}
func (*FloatType) implTypeSpec() {}

func (t *DoubleType) Pos() Pos    { return t.DoublePos }
func (*DoubleType) implAstNode() {}
func (*DoubleType) implTypeSpec() {}

func (t *AtomicType) Pos() Pos    { return t.AtomicPos }
func (*AtomicType) implAstNode() {}
func (*AtomicType) implTypeSpec() {}

func (t *RecordType) Pos() Pos    { return t.KeywordPos }
func (*RecordType) implAstNode() {}
func (*RecordType) implTypeSpec() {}

func (t *EnumType) Pos() Pos    { return t.KeywordPos }
func (*EnumType) implAstNode() {}
func (*EnumType) implTypeSpec() {}

func (t *TypedefName) Pos() Pos    { return t.NamePos }
func (*TypedefName) implAstNode() {}
func (*TypedefName) implTypeSpec() {}

func (f *Field) Pos() Pos          { return f.Start }
func (*Field) implAstNode() {}
func (*Field) implRecordMember() {}

func (e *Enumerator) Pos() Pos   { return e.Start }
func (*Enumerator) implAstNode() {}

func (t *TypeName) Pos() Pos   { return t.Start }
func (*TypeName) implAstNode() {}

func (d *Declarator) Pos() Pos   { return d.Start }
func (*Declarator) implAstNode() {}

func (a *ArraySuffix) Pos() Pos      { return a.Start }
func (*ArraySuffix) implAstNode() {}
func (*ArraySuffix) implDeclSuffix() {}

func (f *FuncSuffix) Pos() Pos      { return f.Start }
func (*FuncSuffix) implAstNode() {}
func (*FuncSuffix) implDeclSuffix() {}

func (p *ParamDecl) Pos() Pos   { return p.Start }
func (*ParamDecl) implAstNode() {}

func (s *Return) Pos() Pos   { return s.Start }
func (*Return) implAstNode() {}
func (*Return) implAstStmt() {}

func (s *Computation) Pos() Pos   { return s.Start }
func (*Computation) implAstNode() {}
func (*Computation) implAstStmt() {}

func (s *If) Pos() Pos   { return s.Start }
func (*If) implAstNode() {}
func (*If) implAstStmt() {}

func (s *While) Pos() Pos   { return s.Start }
func (*While) implAstNode() {}
func (*While) implAstStmt() {}

func (s *DoWhile) Pos() Pos   { return s.Start }
func (*DoWhile) implAstNode() {}
func (*DoWhile) implAstStmt() {}

func (s *For) Pos() Pos   { return s.Start }
func (*For) implAstNode() {}
func (*For) implAstStmt() {}

func (s *Break) Pos() Pos   { return s.Start }
func (*Break) implAstNode() {}
func (*Break) implAstStmt() {}

func (s *Continue) Pos() Pos   { return s.Start }
func (*Continue) implAstNode() {}
func (*Continue) implAstStmt() {}

func (s *Switch) Pos() Pos   { return s.Start }
func (*Switch) implAstNode() {}
func (*Switch) implAstStmt() {}

func (s *Goto) Pos() Pos   { return s.Start }
func (*Goto) implAstNode() {}
func (*Goto) implAstStmt() {}

func (s *Label) Pos() Pos   { return s.Start }
func (*Label) implAstNode() {}
func (*Label) implAstStmt() {}

func (b *Block) Pos() Pos   { return b.Lbrace }
func (*Block) implAstNode() {}
func (*Block) implAstStmt() {}

func (s *DeclStmt) Pos() Pos   { return s.Decl.Pos() }
func (*DeclStmt) implAstNode() {}
func (*DeclStmt) implAstStmt() {}
