package parser

import (
	"github.com/jcrawley/hazel-cc/pkg/arena"
	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/diag"
	"github.com/jcrawley/hazel-cc/pkg/lexer"
)

// allocator bundles typed arenas for every AST node type plus the
// backing storage for node slices, the token sequence, and the final
// diagnostics list. Constructor methods arena-allocate and initialize
// nodes in a single call; scratch slices built with append are pinned
// into arena-backed blocks on the way in. Everything is charged to one
// budget and freed by one Release.
type allocator struct {
	budget *arena.Budget

	program      *arena.Arena[ast.Program]
	funDef       *arena.Arena[ast.FunDef]
	decl         *arena.Arena[ast.Declaration]
	staticAssert *arena.Arena[ast.StaticAssert]
	declSpecs    *arena.Arena[ast.DeclSpecs]

	voidType    *arena.Arena[ast.VoidType]
	boolType    *arena.Arena[ast.BoolType]
	charType    *arena.Arena[ast.CharType]
	shortType   *arena.Arena[ast.ShortType]
	intType     *arena.Arena[ast.IntType]
	longType    *arena.Arena[ast.LongType]
	floatType   *arena.Arena[ast.FloatType]
	doubleType  *arena.Arena[ast.DoubleType]
	atomicType  *arena.Arena[ast.AtomicType]
	recordType  *arena.Arena[ast.RecordType]
	enumType    *arena.Arena[ast.EnumType]
	typedefName *arena.Arena[ast.TypedefName]

	field       *arena.Arena[ast.Field]
	enumerator  *arena.Arena[ast.Enumerator]
	typeName    *arena.Arena[ast.TypeName]
	declarator  *arena.Arena[ast.Declarator]
	arraySuffix *arena.Arena[ast.ArraySuffix]
	funcSuffix  *arena.Arena[ast.FuncSuffix]
	paramDecl   *arena.Arena[ast.ParamDecl]

	returnStmt *arena.Arena[ast.Return]
	compStmt   *arena.Arena[ast.Computation]
	ifStmt     *arena.Arena[ast.If]
	whileStmt  *arena.Arena[ast.While]
	doWhile    *arena.Arena[ast.DoWhile]
	forStmt    *arena.Arena[ast.For]
	breakStmt  *arena.Arena[ast.Break]
	contStmt   *arena.Arena[ast.Continue]
	switchStmt *arena.Arena[ast.Switch]
	gotoStmt   *arena.Arena[ast.Goto]
	labelStmt  *arena.Arena[ast.Label]
	blockStmt  *arena.Arena[ast.Block]
	declStmt   *arena.Arena[ast.DeclStmt]

	constant    *arena.Arena[ast.Constant]
	floatLit    *arena.Arena[ast.FloatLit]
	stringLit   *arena.Arena[ast.StringLit]
	charLit     *arena.Arena[ast.CharLit]
	variable    *arena.Arena[ast.Variable]
	unary       *arena.Arena[ast.Unary]
	binary      *arena.Arena[ast.Binary]
	assign      *arena.Arena[ast.Assign]
	comma       *arena.Arena[ast.Comma]
	paren       *arena.Arena[ast.Paren]
	conditional *arena.Arena[ast.Conditional]
	call        *arena.Arena[ast.Call]
	index       *arena.Arena[ast.Index]
	member      *arena.Arena[ast.Member]
	sizeofExpr  *arena.Arena[ast.SizeofExpr]
	sizeofType  *arena.Arena[ast.SizeofType]
	alignofExpr *arena.Arena[ast.AlignofExpr]
	alignofType *arena.Arena[ast.AlignofType]
	cast        *arena.Arena[ast.Cast]
	compoundLit *arena.Arena[ast.CompoundLit]
	initList    *arena.Arena[ast.InitList]

	// Slice backing arenas, separate from the per-node arenas so that
	// contiguous blocks don't fragment with individual node allocations.
	toks       *arena.Arena[lexer.Token]
	diags      *arena.Arena[diag.Diagnostic]
	defs       *arena.Arena[ast.Definition]
	stmts      *arena.Arena[ast.Stmt]
	exprs      *arena.Arena[ast.Expr]
	initDecls  *arena.Arena[ast.InitDeclarator]
	krDecls    *arena.Arena[*ast.Declaration]
	members    *arena.Arena[ast.RecordMember]
	fieldDecls *arena.Arena[ast.FieldDecl]
	enums      *arena.Arena[*ast.Enumerator]
	params     *arena.Arena[*ast.ParamDecl]
	idents     *arena.Arena[string]
	pointers   *arena.Arena[ast.Pointer]
	suffixes   *arena.Arena[ast.DeclSuffix]
}

func newAllocator(b *arena.Budget) *allocator {
	return &allocator{
		budget: b,

		program:      arena.NewArena[ast.Program](b, 1),
		funDef:       arena.NewArena[ast.FunDef](b, 16),
		decl:         arena.NewArena[ast.Declaration](b, 64),
		staticAssert: arena.NewArena[ast.StaticAssert](b, 8),
		declSpecs:    arena.NewArena[ast.DeclSpecs](b, 64),

		voidType:    arena.NewArena[ast.VoidType](b, 16),
		boolType:    arena.NewArena[ast.BoolType](b, 8),
		charType:    arena.NewArena[ast.CharType](b, 16),
		shortType:   arena.NewArena[ast.ShortType](b, 8),
		intType:     arena.NewArena[ast.IntType](b, 64),
		longType:    arena.NewArena[ast.LongType](b, 16),
		floatType:   arena.NewArena[ast.FloatType](b, 8),
		doubleType:  arena.NewArena[ast.DoubleType](b, 8),
		atomicType:  arena.NewArena[ast.AtomicType](b, 8),
		recordType:  arena.NewArena[ast.RecordType](b, 16),
		enumType:    arena.NewArena[ast.EnumType](b, 8),
		typedefName: arena.NewArena[ast.TypedefName](b, 16),

		field:       arena.NewArena[ast.Field](b, 32),
		enumerator:  arena.NewArena[ast.Enumerator](b, 32),
		typeName:    arena.NewArena[ast.TypeName](b, 16),
		declarator:  arena.NewArena[ast.Declarator](b, 64),
		arraySuffix: arena.NewArena[ast.ArraySuffix](b, 16),
		funcSuffix:  arena.NewArena[ast.FuncSuffix](b, 16),
		paramDecl:   arena.NewArena[ast.ParamDecl](b, 32),

		returnStmt: arena.NewArena[ast.Return](b, 32),
		compStmt:   arena.NewArena[ast.Computation](b, 64),
		ifStmt:     arena.NewArena[ast.If](b, 32),
		whileStmt:  arena.NewArena[ast.While](b, 16),
		doWhile:    arena.NewArena[ast.DoWhile](b, 8),
		forStmt:    arena.NewArena[ast.For](b, 16),
		breakStmt:  arena.NewArena[ast.Break](b, 16),
		contStmt:   arena.NewArena[ast.Continue](b, 8),
		switchStmt: arena.NewArena[ast.Switch](b, 8),
		gotoStmt:   arena.NewArena[ast.Goto](b, 8),
		labelStmt:  arena.NewArena[ast.Label](b, 16),
		blockStmt:  arena.NewArena[ast.Block](b, 32),
		declStmt:   arena.NewArena[ast.DeclStmt](b, 64),

		constant:    arena.NewArena[ast.Constant](b, 128),
		floatLit:    arena.NewArena[ast.FloatLit](b, 16),
		stringLit:   arena.NewArena[ast.StringLit](b, 32),
		charLit:     arena.NewArena[ast.CharLit](b, 16),
		variable:    arena.NewArena[ast.Variable](b, 128),
		unary:       arena.NewArena[ast.Unary](b, 64),
		binary:      arena.NewArena[ast.Binary](b, 128),
		assign:      arena.NewArena[ast.Assign](b, 64),
		comma:       arena.NewArena[ast.Comma](b, 8),
		paren:       arena.NewArena[ast.Paren](b, 32),
		conditional: arena.NewArena[ast.Conditional](b, 8),
		call:        arena.NewArena[ast.Call](b, 32),
		index:       arena.NewArena[ast.Index](b, 32),
		member:      arena.NewArena[ast.Member](b, 32),
		sizeofExpr:  arena.NewArena[ast.SizeofExpr](b, 8),
		sizeofType:  arena.NewArena[ast.SizeofType](b, 8),
		alignofExpr: arena.NewArena[ast.AlignofExpr](b, 8),
		alignofType: arena.NewArena[ast.AlignofType](b, 8),
		cast:        arena.NewArena[ast.Cast](b, 16),
		compoundLit: arena.NewArena[ast.CompoundLit](b, 8),
		initList:    arena.NewArena[ast.InitList](b, 16),

		toks:       arena.NewArena[lexer.Token](b, 256),
		diags:      arena.NewArena[diag.Diagnostic](b, 16),
		defs:       arena.NewArena[ast.Definition](b, 64),
		stmts:      arena.NewArena[ast.Stmt](b, 128),
		exprs:      arena.NewArena[ast.Expr](b, 64),
		initDecls:  arena.NewArena[ast.InitDeclarator](b, 64),
		krDecls:    arena.NewArena[*ast.Declaration](b, 8),
		members:    arena.NewArena[ast.RecordMember](b, 32),
		fieldDecls: arena.NewArena[ast.FieldDecl](b, 32),
		enums:      arena.NewArena[*ast.Enumerator](b, 32),
		params:     arena.NewArena[*ast.ParamDecl](b, 32),
		idents:     arena.NewArena[string](b, 16),
		pointers:   arena.NewArena[ast.Pointer](b, 32),
		suffixes:   arena.NewArena[ast.DeclSuffix](b, 32),
	}
}

// Tokens pins the token sequence into the arena.
func (a *allocator) Tokens(src []lexer.Token) []lexer.Token {
	return a.toks.Copy(src)
}

// Diagnostics pins the final diagnostics list into the arena.
func (a *allocator) Diagnostics(src []diag.Diagnostic) []diag.Diagnostic {
	return a.diags.Copy(src)
}

func (a *allocator) Program(defs []ast.Definition, end ast.Pos) *ast.Program {
	return a.program.New(ast.Program{Definitions: a.defs.Copy(defs), End: end})
}

func (a *allocator) FunDef(start ast.Pos, spec *ast.DeclSpecs, decl *ast.Declarator, krs []*ast.Declaration, body *ast.Block) *ast.FunDef {
	return a.funDef.New(ast.FunDef{Start: start, Spec: spec, Decl: decl, KRDecls: a.krDecls.Copy(krs), Body: body})
}

func (a *allocator) Declaration(start ast.Pos, spec *ast.DeclSpecs, decls []ast.InitDeclarator) *ast.Declaration {
	return a.decl.New(ast.Declaration{Start: start, Spec: spec, Decls: a.initDecls.Copy(decls)})
}

func (a *allocator) StaticAssert(start ast.Pos, cond ast.Expr, msg string) *ast.StaticAssert {
	return a.staticAssert.New(ast.StaticAssert{Start: start, Cond: cond, Msg: msg})
}

// DeclSpecs pins a locally accumulated specifier bundle.
func (a *allocator) DeclSpecs(v ast.DeclSpecs) *ast.DeclSpecs {
	return a.declSpecs.New(v)
}

func (a *allocator) VoidType(pos ast.Pos) *ast.VoidType {
	return a.voidType.New(ast.VoidType{VoidPos: pos})
}

func (a *allocator) BoolType(pos ast.Pos) *ast.BoolType {
	return a.boolType.New(ast.BoolType{BoolPos: pos})
}

func (a *allocator) CharType(charPos, sign ast.Pos, unsigned bool) *ast.CharType {
	return a.charType.New(ast.CharType{CharPos: charPos, Sign: sign, Unsigned: unsigned})
}

func (a *allocator) ShortType(shortPos, sign ast.Pos, unsigned bool, intPos ast.Pos) *ast.ShortType {
	return a.shortType.New(ast.ShortType{ShortPos: shortPos, Sign: sign, Unsigned: unsigned, Int: intPos})
}

func (a *allocator) IntType(intPos, sign ast.Pos, unsigned bool) *ast.IntType {
	return a.intType.New(ast.IntType{IntPos: intPos, Sign: sign, Unsigned: unsigned})
}

func (a *allocator) LongType(longPos, sign ast.Pos, unsigned bool, intPos, longLong ast.Pos) *ast.LongType {
	return a.longType.New(ast.LongType{LongPos: longPos, Sign: sign, Unsigned: unsigned, Int: intPos, LongLong: longLong})
}

func (a *allocator) FloatType(floatPos, complexPos ast.Pos) *ast.FloatType {
	return a.floatType.New(ast.FloatType{FloatPos: floatPos, Complex: complexPos})
}

func (a *allocator) DoubleType(doublePos, complexPos, longPos ast.Pos) *ast.DoubleType {
	return a.doubleType.New(ast.DoubleType{DoublePos: doublePos, Complex: complexPos, Long: longPos})
}

func (a *allocator) AtomicType(pos ast.Pos, name *ast.TypeName) *ast.AtomicType {
	return a.atomicType.New(ast.AtomicType{AtomicPos: pos, Name: name})
}

func (a *allocator) RecordType(kw ast.Pos, union bool, name string, namePos ast.Pos, hasBody bool, members []ast.RecordMember) *ast.RecordType {
	return a.recordType.New(ast.RecordType{
		KeywordPos: kw, Union: union, Name: name, NamePos: namePos,
		HasBody: hasBody, Members: a.members.Copy(members),
	})
}

func (a *allocator) EnumType(kw ast.Pos, name string, namePos ast.Pos, hasBody bool, items []*ast.Enumerator) *ast.EnumType {
	return a.enumType.New(ast.EnumType{
		KeywordPos: kw, Name: name, NamePos: namePos,
		HasBody: hasBody, Items: a.enums.Copy(items),
	})
}

func (a *allocator) TypedefName(pos ast.Pos, name string) *ast.TypedefName {
	return a.typedefName.New(ast.TypedefName{NamePos: pos, Name: name})
}

func (a *allocator) Field(start ast.Pos, spec *ast.DeclSpecs, decls []ast.FieldDecl) *ast.Field {
	return a.field.New(ast.Field{Start: start, Spec: spec, Decls: a.fieldDecls.Copy(decls)})
}

func (a *allocator) Enumerator(start ast.Pos, name string, value ast.Expr) *ast.Enumerator {
	return a.enumerator.New(ast.Enumerator{Start: start, Name: name, Value: value})
}

func (a *allocator) TypeName(start ast.Pos, spec *ast.DeclSpecs, decl *ast.Declarator) *ast.TypeName {
	return a.typeName.New(ast.TypeName{Start: start, Spec: spec, Decl: decl})
}

// Declarator pins a locally accumulated declarator, moving its scratch
// pointer and suffix slices into arena blocks.
func (a *allocator) Declarator(v ast.Declarator) *ast.Declarator {
	v.Pointers = a.pointers.Copy(v.Pointers)
	v.Suffixes = a.suffixes.Copy(v.Suffixes)
	return a.declarator.New(v)
}

func (a *allocator) ArraySuffix(start, staticPos, starPos ast.Pos, quals ast.Qualifiers, size ast.Expr) *ast.ArraySuffix {
	return a.arraySuffix.New(ast.ArraySuffix{Start: start, Static: staticPos, Star: starPos, Quals: quals, Size: size})
}

func (a *allocator) FuncSuffix(start ast.Pos, params []*ast.ParamDecl, variadic bool, idents []string) *ast.FuncSuffix {
	return a.funcSuffix.New(ast.FuncSuffix{
		Start: start, Params: a.params.Copy(params),
		Variadic: variadic, Idents: a.idents.Copy(idents),
	})
}

func (a *allocator) ParamDecl(start ast.Pos, spec *ast.DeclSpecs, decl *ast.Declarator) *ast.ParamDecl {
	return a.paramDecl.New(ast.ParamDecl{Start: start, Spec: spec, Decl: decl})
}

func (a *allocator) Return(start ast.Pos, expr ast.Expr) *ast.Return {
	return a.returnStmt.New(ast.Return{Start: start, Expr: expr})
}

func (a *allocator) Computation(start ast.Pos, expr ast.Expr) *ast.Computation {
	return a.compStmt.New(ast.Computation{Start: start, Expr: expr})
}

func (a *allocator) If(start ast.Pos, cond ast.Expr, then, els ast.Stmt) *ast.If {
	return a.ifStmt.New(ast.If{Start: start, Cond: cond, Then: then, Else: els})
}

func (a *allocator) While(start ast.Pos, cond ast.Expr, body ast.Stmt) *ast.While {
	return a.whileStmt.New(ast.While{Start: start, Cond: cond, Body: body})
}

func (a *allocator) DoWhile(start ast.Pos, body ast.Stmt, cond ast.Expr) *ast.DoWhile {
	return a.doWhile.New(ast.DoWhile{Start: start, Body: body, Cond: cond})
}

func (a *allocator) For(start ast.Pos, initDecl *ast.Declaration, init, cond, step ast.Expr, body ast.Stmt) *ast.For {
	return a.forStmt.New(ast.For{Start: start, InitDecl: initDecl, Init: init, Cond: cond, Step: step, Body: body})
}

func (a *allocator) Break(start ast.Pos) *ast.Break {
	return a.breakStmt.New(ast.Break{Start: start})
}

func (a *allocator) Continue(start ast.Pos) *ast.Continue {
	return a.contStmt.New(ast.Continue{Start: start})
}

func (a *allocator) Switch(start ast.Pos, cond ast.Expr, body ast.Stmt) *ast.Switch {
	return a.switchStmt.New(ast.Switch{Start: start, Cond: cond, Body: body})
}

func (a *allocator) Goto(start ast.Pos, label string, labelPos ast.Pos) *ast.Goto {
	return a.gotoStmt.New(ast.Goto{Start: start, Label: label, LabelPos: labelPos})
}

func (a *allocator) Label(start ast.Pos, name string, caseExpr ast.Expr, isDefault bool, stmt ast.Stmt) *ast.Label {
	return a.labelStmt.New(ast.Label{Start: start, Name: name, Case: caseExpr, Default: isDefault, Stmt: stmt})
}

func (a *allocator) Block(lbrace ast.Pos, items []ast.Stmt, rbrace ast.Pos) *ast.Block {
	return a.blockStmt.New(ast.Block{Lbrace: lbrace, Items: a.stmts.Copy(items), Rbrace: rbrace})
}

func (a *allocator) DeclStmt(decl *ast.Declaration) *ast.DeclStmt {
	return a.declStmt.New(ast.DeclStmt{Decl: decl})
}

func (a *allocator) Constant(start ast.Pos, value int64, text string) *ast.Constant {
	return a.constant.New(ast.Constant{Start: start, Value: value, Text: text})
}

func (a *allocator) FloatLit(start ast.Pos, text string) *ast.FloatLit {
	return a.floatLit.New(ast.FloatLit{Start: start, Text: text})
}

func (a *allocator) StringLit(start ast.Pos, value string) *ast.StringLit {
	return a.stringLit.New(ast.StringLit{Start: start, Value: value})
}

func (a *allocator) CharLit(start ast.Pos, value string) *ast.CharLit {
	return a.charLit.New(ast.CharLit{Start: start, Value: value})
}

func (a *allocator) Variable(start ast.Pos, name string) *ast.Variable {
	return a.variable.New(ast.Variable{Start: start, Name: name})
}

func (a *allocator) Unary(start ast.Pos, op ast.UnaryOp, expr ast.Expr) *ast.Unary {
	return a.unary.New(ast.Unary{Start: start, Op: op, Expr: expr})
}

func (a *allocator) Binary(start ast.Pos, op ast.BinaryOp, left, right ast.Expr) *ast.Binary {
	return a.binary.New(ast.Binary{Start: start, Op: op, Left: left, Right: right})
}

func (a *allocator) Assign(start ast.Pos, op ast.AssignOp, left, right ast.Expr) *ast.Assign {
	return a.assign.New(ast.Assign{Start: start, Op: op, Left: left, Right: right})
}

func (a *allocator) Comma(start ast.Pos, left, right ast.Expr) *ast.Comma {
	return a.comma.New(ast.Comma{Start: start, Left: left, Right: right})
}

func (a *allocator) Paren(start ast.Pos, expr ast.Expr) *ast.Paren {
	return a.paren.New(ast.Paren{Start: start, Expr: expr})
}

func (a *allocator) Conditional(start ast.Pos, cond, then, els ast.Expr) *ast.Conditional {
	return a.conditional.New(ast.Conditional{Start: start, Cond: cond, Then: then, Else: els})
}

func (a *allocator) Call(start ast.Pos, fn ast.Expr, args []ast.Expr) *ast.Call {
	return a.call.New(ast.Call{Start: start, Func: fn, Args: a.exprs.Copy(args)})
}

func (a *allocator) Index(start ast.Pos, array, idx ast.Expr) *ast.Index {
	return a.index.New(ast.Index{Start: start, Array: array, Index: idx})
}

func (a *allocator) Member(start ast.Pos, expr ast.Expr, name string, isArrow bool) *ast.Member {
	return a.member.New(ast.Member{Start: start, Expr: expr, Name: name, IsArrow: isArrow})
}

func (a *allocator) SizeofExpr(start ast.Pos, expr ast.Expr) *ast.SizeofExpr {
	return a.sizeofExpr.New(ast.SizeofExpr{Start: start, Expr: expr})
}

func (a *allocator) SizeofType(start ast.Pos, tn *ast.TypeName) *ast.SizeofType {
	return a.sizeofType.New(ast.SizeofType{Start: start, Type: tn})
}

func (a *allocator) AlignofExpr(start ast.Pos, expr ast.Expr) *ast.AlignofExpr {
	return a.alignofExpr.New(ast.AlignofExpr{Start: start, Expr: expr})
}

func (a *allocator) AlignofType(start ast.Pos, tn *ast.TypeName) *ast.AlignofType {
	return a.alignofType.New(ast.AlignofType{Start: start, Type: tn})
}

func (a *allocator) Cast(start ast.Pos, tn *ast.TypeName, expr ast.Expr) *ast.Cast {
	return a.cast.New(ast.Cast{Start: start, Type: tn, Expr: expr})
}

func (a *allocator) CompoundLit(start ast.Pos, tn *ast.TypeName, init *ast.InitList) *ast.CompoundLit {
	return a.compoundLit.New(ast.CompoundLit{Start: start, Type: tn, Init: init})
}

func (a *allocator) InitList(start ast.Pos, items []ast.Expr) *ast.InitList {
	return a.initList.New(ast.InitList{Start: start, Items: a.exprs.Copy(items)})
}
