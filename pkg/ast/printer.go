package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs the AST as C source in a normalized layout
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	for _, def := range prog.Definitions {
		p.printDefinition(def)
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printDefinition(def Definition) {
	switch d := def.(type) {
	case *FunDef:
		p.printFunDef(d)
	case *Declaration:
		p.printDeclaration(d)
	case *StaticAssert:
		p.printStaticAssert(d)
	default:
		fmt.Fprintf(p.w, "/* unknown definition %T */\n", def)
	}
}

func (p *Printer) printFunDef(f *FunDef) {
	if !f.Spec.Empty() {
		p.printDeclSpecs(f.Spec)
		fmt.Fprint(p.w, " ")
	}
	p.printDeclarator(f.Decl)
	fmt.Fprintln(p.w)
	for _, kr := range f.KRDecls {
		p.printDeclaration(kr)
	}
	p.printBlock(f.Body)
}

func (p *Printer) printDeclaration(d *Declaration) {
	p.printDeclarationBody(d)
	fmt.Fprintln(p.w, ";")
}

// printDeclarationBody prints a declaration without the trailing
// semicolon, as needed for C99 for-loop initializers
func (p *Printer) printDeclarationBody(d *Declaration) {
	p.printDeclSpecs(d.Spec)
	for i, id := range d.Decls {
		if i > 0 {
			fmt.Fprint(p.w, ", ")
		} else if !d.Spec.Empty() {
			fmt.Fprint(p.w, " ")
		}
		p.printDeclarator(id.Decl)
		if id.Init != nil {
			fmt.Fprint(p.w, " = ")
			p.printExpr(id.Init)
		}
	}
}

func (p *Printer) printStaticAssert(s *StaticAssert) {
	fmt.Fprint(p.w, "_Static_assert(")
	p.printExpr(s.Cond)
	fmt.Fprintf(p.w, ", \"%s\");\n", s.Msg)
}

func (p *Printer) printDeclSpecs(d *DeclSpecs) {
	if d == nil {
		return
	}
	var words []string
	if d.Typedef.IsValid() {
		words = append(words, "typedef")
	}
	if d.Extern.IsValid() {
		words = append(words, "extern")
	}
	if d.Static.IsValid() {
		words = append(words, "static")
	}
	if d.ThreadLocal.IsValid() {
		words = append(words, "_Thread_local")
	}
	if d.Auto.IsValid() {
		words = append(words, "auto")
	}
	if d.Register.IsValid() {
		words = append(words, "register")
	}
	if d.Inline.IsValid() {
		words = append(words, "inline")
	}
	if d.Noreturn.IsValid() {
		words = append(words, "_Noreturn")
	}
	words = appendQualWords(words, d.Quals)
	if len(words) > 0 {
		fmt.Fprint(p.w, strings.Join(words, " "))
	}
	if d.Type != nil {
		if len(words) > 0 {
			fmt.Fprint(p.w, " ")
		}
		p.printTypeSpec(d.Type)
	}
}

func appendQualWords(words []string, q Qualifiers) []string {
	if q.Const.IsValid() {
		words = append(words, "const")
	}
	if q.Volatile.IsValid() {
		words = append(words, "volatile")
	}
	if q.Restrict.IsValid() {
		words = append(words, "restrict")
	}
	if q.Atomic.IsValid() {
		words = append(words, "_Atomic")
	}
	return words
}

func (p *Printer) printTypeSpec(spec TypeSpec) {
	switch t := spec.(type) {
	case *VoidType:
		fmt.Fprint(p.w, "void")
	case *BoolType:
		fmt.Fprint(p.w, "_Bool")
	case *CharType:
		fmt.Fprint(p.w, signWord(t.Sign, t.Unsigned)+"char")
	case *ShortType:
		spelling := signWord(t.Sign, t.Unsigned) + "short"
		if t.Int.IsValid() {
			spelling += " int"
		}
		fmt.Fprint(p.w, spelling)
	case *IntType:
		spelling := signWord(t.Sign, t.Unsigned)
		if t.IntPos.IsValid() {
			spelling += "int"
		} else {
			// a bare sign keyword
			spelling = strings.TrimSuffix(spelling, " ")
		}
		fmt.Fprint(p.w, spelling)
	case *LongType:
		spelling := signWord(t.Sign, t.Unsigned) + "long"
		if t.LongLong.IsValid() {
			spelling += " long"
		}
		if t.Int.IsValid() {
			spelling += " int"
		}
		fmt.Fprint(p.w, spelling)
	case *FloatType:
		spelling := "float"
		if t.Complex.IsValid() {
			spelling += " _Complex"
		}
		fmt.Fprint(p.w, spelling)
	case *DoubleType:
		spelling := "double"
		if t.Long.IsValid() {
			spelling = "long double"
		}
		if t.Complex.IsValid() {
			spelling += " _Complex"
		}
		fmt.Fprint(p.w, spelling)
	case *AtomicType:
		fmt.Fprint(p.w, "_Atomic(")
		p.printTypeName(t.Name)
		fmt.Fprint(p.w, ")")
	case *RecordType:
		p.printRecord(t)
	case *EnumType:
		p.printEnum(t)
	case *TypedefName:
		fmt.Fprint(p.w, t.Name)
	default:
		fmt.Fprintf(p.w, "/* unknown type spec %T */", spec)
	}
}

func signWord(sign Pos, unsigned bool) string {
	if !sign.IsValid() {
		return ""
	}
	if unsigned {
		return "unsigned "
	}
	return "signed "
}

func (p *Printer) printRecord(r *RecordType) {
	kw := "struct"
	if r.Union {
		kw = "union"
	}
	fmt.Fprint(p.w, kw)
	if r.Name != "" {
		fmt.Fprintf(p.w, " %s", r.Name)
	}
	if !r.HasBody {
		return
	}
	fmt.Fprintln(p.w, " {")
	p.indent++
	for _, m := range r.Members {
		p.writeIndent()
		switch mm := m.(type) {
		case *Field:
			p.printField(mm)
		case *StaticAssert:
			p.printStaticAssert(mm)
		default:
			fmt.Fprintf(p.w, "/* unknown member %T */\n", m)
		}
	}
	p.indent--
	p.writeIndent()
	fmt.Fprint(p.w, "}")
}

func (p *Printer) printField(f *Field) {
	p.printDeclSpecs(f.Spec)
	for i, fd := range f.Decls {
		if i > 0 {
			fmt.Fprint(p.w, ",")
		}
		if fd.Decl != nil {
			fmt.Fprint(p.w, " ")
			p.printDeclarator(fd.Decl)
		}
		if fd.Bits != nil {
			fmt.Fprint(p.w, " : ")
			p.printExpr(fd.Bits)
		}
	}
	fmt.Fprintln(p.w, ";")
}

func (p *Printer) printEnum(e *EnumType) {
	fmt.Fprint(p.w, "enum")
	if e.Name != "" {
		fmt.Fprintf(p.w, " %s", e.Name)
	}
	if !e.HasBody {
		return
	}
	fmt.Fprintln(p.w, " {")
	p.indent++
	for i, val := range e.Items {
		p.writeIndent()
		fmt.Fprint(p.w, val.Name)
		if val.Value != nil {
			fmt.Fprint(p.w, " = ")
			p.printExpr(val.Value)
		}
		if i < len(e.Items)-1 {
			fmt.Fprintln(p.w, ",")
		} else {
			fmt.Fprintln(p.w)
		}
	}
	p.indent--
	p.writeIndent()
	fmt.Fprint(p.w, "}")
}

func (p *Printer) printTypeName(t *TypeName) {
	p.printDeclSpecs(t.Spec)
	if t.Decl != nil {
		fmt.Fprint(p.w, " ")
		p.printDeclarator(t.Decl)
	}
}

func (p *Printer) printDeclarator(d *Declarator) {
	for _, ptr := range d.Pointers {
		fmt.Fprint(p.w, "*")
		if ptr.Quals.Any() {
			fmt.Fprint(p.w, strings.Join(appendQualWords(nil, ptr.Quals), " ")+" ")
		}
	}
	if d.Inner != nil {
		fmt.Fprint(p.w, "(")
		p.printDeclarator(d.Inner)
		fmt.Fprint(p.w, ")")
	} else if d.Name != "" {
		fmt.Fprint(p.w, d.Name)
	}
	for _, suf := range d.Suffixes {
		switch s := suf.(type) {
		case *ArraySuffix:
			p.printArraySuffix(s)
		case *FuncSuffix:
			p.printFuncSuffix(s)
		default:
			fmt.Fprintf(p.w, "/* unknown suffix %T */", suf)
		}
	}
}

func (p *Printer) printArraySuffix(a *ArraySuffix) {
	fmt.Fprint(p.w, "[")
	var words []string
	if a.Static.IsValid() {
		words = append(words, "static")
	}
	words = appendQualWords(words, a.Quals)
	if len(words) > 0 {
		fmt.Fprint(p.w, strings.Join(words, " "))
	}
	if a.Star.IsValid() {
		if len(words) > 0 {
			fmt.Fprint(p.w, " ")
		}
		fmt.Fprint(p.w, "*")
	} else if a.Size != nil {
		if len(words) > 0 {
			fmt.Fprint(p.w, " ")
		}
		p.printExpr(a.Size)
	}
	fmt.Fprint(p.w, "]")
}

func (p *Printer) printFuncSuffix(f *FuncSuffix) {
	fmt.Fprint(p.w, "(")
	if len(f.Idents) > 0 {
		fmt.Fprint(p.w, strings.Join(f.Idents, ", "))
	} else {
		for i, param := range f.Params {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printParamDecl(param)
		}
		if f.Variadic {
			if len(f.Params) > 0 {
				fmt.Fprint(p.w, ", ")
			}
			fmt.Fprint(p.w, "...")
		}
	}
	fmt.Fprint(p.w, ")")
}

func (p *Printer) printParamDecl(pd *ParamDecl) {
	p.printDeclSpecs(pd.Spec)
	if pd.Decl != nil {
		if !pd.Spec.Empty() {
			fmt.Fprint(p.w, " ")
		}
		p.printDeclarator(pd.Decl)
	}
}

func (p *Printer) printBlock(b *Block) {
	p.writeIndent()
	fmt.Fprintln(p.w, "{")
	p.indent++
	for _, stmt := range b.Items {
		p.printStmt(stmt)
	}
	p.indent--
	p.writeIndent()
	fmt.Fprintln(p.w, "}")
}

func (p *Printer) printStmt(stmt Stmt) {
	// a nested block un-indents itself so its braces sit at the
	// enclosing statement's level
	if b, ok := stmt.(*Block); ok {
		p.indent--
		p.printBlock(b)
		p.indent++
		return
	}
	p.writeIndent()
	switch s := stmt.(type) {
	case *Return:
		fmt.Fprint(p.w, "return")
		if s.Expr != nil {
			fmt.Fprint(p.w, " ")
			p.printExpr(s.Expr)
		}
		fmt.Fprintln(p.w, ";")
	case *Computation:
		if s.Expr != nil {
			p.printExpr(s.Expr)
		}
		fmt.Fprintln(p.w, ";")
	case *If:
		fmt.Fprint(p.w, "if (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.indent++
		p.printStmt(s.Then)
		p.indent--
		if s.Else != nil {
			p.writeIndent()
			fmt.Fprintln(p.w, "else")
			p.indent++
			p.printStmt(s.Else)
			p.indent--
		}
	case *While:
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.indent++
		p.printStmt(s.Body)
		p.indent--
	case *DoWhile:
		fmt.Fprintln(p.w, "do")
		p.indent++
		p.printStmt(s.Body)
		p.indent--
		p.writeIndent()
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ");")
	case *For:
		fmt.Fprint(p.w, "for (")
		if s.InitDecl != nil {
			p.printDeclarationBody(s.InitDecl)
		} else if s.Init != nil {
			p.printExpr(s.Init)
		}
		fmt.Fprint(p.w, "; ")
		if s.Cond != nil {
			p.printExpr(s.Cond)
		}
		fmt.Fprint(p.w, "; ")
		if s.Step != nil {
			p.printExpr(s.Step)
		}
		fmt.Fprintln(p.w, ")")
		p.indent++
		p.printStmt(s.Body)
		p.indent--
	case *Break:
		fmt.Fprintln(p.w, "break;")
	case *Continue:
		fmt.Fprintln(p.w, "continue;")
	case *Switch:
		fmt.Fprint(p.w, "switch (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.indent++
		p.printStmt(s.Body)
		p.indent--
	case *Goto:
		fmt.Fprintf(p.w, "goto %s;\n", s.Label)
	case *Label:
		switch {
		case s.Default:
			fmt.Fprintln(p.w, "default:")
		case s.Case != nil:
			fmt.Fprint(p.w, "case ")
			p.printExpr(s.Case)
			fmt.Fprintln(p.w, ":")
		default:
			fmt.Fprintf(p.w, "%s:\n", s.Name)
		}
		p.printStmt(s.Stmt)
	case *DeclStmt:
		p.printDeclaration(s.Decl)
	case *StaticAssert:
		p.printStaticAssert(s)
	default:
		fmt.Fprintf(p.w, "/* unknown stmt %T */;\n", stmt)
	}
}

func (p *Printer) printExpr(expr Expr) {
	switch e := expr.(type) {
	case *Constant:
		if e.Text != "" {
			fmt.Fprint(p.w, e.Text)
		} else {
			fmt.Fprintf(p.w, "%d", e.Value)
		}
	case *FloatLit:
		fmt.Fprint(p.w, e.Text)
	case *StringLit:
		fmt.Fprintf(p.w, "\"%s\"", e.Value)
	case *CharLit:
		fmt.Fprintf(p.w, "'%s'", e.Value)
	case *Variable:
		fmt.Fprint(p.w, e.Name)
	case *Unary:
		p.printUnary(e)
	case *Binary:
		p.printBinary(e)
	case *Assign:
		p.printExpr(e.Left)
		fmt.Fprintf(p.w, " %s ", e.Op.String())
		p.printExpr(e.Right)
	case *Comma:
		p.printExpr(e.Left)
		fmt.Fprint(p.w, ", ")
		p.printExpr(e.Right)
	case *Paren:
		fmt.Fprint(p.w, "(")
		p.printExpr(e.Expr)
		fmt.Fprint(p.w, ")")
	case *Conditional:
		p.printExpr(e.Cond)
		fmt.Fprint(p.w, " ? ")
		p.printExpr(e.Then)
		fmt.Fprint(p.w, " : ")
		p.printExpr(e.Else)
	case *Call:
		p.printExpr(e.Func)
		fmt.Fprint(p.w, "(")
		for i, arg := range e.Args {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpr(arg)
		}
		fmt.Fprint(p.w, ")")
	case *Index:
		p.printExpr(e.Array)
		fmt.Fprint(p.w, "[")
		p.printExpr(e.Index)
		fmt.Fprint(p.w, "]")
	case *Member:
		p.printExpr(e.Expr)
		if e.IsArrow {
			fmt.Fprint(p.w, "->")
		} else {
			fmt.Fprint(p.w, ".")
		}
		fmt.Fprint(p.w, e.Name)
	case *SizeofExpr:
		fmt.Fprint(p.w, "sizeof ")
		p.printExpr(e.Expr)
	case *SizeofType:
		fmt.Fprint(p.w, "sizeof(")
		p.printTypeName(e.Type)
		fmt.Fprint(p.w, ")")
	case *AlignofExpr:
		fmt.Fprint(p.w, "_Alignof ")
		p.printExpr(e.Expr)
	case *AlignofType:
		fmt.Fprint(p.w, "_Alignof(")
		p.printTypeName(e.Type)
		fmt.Fprint(p.w, ")")
	case *Cast:
		fmt.Fprint(p.w, "(")
		p.printTypeName(e.Type)
		fmt.Fprint(p.w, ")")
		p.printExpr(e.Expr)
	case *CompoundLit:
		fmt.Fprint(p.w, "(")
		p.printTypeName(e.Type)
		fmt.Fprint(p.w, ")")
		p.printExpr(e.Init)
	case *InitList:
		fmt.Fprint(p.w, "{")
		for i, item := range e.Items {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpr(item)
		}
		fmt.Fprint(p.w, "}")
	default:
		fmt.Fprintf(p.w, "/* unknown expr %T */", expr)
	}
}

func (p *Printer) printUnary(u *Unary) {
	switch u.Op {
	case OpNeg:
		fmt.Fprint(p.w, "-")
		p.printExpr(u.Expr)
	case OpNot:
		fmt.Fprint(p.w, "!")
		p.printExpr(u.Expr)
	case OpBitNot:
		fmt.Fprint(p.w, "~")
		p.printExpr(u.Expr)
	case OpPlus:
		fmt.Fprint(p.w, "+")
		p.printExpr(u.Expr)
	case OpAddrOf:
		fmt.Fprint(p.w, "&")
		p.printExpr(u.Expr)
	case OpDeref:
		fmt.Fprint(p.w, "*")
		p.printExpr(u.Expr)
	case OpPreInc:
		fmt.Fprint(p.w, "++")
		p.printExpr(u.Expr)
	case OpPreDec:
		fmt.Fprint(p.w, "--")
		p.printExpr(u.Expr)
	case OpPostInc:
		p.printExpr(u.Expr)
		fmt.Fprint(p.w, "++")
	case OpPostDec:
		p.printExpr(u.Expr)
		fmt.Fprint(p.w, "--")
	default:
		fmt.Fprintf(p.w, "/* unknown unary op %d */", u.Op)
		p.printExpr(u.Expr)
	}
}

func (p *Printer) printBinary(b *Binary) {
	p.printExpr(b.Left)
	fmt.Fprintf(p.w, " %s ", b.Op.String())
	p.printExpr(b.Right)
}
