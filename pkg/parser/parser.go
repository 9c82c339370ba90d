// Package parser implements a fault-tolerant recursive descent parser
// for C11 translation units.
//
// The parser works at declaration granularity with no token-level
// resynchronization: the first malformed external declaration stops
// collection, and the tree built so far is returned together with the
// diagnostics raised up to that point. Grammar rules communicate
// failure through ordinary error returns; only allocation-budget
// exhaustion unwinds the whole parse, surfacing as arena.ErrExhausted
// from the entry points.
//
// Every node, the token sequence, and the diagnostics list live in one
// arena owned by the returned Result. Release frees them all at once
// and must be called exactly once.
package parser

import (
	"errors"

	"github.com/jcrawley/hazel-cc/pkg/arena"
	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/diag"
	"github.com/jcrawley/hazel-cc/pkg/lexer"
)

// errParse is the recoverable parse failure. Every rule that returns
// it has already pushed a diagnostic describing what went wrong.
var errParse = errors.New("parse error")

// errNotADecl reports that a declaration attempt found no specifier at
// all. The cursor is untouched and no diagnostic is pushed; the caller
// decides whether something else can stand at this position.
var errNotADecl = errors.New("not a declaration")

type parser struct {
	cur      *cursor
	sink     *diag.Sink
	alloc    *allocator
	typedefs map[string]bool
}

// Result carries everything one parse produced: the root node (always
// present, possibly partial), the token sequence its positions index,
// and the diagnostics in raise order. All of it lives in one arena;
// Release frees the lot and must be called exactly once, after which
// every node and position reference is invalid.
type Result struct {
	Program     *ast.Program
	Tokens      []lexer.Token
	Diagnostics []diag.Diagnostic

	budget *arena.Budget
}

// Release frees the arena backing the result. Releasing twice panics.
func (r *Result) Release() {
	r.budget.Release()
}

// Parse consumes a token sequence and returns the parse result. The
// sequence should end with an EOF token; one is appended if missing.
// The returned error is non-nil only for allocation failure.
func Parse(toks []lexer.Token) (*Result, error) {
	return parse(toks, 0)
}

// ParseSource tokenizes src and parses it.
func ParseSource(src string) (*Result, error) {
	return Parse(lexer.Tokenize(src))
}

// ParseWithLimit is Parse with the arena capped at limit elements.
// Exhausting the cap abandons the parse and returns
// arena.ErrExhausted; no partial tree survives.
func ParseWithLimit(toks []lexer.Token, limit int) (*Result, error) {
	return parse(toks, limit)
}

func parse(toks []lexer.Token, limit int) (res *Result, err error) {
	budget := arena.NewBudget(limit)
	alloc := newAllocator(budget)

	defer func() {
		if r := recover(); r != nil {
			if r == arena.ErrExhausted {
				budget.Release()
				res, err = nil, arena.ErrExhausted
				return
			}
			panic(r)
		}
	}()

	if n := len(toks); n == 0 || toks[n-1].Type != lexer.TokenEOF {
		line, col := 1, 1
		if n > 0 {
			line, col = toks[n-1].Line, toks[n-1].Column
		}
		toks = append(toks[:n:n], lexer.Token{Type: lexer.TokenEOF, Line: line, Column: col})
	}
	seq := alloc.Tokens(toks)

	sink := diag.NewSink()
	p := &parser{
		cur:      newCursor(seq, sink),
		sink:     sink,
		alloc:    alloc,
		typedefs: make(map[string]bool),
	}
	prog := p.parseProgram()

	return &Result{
		Program:     prog,
		Tokens:      seq,
		Diagnostics: alloc.Diagnostics(sink.All()),
		budget:      budget,
	}, nil
}

// parseProgram consumes external declarations until the first failure
// or end of input. On failure nothing is skipped: the loop stops, and
// if tokens remain a missing-declaration diagnostic is pushed unless
// the failing rule already diagnosed that exact position.
func (p *parser) parseProgram() *ast.Program {
	var defs []ast.Definition
	for p.cur.peek().Type != lexer.TokenEOF {
		def, err := p.parseExternalDecl()
		if err != nil {
			break
		}
		defs = append(defs, def)
	}
	if t := p.cur.peek(); t.Type != lexer.TokenEOF {
		i := ast.Pos(p.cur.nextIndex())
		if last, ok := p.sink.Last(); !ok || last.Pos != i {
			p.sink.Add(diag.Diagnostic{
				Severity: diag.Error,
				Kind:     diag.ExpectedDecl,
				Pos:      i,
				Line:     t.Line,
				Col:      t.Column,
				Found:    t.Type.String(),
			})
		}
	}
	return p.alloc.Program(defs, ast.Pos(len(p.cur.toks)-1))
}

// parseExternalDecl parses one file-scope construct: a declaration, a
// static assertion, or a function definition (prototyped or K&R).
func (p *parser) parseExternalDecl() (ast.Definition, error) {
	if p.cur.peek().Type == lexer.TokenStaticAssert {
		return p.parseStaticAssert()
	}

	start := ast.Pos(p.cur.nextIndex())
	specsV, err := p.parseDeclSpecs()
	if err != nil {
		return nil, err
	}
	if specsV.Empty() {
		return nil, errNotADecl
	}
	specs := p.alloc.DeclSpecs(specsV)

	if _, ok := p.cur.eat(lexer.TokenSemicolon); ok {
		return p.alloc.Declaration(start, specs, nil), nil
	}

	decl, err := p.parseDeclarator(declNamed)
	if err != nil {
		return nil, err
	}

	switch {
	case p.cur.peek().Type == lexer.TokenLBrace:
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return p.alloc.FunDef(start, specs, decl, nil, body), nil

	case p.startsDeclSpecs(p.cur.peek()):
		// K&R parameter declarations between declarator and body.
		var krs []*ast.Declaration
		for p.startsDeclSpecs(p.cur.peek()) {
			d, err := p.parseDeclaration()
			if err != nil {
				return nil, err
			}
			krs = append(krs, d)
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return p.alloc.FunDef(start, specs, decl, krs, body), nil

	default:
		d, err := p.finishDeclaration(start, specs, decl)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// parseDeclaration parses one complete declaration including its
// semicolon. When no specifier is present it reports errNotADecl with
// the cursor untouched.
func (p *parser) parseDeclaration() (*ast.Declaration, error) {
	start := ast.Pos(p.cur.nextIndex())
	specsV, err := p.parseDeclSpecs()
	if err != nil {
		return nil, err
	}
	if specsV.Empty() {
		return nil, errNotADecl
	}
	specs := p.alloc.DeclSpecs(specsV)

	if _, ok := p.cur.eat(lexer.TokenSemicolon); ok {
		return p.alloc.Declaration(start, specs, nil), nil
	}
	first, err := p.parseDeclarator(declNamed)
	if err != nil {
		return nil, err
	}
	return p.finishDeclaration(start, specs, first)
}

// finishDeclaration parses the rest of a declaration whose specifiers
// and first declarator are already consumed: the optional initializer,
// further init-declarators, and the terminating semicolon.
func (p *parser) finishDeclaration(start ast.Pos, specs *ast.DeclSpecs, first *ast.Declarator) (*ast.Declaration, error) {
	var decls []ast.InitDeclarator

	id := ast.InitDeclarator{Decl: first}
	if _, ok := p.cur.eat(lexer.TokenAssign); ok {
		init, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		id.Init = init
	}
	decls = append(decls, id)

	for {
		if _, ok := p.cur.eat(lexer.TokenComma); !ok {
			break
		}
		d, err := p.parseDeclarator(declNamed)
		if err != nil {
			return nil, err
		}
		id := ast.InitDeclarator{Decl: d}
		if _, ok := p.cur.eat(lexer.TokenAssign); ok {
			init, err := p.parseInitializer()
			if err != nil {
				return nil, err
			}
			id.Init = init
		}
		decls = append(decls, id)
	}

	if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	node := p.alloc.Declaration(start, specs, decls)
	p.registerTypedefs(node)
	return node, nil
}

// registerTypedefs records the names a typedef declaration introduces
// so later specifier runs treat them as type names.
func (p *parser) registerTypedefs(d *ast.Declaration) {
	if !d.Spec.IsTypedef() {
		return
	}
	for _, id := range d.Decls {
		if name := id.Decl.DeclaredName(); name != "" {
			p.typedefs[name] = true
		}
	}
}

// parseStaticAssert parses _Static_assert ( expr , "msg" ) ;
func (p *parser) parseStaticAssert() (*ast.StaticAssert, error) {
	_, start := p.cur.advance()
	if _, err := p.cur.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenComma); err != nil {
		return nil, err
	}
	msgPos, err := p.cur.expect(lexer.TokenString)
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return p.alloc.StaticAssert(start, cond, p.cur.at(msgPos).Literal), nil
}

// startsDeclSpecs reports whether a token can open a declaration
// specifier run, consulting the typedef names seen so far.
func (p *parser) startsDeclSpecs(t lexer.Token) bool {
	switch t.Type {
	case lexer.TokenTypedef, lexer.TokenExtern, lexer.TokenStatic,
		lexer.TokenThreadLocal, lexer.TokenAuto, lexer.TokenRegister,
		lexer.TokenInline, lexer.TokenNoreturn,
		lexer.TokenConst, lexer.TokenVolatile, lexer.TokenRestrict, lexer.TokenAtomic,
		lexer.TokenVoid, lexer.TokenBool, lexer.TokenChar, lexer.TokenShort,
		lexer.TokenInt_, lexer.TokenLong, lexer.TokenFloat, lexer.TokenDouble,
		lexer.TokenSigned, lexer.TokenUnsigned, lexer.TokenComplex,
		lexer.TokenStruct, lexer.TokenUnion, lexer.TokenEnum:
		return true
	case lexer.TokenIdent:
		return p.typedefs[t.Literal]
	}
	return false
}

// report pushes an error diagnostic anchored at the next unconsumed
// token and returns the recoverable error. The token stays in place.
func (p *parser) report(kind diag.Kind, expected string) error {
	i := p.cur.nextIndex()
	t := p.cur.toks[i]
	p.sink.Add(diag.Diagnostic{
		Severity: diag.Error,
		Kind:     kind,
		Pos:      ast.Pos(i),
		Line:     t.Line,
		Col:      t.Column,
		Expected: expected,
		Found:    t.Type.String(),
	})
	return errParse
}

// warnDuplicate records a DuplicateQualifier warning for the repeated
// specifier token at pos.
func (p *parser) warnDuplicate(pos ast.Pos) {
	t := p.cur.at(pos)
	p.sink.Add(diag.Diagnostic{
		Severity: diag.Warning,
		Kind:     diag.DuplicateQualifier,
		Pos:      pos,
		Line:     t.Line,
		Col:      t.Column,
		Found:    t.Type.String(),
	})
}
