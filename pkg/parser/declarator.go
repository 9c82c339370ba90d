package parser

import (
	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/diag"
	"github.com/jcrawley/hazel-cc/pkg/lexer"
)

// declMode selects which declarator forms a context accepts.
type declMode int

const (
	declNamed    declMode = iota // name required
	declAbstract                 // name forbidden
	declParam                    // name optional
)

// parseDeclarator parses a pointer chain, a base (an identifier or a
// parenthesized inner declarator), and trailing array and function
// suffixes. The base may be empty in abstract and parameter modes.
func (p *parser) parseDeclarator(mode declMode) (*ast.Declarator, error) {
	d := ast.Declarator{Start: ast.Pos(p.cur.nextIndex()), NamePos: ast.NoPos}

	for {
		star, ok := p.cur.eat(lexer.TokenStar)
		if !ok {
			break
		}
		d.Pointers = append(d.Pointers, ast.Pointer{Star: star, Quals: p.parseQualifierRun()})
	}

	switch t := p.cur.peek(); {
	case t.Type == lexer.TokenIdent && mode != declAbstract:
		_, pos := p.cur.advance()
		d.Name, d.NamePos = t.Literal, pos

	case t.Type == lexer.TokenLParen && p.nestedDeclaratorAhead():
		p.cur.advance()
		inner, err := p.parseDeclarator(mode)
		if err != nil {
			return nil, err
		}
		if _, err := p.cur.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		d.Inner = inner

	default:
		if mode == declNamed {
			return nil, p.report(diag.ExpectedToken, "IDENT")
		}
	}

	for {
		switch p.cur.peek().Type {
		case lexer.TokenLBracket:
			s, err := p.parseArraySuffix()
			if err != nil {
				return nil, err
			}
			d.Suffixes = append(d.Suffixes, s)
		case lexer.TokenLParen:
			s, err := p.parseFuncSuffix()
			if err != nil {
				return nil, err
			}
			d.Suffixes = append(d.Suffixes, s)
		default:
			return p.alloc.Declarator(d), nil
		}
	}
}

// nestedDeclaratorAhead disambiguates a parenthesis in base position:
// it opens a nested declarator unless what follows reads as a
// parameter list (a specifier or an immediate close).
func (p *parser) nestedDeclaratorAhead() bool {
	t := p.cur.peek2()
	if t.Type == lexer.TokenRParen {
		return false
	}
	return !p.startsDeclSpecs(t)
}

// parseQualifierRun consumes consecutive type qualifiers into a fresh
// Qualifiers value, warning on repeats.
func (p *parser) parseQualifierRun() ast.Qualifiers {
	q := ast.NewQualifiers()
	for {
		switch p.cur.peek().Type {
		case lexer.TokenConst:
			p.fillSlot(&q.Const)
		case lexer.TokenVolatile:
			p.fillSlot(&q.Volatile)
		case lexer.TokenRestrict:
			p.fillSlot(&q.Restrict)
		case lexer.TokenAtomic:
			p.fillSlot(&q.Atomic)
		default:
			return q
		}
	}
}

// parseArraySuffix parses one [ ... ] decoration. The size forms are
// empty, a lone *, and an assignment expression; static and qualifiers
// may precede the size in either order.
func (p *parser) parseArraySuffix() (*ast.ArraySuffix, error) {
	_, start := p.cur.advance()

	staticPos := ast.NoPos
	if pos, ok := p.cur.eat(lexer.TokenStatic); ok {
		staticPos = pos
	}
	quals := p.parseQualifierRun()
	if !staticPos.IsValid() {
		if pos, ok := p.cur.eat(lexer.TokenStatic); ok {
			staticPos = pos
		}
	}

	if star, ok := p.cur.eat(lexer.TokenStar); ok {
		if p.cur.peek().Type == lexer.TokenRBracket {
			p.cur.advance()
			return p.alloc.ArraySuffix(start, staticPos, star, quals, nil), nil
		}
		// The star begins a size expression after all.
		p.cur.retreat()
	}

	if _, ok := p.cur.eat(lexer.TokenRBracket); ok {
		return p.alloc.ArraySuffix(start, staticPos, ast.NoPos, quals, nil), nil
	}

	size, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenRBracket); err != nil {
		return nil, err
	}
	return p.alloc.ArraySuffix(start, staticPos, ast.NoPos, quals, size), nil
}

// parseFuncSuffix parses one parameter list decoration: empty,
// prototyped with an optional trailing ellipsis, or a K&R identifier
// list.
func (p *parser) parseFuncSuffix() (*ast.FuncSuffix, error) {
	_, start := p.cur.advance()

	if _, ok := p.cur.eat(lexer.TokenRParen); ok {
		return p.alloc.FuncSuffix(start, nil, false, nil), nil
	}

	if t := p.cur.peek(); t.Type == lexer.TokenIdent && !p.typedefs[t.Literal] {
		var idents []string
		for {
			pos, err := p.cur.expect(lexer.TokenIdent)
			if err != nil {
				return nil, err
			}
			idents = append(idents, p.cur.at(pos).Literal)
			if _, ok := p.cur.eat(lexer.TokenComma); !ok {
				break
			}
		}
		if _, err := p.cur.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return p.alloc.FuncSuffix(start, nil, false, idents), nil
	}

	var params []*ast.ParamDecl
	variadic := false
	for {
		param, err := p.parseParamDecl()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if _, ok := p.cur.eat(lexer.TokenComma); !ok {
			break
		}
		if _, ok := p.cur.eat(lexer.TokenEllipsis); ok {
			variadic = true
			break
		}
	}
	if _, err := p.cur.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return p.alloc.FuncSuffix(start, params, variadic, nil), nil
}

// parseParamDecl parses one parameter: specifiers plus an optional
// declarator, which may be abstract.
func (p *parser) parseParamDecl() (*ast.ParamDecl, error) {
	start := ast.Pos(p.cur.nextIndex())
	specsV, err := p.parseDeclSpecs()
	if err != nil {
		return nil, err
	}
	if specsV.Empty() {
		return nil, p.report(diag.ExpectedDecl, "")
	}
	specs := p.alloc.DeclSpecs(specsV)

	var decl *ast.Declarator
	switch p.cur.peek().Type {
	case lexer.TokenComma, lexer.TokenRParen:
	default:
		decl, err = p.parseDeclarator(declParam)
		if err != nil {
			return nil, err
		}
	}
	return p.alloc.ParamDecl(start, specs, decl), nil
}

// parseInitializer parses an assignment expression or a braced
// initializer list; designators are not recognized.
func (p *parser) parseInitializer() (ast.Expr, error) {
	if p.cur.peek().Type != lexer.TokenLBrace {
		return p.parseAssign()
	}
	l, err := p.parseInitList()
	if err != nil {
		return nil, err
	}
	return l, nil
}

// parseInitList parses { initializers }. Lists nest and allow one
// trailing comma.
func (p *parser) parseInitList() (*ast.InitList, error) {
	_, lbrace := p.cur.advance()
	var items []ast.Expr
	for p.cur.peek().Type != lexer.TokenRBrace {
		item, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if _, ok := p.cur.eat(lexer.TokenComma); !ok {
			break
		}
	}
	if _, err := p.cur.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return p.alloc.InitList(lbrace, items), nil
}
