package parser

import (
	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/lexer"
)

// parseBlock parses { block-items }. When an item fails the block
// closes early: if the failure stopped right at the closing brace the
// block still completes normally, otherwise the failure propagates.
func (p *parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.cur.expect(lexer.TokenLBrace)
	if err != nil {
		return nil, err
	}
	var items []ast.Stmt
	for {
		t := p.cur.peek()
		if t.Type == lexer.TokenRBrace || t.Type == lexer.TokenEOF {
			break
		}
		item, err := p.parseBlockItem()
		if err != nil {
			if rbrace, ok := p.cur.eat(lexer.TokenRBrace); ok {
				return p.alloc.Block(lbrace, items, rbrace), nil
			}
			return nil, err
		}
		items = append(items, item)
	}
	rbrace, err := p.cur.expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	return p.alloc.Block(lbrace, items, rbrace), nil
}

// parseBlockItem parses one statement or declaration inside a block.
// A leading identifier followed by a colon is always a label, even
// when the identifier names a typedef.
func (p *parser) parseBlockItem() (ast.Stmt, error) {
	t := p.cur.peek()
	if t.Type == lexer.TokenIdent && p.cur.peek2().Type == lexer.TokenColon {
		return p.parseStatement()
	}
	if t.Type == lexer.TokenStaticAssert {
		sa, err := p.parseStaticAssert()
		if err != nil {
			return nil, err
		}
		return sa, nil
	}
	if p.startsDeclSpecs(t) {
		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		return p.alloc.DeclStmt(d), nil
	}
	return p.parseStatement()
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	switch p.cur.peek().Type {
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenDo:
		return p.parseDoWhile()
	case lexer.TokenFor:
		return p.parseFor()
	case lexer.TokenSwitch:
		return p.parseSwitch()
	case lexer.TokenGoto:
		return p.parseGoto()
	case lexer.TokenCase:
		return p.parseCaseLabel()
	case lexer.TokenDefault:
		return p.parseDefaultLabel()
	case lexer.TokenBreak:
		_, pos := p.cur.advance()
		if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
			return nil, err
		}
		return p.alloc.Break(pos), nil
	case lexer.TokenContinue:
		_, pos := p.cur.advance()
		if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
			return nil, err
		}
		return p.alloc.Continue(pos), nil
	case lexer.TokenLBrace:
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return b, nil
	case lexer.TokenSemicolon:
		_, pos := p.cur.advance()
		return p.alloc.Computation(pos, nil), nil
	case lexer.TokenIdent:
		if p.cur.peek2().Type == lexer.TokenColon {
			return p.parseLabel()
		}
		return p.parseExprStatement()
	default:
		return p.parseExprStatement()
	}
}

func (p *parser) parseReturn() (ast.Stmt, error) {
	_, start := p.cur.advance()
	var expr ast.Expr
	if p.cur.peek().Type != lexer.TokenSemicolon {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr = e
	}
	if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return p.alloc.Return(start, expr), nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	_, start := p.cur.advance()
	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if _, ok := p.cur.eat(lexer.TokenElse); ok {
		els, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return p.alloc.If(start, cond, then, els), nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	_, start := p.cur.advance()
	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return p.alloc.While(start, cond, body), nil
}

func (p *parser) parseDoWhile() (ast.Stmt, error) {
	_, start := p.cur.advance()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return p.alloc.DoWhile(start, body, cond), nil
}

// parseFor parses all three header slots, each possibly empty. The
// first slot may hold a declaration, which consumes its own semicolon.
func (p *parser) parseFor() (ast.Stmt, error) {
	_, start := p.cur.advance()
	if _, err := p.cur.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}

	var initDecl *ast.Declaration
	var init ast.Expr
	switch {
	case p.cur.peek().Type == lexer.TokenSemicolon:
		p.cur.advance()
	case p.startsDeclSpecs(p.cur.peek()):
		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		initDecl = d
	default:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		init = e
		if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
			return nil, err
		}
	}

	var cond ast.Expr
	if p.cur.peek().Type != lexer.TokenSemicolon {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		cond = e
	}
	if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	var step ast.Expr
	if p.cur.peek().Type != lexer.TokenRParen {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		step = e
	}
	if _, err := p.cur.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return p.alloc.For(start, initDecl, init, cond, step, body), nil
}

func (p *parser) parseSwitch() (ast.Stmt, error) {
	_, start := p.cur.advance()
	cond, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return p.alloc.Switch(start, cond, body), nil
}

func (p *parser) parseGoto() (ast.Stmt, error) {
	_, start := p.cur.advance()
	pos, err := p.cur.expect(lexer.TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return p.alloc.Goto(start, p.cur.at(pos).Literal, pos), nil
}

// parseLabel parses name : statement.
func (p *parser) parseLabel() (ast.Stmt, error) {
	t, start := p.cur.advance()
	if _, err := p.cur.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return p.alloc.Label(start, t.Literal, nil, false, stmt), nil
}

// parseCaseLabel parses case constant-expression : statement.
func (p *parser) parseCaseLabel() (ast.Stmt, error) {
	_, start := p.cur.advance()
	expr, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return p.alloc.Label(start, "", expr, false, stmt), nil
}

// parseDefaultLabel parses default : statement.
func (p *parser) parseDefaultLabel() (ast.Stmt, error) {
	_, start := p.cur.advance()
	if _, err := p.cur.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return p.alloc.Label(start, "", nil, true, stmt), nil
}

// parseExprStatement parses expression ; as a computation.
func (p *parser) parseExprStatement() (ast.Stmt, error) {
	start := ast.Pos(p.cur.nextIndex())
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return p.alloc.Computation(start, expr), nil
}

// parseParenExpr parses ( expression ) as used by control statements.
func (p *parser) parseParenExpr() (ast.Expr, error) {
	if _, err := p.cur.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return e, nil
}
