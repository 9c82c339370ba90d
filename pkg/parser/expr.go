package parser

import (
	"strconv"
	"strings"

	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/diag"
	"github.com/jcrawley/hazel-cc/pkg/lexer"
)

var assignOps = map[lexer.TokenType]ast.AssignOp{
	lexer.TokenAssign:        ast.OpAssign,
	lexer.TokenPlusAssign:    ast.OpAddAssign,
	lexer.TokenMinusAssign:   ast.OpSubAssign,
	lexer.TokenStarAssign:    ast.OpMulAssign,
	lexer.TokenSlashAssign:   ast.OpDivAssign,
	lexer.TokenPercentAssign: ast.OpModAssign,
	lexer.TokenAndAssign:     ast.OpAndAssign,
	lexer.TokenOrAssign:      ast.OpOrAssign,
	lexer.TokenXorAssign:     ast.OpXorAssign,
	lexer.TokenShlAssign:     ast.OpShlAssign,
	lexer.TokenShrAssign:     ast.OpShrAssign,
}

var (
	logicalOrOps  = map[lexer.TokenType]ast.BinaryOp{lexer.TokenOr: ast.OpOr}
	logicalAndOps = map[lexer.TokenType]ast.BinaryOp{lexer.TokenAnd: ast.OpAnd}
	bitOrOps      = map[lexer.TokenType]ast.BinaryOp{lexer.TokenPipe: ast.OpBitOr}
	bitXorOps     = map[lexer.TokenType]ast.BinaryOp{lexer.TokenCaret: ast.OpBitXor}
	bitAndOps     = map[lexer.TokenType]ast.BinaryOp{lexer.TokenAmpersand: ast.OpBitAnd}

	equalityOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenEq: ast.OpEq,
		lexer.TokenNe: ast.OpNe,
	}
	relationalOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenLt: ast.OpLt,
		lexer.TokenLe: ast.OpLe,
		lexer.TokenGt: ast.OpGt,
		lexer.TokenGe: ast.OpGe,
	}
	shiftOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenShl: ast.OpShl,
		lexer.TokenShr: ast.OpShr,
	}
	additiveOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenPlus:  ast.OpAdd,
		lexer.TokenMinus: ast.OpSub,
	}
	multiplicativeOps = map[lexer.TokenType]ast.BinaryOp{
		lexer.TokenStar:    ast.OpMul,
		lexer.TokenSlash:   ast.OpDiv,
		lexer.TokenPercent: ast.OpMod,
	}
)

var prefixOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.TokenMinus:     ast.OpNeg,
	lexer.TokenNot:       ast.OpNot,
	lexer.TokenTilde:     ast.OpBitNot,
	lexer.TokenPlus:      ast.OpPlus,
	lexer.TokenAmpersand: ast.OpAddrOf,
	lexer.TokenStar:      ast.OpDeref,
	lexer.TokenIncrement: ast.OpPreInc,
	lexer.TokenDecrement: ast.OpPreDec,
}

// parseExpr parses a full expression at comma precedence.
func (p *parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.cur.eat(lexer.TokenComma); !ok {
			return left, nil
		}
		right, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		left = p.alloc.Comma(left.Pos(), left, right)
	}
}

// parseAssign parses at assignment precedence; assignment operators
// associate to the right.
func (p *parser) parseAssign() (ast.Expr, error) {
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	op, ok := assignOps[p.cur.peek().Type]
	if !ok {
		return left, nil
	}
	p.cur.advance()
	right, err := p.parseAssign()
	if err != nil {
		return nil, err
	}
	return p.alloc.Assign(left.Pos(), op, left, right), nil
}

// parseConditional parses the ternary operator; the middle branch is a
// full expression, the tail stays at conditional precedence.
func (p *parser) parseConditional() (ast.Expr, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if _, ok := p.cur.eat(lexer.TokenQuestion); !ok {
		return cond, nil
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	els, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	return p.alloc.Conditional(cond.Pos(), cond, then, els), nil
}

// binaryTier parses one left-associative precedence level: operands
// come from next, operators from ops.
func (p *parser) binaryTier(ops map[lexer.TokenType]ast.BinaryOp, next func() (ast.Expr, error)) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.cur.peek().Type]
		if !ok {
			return left, nil
		}
		p.cur.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = p.alloc.Binary(left.Pos(), op, left, right)
	}
}

func (p *parser) parseLogicalOr() (ast.Expr, error) {
	return p.binaryTier(logicalOrOps, p.parseLogicalAnd)
}

func (p *parser) parseLogicalAnd() (ast.Expr, error) {
	return p.binaryTier(logicalAndOps, p.parseBitOr)
}

func (p *parser) parseBitOr() (ast.Expr, error) {
	return p.binaryTier(bitOrOps, p.parseBitXor)
}

func (p *parser) parseBitXor() (ast.Expr, error) {
	return p.binaryTier(bitXorOps, p.parseBitAnd)
}

func (p *parser) parseBitAnd() (ast.Expr, error) {
	return p.binaryTier(bitAndOps, p.parseEquality)
}

func (p *parser) parseEquality() (ast.Expr, error) {
	return p.binaryTier(equalityOps, p.parseRelational)
}

func (p *parser) parseRelational() (ast.Expr, error) {
	return p.binaryTier(relationalOps, p.parseShift)
}

func (p *parser) parseShift() (ast.Expr, error) {
	return p.binaryTier(shiftOps, p.parseAdditive)
}

func (p *parser) parseAdditive() (ast.Expr, error) {
	return p.binaryTier(additiveOps, p.parseMultiplicative)
}

func (p *parser) parseMultiplicative() (ast.Expr, error) {
	return p.binaryTier(multiplicativeOps, p.parseUnary)
}

// parseUnary parses prefix operators, the sizeof and _Alignof forms,
// and casts. A parenthesized type name followed by a brace is not a
// cast; it is undone here and reparsed as a compound literal by the
// postfix rule.
func (p *parser) parseUnary() (ast.Expr, error) {
	t := p.cur.peek()
	if op, ok := prefixOps[t.Type]; ok {
		_, pos := p.cur.advance()
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.alloc.Unary(pos, op, expr), nil
	}

	switch t.Type {
	case lexer.TokenSizeof:
		_, pos := p.cur.advance()
		if tn, ok := p.typeNameOperand(); ok {
			return p.alloc.SizeofType(pos, tn), nil
		}
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.alloc.SizeofExpr(pos, expr), nil

	case lexer.TokenAlignof:
		_, pos := p.cur.advance()
		if tn, ok := p.typeNameOperand(); ok {
			return p.alloc.AlignofType(pos, tn), nil
		}
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.alloc.AlignofExpr(pos, expr), nil

	case lexer.TokenLParen:
		depth := p.cur.depth()
		mark := p.sink.Len()
		pos := ast.Pos(p.cur.nextIndex())
		if tn, _, ok := p.tryParenTypeName(); ok {
			if p.cur.peek().Type != lexer.TokenLBrace {
				expr, err := p.parseUnary()
				if err != nil {
					return nil, err
				}
				return p.alloc.Cast(pos, tn, expr), nil
			}
			p.cur.rewind(depth)
			p.sink.Truncate(mark)
		}
	}
	return p.parsePostfix()
}

// typeNameOperand speculates on the ( type-name ) operand form shared
// by sizeof and _Alignof. A brace after the close parenthesis means
// the operand is really a compound literal, so the attempt is undone.
func (p *parser) typeNameOperand() (*ast.TypeName, bool) {
	depth := p.cur.depth()
	mark := p.sink.Len()
	tn, _, ok := p.tryParenTypeName()
	if !ok {
		return nil, false
	}
	if p.cur.peek().Type == lexer.TokenLBrace {
		p.cur.rewind(depth)
		p.sink.Truncate(mark)
		return nil, false
	}
	return tn, true
}

// parsePostfix parses a primary or compound literal followed by any
// chain of call, index, member, and increment suffixes.
func (p *parser) parsePostfix() (ast.Expr, error) {
	var left ast.Expr

	if p.cur.peek().Type == lexer.TokenLParen {
		depth := p.cur.depth()
		mark := p.sink.Len()
		pos := ast.Pos(p.cur.nextIndex())
		if tn, _, ok := p.tryParenTypeName(); ok {
			if p.cur.peek().Type == lexer.TokenLBrace {
				init, err := p.parseInitList()
				if err != nil {
					return nil, err
				}
				left = p.alloc.CompoundLit(pos, tn, init)
			} else {
				p.cur.rewind(depth)
				p.sink.Truncate(mark)
			}
		}
	}
	if left == nil {
		var err error
		left, err = p.parsePrimary()
		if err != nil {
			return nil, err
		}
	}

	for {
		switch p.cur.peek().Type {
		case lexer.TokenLParen:
			p.cur.advance()
			var args []ast.Expr
			if p.cur.peek().Type != lexer.TokenRParen {
				for {
					arg, err := p.parseAssign()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if _, ok := p.cur.eat(lexer.TokenComma); !ok {
						break
					}
				}
			}
			if _, err := p.cur.expect(lexer.TokenRParen); err != nil {
				return nil, err
			}
			left = p.alloc.Call(left.Pos(), left, args)

		case lexer.TokenLBracket:
			p.cur.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.cur.expect(lexer.TokenRBracket); err != nil {
				return nil, err
			}
			left = p.alloc.Index(left.Pos(), left, idx)

		case lexer.TokenDot, lexer.TokenArrow:
			arrow := p.cur.peek().Type == lexer.TokenArrow
			p.cur.advance()
			pos, err := p.cur.expect(lexer.TokenIdent)
			if err != nil {
				return nil, err
			}
			left = p.alloc.Member(left.Pos(), left, p.cur.at(pos).Literal, arrow)

		case lexer.TokenIncrement:
			p.cur.advance()
			left = p.alloc.Unary(left.Pos(), ast.OpPostInc, left)

		case lexer.TokenDecrement:
			p.cur.advance()
			left = p.alloc.Unary(left.Pos(), ast.OpPostDec, left)

		default:
			return left, nil
		}
	}
}

// parsePrimary parses literals, identifiers, and parenthesized
// expressions. Adjacent string literals concatenate into one node.
func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.cur.peek()
	switch t.Type {
	case lexer.TokenInt:
		_, pos := p.cur.advance()
		return p.alloc.Constant(pos, decodeInt(t.Literal), t.Literal), nil

	case lexer.TokenFloatLit:
		_, pos := p.cur.advance()
		return p.alloc.FloatLit(pos, t.Literal), nil

	case lexer.TokenCharLit:
		_, pos := p.cur.advance()
		return p.alloc.CharLit(pos, t.Literal), nil

	case lexer.TokenString:
		_, pos := p.cur.advance()
		text := t.Literal
		for p.cur.peek().Type == lexer.TokenString {
			next, _ := p.cur.advance()
			text += next.Literal
		}
		return p.alloc.StringLit(pos, text), nil

	case lexer.TokenIdent:
		_, pos := p.cur.advance()
		return p.alloc.Variable(pos, t.Literal), nil

	case lexer.TokenLParen:
		_, pos := p.cur.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.cur.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return p.alloc.Paren(pos, expr), nil
	}
	return nil, p.report(diag.ExpectedExpr, "")
}

// decodeInt evaluates an integer literal in any C base, ignoring the
// u/l suffixes. Values beyond 64 bits decode as zero; the node's Text
// keeps the spelling either way.
func decodeInt(text string) int64 {
	s := strings.TrimRight(text, "uUlL")
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return int64(v)
	}
	return 0
}
