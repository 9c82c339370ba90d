package parser

import (
	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/diag"
	"github.com/jcrawley/hazel-cc/pkg/lexer"
)

// parseDeclSpecs accumulates one run of declaration specifiers:
// storage classes, function specifiers, qualifiers, and a type built
// up keyword by keyword. The run ends at the first token that cannot
// extend it, which stays unconsumed. An impossible type combination is
// diagnosed at the offending token, also left unconsumed.
func (p *parser) parseDeclSpecs() (ast.DeclSpecs, error) {
	specs := ast.NewDeclSpecs(ast.Pos(p.cur.nextIndex()))
	for {
		t := p.cur.peek()
		switch t.Type {
		case lexer.TokenTypedef:
			p.fillSlot(&specs.Typedef)
		case lexer.TokenExtern:
			p.fillSlot(&specs.Extern)
		case lexer.TokenStatic:
			p.fillSlot(&specs.Static)
		case lexer.TokenThreadLocal:
			p.fillSlot(&specs.ThreadLocal)
		case lexer.TokenAuto:
			p.fillSlot(&specs.Auto)
		case lexer.TokenRegister:
			p.fillSlot(&specs.Register)

		// Function specifiers may legally repeat; keep the first.
		case lexer.TokenInline:
			_, pos := p.cur.advance()
			if !specs.Inline.IsValid() {
				specs.Inline = pos
			}
		case lexer.TokenNoreturn:
			_, pos := p.cur.advance()
			if !specs.Noreturn.IsValid() {
				specs.Noreturn = pos
			}

		case lexer.TokenConst:
			p.fillSlot(&specs.Quals.Const)
		case lexer.TokenVolatile:
			p.fillSlot(&specs.Quals.Volatile)
		case lexer.TokenRestrict:
			p.fillSlot(&specs.Quals.Restrict)

		case lexer.TokenAtomic:
			// _Atomic( opens a type specifier, anything else is the
			// qualifier form.
			if p.cur.peek2().Type == lexer.TokenLParen {
				if specs.Type != nil {
					return specs, p.report(diag.InvalidTypeSpecifier, "")
				}
				ty, err := p.parseAtomicType()
				if err != nil {
					return specs, err
				}
				specs.Type = ty
			} else {
				p.fillSlot(&specs.Quals.Atomic)
			}

		case lexer.TokenStruct, lexer.TokenUnion:
			if specs.Type != nil {
				return specs, p.report(diag.InvalidTypeSpecifier, "")
			}
			ty, err := p.parseRecordType()
			if err != nil {
				return specs, err
			}
			specs.Type = ty

		case lexer.TokenEnum:
			if specs.Type != nil {
				return specs, p.report(diag.InvalidTypeSpecifier, "")
			}
			ty, err := p.parseEnumType()
			if err != nil {
				return specs, err
			}
			specs.Type = ty

		case lexer.TokenVoid, lexer.TokenBool, lexer.TokenChar, lexer.TokenShort,
			lexer.TokenInt_, lexer.TokenLong, lexer.TokenFloat, lexer.TokenDouble,
			lexer.TokenSigned, lexer.TokenUnsigned, lexer.TokenComplex:
			_, pos := p.cur.advance()
			ty, ok := p.mergeType(specs.Type, t.Type, pos)
			if !ok {
				p.cur.retreat()
				return specs, p.report(diag.InvalidTypeSpecifier, "")
			}
			specs.Type = ty

		case lexer.TokenIdent:
			// An identifier names a type only while no type has been
			// seen; afterwards it belongs to the declarator.
			if specs.Type == nil && p.typedefs[t.Literal] {
				_, pos := p.cur.advance()
				specs.Type = p.alloc.TypedefName(pos, t.Literal)
			} else {
				return specs, nil
			}

		default:
			return specs, nil
		}
	}
}

// fillSlot consumes the next keyword into a single-occurrence slot,
// keeping the first position and warning on repetition.
func (p *parser) fillSlot(slot *ast.Pos) {
	_, pos := p.cur.advance()
	if slot.IsValid() {
		p.warnDuplicate(pos)
		return
	}
	*slot = pos
}

// mergeType folds one more simple type keyword into the accumulated
// type. The second result is false when the combination is invalid.
func (p *parser) mergeType(cur ast.TypeSpec, kw lexer.TokenType, pos ast.Pos) (ast.TypeSpec, bool) {
	switch kw {
	case lexer.TokenVoid:
		if cur == nil {
			return p.alloc.VoidType(pos), true
		}

	case lexer.TokenBool:
		if cur == nil {
			return p.alloc.BoolType(pos), true
		}

	case lexer.TokenChar:
		switch c := cur.(type) {
		case nil:
			return p.alloc.CharType(pos, ast.NoPos, false), true
		case *ast.IntType:
			// A bare sign run becomes signed/unsigned char.
			if !c.IntPos.IsValid() {
				return p.alloc.CharType(pos, c.Sign, c.Unsigned), true
			}
		}

	case lexer.TokenShort:
		switch c := cur.(type) {
		case nil:
			return p.alloc.ShortType(pos, ast.NoPos, false, ast.NoPos), true
		case *ast.IntType:
			return p.alloc.ShortType(pos, c.Sign, c.Unsigned, c.IntPos), true
		}

	case lexer.TokenInt_:
		switch c := cur.(type) {
		case nil:
			return p.alloc.IntType(pos, ast.NoPos, false), true
		case *ast.IntType:
			if !c.IntPos.IsValid() {
				c.IntPos = pos
				return c, true
			}
		case *ast.ShortType:
			if !c.Int.IsValid() {
				c.Int = pos
				return c, true
			}
		case *ast.LongType:
			if !c.Int.IsValid() {
				c.Int = pos
				return c, true
			}
		}

	case lexer.TokenLong:
		switch c := cur.(type) {
		case nil:
			return p.alloc.LongType(pos, ast.NoPos, false, ast.NoPos, ast.NoPos), true
		case *ast.IntType:
			return p.alloc.LongType(pos, c.Sign, c.Unsigned, c.IntPos, ast.NoPos), true
		case *ast.LongType:
			if !c.LongLong.IsValid() {
				c.LongLong = pos
				return c, true
			}
		case *ast.DoubleType:
			if !c.Long.IsValid() {
				c.Long = pos
				return c, true
			}
		}

	case lexer.TokenFloat:
		if cur == nil {
			return p.alloc.FloatType(pos, ast.NoPos), true
		}

	case lexer.TokenDouble:
		switch c := cur.(type) {
		case nil:
			return p.alloc.DoubleType(pos, ast.NoPos, ast.NoPos), true
		case *ast.LongType:
			if !c.Sign.IsValid() && !c.Int.IsValid() && !c.LongLong.IsValid() {
				return p.alloc.DoubleType(pos, ast.NoPos, c.LongPos), true
			}
		}

	case lexer.TokenSigned, lexer.TokenUnsigned:
		uns := kw == lexer.TokenUnsigned
		switch c := cur.(type) {
		case nil:
			return p.alloc.IntType(ast.NoPos, pos, uns), true
		case *ast.CharType:
			if !c.Sign.IsValid() {
				c.Sign, c.Unsigned = pos, uns
				return c, true
			}
		case *ast.ShortType:
			if !c.Sign.IsValid() {
				c.Sign, c.Unsigned = pos, uns
				return c, true
			}
		case *ast.IntType:
			if !c.Sign.IsValid() {
				c.Sign, c.Unsigned = pos, uns
				return c, true
			}
		case *ast.LongType:
			if !c.Sign.IsValid() {
				c.Sign, c.Unsigned = pos, uns
				return c, true
			}
		}

	case lexer.TokenComplex:
		switch c := cur.(type) {
		case *ast.FloatType:
			if !c.Complex.IsValid() {
				c.Complex = pos
				return c, true
			}
		case *ast.DoubleType:
			if !c.Complex.IsValid() {
				c.Complex = pos
				return c, true
			}
		}
	}
	return cur, false
}

// parseRecordType parses a struct or union specifier: the keyword, an
// optional tag, and an optional member list. At least one of tag and
// body must be present.
func (p *parser) parseRecordType() (*ast.RecordType, error) {
	kw, kwPos := p.cur.advance()
	union := kw.Type == lexer.TokenUnion

	name, namePos := "", ast.NoPos
	if t := p.cur.peek(); t.Type == lexer.TokenIdent {
		_, namePos = p.cur.advance()
		name = t.Literal
	}

	if _, ok := p.cur.eat(lexer.TokenLBrace); ok {
		var members []ast.RecordMember
		for {
			t := p.cur.peek()
			if t.Type == lexer.TokenRBrace || t.Type == lexer.TokenEOF {
				break
			}
			m, err := p.parseRecordMember()
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		if _, err := p.cur.expect(lexer.TokenRBrace); err != nil {
			return nil, err
		}
		return p.alloc.RecordType(kwPos, union, name, namePos, true, members), nil
	}

	if !namePos.IsValid() {
		return nil, p.report(diag.ExpectedToken, "IDENT")
	}
	return p.alloc.RecordType(kwPos, union, name, namePos, false, nil), nil
}

// parseRecordMember parses one member declaration: a static assertion,
// or specifier-qualifiers followed by field declarators with optional
// bitfield widths. A lone semicolon after the specifiers declares an
// anonymous member.
func (p *parser) parseRecordMember() (ast.RecordMember, error) {
	if p.cur.peek().Type == lexer.TokenStaticAssert {
		sa, err := p.parseStaticAssert()
		if err != nil {
			return nil, err
		}
		return sa, nil
	}

	start := ast.Pos(p.cur.nextIndex())
	specsV, err := p.parseDeclSpecs()
	if err != nil {
		return nil, err
	}
	if specsV.Empty() {
		return nil, p.report(diag.ExpectedDecl, "")
	}
	specs := p.alloc.DeclSpecs(specsV)

	if _, ok := p.cur.eat(lexer.TokenSemicolon); ok {
		return p.alloc.Field(start, specs, nil), nil
	}

	var decls []ast.FieldDecl
	for {
		var fd ast.FieldDecl
		if p.cur.peek().Type != lexer.TokenColon {
			d, err := p.parseDeclarator(declNamed)
			if err != nil {
				return nil, err
			}
			fd.Decl = d
		}
		if _, ok := p.cur.eat(lexer.TokenColon); ok {
			bits, err := p.parseConditional()
			if err != nil {
				return nil, err
			}
			fd.Bits = bits
		}
		decls = append(decls, fd)
		if _, ok := p.cur.eat(lexer.TokenComma); !ok {
			break
		}
	}
	if _, err := p.cur.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}
	return p.alloc.Field(start, specs, decls), nil
}

// parseEnumType parses an enum specifier with an optional tag and an
// optional enumerator list. A trailing comma before the closing brace
// is accepted.
func (p *parser) parseEnumType() (*ast.EnumType, error) {
	_, kwPos := p.cur.advance()

	name, namePos := "", ast.NoPos
	if t := p.cur.peek(); t.Type == lexer.TokenIdent {
		_, namePos = p.cur.advance()
		name = t.Literal
	}

	if _, ok := p.cur.eat(lexer.TokenLBrace); ok {
		var items []*ast.Enumerator
		for p.cur.peek().Type != lexer.TokenRBrace {
			pos, err := p.cur.expect(lexer.TokenIdent)
			if err != nil {
				return nil, err
			}
			var value ast.Expr
			if _, ok := p.cur.eat(lexer.TokenAssign); ok {
				value, err = p.parseConditional()
				if err != nil {
					return nil, err
				}
			}
			items = append(items, p.alloc.Enumerator(pos, p.cur.at(pos).Literal, value))
			if _, ok := p.cur.eat(lexer.TokenComma); !ok {
				break
			}
		}
		if _, err := p.cur.expect(lexer.TokenRBrace); err != nil {
			return nil, err
		}
		return p.alloc.EnumType(kwPos, name, namePos, true, items), nil
	}

	if !namePos.IsValid() {
		return nil, p.report(diag.ExpectedToken, "IDENT")
	}
	return p.alloc.EnumType(kwPos, name, namePos, false, nil), nil
}

// parseAtomicType parses _Atomic ( type-name ) used as a type
// specifier.
func (p *parser) parseAtomicType() (*ast.AtomicType, error) {
	_, pos := p.cur.advance()
	if _, err := p.cur.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	name, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return p.alloc.AtomicType(pos, name), nil
}

// parseTypeName parses specifier-qualifiers followed by an optional
// abstract declarator.
func (p *parser) parseTypeName() (*ast.TypeName, error) {
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
	case lexer.TokenStar, lexer.TokenLParen, lexer.TokenLBracket:
		decl, err = p.parseDeclarator(declAbstract)
		if err != nil {
			return nil, err
		}
	}
	return p.alloc.TypeName(start, specs, decl), nil
}

// tryParenTypeName speculatively consumes ( type-name ). On any
// failure the cursor and the diagnostic sink are restored to their
// state at the call and ok is false.
func (p *parser) tryParenTypeName() (tn *ast.TypeName, rparen ast.Pos, ok bool) {
	depth := p.cur.depth()
	mark := p.sink.Len()

	if _, ok := p.cur.eat(lexer.TokenLParen); !ok {
		return nil, ast.NoPos, false
	}
	if !p.startsDeclSpecs(p.cur.peek()) {
		p.cur.rewind(depth)
		return nil, ast.NoPos, false
	}
	name, err := p.parseTypeName()
	if err != nil {
		p.cur.rewind(depth)
		p.sink.Truncate(mark)
		return nil, ast.NoPos, false
	}
	closePos, err := p.cur.expect(lexer.TokenRParen)
	if err != nil {
		p.cur.rewind(depth)
		p.sink.Truncate(mark)
		return nil, ast.NoPos, false
	}
	return name, closePos, true
}
