package parser

import (
	"github.com/jcrawley/hazel-cc/pkg/ast"
	"github.com/jcrawley/hazel-cc/pkg/diag"
	"github.com/jcrawley/hazel-cc/pkg/lexer"
)

// cursor is a bidirectional view of the token sequence that skips
// comment tokens on every read. Each advance records the position it
// started from, so retreat restores that exact position, comments
// included. The sequence must end with an EOF token.
type cursor struct {
	toks  []lexer.Token
	pos   int
	marks []int
	sink  *diag.Sink
}

func newCursor(toks []lexer.Token, sink *diag.Sink) *cursor {
	return &cursor{toks: toks, sink: sink}
}

// skip returns the index of the first non-comment token at or after i.
func (c *cursor) skip(i int) int {
	for c.toks[i].Type.IsComment() {
		i++
	}
	return i
}

// peek returns the next non-comment token without consuming anything.
func (c *cursor) peek() lexer.Token {
	return c.toks[c.skip(c.pos)]
}

// peek2 returns the non-comment token after the one peek would return.
func (c *cursor) peek2() lexer.Token {
	i := c.skip(c.pos)
	if c.toks[i].Type == lexer.TokenEOF {
		return c.toks[i]
	}
	return c.toks[c.skip(i+1)]
}

// nextIndex returns the index of the token peek would return.
func (c *cursor) nextIndex() int {
	return c.skip(c.pos)
}

// at returns the token a position refers to.
func (c *cursor) at(pos ast.Pos) lexer.Token {
	return c.toks[pos]
}

// advance consumes the next non-comment token and returns it with its
// index. At EOF the cursor stays put and keeps returning the EOF token.
func (c *cursor) advance() (lexer.Token, ast.Pos) {
	c.marks = append(c.marks, c.pos)
	i := c.skip(c.pos)
	t := c.toks[i]
	if t.Type != lexer.TokenEOF {
		c.pos = i + 1
	} else {
		c.pos = i
	}
	return t, ast.Pos(i)
}

// retreat undoes exactly one advance, restoring the position from
// before it, including any comments that advance skipped.
func (c *cursor) retreat() {
	if len(c.marks) == 0 {
		panic("cursor: retreat without matching advance")
	}
	c.pos = c.marks[len(c.marks)-1]
	c.marks = c.marks[:len(c.marks)-1]
}

// depth returns the number of advances that can currently be undone.
// A speculative parse checkpoints depth and rewinds to it on failure.
func (c *cursor) depth() int {
	return len(c.marks)
}

// rewind retreats until depth advances remain undoable.
func (c *cursor) rewind(depth int) {
	if depth > len(c.marks) {
		panic("cursor: rewind past mark stack")
	}
	for len(c.marks) > depth {
		c.retreat()
	}
}

// eat consumes a token of the given kind and returns its position. On
// a kind mismatch it consumes nothing and reports false, leaving the
// cursor exactly as it was.
func (c *cursor) eat(k lexer.TokenType) (ast.Pos, bool) {
	if c.toks[c.skip(c.pos)].Type != k {
		return ast.NoPos, false
	}
	_, pos := c.advance()
	return pos, true
}

// expect is eat plus a diagnostic: a mismatch pushes ExpectedToken for
// the token actually found and returns the recoverable error.
func (c *cursor) expect(k lexer.TokenType) (ast.Pos, error) {
	if pos, ok := c.eat(k); ok {
		return pos, nil
	}
	i := c.skip(c.pos)
	t := c.toks[i]
	c.sink.Add(diag.Diagnostic{
		Severity: diag.Error,
		Kind:     diag.ExpectedToken,
		Pos:      ast.Pos(i),
		Line:     t.Line,
		Col:      t.Column,
		Expected: k.String(),
		Found:    t.Type.String(),
	})
	return ast.NoPos, errParse
}
