package lexer

import (
	"unicode"
)

// Lexer tokenizes C source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
	column  int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize scans the entire input and returns every token up to and
// including a single terminating EOF token. Scanning is total: malformed
// input produces TokenIllegal tokens, never an error.
func Tokenize(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks
		}
	}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) peekChar2() byte {
	if l.readPos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+1]
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
	case '+':
		if l.peekChar() == '+' {
			tok.Type = TokenIncrement
			tok.Literal = "++"
			l.readChar()
		} else if l.peekChar() == '=' {
			tok.Type = TokenPlusAssign
			tok.Literal = "+="
			l.readChar()
		} else {
			tok = l.newToken(TokenPlus, l.ch)
		}
	case '-':
		if l.peekChar() == '-' {
			tok.Type = TokenDecrement
			tok.Literal = "--"
			l.readChar()
		} else if l.peekChar() == '=' {
			tok.Type = TokenMinusAssign
			tok.Literal = "-="
			l.readChar()
		} else if l.peekChar() == '>' {
			tok.Type = TokenArrow
			tok.Literal = "->"
			l.readChar()
		} else {
			tok = l.newToken(TokenMinus, l.ch)
		}
	case '*':
		if l.peekChar() == '=' {
			tok.Type = TokenStarAssign
			tok.Literal = "*="
			l.readChar()
		} else {
			tok = l.newToken(TokenStar, l.ch)
		}
	case '/':
		if l.peekChar() == '/' {
			tok.Type = TokenLineComment
			tok.Literal = l.readLineComment()
			return tok
		} else if l.peekChar() == '*' {
			tok.Type, tok.Literal = l.readBlockComment()
			return tok
		} else if l.peekChar() == '=' {
			tok.Type = TokenSlashAssign
			tok.Literal = "/="
			l.readChar()
		} else {
			tok = l.newToken(TokenSlash, l.ch)
		}
	case '%':
		if l.peekChar() == '=' {
			tok.Type = TokenPercentAssign
			tok.Literal = "%="
			l.readChar()
		} else {
			tok = l.newToken(TokenPercent, l.ch)
		}
	case '=':
		if l.peekChar() == '=' {
			tok.Type = TokenEq
			tok.Literal = "=="
			l.readChar()
		} else {
			tok = l.newToken(TokenAssign, l.ch)
		}
	case '!':
		if l.peekChar() == '=' {
			tok.Type = TokenNe
			tok.Literal = "!="
			l.readChar()
		} else {
			tok = l.newToken(TokenNot, l.ch)
		}
	case '<':
		if l.peekChar() == '<' {
			l.readChar()
			if l.peekChar() == '=' {
				tok.Type = TokenShlAssign
				tok.Literal = "<<="
				l.readChar()
			} else {
				tok.Type = TokenShl
				tok.Literal = "<<"
			}
		} else if l.peekChar() == '=' {
			tok.Type = TokenLe
			tok.Literal = "<="
			l.readChar()
		} else {
			tok = l.newToken(TokenLt, l.ch)
		}
	case '>':
		if l.peekChar() == '>' {
			l.readChar()
			if l.peekChar() == '=' {
				tok.Type = TokenShrAssign
				tok.Literal = ">>="
				l.readChar()
			} else {
				tok.Type = TokenShr
				tok.Literal = ">>"
			}
		} else if l.peekChar() == '=' {
			tok.Type = TokenGe
			tok.Literal = ">="
			l.readChar()
		} else {
			tok = l.newToken(TokenGt, l.ch)
		}
	case '&':
		if l.peekChar() == '&' {
			tok.Type = TokenAnd
			tok.Literal = "&&"
			l.readChar()
		} else if l.peekChar() == '=' {
			tok.Type = TokenAndAssign
			tok.Literal = "&="
			l.readChar()
		} else {
			tok = l.newToken(TokenAmpersand, l.ch)
		}
	case '|':
		if l.peekChar() == '|' {
			tok.Type = TokenOr
			tok.Literal = "||"
			l.readChar()
		} else if l.peekChar() == '=' {
			tok.Type = TokenOrAssign
			tok.Literal = "|="
			l.readChar()
		} else {
			tok = l.newToken(TokenPipe, l.ch)
		}
	case '^':
		if l.peekChar() == '=' {
			tok.Type = TokenXorAssign
			tok.Literal = "^="
			l.readChar()
		} else {
			tok = l.newToken(TokenCaret, l.ch)
		}
	case '~':
		tok = l.newToken(TokenTilde, l.ch)
	case '?':
		tok = l.newToken(TokenQuestion, l.ch)
	case ':':
		tok = l.newToken(TokenColon, l.ch)
	case '(':
		tok = l.newToken(TokenLParen, l.ch)
	case ')':
		tok = l.newToken(TokenRParen, l.ch)
	case '{':
		tok = l.newToken(TokenLBrace, l.ch)
	case '}':
		tok = l.newToken(TokenRBrace, l.ch)
	case '[':
		tok = l.newToken(TokenLBracket, l.ch)
	case ']':
		tok = l.newToken(TokenRBracket, l.ch)
	case ';':
		tok = l.newToken(TokenSemicolon, l.ch)
	case ',':
		tok = l.newToken(TokenComma, l.ch)
	case '.':
		if isDigit(l.peekChar()) {
			tok.Type, tok.Literal = l.readNumber()
			return tok
		}
		if l.peekChar() == '.' && l.peekChar2() == '.' {
			tok.Type = TokenEllipsis
			tok.Literal = "..."
			l.readChar()
			l.readChar()
		} else {
			tok = l.newToken(TokenDot, l.ch)
		}
	case '"':
		str, terminated := l.readString()
		tok.Type = TokenString
		tok.Literal = str
		if !terminated {
			tok.Type = TokenIllegal
		}
		return tok
	case '\'':
		str, terminated := l.readCharLit()
		tok.Type = TokenCharLit
		tok.Literal = str
		if !terminated {
			tok.Type = TokenIllegal
		}
		return tok
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		} else if isDigit(l.ch) {
			tok.Type, tok.Literal = l.readNumber()
			return tok
		} else {
			tok = l.newToken(TokenIllegal, l.ch)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: l.line, Column: l.column}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readLineComment() string {
	pos := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

func (l *Lexer) readBlockComment() (TokenType, string) {
	pos := l.pos
	l.readChar() // consume /
	l.readChar() // consume *
	for {
		if l.ch == 0 {
			// unterminated comment
			return TokenIllegal, l.input[pos:l.pos]
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume *
			l.readChar() // consume /
			return TokenBlockComment, l.input[pos:l.pos]
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

func (l *Lexer) readNumber() (TokenType, string) {
	pos := l.pos
	typ := TokenInt

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar() // consume 0
		l.readChar() // consume x
		if !isHexDigit(l.ch) {
			return TokenIllegal, l.input[pos:l.pos]
		}
		for isHexDigit(l.ch) {
			l.readChar()
		}
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' {
			typ = TokenFloatLit
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			peek := l.peekChar()
			if isDigit(peek) || ((peek == '+' || peek == '-') && isDigit(l.peekChar2())) {
				typ = TokenFloatLit
				l.readChar() // consume e
				if l.ch == '+' || l.ch == '-' {
					l.readChar()
				}
				for isDigit(l.ch) {
					l.readChar()
				}
			}
		}
	}

	// suffixes (u, l, f and friends) stay part of the literal text
	for isSuffix(l.ch) {
		l.readChar()
	}
	return typ, l.input[pos:l.pos]
}

func (l *Lexer) readString() (string, bool) {
	l.readChar() // consume opening quote
	pos := l.pos
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar() // skip escape char
			if l.ch == 0 {
				break // escape at end of input
			}
		}
		l.readChar()
	}
	str := l.input[pos:l.pos]
	if l.ch == 0 {
		return str, false
	}
	l.readChar() // consume closing quote
	return str, true
}

func (l *Lexer) readCharLit() (string, bool) {
	l.readChar() // consume opening quote
	pos := l.pos
	for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar() // skip escape char
			if l.ch == 0 || l.ch == '\n' {
				break
			}
		}
		l.readChar()
	}
	str := l.input[pos:l.pos]
	if l.ch != '\'' {
		return str, false
	}
	l.readChar() // consume closing quote
	return str, true
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func isSuffix(ch byte) bool {
	switch ch {
	case 'u', 'U', 'l', 'L', 'f', 'F':
		return true
	}
	return false
}
