package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Comments are real tokens in the stream; the parser's cursor is
	// responsible for looking past them.
	TokenLineComment  // // ...
	TokenBlockComment // /* ... */

	// Literals
	TokenIdent    // main, foo, x
	TokenInt      // 42, 0x2a, 052
	TokenFloatLit // 4.2, 1e9, .5
	TokenCharLit  // 'a'
	TokenString   // "hello"

	// Keywords
	TokenInt_         // int
	TokenVoid         // void
	TokenReturn       // return
	TokenIf           // if
	TokenElse         // else
	TokenWhile        // while
	TokenDo           // do
	TokenFor          // for
	TokenBreak        // break
	TokenContinue     // continue
	TokenSwitch       // switch
	TokenCase         // case
	TokenDefault      // default
	TokenGoto         // goto
	TokenTypedef      // typedef
	TokenStruct       // struct
	TokenSizeof       // sizeof
	TokenUnion        // union
	TokenEnum         // enum
	TokenStatic       // static
	TokenExtern       // extern
	TokenAuto         // auto
	TokenRegister     // register
	TokenConst        // const
	TokenVolatile     // volatile
	TokenRestrict     // restrict
	TokenChar         // char
	TokenShort        // short
	TokenLong         // long
	TokenFloat        // float
	TokenDouble       // double
	TokenSigned       // signed
	TokenUnsigned     // unsigned
	TokenBool         // _Bool, bool
	TokenComplex      // _Complex
	TokenAtomic       // _Atomic
	TokenInline       // inline
	TokenNoreturn     // _Noreturn
	TokenThreadLocal  // _Thread_local, thread_local
	TokenAlignof      // _Alignof, alignof
	TokenStaticAssert // _Static_assert, static_assert

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenAssign    // =
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenAnd       // &&
	TokenOr        // ||
	TokenNot       // !
	TokenAmpersand // &
	TokenPipe      // |
	TokenCaret     // ^
	TokenTilde     // ~
	TokenShl       // <<
	TokenShr       // >>
	TokenQuestion  // ?
	TokenColon     // :

	// Compound assignment operators
	TokenPlusAssign    // +=
	TokenMinusAssign   // -=
	TokenStarAssign    // *=
	TokenSlashAssign   // /=
	TokenPercentAssign // %=
	TokenAndAssign     // &=
	TokenOrAssign      // |=
	TokenXorAssign     // ^=
	TokenShlAssign     // <<=
	TokenShrAssign     // >>=

	// Increment/decrement
	TokenIncrement // ++
	TokenDecrement // --

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenComma     // ,
	TokenDot       // .
	TokenArrow     // ->
	TokenEllipsis  // ...
)

var tokenNames = map[TokenType]string{
	TokenEOF:           "EOF",
	TokenIllegal:       "ILLEGAL",
	TokenLineComment:   "COMMENT",
	TokenBlockComment:  "COMMENT",
	TokenIdent:         "IDENT",
	TokenInt:           "INT",
	TokenFloatLit:      "FLOAT",
	TokenCharLit:       "CHAR",
	TokenString:        "STRING",
	TokenInt_:          "int",
	TokenVoid:          "void",
	TokenReturn:        "return",
	TokenIf:            "if",
	TokenElse:          "else",
	TokenWhile:         "while",
	TokenDo:            "do",
	TokenFor:           "for",
	TokenBreak:         "break",
	TokenContinue:      "continue",
	TokenSwitch:        "switch",
	TokenCase:          "case",
	TokenDefault:       "default",
	TokenGoto:          "goto",
	TokenTypedef:       "typedef",
	TokenStruct:        "struct",
	TokenSizeof:        "sizeof",
	TokenUnion:         "union",
	TokenEnum:          "enum",
	TokenStatic:        "static",
	TokenExtern:        "extern",
	TokenAuto:          "auto",
	TokenRegister:      "register",
	TokenConst:         "const",
	TokenVolatile:      "volatile",
	TokenRestrict:      "restrict",
	TokenChar:          "char",
	TokenShort:         "short",
	TokenLong:          "long",
	TokenFloat:         "float",
	TokenDouble:        "double",
	TokenSigned:        "signed",
	TokenUnsigned:      "unsigned",
	TokenBool:          "_Bool",
	TokenComplex:       "_Complex",
	TokenAtomic:        "_Atomic",
	TokenInline:        "inline",
	TokenNoreturn:      "_Noreturn",
	TokenThreadLocal:   "_Thread_local",
	TokenAlignof:       "_Alignof",
	TokenStaticAssert:  "_Static_assert",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenAssign:        "=",
	TokenEq:            "==",
	TokenNe:            "!=",
	TokenLt:            "<",
	TokenLe:            "<=",
	TokenGt:            ">",
	TokenGe:            ">=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenNot:           "!",
	TokenAmpersand:     "&",
	TokenPipe:          "|",
	TokenCaret:         "^",
	TokenTilde:         "~",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenArrow:         "->",
	TokenEllipsis:      "...",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsComment reports whether t is a line or block comment token.
func (t TokenType) IsComment() bool {
	return t == TokenLineComment || t == TokenBlockComment
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"int":            TokenInt_,
	"void":           TokenVoid,
	"return":         TokenReturn,
	"if":             TokenIf,
	"else":           TokenElse,
	"while":          TokenWhile,
	"do":             TokenDo,
	"for":            TokenFor,
	"break":          TokenBreak,
	"continue":       TokenContinue,
	"switch":         TokenSwitch,
	"case":           TokenCase,
	"default":        TokenDefault,
	"goto":           TokenGoto,
	"typedef":        TokenTypedef,
	"struct":         TokenStruct,
	"sizeof":         TokenSizeof,
	"union":          TokenUnion,
	"enum":           TokenEnum,
	"static":         TokenStatic,
	"extern":         TokenExtern,
	"auto":           TokenAuto,
	"register":       TokenRegister,
	"const":          TokenConst,
	"volatile":       TokenVolatile,
	"restrict":       TokenRestrict,
	"char":           TokenChar,
	"short":          TokenShort,
	"long":           TokenLong,
	"float":          TokenFloat,
	"double":         TokenDouble,
	"signed":         TokenSigned,
	"unsigned":       TokenUnsigned,
	"_Bool":          TokenBool,
	"bool":           TokenBool,
	"_Complex":       TokenComplex,
	"_Atomic":        TokenAtomic,
	"inline":         TokenInline,
	"_Noreturn":      TokenNoreturn,
	"_Thread_local":  TokenThreadLocal,
	"thread_local":   TokenThreadLocal,
	"_Alignof":       TokenAlignof,
	"alignof":        TokenAlignof,
	"_Static_assert": TokenStaticAssert,
	"static_assert":  TokenStaticAssert,
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
