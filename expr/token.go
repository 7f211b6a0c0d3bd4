package expr

// TokenType represents the type of a token in the expression language.
type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenNumber

	// Operators
	TokenPlus     // +
	TokenMinus    // -
	TokenAsterisk // *
	TokenSlash    // /

	// Delimiters
	TokenLParen // (
	TokenRParen // )

	TokenError // lexer error
)

var tokenNames = map[TokenType]string{
	TokenEOF:      "EOF",
	TokenNumber:   "NUMBER",
	TokenPlus:     "+",
	TokenMinus:    "-",
	TokenAsterisk: "*",
	TokenSlash:    "/",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenError:    "ERROR",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
	Value   any
}
