package expr

import (
	"strconv"
)

// Lexer tokenizes arithmetic expression strings.
type Lexer struct {
	input string
	pos   int
	ch    byte
	prev  TokenType
}

// NewLexer creates a new lexer for the given input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, prev: TokenEOF}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	tok := l.nextToken()
	l.prev = tok.Type
	return tok
}

func (l *Lexer) nextToken() Token {
	l.skipWhitespace()

	start := l.pos - 1
	var tok Token

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Pos: start}
	case '+':
		tok = Token{Type: TokenPlus, Literal: "+"}
	case '-':
		// A minus directly in front of a number is a sign, unless it follows
		// an operand: "1 -2" is a subtraction.
		if l.expectsOperand() && (isDigit(l.peekChar()) || l.peekChar() == '.') {
			return l.readNumberToken()
		}
		tok = Token{Type: TokenMinus, Literal: "-"}
	case '*':
		tok = Token{Type: TokenAsterisk, Literal: "*"}
	case '/':
		tok = Token{Type: TokenSlash, Literal: "/"}
	case '(':
		tok = Token{Type: TokenLParen, Literal: "("}
	case ')':
		tok = Token{Type: TokenRParen, Literal: ")"}
	default:
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			return l.readNumberToken()
		}
		tok = Token{Type: TokenError, Literal: string(l.ch), Value: "unexpected character: " + string(l.ch)}
	}

	tok.Pos = start
	l.readChar()
	return tok
}

func (l *Lexer) expectsOperand() bool {
	return l.prev != TokenNumber && l.prev != TokenRParen
}

func (l *Lexer) readNumberToken() Token {
	start := l.pos - 1
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	literal := l.input[start : l.pos-1]

	val, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Token{
			Type:    TokenError,
			Literal: literal,
			Pos:     start,
			Value:   "invalid number: " + literal,
		}
	}
	return Token{
		Type:    TokenNumber,
		Literal: literal,
		Pos:     start,
		Value:   val,
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
