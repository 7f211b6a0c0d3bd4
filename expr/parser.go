package expr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is returned (wrapped) by Parse for malformed input.
var ErrSyntax = errors.New("syntax error")

// Operator precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	SUM
	PRODUCT
)

var precedences = map[TokenType]int{
	TokenPlus:     SUM,
	TokenMinus:    SUM,
	TokenAsterisk: PRODUCT,
	TokenSlash:    PRODUCT,
}

// Parser parses tokens from a lexer into an expression tree.
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	errors    []string
}

// NewParser creates a new parser for the given lexer.
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{lexer: lexer}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse is shorthand for NewParser(NewLexer(src)).Parse().
func Parse(src string) (Expression, error) {
	return NewParser(NewLexer(src)).Parse()
}

// MustParse is like Parse but panics on error.
func MustParse(src string) Expression {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// Errors returns the list of parsing errors encountered.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(tok Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("position %d: %s", tok.Pos, msg))
}

// Parse parses the input and returns an expression tree.
// Returns an error if parsing fails or if there is trailing input.
func (p *Parser) Parse() (Expression, error) {
	expr := p.parseExpression(LOWEST)

	if len(p.errors) == 0 {
		switch p.peekToken.Type {
		case TokenEOF:
		case TokenError:
			p.addLexerError(p.peekToken)
		default:
			p.addError(p.peekToken, "unexpected trailing token: %s", p.peekToken.Type)
		}
	}

	if len(p.errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, strings.Join(p.errors, "; "))
	}
	return expr, nil
}

func (p *Parser) addLexerError(tok Token) {
	if msg, ok := tok.Value.(string); ok {
		p.addError(tok, "%s", msg)
	} else {
		p.addError(tok, "lexer error at: %s", tok.Literal)
	}
}

func (p *Parser) parseExpression(precedence int) Expression {
	var left Expression

	switch p.curToken.Type {
	case TokenError:
		p.addLexerError(p.curToken)
		return nil
	case TokenNumber:
		left = &Literal{Value: p.curToken.Value.(float64)}
	case TokenLParen:
		left = p.parseGroupedExpression()
	case TokenEOF:
		p.addError(p.curToken, "unexpected end of input")
		return nil
	default:
		p.addError(p.curToken, "unexpected token: %s", p.curToken.Type)
		return nil
	}

	for left != nil && p.peekToken.Type != TokenEOF && precedence < p.peekPrecedence() {
		p.nextToken()
		left = p.parseBinaryExpression(left)
	}

	return left
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.peekToken.Type != TokenRParen {
		p.addError(p.peekToken, "expected ), got %s", p.peekToken.Type)
		return nil
	}
	p.nextToken()
	return expr
}

func (p *Parser) parseBinaryExpression(left Expression) Expression {
	operator := p.curToken.Type
	precedence := p.curPrecedence()

	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	switch operator {
	case TokenPlus:
		return &Addition{Left: left, Right: right}
	case TokenMinus:
		return &Subtraction{Left: left, Right: right}
	case TokenAsterisk:
		return &Multiplication{Left: left, Right: right}
	case TokenSlash:
		return &Division{Left: left, Right: right}
	}

	p.addError(p.curToken, "unknown operator: %s", operator)
	return nil
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}
