package regex

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrSyntax is the error wrapped by every *ParseError.
var ErrSyntax = errors.New("invalid pattern")

// ParseError describes a malformed pattern.
type ParseError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d in %q: %s", ErrSyntax, e.Pos, e.Pattern, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

// Parse parses a pattern.
//
// The grammar is:
//
//	alternate = concat { "|" concat }.
//	concat    = { repeat }.
//	repeat    = term { "*" }.
//	term      = "(" alternate ")" | "[]" | literal.
//
// An empty concat, including "()", is Eps; "[]" is Fail. A literal is any
// rune other than |*()[]\ or any rune preceded by \. Adjacent literal runes
// are merged into a single Apply.
func Parse(pattern string) (Regexp, error) {
	p := &parser{input: pattern}
	re, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.input) {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return re, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) Regexp {
	re, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

type parser struct {
	input string
	pos   int
}

func (p *parser) peek() rune {
	if p.pos >= len(p.input) {
		return utf8.RuneError
	}
	ch, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return ch
}

func (p *parser) next() rune {
	ch, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
	return ch
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{
		Pattern: p.input,
		Pos:     p.pos,
		Msg:     fmt.Sprintf(format, args...),
	}
}

func (p *parser) parseAlternate() (Regexp, error) {
	var alts []Regexp
	for {
		re, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		alts = append(alts, re)

		if p.eof() || p.peek() != '|' {
			return Alt(alts...), nil
		}
		p.next()
	}
}

func (p *parser) parseConcat() (Regexp, error) {
	var items []Regexp
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			items = append(items, Lit(lit.String()))
			lit.Reset()
		}
	}

	for !p.eof() {
		switch p.peek() {
		case '|', ')':
			flush()
			return Concat(items...), nil
		case '*':
			return nil, p.errorf("missing argument to repetition operator")
		}

		term, ch, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		stars := 0
		for !p.eof() && p.peek() == '*' {
			p.next()
			stars++
		}

		if term == nil && stars == 0 {
			lit.WriteRune(ch)
			continue
		}

		flush()
		if term == nil {
			term = Lit(string(ch))
		}
		for ; stars > 0; stars-- {
			term = Star(term)
		}
		items = append(items, term)
	}

	flush()
	return Concat(items...), nil
}

// parseTerm returns either a parsed group (term != nil) or a single literal
// rune.
func (p *parser) parseTerm() (term Regexp, ch rune, err error) {
	switch ch = p.next(); ch {
	case '(':
		re, err := p.parseAlternate()
		if err != nil {
			return nil, 0, err
		}
		if p.eof() || p.peek() != ')' {
			return nil, 0, p.errorf("missing closing )")
		}
		p.next()
		return re, 0, nil
	case '[':
		if p.eof() || p.peek() != ']' {
			return nil, 0, p.errorf("character classes are not supported, only []")
		}
		p.next()
		return Fail, 0, nil
	case ']':
		return nil, 0, p.errorf("unexpected ]")
	case '\\':
		if p.eof() {
			return nil, 0, p.errorf("trailing backslash")
		}
		return nil, p.next(), nil
	}
	return nil, ch, nil
}
