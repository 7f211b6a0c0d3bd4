package regex

import (
	"strings"
	"unicode/utf8"
)

const (
	precAlt = iota
	precConcat
	precAtom
)

const metaRunes = `|*()[]\`

func (*Epsilon) String() string { return "()" }

func (*Empty) String() string { return "[]" }

func (a *Apply) String() string { return format(a, precAlt) }

func (a *Append) String() string { return format(a, precAlt) }

func (o *OrElse) String() string { return format(o, precAlt) }

func (r *Repeat) String() string { return format(r, precAlt) }

// format renders r in the syntax accepted by Parse, adding parentheses when
// r binds looser than prec.
func format(r Regexp, prec int) string {
	var buf strings.Builder
	writeRegexp(&buf, r, prec)
	return buf.String()
}

func writeRegexp(buf *strings.Builder, r Regexp, prec int) {
	switch n := r.(type) {
	case *Epsilon:
		buf.WriteString("()")
	case *Empty:
		buf.WriteString("[]")
	case *Apply:
		if prec == precAtom && utf8.RuneCountInString(n.Literal) > 1 {
			buf.WriteByte('(')
			writeLiteral(buf, n.Literal)
			buf.WriteByte(')')
			return
		}
		writeLiteral(buf, n.Literal)
	case *Append:
		if prec > precConcat {
			buf.WriteByte('(')
			defer buf.WriteByte(')')
		}
		writeRegexp(buf, n.Left, precConcat)
		writeRegexp(buf, n.Right, precConcat)
	case *OrElse:
		if prec > precAlt {
			buf.WriteByte('(')
			defer buf.WriteByte(')')
		}
		writeRegexp(buf, n.First, precAlt)
		buf.WriteByte('|')
		writeRegexp(buf, n.Second, precAlt)
	case *Repeat:
		writeRegexp(buf, n.Source, precAtom)
		buf.WriteByte('*')
	default:
		panic(unknownNode(r))
	}
}

func writeLiteral(buf *strings.Builder, lit string) {
	for _, ch := range lit {
		if strings.ContainsRune(metaRunes, ch) {
			buf.WriteByte('\\')
		}
		buf.WriteRune(ch)
	}
}
