package expr

import (
	"strconv"
	"strings"
)

func (l *Literal) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64)
}

func (a *Addition) String() string {
	return formatBinary(a.Left, "+", a.Right)
}

func (s *Subtraction) String() string {
	return formatBinary(s.Left, "-", s.Right)
}

func (m *Multiplication) String() string {
	return formatBinary(m.Left, "*", m.Right)
}

func (d *Division) String() string {
	return formatBinary(d.Left, "/", d.Right)
}

func formatBinary(left Expression, op string, right Expression) string {
	var buf strings.Builder
	buf.WriteByte('(')
	buf.WriteString(left.String())
	buf.WriteByte(' ')
	buf.WriteString(op)
	buf.WriteByte(' ')
	buf.WriteString(right.String())
	buf.WriteByte(')')
	return buf.String()
}
