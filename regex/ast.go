// Package regex implements regular expression matching by Brzozowski
// derivatives.
//
// A Regexp is a small closed tree: Epsilon, Empty, Apply (a literal), Append
// (sequence), OrElse (alternation) and Repeat (Kleene star). Matching takes
// the derivative of the pattern with respect to each input character in turn
// and then asks whether what is left accepts the empty string. Nothing is
// compiled; the pattern itself is the matching state.
//
// Example:
//
//	re := regex.Star(regex.Lit("osprey"))
//	regex.Matches(re, "ospreyosprey") // true
//	regex.Matches(re, "ospre")        // false
package regex

import (
	"strings"
	"unicode/utf8"
)

// Regexp is a regular expression tree. The set of variants is closed.
type Regexp interface {
	regexp()

	// String renders the pattern in the syntax read by Parse. Parsing it
	// back yields a pattern with the same language, not always the same
	// tree: Parse merges adjacent literal runes into one Apply and builds
	// sequences and alternations left-associated, so Seq(Lit("a"),
	// Lit("b")) prints as "ab" and comes back as Lit("ab").
	String() string
}

// Epsilon matches only the empty string.
type Epsilon struct{}

func (*Epsilon) regexp() {}

// Empty matches nothing at all, not even the empty string.
type Empty struct{}

func (*Empty) regexp() {}

// Apply matches Literal exactly. Literal is never empty: use Lit to build
// one, which turns "" into Eps. Each byte of Literal that is not part of a
// valid UTF-8 sequence stands for U+FFFD, as it does in matched input.
type Apply struct {
	Literal string
}

func (*Apply) regexp() {}

// Append matches Left immediately followed by Right.
type Append struct {
	Left  Regexp
	Right Regexp
}

func (*Append) regexp() {}

// OrElse matches First or Second.
type OrElse struct {
	First  Regexp
	Second Regexp
}

func (*OrElse) regexp() {}

// Repeat matches zero or more repetitions of Source.
type Repeat struct {
	Source Regexp
}

func (*Repeat) regexp() {}

var (
	// Eps is the shared Epsilon value.
	Eps Regexp = &Epsilon{}

	// Fail is the shared Empty value.
	Fail Regexp = &Empty{}
)

// Lit returns a pattern matching s literally. Lit("") is Eps. Invalid
// UTF-8 bytes in s are replaced by U+FFFD, one per byte.
func Lit(s string) Regexp {
	if s == "" {
		return Eps
	}
	return &Apply{Literal: validUTF8(s)}
}

// validUTF8 replaces every byte of s that does not start a valid UTF-8
// sequence with U+FFFD, the rune a range loop yields for it.
func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var buf strings.Builder
	buf.Grow(len(s) + 2*utf8.UTFMax)
	for _, ch := range s {
		buf.WriteRune(ch)
	}
	return buf.String()
}

// Seq returns left ++ right.
func Seq(left, right Regexp) Regexp {
	return &Append{Left: left, Right: right}
}

// Or returns first orElse second.
func Or(first, second Regexp) Regexp {
	return &OrElse{First: first, Second: second}
}

// Star returns source repeated zero or more times.
func Star(source Regexp) Regexp {
	return &Repeat{Source: source}
}

// Concat sequences rs left to right. Concat() is Eps.
func Concat(rs ...Regexp) Regexp {
	if len(rs) == 0 {
		return Eps
	}
	out := rs[0]
	for _, r := range rs[1:] {
		out = Seq(out, r)
	}
	return out
}

// Alt is the alternation of rs, tried left to right. Alt() is Fail.
func Alt(rs ...Regexp) Regexp {
	if len(rs) == 0 {
		return Fail
	}
	out := rs[0]
	for _, r := range rs[1:] {
		out = Or(out, r)
	}
	return out
}
