package regex

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiterals(t *testing.T) {
	tests := []struct {
		name     string
		re       Regexp
		expected []string
		ok       bool
	}{
		{"single", Lit("get"), []string{"get"}, true},
		{"alternation", Alt(Lit("get"), Lit("post"), Lit("put")), []string{"get", "post", "put"}, true},
		{"nested alternation", Or(Lit("a"), Or(Lit("b"), Lit("c"))), []string{"a", "b", "c"}, true},
		{"sequence", Seq(Lit("a"), Lit("b")), nil, false},
		{"with epsilon", Or(Lit("a"), Eps), nil, false},
		{"repeat", Star(Lit("a")), nil, false},
		{"empty", Fail, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lits, ok := Literals(tt.re)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, lits)
		})
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		re       Regexp
		input    string
		expected bool
	}{
		{"literal inside", Lit("spr"), "osprey", true},
		{"literal absent", Lit("owl"), "osprey", false},
		{"literal set", Alt(Lit("owl"), Lit("hawk"), Lit("rey")), "osprey", true},
		{"literal set absent", Alt(Lit("owl"), Lit("hawk")), "osprey", false},
		{"nullable always matches", Star(Lit("z")), "osprey", true},
		{"nullable on empty input", Eps, "", true},
		{"non-nullable on empty input", Lit("a"), "", false},
		{"structured", Seq(Lit("s"), Star(Lit("p"))), "ospppr", true},
		{"structured absent", Seq(Lit("x"), Star(Lit("p"))), "ospppr", false},
		{"suffix", Seq(Lit("e"), Lit("y")), "osprey", true},
		{"unicode", Lit("本"), "日本語", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Search(tt.re, tt.input))
		})
	}
}

func TestSearchLiteralFastPathAgrees(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 200; i++ {
		var lits []Regexp
		for n := 1 + rng.Intn(4); n > 0; n-- {
			lits = append(lits, Lit(randomString(rng, "abc", 1+rng.Intn(3))))
		}
		re := Alt(lits...)

		m := Compile(re)
		require.NotNil(t, m.literals, re.String())

		for j := 0; j < 10; j++ {
			input := randomString(rng, "abc", rng.Intn(10))
			assert.Equal(t, m.searchDerivative(input), m.Search(input), "%s on %q", re, input)
		}
	}
}

func TestSearchLiteralFastPathInvalidUTF8(t *testing.T) {
	patterns := []Regexp{
		Lit("\xff"),
		Lit("a\xffb"),
		Lit("\uFFFD"),
		Lit("\xef\xbf"),
		&Apply{Literal: "\xff"},
		Alt(Lit("\xfe\xff"), Lit("zz")),
	}
	inputs := []string{
		"\xff",
		"\uFFFD",
		"a\xffb",
		"a\uFFFDb",
		"\xef\xbf",
		"\xfe\xff",
		"xx\xff\xffyy",
		"plain",
		"",
	}

	for _, re := range patterns {
		m := Compile(re)
		require.NotNil(t, m.literals, re.String())

		for _, input := range inputs {
			assert.Equal(t, m.searchDerivative(input), m.Search(input), "%q on %q", re.String(), input)
		}
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		re := Alt(Lit(randomString(rng, "a\xff", 1+rng.Intn(3))), Lit(randomString(rng, "a\xff", 1+rng.Intn(3))))
		m := Compile(re)
		for j := 0; j < 10; j++ {
			input := randomString(rng, "ab\xff", rng.Intn(8))
			assert.Equal(t, m.searchDerivative(input), m.Search(input), "%q on %q", re.String(), input)
		}
	}
}

func TestInvalidUTF8ReadsAsReplacementRune(t *testing.T) {
	re := Lit("\xff")
	assert.Equal(t, "\uFFFD", re.(*Apply).Literal)

	assert.True(t, Matches(re, "\uFFFD"))
	assert.True(t, Matches(re, "\xff"))
	assert.True(t, Search(re, "\uFFFD"))
	assert.True(t, Search(re, "x\xffy"))
	assert.False(t, Matches(Lit("\xff\xff"), "\xff"))
	assert.True(t, Matches(Lit("\xff\xff"), "\xfe\xff"))
	assert.True(t, Matches(&Apply{Literal: "\xff"}, "\uFFFD"))
}

func TestSearchAgreesWithReference(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	for i := 0; i < 200; i++ {
		re := randomRegexp(rng, 3)
		for j := 0; j < 5; j++ {
			input := randomString(rng, "ab", rng.Intn(6))

			expected := false
			for start := 0; start <= len(input) && !expected; start++ {
				for end := start; end <= len(input); end++ {
					if refMatch(re, input[start:end]) {
						expected = true
						break
					}
				}
			}

			assert.Equal(t, expected, Search(re, input), "%s on %q", re, input)
		}
	}
}

func TestMatcher(t *testing.T) {
	re := Star(Lit("osprey"))
	m := Compile(re)

	assert.Same(t, re, m.Regexp())
	assert.True(t, m.Match("ospreyosprey"))
	assert.False(t, m.Match("osprey!"))
	assert.True(t, m.Search("an osprey"))
}

func TestMatcherConcurrent(t *testing.T) {
	m := Compile(Alt(Lit("owl"), Lit("osprey"), Lit("kite")))
	inputs := map[string]bool{
		"osprey": true,
		"owl":    true,
		"kites":  false,
		"":       false,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				for input, expected := range inputs {
					assert.Equal(t, expected, m.Match(input))
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkSearch(b *testing.B) {
	input := "the quick brown fox jumps over the lazy dog and then an osprey flies by"

	b.Run("literal set", func(b *testing.B) {
		m := Compile(Alt(Lit("osprey"), Lit("hawk"), Lit("kite")))
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = m.Search(input)
		}
	})

	b.Run("derivative", func(b *testing.B) {
		m := Compile(Seq(Lit("os"), Star(Lit("p"))))
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = m.Search(input)
		}
	})
}
