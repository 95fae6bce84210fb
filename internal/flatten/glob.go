package flatten

import (
	"fmt"
	"regexp"
	"strings"
)

// Glob is a compiled shell-style wildcard pattern.
//
// Unlike path.Match, "*" also matches "/" since key paths are not file
// paths. Supported syntax:
//
//	*       any run of characters, including none
//	?       exactly one character
//	[abc]   one character from the set; ranges like [a-z] are allowed
//	[!abc]  one character not in the set
//
// An unterminated "[" matches itself. Every other character is literal.
type Glob struct {
	pattern string
	re      *regexp.Regexp
}

// Compile translates pattern into a Glob that matches whole strings.
func Compile(pattern string) (*Glob, error) {
	re, err := regexp.Compile(translate(pattern))
	if err != nil {
		return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
	}
	return &Glob{pattern: pattern, re: re}, nil
}

// Match reports whether s matches the whole pattern.
func (g *Glob) Match(s string) bool {
	return g.re.MatchString(s)
}

func (g *Glob) String() string {
	return g.pattern
}

func translate(pattern string) string {
	var b strings.Builder
	b.WriteString(`^(?s:`)

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			// consecutive stars are equivalent to one
			for i+1 < len(runes) && runes[i+1] == '*' {
				i++
			}
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '[':
			end := classEnd(runes, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(translateClass(runes[i+1 : end]))
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString(`)$`)
	return b.String()
}

// classEnd returns the index of the "]" closing the class opened at start,
// or -1 when the class is unterminated. A "]" directly after "[" or "[!" is
// part of the set.
func classEnd(runes []rune, start int) int {
	j := start + 1
	if j < len(runes) && runes[j] == '!' {
		j++
	}
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for j < len(runes) && runes[j] != ']' {
		j++
	}
	if j >= len(runes) {
		return -1
	}
	return j
}

func translateClass(body []rune) string {
	var b strings.Builder
	b.WriteByte('[')

	if len(body) > 0 && body[0] == '!' {
		b.WriteByte('^')
		body = body[1:]
	}
	for _, c := range body {
		switch c {
		case '\\', '[', ']', '^':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}

	b.WriteByte(']')
	return b.String()
}
