// Package pattern provides a regular expression value that carries flags and
// a match cursor, so a partially consumed global search can be stored and
// resumed later.
//
// Flags:
//
//	g  global: Exec resumes from LastIndex and advances it
//	i  case-insensitive
//	m  multi-line: ^ and $ match at line breaks
//	s  dot matches newline
//	u  accepted for compatibility; matching is always code point based
//	y  sticky: like g, but a match must start exactly at LastIndex
//
// Expressions use ECMAScript syntax, lookaround and backreferences included.
// LastIndex counts code points. A search that starts at LastIndex still sees
// the text before it, so ^ and \b behave as if the whole input were searched.
package pattern

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

const flagOrder = "gimsuy"

// Pattern is a compiled expression plus its search state.
// A Pattern is not safe for concurrent use because Exec moves the cursor.
type Pattern struct {
	re        *regexp2.Regexp
	source    string
	flags     string
	lastIndex int
}

// Compile parses source with the given flags.
func Compile(source, flags string) (*Pattern, error) {
	canon, err := canonicalFlags(flags)
	if err != nil {
		return nil, err
	}

	var opts regexp2.RegexOptions = regexp2.ECMAScript
	for _, f := range canon {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		}
	}

	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, fmt.Errorf("pattern: compile /%s/%s: %w", source, flags, err)
	}
	return &Pattern{re: re, source: source, flags: canon}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source, flags string) *Pattern {
	p, err := Compile(source, flags)
	if err != nil {
		panic(err)
	}
	return p
}

func canonicalFlags(flags string) (string, error) {
	seen := make(map[rune]bool, len(flags))
	for _, f := range flags {
		if !strings.ContainsRune(flagOrder, f) {
			return "", fmt.Errorf("pattern: unknown flag %q", f)
		}
		if seen[f] {
			return "", fmt.Errorf("pattern: duplicate flag %q", f)
		}
		seen[f] = true
	}
	var b strings.Builder
	for _, f := range flagOrder {
		if seen[f] {
			b.WriteRune(f)
		}
	}
	return b.String(), nil
}

// Source returns the expression as written, without flags.
func (p *Pattern) Source() string { return p.source }

// Flags returns the flags in canonical order.
func (p *Pattern) Flags() string { return p.flags }

// Global reports whether the g flag is set.
func (p *Pattern) Global() bool { return strings.ContainsRune(p.flags, 'g') }

// Sticky reports whether the y flag is set.
func (p *Pattern) Sticky() bool { return strings.ContainsRune(p.flags, 'y') }

// LastIndex returns the code point offset the next global or sticky search
// starts at.
func (p *Pattern) LastIndex() int { return p.lastIndex }

// SetLastIndex moves the cursor. Negative values are clamped to 0.
func (p *Pattern) SetLastIndex(i int) {
	if i < 0 {
		i = 0
	}
	p.lastIndex = i
}

// Regexp returns the underlying compiled expression.
func (p *Pattern) Regexp() *regexp2.Regexp { return p.re }

// String renders the pattern as /source/flags.
func (p *Pattern) String() string {
	return "/" + p.source + "/" + p.flags
}

// Exec searches input and returns the match followed by its submatches,
// or nil if there is none. Unmatched groups are empty strings. For global and
// sticky patterns the search starts at LastIndex, which then moves past the
// match or resets to 0 on failure.
func (p *Pattern) Exec(input string) []string {
	runes := []rune(input)
	stateful := p.Global() || p.Sticky()
	start := 0
	if stateful {
		start = p.lastIndex
		if start > len(runes) {
			p.lastIndex = 0
			return nil
		}
	}

	// no MatchTimeout is set, so matching cannot fail
	m, _ := p.re.FindRunesMatchStartingAt(runes, start)
	if m == nil || (p.Sticky() && m.Index != start) {
		if stateful {
			p.lastIndex = 0
		}
		return nil
	}

	groups := m.Groups()
	out := make([]string, len(groups))
	for i, g := range groups {
		if len(g.Captures) > 0 {
			out[i] = g.String()
		}
	}
	if stateful {
		end := m.Index + m.Length
		if m.Length == 0 {
			// empty match; step past it so repeated calls make progress
			end++
		}
		p.lastIndex = end
	}
	return out
}

// Test reports whether Exec finds a match, with the same cursor effects.
func (p *Pattern) Test(input string) bool {
	return p.Exec(input) != nil
}
