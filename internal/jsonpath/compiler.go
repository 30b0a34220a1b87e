package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// compile never fails: bracket content that is not a number reads as index
// 0, and an unterminated bracket runs to the end of the pattern. Use
// Validate to reject such patterns.
func compile(pattern string) []component {
	var comps []component

	for i := 0; i < len(pattern); {
		var c component
		if pattern[i] == '[' {
			c, i = parseIndexComponent(pattern, i+1)
		} else {
			c, i = parseKeyComponent(pattern, i)
		}
		comps = append(comps, c)
	}

	return comps
}

func parseIndexComponent(pattern string, head int) (component, int) {
	tail := head
	for tail < len(pattern) && pattern[tail] != ']' {
		tail++
	}

	content := pattern[head:tail]
	if tail < len(pattern) {
		tail++ // consume ']'
	}

	if content == "*" {
		return component{kind: kindArr, wildcard: true}, tail
	}

	return component{kind: kindArr, index: atoi(content)}, tail
}

func parseKeyComponent(pattern string, head int) (component, int) {
	if pattern[head] == '.' {
		head++
	}

	tail := head
	for tail < len(pattern) && pattern[tail] != '.' && pattern[tail] != '[' {
		tail++
	}

	content := pattern[head:tail]
	if content == "*" {
		return component{kind: kindObj, wildcard: true}, tail
	}

	return component{kind: kindObj, key: content}, tail
}

// atoi reads an optional sign and the leading decimal digits of s after
// skipping whitespace, and returns 0 when there are no digits.
func atoi(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digits {
		return 0
	}

	// out of range values saturate and can never equal a real index
	n, _ := strconv.ParseInt(s[start:i], 10, 0)
	return int(n)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Validate reports patterns that compile only thanks to the lenient index
// rules: bracket content other than `*` or a non-negative decimal integer,
// a missing `]`, or an empty pattern.
func Validate(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("%w: pattern cannot be empty", ErrSyntax)
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '[' {
			continue
		}

		end := strings.IndexByte(pattern[i+1:], ']')
		if end == -1 {
			return fmt.Errorf("%w: unterminated bracket at position %d", ErrSyntax, i)
		}

		content := pattern[i+1 : i+1+end]
		if content != "*" && !isIndex(content) {
			return fmt.Errorf("%w: invalid array index %q at position %d", ErrSyntax, content, i)
		}
		i += end + 1
	}

	return nil
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// Expression renders the compiled form of pattern as an RFC 9535 query,
// e.g. `a.b[*]` becomes `$['a']['b'][*]`. Patterns that have no equivalent
// query (empty patterns and negative indices) are reported as ErrSyntax.
func Expression(pattern string) (string, error) {
	comps := compile(pattern)
	if len(comps) == 0 {
		return "", fmt.Errorf("%w: empty pattern never matches", ErrSyntax)
	}

	var b strings.Builder
	b.WriteByte('$')

	for _, c := range comps {
		switch {
		case c.wildcard:
			b.WriteString("[*]")
		case c.kind == kindArr:
			if c.index < 0 {
				return "", fmt.Errorf("%w: negative index %d never matches", ErrSyntax, c.index)
			}
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(c.index))
			b.WriteByte(']')
		default:
			b.WriteString("['")
			writeQuotedName(&b, c.key)
			b.WriteString("']")
		}
	}

	return b.String(), nil
}

func writeQuotedName(b *strings.Builder, name string) {
	for _, r := range name {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
}
