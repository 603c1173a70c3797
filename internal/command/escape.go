package command

import "strings"

// EscapeCommand backslash-escapes characters that would let s run anything
// other than the single command it names.
//
// Escaped: # & ; ` | * ? ~ < > ^ ( ) [ ] { } $ \ newline and 0xFF.
// A single or double quote is escaped only when it has no partner of the same
// kind later in the string, so paired quotes keep working.
func EscapeCommand(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)

	// index of the partner of the currently open quote, -1 when none
	partner := -1

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\'':
			switch {
			case partner < 0:
				if j := strings.IndexByte(s[i+1:], c); j >= 0 {
					partner = i + 1 + j
				} else {
					b.WriteByte('\\')
				}
			case partner == i:
				partner = -1
			default:
				b.WriteByte('\\')
			}
		case '#', '&', ';', '`', '|', '*', '?', '~', '<', '>', '^',
			'(', ')', '[', ']', '{', '}', '$', '\\', '\n', 0xFF:
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}

	return b.String()
}

// QuoteArg wraps s in single quotes, rewriting embedded single quotes as '\''
// so the result is always exactly one shell word.
func QuoteArg(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
