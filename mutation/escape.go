package mutation

import (
	"fmt"
	"strings"
)

// escapeString escapes text for storage as a single field in a line-oriented
// log, using ClickHouse's TSV escaping rules.
func escapeString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, b := range []byte(s) {
		switch b {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case 0:
			sb.WriteString(`\0`)
		case '\'':
			sb.WriteString(`\'`)
		default:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// unescapeString reverses escapeString. Unknown escape sequences keep the
// escaped character, matching how ClickHouse reads escaped strings back.
func unescapeString(s string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("unterminated escape sequence at end of input")
		}
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case '0':
			sb.WriteByte(0)
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String(), nil
}
