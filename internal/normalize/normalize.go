// Package normalize compares semantically equivalent SQL fragments that
// differ only in surface syntax. Tests use it to check a re-rendered ALTER
// command list against the text it was parsed from.
package normalize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex    = regexp.MustCompile(`\s+`)
	operatorSpaceRegex = regexp.MustCompile(`\s*([=<>!+\-*/%]+)\s*`)
)

// Whitespace collapses whitespace runs to a single space and trims the ends.
func Whitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// EscapesInStrings rewrites backslash-escaped quotes inside single-quoted
// string literals to the SQL-standard doubled form, so 'O\'Brien' and
// 'O''Brien' compare equal.
func EscapesInStrings(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	i := 0
	for i < len(s) {
		ch := s[i]
		if ch != '\'' {
			result.WriteByte(ch)
			i++
			continue
		}
		result.WriteByte(ch)
		i++
		for i < len(s) {
			ch = s[i]
			if ch == '\\' && i+1 < len(s) && s[i+1] == '\'' {
				result.WriteString("''")
				i += 2
			} else if ch == '\\' && i+1 < len(s) && s[i+1] == '\\' {
				result.WriteByte('\\')
				i += 2
			} else if ch == '\'' {
				result.WriteByte(ch)
				i++
				if i < len(s) && s[i] == '\'' {
					// Doubled quote stays inside the literal.
					result.WriteByte(s[i])
					i++
				} else {
					break
				}
			} else {
				result.WriteByte(ch)
				i++
			}
		}
	}
	return result.String()
}

// CommasOutsideStrings removes the space after commas that sit outside
// string literals, so "a, b" and "a,b" compare equal without touching
// literal text.
func CommasOutsideStrings(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	inString := false
	i := 0
	for i < len(s) {
		ch := s[i]
		if !inString {
			if ch == '\'' {
				inString = true
			}
			if ch == ',' && i+1 < len(s) && s[i+1] == ' ' {
				result.WriteByte(ch)
				i += 2
				continue
			}
			result.WriteByte(ch)
			i++
			continue
		}
		if ch == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				result.WriteString("''")
				i += 2
				continue
			}
			inString = false
		} else if ch == '\\' && i+1 < len(s) {
			result.WriteByte(ch)
			result.WriteByte(s[i+1])
			i += 2
			continue
		}
		result.WriteByte(ch)
		i++
	}
	return result.String()
}

// ForFormat normalizes a SQL fragment for comparison: whitespace collapsed,
// spaces around operators and after commas removed, quote escapes unified,
// trailing semicolon dropped.
func ForFormat(s string) string {
	normalized := Whitespace(s)
	normalized = operatorSpaceRegex.ReplaceAllString(normalized, "$1")
	normalized = CommasOutsideStrings(normalized)
	normalized = EscapesInStrings(normalized)
	normalized = strings.TrimSuffix(strings.TrimSpace(normalized), ";")
	return strings.TrimSpace(normalized)
}
