package dictionary

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// quoteLiteral renders s as a single-quoted TOML literal, doubling every single quote.
// A literal cannot hold newlines or other control characters except tab, so such values
// are written as escaped basic strings and every entry stays on one line.
func quoteLiteral(s string) string {
	if strings.IndexFunc(s, needsEscape) >= 0 {
		return basicQuote(s)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func needsEscape(r rune) bool {
	return (r < 0x20 && r != '\t') || r == 0x7f
}

// unmarshalTOML decodes dictionary TOML after normalizing doubled-quote literals.
func unmarshalTOML(text string, v any) error {
	return toml.Unmarshal([]byte(normalizeLiteralStrings(text)), v)
}

// normalizeLiteralStrings rewrites single-line literal strings as basic strings.
// Inside a literal, two adjacent single quotes stand for one quote. A conforming TOML
// parser rejects that form, so the rewrite has to happen before decoding.
//
// Three single quotes open a multi-line literal only when a line break follows them.
// Otherwise they are read as a literal starting with a doubled quote, which is what
// quoteLiteral writes for a value that begins with a quote. A one-line multi-line
// literal is therefore not supported.
//
// Comments, basic strings and multi-line strings are copied unchanged.
// Unterminated literals are left for the parser to report.
func normalizeLiteralStrings(text string) string {
	if !strings.Contains(text, "'") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	for i := 0; i < len(text); {
		switch {
		case text[i] == '#':
			end := lineEnd(text, i)
			b.WriteString(text[i:end])
			i = end
		case strings.HasPrefix(text[i:], `"""`):
			end := closingDelimiter(text, i+3, `"""`, '"', true)
			b.WriteString(text[i:end])
			i = end
		case text[i] == '"':
			end := basicStringEnd(text, i+1)
			b.WriteString(text[i:end])
			i = end
		case strings.HasPrefix(text[i:], "'''") && startsLine(text, i+3):
			end := closingDelimiter(text, i+3, "'''", '\'', false)
			b.WriteString(text[i:end])
			i = end
		case text[i] == '\'':
			value, end, ok := scanLiteral(text, i+1)
			if !ok {
				b.WriteString(text[i:end])
			} else {
				b.WriteString(basicQuote(value))
			}
			i = end
		default:
			b.WriteByte(text[i])
			i++
		}
	}
	return b.String()
}

// scanLiteral reads a single-line literal whose opening quote is at start-1.
// It returns the decoded value and the index just past the closing quote.
// ok is false when the line ends before the literal is closed.
func scanLiteral(text string, start int) (string, int, bool) {
	var value strings.Builder
	for j := start; j < len(text); {
		switch text[j] {
		case '\'':
			if j+1 < len(text) && text[j+1] == '\'' {
				value.WriteByte('\'')
				j += 2
				continue
			}
			return value.String(), j + 1, true
		case '\n':
			return "", j, false
		default:
			value.WriteByte(text[j])
			j++
		}
	}
	return "", len(text), false
}

func basicStringEnd(text string, start int) int {
	for j := start; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		case '\n':
			return j
		}
	}
	return len(text)
}

// closingDelimiter returns the index after a multi-line string closed by delim.
// Up to two extra quote characters directly before the delimiter belong to the content.
func closingDelimiter(text string, start int, delim string, quote byte, escapes bool) int {
	for j := start; j < len(text); j++ {
		if escapes && text[j] == '\\' {
			j++
			continue
		}
		if strings.HasPrefix(text[j:], delim) {
			end := j + len(delim)
			for extra := 0; extra < 2 && end < len(text) && text[end] == quote; extra++ {
				end++
			}
			return end
		}
	}
	return len(text)
}

func startsLine(text string, i int) bool {
	return strings.HasPrefix(text[i:], "\n") || strings.HasPrefix(text[i:], "\r\n")
}

func lineEnd(text string, i int) int {
	if n := strings.IndexByte(text[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(text)
}

func basicQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
