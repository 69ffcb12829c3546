package dictionary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	tsvCommentPrefix  = "//"
	tomlCommentPrefix = "#"

	// tsvScanLines bounds how much of a document detection looks at.
	tsvScanLines = 20

	spaceDelimiter = "    "
)

var tomlTableHeader = regexp.MustCompile(`^\[\[?[A-Za-z0-9_.\-"' ]+\]\]?$`)

// galTranslTSVCodec handles one `org<TAB>rep[<TAB>note]` record per line.
// Four spaces between two non-space characters also delimit fields.
type galTranslTSVCodec struct{}

func (galTranslTSVCodec) Definition() Definition {
	return Definition{
		Key:         FormatGalTranslTSV,
		DisplayName: "GalTransl TSV格式",
		Extension:   ".txt",
		Alias:       "tsv",
	}
}

func (galTranslTSVCodec) Detect(text string) bool {
	lines := strings.SplitN(text, "\n", tsvScanLines+1)
	if len(lines) > tsvScanLines {
		lines = lines[:tsvScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, tomlCommentPrefix) || tomlTableHeader.MatchString(line) {
			continue
		}
		if strings.HasPrefix(line, tsvCommentPrefix) ||
			strings.Contains(line, "\t") ||
			hasSpaceDelimiter(line) {
			return true
		}
	}
	return false
}

func (c galTranslTSVCodec) Parse(text string) ([]Entry, error) {
	document, err := c.ParseDocument(text)
	if err != nil {
		return nil, err
	}
	return document.Entries, nil
}

// ParseDocument reads records line by line. Comment lines are attached to the next record;
// blank lines and rows with fewer than two fields are dropped.
func (galTranslTSVCodec) ParseDocument(text string) (Document, error) {
	document := Document{Entries: make([]Entry, 0)}
	var pending []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, tsvCommentPrefix) || strings.HasPrefix(line, tomlCommentPrefix) {
			pending = append(pending, line)
			continue
		}
		parts := splitFields(line, 3)
		if len(parts) < 2 {
			continue
		}
		entry := Entry{
			Org: strings.TrimSpace(parts[0]),
			Rep: strings.TrimSpace(parts[1]),
		}
		if len(parts) > 2 {
			entry.Note = strings.TrimSpace(parts[2])
		}
		document.attachComments(len(document.Entries), pending)
		pending = nil
		document.Entries = append(document.Entries, entry)
	}
	document.attachComments(len(document.Entries), pending)
	return document, nil
}

func (galTranslTSVCodec) Format(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, formatTSVLine(entry))
	}
	return strings.Join(lines, "\n")
}

func (galTranslTSVCodec) FormatDocument(document Document) string {
	lines := make([]string, 0, len(document.Entries)+len(document.Comments))
	for i, entry := range document.Entries {
		lines = append(lines, document.Comments[i]...)
		lines = append(lines, formatTSVLine(entry))
	}
	lines = append(lines, document.Comments[len(document.Entries)]...)
	return strings.Join(lines, "\n")
}

func formatTSVLine(entry Entry) string {
	line := entry.Org + "\t" + entry.Rep
	if entry.Note != "" {
		line += "\t" + entry.Note
	}
	return line
}

// splitFields splits line on delimiters into at most n parts.
// The last part keeps any further delimiters untouched.
func splitFields(line string, n int) []string {
	var parts []string
	start := 0
	for i := 0; i < len(line) && len(parts) < n-1; {
		width := delimiterAt(line, i)
		if width == 0 {
			i++
			continue
		}
		parts = append(parts, line[start:i])
		i += width
		start = i
	}
	return append(parts, line[start:])
}

// delimiterAt returns the byte width of the delimiter starting at i, or 0.
func delimiterAt(line string, i int) int {
	if line[i] == '\t' {
		return 1
	}
	if !strings.HasPrefix(line[i:], spaceDelimiter) {
		return 0
	}
	before, _ := utf8.DecodeLastRuneInString(line[:i])
	after, _ := utf8.DecodeRuneInString(line[i+len(spaceDelimiter):])
	if i == 0 || i+len(spaceDelimiter) >= len(line) || unicode.IsSpace(before) || unicode.IsSpace(after) {
		return 0
	}
	return len(spaceDelimiter)
}

func hasSpaceDelimiter(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' && delimiterAt(line, i) == len(spaceDelimiter) {
			return true
		}
	}
	return false
}
