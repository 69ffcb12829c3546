package dictionary

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// aiNieeJSONCodec handles `[{"src": "", "dst": "", "info": ""}]`.
// Older files name the source field "srt"; it is accepted on read, "src" is always written.
type aiNieeJSONCodec struct{}

type aiNieeRecord struct {
	Src  string `json:"src"`
	Dst  string `json:"dst"`
	Info string `json:"info"`
}

type aiNieeInputRecord struct {
	Src  *string `json:"src"`
	Srt  string  `json:"srt"`
	Dst  string  `json:"dst"`
	Info string  `json:"info"`
}

func (aiNieeJSONCodec) Definition() Definition {
	return Definition{
		Key:         FormatAiNieeJSON,
		DisplayName: "AiNiee/LinguaGacha JSON格式",
		Extension:   ".json",
		Alias:       "json",
	}
}

func (aiNieeJSONCodec) Detect(text string) bool {
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") || !gjson.Valid(text) {
		return false
	}
	first := gjson.Get(text, "0")
	if !first.IsObject() {
		return false
	}
	hasSource := first.Get("src").Exists() || first.Get("srt").Exists()
	return hasSource && first.Get("dst").Exists()
}

func (aiNieeJSONCodec) Parse(text string) ([]Entry, error) {
	var records []aiNieeInputRecord
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		org := record.Srt
		if record.Src != nil {
			org = *record.Src
		}
		entries = append(entries, Entry{Org: org, Rep: record.Dst, Note: record.Info})
	}
	return entries, nil
}

func (aiNieeJSONCodec) Format(entries []Entry) string {
	records := make([]aiNieeRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, aiNieeRecord{Src: entry.Org, Dst: entry.Rep, Info: entry.Note})
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		// Encoding a slice of string-only structs cannot fail.
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
