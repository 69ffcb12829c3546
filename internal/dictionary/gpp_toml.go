package dictionary

import (
	"strings"
)

const (
	gptDictKey    = "gptDict"
	gptDictHeader = "[[gptDict]]"
)

// parsesAsTOML is the structural gate shared by both TOML codecs.
// A document that mentions gptDict but does not parse is not TOML.
func parsesAsTOML(text string) bool {
	var document map[string]any
	return unmarshalTOML(text, &document) == nil
}

// gppGUITOMLCodec handles a `gptDict` array with one inline table of org, rep and note per line.
type gppGUITOMLCodec struct{}

func (gppGUITOMLCodec) Definition() Definition {
	return Definition{
		Key:         FormatGPPGUITOML,
		DisplayName: "GalTranslPP GUI TOML格式",
		Extension:   ".toml",
		Alias:       "gui",
	}
}

func (gppGUITOMLCodec) Detect(text string) bool {
	return strings.Contains(text, gptDictKey) &&
		!strings.Contains(text, gptDictHeader) &&
		parsesAsTOML(text)
}

type guiDocument struct {
	GptDict []struct {
		Org  string `toml:"org"`
		Rep  string `toml:"rep"`
		Note string `toml:"note"`
	} `toml:"gptDict"`
}

func (gppGUITOMLCodec) Parse(text string) ([]Entry, error) {
	var document guiDocument
	if err := unmarshalTOML(text, &document); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(document.GptDict))
	for _, item := range document.GptDict {
		entries = append(entries, Entry{Org: item.Org, Rep: item.Rep, Note: item.Note})
	}
	return entries, nil
}

func (gppGUITOMLCodec) Format(entries []Entry) string {
	lines := make([]string, 0, len(entries)+2)
	lines = append(lines, gptDictKey+" = [")
	for _, entry := range entries {
		lines = append(lines, "\t{ org = "+quoteLiteral(entry.Org)+
			", rep = "+quoteLiteral(entry.Rep)+
			", note = "+quoteLiteral(entry.Note)+" },")
	}
	lines = append(lines, "]")
	return strings.Join(lines, "\n")
}

// gppCLITOMLCodec handles one `[[gptDict]]` table per entry.
type gppCLITOMLCodec struct{}

func (gppCLITOMLCodec) Definition() Definition {
	return Definition{
		Key:         FormatGPPCLITOML,
		DisplayName: "GalTranslPP CLI TOML格式",
		Extension:   ".toml",
		Alias:       "cli",
	}
}

func (gppCLITOMLCodec) Detect(text string) bool {
	return strings.Contains(text, gptDictHeader) && parsesAsTOML(text)
}

type cliDocument struct {
	GptDict []struct {
		SearchStr  string `toml:"searchStr"`
		ReplaceStr string `toml:"replaceStr"`
		Note       string `toml:"note"`
	} `toml:"gptDict"`
}

func (gppCLITOMLCodec) Parse(text string) ([]Entry, error) {
	var document cliDocument
	if err := unmarshalTOML(text, &document); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(document.GptDict))
	for _, item := range document.GptDict {
		entries = append(entries, Entry{Org: item.SearchStr, Rep: item.ReplaceStr, Note: item.Note})
	}
	return entries, nil
}

func (gppCLITOMLCodec) Format(entries []Entry) string {
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		blocks = append(blocks, gptDictHeader+"\n"+
			"note = "+quoteLiteral(entry.Note)+"\n"+
			"replaceStr = "+quoteLiteral(entry.Rep)+"\n"+
			"searchStr = "+quoteLiteral(entry.Org))
	}
	return strings.Join(blocks, "\n\n")
}
