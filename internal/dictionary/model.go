package dictionary

// Entry is one glossary record: the text to match, its replacement and an optional note.
type Entry struct {
	Org  string `json:"org" yaml:"org"`
	Rep  string `json:"rep" yaml:"rep"`
	Note string `json:"note" yaml:"note"`
}

// FormatKey identifies one of the on-disk dictionary formats.
type FormatKey string

const (
	FormatAiNieeJSON   FormatKey = "AiNiee_JSON"
	FormatGPPGUITOML   FormatKey = "GPPGUI_TOML"
	FormatGPPCLITOML   FormatKey = "GPPCLI_TOML"
	FormatGalTranslTSV FormatKey = "GalTransl_TSV"

	// Auto asks the caller to resolve the format with Detect before parsing.
	Auto FormatKey = "auto"
)

func (k FormatKey) String() string {
	return string(k)
}

// Definition is the static metadata of a format.
type Definition struct {
	Key         FormatKey `yaml:"key"`
	DisplayName string    `yaml:"display_name"`
	Extension   string    `yaml:"extension"`
	// Alias is a short, case-insensitive name accepted on the command line.
	Alias string `yaml:"alias"`
}
