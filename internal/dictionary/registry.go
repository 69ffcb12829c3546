package dictionary

import (
	"fmt"
	"strings"
)

//go:generate mockgen -source=registry.go -destination=../mocks/dictionary/mock_codec.go -package=mock_dictionary -exclude_interfaces=DocumentCodec

// Codec knows how to recognize, read and write one dictionary format.
type Codec interface {
	Definition() Definition
	// Detect reports whether text looks like this format. text has no BOM.
	Detect(text string) bool
	// Parse converts text without BOM into entries in source order.
	Parse(text string) ([]Entry, error)
	Format(entries []Entry) string
}

// Document is a parsed dictionary together with the full-line comments a codec could keep.
type Document struct {
	Entries []Entry
	// Comments holds the comment lines found before Entries[i] under key i.
	// Key len(Entries) holds the comments after the last entry.
	Comments map[int][]string
}

func (d *Document) attachComments(index int, lines []string) {
	if len(lines) == 0 {
		return
	}
	if d.Comments == nil {
		d.Comments = make(map[int][]string)
	}
	d.Comments[index] = append(d.Comments[index], lines...)
}

func (d Document) commentLines() int {
	n := 0
	for _, lines := range d.Comments {
		n += len(lines)
	}
	return n
}

// DocumentCodec is implemented by codecs whose comments survive a reformat.
type DocumentCodec interface {
	Codec
	ParseDocument(text string) (Document, error)
	FormatDocument(document Document) string
}

// Registry holds one codec per format key.
// Registration order is the detection priority.
type Registry struct {
	codecs []Codec
	byKey  map[FormatKey]Codec
}

func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{
		byKey: make(map[FormatKey]Codec, len(codecs)),
	}
	for _, codec := range codecs {
		key := codec.Definition().Key
		if _, ok := r.byKey[key]; ok {
			panic(fmt.Sprintf("dictionary: codec %s registered twice", key))
		}
		r.codecs = append(r.codecs, codec)
		r.byKey[key] = codec
	}
	return r
}

var defaultRegistry = NewRegistry(
	gppCLITOMLCodec{},
	gppGUITOMLCodec{},
	galTranslTSVCodec{},
	aiNieeJSONCodec{},
)

// Default returns the registry with the four built-in formats.
func Default() *Registry {
	return defaultRegistry
}

// Definitions returns the metadata of every registered format in detection order.
func (r *Registry) Definitions() []Definition {
	definitions := make([]Definition, 0, len(r.codecs))
	for _, codec := range r.codecs {
		definitions = append(definitions, codec.Definition())
	}
	return definitions
}

func (r *Registry) Lookup(key FormatKey) (Definition, bool) {
	codec, ok := r.byKey[key]
	if !ok {
		return Definition{}, false
	}
	return codec.Definition(), true
}

func (r *Registry) LookupByDisplayName(name string) (Definition, bool) {
	for _, codec := range r.codecs {
		if definition := codec.Definition(); definition.DisplayName == name {
			return definition, true
		}
	}
	return Definition{}, false
}

// Resolve accepts a format key, a display name or an alias.
// "auto" resolves to Auto.
func (r *Registry) Resolve(name string) (FormatKey, bool) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, string(Auto)) {
		return Auto, true
	}
	if definition, ok := r.Lookup(FormatKey(name)); ok {
		return definition.Key, true
	}
	if definition, ok := r.LookupByDisplayName(name); ok {
		return definition.Key, true
	}
	for _, codec := range r.codecs {
		definition := codec.Definition()
		if strings.EqualFold(definition.Alias, name) || strings.EqualFold(string(definition.Key), name) {
			return definition.Key, true
		}
	}
	return "", false
}

func (r *Registry) codec(key FormatKey) Codec {
	codec, ok := r.byKey[key]
	if !ok {
		// The key set is closed; callers resolve user input with Resolve first.
		panic(fmt.Sprintf("dictionary: unknown format key %q", key))
	}
	return codec
}

// Detect returns the first format, in priority order, whose codec recognizes text.
func (r *Registry) Detect(text string) (FormatKey, bool) {
	text = strings.TrimSpace(stripBOM(text))
	if text == "" {
		return "", false
	}
	for _, codec := range r.codecs {
		if codec.Detect(text) {
			return codec.Definition().Key, true
		}
	}
	return "", false
}

// Parse converts text of a known format into entries.
// Blank text is an empty dictionary, not an error.
func (r *Registry) Parse(text string, key FormatKey) ([]Entry, error) {
	document, err := r.parseDocument(text, key)
	if err != nil {
		return nil, err
	}
	return document.Entries, nil
}

func (r *Registry) Format(entries []Entry, key FormatKey) string {
	return r.codec(key).Format(entries)
}

// Reformat parses and reserializes text in the same format.
// Codecs implementing DocumentCodec keep their full-line comments.
func (r *Registry) Reformat(text string, key FormatKey) (string, error) {
	document, err := r.parseDocument(text, key)
	if err != nil {
		return "", err
	}
	return r.formatDocument(document, key), nil
}

func (r *Registry) parseDocument(text string, key FormatKey) (Document, error) {
	codec := r.codec(key)
	text = stripBOM(text)
	if strings.TrimSpace(text) == "" {
		return Document{Entries: []Entry{}}, nil
	}

	if documentCodec, ok := codec.(DocumentCodec); ok {
		document, err := documentCodec.ParseDocument(text)
		if err != nil {
			return Document{}, &ParseError{Format: key, Err: err}
		}
		return document, nil
	}
	entries, err := codec.Parse(text)
	if err != nil {
		return Document{}, &ParseError{Format: key, Err: err}
	}
	return Document{Entries: entries}, nil
}

func (r *Registry) formatDocument(document Document, key FormatKey) string {
	codec := r.codec(key)
	if documentCodec, ok := codec.(DocumentCodec); ok && len(document.Comments) > 0 {
		return documentCodec.FormatDocument(document)
	}
	return codec.Format(document.Entries)
}

// ConvertResult describes one conversion.
type ConvertResult struct {
	From        FormatKey
	To          FormatKey
	Entries     int
	Reformatted bool
	// DroppedComments counts comment lines that the target format did not receive.
	DroppedComments int
	Text            string
}

// Convert detects the input format when from is Auto, then converts text to the target format.
// When both formats are equal the text is reformatted; otherwise comments are discarded.
func (r *Registry) Convert(text string, from, to FormatKey) (ConvertResult, error) {
	if from == Auto {
		detected, ok := r.Detect(text)
		if !ok {
			return ConvertResult{}, ErrUndetermined
		}
		from = detected
	}
	// Unknown targets panic before any parsing work.
	r.codec(to)

	document, err := r.parseDocument(text, from)
	if err != nil {
		return ConvertResult{}, err
	}
	result := ConvertResult{
		From:        from,
		To:          to,
		Entries:     len(document.Entries),
		Reformatted: from == to,
	}
	if !result.Reformatted {
		result.DroppedComments = document.commentLines()
		document.Comments = nil
	}
	result.Text = r.formatDocument(document, to)
	return result, nil
}

// Detect uses the default registry.
func Detect(text string) (FormatKey, bool) {
	return defaultRegistry.Detect(text)
}

// Parse uses the default registry.
func Parse(text string, key FormatKey) ([]Entry, error) {
	return defaultRegistry.Parse(text, key)
}

// Format uses the default registry.
func Format(entries []Entry, key FormatKey) string {
	return defaultRegistry.Format(entries, key)
}

// Reformat uses the default registry.
func Reformat(text string, key FormatKey) (string, error) {
	return defaultRegistry.Reformat(text, key)
}

// Convert uses the default registry.
func Convert(text string, from, to FormatKey) (ConvertResult, error) {
	return defaultRegistry.Convert(text, from, to)
}

// Lookup uses the default registry.
func Lookup(key FormatKey) (Definition, bool) {
	return defaultRegistry.Lookup(key)
}

// LookupByDisplayName uses the default registry.
func LookupByDisplayName(name string) (Definition, bool) {
	return defaultRegistry.LookupByDisplayName(name)
}

// Resolve uses the default registry.
func Resolve(name string) (FormatKey, bool) {
	return defaultRegistry.Resolve(name)
}

func stripBOM(text string) string {
	return strings.TrimPrefix(text, "\ufeff")
}
