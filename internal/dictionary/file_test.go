package dictionary

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "utf-8",
			input: []byte("cat\t猫"),
			want:  "cat\t猫",
		},
		{
			name:  "utf-8 with bom",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("cat\t猫")...),
			want:  "cat\t猫",
		},
		{
			name:  "utf-16le with bom",
			input: []byte{0xFF, 0xFE, 'c', 0x00, 'a', 0x00, 't', 0x00},
			want:  "cat",
		},
		{
			name:  "empty",
			input: []byte{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFa\tb"), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\tb", got)

	_, err = ReadFile(filepath.Join(tmpDir, "missing.txt"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "dict.toml")

	require.NoError(t, WriteFile(path, "gptDict = [\n]"))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gptDict = [\n]", string(contents))
}

func TestSuggestOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   FormatKey
		want  string
	}{
		{
			name:  "json to tsv",
			input: filepath.Join("dicts", "glossary.json"),
			key:   FormatGalTranslTSV,
			want:  filepath.Join("dicts", "glossary.txt"),
		},
		{
			name:  "tsv to toml",
			input: "glossary.txt",
			key:   FormatGPPGUITOML,
			want:  "glossary.toml",
		},
		{
			name:  "no extension",
			input: filepath.Join("dicts", "glossary"),
			key:   FormatAiNieeJSON,
			want:  filepath.Join("dicts", "glossary.json"),
		},
		{
			name:  "unknown format falls back to txt",
			input: "glossary.json",
			key:   "srt",
			want:  "glossary.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestOutputPath(tt.input, tt.key))
		})
	}
}
