package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/natsumerinchan/GPTDictEditor/internal/config"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// The generated file must pass config validation.
	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, dictionary.FormatGPPGUITOML, cfg.Conversion.Output())
	assert.Equal(t, filepath.Join(tmpDir, "cache"), cfg.Remote.CacheDirectory)
	assert.Equal(t, 2, cfg.Batch.Jobs)
}

func TestSetupBrokenConfig(t *testing.T) {
	got := SetupBrokenConfig(t, t.TempDir())

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	_, err = loader.Load()
	assert.Error(t, err)
}

func TestWriteDictionary(t *testing.T) {
	tests := []struct {
		name     string
		key      dictionary.FormatKey
		wantFile string
	}{
		{name: "json", key: dictionary.FormatAiNieeJSON, wantFile: "glossary.json"},
		{name: "gui toml", key: dictionary.FormatGPPGUITOML, wantFile: "glossary.toml"},
		{name: "tsv", key: dictionary.FormatGalTranslTSV, wantFile: "glossary.txt"},
	}

	entries := []dictionary.Entry{{Org: "cat", Rep: "猫"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			got := WriteDictionary(t, tmpDir, "glossary", tt.key, entries)
			assert.Equal(t, filepath.Join(tmpDir, tt.wantFile), got)

			text, err := dictionary.ReadFile(got)
			require.NoError(t, err)
			parsed, err := dictionary.Parse(text, tt.key)
			require.NoError(t, err)
			assert.Equal(t, entries, parsed)
		})
	}
}
