package main

import (
	"testing"

	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFlag_Set(t *testing.T) {
	tests := []struct {
		name      string
		allowAuto bool
		value     string
		want      dictionary.FormatKey
		wantErr   bool
	}{
		{name: "key", value: "GPPCLI_TOML", want: dictionary.FormatGPPCLITOML},
		{name: "alias", value: "tsv", want: dictionary.FormatGalTranslTSV},
		{name: "display name", value: "AiNiee/LinguaGacha JSON格式", want: dictionary.FormatAiNieeJSON},
		{name: "auto allowed", allowAuto: true, value: "auto", want: dictionary.Auto},
		{name: "auto rejected", allowAuto: false, value: "auto", wantErr: true},
		{name: "unknown", allowAuto: true, value: "srt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := newFormatFlag(dictionary.FormatGPPGUITOML, tt.allowAuto)
			err := flag.Set(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid format")
				assert.Equal(t, dictionary.FormatGPPGUITOML, flag.key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, flag.key)
			assert.Equal(t, string(tt.want), flag.String())
		})
	}
}

func TestFormatFlag_choices(t *testing.T) {
	assert.Equal(t, []string{"auto", "GPPCLI_TOML", "GPPGUI_TOML", "GalTransl_TSV", "AiNiee_JSON"}, newFormatFlag(dictionary.Auto, true).choices())
	assert.Equal(t, []string{"GPPCLI_TOML", "GPPGUI_TOML", "GalTransl_TSV", "AiNiee_JSON"}, newFormatFlag("", false).choices())
	assert.Equal(t, "format", newFormatFlag("", false).Type())
}

func TestOutputFormat_Set(t *testing.T) {
	var output outputFormat
	require.NoError(t, output.Set("yaml"))
	assert.Equal(t, outputFormatYAML, output)
	assert.Error(t, output.Set("xml"))
	assert.Equal(t, "output", output.Type())
}
