package dictionary_test

import (
	"errors"
	"testing"

	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	mock_dictionary "github.com/natsumerinchan/GPTDictEditor/internal/mocks/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockCodec(ctrl *gomock.Controller, key dictionary.FormatKey) *mock_dictionary.MockCodec {
	codec := mock_dictionary.NewMockCodec(ctrl)
	codec.EXPECT().Definition().Return(dictionary.Definition{
		Key:         key,
		DisplayName: string(key) + " format",
		Extension:   ".dict",
	}).AnyTimes()
	return codec
}

func TestRegistry_DetectPriority(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(first, second *mock_dictionary.MockCodec)
		want   dictionary.FormatKey
		wantOK bool
	}{
		{
			name: "first match wins",
			setup: func(first, second *mock_dictionary.MockCodec) {
				first.EXPECT().Detect("text").Return(true)
			},
			want:   "first",
			wantOK: true,
		},
		{
			name: "falls through to later codecs",
			setup: func(first, second *mock_dictionary.MockCodec) {
				first.EXPECT().Detect("text").Return(false)
				second.EXPECT().Detect("text").Return(true)
			},
			want:   "second",
			wantOK: true,
		},
		{
			name: "no match",
			setup: func(first, second *mock_dictionary.MockCodec) {
				first.EXPECT().Detect("text").Return(false)
				second.EXPECT().Detect("text").Return(false)
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			first := newMockCodec(ctrl, "first")
			second := newMockCodec(ctrl, "second")
			tt.setup(first, second)

			registry := dictionary.NewRegistry(first, second)
			got, ok := registry.Detect("\ufeff text \n")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Convert(t *testing.T) {
	entries := []dictionary.Entry{{Org: "a", Rep: "b"}}

	ctrl := gomock.NewController(t)
	source := newMockCodec(ctrl, "source")
	target := newMockCodec(ctrl, "target")
	source.EXPECT().Detect("input").Return(true)
	source.EXPECT().Parse("input").Return(entries, nil)
	target.EXPECT().Format(entries).Return("output")

	got, err := dictionary.NewRegistry(source, target).Convert("input", dictionary.Auto, "target")
	require.NoError(t, err)
	assert.Equal(t, dictionary.ConvertResult{
		From:    "source",
		To:      "target",
		Entries: 1,
		Text:    "output",
	}, got)
}

func TestRegistry_ParseWrapsCodecErrors(t *testing.T) {
	parseErr := errors.New("boom")

	ctrl := gomock.NewController(t)
	codec := newMockCodec(ctrl, "broken")
	codec.EXPECT().Parse("input").Return(nil, parseErr)

	_, err := dictionary.NewRegistry(codec).Parse("input", "broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, parseErr)
	assert.Equal(t, "parse broken: boom", err.Error())
}
