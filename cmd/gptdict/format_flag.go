package main

import (
	"fmt"

	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/spf13/pflag"
)

// formatFlag accepts a format key, display name or alias.
type formatFlag struct {
	key       dictionary.FormatKey
	allowAuto bool
}

func newFormatFlag(key dictionary.FormatKey, allowAuto bool) *formatFlag {
	return &formatFlag{key: key, allowAuto: allowAuto}
}

func (f *formatFlag) Set(val string) error {
	key, ok := dictionary.Resolve(val)
	if !ok || (key == dictionary.Auto && !f.allowAuto) {
		return fmt.Errorf("invalid format: %s. Possible values are %v", val, f.choices())
	}
	f.key = key
	return nil
}

func (f *formatFlag) String() string {
	return string(f.key)
}

func (f *formatFlag) Type() string {
	return "format"
}

func (f *formatFlag) choices() []string {
	var choices []string
	if f.allowAuto {
		choices = append(choices, string(dictionary.Auto))
	}
	for _, definition := range dictionary.Default().Definitions() {
		choices = append(choices, string(definition.Key))
	}
	return choices
}

type outputFormat string

const (
	outputFormatTable outputFormat = "table"
	outputFormatYAML  outputFormat = "yaml"
)

func (o *outputFormat) Set(val string) error {
	for _, format := range allOutputFormats {
		if val == string(format) {
			*o = format
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s", val)
}

func (o outputFormat) String() string {
	return string(o)
}

func (o *outputFormat) Type() string {
	return "output"
}

var (
	_                pflag.Value = (*formatFlag)(nil)
	_                pflag.Value = (*outputFormat)(nil)
	allOutputFormats             = []outputFormat{outputFormatTable, outputFormatYAML}
)
