package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/natsumerinchan/GPTDictEditor/internal/config"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary/remote"
)

const stdinSource = "-"

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// readSource reads a dictionary from a file path, stdin ("-") or an http(s) URL.
func readSource(ctx context.Context, cfg *config.Config, stdin io.Reader, source string) (string, error) {
	switch {
	case source == stdinSource:
		text, err := dictionary.Decode(stdin)
		if err != nil {
			return "", fmt.Errorf("dictionary.Decode(stdin) > %w", err)
		}
		return text, nil
	case remote.IsURL(source):
		reader := remote.NewReader(cfg.Remote.ReaderConfig())
		defer func() {
			_ = reader.Close()
		}()
		text, err := reader.Fetch(ctx, source)
		if err != nil {
			return "", fmt.Errorf("reader.Fetch(%s) > %w", source, err)
		}
		return text, nil
	default:
		text, err := dictionary.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("dictionary.ReadFile > %w", err)
		}
		return text, nil
	}
}

// sourceName returns a file name usable to derive an output path for source.
func sourceName(source string) string {
	if source == stdinSource {
		return "dictionary"
	}
	if remote.IsURL(source) {
		if parsed, err := url.Parse(source); err == nil {
			if name := path.Base(parsed.Path); name != "/" && name != "." {
				return name
			}
		}
		return "dictionary"
	}
	return filepath.Base(source)
}

// resolveOutputPath maps an output flag to a file path.
// An existing directory receives a file named after the source with the target extension.
func resolveOutputPath(output string, source string, key dictionary.FormatKey) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return dictionary.SuggestOutputPath(filepath.Join(output, sourceName(source)), key)
	}
	if strings.HasSuffix(output, string(os.PathSeparator)) {
		return dictionary.SuggestOutputPath(filepath.Join(output, sourceName(source)), key)
	}
	return output
}

// detectFormat resolves dictionary.Auto by detection.
func detectFormat(text string, key dictionary.FormatKey) (dictionary.FormatKey, error) {
	if key != dictionary.Auto {
		return key, nil
	}
	detected, ok := dictionary.Detect(text)
	if !ok {
		return "", dictionary.ErrUndetermined
	}
	return detected, nil
}
