package dictionary

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw file contents to text. A UTF-8 BOM is dropped and
// UTF-16 input with a BOM is transcoded; anything else is read as UTF-8.
func Decode(r io.Reader) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	contents, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", fmt.Errorf("io.ReadAll > %w", err)
	}
	return string(contents), nil
}

func ReadFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	text, err := Decode(file)
	if err != nil {
		return "", fmt.Errorf("Decode(%s) > %w", path, err)
	}
	return text, nil
}

// WriteFile writes text as UTF-8 without a BOM, creating parent directories.
func WriteFile(path string, text string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

// SuggestOutputPath replaces the extension of inputPath with the extension of the target format.
func SuggestOutputPath(inputPath string, key FormatKey) string {
	definition, ok := Lookup(key)
	extension := ".txt"
	if ok {
		extension = definition.Extension
	}
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(inputPath), base+extension)
}
