// Package batch converts every dictionary file under a directory tree.
package batch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// SupportedExtensions lists the file types picked up by Discover.
var SupportedExtensions = map[string]bool{
	".json": true,
	".toml": true,
	".txt":  true,
}

// Result is the outcome of converting one file.
type Result struct {
	Source          string               `yaml:"source"`
	Output          string               `yaml:"output,omitempty"`
	Format          dictionary.FormatKey `yaml:"format,omitempty"`
	Entries         int                  `yaml:"entries"`
	DroppedComments int                  `yaml:"dropped_comments,omitempty"`
	Error           string               `yaml:"error,omitempty"`
}

type Report struct {
	Target    dictionary.FormatKey `yaml:"target"`
	Converted int                  `yaml:"converted"`
	Failed    int                  `yaml:"failed"`
	Results   []Result             `yaml:"results"`
}

func (r Report) HasFailures() bool {
	return r.Failed > 0
}

type Converter struct {
	registry *dictionary.Registry
	from     dictionary.FormatKey
	to       dictionary.FormatKey
	jobs     int
}

// NewConverter returns a converter writing the to format.
// from may be dictionary.Auto to detect every file separately.
func NewConverter(registry *dictionary.Registry, from, to dictionary.FormatKey, jobs int) *Converter {
	if jobs < 1 {
		jobs = 1
	}
	return &Converter{
		registry: registry,
		from:     from,
		to:       to,
		jobs:     jobs,
	}
}

// Discover returns the supported files under root, relative to root and sorted.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !SupportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("filepath.Rel > %w", err)
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filepath.WalkDir(%s) > %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run converts every file under root into outDir, keeping relative paths.
// A failing file is recorded in the report and does not stop the others.
func (c *Converter) Run(ctx context.Context, root string, outDir string) (Report, error) {
	files, err := Discover(root)
	if err != nil {
		return Report{}, err
	}

	results := make([]Result, len(files))
	outputs := make(map[string]string, len(files))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(c.jobs)
	for i, rel := range files {
		source := filepath.Join(root, rel)
		output := dictionary.SuggestOutputPath(filepath.Join(outDir, rel), c.to)
		if previous, ok := outputs[output]; ok {
			results[i] = Result{
				Source: source,
				Error:  fmt.Sprintf("output %s is already written by %s", output, previous),
			}
			continue
		}
		outputs[output] = source

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.convertFile(source, output)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Report{}, fmt.Errorf("group.Wait > %w", err)
	}

	report := Report{
		Target:  c.to,
		Results: results,
	}
	for _, result := range results {
		if result.Error != "" {
			report.Failed++
			slog.Warn("failed to convert", "source", result.Source, "error", result.Error)
			continue
		}
		report.Converted++
	}
	return report, nil
}

func (c *Converter) convertFile(source string, output string) Result {
	result := Result{Source: source}

	text, err := dictionary.ReadFile(source)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	converted, err := c.registry.Convert(text, c.from, c.to)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Format = converted.From
	result.Entries = converted.Entries
	result.DroppedComments = converted.DroppedComments

	if err := dictionary.WriteFile(output, converted.Text); err != nil {
		result.Error = err.Error()
		return result
	}
	result.Output = output
	slog.Debug("converted", "source", source, "output", output, "format", converted.From, "entries", converted.Entries)
	return result
}

func WriteReport(w io.Writer, report Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoder.Encode > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close > %w", err)
	}
	return nil
}
