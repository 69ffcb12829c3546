package dictionary

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation finding.
type ValidationError struct {
	File        string
	Location    string
	Message     string
	Severity    string // "error" or "warning"
	Suggestions []string
}

func (e ValidationError) Error() string {
	location := ""
	if e.Location != "" {
		location = fmt.Sprintf(" (%s)", e.Location)
	}
	msg := fmt.Sprintf("%s%s: %s", e.File, location, e.Message)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" [Suggestion: %s]", strings.Join(e.Suggestions, "; "))
	}
	return msg
}

// ValidationResult contains all findings grouped by severity.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) AddError(err ValidationError) {
	err.Severity = "error"
	r.Errors = append(r.Errors, err)
}

func (r *ValidationResult) AddWarning(err ValidationError) {
	err.Severity = "warning"
	r.Warnings = append(r.Warnings, err)
}

// Validator checks parsed entries before they are written out.
type Validator struct {
	file   string
	target FormatKey
}

// NewValidator creates a validator. file is only used to label findings.
// When target is the TSV format, values that cannot survive a TSV round trip are reported.
func NewValidator(file string, target FormatKey) *Validator {
	return &Validator{
		file:   file,
		target: target,
	}
}

func (v *Validator) Validate(entries []Entry) *ValidationResult {
	result := &ValidationResult{}
	firstSeen := make(map[string]int, len(entries))

	for i, entry := range entries {
		location := fmt.Sprintf("entry #%d", i+1)

		if strings.TrimSpace(entry.Org) == "" {
			result.AddError(ValidationError{
				File:     v.file,
				Location: location,
				Message:  "empty org: the entry can never match",
			})
			continue
		}

		if first, ok := firstSeen[entry.Org]; ok {
			result.AddWarning(ValidationError{
				File:        v.file,
				Location:    location,
				Message:     fmt.Sprintf("duplicate org %q, first defined at entry #%d", entry.Org, first+1),
				Suggestions: []string{"remove one of the entries or merge their notes"},
			})
		} else {
			firstSeen[entry.Org] = i
		}

		if entry.Org == entry.Rep {
			result.AddWarning(ValidationError{
				File:     v.file,
				Location: location,
				Message:  fmt.Sprintf("org and rep are identical: %q", entry.Org),
			})
		}

		if v.target == FormatGalTranslTSV {
			v.validateTSV(result, location, entry)
		}
	}
	return result
}

func (v *Validator) validateTSV(result *ValidationResult, location string, entry Entry) {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"org", entry.Org},
		{"rep", entry.Rep},
		{"note", entry.Note},
	} {
		splitsOnTab := field.name != "note" && strings.Contains(field.value, "\t")
		if splitsOnTab || strings.Contains(field.value, "\n") {
			result.AddWarning(ValidationError{
				File:     v.file,
				Location: location,
				Message:  fmt.Sprintf("%s contains a tab or newline and will be split in TSV", field.name),
			})
			continue
		}
		if field.name != "note" && hasSpaceDelimiter(field.value) {
			result.AddWarning(ValidationError{
				File:     v.file,
				Location: location,
				Message:  fmt.Sprintf("%s contains a four-space run and will be split in TSV", field.name),
			})
		}
	}
	if strings.HasPrefix(entry.Org, tsvCommentPrefix) || strings.HasPrefix(entry.Org, tomlCommentPrefix) {
		result.AddWarning(ValidationError{
			File:     v.file,
			Location: location,
			Message:  fmt.Sprintf("org %q starts with a comment marker and will be skipped in TSV", entry.Org),
		})
	}
}
