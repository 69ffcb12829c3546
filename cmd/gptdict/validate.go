package main

import (
	"fmt"
	"io"

	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	from := newFormatFlag(dictionary.Auto, true)
	target := newFormatFlag("", false)

	command := &cobra.Command{
		Use:   "validate <source>",
		Short: "Report empty, duplicated and format-unsafe entries of a dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("from") {
				from.key = cfg.Conversion.Input()
			}

			source := args[0]
			text, err := readSource(cmd.Context(), cfg, cmd.InOrStdin(), source)
			if err != nil {
				return err
			}
			key, err := detectFormat(text, from.key)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			entries, err := dictionary.Parse(text, key)
			if err != nil {
				return fmt.Errorf("dictionary.Parse(%s) > %w", source, err)
			}

			result := dictionary.NewValidator(source, target.key).Validate(entries)
			displayValidationResults(cmd.OutOrStdout(), result)

			if result.HasErrors() {
				return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.Var(from, "from", fmt.Sprintf("Input format. Possible values are %v", from.choices()))
	flags.Var(target, "target", fmt.Sprintf("Also check that entries survive conversion to this format. Possible values are %v", target.choices()))
	return command
}

func displayValidationResults(w io.Writer, result *dictionary.ValidationResult) {
	fmt.Fprintln(w, "\n=== Validation Results ===")

	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "✗ Errors (%d):\n", len(result.Errors))
		for _, err := range result.Errors {
			fmt.Fprintf(w, "  - %s\n", err.Error())
		}
		fmt.Fprintln(w)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "⚠ Warnings (%d):\n", len(result.Warnings))
		// Show only first 10 to avoid cluttering output
		displayCount := min(len(result.Warnings), 10)
		for i := 0; i < displayCount; i++ {
			fmt.Fprintf(w, "  - %s\n", result.Warnings[i].Error())
		}
		if len(result.Warnings) > 10 {
			fmt.Fprintf(w, "  ... and %d more\n", len(result.Warnings)-10)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "=== Summary ===")
	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		fmt.Fprintln(w, "✓ All validations passed!")
	} else {
		if len(result.Errors) > 0 {
			fmt.Fprintf(w, "✗ Total errors: %d\n", len(result.Errors))
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintf(w, "⚠ Total warnings: %d\n", len(result.Warnings))
		}
	}
	fmt.Fprintln(w)
}
