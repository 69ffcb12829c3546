package main

import (
	"fmt"
	"log/slog"

	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/spf13/cobra"
)

func newConvertCommand() *cobra.Command {
	from := newFormatFlag(dictionary.Auto, true)
	to := newFormatFlag(dictionary.FormatGPPGUITOML, false)
	var output string

	command := &cobra.Command{
		Use:   "convert <source>",
		Short: "Convert a dictionary into another format",
		Long: `Convert a dictionary into another format.

The source is a file path, "-" for stdin or an http(s) URL.
Converting into the same format reformats the dictionary instead.
Comments are only kept when the format does not change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("from") {
				from.key = cfg.Conversion.Input()
			}
			if !cmd.Flags().Changed("to") {
				to.key = cfg.Conversion.Output()
			}

			source := args[0]
			text, err := readSource(cmd.Context(), cfg, cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			result, err := dictionary.Convert(text, from.key, to.key)
			if err != nil {
				return fmt.Errorf("dictionary.Convert(%s) > %w", source, err)
			}
			if result.DroppedComments > 0 {
				slog.Warn("comments are not carried over to another format",
					"from", result.From,
					"to", result.To,
					"comments", result.DroppedComments,
				)
			}

			if output == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Text)
				return err
			}
			path := resolveOutputPath(output, source, result.To)
			if err := dictionary.WriteFile(path, result.Text); err != nil {
				return fmt.Errorf("dictionary.WriteFile > %w", err)
			}
			slog.Info("converted",
				"source", source,
				"output", path,
				"from", result.From,
				"to", result.To,
				"entries", result.Entries,
			)
			return nil
		},
	}

	flags := command.Flags()
	flags.Var(from, "from", fmt.Sprintf("Input format. Possible values are %v", from.choices()))
	flags.Var(to, "to", fmt.Sprintf("Output format. Possible values are %v", to.choices()))
	flags.StringVarP(&output, "output", "o", "", "Output file or directory. Prints to stdout when empty")
	return command
}
