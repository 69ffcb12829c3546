package main

import (
	"fmt"
	"log/slog"

	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary/remote"
	"github.com/spf13/cobra"
)

func newReformatCommand() *cobra.Command {
	format := newFormatFlag(dictionary.Auto, true)
	var write bool

	command := &cobra.Command{
		Use:   "reformat <source>",
		Short: "Rewrite a dictionary in the canonical layout of its format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			if write && (source == stdinSource || remote.IsURL(source)) {
				return fmt.Errorf("--write needs a local file, got %s", source)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			text, err := readSource(cmd.Context(), cfg, cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			key, err := detectFormat(text, format.key)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			formatted, err := dictionary.Reformat(text, key)
			if err != nil {
				return fmt.Errorf("dictionary.Reformat(%s) > %w", source, err)
			}

			if !write {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), formatted)
				return err
			}
			if err := dictionary.WriteFile(source, formatted); err != nil {
				return fmt.Errorf("dictionary.WriteFile > %w", err)
			}
			slog.Info("reformatted", "file", source, "format", key)
			return nil
		},
	}

	flags := command.Flags()
	flags.Var(format, "format", fmt.Sprintf("Dictionary format. Possible values are %v", format.choices()))
	flags.BoolVarP(&write, "write", "w", false, "Write the result back to the source file")
	return command
}
