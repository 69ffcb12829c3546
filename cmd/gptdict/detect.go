package main

import (
	"fmt"

	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/spf13/cobra"
)

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <source>",
		Short: "Print the format of a dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			text, err := readSource(cmd.Context(), cfg, cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			key, ok := dictionary.Detect(text)
			if !ok {
				return fmt.Errorf("%s: %w", args[0], dictionary.ErrUndetermined)
			}
			definition, _ := dictionary.Lookup(key)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", definition.Key, definition.DisplayName)
			return err
		},
	}
}
