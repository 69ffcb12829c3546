package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newFormatsCommand() *cobra.Command {
	output := outputFormatTable

	command := &cobra.Command{
		Use:   "formats",
		Short: "List the supported dictionary formats in detection order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			definitions := dictionary.Default().Definitions()
			switch output {
			case outputFormatYAML:
				return writeDefinitionsYAML(cmd.OutOrStdout(), definitions)
			case outputFormatTable:
				fallthrough
			default:
				return writeDefinitionsTable(cmd.OutOrStdout(), definitions)
			}
		},
	}
	command.Flags().Var(&output, "output", fmt.Sprintf("Output format. Possible values are %v", allOutputFormats))
	return command
}

func writeDefinitionsTable(w io.Writer, definitions []dictionary.Definition) error {
	var buf bytes.Buffer
	table := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "KEY\tALIAS\tEXTENSION\tNAME")
	for _, definition := range definitions {
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			definition.Key,
			definition.Alias,
			definition.Extension,
			definition.DisplayName,
		)
	}
	if err := table.Flush(); err != nil {
		return fmt.Errorf("table.Flush > %w", err)
	}

	// The header is colored after alignment so escape codes do not count as width.
	header, rows, _ := strings.Cut(buf.String(), "\n")
	if _, err := color.New(color.Bold).Fprintln(w, header); err != nil {
		return fmt.Errorf("color.Fprintln > %w", err)
	}
	_, err := io.WriteString(w, rows)
	return err
}

func writeDefinitionsYAML(w io.Writer, definitions []dictionary.Definition) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(definitions); err != nil {
		return fmt.Errorf("encoder.Encode > %w", err)
	}
	return encoder.Close()
}
