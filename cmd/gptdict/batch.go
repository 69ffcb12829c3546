package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/natsumerinchan/GPTDictEditor/internal/batch"
	"github.com/natsumerinchan/GPTDictEditor/internal/dictionary"
	"github.com/spf13/cobra"
)

func newBatchCommand() *cobra.Command {
	from := newFormatFlag(dictionary.Auto, true)
	to := newFormatFlag(dictionary.FormatGPPGUITOML, false)
	var (
		outDir     string
		jobs       int
		reportFile string
	)

	command := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Convert every .json, .toml and .txt dictionary under a directory",
		Args:  cobra.ExactArgs(1),
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
			if !cmd.Flags().Changed("jobs") {
				jobs = cfg.Batch.Jobs
			}

			converter := batch.NewConverter(dictionary.Default(), from.key, to.key, jobs)
			report, err := converter.Run(cmd.Context(), args[0], outDir)
			if err != nil {
				return fmt.Errorf("converter.Run > %w", err)
			}

			if reportFile != "" {
				if err := writeReportFile(reportFile, report); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, result := range report.Results {
				if result.Error != "" {
					color.New(color.FgRed).Fprintf(out, "✗ %s: %s\n", result.Source, result.Error)
					continue
				}
				color.New(color.FgGreen).Fprintf(out, "✓ %s -> %s (%s, %d entries)\n",
					result.Source, result.Output, result.Format, result.Entries)
			}
			fmt.Fprintf(out, "Converted %d file(s), %d failed\n", report.Converted, report.Failed)

			if report.HasFailures() {
				return fmt.Errorf("batch conversion failed for %d file(s)", report.Failed)
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.Var(from, "from", fmt.Sprintf("Input format. Possible values are %v", from.choices()))
	flags.Var(to, "to", fmt.Sprintf("Output format. Possible values are %v", to.choices()))
	flags.StringVar(&outDir, "out", "", "Output directory")
	flags.IntVar(&jobs, "jobs", 4, "Number of files converted concurrently")
	flags.StringVar(&reportFile, "report", "", "Write a YAML report to this file")
	_ = command.MarkFlagRequired("out")
	return command
}

func writeReportFile(path string, report batch.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	if err := batch.WriteReport(file, report); err != nil {
		return fmt.Errorf("batch.WriteReport > %w", err)
	}
	return nil
}
