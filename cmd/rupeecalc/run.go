package main

import (
	"fmt"
	"strings"

	"github.com/rupeecalc/rupee-calculator/internal/config"
	"github.com/rupeecalc/rupee-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		configFile string
		format     string
		outputDir  string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every calculation in a YAML request file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parser := config.NewInputParser()
			file, err := parser.LoadFromFile(configFile)
			if err != nil {
				return err
			}
			requests, err := parser.NamedCalculations(file)
			if err != nil {
				return err
			}
			report, err := root.engine().RunAll(cmd.Context(), requests)
			if err != nil {
				return err
			}

			if outputDir == "" {
				if output.NormalizeFormatName(format) == "all" {
					return fmt.Errorf("format %q writes several files; set --output-dir", format)
				}
				f, err := output.LookupFormatter(format)
				if err != nil {
					return err
				}
				return output.WriteFormatted(cmd.OutOrStdout(), f, report)
			}

			files, err := output.GenerateReport(report, format, outputDir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", f)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML request file")
	cmd.Flags().StringVarP(&format, "format", "f", "console",
		"output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+", all)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write a timestamped report file here instead of stdout")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example request file covering every calculator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "rupeecalc.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			parser := config.NewInputParser()
			if err := parser.SaveToFile(parser.CreateExampleConfiguration(), filename); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", filename)
			return nil
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and their aliases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintln(out, "Aliases:", strings.Join(output.AvailableFormatAliases(), ", "))
		},
	}
}
