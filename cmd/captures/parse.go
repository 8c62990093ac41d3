package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JakobDegen/captures/internal/diagfmt"
	"github.com/JakobDegen/captures/internal/driver"
	"github.com/JakobDegen/captures/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.cap",
	Short: "Parse a capture input and dump its syntax tree",
	Long: `Parse reads a capture input (directives followed by a closure) and
dumps the closure's syntax tree without expanding anything`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	reportDiagnostics(cmd, result.Bag, result.FileSet)

	if !result.OK {
		return fmt.Errorf("parsing failed with %d diagnostics", result.Bag.Len())
	}

	for i, d := range result.Input.Assigned {
		fmt.Fprintf(os.Stdout, "Directive[%d]: %s\n", i, describeDirective(result, d))
	}
	for i, d := range result.Input.All {
		fmt.Fprintf(os.Stdout, "All[%d]: %s\n", i, result.Builder.Strings.MustLookup(d.Name))
	}

	return diagfmt.FormatASTPretty(os.Stdout, result.Builder, result.Input.Closure, result.FileSet)
}

func describeDirective(result *driver.ParseResult, d parser.Directive) string {
	out := d.Kind.String()
	if d.Mut {
		out += " mut"
	}
	return out + " " + result.Builder.Strings.MustLookup(d.Name)
}
