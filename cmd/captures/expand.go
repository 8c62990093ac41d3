package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JakobDegen/captures/internal/diagfmt"
	"github.com/JakobDegen/captures/internal/driver"
	"github.com/JakobDegen/captures/internal/format"
	"github.com/JakobDegen/captures/internal/observ"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file.cap|directory>",
	Short: "Expand capture directives into an explicit rebinding block",
	Long: `Expand parses a capture input (directives followed by a closure) and
prints the expansion: exterior let statements for each directive, then the
closure with its body rewrapped. With --only the body is additionally
rewritten so that only directive-named upvars reach the caller's bindings`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("only", false, "hygienic mode: rename everything except directive upvars")
	expandCmd.Flags().String("format", "text", "output format (text|ast)")
	expandCmd.Flags().Bool("cache", false, "cache expansion results on disk")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	expandCmd.Flags().Bool("timings", false, "print per-phase timings to stderr (single file only)")
}

func runExpand(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch outFormat {
	case "text", "ast":
	default:
		return fmt.Errorf("unknown format: %s", outFormat)
	}

	opts, err := expandOptions(cmd)
	if err != nil {
		return err
	}
	// AST output needs the expansion tree, which a cache hit cannot carry.
	opts.TreeRequired = outFormat == "ast"

	st, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !st.IsDir() {
		timings, err := cmd.Flags().GetBool("timings")
		if err != nil {
			return fmt.Errorf("failed to get timings flag: %w", err)
		}
		if timings {
			opts.Timer = observ.NewTimer()
		}
		result, err := driver.Expand(inputPath, opts)
		if err != nil {
			return fmt.Errorf("expansion failed: %w", err)
		}
		if timings {
			fmt.Fprint(os.Stderr, opts.Timer.Summary())
		}
		return emitExpansion(cmd, result, outFormat)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	results, err := driver.ExpandDir(cmd.Context(), inputPath, opts, jobs)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	failed := 0
	for _, r := range results {
		fmt.Fprintf(os.Stdout, "// %s\n", r.Path)
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.Err)
			failed++
			continue
		}
		if err := emitExpansion(cmd, r.Result, outFormat); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to expand", failed, len(results))
	}
	return nil
}

func expandOptions(cmd *cobra.Command) (driver.ExpandOptions, error) {
	only, err := cmd.Flags().GetBool("only")
	if err != nil {
		return driver.ExpandOptions{}, fmt.Errorf("failed to get only flag: %w", err)
	}
	if !cmd.Flags().Changed("only") {
		only = cfg.Expand.Only
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.ExpandOptions{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return driver.ExpandOptions{}, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if !cmd.Flags().Changed("cache") {
		useCache = cfg.Expand.Cache
	}

	opts := driver.ExpandOptions{
		Only:           only,
		MaxDiagnostics: maxDiagnostics,
		Format: format.Options{
			IndentWidth: cfg.Output.IndentWidth,
			UseTabs:     cfg.Output.UseTabs,
		},
	}
	if useCache {
		cache, err := driver.OpenDiskCache("captures")
		if err != nil {
			return driver.ExpandOptions{}, fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func emitExpansion(cmd *cobra.Command, result *driver.ExpandResult, outFormat string) error {
	reportDiagnostics(cmd, result.Bag, result.FileSet)

	if result.Output == nil && !result.Root.IsValid() {
		return fmt.Errorf("expansion failed with %d diagnostics", result.Bag.Len())
	}

	if outFormat == "ast" {
		return diagfmt.FormatASTPretty(os.Stdout, result.Builder, result.Root, result.FileSet)
	}

	_, err := os.Stdout.Write(result.Output)
	return err
}
