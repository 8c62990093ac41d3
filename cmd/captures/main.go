package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JakobDegen/captures/internal/config"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/diagfmt"
	"github.com/JakobDegen/captures/internal/prof"
	"github.com/JakobDegen/captures/internal/source"
	"github.com/JakobDegen/captures/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "captures",
	Short: "Capture-directive closure expander",
	Long: `captures expands closure capture directives (ref, clone, with, all)
into explicit rebinding blocks, with optional hygienic renaming of the
closure body`,
}

// cfg holds manifest defaults discovered at startup; flags override it.
var cfg = config.Default()

func main() {
	discovered, path, err := config.Discover(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "captures: %v\n", err)
		os.Exit(1)
	}
	cfg = discovered
	_ = path

	rootCmd.Version = version.Version

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", cfg.Output.Color, "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", cfg.Expand.MaxDiagnostics, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to the given file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to the given file")
	rootCmd.PersistentFlags().String("traceprofile", "", "write a runtime trace to the given file")

	session, err := prof.Start(prof.Options{
		CPUPath:   profilePath("cpuprofile"),
		MemPath:   profilePath("memprofile"),
		TracePath: profilePath("traceprofile"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "captures: %v\n", err)
		os.Exit(1)
	}

	execErr := rootCmd.Execute()
	session.Stop()
	if execErr != nil {
		os.Exit(1)
	}
}

// profilePath reads a profiling flag directly from os.Args so profiling can
// start before cobra parses the command line.
func profilePath(name string) string {
	prefix := "--" + name
	for i, arg := range os.Args {
		if arg == prefix && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, prefix+"="); ok {
			return v
		}
	}
	return ""
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// reportDiagnostics prints the bag to stderr unless --quiet or empty.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings()) {
		return
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return
	}
	bag.Sort()
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		ShowNotes: true,
	}
	diagfmt.Pretty(os.Stderr, bag, fs, opts)
}

// useColor resolves the --color flag against stream kind.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(f)
	}
}
