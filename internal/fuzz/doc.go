// Package fuzztests houses Go fuzz harnesses that exercise the front half of
// the expansion pipeline (source -> lexer -> parser -> capture planning). Its
// goal is to smoke test robustness and guard against panics or hangs on
// arbitrary inputs.
//
// It does not generate corpora, write files, or run the CLI.
package fuzztests
