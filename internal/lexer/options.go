package lexer

import (
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/source"
)

type Options struct {
	// Reporter may be nil; lexical errors are then dropped but lexing continues.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
