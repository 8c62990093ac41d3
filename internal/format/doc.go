// Package format renders expression trees back to source text. It exists for
// the expansion pipeline: the block produced by expanding a capture input is
// synthesized, so it has no source spans to copy from and must be printed
// from the AST alone.
//
// Identifiers carrying a non-call-site hygiene tag print with a __hyg<N>
// suffix. The suffix realizes the tag as an ordinary name so the output
// re-lexes as plain source while staying unreachable from user code.
package format
