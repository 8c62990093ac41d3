// Package diag defines the diagnostic model shared by the lexer, the general
// parser, and the capture-directive parser.
//
// Diagnostic is the central record: a Severity, a compact numeric Code with a
// stable string form, a human-oriented Message, the primary source.Span, and
// optional Notes adding secondary context.
//
// Producers emit through a Reporter so they stay decoupled from storage; the
// standard implementation is BagReporter, which appends into a Bag. The Bag is
// the "combined diagnostic" of a capture expansion: the directive parser keeps
// reporting into it while recovering from malformed directives, so one bad
// invocation surfaces every problem in a single listing instead of failing on
// the first. Rendering lives in internal/diagfmt; this package performs no
// formatting or IO.
package diag
