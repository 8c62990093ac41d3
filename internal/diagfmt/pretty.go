package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It walks bag.Items()
// in order (callers sort the bag first). Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline under the span, optional
// context lines around it, and notes in the same layout.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}

	sevColor := map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgCyan),
	}
	caretColor := color.New(color.FgGreen)
	for _, c := range sevColor {
		if !opts.Color {
			c.DisableColor()
		}
	}
	if !opts.Color {
		caretColor.DisableColor()
	}

	for _, d := range bag.Items() {
		printHeading(w, fs, opts, d.Primary, sevColor[d.Severity], d.Severity.String(), d.Code.ID(), d.Message)
		printSnippet(w, fs, opts, d.Primary, caretColor)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				printHeading(w, fs, opts, note.Span, sevColor[diag.SevInfo], "NOTE", "", note.Msg)
				printSnippet(w, fs, opts, note.Span, caretColor)
			}
		}
	}
}

func printHeading(w io.Writer, fs *source.FileSet, opts PrettyOpts, span source.Span, c *color.Color, sev, code, msg string) {
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)

	path := file.FormatPath(opts.PathMode.mode(), fs.BaseDir())
	label := sev
	if code != "" {
		label = sev + " " + code
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, c.Sprint(label), msg)
}

func printSnippet(w io.Writer, fs *source.FileSet, opts PrettyOpts, span source.Span, caret *color.Color) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)

	first := start.Line
	last := start.Line
	if ctx := uint32(max(int(opts.Context), 0)); ctx > 0 {
		if first > ctx {
			first -= ctx
		} else {
			first = 1
		}
		last += ctx
	}

	gutter := len(fmt.Sprintf("%d", last))
	for line := first; line <= last; line++ {
		text := file.GetLine(line)
		if text == "" && line != start.Line {
			continue
		}
		fmt.Fprintf(w, "  %*d | %s\n", gutter, line, text)
		if line == start.Line {
			fmt.Fprintf(w, "  %s | %s\n", strings.Repeat(" ", gutter), caret.Sprint(underline(text, start, end)))
		}
	}
}

// underline builds the ^~~~ marker for the span's first line. Columns are
// 1-based byte offsets within the line.
func underline(lineText string, start, end source.LineCol) string {
	col := int(start.Col)
	if col < 1 {
		col = 1
	}
	width := 1
	if end.Line == start.Line && int(end.Col) > col {
		width = int(end.Col) - col
	}
	if remaining := len(lineText) - (col - 1); width > remaining && remaining > 0 {
		width = remaining
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", col-1))
	sb.WriteString("^")
	if width > 1 {
		sb.WriteString(strings.Repeat("~", width-1))
	}
	return sb.String()
}
