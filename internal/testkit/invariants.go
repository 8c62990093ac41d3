package testkit

import (
	"cmp"
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/parser"
	"github.com/JakobDegen/captures/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// capture input:
// 1) every directive has a non-empty keyword span within file content bounds
// 2) directives appear in source order and do not overlap
// 3) the closure span is non-empty, in bounds, and starts after every directive
func CheckSpanInvariants(b *ast.Builder, in *parser.CaptureInput, sf *source.File) error {
	if b == nil || in == nil || sf == nil {
		return fmt.Errorf("nil builder, input, or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	checkSpan := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span points to different file id: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		return nil
	}

	var prevEnd uint32
	all := make([]parser.Directive, 0, len(in.Assigned)+len(in.All))
	all = append(all, in.Assigned...)
	all = append(all, in.All...)
	// Assigned and All are each in source order but may interleave.
	slices.SortFunc(all, func(a, b parser.Directive) int {
		return cmp.Compare(a.KeywordSpan.Start, b.KeywordSpan.Start)
	})
	for i, d := range all {
		if err := checkSpan(d.Kind.String(), d.KeywordSpan); err != nil {
			return err
		}
		if d.KeywordSpan.Start < prevEnd {
			return fmt.Errorf("directive %d (%s) overlaps an earlier one: %v", i, d.Kind, d.KeywordSpan)
		}
		end := d.KeywordSpan.End
		if d.NameSpan.End > end {
			if err := checkSpan(d.Kind.String()+" name", d.NameSpan); err != nil {
				return err
			}
			end = d.NameSpan.End
		}
		if d.Expr.IsValid() {
			sp := b.Exprs.Get(d.Expr).Span
			if err := checkSpan("with expression", sp); err != nil {
				return err
			}
			if sp.End > end {
				end = sp.End
			}
		}
		prevEnd = end
	}

	if !in.Closure.IsValid() {
		return fmt.Errorf("capture input has no closure")
	}
	closureSpan := b.Exprs.Get(in.Closure).Span
	if err := checkSpan("closure", closureSpan); err != nil {
		return err
	}
	if closureSpan.Start < prevEnd {
		return fmt.Errorf("closure span %v starts before last directive ends at %d", closureSpan, prevEnd)
	}
	return nil
}
