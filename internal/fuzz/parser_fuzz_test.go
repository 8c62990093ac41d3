package fuzztests

import (
	"testing"
	"time"

	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/capture"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/format"
	"github.com/JakobDegen/captures/internal/lexer"
	"github.com/JakobDegen/captures/internal/parser"
	"github.com/JakobDegen/captures/internal/source"
)

// parseTimeout is the maximum time allowed for one input end to end.
const parseTimeout = 5 * time.Second

func FuzzParseAndExpand(f *testing.F) {
	addCorpusSeeds(f)

	// Edge cases that stress directive recovery.
	f.Add([]byte("clone x move |y| x"))      // missing comma after directive
	f.Add([]byte("clone , move || 1"))       // missing name
	f.Add([]byte("with x = , move || x"))    // empty with expression
	f.Add([]byte("all, all, || x"))          // repeated all
	f.Add([]byte("ref ref ref x, move ||"))  // keyword pileup
	f.Add([]byte("clone x, clone x, || x"))  // duplicate plus needs-move
	f.Add([]byte("|||| 1"))                  // pipes all the way down
	f.Add([]byte("move |x| move |y| x + y")) // nested closures

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)

			fs := source.NewFileSet()
			fileID := fs.AddVirtual("fuzz.cap", input)
			file := fs.Get(fileID)

			bag := diag.NewBag(128)
			reporter := diag.BagReporter{Bag: bag}
			lx := lexer.New(file, lexer.Options{Reporter: reporter})

			builder := ast.NewBuilder(ast.Hints{})
			opts := parser.Options{
				Reporter:  reporter,
				MaxErrors: 128,
			}

			in, _, ok := parser.ParseCaptureInput(file, lx, builder, opts)
			if !ok || bag.HasErrors() {
				return
			}
			exp := capture.ExpandOnly(builder, &in)
			if !exp.Root.IsValid() {
				return
			}
			_, _ = format.PrintExpr(builder, exp.Root, format.Options{})
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("pipeline hang detected: input took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
