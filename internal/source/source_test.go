package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JakobDegen/captures/internal/source"
)

func TestInterner_Dedup(t *testing.T) {
	in := source.NewInterner()
	a := in.Intern("counter")
	b := in.Intern("counter")
	if a != b {
		t.Errorf("same string interned to different IDs: %d vs %d", a, b)
	}
	c := in.Intern("other")
	if c == a {
		t.Errorf("distinct strings share ID %d", a)
	}
	if got := in.MustLookup(a); got != "counter" {
		t.Errorf("MustLookup = %q", got)
	}
}

func TestInterner_EmptyStringIsZero(t *testing.T) {
	in := source.NewInterner()
	if id := in.Intern(""); id != source.NoStringID {
		t.Errorf("empty string ID = %d, want %d", id, source.NoStringID)
	}
	if _, ok := in.Lookup(source.StringID(999)); ok {
		t.Error("Lookup of unknown ID should report false")
	}
}

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name string
		a, b source.Span
		want source.Span
	}{
		{
			name: "disjoint",
			a:    source.Span{File: 1, Start: 10, End: 12},
			b:    source.Span{File: 1, Start: 20, End: 25},
			want: source.Span{File: 1, Start: 10, End: 25},
		},
		{
			name: "contained",
			a:    source.Span{File: 1, Start: 5, End: 30},
			b:    source.Span{File: 1, Start: 10, End: 12},
			want: source.Span{File: 1, Start: 5, End: 30},
		},
		{
			name: "different files keep receiver",
			a:    source.Span{File: 1, Start: 5, End: 8},
			b:    source.Span{File: 2, Start: 0, End: 100},
			want: source.Span{File: 1, Start: 5, End: 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileSet_Resolve(t *testing.T) {
	fs := source.NewFileSet()
	content := "clone x,\nmove |y| x\n"
	fileID := fs.AddVirtual("test.cap", []byte(content))

	tests := []struct {
		off       uint32
		wantLine  uint32
		wantCol   uint32
		describes string
	}{
		{0, 1, 1, "start of file"},
		{6, 1, 7, "x on line 1"},
		{9, 2, 1, "start of line 2"},
		{14, 2, 6, "pipe on line 2"},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(source.Span{File: fileID, Start: tt.off, End: tt.off + 1})
		if start.Line != tt.wantLine || start.Col != tt.wantCol {
			t.Errorf("%s: offset %d resolved to %d:%d, want %d:%d",
				tt.describes, tt.off, start.Line, start.Col, tt.wantLine, tt.wantCol)
		}
	}
}

func TestFileSet_LoadNormalizes(t *testing.T) {
	dir := t.TempDir()

	crlf := filepath.Join(dir, "crlf.cap")
	if err := os.WriteFile(crlf, []byte("a\r\nb"), 0o644); err != nil {
		t.Fatal(err)
	}
	bom := filepath.Join(dir, "bom.cap")
	if err := os.WriteFile(bom, []byte{0xEF, 0xBB, 0xBF, 'x'}, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	crlfID, err := fs.Load(crlf)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(fs.Get(crlfID).Content); got != "a\nb" {
		t.Errorf("CRLF content = %q, want collapsed newlines", got)
	}
	if fs.Get(crlfID).Flags&source.FileNormalizedCRLF == 0 {
		t.Error("FileNormalizedCRLF flag not set")
	}

	bomID, err := fs.Load(bom)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(fs.Get(bomID).Content); got != "x" {
		t.Errorf("BOM content = %q, want BOM stripped", got)
	}
	if fs.Get(bomID).Flags&source.FileHadBOM == 0 {
		t.Error("FileHadBOM flag not set")
	}
}

func TestFreshHygiene_NeverCallSite(t *testing.T) {
	seen := map[source.Hygiene]bool{}
	for i := 0; i < 100; i++ {
		h := source.FreshHygiene()
		if h.IsCallSite() {
			t.Fatal("FreshHygiene returned the call-site context")
		}
		if seen[h] {
			t.Fatalf("hygiene context %d issued twice", h)
		}
		seen[h] = true
	}
}
