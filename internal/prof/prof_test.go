package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JakobDegen/captures/internal/prof"
)

func TestStart_EmptyOptionsIsNoOp(t *testing.T) {
	s, err := prof.Start(prof.Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Stop()
	s.Stop() // idempotent
}

func TestStop_NilSession(t *testing.T) {
	var s *prof.Session
	s.Stop()
}

func TestSession_WritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := prof.Options{
		CPUPath: filepath.Join(dir, "cpu.out"),
		MemPath: filepath.Join(dir, "mem.out"),
	}

	s, err := prof.Start(opts)
	if err != nil {
		t.Fatal(err)
	}
	s.Stop()

	for _, p := range []string{opts.CPUPath, opts.MemPath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}

func TestStart_BadCPUPath(t *testing.T) {
	_, err := prof.Start(prof.Options{CPUPath: filepath.Join(t.TempDir(), "missing", "cpu.out")})
	if err == nil {
		t.Fatal("want error for unwritable cpu profile path")
	}
}
