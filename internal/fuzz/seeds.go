package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // upper bound for corpus entries
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addDirectiveSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".cap" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func addDirectiveSeeds(f *testing.F) {
	seeds := []string{
		"",
		"|x| x",
		"move || a + b",
		"clone x, move |y| x + y",
		"ref x, move || x.len()",
		"ref mut buf, move || buf.push(1)",
		"with total = count * 2, move || total",
		"all a, || a + b + c",
		"clone a, clone b, with c = a + b, move || c",
		"clone x, clone x, move || x",
		"ref x, || x",
		"all mut, move || a",
		"clone x move |y| x",
		"async move || fetch(url).await",
		"clone state, move |req| match req { Req::Get(k) => state.get(k), _ => None, }",
		"with guard = lock.acquire(), move || { let x = guard.read(); x + 1 }",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
