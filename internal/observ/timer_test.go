package observ_test

import (
	"strings"
	"testing"
	"time"

	"github.com/JakobDegen/captures/internal/observ"
)

func TestTimer_PhasesAndReport(t *testing.T) {
	tm := observ.NewTimer()

	p := tm.Begin("parse")
	time.Sleep(time.Millisecond)
	tm.End(p, "")

	p = tm.Begin("expand")
	tm.End(p, "12 nodes")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[1].Name != "expand" {
		t.Errorf("phase names = %q, %q", report.Phases[0].Name, report.Phases[1].Name)
	}
	if report.Phases[0].DurationMS <= 0 {
		t.Error("parse phase has no duration")
	}
	if report.Phases[1].Note != "12 nodes" {
		t.Errorf("note = %q", report.Phases[1].Note)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Errorf("total %.2f below parse phase %.2f", report.TotalMS, report.Phases[0].DurationMS)
	}
}

func TestTimer_Summary(t *testing.T) {
	tm := observ.NewTimer()
	tm.End(tm.Begin("load"), "in.cap")

	s := tm.Summary()
	for _, want := range []string{"timings:", "load", "// in.cap", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestTimer_NilIsNoOp(t *testing.T) {
	var tm *observ.Timer

	idx := tm.Begin("load")
	tm.End(idx, "ignored")
	if got := tm.Report(); len(got.Phases) != 0 || got.TotalMS != 0 {
		t.Errorf("nil timer produced report %+v", got)
	}
}

func TestTimer_EndOutOfRange(t *testing.T) {
	tm := observ.NewTimer()
	tm.End(-1, "")
	tm.End(5, "")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Errorf("out of range End recorded phases: %+v", got)
	}
}
