package llm

import (
	"testing"
	"time"
)

func TestCallStatsSnapshotPercentiles(t *testing.T) {
	stats := NewCallStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(ms, 10, 2)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.InputTokens != 50 || snap.OutputTokens != 10 || snap.Calls != 5 {
		t.Fatalf("unexpected totals: %+v", snap)
	}
}

func TestCallStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewCallStats(10 * time.Millisecond)
	stats.Record(100, 1, 1)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}
	// Totals survive pruning.
	if snap.Calls != 1 || snap.InputTokens != 1 {
		t.Fatalf("expected lifetime totals to remain, got %+v", snap)
	}
}

func TestCallStatsErrorsAndNegativeDuration(t *testing.T) {
	stats := NewCallStats(time.Hour)
	stats.Record(-10, 0, 0)
	stats.RecordError()
	stats.RecordError()

	snap := stats.Snapshot()
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.Errors != 2 {
		t.Fatalf("expected 2 errors, got %d", snap.Errors)
	}
}
