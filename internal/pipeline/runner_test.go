package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// upperProcessor upper-cases .txt files into outDir.
type upperProcessor struct {
	inDir, outDir string
	calls         atomic.Int32
}

func (p *upperProcessor) Accepts(path string) bool { return strings.HasSuffix(path, ".txt") }

func (p *upperProcessor) Output(path string) string {
	return OutputPath(path, p.inDir, p.outDir, ".out")
}

func (p *upperProcessor) Process(ctx context.Context, in, out string) error {
	p.calls.Add(1)
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if strings.Contains(string(data), "fail") {
		return errors.New("bad content")
	}
	return WriteFile(out, []byte(strings.ToUpper(string(data))))
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")

	writeTestFile(t, filepath.Join(in, "a.txt"), "alpha")
	writeTestFile(t, filepath.Join(in, "sub", "b.txt"), "beta")
	writeTestFile(t, filepath.Join(in, "c.txt"), "fail me")
	writeTestFile(t, filepath.Join(in, "d.txt"), "delta")
	writeTestFile(t, filepath.Join(in, "image.png"), "png")
	writeTestFile(t, filepath.Join(out, "d.out"), "already done")

	paths, err := CollectPaths([]string{in}, "")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	proc := &upperProcessor{inDir: in, outDir: out}
	r := NewRunner(proc, 3, discardLog)
	var settled atomic.Int32
	r.OnDone = func(ItemSnapshot) { settled.Add(1) }

	res := r.Run(context.Background(), paths)

	if res.Processed != 2 || res.Skipped != 2 || res.Failed != 1 {
		t.Errorf("unexpected counts: processed=%d skipped=%d failed=%d", res.Processed, res.Skipped, res.Failed)
	}
	if int(settled.Load()) != len(paths) {
		t.Errorf("expected OnDone for all %d items, got %d", len(paths), settled.Load())
	}
	if proc.calls.Load() != 3 {
		t.Errorf("expected 3 Process calls, got %d", proc.calls.Load())
	}

	got, err := os.ReadFile(filepath.Join(out, "sub", "b.out"))
	if err != nil || string(got) != "BETA" {
		t.Errorf("expected nested output BETA, got %q (%v)", got, err)
	}
	got, _ = os.ReadFile(filepath.Join(out, "d.out"))
	if string(got) != "already done" {
		t.Errorf("existing output was overwritten: %q", got)
	}

	err = res.Err()
	if err == nil || !strings.Contains(err.Error(), "c.txt") || !strings.Contains(err.Error(), "bad content") {
		t.Errorf("expected joined failure for c.txt, got %v", err)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.txt"), "alpha")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := &upperProcessor{inDir: dir, outDir: filepath.Join(dir, "out")}
	res := NewRunner(proc, 1, discardLog).Run(ctx, []string{filepath.Join(dir, "a.txt")})
	if res.Failed != 1 || proc.calls.Load() != 0 {
		t.Errorf("expected one failed item and no calls, got %+v calls=%d", res, proc.calls.Load())
	}
	if !errors.Is(res.Items[0].Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", res.Items[0].Err)
	}
}

func TestBatchResult_ErrNil(t *testing.T) {
	res := BatchResult{Items: []ItemSnapshot{{Status: StatusCompleted}, {Status: StatusSkipped}}}
	if res.Err() != nil {
		t.Errorf("expected nil error, got %v", res.Err())
	}
}
