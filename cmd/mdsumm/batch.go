package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/mdsumm/internal/config"
	"github.com/dgallion1/mdsumm/internal/httputil"
	"github.com/dgallion1/mdsumm/internal/llm"
	"github.com/dgallion1/mdsumm/internal/pipeline"
)

func newLLMClient(c config.Config) *llm.Client {
	opts := []llm.Option{
		llm.WithMaxTokens(c.MaxTokens),
		llm.WithTemperature(c.Temperature),
		llm.WithRateLimit(c.RequestsPerMinute),
	}
	if c.AnthropicBaseURL != "" {
		opts = append(opts, llm.WithBaseURL(c.AnthropicBaseURL))
	}
	return llm.NewClient(c.AnthropicAPIKey, c.Model, opts...)
}

func newHTTPClient(c config.Config, log *slog.Logger) *httputil.Client {
	return httputil.New(c.HTTPTimeout, c.UserAgent, log)
}

// logUsage reports token usage and latency once a command is done.
func logUsage(log *slog.Logger, client *llm.Client) {
	s := client.Stats().Snapshot()
	if s.Calls == 0 && s.Errors == 0 {
		return
	}
	log.Info("claude usage",
		"model", client.Model(),
		"calls", s.Calls,
		"errors", s.Errors,
		"input_tokens", s.InputTokens,
		"output_tokens", s.OutputTokens,
		"p50_ms", s.P50Ms,
		"p95_ms", s.P95Ms,
	)
}

// progress prints one line per settled item.
func progress(w io.Writer, verb string) func(pipeline.ItemSnapshot) {
	return func(s pipeline.ItemSnapshot) {
		switch s.Status {
		case pipeline.StatusCompleted:
			fmt.Fprintf(w, "%s: %s -> %s\n", verb, s.Input, s.Output)
		case pipeline.StatusSkipped:
			fmt.Fprintf(w, "skipped: %s (%s)\n", s.Input, s.Reason)
		case pipeline.StatusFailed:
			fmt.Fprintf(w, "failed: %s: %v\n", s.Input, s.Err)
		}
	}
}

// runBatch collects the files named by args (defaultDir when empty) and
// feeds them to proc. The error is non-nil when a path was missing or any
// item failed.
func runBatch(ctx context.Context, w io.Writer, proc pipeline.Processor, args []string, defaultDir, verb string) error {
	paths, pathErr := pipeline.CollectPaths(args, defaultDir)
	if pathErr != nil {
		fmt.Fprintf(w, "failed: %v\n", pathErr)
	}
	if len(args) == 0 {
		logger.Info("processing default directory", "dir", defaultDir)
	}

	runner := pipeline.NewRunner(proc, cfg.Workers, logger)
	runner.OnDone = progress(w, verb)
	res := runner.Run(ctx, paths)

	fmt.Fprintf(w, "%d %s, %d skipped, %d failed\n", res.Processed, verb, res.Skipped, res.Failed)
	if pathErr != nil || res.Failed > 0 {
		return fmt.Errorf("%d item(s) failed", res.Failed+countErrs(pathErr))
	}
	return nil
}

func countErrs(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}
