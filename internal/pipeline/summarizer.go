package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/mdsumm/internal/chunker"
	"github.com/dgallion1/mdsumm/internal/llm"
)

// ErrEmptyDocument is returned when there is nothing to summarize.
var ErrEmptyDocument = errors.New("empty document")

// Completer is the model call the summarizer depends on. *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Options tunes a Summarizer.
type Options struct {
	Chunk        chunker.Config
	Recursive    bool   // Feed earlier block summaries into each later call.
	Concurrency  int    // Parallel block calls in independent mode.
	Instructions string // Extra system prompt text.
	MaxKeywords  int
}

// Summarizer turns Markdown documents into bullet summaries, splitting long
// documents into heading-aligned blocks first.
type Summarizer struct {
	llm    Completer
	opts   Options
	system string
	log    *slog.Logger
}

func NewSummarizer(c Completer, opts Options, log *slog.Logger) *Summarizer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Summarizer{
		llm:    c,
		opts:   opts,
		system: llm.BuildSystemPrompt(opts.Instructions),
		log:    log,
	}
}

// Summarize returns the summary of markdown. Documents that fit in one block
// are summarized with a single call.
func (s *Summarizer) Summarize(ctx context.Context, markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", ErrEmptyDocument
	}
	if !s.opts.Chunk.NeedsSplit(markdown) {
		return s.complete(ctx, llm.SummaryPrompt(markdown), "summary")
	}

	blocks := chunker.Split(markdown, s.opts.Chunk)
	s.log.Info("split document", "blocks", len(blocks), "chars", len(markdown), "est_tokens", chunker.EstimateTokens(markdown))
	if s.opts.Recursive {
		return s.summarizeRecursive(ctx, blocks)
	}
	return s.summarizeIndependent(ctx, blocks)
}

func (s *Summarizer) summarizeIndependent(ctx context.Context, blocks []string) (string, error) {
	results := make([]string, len(blocks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, block := range blocks {
		g.Go(func() error {
			s.log.Debug("summarizing block", "block", i, "chars", len(block), "est_tokens", chunker.EstimateTokens(block))
			summary, err := s.complete(gctx, llm.SummaryPrompt(block), fmt.Sprintf("block %d", i))
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			results[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(results, "\n\n"), nil
}

func (s *Summarizer) summarizeRecursive(ctx context.Context, blocks []string) (string, error) {
	var acc Accumulator
	for i, block := range blocks {
		s.log.Debug("summarizing block", "block", i, "previous", acc.Len(), "chars", len(block))
		summary, err := s.complete(ctx, llm.RecursivePrompt(acc.Summaries(), block), fmt.Sprintf("block %d", i))
		if err != nil {
			return "", fmt.Errorf("block %d: %w", i, err)
		}
		acc = acc.Add(summary)
	}
	return acc.Text(), nil
}

// Keywords asks the model for keywords describing markdown.
func (s *Summarizer) Keywords(ctx context.Context, markdown string) ([]string, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, ErrEmptyDocument
	}
	reply, err := withRetry(ctx, s.log, "keywords", func() (string, error) {
		return s.llm.Complete(ctx, "", llm.KeywordsPrompt(markdown))
	})
	if err != nil {
		return nil, fmt.Errorf("keywords: %w", err)
	}
	return llm.ParseKeywords(reply, s.opts.MaxKeywords), nil
}

// KeywordSource picks the text keywords are generated from: the document
// itself when it fits in one block, otherwise its summary.
func (s *Summarizer) KeywordSource(markdown, summary string) string {
	if s.opts.Chunk.NeedsSplit(markdown) {
		return summary
	}
	return markdown
}

func (s *Summarizer) complete(ctx context.Context, user, op string) (string, error) {
	return withRetry(ctx, s.log, op, func() (string, error) {
		return s.llm.Complete(ctx, s.system, user)
	})
}

// Accumulator is the ordered list of block summaries produced so far in
// recursive mode. It is a value: Add returns a new Accumulator and never
// modifies the receiver.
type Accumulator struct {
	summaries []string
}

func (a Accumulator) Add(summary string) Accumulator {
	return Accumulator{summaries: append(slices.Clip(a.summaries), summary)}
}

func (a Accumulator) Summaries() []string { return slices.Clone(a.summaries) }

func (a Accumulator) Len() int { return len(a.summaries) }

// Text joins the summaries with blank lines.
func (a Accumulator) Text() string { return strings.Join(a.summaries, "\n\n") }

// AppendKeywords adds a "## Keywords" section of wiki links to summary.
func AppendKeywords(summary string, keywords []string) string {
	if len(keywords) == 0 {
		return summary
	}
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(summary, "\n"))
	sb.WriteString("\n\n## Keywords\n\n")
	for _, kw := range keywords {
		sb.WriteString("* [[")
		sb.WriteString(kw)
		sb.WriteString("]]\n")
	}
	return sb.String()
}
