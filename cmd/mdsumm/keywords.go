package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsumm/internal/config"
	"github.com/dgallion1/mdsumm/internal/mdfile"
	"github.com/dgallion1/mdsumm/internal/pipeline"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords file...",
	Short: "Append a keyword list to Markdown files",
	Long: `keywords asks Claude for the key terms of each file and appends them as a
"## Keywords" section of [[wiki links]]. Files with YAML frontmatter also get
the list in their keywords field. Files that already end with a keyword
section are left alone. --print writes the list to stdout instead.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationLLM: "true"},
	RunE:        runKeywords,
}

func init() {
	keywordsCmd.Flags().StringP("model", "m", "", "Claude model")
	keywordsCmd.Flags().Bool("print", false, "print keywords instead of changing the files")
	keywordsCmd.Flags().Int("max", 0, "maximum number of keywords")

	bindFlags(keywordsCmd, map[string]string{
		"model": config.KeyModel,
		"max":   config.KeyMaxKeywords,
	})
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	printOnly, _ := cmd.Flags().GetBool("print")
	w := cmd.OutOrStdout()

	client := newLLMClient(cfg)
	defer client.Close()
	defer logUsage(logger, client)
	sum := pipeline.NewSummarizer(client, cfg.SummarizerOptions(), logger)

	paths, err := pipeline.CollectPaths(args, ".")
	failed := countErrs(err)
	if err != nil {
		fmt.Fprintf(w, "failed: %v\n", err)
	}
	for _, path := range paths {
		if err := addKeywords(cmd.Context(), w, sum, path, printOnly); err != nil {
			logger.Error("keywords failed", "input", path, "error", err)
			fmt.Fprintf(w, "failed: %s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func addKeywords(ctx context.Context, w io.Writer, sum *pipeline.Summarizer, path string, printOnly bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	meta, body, err := mdfile.Split(string(data))
	if err != nil {
		return fmt.Errorf("frontmatter: %w", err)
	}
	if !printOnly && hasKeywordSection(body) {
		fmt.Fprintf(w, "skipped: %s (has keywords)\n", path)
		return nil
	}

	kws, err := sum.Keywords(ctx, body)
	if err != nil {
		return err
	}
	if printOnly {
		fmt.Fprintf(w, "%s:\n", path)
		for _, kw := range kws {
			fmt.Fprintf(w, "* [[%s]]\n", kw)
		}
		return nil
	}

	if !meta.IsZero() {
		meta.Keywords = kws
	}
	out, err := mdfile.Render(meta, pipeline.AppendKeywords(body, kws))
	if err != nil {
		return err
	}
	if err := pipeline.WriteFile(path, []byte(out)); err != nil {
		return err
	}
	fmt.Fprintf(w, "keywords: %s (%d)\n", path, len(kws))
	return nil
}

func hasKeywordSection(body string) bool {
	return strings.Contains(body, "\n## Keywords\n") || strings.HasPrefix(body, "## Keywords\n")
}
