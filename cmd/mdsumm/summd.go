package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsumm/internal/config"
	"github.com/dgallion1/mdsumm/internal/pipeline"
)

var summdCmd = &cobra.Command{
	Use:   "summd [paths...]",
	Short: "Summarise Markdown and text files",
	Long: `summd writes a bullet-point summary of every .md and .txt file it is given,
walking directories. With no paths it reads the input directory (_markdown).
Each summary goes to the output directory under the same relative path, ends
with a keyword list and links back to its source. Existing summaries are
skipped.

Documents longer than one and a half contexts are split at headings. By
default the blocks are summarised independently and in parallel; with
--recursive each block sees the summaries of the blocks before it.`,
	Annotations: map[string]string{annotationLLM: "true"},
	RunE:        runSummd,
}

func init() {
	summdCmd.Flags().StringP("model", "m", "", "Claude model")
	summdCmd.Flags().IntP("context", "c", 0, "context size in characters used to size blocks")
	summdCmd.Flags().StringP("output", "o", "", "output directory (default _summary)")
	summdCmd.Flags().IntP("level", "l", 0, "deepest heading level that starts a new chapter")
	summdCmd.Flags().BoolP("recursive", "r", false, "feed earlier block summaries into later calls")
	summdCmd.Flags().Bool("no-keywords", false, "do not append a keyword list")
	summdCmd.Flags().Int("workers", 0, "files summarised at the same time")

	bindFlags(summdCmd, map[string]string{
		"model":     config.KeyModel,
		"context":   config.KeyContext,
		"output":    config.KeyOutputDir,
		"level":     config.KeyMaxLevel,
		"recursive": config.KeyRecursive,
		"workers":   config.KeyWorkers,
	})
	rootCmd.AddCommand(summdCmd)
}

func runSummd(cmd *cobra.Command, args []string) error {
	c := cfg
	if noKw, _ := cmd.Flags().GetBool("no-keywords"); noKw {
		c.Keywords = false
	}

	client := newLLMClient(c)
	defer client.Close()
	defer logUsage(logger, client)

	proc := &pipeline.SummaryProcessor{
		Summarizer: pipeline.NewSummarizer(client, c.SummarizerOptions(), logger),
		InputDir:   c.InputDir,
		OutputDir:  c.OutputDir,
		Keywords:   c.Keywords,
		Log:        logger,
	}
	logger.Info("summarising",
		"model", c.Model,
		"block_size", c.ChunkConfig().BlockSize,
		"recursive", c.Recursive,
		"output", c.OutputDir,
	)
	return runBatch(cmd.Context(), cmd.OutOrStdout(), proc, args, c.InputDir, "summarized")
}
