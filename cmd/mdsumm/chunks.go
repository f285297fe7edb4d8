package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsumm/internal/chunker"
	"github.com/dgallion1/mdsumm/internal/config"
	"github.com/dgallion1/mdsumm/internal/mdfile"
)

var chunksCmd = &cobra.Command{
	Use:   "chunks file",
	Short: "Show how a document would be split",
	Long: `chunks prints the chapters and blocks summd would send for a file without
calling Claude. Use it to tune --context and --level.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunks,
}

func init() {
	chunksCmd.Flags().IntP("context", "c", 0, "context size in characters used to size blocks")
	chunksCmd.Flags().IntP("level", "l", 0, "deepest heading level that starts a new chapter")

	bindFlags(chunksCmd, map[string]string{
		"context": config.KeyContext,
		"level":   config.KeyMaxLevel,
	})
	rootCmd.AddCommand(chunksCmd)
}

func runChunks(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	_, body, err := mdfile.Split(string(data))
	if err != nil {
		logger.Warn("ignoring unreadable frontmatter", "input", args[0], "error", err)
	}
	printLayout(cmd.OutOrStdout(), body, cfg.ChunkConfig())
	return nil
}

func printLayout(w io.Writer, body string, cc chunker.Config) {
	fmt.Fprintf(w, "%d chars, block size %d, min block size %d, max level %d\n",
		len(body), cc.BlockSize, cc.MinBlockSize, cc.MaxLevel)
	if !cc.NeedsSplit(body) {
		fmt.Fprintln(w, "fits in one call")
	}

	fmt.Fprintln(w, "\nchapters:")
	for i, ch := range chunker.Segment(chunker.SplitLines(body), cc.MaxLevel) {
		title := ch.Title()
		if ch.Heading == nil {
			title = "(preamble)"
		}
		path := append(append([]string(nil), ch.Parents...), title)
		fmt.Fprintf(w, "%4d  %6d chars  %s\n", i+1, len(ch.Text()), strings.Join(path, " > "))
	}

	fmt.Fprintln(w, "\nblocks:")
	for i, b := range chunker.Split(body, cc) {
		fmt.Fprintf(w, "%4d  %6d chars  ~%d tokens  %s\n", i+1, len(b), chunker.EstimateTokens(b), firstLine(b))
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimLeft(s, "\n"), "\n")
	if len(line) > 60 {
		line = line[:60] + "..."
	}
	return line
}
