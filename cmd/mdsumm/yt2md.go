package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsumm/internal/config"
	"github.com/dgallion1/mdsumm/internal/youtube"
)

var yt2mdCmd = &cobra.Command{
	Use:   "yt2md url...",
	Short: "Save YouTube transcripts as Markdown",
	Long: `yt2md downloads the title, description and caption transcript of each
video and saves them as <title-slug>.md. Manual captions in a preferred
language win over auto-generated ones.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runYt2md,
}

func init() {
	yt2mdCmd.Flags().StringP("output", "o", ".", "output directory")
	yt2mdCmd.Flags().BoolP("force", "f", false, "overwrite existing files")
	yt2mdCmd.Flags().StringSlice("lang", nil, "preferred caption languages in order (default en)")

	bindFlags(yt2mdCmd, map[string]string{
		"lang": config.KeyCaptionLanguages,
	})
	rootCmd.AddCommand(yt2mdCmd)
}

func runYt2md(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	client := youtube.NewClient(newHTTPClient(cfg, logger), logger, cfg.CaptionLanguages...)
	fetch := func(ctx context.Context, url string) (*fetched, error) {
		v, err := client.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		logger.Info("transcript", "video", v.ID, "lang", v.Language, "lines", len(v.Transcript))
		return &fetched{Title: v.Title, Meta: v.Meta(), Markdown: v.Markdown()}, nil
	}
	return saveAll(cmd.Context(), cmd.OutOrStdout(), args, outDir, force, fetch)
}
