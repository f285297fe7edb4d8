package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsumm/internal/config"
	"github.com/dgallion1/mdsumm/internal/web"
)

var web2mdCmd = &cobra.Command{
	Use:   "web2md url...",
	Short: "Save web pages as Markdown",
	Long: `web2md downloads each page, extracts the main article and saves it as
<title-slug>.md with the source URL, author and fetch time in YAML
frontmatter. --news adds the author, publish date and description as a
summary section above the article.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWeb2md,
}

func init() {
	web2mdCmd.Flags().Bool("news", false, "news layout with author, date and summary")
	web2mdCmd.Flags().StringP("output", "o", ".", "output directory")
	web2mdCmd.Flags().BoolP("force", "f", false, "overwrite existing files")
	web2mdCmd.Flags().Duration("timeout", 0, "HTTP timeout (default from config, 120s)")
	web2mdCmd.Flags().String("user-agent", "", "HTTP User-Agent")

	bindFlags(web2mdCmd, map[string]string{
		"timeout":    config.KeyHTTPTimeout,
		"user-agent": config.KeyUserAgent,
	})
	rootCmd.AddCommand(web2mdCmd)
}

func runWeb2md(cmd *cobra.Command, args []string) error {
	news, _ := cmd.Flags().GetBool("news")
	outDir, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	fetcher := web.NewFetcher(newHTTPClient(cfg, logger), logger)
	fetch := func(ctx context.Context, url string) (*fetched, error) {
		art, err := fetcher.Fetch(ctx, url)
		if err != nil {
			if errors.Is(err, web.ErrNoContent) {
				logger.Warn("page has no readable content", "url", url)
			}
			return nil, err
		}
		return &fetched{Title: art.Title, Meta: art.Meta(), Markdown: art.Markdown(news)}, nil
	}
	return saveAll(cmd.Context(), cmd.OutOrStdout(), args, outDir, force, fetch)
}
