package main

import (
	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsumm/internal/config"
	"github.com/dgallion1/mdsumm/internal/pipeline"
)

var tomdCmd = &cobra.Command{
	Use:   "tomd [paths...]",
	Short: "Convert documents to Markdown",
	Long: `tomd converts PDF, Word, PowerPoint, Excel, OpenDocument, EPUB, HTML, CSV,
text and image files to Markdown, walking directories. With no paths it reads
the conversion input directory (_input) and writes to the Markdown directory
(_markdown), keeping relative paths. Existing outputs are skipped.

Images need a binary built with -tags ocr and Tesseract installed.`,
	RunE: runTomd,
}

func init() {
	tomdCmd.Flags().StringP("output", "o", "", "output directory (default _markdown)")
	tomdCmd.Flags().Bool("pdftotext", true, "fall back to pdftotext when the PDF reader fails")
	tomdCmd.Flags().String("ocr-language", "", "Tesseract language(s) for images, e.g. eng+deu")
	tomdCmd.Flags().Int("workers", 0, "files converted at the same time")

	bindFlags(tomdCmd, map[string]string{
		"output":       config.KeyInputDir,
		"pdftotext":    config.KeyPDFFallback,
		"ocr-language": config.KeyOCRLanguage,
		"workers":      config.KeyWorkers,
	})
	rootCmd.AddCommand(tomdCmd)
}

func runTomd(cmd *cobra.Command, args []string) error {
	proc := &pipeline.ConvertProcessor{
		InputDir:  cfg.ConvertInputDir,
		OutputDir: cfg.InputDir,
		Options:   cfg.ConvertOptions(),
	}
	return runBatch(cmd.Context(), cmd.OutOrStdout(), proc, args, cfg.ConvertInputDir, "converted")
}
