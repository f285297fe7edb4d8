package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdsumm/internal/naming"
)

var sanitiseCmd = &cobra.Command{
	Use:     "sanitise [paths...]",
	Aliases: []string{"sanitize"},
	Short:   "Rename files to portable names",
	Long: `sanitise renames files so their names only use letters, digits, '_', '.'
and '-'. Spaces become underscores and accents are dropped. Directories are
processed one level deep unless --recursive is set; directory names are kept.
A rename that would overwrite another file is skipped.`,
	RunE: runSanitise,
}

func init() {
	sanitiseCmd.Flags().BoolP("recursive", "r", false, "process directories recursively")
	rootCmd.AddCommand(sanitiseCmd)
}

func runSanitise(cmd *cobra.Command, args []string) error {
	recursive, _ := cmd.Flags().GetBool("recursive")
	w := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(w, "processing current directory")
		args = []string{"."}
	}

	var failed int
	for _, p := range args {
		renames, err := naming.SanitiseTree(p, recursive)
		for _, r := range renames {
			if r.Skipped != "" {
				fmt.Fprintf(w, "skipped: %s (%s)\n", r.From, r.Skipped)
				continue
			}
			fmt.Fprintf(w, "renamed: %s -> %s\n", r.From, r.To)
		}
		if err != nil {
			logger.Error("sanitise failed", "path", p, "error", err)
			fmt.Fprintf(w, "failed: %s: %v\n", p, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d path(s) failed", failed)
	}
	return nil
}
