package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmuir/inkwell/internal/content"
	"github.com/tmuir/inkwell/internal/export"
)

var exportOpts struct {
	outDir string
	title  string
	drafts bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export articles as a static HTML site",
	Long: `Export the articles as static HTML.

Writes one page per article, an index page, and a stylesheet with
light rules plus a prefers-color-scheme media query for dark mode.
Drafts are skipped unless --drafts is given.

Examples:
  # Export published articles to ./public
  inkwell export

  # Export everything somewhere else
  inkwell export --out /srv/www/blog --drafts`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOpts.outDir, "out", "o", "",
		"Output directory (default: ./public)")
	exportCmd.Flags().StringVar(&exportOpts.title, "title", "",
		"Index page heading (default: from config)")
	exportCmd.Flags().BoolVar(&exportOpts.drafts, "drafts", false,
		"Include draft articles")
}

func runExport(cmd *cobra.Command, args []string) error {
	outDir := exportOpts.outDir
	if outDir == "" {
		outDir = cfg.Export.Dir
	}
	title := exportOpts.title
	if title == "" {
		title = cfg.Export.Title
	}

	articles := getStore().Filter(content.FilterOptions{
		IncludeDrafts: exportOpts.drafts,
	})

	e, err := export.New(outDir, title)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}
	if err := e.Export(articles); err != nil {
		return err
	}

	fmt.Printf("Exported %d articles to %s\n", len(articles), outDir)
	return nil
}
