package main

import (
	"github.com/spf13/cobra"

	"github.com/tmuir/inkwell/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive article browser",
	Long: `Launch the interactive terminal user interface for reading articles.

The TUI provides:
  - Scrollable article list with drafts dimmed
  - Live search across title, summary, and body
  - Themed Markdown reading view
  - Copy to clipboard support
  - Automatic reload when the content directory changes

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       Read article
  c           Copy article markdown to clipboard
  s           Copy slug to clipboard
  /           Search articles
  a           Toggle showing drafts
  r           Rescan content directory
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.RunOptions{
		Config:      getConfig(),
		Store:       getStore(),
		Theme:       currentTheme,
		ThemeLoader: themeLoader,
	})
}
