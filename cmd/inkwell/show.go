package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmuir/inkwell/internal/output"
	"github.com/tmuir/inkwell/internal/render"
)

var showOpts struct {
	raw   bool
	field string
	width int
}

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Render a single article to the terminal",
	Long: `Render an article's Markdown to the terminal using the current theme.

The argument is an article slug; a unique slug prefix also works.

Examples:
  # Read an article
  inkwell show huffman-coding

  # Unique prefix lookup
  inkwell show huff

  # Raw markdown (no rendering)
  inkwell show huffman-coding --raw

  # Print a single field
  inkwell show huffman-coding --field title`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showOpts.raw, "raw", false,
		"Print the raw markdown without rendering")
	showCmd.Flags().StringVar(&showOpts.field, "field", "",
		"Print a single field (id, slug, title, body, summary, date, tags, path)")
	showCmd.Flags().IntVarP(&showOpts.width, "width", "w", 0,
		"Word wrap width (0=default)")
}

func runShow(cmd *cobra.Command, args []string) error {
	a := getStore().Lookup(args[0])
	if a == nil {
		return fmt.Errorf("no article matches %q", args[0])
	}

	if showOpts.field != "" {
		fmt.Println(output.FormatField(a, showOpts.field))
		return nil
	}

	if showOpts.raw {
		fmt.Print(a.Body)
		return nil
	}

	width := showOpts.width
	if width <= 0 {
		width = cfg.TUI.WordWrap
	}
	if width <= 0 {
		width = render.DefaultWordWrap
	}

	r, err := render.New(currentTheme, width)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Article(a)
	if err != nil {
		return fmt.Errorf("failed to render article: %w", err)
	}

	fmt.Fprintln(os.Stdout, out)
	return nil
}
