package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmuir/inkwell/internal/config"
	"github.com/tmuir/inkwell/internal/content"
	"github.com/tmuir/inkwell/internal/output"
)

var listOpts struct {
	// Filter options
	since  string
	tag    string
	search string
	drafts bool
	limit  int

	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format   string
	template string
	index    bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles in scriptable formats",
	Long: `List articles from the content directory.

The default plain format shows one block per article. The index format
emits one line per article ("slug | title | age"), suitable for fuzzel,
fzf, and similar pickers. JSON output carries the full article records.

Examples:
  # List all published articles
  inkwell list

  # Include drafts, newest five
  inkwell list --drafts --limit 5

  # Articles tagged "algorithms" from the last month
  inkwell list --tag algorithms --since 4w

  # One line per article for a picker
  inkwell list --format index

  # Pick an article and read it
  inkwell list --format index | fzf | cut -d'|' -f1 | xargs inkwell show`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	// Filter flags
	listCmd.Flags().StringVar(&listOpts.since, "since", "",
		"Show articles from the last duration (e.g., 72h, 7d, 1w)")
	listCmd.Flags().StringVar(&listOpts.tag, "tag", "",
		"Filter by tag (exact match)")
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Search in title, summary, and body")
	listCmd.Flags().BoolVar(&listOpts.drafts, "drafts", false,
		"Include draft articles")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
		"Maximum number of articles to show (0=unlimited)")

	// Sort flags
	listCmd.Flags().StringVar(&listOpts.sortBy, "sort", "",
		"Sort by field (date, title, words)")
	listCmd.Flags().StringVar(&listOpts.sortOrder, "order", "",
		"Sort order (asc, desc)")

	// Output flags
	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "",
		"Output format (plain, json, index)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for output formatting")
	listCmd.Flags().BoolVar(&listOpts.index, "numbered", false,
		"Prefix plain output with 1-based indexes")
}

func runList(cmd *cobra.Command, args []string) error {
	opts := content.FilterOptions{
		Tag:           listOpts.tag,
		Query:         listOpts.search,
		IncludeDrafts: listOpts.drafts || cfg.Content.IncludeDrafts,
		Limit:         listOpts.limit,
		SortField:     listOpts.sortBy,
		SortOrder:     listOpts.sortOrder,
	}
	if opts.Limit == 0 {
		opts.Limit = cfg.List.Limit
	}
	if opts.SortField == "" {
		opts.SortField = cfg.List.Sort
	}
	if opts.SortOrder == "" {
		opts.SortOrder = cfg.List.Order
	}

	if listOpts.since != "" {
		d, err := content.ParseDuration(listOpts.since)
		if err != nil {
			logger.Warn("invalid since duration", "value", listOpts.since, "error", err)
		} else {
			opts.Since = d
		}
	}

	articles := getStore().Filter(opts)
	if len(articles) == 0 {
		logger.Debug("no articles to output")
		return nil
	}

	formatter := createFormatter()
	return formatter.Format(os.Stdout, articles)
}

// createFormatter creates the output formatter based on options.
func createFormatter() output.Formatter {
	var format output.FormatType
	switch strings.ToLower(listOpts.format) {
	case "json":
		format = output.FormatJSON
	case "index":
		format = output.FormatIndex
	default:
		format = output.FormatPlain
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = listOpts.template
	opts.ShowIndex = listOpts.index

	// Apply config defaults if available
	if cfg != nil && opts.Template == "" && format == output.FormatIndex {
		if tmpl := cfg.GetTemplate("index"); tmpl != config.DefaultIndexTmpl {
			opts.Template = tmpl
		}
	}

	return output.NewFormatter(format, opts)
}
