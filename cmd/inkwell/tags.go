package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags with article counts",
	Long: `List every tag used by the articles, with article counts.

Tags are sorted by count (descending), then alphabetically.`,
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	tags := getStore().Tags()
	if len(tags) == 0 {
		logger.Debug("no tags to output")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, tc := range tags {
		fmt.Fprintf(w, "%s\t%d\n", tc.Tag, tc.Count)
	}
	return w.Flush()
}
