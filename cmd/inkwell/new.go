package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tmuir/inkwell/internal/model"
)

var newOpts struct {
	slug    string
	tags    []string
	summary string
	edit    bool
}

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Scaffold a new draft article",
	Long: `Create a new draft article in the content directory.

The file name and slug are derived from the title unless --slug is
given. The article is created with draft: true so it stays out of
listings and exports until published.

Examples:
  # Scaffold a draft
  inkwell new "Huffman Coding from Scratch"

  # With tags and an explicit slug
  inkwell new "Base64 by Hand" --slug base64 --tags encoding,go

  # Open in $EDITOR after creating
  inkwell new "Working Notes" --edit`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVar(&newOpts.slug, "slug", "",
		"Slug for the article (default: derived from title)")
	newCmd.Flags().StringSliceVar(&newOpts.tags, "tags", nil,
		"Comma-separated tags")
	newCmd.Flags().StringVar(&newOpts.summary, "summary", "",
		"One-line summary for listings")
	newCmd.Flags().BoolVarP(&newOpts.edit, "edit", "e", false,
		"Open the new article in $EDITOR")
}

func runNew(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(args[0])
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	slug := newOpts.slug
	if slug == "" {
		slug = model.Slugify(title)
	}
	if slug == "" {
		return fmt.Errorf("could not derive a slug from %q; use --slug", title)
	}

	path := filepath.Join(cfg.Content.Dir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := os.MkdirAll(cfg.Content.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}

	// Marshal instead of hand-assembling so titles with YAML-significant
	// characters (colons, brackets, quotes) survive the scanner's read-back.
	header, err := yaml.Marshal(struct {
		Title   string    `yaml:"title"`
		Slug    string    `yaml:"slug"`
		Date    time.Time `yaml:"date"`
		Tags    []string  `yaml:"tags,omitempty"`
		Summary string    `yaml:"summary,omitempty"`
		Draft   bool      `yaml:"draft"`
	}{
		Title:   title,
		Slug:    slug,
		Date:    time.Now().UTC().Truncate(time.Second),
		Tags:    newOpts.tags,
		Summary: newOpts.summary,
		Draft:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal front matter: %w", err)
	}

	content := "---\n" + string(header) + "---\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write article: %w", err)
	}

	fmt.Println(path)

	if newOpts.edit {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			logger.Warn("$EDITOR not set, skipping edit")
			return nil
		}
		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	}

	return nil
}
