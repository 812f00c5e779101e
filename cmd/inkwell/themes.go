package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tmuir/inkwell/internal/theme"
)

var themesOpts struct {
	css bool
}

var themesCssOpts struct {
	adaptive bool
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List and inspect color themes",
	Long: `List the available color themes.

Built-in themes are dark and light. User themes are TOML files in
~/.config/inkwell/themes/ and shadow built-ins with the same name.`,
	RunE: runThemes,
}

var themesCssCmd = &cobra.Command{
	Use:   "css",
	Short: "Emit the theme as a CSS stylesheet",
	Long: `Emit the current theme's element rules as CSS.

With --adaptive, emits light rules plus a prefers-color-scheme media
query for dark mode, suitable for a static site.

Examples:
  # CSS for the current theme
  inkwell themes css

  # CSS for the dark theme
  inkwell -t dark themes css

  # Light/dark adaptive stylesheet
  inkwell themes css --adaptive > style.css`,
	RunE: runThemesCss,
}

var themesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the user themes directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := theme.CreateThemesDir(); err != nil {
			return fmt.Errorf("failed to create themes directory: %w", err)
		}
		dir, err := theme.ThemesDir()
		if err != nil {
			return err
		}
		fmt.Println(dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themesCssCmd)
	themesCmd.AddCommand(themesInitCmd)

	themesCmd.Flags().BoolVar(&themesOpts.css, "css", false,
		"Print the current theme's stylesheet instead of listing themes")
	themesCssCmd.Flags().BoolVar(&themesCssOpts.adaptive, "adaptive", false,
		"Emit light rules plus a dark-mode media query")
}

func runThemes(cmd *cobra.Command, args []string) error {
	if themesOpts.css {
		fmt.Print(theme.Stylesheet(currentTheme))
		return nil
	}

	current := themeLoader.CurrentName()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tPATH")
	for _, info := range themeLoader.ListThemes() {
		source := "user"
		if info.IsBuiltin {
			source = "built-in"
		}
		name := info.Name
		if name == current {
			name += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, source, info.Path)
	}
	return w.Flush()
}

func runThemesCss(cmd *cobra.Command, args []string) error {
	if themesCssOpts.adaptive {
		fmt.Print(theme.AdaptiveStylesheet())
		return nil
	}
	fmt.Print(theme.Stylesheet(currentTheme))
	return nil
}
