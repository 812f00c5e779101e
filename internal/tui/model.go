// Package tui provides the BubbleTea-based terminal reading interface.
package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmuir/inkwell/internal/config"
	"github.com/tmuir/inkwell/internal/content"
	"github.com/tmuir/inkwell/internal/model"
	"github.com/tmuir/inkwell/internal/render"
	"github.com/tmuir/inkwell/internal/theme"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeSearch
	ModeHelp
)

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg   *config.Config
	store *content.Store
	theme theme.Theme

	// Current mode
	mode Mode

	// Components
	list        list.Model
	viewport    viewport.Model
	searchInput textinput.Model
	help        help.Model
	renderer    *render.Renderer

	// State
	selected    *model.Article
	searchQuery string
	showDrafts  bool
	width       int
	height      int
	ready       bool

	// Key bindings
	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool

	// Refresh channel subscription
	refreshCh <-chan content.ChangeEvent
}

// articleItem wraps an article for the list component.
type articleItem struct {
	article model.Article
	index   int
}

func (i articleItem) Title() string {
	return i.article.Title
}

func (i articleItem) Description() string {
	desc := fmt.Sprintf("%s · %d min read",
		i.article.RelativeDate(),
		int(i.article.ReadingTime().Minutes()))
	if len(i.article.Tags) > 0 {
		desc += " · #" + strings.Join(i.article.Tags, " #")
	}
	return desc
}

func (i articleItem) FilterValue() string {
	return i.article.Title + " " + i.article.Summary + " " + strings.Join(i.article.Tags, " ")
}

// articleDelegate is a custom list delegate that dims draft articles.
type articleDelegate struct {
	list.DefaultDelegate
	accents theme.Palette
}

func newArticleDelegate(accents theme.Palette) articleDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(accents.PopColor()).
		BorderForeground(accents.PopColor())
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(accents.LinkHoverColor()).
		BorderForeground(accents.PopColor())
	return articleDelegate{DefaultDelegate: d, accents: accents}
}

// Render renders a list item, dimming drafts so published articles
// stand out. All items use the same two-line structure.
func (d articleDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ai, ok := item.(articleItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	isSelected := index == m.Index()
	isDraft := ai.article.Draft

	itemWidth := m.Width() - d.DefaultDelegate.Styles.NormalTitle.GetHorizontalPadding()

	var titleStyle, descStyle lipgloss.Style

	if isDraft {
		// Drafts: dimmed/gray color
		if isSelected {
			titleStyle = d.DefaultDelegate.Styles.SelectedTitle.
				Foreground(lipgloss.Color("8"))
			descStyle = d.DefaultDelegate.Styles.SelectedDesc.
				Foreground(lipgloss.Color("8"))
		} else {
			titleStyle = d.DefaultDelegate.Styles.NormalTitle.
				Foreground(lipgloss.Color("8"))
			descStyle = d.DefaultDelegate.Styles.NormalDesc.
				Foreground(lipgloss.Color("8"))
		}
	} else {
		if isSelected {
			titleStyle = d.DefaultDelegate.Styles.SelectedTitle
			descStyle = d.DefaultDelegate.Styles.SelectedDesc
		} else {
			titleStyle = d.DefaultDelegate.Styles.NormalTitle
			descStyle = d.DefaultDelegate.Styles.NormalDesc
		}
	}

	title := ai.Title()
	if isDraft {
		title = "[draft] " + title
	}

	if itemWidth > 0 && len(title) > itemWidth {
		title = title[:itemWidth-1] + "…"
	}

	desc := ai.Description()
	if itemWidth > 0 && len(desc) > itemWidth {
		desc = desc[:itemWidth-1] + "…"
	}

	fmt.Fprint(w, titleStyle.Render(title))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, descStyle.Render(desc))
}

// New creates a new TUI model.
func New(cfg *config.Config, s *content.Store, t theme.Theme) Model {
	delegate := newArticleDelegate(theme.Accents)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Articles"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search..."
	searchInput.CharLimit = 100

	h := help.New()

	m := Model{
		cfg:         cfg,
		store:       s,
		theme:       t,
		mode:        ModeList,
		list:        l,
		searchInput: searchInput,
		help:        h,
		keys:        DefaultKeyMap(),
		showDrafts:  cfg.Content.IncludeDrafts,
	}

	// Subscribe to store changes if available
	if s != nil {
		m.refreshCh = s.Subscribe()
	}

	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadArticles,
		m.watchForChanges,
	)
}

// loadArticles triggers a rebuild of the article list.
func (m Model) loadArticles() tea.Msg {
	return loadArticlesMsg{}
}

type loadArticlesMsg struct{}

// watchForChanges waits for the next store change event.
func (m Model) watchForChanges() tea.Msg {
	if m.refreshCh == nil {
		return nil
	}
	<-m.refreshCh
	return refreshMsg{}
}

type refreshMsg struct{}

// themeChangedMsg arrives when the active theme file is edited on disk.
type themeChangedMsg struct {
	theme theme.Theme
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.list.SetSize(msg.Width, msg.Height-2)
		m.help.Width = msg.Width
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		m.viewport.YPosition = 2
		m.renderer = m.buildRenderer()

		// Re-render the open article at the new width
		if m.selected != nil && m.mode == ModeDetail {
			m.viewport.SetContent(m.renderDetail(*m.selected))
		}

		return m, nil

	case loadArticlesMsg:
		m.list.SetItems(m.buildListItems())
		return m, nil

	case refreshMsg:
		m.list.SetItems(m.buildListItems())
		return m, tea.Batch(m.watchForChanges, func() tea.Msg {
			return statusMsg{text: "Content reloaded", isErr: false}
		})

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case themeChangedMsg:
		m.theme = msg.theme
		m.renderer = m.buildRenderer()
		if m.selected != nil && m.mode == ModeDetail {
			m.viewport.SetContent(m.renderDetail(*m.selected))
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Theme reloaded: " + msg.theme.Name, isErr: false}
		}

	case copyResultMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Copy failed: " + msg.err.Error(), isErr: true}
			}
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Copied to clipboard", isErr: false}
		}
	}

	// Update child components
	switch m.mode {
	case ModeList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case ModeDetail:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	case ModeSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	}

	return m, nil
}

// handleListKey handles keys in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.list.SelectedItem().(articleItem); ok {
			m.selected = &item.article
			m.mode = ModeDetail
			m.viewport.SetContent(m.renderDetail(item.article))
			m.viewport.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if item, ok := m.list.SelectedItem().(articleItem); ok {
			return m, m.copyToClipboard(item.article.Body)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopySlug):
		if item, ok := m.list.SelectedItem().(articleItem); ok {
			return m, m.copyToClipboard(item.article.Slug)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyAllJSON):
		items := m.list.Items()
		articles := make([]model.Article, 0, len(items))
		for _, item := range items {
			if ai, ok := item.(articleItem); ok {
				articles = append(articles, ai.article)
			}
		}
		data, err := json.MarshalIndent(articles, "", "  ")
		if err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Failed to marshal JSON: " + err.Error(), isErr: true}
			}
		}
		return m, m.copyToClipboard(string(data))

	case key.Matches(msg, m.keys.ToggleDrafts):
		m.showDrafts = !m.showDrafts
		m.list.SetItems(m.buildListItems())
		if m.showDrafts {
			return m, func() tea.Msg {
				return statusMsg{text: "Showing drafts", isErr: false}
			}
		}
		return m, func() tea.Msg {
			return statusMsg{text: "Hiding drafts", isErr: false}
		}

	case key.Matches(msg, m.keys.Search):
		// Reset search when entering search mode
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.list.SetItems(m.buildListItems())
		m.mode = ModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		return m, m.rescan
	}

	// Pass to list
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleDetailKey handles keys in detail mode.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeList
		m.selected = nil
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if m.selected != nil {
			return m, m.copyToClipboard(m.selected.Body)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopySlug):
		if m.selected != nil {
			return m, m.copyToClipboard(m.selected.Slug)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.selected = nil
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.list.SetItems(m.buildListItems())
		m.mode = ModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	}

	// Pass to viewport
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleSearchKey handles keys in search mode.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Esc exits search mode and clears the query
		m.mode = ModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.list.SetItems(m.buildListItems())
		return m, nil

	case tea.KeyEnter:
		// Enter opens the selected article (like in list mode)
		if item, ok := m.list.SelectedItem().(articleItem); ok {
			m.selected = &item.article
			m.mode = ModeDetail
			m.searchInput.Blur()
			m.viewport.SetContent(m.renderDetail(item.article))
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.KeyUp, tea.KeyDown:
		// Allow navigating the list while searching
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	// Pass to text input
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Live filtering: rebuild the list on each keystroke
	m.searchQuery = m.searchInput.Value()
	m.list.SetItems(m.buildListItems())

	return m, cmd
}

// rescan re-reads the content directory.
func (m Model) rescan() tea.Msg {
	if m.store != nil {
		m.store.Rescan()
	}
	return loadArticlesMsg{}
}

// buildListItems creates list items from the current store contents.
func (m Model) buildListItems() []list.Item {
	if m.store == nil {
		return nil
	}

	articles := m.store.Filter(content.FilterOptions{
		Query:         m.searchQuery,
		IncludeDrafts: m.showDrafts,
		Limit:         m.cfg.List.Limit,
		SortField:     m.cfg.List.Sort,
		SortOrder:     m.cfg.List.Order,
	})

	items := make([]list.Item, len(articles))
	for i, a := range articles {
		items[i] = articleItem{article: a, index: i}
	}
	return items
}

// buildRenderer creates a markdown renderer sized for the current width.
func (m Model) buildRenderer() *render.Renderer {
	wrap := m.cfg.TUI.WordWrap
	if wrap <= 0 {
		wrap = m.width - 2
	}
	if wrap < 20 {
		wrap = 20
	}

	r, err := render.New(m.theme, wrap)
	if err != nil {
		return nil
	}
	return r
}

// renderDetail renders the reading view for an article.
func (m Model) renderDetail(a model.Article) string {
	if m.renderer != nil {
		out, err := m.renderer.Article(&a)
		if err == nil {
			return out
		}
	}

	// Fallback: plain header plus raw markdown
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.ForegroundColor())

	return headerStyle.Render(a.Title) + "\n\n" + a.Body
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := copyText(text, m.cfg)
		return copyResultMsg{err: err}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeList:
		return m.viewList()
	case ModeDetail:
		return m.viewDetail()
	case ModeSearch:
		return m.viewSearch()
	case ModeHelp:
		return m.viewHelp()
	default:
		return ""
	}
}

func (m Model) viewList() string {
	var s string
	s += m.list.View()

	// Status bar
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += "\n" + statusStyle.Render(m.statusMsg)
	} else {
		s += "\n" + m.buildKeybindBar(m.width, "list")
	}

	return s
}

func (m Model) viewDetail() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accents.PopColor()).
		Padding(0, 1)

	title := "Reading"
	if m.selected != nil {
		title = m.selected.Slug
	}
	header := headerStyle.Render(title)

	return header + "\n" + m.viewport.View() + "\n" + m.buildKeybindBar(m.width, "detail")
}

func (m Model) viewSearch() string {
	matchCount := len(m.list.Items())
	countStr := fmt.Sprintf("(%d matches)", matchCount)

	searchBar := "Search: " + m.searchInput.View() + " " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(countStr)

	return searchBar + "\n" + m.list.View() + "\n" + m.buildKeybindBar(m.width, "search")
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accents.PopColor()).
		MarginBottom(1)

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"
	s += m.help.FullHelpView(m.keys.FullHelp())

	s += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"Press ? or esc to return")

	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "list", "detail", "search"
func (m Model) buildKeybindBar(width int, mode string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(theme.Accents.LinkHoverColor())

	var binds []keybind

	switch mode {
	case "list":
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "read", 2},
			{"?", "help", 3},
			{"/", "search", 4},
			{"a", "drafts", 5},
			{"c", "copy", 6},
			{"s", "slug", 7},
			{"r", "rescan", 8},
		}
	case "detail":
		binds = []keybind{
			{"q", "quit", 1},
			{"esc", "back", 2},
			{"/", "search", 3},
			{"c", "copy markdown", 4},
			{"s", "copy slug", 5},
			{"j/k", "scroll", 6},
		}
	case "search":
		binds = []keybind{
			{"enter", "read", 1},
			{"esc", "close", 2},
			{"↑/↓", "navigate", 3},
		}
	}

	// Build the bar, adding keybinds until we run out of space
	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		plainItem := b.key + " " + b.desc
		testLen := len(result) + len(separator) + len(plainItem)
		if result != "" {
			testLen = len(stripANSI(result)) + len(separator) + len(plainItem)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// stripANSI removes ANSI escape codes for length calculation.
func stripANSI(s string) string {
	result := make([]byte, 0, len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result = append(result, s[i])
	}
	return string(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config
	Store  *content.Store
	Theme  theme.Theme

	// ThemeLoader, when set, hot-reloads the active user theme file.
	ThemeLoader *theme.Loader
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	s := opts.Store
	if s == nil {
		return fmt.Errorf("no article store provided")
	}

	// Start the directory watcher so edits show up while reading
	var watcher *content.DirWatcher
	if opts.Config.TUI.LiveWatch {
		var err error
		watcher, err = content.NewDirWatcher(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create content watcher: %v\n", err)
		} else {
			if err := watcher.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to start content watcher: %v\n", err)
			}
		}
	}

	m := New(opts.Config, s, opts.Theme)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if opts.ThemeLoader != nil {
		opts.ThemeLoader.StartHotReload(func(t theme.Theme) {
			p.Send(themeChangedMsg{theme: t})
		})
		defer opts.ThemeLoader.StopHotReload()
	}

	_, err := p.Run()

	if watcher != nil {
		watcher.Stop()
	}

	return err
}
