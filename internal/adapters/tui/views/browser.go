package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"gitget/internal/adapters/tui/styles"
	"gitget/internal/application"
	"gitget/internal/application/commands"
	"gitget/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Filter       key.Binding
	ClearFilter  key.Binding
	Search       key.Binding
	Open         key.Binding
	EditManifest key.Binding
	Copy         key.Binding
	Untrack      key.Binding
	Reload       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "page down"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Search: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "search"),
	),
	Open: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "open"),
	),
	EditManifest: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "edit manifest"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Untrack: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "untrack"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// rows taken by everything around the package list
const browserChrome = 18

// BrowserModel lists the manifest's packages with a filter and a details pane
type BrowserModel struct {
	ViewState
	ws        *application.Workspace
	records   []domain.PackageRecord
	visible   []domain.PackageRecord
	filter    textinput.Model
	filtering bool
	paginator *Paginator
	loaded    bool

	// copyPath writes to the system clipboard; tests replace it
	copyPath func(string) error
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(ws *application.Workspace) *BrowserModel {
	input := textinput.New()
	input.Placeholder = "name, owner, topic..."
	input.Prompt = "/ "

	return &BrowserModel{
		ws:        ws,
		filter:    input,
		paginator: NewPaginator(10),
		copyPath:  clipboard.WriteAll,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadPackages
}

// Reload reads the manifest again
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadPackages
}

func (m *BrowserModel) loadPackages() tea.Msg {
	manifest, _, err := m.ws.Load(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return packagesLoadedMsg{manifest.Records()}
}

type packagesLoadedMsg struct {
	records []domain.PackageRecord
}

type errMsg struct {
	err error
}

// SetSize updates the view dimensions and the page size
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(max(height-browserChrome, 3))
	m.filter.Width = max(width-10, 10)
}

// Selected returns the package under the cursor
func (m *BrowserModel) Selected() (domain.PackageRecord, bool) {
	if len(m.visible) == 0 {
		return domain.PackageRecord{}, false
	}
	return m.visible[m.paginator.Cursor()], true
}

// Select clears the filter and moves the cursor to the named package
func (m *BrowserModel) Select(name string) bool {
	m.filter.SetValue("")
	m.applyFilter()
	for i, rec := range m.visible {
		if rec.Name == name {
			m.paginator.SetCursor(i)
			return true
		}
	}
	return false
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case packagesLoadedMsg:
		selected, ok := m.Selected()
		m.records = msg.records
		m.loaded = true
		m.applyFilter()
		if ok {
			m.selectVisible(selected.Name)
		}
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *BrowserModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyUp:
		m.paginator.CursorUp()
		return m, nil
	case tea.KeyDown:
		m.paginator.CursorDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *BrowserModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.paginator.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.paginator.CursorDown()

	case key.Matches(msg, BrowserKeys.PageUp):
		m.paginator.PageUp()

	case key.Matches(msg, BrowserKeys.PageDown):
		m.paginator.PageDown()

	case key.Matches(msg, BrowserKeys.Filter):
		m.filtering = true
		m.ClearMessage()
		return m, m.filter.Focus()

	case key.Matches(msg, BrowserKeys.ClearFilter):
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
		}
		m.ClearMessage()

	case key.Matches(msg, BrowserKeys.Search):
		return m, func() tea.Msg { return SwitchToSearchMsg{} }

	case key.Matches(msg, BrowserKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BrowserKeys.Reload):
		m.ClearMessage()
		return m, m.loadPackages

	case key.Matches(msg, BrowserKeys.EditManifest):
		path := m.ws.Path
		return m, func() tea.Msg { return OpenEditorMsg{Path: path} }

	case key.Matches(msg, BrowserKeys.Open):
		if rec, ok := m.Selected(); ok {
			return m, func() tea.Msg { return OpenEditorMsg{Path: rec.Path} }
		}

	case key.Matches(msg, BrowserKeys.Copy):
		if rec, ok := m.Selected(); ok {
			if err := m.copyPath(rec.Path); err != nil {
				m.SetMessage(fmt.Sprintf("Failed to copy path: %v", err), true)
			} else {
				m.SetMessage("Copied "+rec.Path, false)
			}
		}

	case key.Matches(msg, BrowserKeys.Untrack):
		if rec, ok := m.Selected(); ok {
			return m, func() tea.Msg { return SwitchToUntrackMsg{Record: rec} }
		}
	}

	return m, nil
}

// applyFilter ranks the records against the filter text, or lists them all
// by name when the filter is empty
func (m *BrowserModel) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.visible = m.records
	} else {
		byName := make(map[string]domain.PackageRecord, len(m.records))
		entries := make([]domain.IndexEntry, 0, len(m.records))
		for _, rec := range m.records {
			byName[rec.Name] = rec
			entries = append(entries, domain.IndexEntryFromRecord(rec))
		}

		ranked := commands.FuzzySort(entries, query)
		m.visible = make([]domain.PackageRecord, 0, len(ranked))
		for _, r := range ranked {
			m.visible = append(m.visible, byName[r.Name])
		}
	}
	m.paginator.SetTotal(len(m.visible))
}

func (m *BrowserModel) selectVisible(name string) {
	for i, rec := range m.visible {
		if rec.Name == name {
			m.paginator.SetCursor(i)
			return
		}
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("gitget"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.subtitle()))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString(styles.MutedText.Render("Loading..."))
		b.WriteString("\n")
	case len(m.visible) == 0:
		b.WriteString(styles.MutedText.Render("No packages"))
		b.WriteString("\n")
	default:
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(m.visible[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}
		if rec, ok := m.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(m.renderDetails(rec))
			b.WriteString("\n")
		}
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.Filter, BrowserKeys.Open,
		BrowserKeys.Copy, BrowserKeys.Untrack, BrowserKeys.Help, BrowserKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *BrowserModel) subtitle() string {
	if len(m.visible) != len(m.records) {
		return fmt.Sprintf("%d of %d packages", len(m.visible), len(m.records))
	}
	return fmt.Sprintf("%d packages", len(m.records))
}

func (m *BrowserModel) renderRow(rec domain.PackageRecord, selected bool) string {
	nameWidth := 28
	if m.Width > 0 {
		nameWidth = max(min(m.Width/3, 40), 12)
	}

	name := runewidth.FillRight(runewidth.Truncate(rec.Name, nameWidth, "…"), nameWidth)
	if selected {
		return styles.RowSelected.Render("> " + name + " " + rec.Owner)
	}
	return styles.Row.Render("  "+name) + " " + styles.Owner.Render(rec.Owner)
}

func (m *BrowserModel) renderDetails(rec domain.PackageRecord) string {
	var b strings.Builder

	b.WriteString(styles.InputLabel.Render(rec.Name))
	if rec.Stars > 0 {
		b.WriteString("  ")
		b.WriteString(styles.Stars.Render(fmt.Sprintf("★ %d", rec.Stars)))
	}
	b.WriteString("\n")
	if rec.Description != "" {
		b.WriteString(rec.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(RenderLabelValue("Path", rec.Path))
	if rec.URL != "" {
		b.WriteString(RenderLabelValue("URL", styles.URL.Render(rec.URL)))
	}
	if len(rec.Topics) > 0 {
		b.WriteString(RenderLabelValue("Topics", styles.Topic.Render(strings.Join(rec.Topics, ", "))))
	}
	b.WriteString(RenderLabelValue("Languages", strings.Join(rec.Languages, ", ")))
	if rec.License != nil {
		b.WriteString(RenderLabelValue("License", rec.License.Name))
	}
	if rec.LastCommitAt != nil {
		b.WriteString(RenderLabelValue("Last commit", rec.LastCommitAt.Format("2006-01-02")))
	}

	style := styles.Details
	if m.Width > 0 {
		style = style.Width(max(m.Width-8, 20))
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}
