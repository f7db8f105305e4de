package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitget/internal/adapters/tui/views"
	"gitget/internal/application"
	"gitget/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewSearch
	ViewUntrack
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state   ViewState
	browser *views.BrowserModel
	search  *views.SearchModel
	untrack *views.UntrackModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. index may be nil, which disables
// the search view; editor may be nil, which disables opening packages.
func NewApp(ws *application.Workspace, index ports.PackageIndex, editor ports.EditorOpener) *App {
	a := &App{
		editor:  editor,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(ws),
		untrack: views.NewUntrackModel(ws),
		help:    views.NewHelpModel(),
	}
	if index != nil {
		a.search = views.NewSearchModel(ws, index)
	}
	return a
}

// State returns the view currently shown
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.untrack.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		if a.search != nil {
			a.search.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	// View switching messages
	case views.SwitchToSearchMsg:
		if a.search == nil {
			a.browser.SetMessage("Search index unavailable", true)
			return a, nil
		}
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToUntrackMsg:
		a.state = ViewUntrack
		a.untrack.SetTarget(msg.Record)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.SearchSelectMsg:
		a.state = ViewBrowser
		if !a.browser.Select(msg.Name) {
			a.browser.SetMessage(fmt.Sprintf("%s is no longer tracked", msg.Name), true)
		}
		return a, nil

	case views.UntrackSuccessMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		return a, a.browser.Reload()

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage(fmt.Sprintf("Editor failed: %v", msg.err), true)
		}
		return a, a.browser.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewUntrack:
		_, cmd = a.untrack.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		a.browser.SetMessage("No editor configured", true)
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSearch:
		return a.search.View()
	case ViewUntrack:
		return a.untrack.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
