package views

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"gitget/internal/application"
	"gitget/internal/application/commands"
)

// UntrackModel asks before dropping a package from the manifest
type UntrackModel struct {
	ConfirmationModel
	ws *application.Workspace
}

// NewUntrackModel creates a new untrack view model
func NewUntrackModel(ws *application.Workspace) *UntrackModel {
	return &UntrackModel{
		ConfirmationModel: NewConfirmationModel(),
		ws:                ws,
	}
}

// Init initializes the untrack view
func (m *UntrackModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the untrack view
func (m *UntrackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case UntrackErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doUntrack,
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *UntrackModel) doUntrack() tea.Msg {
	if m.Target == nil {
		return UntrackErrMsg{Err: errors.New("no package selected")}
	}

	result, err := commands.NewUntrackCommand(m.ws, m.Target.Name).Execute(context.Background())
	if err != nil {
		return UntrackErrMsg{Err: err}
	}
	return UntrackSuccessMsg{Message: result.Message}
}

// UntrackSuccessMsg indicates the package left the manifest
type UntrackSuccessMsg struct {
	Message string
}

// UntrackErrMsg indicates an error while untracking
type UntrackErrMsg struct {
	Err error
}

// View renders the untrack confirmation view
func (m *UntrackModel) View() string {
	return NewViewBuilder().
		Title("Untrack Package", "").
		Line(RenderTargetInfo(m.Target, "Untrack")).
		Line("").
		Muted("  The clone stays on disk.").
		Line("").
		Line(RenderConfirmPrompt("Remove it from the manifest?")).
		Message(m.Message, m.MessageErr).
		String()
}
