package views

import "gitget/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// SwitchToBrowserMsg returns to the package list
type SwitchToBrowserMsg struct{}

// SwitchToHelpMsg opens the help view
type SwitchToHelpMsg struct{}

// SwitchToSearchMsg opens the index search view
type SwitchToSearchMsg struct{}

// SwitchToUntrackMsg asks for confirmation before untracking Record
type SwitchToUntrackMsg struct {
	Record domain.PackageRecord
}

// OpenEditorMsg requests opening Path in the configured editor
type OpenEditorMsg struct {
	Path string
}
