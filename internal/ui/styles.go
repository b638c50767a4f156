package ui

import "github.com/charmbracelet/lipgloss"

// Colors is the app palette.
var Colors = struct {
	Primary  lipgloss.Color
	Muted    lipgloss.Color
	Text     lipgloss.Color
	Selected lipgloss.Color
	Done     lipgloss.Color
	Error    lipgloss.Color
}{
	Primary:  lipgloss.Color("#CC0000"),
	Muted:    lipgloss.Color("#636E72"),
	Text:     lipgloss.Color("#DFE6E9"),
	Selected: lipgloss.Color("#FFEAA7"),
	Done:     lipgloss.Color("#00B894"),
	Error:    lipgloss.Color("#D63031"),
}

// Styles holds the lipgloss styles used by the views.
type Styles struct {
	Title       lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	FolderLabel lipgloss.Style
	DateLabel   lipgloss.Style
	Task        lipgloss.Style
	TaskDone    lipgloss.Style
	TaskCursor  lipgloss.Style
	Meta        lipgloss.Style
	Placeholder lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Tab:         lipgloss.NewStyle().Foreground(Colors.Muted).Padding(0, 1),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary).Underline(true).Padding(0, 1),
		FolderLabel: lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		DateLabel:   lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		Task:        lipgloss.NewStyle().Foreground(Colors.Text),
		TaskDone:    lipgloss.NewStyle().Foreground(Colors.Muted).Strikethrough(true),
		TaskCursor:  lipgloss.NewStyle().Bold(true).Foreground(Colors.Selected),
		Meta:        lipgloss.NewStyle().Foreground(Colors.Muted),
		Placeholder: lipgloss.NewStyle().Italic(true).Foreground(Colors.Muted),
		Status:      lipgloss.NewStyle().Foreground(Colors.Done),
		StatusError: lipgloss.NewStyle().Foreground(Colors.Error),
		Help:        lipgloss.NewStyle().Foreground(Colors.Muted),
	}
}
