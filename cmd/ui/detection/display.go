// Package detection renders detection results as an interactive terminal view.
package detection

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skylift/pkg/detect"
)

var (
	titleStyle        = lipgloss.NewStyle().Background(lipgloss.Color("#01FAC6")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	descriptionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	warningStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type model struct {
	result   *detect.Result
	quitting bool
}

// NewModel creates the result view for a completed detection run.
func NewModel(result *detect.Result) tea.Model {
	return model{result: result}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Build & Route Detection Results"))
	s.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#01FAC6")).
		Padding(1, 2).
		Width(64)

	var content strings.Builder

	content.WriteString(focusedStyle.Render("Builders:"))
	content.WriteString("\n")
	if len(m.result.Builders) == 0 {
		content.WriteString(helpStyle.Render("  (none)"))
		content.WriteString("\n")
	}
	for _, builder := range m.result.Builders {
		content.WriteString(successStyle.Render("  ✓ "))
		content.WriteString(selectedItemStyle.Render(builder.Use))
		content.WriteString(descriptionStyle.Render("  " + builder.Src))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	content.WriteString(focusedStyle.Render("Routes:"))
	content.WriteString("\n")
	content.WriteString(descriptionStyle.Render(fmt.Sprintf(
		"  %d default, %d redirect, %d rewrite",
		len(m.result.DefaultRoutes), len(m.result.RedirectRoutes), len(m.result.RewriteRoutes))))
	content.WriteString("\n")

	if len(m.result.Warnings) > 0 {
		content.WriteString("\n")
		content.WriteString(warningStyle.Render("Warnings:"))
		content.WriteString("\n")
		for _, warning := range m.result.Warnings {
			content.WriteString(warningStyle.Render("  ! "))
			content.WriteString(descriptionStyle.Render(warning.Message))
			content.WriteString("\n")
		}
	}

	s.WriteString(box.Render(content.String()))
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press "))
	s.WriteString(focusedStyle.Render("q"))
	s.WriteString(helpStyle.Render(" to quit"))
	s.WriteString("\n")

	return s.String()
}
