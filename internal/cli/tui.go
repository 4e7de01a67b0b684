package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/floweave/floweave/pkg/validate"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// IssueListModel - Interactive issue browsing
// =============================================================================

// IssueListModel is the bubbletea model for browsing validation issues.
// The list scrolls, and the selected issue shows its full message and
// details below the list.
type IssueListModel struct {
	Source string
	Issues []validate.Issue
	Cursor int
	Height int
	Offset int
}

// NewIssueListModel creates a new issue list model.
func NewIssueListModel(source string, issues []validate.Issue) IssueListModel {
	return IssueListModel{
		Source: source,
		Issues: issues,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m IssueListModel) Init() tea.Cmd {
	return nil
}

func (m IssueListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Issues)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Issues) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m IssueListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Issues in %s", m.Source)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Issues) {
		end = len(m.Issues)
	}

	for i := m.Offset; i < end; i++ {
		issue := m.Issues[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		icon := styleIconWarning.Render(iconWarning)
		if issue.Severity == validate.SeverityError {
			icon = styleIconError.Render(iconError)
		}

		line := fmt.Sprintf("%s%s %s", cursor, icon, issue.Code)
		if locus := issue.Locus(); locus != "" {
			line += listDimStyle.Render(" [" + locus + "]")
		}
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.Issues) > m.Height {
		b.WriteString(listDimStyle.Render(
			fmt.Sprintf("\n%d-%d of %d", m.Offset+1, end, len(m.Issues))))
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())

	return b.String()
}

// detailView renders the selected issue's message and details.
func (m IssueListModel) detailView() string {
	if len(m.Issues) == 0 {
		return ""
	}
	issue := m.Issues[m.Cursor]

	var b strings.Builder
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 48)))
	b.WriteString("\n")
	b.WriteString(StyleValue.Render(issue.Message))
	b.WriteString("\n")
	for _, k := range slices.Sorted(maps.Keys(issue.Details)) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%s: %v", k, issue.Details[k])))
		b.WriteString("\n")
	}
	return b.String()
}
