package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	switch m.mode {
	case NormalMode:
		// App Title Bar
		titleBar := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
			Background(lipgloss.Color(m.styles.AccentColor)).
			Padding(0, 1).
			Render(" geotask - Todo List ")

		sb.WriteString(titleBar)
		sb.WriteString("\n\n")

		// Table with tasks
		sb.WriteString(m.table.View())
		sb.WriteString("\n")

		// Status line: counts, search filter, sorting/grouping
		viewInfo := fmt.Sprintf("Showing %d task(s)", len(m.items))
		if m.searchTerm != "" {
			viewInfo += fmt.Sprintf(" (search filter: %s)", m.searchTerm)
		}

		if m.sortBy != SortByDueDate || m.sortOrder != SortDesc || m.groupBy != GroupByNone {
			sortByStr := []string{"due date", "created", "title", "location"}[m.sortBy]
			orderStr := "asc"
			if m.sortOrder == SortDesc {
				orderStr = "desc"
			}

			groupByStr := ""
			if m.groupBy != GroupByNone {
				groupOptions := []string{"", "day", "location"}
				groupByStr = fmt.Sprintf(", grouped by %s", groupOptions[m.groupBy])
			}

			viewInfo += fmt.Sprintf(" | sorted by %s (%s)%s", sortByStr, orderStr, groupByStr)
		}

		// Location status, advisory only
		if m.geo != nil {
			if fix, ok := m.geo.CurrentLocation(); ok {
				viewInfo += fmt.Sprintf(" | fix: %s", fix.String())
			} else {
				viewInfo += fmt.Sprintf(" | location: %s", m.geo.AuthState())
			}
		}

		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.NormalTextColor)).Render(viewInfo))
		sb.WriteString("\n")

	case AddMode:
		sb.WriteString(m.modeTitle(" Add New Task ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case EditMode:
		sb.WriteString(m.modeTitle(" Edit Task ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case DeleteConfirmMode:
		sb.WriteString(m.modeTitle(" Delete Task ", m.styles.ErrorColor))
		sb.WriteString("\n\n")

		if m.editingItem != nil {
			sb.WriteString("Are you sure you want to delete this task?\n\n")
			sb.WriteString(fmt.Sprintf("Title: %s\n", m.editingItem.Title))
			sb.WriteString(fmt.Sprintf("Description: %s\n", m.editingItem.Description))
			if m.editingItem.Location != "" {
				sb.WriteString(fmt.Sprintf("Location: %s\n", m.editingItem.Location))
			}
			sb.WriteString("\n")
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
		}

	case SearchMode:
		sb.WriteString(m.modeTitle(" Search Tasks ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString("Enter search term to find tasks:")
		sb.WriteString("\n\n")
		sb.WriteString(m.searchInput.View())

	case HelpViewMode:
		// Fullscreen commands view
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
		sb.WriteString("\n\n")

		keyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.AccentColor)).
			Bold(true)
		descStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor))

		addCommand := func(binding key.Binding) {
			sb.WriteString(fmt.Sprintf("%s: %s\n",
				descStyle.Render(binding.Help().Desc),
				keyStyle.Render(binding.Help().Key)))
		}

		addCommand(m.keyMap.QuitApp)
		addCommand(m.keyMap.ShowHelp)
		addCommand(m.keyMap.AddTask)
		addCommand(m.keyMap.EditTask)
		addCommand(m.keyMap.DeleteTask)
		addCommand(m.keyMap.SearchTasks)
		addCommand(m.keyMap.ReloadTasks)
		addCommand(m.keyMap.UseLocation)
		addCommand(m.keyMap.ToggleSortBy)
		addCommand(m.keyMap.ToggleGroupBy)
		addCommand(m.keyMap.ToggleSortOrder)
	}

	// Error message if any
	if m.err != nil {
		sb.WriteString(fmt.Sprintf("\n\nError: %v", m.err))
	}

	// Add help status bar at the bottom
	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

func (m Model) modeTitle(text, bg string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Render(text)
}

// helpBar renders a sleek status bar with available actions
func (m Model) helpBar() string {
	var actions []string

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor))

	separator := separatorStyle.Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}

	switch m.mode {
	case NormalMode:
		addAction("a", "add")
		addAction("e", "edit")
		addAction("d", "del")
		addAction("ctrl+f", "search")
		addAction("s/g/o", "sort/grp/ord")
		addAction("ctrl+b", "help")
		addAction("q", "quit")

	case AddMode, EditMode:
		addAction("tab", "next field")
		addAction("ctrl+l", "use fix")
		addAction("enter", "save")
		addAction("esc", "cancel")

	case DeleteConfirmMode:
		addAction("y", "confirm")
		addAction("n", "cancel")

	case SearchMode:
		addAction("enter", "search")
		addAction("esc", "cancel")

	case HelpViewMode:
		addAction("ctrl+b/esc", "back")
		addAction("q", "quit")
	}

	return strings.Join(actions, separator)
}

// renderForm renders the input form for adding/editing tasks
func (m Model) renderForm() string {
	var sb strings.Builder

	sb.WriteString("Title:\n")
	sb.WriteString(m.titleInput.View())
	sb.WriteString("\n\n")

	sb.WriteString("Description:\n")
	sb.WriteString(m.descInput.View())
	sb.WriteString("\n\n")

	sb.WriteString("Due Date (YYYY-MM-DD):\n")
	sb.WriteString(m.dueDateInput.View())
	sb.WriteString("\n\n")

	sb.WriteString("Location:\n")
	sb.WriteString(m.locationInput.View())

	if m.formErr != "" {
		sb.WriteString("\n\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.ErrorColor)).
			Render(m.formErr))
	}

	return sb.String()
}
