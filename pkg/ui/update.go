package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			switch {
			case key.Matches(msg, m.keyMap.ShowHelp):
				m.mode = HelpViewMode

			case key.Matches(msg, m.keyMap.QuitApp):
				return m, tea.Quit

			case key.Matches(msg, m.keyMap.ReloadTasks):
				m.loadTasks()

			case key.Matches(msg, m.keyMap.AddTask):
				m.mode = AddMode
				m.resetInputs()

			case key.Matches(msg, m.keyMap.EditTask):
				if item := m.selectedItem(); item != nil {
					m.mode = EditMode
					m.editingItem = item
					m.resetInputs()

					// Populate form with existing values
					m.titleInput.SetValue(item.Title)
					m.descInput.SetValue(item.Description)
					m.locationInput.SetValue(item.Location)
					if !item.DueDate.IsZero() {
						m.dueDateInput.SetValue(item.DueDate.Format("2006-01-02"))
					}
				}

			case key.Matches(msg, m.keyMap.DeleteTask):
				if item := m.selectedItem(); item != nil {
					m.mode = DeleteConfirmMode
					m.editingItem = item
				}

			case key.Matches(msg, m.keyMap.SearchTasks):
				m.mode = SearchMode
				m.searchInput.Focus()
				m.searchInput.SetValue("") // Clear previous search
				return m, nil

			case key.Matches(msg, m.keyMap.ToggleSortBy):
				m.sortBy = (m.sortBy + 1) % sortByCount
				m.loadTasks()

			case key.Matches(msg, m.keyMap.ToggleGroupBy):
				m.groupBy = (m.groupBy + 1) % groupByCount
				m.loadTasks()

			case key.Matches(msg, m.keyMap.ToggleSortOrder):
				if m.sortOrder == SortAsc {
					m.sortOrder = SortDesc
				} else {
					m.sortOrder = SortAsc
				}
				m.loadTasks()

			case msg.String() == "/":
				// "/" also enters search mode
				m.mode = SearchMode
				m.searchInput.Focus()
				m.searchInput.SetValue("")
				return m, nil
			}

		case AddMode, EditMode:
			switch {
			case msg.String() == "esc":
				m.mode = NormalMode
				m.resetInputs()
				m.editingItem = nil

			case msg.String() == "tab":
				m.focusNextInput()

			case msg.String() == "shift+tab":
				m.focusPreviousInput()

			case key.Matches(msg, m.keyMap.UseLocation):
				m.fillLocationFromFix()

			case msg.String() == "enter":
				if m.activeInput == 3 { // Submit on enter from the last field (location)
					m.submitForm()
				} else {
					m.focusNextInput()
				}
			}

			// Handle input updates
			switch m.activeInput {
			case 0:
				m.titleInput, cmd = m.titleInput.Update(msg)
				cmds = append(cmds, cmd)
			case 1:
				m.descInput, cmd = m.descInput.Update(msg)
				cmds = append(cmds, cmd)
			case 2:
				m.dueDateInput, cmd = m.dueDateInput.Update(msg)
				cmds = append(cmds, cmd)
			case 3:
				m.locationInput, cmd = m.locationInput.Update(msg)
				cmds = append(cmds, cmd)
			}

		case SearchMode:
			switch msg.String() {
			case "esc":
				// Exit search mode
				m.mode = NormalMode
				m.searchTerm = ""
				m.loadTasks()

			case "enter":
				m.searchTerm = m.searchInput.Value()
				m.mode = NormalMode
				m.loadTasks()
			}

			// Update search input
			m.searchInput, cmd = m.searchInput.Update(msg)
			cmds = append(cmds, cmd)

		case DeleteConfirmMode:
			// Handle delete confirmation
			switch msg.String() {
			case "y", "Y":
				if m.editingItem != nil {
					m.store.Delete(m.editingItem.ID)
					m.loadTasks()
				}
				m.mode = NormalMode
				m.editingItem = nil

			case "n", "N", "esc":
				m.mode = NormalMode
				m.editingItem = nil
			}

		case HelpViewMode:
			switch msg.String() {
			case "esc", "ctrl+b":
				m.mode = NormalMode
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(msg.Height - 4)
	}

	// Only update table in normal mode
	if m.mode == NormalMode {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
