package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"

	"geotask/pkg/store"
)

var validate = validator.New()

// taskForm carries the raw form values through validation. The store
// accepts anything; title and date format are presentation rules.
type taskForm struct {
	Title   string `validate:"required"`
	DueDate string `validate:"omitempty,datetime=2006-01-02"`
}

// loadTasks snapshots the store, applies search/sort/group, and fills
// the table
func (m *Model) loadTasks() {
	items := filterTasks(m.store.Snapshot(), m.searchTerm)
	m.items = m.SortTasks(items)

	groupedTasks := m.GroupTasks(items)
	tableRows := []table.Row{}

	// When grouping, the flat display slice must match row order so the
	// cursor still resolves to the right item.
	if m.groupBy != GroupByNone {
		m.items = m.items[:0]
	}

	for _, group := range groupedTasks {
		if m.groupBy != GroupByNone {
			groupHeader := fmt.Sprintf("== %s ==", group.GroupName)
			tableRows = append(tableRows, table.Row{
				lipgloss.NewStyle().
					Bold(true).
					Foreground(lipgloss.Color(m.styles.AccentColor)).
					Render(groupHeader),
			})
			m.items = append(m.items, group.Tasks...)
		}

		for _, item := range group.Tasks {
			tableRows = append(tableRows, table.Row{m.renderTaskLine(item)})
		}
	}

	m.table.SetRows(tableRows)
}

// renderTaskLine builds the single-column row text for a task
func (m *Model) renderTaskLine(item store.TodoItem) string {
	dueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.DueDateColor))
	locStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.LocationColor))

	line := fmt.Sprintf("%s  %s", dueStyle.Render(item.DueDate.Format("2006-01-02")), item.Title)
	if item.Location != "" {
		line += "  " + locStyle.Render("@ "+item.Location)
	}
	return line
}

// selectedItem resolves the table cursor to a display item. Group
// header rows resolve to nothing.
func (m *Model) selectedItem() *store.TodoItem {
	if len(m.items) == 0 {
		return nil
	}
	idx := m.table.Cursor()
	if m.groupBy != GroupByNone {
		idx = m.displayIndex(idx)
	}
	if idx < 0 || idx >= len(m.items) {
		return nil
	}
	return &m.items[idx]
}

// displayIndex maps a table row index to an index into m.items,
// skipping group header rows. Returns -1 for a header row.
func (m *Model) displayIndex(row int) int {
	grouped := m.GroupTasks(filterTasks(m.store.Snapshot(), m.searchTerm))
	r := 0
	idx := 0
	for _, group := range grouped {
		if r == row {
			return -1 // header row
		}
		r++
		for range group.Tasks {
			if r == row {
				return idx
			}
			r++
			idx++
		}
	}
	return -1
}

// filterTasks applies the search term to title, description, and
// location
func filterTasks(tasks []store.TodoItem, term string) []store.TodoItem {
	if term == "" {
		return tasks
	}
	needle := strings.ToLower(term)
	var out []store.TodoItem
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) ||
			strings.Contains(strings.ToLower(t.Location), needle) {
			out = append(out, t)
		}
	}
	return out
}

// focusNextInput cycles through the form inputs
func (m *Model) focusNextInput() {
	m.setActiveInput((m.activeInput + 1) % 4)
}

// focusPreviousInput cycles through the form inputs
func (m *Model) focusPreviousInput() {
	m.setActiveInput((m.activeInput + 3) % 4)
}

func (m *Model) setActiveInput(idx int) {
	m.activeInput = idx

	m.titleInput.Blur()
	m.descInput.Blur()
	m.dueDateInput.Blur()
	m.locationInput.Blur()

	switch idx {
	case 0:
		m.titleInput.Focus()
	case 1:
		m.descInput.Focus()
	case 2:
		m.dueDateInput.Focus()
	case 3:
		m.locationInput.Focus()
	}
}

// fillLocationFromFix copies the provider's last known fix into the
// location input. A snapshot copy: later fixes do not touch the form.
func (m *Model) fillLocationFromFix() {
	if m.geo == nil {
		m.formErr = "location support is disabled"
		return
	}
	fix, ok := m.geo.CurrentLocation()
	if !ok {
		m.formErr = "no location fix available yet"
		return
	}
	m.locationInput.SetValue(fix.String())
	m.formErr = ""
}

// submitForm processes the form data based on the current mode
func (m *Model) submitForm() {
	title := strings.TrimSpace(m.titleInput.Value())
	desc := strings.TrimSpace(m.descInput.Value())
	dueDate := strings.TrimSpace(m.dueDateInput.Value())
	location := strings.TrimSpace(m.locationInput.Value())

	form := taskForm{Title: title, DueDate: dueDate}
	if err := validate.Struct(form); err != nil {
		for _, ferr := range err.(validator.ValidationErrors) {
			switch ferr.Field() {
			case "Title":
				m.formErr = "title must not be empty"
			case "DueDate":
				m.formErr = "invalid date format: use YYYY-MM-DD"
			}
		}
		return
	}

	var parsedDueDate time.Time
	if dueDate != "" {
		parsedDueDate, _ = time.Parse("2006-01-02", dueDate)
	} else {
		parsedDueDate = time.Now()
	}

	switch m.mode {
	case AddMode:
		m.store.Add(title, desc, parsedDueDate, location)
		m.loadTasks()

	case EditMode:
		if m.editingItem != nil {
			item := *m.editingItem
			item.Title = title
			item.Description = desc
			item.DueDate = parsedDueDate
			item.Location = location

			m.store.Update(item)
			m.loadTasks()
		}
	}

	// Reset state
	m.mode = NormalMode
	m.resetInputs()
	m.editingItem = nil
}
