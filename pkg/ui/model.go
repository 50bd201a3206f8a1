package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"geotask/pkg/config"
	"geotask/pkg/geoloc"
	"geotask/pkg/keymaps"
	"geotask/pkg/store"
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	AddMode
	EditMode
	DeleteConfirmMode
	SearchMode   // Mode for searching tasks
	HelpViewMode // Mode for displaying help
)

// Model represents the application state
type Model struct {
	table         table.Model
	items         []store.TodoItem // display snapshot, sorted
	store         *store.Store
	geo           *geoloc.Provider
	width, height int
	err           error

	// Configuration
	config config.Config
	styles config.Styles
	keyMap keymaps.KeyMap

	// View state
	searchTerm string

	// Form state
	mode          InputMode
	titleInput    textinput.Model
	descInput     textinput.Model
	dueDateInput  textinput.Model
	locationInput textinput.Model
	searchInput   textinput.Model
	activeInput   int
	formErr       string

	// Edit/delete state
	editingItem *store.TodoItem

	// Sorting and grouping state
	sortBy    SortBy
	groupBy   GroupBy
	sortOrder SortOrder
}

// NewModel creates a new UI model with the provided configuration.
// geo may be nil when location support is disabled.
func NewModel(s *store.Store, geo *geoloc.Provider, cfg config.Config, styles config.Styles) Model {
	// Single unnamed column; the header stays invisible
	columns := []table.Column{
		{Title: "", Width: 60},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderBottom(false).
		Bold(false).
		Foreground(lipgloss.NoColor{})

	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	t.SetStyles(ts)

	// Initialize text inputs
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.Focus()
	titleInput.Width = 40

	descInput := textinput.New()
	descInput.Placeholder = "Description"
	descInput.Width = 40

	dueDateInput := textinput.New()
	dueDateInput.Placeholder = "Due Date (YYYY-MM-DD, optional)"
	dueDateInput.Width = 40
	dueDateInput.SetValue(time.Now().Format("2006-01-02"))

	locationInput := textinput.New()
	locationInput.Placeholder = "Location (free text, ctrl+l for current fix)"
	locationInput.Width = 40

	searchInput := textinput.New()
	searchInput.Placeholder = "Search tasks (title, description, location)"
	searchInput.Focus()
	searchInput.Width = 40

	m := Model{
		table:         t,
		store:         s,
		geo:           geo,
		config:        cfg,
		styles:        styles,
		keyMap:        keymaps.BuildKeyMap(cfg.KeyMap),
		mode:          NormalMode,
		titleInput:    titleInput,
		descInput:     descInput,
		dueDateInput:  dueDateInput,
		locationInput: locationInput,
		searchInput:   searchInput,
		activeInput:   0,
		searchTerm:    "",
		sortBy:        SortByDueDate,
		sortOrder:     SortDesc, // newest due dates on top
		groupBy:       GroupByNone,
	}

	// Load initial data
	m.loadTasks()

	return m
}

// Init initializes the model (required by Bubble Tea Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// resetInputs clears all form inputs
func (m *Model) resetInputs() {
	m.titleInput.Reset()
	m.descInput.Reset()
	m.dueDateInput.SetValue(time.Now().Format("2006-01-02"))
	m.locationInput.Reset()
	m.formErr = ""

	m.activeInput = 0
	m.titleInput.Focus()
	m.descInput.Blur()
	m.dueDateInput.Blur()
	m.locationInput.Blur()
}
