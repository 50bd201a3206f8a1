package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geotask/pkg/config"
	"geotask/pkg/store"
)

func newTestModel(t *testing.T) (*Model, *store.Store) {
	t.Helper()
	s, err := store.Open(store.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	s.Load()

	m := NewModel(s, nil, config.Config{}, config.Styles{})
	return &m, s
}

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func TestSortTasksDueDateDescendingByDefault(t *testing.T) {
	m, s := newTestModel(t)
	s.Add("early", "", day(1), "")
	s.Add("late", "", day(20), "")
	s.Add("middle", "", day(10), "")

	sorted := m.SortTasks(s.Snapshot())
	require.Len(t, sorted, 3)
	assert.Equal(t, "late", sorted[0].Title)
	assert.Equal(t, "middle", sorted[1].Title)
	assert.Equal(t, "early", sorted[2].Title)
}

func TestSortTasksDoesNotMutateInput(t *testing.T) {
	m, s := newTestModel(t)
	s.Add("b", "", day(2), "")
	s.Add("a", "", day(1), "")

	snap := s.Snapshot()
	m.SortTasks(snap)

	// Canonical (insertion) order untouched
	assert.Equal(t, "b", snap[0].Title)
	assert.Equal(t, "a", snap[1].Title)
}

func TestSortTasksByTitleAscending(t *testing.T) {
	m, s := newTestModel(t)
	s.Add("banana", "", day(1), "")
	s.Add("Apple", "", day(2), "")

	m.sortBy = SortByTitle
	m.sortOrder = SortAsc

	sorted := m.SortTasks(s.Snapshot())
	assert.Equal(t, "Apple", sorted[0].Title)
	assert.Equal(t, "banana", sorted[1].Title)
}

func TestGroupTasksByLocation(t *testing.T) {
	m, s := newTestModel(t)
	s.Add("a", "", day(1), "office")
	s.Add("b", "", day(2), "")
	s.Add("c", "", day(3), "office")

	m.groupBy = GroupByLocation
	groups := m.GroupTasks(s.Snapshot())

	require.Len(t, groups, 2)
	// Group names sorted alphabetically
	assert.Equal(t, "No Location", groups[0].GroupName)
	require.Len(t, groups[0].Tasks, 1)
	assert.Equal(t, "office", groups[1].GroupName)
	require.Len(t, groups[1].Tasks, 2)
}

func TestGroupTasksByDay(t *testing.T) {
	m, s := newTestModel(t)
	s.Add("a", "", day(1), "")
	s.Add("b", "", day(1), "")
	s.Add("c", "", day(2), "")

	m.groupBy = GroupByDueDateDaily
	groups := m.GroupTasks(s.Snapshot())

	require.Len(t, groups, 2)
	assert.Equal(t, "2026-08-01", groups[0].GroupName)
	assert.Len(t, groups[0].Tasks, 2)
	assert.Equal(t, "2026-08-02", groups[1].GroupName)
}

func TestFilterTasksMatchesAllTextFields(t *testing.T) {
	tasks := []store.TodoItem{
		{Title: "Buy milk", Description: "2%"},
		{Title: "Dentist", Description: "checkup"},
		{Title: "Walk", Location: "Central Park"},
	}

	assert.Len(t, filterTasks(tasks, ""), 3)
	assert.Len(t, filterTasks(tasks, "milk"), 1)
	assert.Len(t, filterTasks(tasks, "CHECKUP"), 1)
	assert.Len(t, filterTasks(tasks, "central"), 1)
	assert.Empty(t, filterTasks(tasks, "nowhere"))
}

func TestLoadTasksFillsDisplaySlice(t *testing.T) {
	m, s := newTestModel(t)
	s.Add("one", "", day(5), "")
	s.Add("two", "", day(6), "")

	m.loadTasks()
	require.Len(t, m.items, 2)
	// Display order: due date descending
	assert.Equal(t, "two", m.items[0].Title)
	assert.Equal(t, "one", m.items[1].Title)
}

func TestSubmitFormRejectsEmptyTitle(t *testing.T) {
	m, _ := newTestModel(t)
	m.mode = AddMode
	m.titleInput.SetValue("   ")
	m.dueDateInput.SetValue("2026-08-30")

	m.submitForm()

	assert.Equal(t, "title must not be empty", m.formErr)
	assert.Equal(t, 0, m.store.Len())
	assert.Equal(t, AddMode, m.mode)
}

func TestSubmitFormRejectsBadDate(t *testing.T) {
	m, _ := newTestModel(t)
	m.mode = AddMode
	m.titleInput.SetValue("Buy milk")
	m.dueDateInput.SetValue("30/08/2026")

	m.submitForm()

	assert.Equal(t, "invalid date format: use YYYY-MM-DD", m.formErr)
	assert.Equal(t, 0, m.store.Len())
}

func TestSubmitFormAddsTask(t *testing.T) {
	m, s := newTestModel(t)
	m.mode = AddMode
	m.titleInput.SetValue("Buy milk")
	m.descInput.SetValue("2%")
	m.dueDateInput.SetValue("2026-08-30")
	m.locationInput.SetValue("48.85661, 2.35222")

	m.submitForm()

	require.Equal(t, 1, s.Len())
	item := s.Snapshot()[0]
	assert.Equal(t, "Buy milk", item.Title)
	assert.Equal(t, "2%", item.Description)
	assert.Equal(t, "48.85661, 2.35222", item.Location)
	assert.Equal(t, "2026-08-30", item.DueDate.Format("2006-01-02"))
	assert.Equal(t, NormalMode, m.mode)
}

func TestSubmitFormEditsTaskInPlace(t *testing.T) {
	m, s := newTestModel(t)
	item := s.Add("Buy milk", "2%", day(30), "")
	m.loadTasks()

	m.mode = EditMode
	m.editingItem = &item
	m.titleInput.SetValue("Buy oat milk")
	m.descInput.SetValue("2%")
	m.dueDateInput.SetValue("2026-08-30")
	m.locationInput.SetValue("")

	m.submitForm()

	require.Equal(t, 1, s.Len())
	got := s.Snapshot()[0]
	assert.Equal(t, "Buy oat milk", got.Title)
	assert.Equal(t, item.ID, got.ID)
	assert.True(t, item.Created.Equal(got.Created))
}
