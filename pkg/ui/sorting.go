package ui

import (
	"sort"
	"strings"

	"geotask/pkg/store"
)

// SortBy selects the field used for display ordering
type SortBy int

const (
	SortByDueDate SortBy = iota
	SortByCreated
	SortByTitle
	SortByLocation
	sortByCount // keep last
)

// SortOrder selects ascending or descending display order
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// GroupBy selects how tasks are grouped for display
type GroupBy int

const (
	GroupByNone GroupBy = iota
	GroupByDueDateDaily
	GroupByLocation
	groupByCount // keep last
)

// GroupedTasks represents tasks grouped by a common attribute
type GroupedTasks struct {
	GroupName string
	Tasks     []store.TodoItem
}

// SortTasks sorts a copy of tasks based on the current criteria; the
// input slice (and so the store's canonical order) is never mutated.
func (m *Model) SortTasks(tasks []store.TodoItem) []store.TodoItem {
	sortedTasks := make([]store.TodoItem, len(tasks))
	copy(sortedTasks, tasks)

	sort.SliceStable(sortedTasks, func(i, j int) bool {
		var result bool

		switch m.sortBy {
		case SortByDueDate:
			result = sortedTasks[i].DueDate.Before(sortedTasks[j].DueDate)
		case SortByCreated:
			result = sortedTasks[i].Created.Before(sortedTasks[j].Created)
		case SortByTitle:
			result = strings.ToLower(sortedTasks[i].Title) < strings.ToLower(sortedTasks[j].Title)
		case SortByLocation:
			result = strings.ToLower(sortedTasks[i].Location) < strings.ToLower(sortedTasks[j].Location)
		}

		if m.sortOrder == SortDesc {
			result = !result
		}
		return result
	})

	return sortedTasks
}

// GroupTasks groups tasks based on the current criteria
func (m *Model) GroupTasks(tasks []store.TodoItem) []GroupedTasks {
	if m.groupBy == GroupByNone {
		return []GroupedTasks{{GroupName: "", Tasks: m.SortTasks(tasks)}}
	}

	groups := make(map[string][]store.TodoItem)

	for _, task := range tasks {
		var groupKey string

		switch m.groupBy {
		case GroupByDueDateDaily:
			groupKey = task.DueDate.Format("2006-01-02")

		case GroupByLocation:
			groupKey = task.Location
			if groupKey == "" {
				groupKey = "No Location"
			}
		}

		groups[groupKey] = append(groups[groupKey], task)
	}

	// Convert map to sorted slice
	var result []GroupedTasks
	var groupNames []string
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	for _, name := range groupNames {
		result = append(result, GroupedTasks{
			GroupName: name,
			Tasks:     m.SortTasks(groups[name]),
		})
	}

	return result
}
