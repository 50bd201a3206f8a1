package commands

import (
	"fmt"
	"sort"

	"geotask/pkg/store"
)

// HandleListCommand prints the collection, due date descending.
// The persisted order is untouched; this is display order only.
func HandleListCommand(s *store.Store) {
	tasks := s.Snapshot()
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[j].DueDate.Before(tasks[i].DueDate)
	})

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}

	for _, task := range tasks {
		line := fmt.Sprintf("%s  %s", task.DueDate.Format("2006-01-02"), task.Title)
		if task.Description != "" {
			line += fmt.Sprintf("  (%s)", task.Description)
		}
		if task.Location != "" {
			line += fmt.Sprintf("  @ %s", task.Location)
		}
		fmt.Println(line)
	}
	fmt.Printf("%d task(s)\n", len(tasks))
}
