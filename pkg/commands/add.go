package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"geotask/pkg/store"
)

// HandleAddTask processes the -add command
func HandleAddTask(s *store.Store, taskText, dateStr, location string) {
	title := strings.TrimSpace(taskText)
	if title == "" {
		fmt.Println("Error: task title must not be empty")
		os.Exit(1)
	}

	var dueDate time.Time
	var err error

	if dateStr != "" {
		dueDate, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Printf("Error parsing date: %v\n", err)
			os.Exit(1)
		}
	} else {
		// Default to today
		dueDate = time.Now()
	}

	item := s.Add(title, "", dueDate, strings.TrimSpace(location))
	fmt.Printf("Added task %s (due %s)\n", item.Title, item.DueDate.Format("2006-01-02"))
}
