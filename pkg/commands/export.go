package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"geotask/pkg/store"
)

// HandleExportCommand processes -export commands
func HandleExportCommand(s *store.Store, filename, exportType string) {
	tasks := s.Snapshot()

	// Ensure directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	var content []byte
	var err error

	switch exportType {
	case "json":
		content, err = json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling tasks to JSON: %v\n", err)
			os.Exit(1)
		}
	case "txt":
		var lines []string
		var lastDate string
		for _, task := range tasks {
			dateStr := task.DueDate.Format("02.01.2006")
			if dateStr != lastDate {
				lines = append(lines, fmt.Sprintf("\n%s:", dateStr))
				lastDate = dateStr
			}

			line := fmt.Sprintf("- %s", task.Title)
			if task.Location != "" {
				line += fmt.Sprintf(" @ %s", task.Location)
			}
			lines = append(lines, line)
		}
		content = []byte(strings.TrimSpace(strings.Join(lines, "\n")))
	default:
		fmt.Printf("Unknown export type: %s\n", exportType)
		os.Exit(1)
	}

	if err := os.WriteFile(filename, content, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully exported %d task(s) to %s\n", len(tasks), filename)
}
